package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/domain/identity"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(name string) *identity.User {
	return &identity.User{Username: name, Email: name + "@example.com", Role: identity.RoleUser}
}

func invoice(number string) *finance.Invoice {
	return &finance.Invoice{
		InvoiceNumber: number,
		IssueDate:     valueobject.MustParseDate("2024-01-01"),
		Amount:        decimal.NewFromInt(10),
		Status:        finance.InvoiceStatusPending,
	}
}

func TestTable_IDsStartAtOneAndIncrease(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(NewStore())

	for want := int64(1); want <= 3; want++ {
		e := &hr.Employee{Name: fmt.Sprintf("e%d", want), IsActive: true}
		require.NoError(t, repo.Create(ctx, e))
		assert.Equal(t, want, e.ID)
	}
	assert.Equal(t, int64(3), repo.LastID(ctx))
}

func TestTable_CountersArePerType(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	e := &hr.Employee{Name: "a"}
	require.NoError(t, NewEmployeeRepository(store).Create(ctx, e))
	c := &partner.Company{Name: "b", Status: partner.CompanyStatusActive}
	require.NoError(t, NewCompanyRepository(store).Create(ctx, c))

	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, int64(1), c.ID)
}

func TestTable_DuplicateDoesNotConsumeID(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(NewStore())

	first := invoice("INV-1")
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	err := repo.Create(ctx, invoice("INV-1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrDuplicateKey))

	second := invoice("INV-2")
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, int64(2), second.ID)
}

func TestUserRepository_UsernameAndEmailUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	require.NoError(t, repo.Create(ctx, user("alice")))

	sameName := &identity.User{Username: "alice", Email: "other@example.com"}
	err := repo.Create(ctx, sameName)
	assert.Equal(t, shared.CodeDuplicateKey, shared.CodeOf(err))

	sameEmail := &identity.User{Username: "bob", Email: "ALICE@example.com"}
	err = repo.Create(ctx, sameEmail)
	assert.Equal(t, shared.CodeDuplicateKey, shared.CodeOf(err))

	bob := user("bob")
	require.NoError(t, repo.Create(ctx, bob))
	assert.Equal(t, int64(2), bob.ID)

	found, err := repo.FindByUsername(ctx, "  BOB ")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, found.ID)

	found, err = repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = repo.FindByUsername(ctx, "carol")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

// raceCreates runs create from many goroutines at once and counts the
// successes and ErrDuplicateKey rejections
func raceCreates(workers int, create func() error) (successes, dupes int32) {
	var (
		wg    sync.WaitGroup
		ok    atomic.Int32
		dup   atomic.Int32
		start = make(chan struct{})
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := create()
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, shared.ErrDuplicateKey):
				dup.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()
	return ok.Load(), dup.Load()
}

func TestTable_ConcurrentDuplicateCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	const workers = 64
	successes, dupes := raceCreates(workers, func() error {
		return repo.Create(ctx, user("racer"))
	})

	assert.Equal(t, int32(1), successes)
	assert.Equal(t, int32(workers-1), dupes)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, int64(1), all[0].ID)
}

func TestTable_ConcurrentDuplicateInvoiceNumbers(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(NewStore())

	const workers = 64
	successes, dupes := raceCreates(workers, func() error {
		return repo.Create(ctx, invoice("INV-RACE"))
	})

	assert.Equal(t, int32(1), successes)
	assert.Equal(t, int32(workers-1), dupes)

	all, err := repo.FindAll(ctx, finance.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, "INV-RACE", all[0].InvoiceNumber)

	// Rejected creates consumed no ids
	require.NoError(t, repo.Create(ctx, invoice("INV-NEXT")))
	next, err := repo.FindByInvoiceNumber(ctx, "INV-NEXT")
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
}

func TestTable_ConcurrentInsertsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(NewStore())

	const workers = 100
	var wg sync.WaitGroup
	ids := make([]int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tx := &finance.Transaction{TransactionType: finance.TransactionTypeIncome, Amount: decimal.NewFromInt(1)}
			assert.NoError(t, repo.Create(ctx, tx))
			ids[i] = tx.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, workers)
	for _, id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		assert.True(t, id >= 1 && id <= workers)
		seen[id] = true
	}

	all, err := repo.FindAll(ctx, finance.TransactionFilter{})
	require.NoError(t, err)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID, "list must be in insertion order")
	}
}

func TestEmployeeRepository_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(NewStore())

	e, err := hr.NewEmployee(hr.EmployeeInput{Name: "Ann", Position: "Clerk", Department: "Ops"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, e))

	position := "Manager"
	updated, err := repo.Update(ctx, e.ID, func(stored *hr.Employee) error {
		return stored.Apply(hr.EmployeePatch{Position: &position})
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", updated.Name)
	assert.Equal(t, "Manager", updated.Position)
	assert.Equal(t, "Ops", updated.Department)
	assert.Equal(t, e.ID, updated.ID)

	reloaded, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Manager", reloaded.Position)

	_, err = repo.Update(ctx, 99, func(*hr.Employee) error { return nil })
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestTable_FailedUpdateLeavesRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(NewStore())
	inv := invoice("INV-9")
	require.NoError(t, repo.Create(ctx, inv))

	_, err := repo.UpdateStatus(ctx, inv.ID, "void")
	require.Error(t, err)

	stored, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.InvoiceStatusPending, stored.Status)

	paid, err := repo.UpdateStatus(ctx, inv.ID, finance.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, finance.InvoiceStatusPaid, paid.Status)
	assert.Equal(t, "INV-9", paid.InvoiceNumber)

	byNumber, err := repo.FindByInvoiceNumber(ctx, "INV-9")
	require.NoError(t, err)
	assert.Equal(t, finance.InvoiceStatusPaid, byNumber.Status)
}

func TestTable_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(NewStore())
	e := &hr.Employee{Name: "Ann"}
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	got.Name = "changed"

	again, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.Name)
}

func TestListByForeignKey(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewStore())
	day := valueobject.MustParseDate("2024-01-02")

	for _, owner := range []int64{1, 2, 1, 3, 1} {
		require.NoError(t, repo.Create(ctx, &hr.Attendance{EmployeeID: owner, Date: day}))
	}

	records, err := repo.FindByEmployee(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []int64{1, 3, 5}, []int64{records[0].ID, records[1].ID, records[2].ID})

	none, err := repo.FindByEmployee(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCollectAllAttendance(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	employees := NewEmployeeRepository(store)
	attendance := NewAttendanceRepository(store)
	day := valueobject.MustParseDate("2024-01-02")

	for i := 0; i < 3; i++ {
		require.NoError(t, employees.Create(ctx, &hr.Employee{Name: "e"}))
	}
	require.NoError(t, attendance.Create(ctx, &hr.Attendance{EmployeeID: 3, Date: day}))
	require.NoError(t, attendance.Create(ctx, &hr.Attendance{EmployeeID: 1, Date: day}))
	require.NoError(t, attendance.Create(ctx, &hr.Attendance{EmployeeID: 3, Date: day}))

	all, err := hr.CollectAllAttendance(ctx, employees, attendance)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1), all[0].EmployeeID)
	assert.Equal(t, int64(3), all[1].EmployeeID)
}

func TestReadsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewCompanyRepository(store)
	require.NoError(t, repo.Create(ctx, &partner.Company{Name: "a", Status: partner.CompanyStatusActive}))
	require.NoError(t, repo.Create(ctx, &partner.Company{Name: "b", Status: partner.CompanyStatusInactive}))

	first, err := repo.FindAll(ctx, partner.CompanyFilter{})
	require.NoError(t, err)
	second, err := repo.FindAll(ctx, partner.CompanyFilter{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	active := partner.CompanyStatusActive
	filtered, err := repo.FindAll(ctx, partner.CompanyFilter{Status: &active})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "a", filtered[0].Name)
}

func TestStore_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	src := NewStore()
	require.NoError(t, NewUserRepository(src).Create(ctx, user("alice")))
	require.NoError(t, NewInvoiceRepository(src).Create(ctx, invoice("INV-1")))
	require.NoError(t, NewEmployeeRepository(src).Create(ctx, &hr.Employee{Name: "Ann"}))
	snap := src.Snapshot(time.Now())

	dst := NewStore()
	employees := NewEmployeeRepository(dst)
	for i := 0; i < 5; i++ {
		require.NoError(t, employees.Create(ctx, &hr.Employee{Name: "tmp"}))
	}

	require.NoError(t, dst.Restore(snap))

	all, err := employees.FindAll(ctx, hr.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ann", all[0].Name)

	next := &hr.Employee{Name: "after"}
	require.NoError(t, employees.Create(ctx, next))
	assert.Equal(t, int64(6), next.ID, "counter must not move backwards")

	users := NewUserRepository(dst)
	_, err = users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	err = users.Create(ctx, user("alice"))
	assert.True(t, errors.Is(err, shared.ErrDuplicateKey), "unique index must be rebuilt")

	inv := invoice("INV-2")
	require.NoError(t, NewInvoiceRepository(dst).Create(ctx, inv))
	assert.Equal(t, int64(2), inv.ID)
}

func TestStore_RestoreRejectsBadSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	employees := NewEmployeeRepository(store)
	require.NoError(t, employees.Create(ctx, &hr.Employee{Name: "keep"}))

	snap := NewStore().Snapshot(time.Now())
	snap.Employees.Rows = []hr.Employee{{Name: "x"}}
	require.Error(t, store.Restore(snap))

	snap = NewStore().Snapshot(time.Now())
	snap.Version = 99
	require.Error(t, store.Restore(snap))

	all, err := employees.FindAll(ctx, hr.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].Name)
}
