package hr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/infrastructure/persistence/memory"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type services struct {
	employees  *EmployeeService
	attendance *AttendanceService
	payments   *PaymentService
}

func newServices() services {
	store := memory.NewStore()
	employeeRepo := memory.NewEmployeeRepository(store)
	return services{
		employees:  NewEmployeeService(employeeRepo),
		attendance: NewAttendanceService(employeeRepo, memory.NewAttendanceRepository(store)),
		payments:   NewPaymentService(employeeRepo, memory.NewEmployeePaymentRepository(store), shared.FixedClock{T: testNow}),
	}
}

func boolPtr(b bool) *bool { return &b }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestEmployeeService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	s := newServices()

	alice, err := s.employees.Create(ctx, CreateEmployeeRequest{Name: "Alice", Department: "Ops", Salary: decPtr("3000")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)
	assert.True(t, alice.IsActive)

	bob, err := s.employees.Create(ctx, CreateEmployeeRequest{Name: "Bob", IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob.ID)
	assert.False(t, bob.IsActive)

	all, err := s.employees.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice", all[0].Name)

	active, err := s.employees.List(ctx, boolPtr(true))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(1), active[0].ID)

	_, err = s.employees.Create(ctx, CreateEmployeeRequest{Name: "  "})
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	s := newServices()

	created, err := s.employees.Create(ctx, CreateEmployeeRequest{Name: "Alice", Position: "Clerk"})
	require.NoError(t, err)

	position := "Manager"
	updated, err := s.employees.Update(ctx, created.ID, UpdateEmployeeRequest{Position: &position})
	require.NoError(t, err)
	assert.Equal(t, "Manager", updated.Position)
	assert.Equal(t, "Alice", updated.Name)

	empty := ""
	_, err = s.employees.Update(ctx, created.ID, UpdateEmployeeRequest{Name: &empty})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	got, err := s.employees.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = s.employees.Update(ctx, 99, UpdateEmployeeRequest{Position: &position})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestAttendanceService_Create(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	day := valueobject.NewDate(2024, time.April, 30)

	t.Run("unknown employee is an invalid reference", func(t *testing.T) {
		_, err := s.attendance.Create(ctx, CreateAttendanceRequest{EmployeeID: 7, Date: day, Status: "present"})
		assert.True(t, errors.Is(err, shared.ErrInvalidReference))

		all, err := s.attendance.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	employee, err := s.employees.Create(ctx, CreateEmployeeRequest{Name: "Alice"})
	require.NoError(t, err)

	t.Run("records attendance", func(t *testing.T) {
		rec, err := s.attendance.Create(ctx, CreateAttendanceRequest{
			EmployeeID: employee.ID, Date: day, CheckIn: "09:00", CheckOut: "17:30", Status: "present",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rec.ID)

		got, err := s.attendance.GetByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "17:30", got.CheckOut)
	})

	t.Run("date is required", func(t *testing.T) {
		_, err := s.attendance.Create(ctx, CreateAttendanceRequest{EmployeeID: employee.ID})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("check out before check in", func(t *testing.T) {
		_, err := s.attendance.Create(ctx, CreateAttendanceRequest{
			EmployeeID: employee.ID, Date: day, CheckIn: "17:00", CheckOut: "09:00",
		})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("list by employee", func(t *testing.T) {
		records, err := s.attendance.ListByEmployee(ctx, employee.ID)
		require.NoError(t, err)
		assert.Len(t, records, 1)

		_, err = s.attendance.ListByEmployee(ctx, 42)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestPaymentService(t *testing.T) {
	ctx := context.Background()
	s := newServices()

	_, err := s.payments.Create(ctx, CreateEmployeePaymentRequest{EmployeeID: 1, Amount: decPtr("10"), PaymentType: "salary"})
	assert.True(t, errors.Is(err, shared.ErrInvalidReference))

	employee, err := s.employees.Create(ctx, CreateEmployeeRequest{Name: "Alice"})
	require.NoError(t, err)

	first, err := s.payments.Create(ctx, CreateEmployeePaymentRequest{
		EmployeeID: employee.ID, Amount: decPtr("1500.50"), PaymentType: "salary",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID, "rejected payment must not consume an id")
	assert.Equal(t, "2024-05-01", first.Date.String())

	txID := int64(12)
	_, err = s.payments.Create(ctx, CreateEmployeePaymentRequest{
		EmployeeID:    employee.ID,
		Date:          valueobject.NewDate(2024, time.April, 15),
		Amount:        decPtr("200"),
		PaymentType:   "bonus",
		TransactionID: &txID,
	})
	require.NoError(t, err)

	_, err = s.payments.Create(ctx, CreateEmployeePaymentRequest{EmployeeID: employee.ID, Amount: decPtr("-1"), PaymentType: "salary"})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = s.payments.Create(ctx, CreateEmployeePaymentRequest{EmployeeID: employee.ID, PaymentType: "salary"})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	payments, err := s.payments.ListByEmployee(ctx, employee.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	summary, err := s.payments.Summary(ctx, employee.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1700.50").Equal(summary.Total))
	assert.Equal(t, 2, summary.Count)

	_, err = s.payments.Summary(ctx, 99)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
