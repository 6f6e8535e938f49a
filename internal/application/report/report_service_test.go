package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/domain/report"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/infrastructure/logger"
	"github.com/bizledger/backend/internal/infrastructure/persistence/memory"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// MockRenderer is a mock implementation of Renderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Format() string      { return "xlsx" }
func (m *MockRenderer) ContentType() string { return "application/test" }

func (m *MockRenderer) Render(ctx context.Context, ds report.Dataset) ([]byte, error) {
	args := m.Called(ctx, ds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type fixture struct {
	store *memory.Store
	repos Repositories
}

func newFixture() fixture {
	store := memory.NewStore()
	return fixture{
		store: store,
		repos: Repositories{
			Employees:           memory.NewEmployeeRepository(store),
			Attendance:          memory.NewAttendanceRepository(store),
			EmployeePayments:    memory.NewEmployeePaymentRepository(store),
			Transactions:        memory.NewTransactionRepository(store),
			Invoices:            memory.NewInvoiceRepository(store),
			CompanyTransactions: memory.NewCompanyTransactionRepository(store),
		},
	}
}

func (f fixture) addTransaction(t *testing.T, typ finance.TransactionType, amount string, date valueobject.Date) {
	t.Helper()
	txn, err := finance.NewTransaction(finance.TransactionInput{
		TransactionType: typ,
		Amount:          decimal.RequireFromString(amount),
		Date:            date,
	}, valueobject.DateOf(testNow))
	require.NoError(t, err)
	require.NoError(t, f.repos.Transactions.Create(context.Background(), txn))
}

func day(d int) valueobject.Date {
	return valueobject.NewDate(2024, time.April, d)
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewReportService(f.repos, shared.FixedClock{T: testNow})

	f.addTransaction(t, finance.TransactionTypeIncome, "100", day(1))
	f.addTransaction(t, finance.TransactionTypeIncome, "25", day(2))
	f.addTransaction(t, finance.TransactionTypeExpense, "40", day(3))

	for _, name := range []string{"Alice", "Bob"} {
		e, err := hr.NewEmployee(hr.EmployeeInput{Name: name})
		require.NoError(t, err)
		require.NoError(t, f.repos.Employees.Create(ctx, e))
	}

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, d.EmployeeCount)
	assert.Equal(t, 2, d.ActiveEmployees)
	assert.True(t, decimal.NewFromInt(125).Equal(d.Income))
	assert.True(t, decimal.NewFromInt(40).Equal(d.Expenses))
	assert.True(t, decimal.NewFromInt(85).Equal(d.Balance))
	require.Len(t, d.RecentTransactions, 3)
	assert.Equal(t, int64(3), d.RecentTransactions[0].ID)

	again, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, d, again)
}

func TestReportService_Dataset(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewReportService(f.repos, shared.FixedClock{T: testNow})

	f.addTransaction(t, finance.TransactionTypeIncome, "10", day(1))
	f.addTransaction(t, finance.TransactionTypeExpense, "3", day(10))
	f.addTransaction(t, finance.TransactionTypeIncome, "7", day(20))

	t.Run("inclusive window", func(t *testing.T) {
		ds, err := svc.Dataset(ctx, "financial", day(1), day(10))
		require.NoError(t, err)
		assert.Len(t, ds.Rows, 2)
		require.NotNil(t, ds.Totals)
		assert.True(t, decimal.NewFromInt(7).Equal(ds.Totals.Balance))
		assert.Equal(t, testNow, ds.GeneratedAt)
	})

	t.Run("open bounds", func(t *testing.T) {
		ds, err := svc.Dataset(ctx, "financial", valueobject.Date{}, valueobject.Date{})
		require.NoError(t, err)
		assert.Len(t, ds.Rows, 3)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := svc.Dataset(ctx, "payroll", day(1), day(2))
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := svc.Dataset(ctx, "financial", day(5), day(1))
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("attendance across employees with gaps", func(t *testing.T) {
		for _, name := range []string{"Alice", "Bob"} {
			e, err := hr.NewEmployee(hr.EmployeeInput{Name: name})
			require.NoError(t, err)
			require.NoError(t, f.repos.Employees.Create(ctx, e))
		}
		for _, rec := range []struct {
			employee int64
			date     valueobject.Date
		}{{2, day(3)}, {1, day(4)}, {1, day(30)}} {
			a, err := hr.NewAttendance(rec.employee, rec.date, "", "", "present", "")
			require.NoError(t, err)
			require.NoError(t, f.repos.Attendance.Create(ctx, a))
		}

		ds, err := svc.Dataset(ctx, "attendance", day(1), day(15))
		require.NoError(t, err)
		require.Len(t, ds.Rows, 2)
		assert.Equal(t, "1", ds.Rows[0][1])
		assert.Equal(t, "2", ds.Rows[1][1])
	})
}

func TestReportService_Export(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	renderer := new(MockRenderer)
	svc := NewReportService(f.repos, shared.FixedClock{T: testNow}, renderer)

	renderer.On("Render", mock.Anything, mock.MatchedBy(func(ds report.Dataset) bool {
		return ds.Kind == report.KindInvoices
	})).Return([]byte("doc"), nil).Once()

	out, err := svc.Export(ctx, "invoices", "xlsx", valueobject.Date{}, valueobject.Date{})
	require.NoError(t, err)
	assert.Equal(t, "invoices-20240501.xlsx", out.Filename)
	assert.Equal(t, "application/test", out.ContentType)
	assert.Equal(t, []byte("doc"), out.Data)

	_, err = svc.Export(ctx, "invoices", "csv", valueobject.Date{}, valueobject.Date{})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("browser gone")).Once()
	_, err = svc.Export(ctx, "employees", "xlsx", valueobject.Date{}, valueobject.Date{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "browser gone")

	assert.Equal(t, []string{"xlsx"}, svc.Formats())
	renderer.AssertExpectations(t)
}

func TestReportService_ExportLogsOnce(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core))

	f := newFixture()
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("doc"), nil)
	svc := NewReportService(f.repos, shared.FixedClock{T: testNow}, renderer)

	_, err := svc.Export(ctx, "invoices", "xlsx", valueobject.Date{}, valueobject.Date{})
	require.NoError(t, err)

	logs := recorded.FilterMessage("Report exported").All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, "invoices", fields["kind"])
	assert.Equal(t, "xlsx", fields["format"])
	assert.Equal(t, "invoices-20240501.xlsx", fields["filename"])
	assert.Equal(t, int64(3), fields["bytes"])
}
