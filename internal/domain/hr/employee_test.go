package hr

import (
	"errors"
	"testing"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNewEmployee(t *testing.T) {
	t.Run("defaults isActive to true", func(t *testing.T) {
		e, err := NewEmployee(EmployeeInput{Name: "  Ann  ", Position: "Clerk"})
		require.NoError(t, err)
		assert.Equal(t, "Ann", e.Name)
		assert.True(t, e.IsActive)
		assert.Equal(t, int64(0), e.ID)
	})

	t.Run("keeps explicit isActive", func(t *testing.T) {
		e, err := NewEmployee(EmployeeInput{Name: "Bob", IsActive: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, e.IsActive)
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := NewEmployee(EmployeeInput{Name: "   "})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("rejects negative salary", func(t *testing.T) {
		s := decimal.NewFromInt(-10)
		_, err := NewEmployee(EmployeeInput{Name: "Ann", Salary: &s})
		assert.Error(t, err)
	})

	t.Run("rejects malformed email and phone", func(t *testing.T) {
		_, err := NewEmployee(EmployeeInput{Name: "Ann", Email: "nope"})
		assert.Error(t, err)
		_, err = NewEmployee(EmployeeInput{Name: "Ann", Phone: "abc"})
		assert.Error(t, err)
	})
}

func TestEmployee_Apply(t *testing.T) {
	salary := decimal.RequireFromString("3000")
	base := func() *Employee {
		e, err := NewEmployee(EmployeeInput{
			Name:       "Ann",
			Position:   "Clerk",
			Department: "Ops",
			HireDate:   valueobject.MustParseDate("2023-01-10"),
			Salary:     &salary,
		})
		require.NoError(t, err)
		e.ID = 1
		return e
	}

	t.Run("omitted fields keep prior values", func(t *testing.T) {
		e := base()
		require.NoError(t, e.Apply(EmployeePatch{Position: strPtr("Manager")}))
		assert.Equal(t, "Ann", e.Name)
		assert.Equal(t, "Manager", e.Position)
		assert.Equal(t, "Ops", e.Department)
		assert.Equal(t, "2023-01-10", e.HireDate.String())
		assert.True(t, e.Salary.Equal(salary))
		assert.Equal(t, int64(1), e.ID)
	})

	t.Run("can deactivate", func(t *testing.T) {
		e := base()
		require.NoError(t, e.Apply(EmployeePatch{IsActive: boolPtr(false)}))
		assert.False(t, e.IsActive)
	})

	t.Run("invalid patch leaves record untouched", func(t *testing.T) {
		e := base()
		err := e.Apply(EmployeePatch{Name: strPtr(""), Position: strPtr("Boss")})
		require.Error(t, err)
		assert.Equal(t, "Ann", e.Name)
		assert.Equal(t, "Clerk", e.Position)
	})
}

func TestNewAttendance(t *testing.T) {
	day := valueobject.MustParseDate("2024-02-01")

	t.Run("valid", func(t *testing.T) {
		a, err := NewAttendance(3, day, "09:00", "17:30", "present", "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), a.EmployeeID)
		assert.Equal(t, "09:00", a.CheckIn)
	})

	t.Run("times are optional", func(t *testing.T) {
		_, err := NewAttendance(3, day, "", "", "absent", "sick")
		assert.NoError(t, err)
	})

	t.Run("rejects bad clock values", func(t *testing.T) {
		_, err := NewAttendance(3, day, "9am", "", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects checkOut before checkIn", func(t *testing.T) {
		_, err := NewAttendance(3, day, "17:00", "09:00", "", "")
		assert.Error(t, err)
	})

	t.Run("requires date and employee", func(t *testing.T) {
		_, err := NewAttendance(3, valueobject.Date{}, "", "", "", "")
		assert.Error(t, err)
		_, err = NewAttendance(0, day, "", "", "", "")
		assert.Error(t, err)
	})
}

func TestNewEmployeePayment(t *testing.T) {
	day := valueobject.MustParseDate("2024-02-28")

	p, err := NewEmployeePayment(2, day, decimal.RequireFromString("1500.00"), PaymentTypeSalary, "Feb", nil)
	require.NoError(t, err)
	assert.Equal(t, "salary", p.PaymentType)

	_, err = NewEmployeePayment(2, day, decimal.NewFromInt(-1), PaymentTypeSalary, "", nil)
	assert.Error(t, err)

	_, err = NewEmployeePayment(2, day, decimal.NewFromInt(1), " ", "", nil)
	assert.Error(t, err)
}

func TestEmployeeFilter(t *testing.T) {
	active := Employee{Name: "a", IsActive: true}
	inactive := Employee{Name: "b", IsActive: false}

	assert.True(t, EmployeeFilter{}.Matches(active))
	assert.True(t, EmployeeFilter{}.Matches(inactive))
	assert.True(t, EmployeeFilter{IsActive: boolPtr(true)}.Matches(active))
	assert.False(t, EmployeeFilter{IsActive: boolPtr(true)}.Matches(inactive))
}
