package hr

import (
	"regexp"
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

// Employee is a member of staff.
// Salary is an opaque monthly figure; nothing derives rates from it.
type Employee struct {
	shared.BaseEntity
	Name       string           `json:"name"`
	Position   string           `json:"position,omitempty"`
	Department string           `json:"department,omitempty"`
	Email      string           `json:"email,omitempty"`
	Phone      string           `json:"phone,omitempty"`
	HireDate   valueobject.Date `json:"hireDate"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	IsActive   bool             `json:"isActive"`
}

// EmployeeInput carries the fields accepted on creation
type EmployeeInput struct {
	Name       string
	Position   string
	Department string
	Email      string
	Phone      string
	HireDate   valueobject.Date
	Salary     *decimal.Decimal
	IsActive   *bool
}

// NewEmployee validates input and applies defaults (isActive=true).
// The id is assigned by the store.
func NewEmployee(in EmployeeInput) (*Employee, error) {
	e := &Employee{
		Name:       strings.TrimSpace(in.Name),
		Position:   strings.TrimSpace(in.Position),
		Department: strings.TrimSpace(in.Department),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		HireDate:   in.HireDate,
		Salary:     in.Salary,
		IsActive:   true,
	}
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// EmployeePatch is a partial update; nil fields keep their current value
type EmployeePatch struct {
	Name       *string
	Position   *string
	Department *string
	Email      *string
	Phone      *string
	HireDate   *valueobject.Date
	Salary     *decimal.Decimal
	IsActive   *bool
}

// Apply merges the patch into e. On error e is left unchanged.
func (e *Employee) Apply(p EmployeePatch) error {
	next := *e
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Position != nil {
		next.Position = strings.TrimSpace(*p.Position)
	}
	if p.Department != nil {
		next.Department = strings.TrimSpace(*p.Department)
	}
	if p.Email != nil {
		next.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		next.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.HireDate != nil {
		next.HireDate = *p.HireDate
	}
	if p.Salary != nil {
		s := *p.Salary
		next.Salary = &s
	}
	if p.IsActive != nil {
		next.IsActive = *p.IsActive
	}
	if err := next.validate(); err != nil {
		return err
	}
	*e = next
	return nil
}

func (e *Employee) validate() error {
	if e.Name == "" {
		return shared.Validation("employee name cannot be empty")
	}
	if len(e.Name) > 200 {
		return shared.Validation("employee name cannot exceed 200 characters")
	}
	if e.Email != "" && !strings.Contains(e.Email, "@") {
		return shared.Validation("invalid employee email %q", e.Email)
	}
	if e.Phone != "" && !phonePattern.MatchString(e.Phone) {
		return shared.Validation("invalid phone number format")
	}
	if e.Salary != nil {
		if _, err := valueobject.NewAmount(*e.Salary); err != nil {
			return shared.Validation("salary cannot be negative")
		}
	}
	return nil
}
