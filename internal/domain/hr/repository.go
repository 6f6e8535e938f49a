package hr

import "context"

// EmployeeFilter selects employees. A nil field matches everything.
type EmployeeFilter struct {
	IsActive *bool
}

// Matches reports whether e passes the filter
func (f EmployeeFilter) Matches(e Employee) bool {
	return f.IsActive == nil || e.IsActive == *f.IsActive
}

// EmployeeRepository defines employee persistence.
// Results are always in insertion order.
type EmployeeRepository interface {
	// Create stores e and assigns its ID
	Create(ctx context.Context, e *Employee) error

	// FindByID returns a NOT_FOUND error when absent
	FindByID(ctx context.Context, id int64) (*Employee, error)

	FindAll(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	// Update applies fn to the stored record under the store lock
	Update(ctx context.Context, id int64, fn func(*Employee) error) (*Employee, error)

	// LastID returns the most recently assigned id, 0 when none
	LastID(ctx context.Context) int64
}

// AttendanceRepository defines attendance persistence.
// EmployeeID is a weak reference; the store does not check it.
type AttendanceRepository interface {
	Create(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, id int64) (*Attendance, error)
	FindAll(ctx context.Context) ([]Attendance, error)

	// FindByEmployee returns an empty slice for an employee without records
	FindByEmployee(ctx context.Context, employeeID int64) ([]Attendance, error)
}

// EmployeePaymentRepository defines employee payment persistence
type EmployeePaymentRepository interface {
	Create(ctx context.Context, p *EmployeePayment) error
	FindByID(ctx context.Context, id int64) (*EmployeePayment, error)
	FindAll(ctx context.Context) ([]EmployeePayment, error)
	FindByEmployee(ctx context.Context, employeeID int64) ([]EmployeePayment, error)
}

// CollectAllAttendance gathers attendance for every employee id from 1 to
// the last assigned id, grouped by employee. Gaps are tolerated.
func CollectAllAttendance(ctx context.Context, employees EmployeeRepository, attendance AttendanceRepository) ([]Attendance, error) {
	var all []Attendance
	last := employees.LastID(ctx)
	for id := int64(1); id <= last; id++ {
		records, err := attendance.FindByEmployee(ctx, id)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
