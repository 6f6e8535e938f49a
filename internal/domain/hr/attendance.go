package hr

import (
	"strings"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
)

// ClockLayout is the wire format of check-in and check-out times
const ClockLayout = "15:04"

// Attendance records presence for one employee on one day
type Attendance struct {
	shared.BaseEntity
	EmployeeID int64            `json:"employeeId"`
	Date       valueobject.Date `json:"date"`
	CheckIn    string           `json:"checkIn,omitempty"`
	CheckOut   string           `json:"checkOut,omitempty"`
	Status     string           `json:"status,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// NewAttendance validates an attendance record. Existence of the employee
// is checked by the caller before the record reaches the store.
func NewAttendance(employeeID int64, date valueobject.Date, checkIn, checkOut, status, notes string) (*Attendance, error) {
	a := &Attendance{
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    strings.TrimSpace(checkIn),
		CheckOut:   strings.TrimSpace(checkOut),
		Status:     strings.TrimSpace(status),
		Notes:      notes,
	}
	if employeeID <= 0 {
		return nil, shared.Validation("employeeId is required")
	}
	if date.IsZero() {
		return nil, shared.Validation("attendance date is required")
	}
	in, err := parseClock("checkIn", a.CheckIn)
	if err != nil {
		return nil, err
	}
	out, err := parseClock("checkOut", a.CheckOut)
	if err != nil {
		return nil, err
	}
	if !in.IsZero() && !out.IsZero() && out.Before(in) {
		return nil, shared.Validation("checkOut %s is before checkIn %s", a.CheckOut, a.CheckIn)
	}
	return a, nil
}

func parseClock(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(ClockLayout, v)
	if err != nil {
		return time.Time{}, shared.Validation("%s must be HH:MM, got %q", field, v)
	}
	return t, nil
}
