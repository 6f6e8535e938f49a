package hr

import (
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
)

// =============================================================================
// Employee DTOs
// =============================================================================

// CreateEmployeeRequest represents a request to create a new employee
type CreateEmployeeRequest struct {
	Name       string           `json:"name" binding:"required,min=1,max=200"`
	Position   string           `json:"position" binding:"max=100"`
	Department string           `json:"department" binding:"max=100"`
	Email      string           `json:"email" binding:"omitempty,email,max=200"`
	Phone      string           `json:"phone" binding:"max=50"`
	HireDate   valueobject.Date `json:"hireDate"`
	Salary     *decimal.Decimal `json:"salary"`
	IsActive   *bool            `json:"isActive"`
}

// UpdateEmployeeRequest is a partial update; omitted fields keep their value
type UpdateEmployeeRequest struct {
	Name       *string           `json:"name" binding:"omitempty,min=1,max=200"`
	Position   *string           `json:"position" binding:"omitempty,max=100"`
	Department *string           `json:"department" binding:"omitempty,max=100"`
	Email      *string           `json:"email" binding:"omitempty,email,max=200"`
	Phone      *string           `json:"phone" binding:"omitempty,max=50"`
	HireDate   *valueobject.Date `json:"hireDate"`
	Salary     *decimal.Decimal  `json:"salary"`
	IsActive   *bool             `json:"isActive"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Position   string           `json:"position,omitempty"`
	Department string           `json:"department,omitempty"`
	Email      string           `json:"email,omitempty"`
	Phone      string           `json:"phone,omitempty"`
	HireDate   valueobject.Date `json:"hireDate"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	IsActive   bool             `json:"isActive"`
}

// ToEmployeeResponse converts a domain employee
func ToEmployeeResponse(e *hr.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Position:   e.Position,
		Department: e.Department,
		Email:      e.Email,
		Phone:      e.Phone,
		HireDate:   e.HireDate,
		Salary:     e.Salary,
		IsActive:   e.IsActive,
	}
}

// ToEmployeeResponses converts a list of domain employees
func ToEmployeeResponses(employees []hr.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(employees))
	for i := range employees {
		out[i] = ToEmployeeResponse(&employees[i])
	}
	return out
}

// =============================================================================
// Attendance DTOs
// =============================================================================

// CreateAttendanceRequest represents a request to record attendance
type CreateAttendanceRequest struct {
	EmployeeID int64            `json:"employeeId" binding:"required,gt=0"`
	Date       valueobject.Date `json:"date"`
	CheckIn    string           `json:"checkIn" binding:"max=5"`
	CheckOut   string           `json:"checkOut" binding:"max=5"`
	Status     string           `json:"status" binding:"max=50"`
	Notes      string           `json:"notes" binding:"max=1000"`
}

// AttendanceResponse represents an attendance record in API responses
type AttendanceResponse struct {
	ID         int64            `json:"id"`
	EmployeeID int64            `json:"employeeId"`
	Date       valueobject.Date `json:"date"`
	CheckIn    string           `json:"checkIn,omitempty"`
	CheckOut   string           `json:"checkOut,omitempty"`
	Status     string           `json:"status,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// ToAttendanceResponse converts a domain attendance record
func ToAttendanceResponse(a *hr.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		Status:     a.Status,
		Notes:      a.Notes,
	}
}

// ToAttendanceResponses converts a list of attendance records
func ToAttendanceResponses(records []hr.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, len(records))
	for i := range records {
		out[i] = ToAttendanceResponse(&records[i])
	}
	return out
}

// =============================================================================
// Employee payment DTOs
// =============================================================================

// CreateEmployeePaymentRequest represents a request to record a payment
type CreateEmployeePaymentRequest struct {
	EmployeeID    int64            `json:"employeeId" binding:"required,gt=0"`
	Date          valueobject.Date `json:"date"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	PaymentType   string           `json:"paymentType" binding:"required,max=50"`
	Description   string           `json:"description" binding:"max=1000"`
	TransactionID *int64           `json:"transactionId" binding:"omitempty,gt=0"`
}

// EmployeePaymentResponse represents a payment in API responses
type EmployeePaymentResponse struct {
	ID            int64            `json:"id"`
	EmployeeID    int64            `json:"employeeId"`
	Date          valueobject.Date `json:"date"`
	Amount        decimal.Decimal  `json:"amount"`
	PaymentType   string           `json:"paymentType"`
	Description   string           `json:"description,omitempty"`
	TransactionID *int64           `json:"transactionId,omitempty"`
}

// ToEmployeePaymentResponse converts a domain payment
func ToEmployeePaymentResponse(p *hr.EmployeePayment) EmployeePaymentResponse {
	return EmployeePaymentResponse{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		Date:          p.Date,
		Amount:        p.Amount,
		PaymentType:   p.PaymentType,
		Description:   p.Description,
		TransactionID: p.TransactionID,
	}
}

// ToEmployeePaymentResponses converts a list of payments
func ToEmployeePaymentResponses(payments []hr.EmployeePayment) []EmployeePaymentResponse {
	out := make([]EmployeePaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToEmployeePaymentResponse(&payments[i])
	}
	return out
}
