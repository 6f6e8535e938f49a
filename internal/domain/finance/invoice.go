package finance

import (
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the settlement state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// IsValid checks if the status is a known InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Invoice is a bill issued to a client. InvoiceNumber is unique.
type Invoice struct {
	shared.BaseEntity
	InvoiceNumber string           `json:"invoiceNumber"`
	ClientName    string           `json:"clientName,omitempty"`
	IssueDate     valueobject.Date `json:"issueDate"`
	DueDate       valueobject.Date `json:"dueDate"`
	Amount        decimal.Decimal  `json:"amount"`
	Status        InvoiceStatus    `json:"status"`
	Notes         string           `json:"notes,omitempty"`
}

// InvoiceInput carries the fields accepted on creation
type InvoiceInput struct {
	InvoiceNumber string
	ClientName    string
	IssueDate     valueobject.Date
	DueDate       valueobject.Date
	Amount        decimal.Decimal
	Status        InvoiceStatus
	Notes         string
}

// NewInvoice validates input and applies defaults: status pending,
// issue date today.
func NewInvoice(in InvoiceInput, today valueobject.Date) (*Invoice, error) {
	number := strings.TrimSpace(in.InvoiceNumber)
	if number == "" {
		return nil, shared.Validation("invoiceNumber is required")
	}
	if len(number) > 50 {
		return nil, shared.Validation("invoiceNumber cannot exceed 50 characters")
	}
	if _, err := valueobject.NewAmount(in.Amount); err != nil {
		return nil, shared.Validation("invoice amount cannot be negative")
	}
	status := in.Status
	if status == "" {
		status = InvoiceStatusPending
	}
	if !status.IsValid() {
		return nil, shared.Validation("invalid invoice status %q", status)
	}
	issue := in.IssueDate
	if issue.IsZero() {
		issue = today
	}
	if !in.DueDate.IsZero() && in.DueDate.Before(issue) {
		return nil, shared.Validation("dueDate %s is before issueDate %s", in.DueDate, issue)
	}
	return &Invoice{
		InvoiceNumber: number,
		ClientName:    strings.TrimSpace(in.ClientName),
		IssueDate:     issue,
		DueDate:       in.DueDate,
		Amount:        in.Amount,
		Status:        status,
		Notes:         in.Notes,
	}, nil
}

// SetStatus is the only mutation an invoice allows
func (i *Invoice) SetStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.Validation("invalid invoice status %q", status)
	}
	i.Status = status
	return nil
}

// IsPastDue reports whether the invoice is unpaid after its due date
func (i Invoice) IsPastDue(today valueobject.Date) bool {
	return i.Status != InvoiceStatusPaid && !i.DueDate.IsZero() && i.DueDate.Before(today)
}
