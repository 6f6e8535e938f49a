package hr

import (
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Common payment types. Other values are accepted as-is.
const (
	PaymentTypeSalary        = "salary"
	PaymentTypeBonus         = "bonus"
	PaymentTypeAdvance       = "advance"
	PaymentTypeReimbursement = "reimbursement"
)

// EmployeePayment is money paid to an employee
type EmployeePayment struct {
	shared.BaseEntity
	EmployeeID    int64            `json:"employeeId"`
	Date          valueobject.Date `json:"date"`
	Amount        decimal.Decimal  `json:"amount"`
	PaymentType   string           `json:"paymentType"`
	Description   string           `json:"description,omitempty"`
	TransactionID *int64           `json:"transactionId,omitempty"`
}

// NewEmployeePayment validates a payment. The date must already be defaulted.
func NewEmployeePayment(employeeID int64, date valueobject.Date, amount decimal.Decimal, paymentType, description string, transactionID *int64) (*EmployeePayment, error) {
	if employeeID <= 0 {
		return nil, shared.Validation("employeeId is required")
	}
	if date.IsZero() {
		return nil, shared.Validation("payment date is required")
	}
	if _, err := valueobject.NewAmount(amount); err != nil {
		return nil, shared.Validation("payment amount cannot be negative")
	}
	paymentType = strings.TrimSpace(paymentType)
	if paymentType == "" {
		return nil, shared.Validation("paymentType is required")
	}
	return &EmployeePayment{
		EmployeeID:    employeeID,
		Date:          date,
		Amount:        amount,
		PaymentType:   paymentType,
		Description:   description,
		TransactionID: transactionID,
	}, nil
}
