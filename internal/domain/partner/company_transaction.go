package partner

import (
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CompanyTransactionType is the direction of money relative to us
type CompanyTransactionType string

const (
	CompanyTransactionIncoming CompanyTransactionType = "incoming"
	CompanyTransactionOutgoing CompanyTransactionType = "outgoing"
)

// IsValid checks if the type is a known CompanyTransactionType
func (t CompanyTransactionType) IsValid() bool {
	return t == CompanyTransactionIncoming || t == CompanyTransactionOutgoing
}

// CompanyTransaction is an entry in a partner company's ledger.
// CompanyID is a weak reference checked only at creation.
type CompanyTransaction struct {
	shared.BaseEntity
	CompanyID       int64                  `json:"companyId"`
	Date            valueobject.Date       `json:"date"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionType CompanyTransactionType `json:"transactionType"`
	Description     string                 `json:"description,omitempty"`
	InvoiceNumber   string                 `json:"invoiceNumber,omitempty"`
	TransactionID   *int64                 `json:"transactionId,omitempty"`
}

// CompanyTransactionInput carries the fields accepted on creation
type CompanyTransactionInput struct {
	CompanyID       int64
	Date            valueobject.Date
	Amount          decimal.Decimal
	TransactionType CompanyTransactionType
	Description     string
	InvoiceNumber   string
	TransactionID   *int64
}

// NewCompanyTransaction validates input. A zero date is replaced by today.
func NewCompanyTransaction(in CompanyTransactionInput, today valueobject.Date) (*CompanyTransaction, error) {
	if in.CompanyID <= 0 {
		return nil, shared.Validation("companyId is required")
	}
	if !in.TransactionType.IsValid() {
		return nil, shared.Validation("transactionType must be 'incoming' or 'outgoing', got %q", in.TransactionType)
	}
	if _, err := valueobject.NewAmount(in.Amount); err != nil {
		return nil, shared.Validation("company transaction amount cannot be negative")
	}
	date := in.Date
	if date.IsZero() {
		date = today
	}
	return &CompanyTransaction{
		CompanyID:       in.CompanyID,
		Date:            date,
		Amount:          in.Amount,
		TransactionType: in.TransactionType,
		Description:     in.Description,
		InvoiceNumber:   strings.TrimSpace(in.InvoiceNumber),
		TransactionID:   in.TransactionID,
	}, nil
}
