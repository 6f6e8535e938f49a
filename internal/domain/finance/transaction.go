package finance

import (
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a money movement
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid checks if the type is a known TransactionType
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// Transaction is a single income or expense entry.
// RelatedToID/RelatedToType form a weak polymorphic reference and are not checked.
type Transaction struct {
	shared.BaseEntity
	Date            valueobject.Date `json:"date"`
	TransactionType TransactionType  `json:"transactionType"`
	Category        string           `json:"category,omitempty"`
	Description     string           `json:"description,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	ReferenceID     string           `json:"referenceId,omitempty"`
	RelatedToID     *int64           `json:"relatedToId,omitempty"`
	RelatedToType   string           `json:"relatedToType,omitempty"`
}

// TransactionInput carries the fields accepted on creation
type TransactionInput struct {
	Date            valueobject.Date
	TransactionType TransactionType
	Category        string
	Description     string
	Amount          decimal.Decimal
	ReferenceID     string
	RelatedToID     *int64
	RelatedToType   string
}

// NewTransaction validates input. A zero date is replaced by today.
func NewTransaction(in TransactionInput, today valueobject.Date) (*Transaction, error) {
	if !in.TransactionType.IsValid() {
		return nil, shared.Validation("transactionType must be 'income' or 'expense', got %q", in.TransactionType)
	}
	if _, err := valueobject.NewAmount(in.Amount); err != nil {
		return nil, shared.Validation("transaction amount cannot be negative")
	}
	if in.RelatedToID != nil && strings.TrimSpace(in.RelatedToType) == "" {
		return nil, shared.Validation("relatedToType is required when relatedToId is set")
	}
	date := in.Date
	if date.IsZero() {
		date = today
	}
	return &Transaction{
		Date:            date,
		TransactionType: in.TransactionType,
		Category:        strings.TrimSpace(in.Category),
		Description:     in.Description,
		Amount:          in.Amount,
		ReferenceID:     strings.TrimSpace(in.ReferenceID),
		RelatedToID:     in.RelatedToID,
		RelatedToType:   strings.TrimSpace(in.RelatedToType),
	}, nil
}

// IsIncome reports whether the transaction adds to the balance
func (t Transaction) IsIncome() bool {
	return t.TransactionType == TransactionTypeIncome
}

// IsExpense reports whether the transaction subtracts from the balance
func (t Transaction) IsExpense() bool {
	return t.TransactionType == TransactionTypeExpense
}
