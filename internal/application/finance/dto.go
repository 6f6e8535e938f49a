package finance

import (
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
)

// CreateTransactionRequest represents a request to record income or expense
type CreateTransactionRequest struct {
	Date            valueobject.Date `json:"date"`
	TransactionType string           `json:"transactionType" binding:"required,oneof=income expense"`
	Category        string           `json:"category" binding:"max=100"`
	Description     string           `json:"description" binding:"max=1000"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	ReferenceID     string           `json:"referenceId" binding:"max=100"`
	RelatedToID     *int64           `json:"relatedToId" binding:"omitempty,gt=0"`
	RelatedToType   string           `json:"relatedToType" binding:"max=50"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              int64            `json:"id"`
	Date            valueobject.Date `json:"date"`
	TransactionType string           `json:"transactionType"`
	Category        string           `json:"category,omitempty"`
	Description     string           `json:"description,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	ReferenceID     string           `json:"referenceId,omitempty"`
	RelatedToID     *int64           `json:"relatedToId,omitempty"`
	RelatedToType   string           `json:"relatedToType,omitempty"`
}

// ToTransactionResponse converts a domain transaction
func ToTransactionResponse(t *finance.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		Date:            t.Date,
		TransactionType: t.TransactionType.String(),
		Category:        t.Category,
		Description:     t.Description,
		Amount:          t.Amount,
		ReferenceID:     t.ReferenceID,
		RelatedToID:     t.RelatedToID,
		RelatedToType:   t.RelatedToType,
	}
}

// ToTransactionResponses converts a list of domain transactions
func ToTransactionResponses(transactions []finance.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		out[i] = ToTransactionResponse(&transactions[i])
	}
	return out
}

// CreateInvoiceRequest represents a request to issue an invoice
type CreateInvoiceRequest struct {
	InvoiceNumber string           `json:"invoiceNumber" binding:"required,min=1,max=50"`
	ClientName    string           `json:"clientName" binding:"max=200"`
	IssueDate     valueobject.Date `json:"issueDate"`
	DueDate       valueobject.Date `json:"dueDate"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	Status        string           `json:"status" binding:"omitempty,oneof=pending paid overdue"`
	Notes         string           `json:"notes" binding:"max=1000"`
}

// UpdateInvoiceStatusRequest changes an invoice's status
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid overdue"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            int64            `json:"id"`
	InvoiceNumber string           `json:"invoiceNumber"`
	ClientName    string           `json:"clientName,omitempty"`
	IssueDate     valueobject.Date `json:"issueDate"`
	DueDate       valueobject.Date `json:"dueDate"`
	Amount        decimal.Decimal  `json:"amount"`
	Status        string           `json:"status"`
	Notes         string           `json:"notes,omitempty"`
	PastDue       bool             `json:"pastDue"`
}

// ToInvoiceResponse converts a domain invoice. today decides pastDue.
func ToInvoiceResponse(i *finance.Invoice, today valueobject.Date) InvoiceResponse {
	return InvoiceResponse{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		ClientName:    i.ClientName,
		IssueDate:     i.IssueDate,
		DueDate:       i.DueDate,
		Amount:        i.Amount,
		Status:        string(i.Status),
		Notes:         i.Notes,
		PastDue:       i.IsPastDue(today),
	}
}

// ToInvoiceResponses converts a list of domain invoices
func ToInvoiceResponses(invoices []finance.Invoice, today valueobject.Date) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i], today)
	}
	return out
}
