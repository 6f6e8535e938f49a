package partner

import (
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
)

// =============================================================================
// Company DTOs
// =============================================================================

// CreateCompanyRequest represents a request to create a partner company
type CreateCompanyRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	Type             string           `json:"type" binding:"max=50"`
	ContactPerson    string           `json:"contactPerson" binding:"max=100"`
	Email            string           `json:"email" binding:"omitempty,email,max=200"`
	Phone            string           `json:"phone" binding:"max=50"`
	Address          string           `json:"address" binding:"max=500"`
	RegistrationDate valueobject.Date `json:"registrationDate"`
	Status           string           `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes            string           `json:"notes" binding:"max=2000"`
}

// UpdateCompanyRequest is a partial update; omitted fields keep their value
type UpdateCompanyRequest struct {
	Name             *string           `json:"name" binding:"omitempty,min=1,max=200"`
	Type             *string           `json:"type" binding:"omitempty,max=50"`
	ContactPerson    *string           `json:"contactPerson" binding:"omitempty,max=100"`
	Email            *string           `json:"email" binding:"omitempty,email,max=200"`
	Phone            *string           `json:"phone" binding:"omitempty,max=50"`
	Address          *string           `json:"address" binding:"omitempty,max=500"`
	RegistrationDate *valueobject.Date `json:"registrationDate"`
	Status           *string           `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes            *string           `json:"notes" binding:"omitempty,max=2000"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Type             string           `json:"type,omitempty"`
	ContactPerson    string           `json:"contactPerson,omitempty"`
	Email            string           `json:"email,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	Address          string           `json:"address,omitempty"`
	RegistrationDate valueobject.Date `json:"registrationDate"`
	Status           string           `json:"status"`
	Notes            string           `json:"notes,omitempty"`
}

// ToCompanyResponse converts a domain company
func ToCompanyResponse(c *partner.Company) CompanyResponse {
	return CompanyResponse{
		ID:               c.ID,
		Name:             c.Name,
		Type:             c.Type,
		ContactPerson:    c.ContactPerson,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		RegistrationDate: c.RegistrationDate,
		Status:           string(c.Status),
		Notes:            c.Notes,
	}
}

// ToCompanyResponses converts a list of domain companies
func ToCompanyResponses(companies []partner.Company) []CompanyResponse {
	out := make([]CompanyResponse, len(companies))
	for i := range companies {
		out[i] = ToCompanyResponse(&companies[i])
	}
	return out
}

// =============================================================================
// Company transaction DTOs
// =============================================================================

// CreateCompanyTransactionRequest represents a request to add a ledger entry
type CreateCompanyTransactionRequest struct {
	CompanyID       int64            `json:"companyId" binding:"required,gt=0"`
	Date            valueobject.Date `json:"date"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	TransactionType string           `json:"transactionType" binding:"required,oneof=incoming outgoing"`
	Description     string           `json:"description" binding:"max=1000"`
	InvoiceNumber   string           `json:"invoiceNumber" binding:"max=50"`
	TransactionID   *int64           `json:"transactionId" binding:"omitempty,gt=0"`
}

// CompanyTransactionResponse represents a ledger entry in API responses
type CompanyTransactionResponse struct {
	ID              int64            `json:"id"`
	CompanyID       int64            `json:"companyId"`
	Date            valueobject.Date `json:"date"`
	Amount          decimal.Decimal  `json:"amount"`
	TransactionType string           `json:"transactionType"`
	Description     string           `json:"description,omitempty"`
	InvoiceNumber   string           `json:"invoiceNumber,omitempty"`
	TransactionID   *int64           `json:"transactionId,omitempty"`
}

// ToCompanyTransactionResponse converts a domain ledger entry
func ToCompanyTransactionResponse(t *partner.CompanyTransaction) CompanyTransactionResponse {
	return CompanyTransactionResponse{
		ID:              t.ID,
		CompanyID:       t.CompanyID,
		Date:            t.Date,
		Amount:          t.Amount,
		TransactionType: string(t.TransactionType),
		Description:     t.Description,
		InvoiceNumber:   t.InvoiceNumber,
		TransactionID:   t.TransactionID,
	}
}

// ToCompanyTransactionResponses converts a list of ledger entries
func ToCompanyTransactionResponses(txns []partner.CompanyTransaction) []CompanyTransactionResponse {
	out := make([]CompanyTransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToCompanyTransactionResponse(&txns[i])
	}
	return out
}
