package finance

import "context"

// TransactionFilter selects transactions by type. Nil matches everything.
type TransactionFilter struct {
	Type *TransactionType
}

// Matches reports whether t passes the filter
func (f TransactionFilter) Matches(t Transaction) bool {
	return f.Type == nil || t.TransactionType == *f.Type
}

// InvoiceFilter selects invoices by status. Nil matches everything.
type InvoiceFilter struct {
	Status *InvoiceStatus
}

// Matches reports whether i passes the filter
func (f InvoiceFilter) Matches(i Invoice) bool {
	return f.Status == nil || i.Status == *f.Status
}

// TransactionRepository defines transaction persistence.
// Transactions are immutable once stored.
type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	FindByID(ctx context.Context, id int64) (*Transaction, error)
	FindAll(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
}

// InvoiceRepository defines invoice persistence
type InvoiceRepository interface {
	// Create checks invoice number uniqueness and inserts atomically.
	// A collision returns DUPLICATE_KEY and consumes no id.
	Create(ctx context.Context, i *Invoice) error

	FindByID(ctx context.Context, id int64) (*Invoice, error)
	FindByInvoiceNumber(ctx context.Context, number string) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	UpdateStatus(ctx context.Context, id int64, status InvoiceStatus) (*Invoice, error)
}
