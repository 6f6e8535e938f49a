package partner

import "context"

// CompanyFilter selects companies by status. Nil matches everything.
type CompanyFilter struct {
	Status *CompanyStatus
}

// Matches reports whether c passes the filter
func (f CompanyFilter) Matches(c Company) bool {
	return f.Status == nil || c.Status == *f.Status
}

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// Create stores c and assigns its ID
	Create(ctx context.Context, c *Company) error

	// FindByID returns a NOT_FOUND error when absent
	FindByID(ctx context.Context, id int64) (*Company, error)

	// FindAll returns matching companies in insertion order
	FindAll(ctx context.Context, filter CompanyFilter) ([]Company, error)

	// Update applies fn to the stored record under the store lock
	Update(ctx context.Context, id int64, fn func(*Company) error) (*Company, error)
}

// CompanyTransactionRepository defines the interface for company ledger persistence
type CompanyTransactionRepository interface {
	Create(ctx context.Context, t *CompanyTransaction) error
	FindByID(ctx context.Context, id int64) (*CompanyTransaction, error)
	FindAll(ctx context.Context) ([]CompanyTransaction, error)

	// FindByCompany returns an empty slice for a company without entries
	FindByCompany(ctx context.Context, companyID int64) ([]CompanyTransaction, error)
}
