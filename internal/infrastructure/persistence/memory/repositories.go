package memory

import (
	"context"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/domain/identity"
	"github.com/bizledger/backend/internal/domain/partner"
)

// UserRepository implements identity.UserRepository
type UserRepository struct {
	table *Table[identity.User]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{table: s.users}
}

// Create inserts the user; username and email are checked atomically
func (r *UserRepository) Create(_ context.Context, user *identity.User) error {
	stored, err := r.table.Insert(*user)
	if err != nil {
		return err
	}
	*user = stored
	return nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(_ context.Context, id int64) (*identity.User, error) {
	return ptr(r.table.Get(id))
}

// FindByUsername finds a user by username
func (r *UserRepository) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	return ptr(r.table.FindUnique(IndexUsername, identity.NormalizeUsername(username)))
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	return ptr(r.table.FindUnique(IndexEmail, identity.NormalizeEmail(email)))
}

// FindAll returns all users
func (r *UserRepository) FindAll(_ context.Context) ([]identity.User, error) {
	return r.table.List(nil), nil
}

// Update applies fn to the stored user
func (r *UserRepository) Update(_ context.Context, id int64, fn func(*identity.User) error) (*identity.User, error) {
	return ptr(r.table.Update(id, fn))
}

// EmployeeRepository implements hr.EmployeeRepository
type EmployeeRepository struct {
	table *Table[hr.Employee]
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(s *Store) *EmployeeRepository {
	return &EmployeeRepository{table: s.employees}
}

// Create stores e and assigns its ID
func (r *EmployeeRepository) Create(_ context.Context, e *hr.Employee) error {
	stored, err := r.table.Insert(*e)
	if err != nil {
		return err
	}
	*e = stored
	return nil
}

// FindByID finds an employee by ID
func (r *EmployeeRepository) FindByID(_ context.Context, id int64) (*hr.Employee, error) {
	return ptr(r.table.Get(id))
}

// FindAll returns employees matching filter
func (r *EmployeeRepository) FindAll(_ context.Context, filter hr.EmployeeFilter) ([]hr.Employee, error) {
	return r.table.List(filter.Matches), nil
}

// Update merges changes into the stored employee
func (r *EmployeeRepository) Update(_ context.Context, id int64, fn func(*hr.Employee) error) (*hr.Employee, error) {
	return ptr(r.table.Update(id, fn))
}

// LastID returns the latest assigned employee id
func (r *EmployeeRepository) LastID(_ context.Context) int64 {
	return r.table.LastID()
}

// AttendanceRepository implements hr.AttendanceRepository
type AttendanceRepository struct {
	table *Table[hr.Attendance]
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(s *Store) *AttendanceRepository {
	return &AttendanceRepository{table: s.attendance}
}

// Create stores a and assigns its ID
func (r *AttendanceRepository) Create(_ context.Context, a *hr.Attendance) error {
	stored, err := r.table.Insert(*a)
	if err != nil {
		return err
	}
	*a = stored
	return nil
}

// FindByID finds an attendance record by ID
func (r *AttendanceRepository) FindByID(_ context.Context, id int64) (*hr.Attendance, error) {
	return ptr(r.table.Get(id))
}

// FindAll returns every attendance record
func (r *AttendanceRepository) FindAll(_ context.Context) ([]hr.Attendance, error) {
	return r.table.List(nil), nil
}

// FindByEmployee scans for records of one employee
func (r *AttendanceRepository) FindByEmployee(_ context.Context, employeeID int64) ([]hr.Attendance, error) {
	return r.table.List(func(a hr.Attendance) bool { return a.EmployeeID == employeeID }), nil
}

// EmployeePaymentRepository implements hr.EmployeePaymentRepository
type EmployeePaymentRepository struct {
	table *Table[hr.EmployeePayment]
}

// NewEmployeePaymentRepository creates a new EmployeePaymentRepository
func NewEmployeePaymentRepository(s *Store) *EmployeePaymentRepository {
	return &EmployeePaymentRepository{table: s.employeePayments}
}

// Create stores p and assigns its ID
func (r *EmployeePaymentRepository) Create(_ context.Context, p *hr.EmployeePayment) error {
	stored, err := r.table.Insert(*p)
	if err != nil {
		return err
	}
	*p = stored
	return nil
}

// FindByID finds a payment by ID
func (r *EmployeePaymentRepository) FindByID(_ context.Context, id int64) (*hr.EmployeePayment, error) {
	return ptr(r.table.Get(id))
}

// FindAll returns every payment
func (r *EmployeePaymentRepository) FindAll(_ context.Context) ([]hr.EmployeePayment, error) {
	return r.table.List(nil), nil
}

// FindByEmployee scans for payments of one employee
func (r *EmployeePaymentRepository) FindByEmployee(_ context.Context, employeeID int64) ([]hr.EmployeePayment, error) {
	return r.table.List(func(p hr.EmployeePayment) bool { return p.EmployeeID == employeeID }), nil
}

// TransactionRepository implements finance.TransactionRepository
type TransactionRepository struct {
	table *Table[finance.Transaction]
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(s *Store) *TransactionRepository {
	return &TransactionRepository{table: s.transactions}
}

// Create stores t and assigns its ID
func (r *TransactionRepository) Create(_ context.Context, t *finance.Transaction) error {
	stored, err := r.table.Insert(*t)
	if err != nil {
		return err
	}
	*t = stored
	return nil
}

// FindByID finds a transaction by ID
func (r *TransactionRepository) FindByID(_ context.Context, id int64) (*finance.Transaction, error) {
	return ptr(r.table.Get(id))
}

// FindAll returns transactions matching filter
func (r *TransactionRepository) FindAll(_ context.Context, filter finance.TransactionFilter) ([]finance.Transaction, error) {
	return r.table.List(filter.Matches), nil
}

// InvoiceRepository implements finance.InvoiceRepository
type InvoiceRepository struct {
	table *Table[finance.Invoice]
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(s *Store) *InvoiceRepository {
	return &InvoiceRepository{table: s.invoices}
}

// Create inserts the invoice; the invoice number is checked atomically
func (r *InvoiceRepository) Create(_ context.Context, i *finance.Invoice) error {
	stored, err := r.table.Insert(*i)
	if err != nil {
		return err
	}
	*i = stored
	return nil
}

// FindByID finds an invoice by ID
func (r *InvoiceRepository) FindByID(_ context.Context, id int64) (*finance.Invoice, error) {
	return ptr(r.table.Get(id))
}

// FindByInvoiceNumber finds an invoice by its unique number
func (r *InvoiceRepository) FindByInvoiceNumber(_ context.Context, number string) (*finance.Invoice, error) {
	return ptr(r.table.FindUnique(IndexInvoiceNumber, number))
}

// FindAll returns invoices matching filter
func (r *InvoiceRepository) FindAll(_ context.Context, filter finance.InvoiceFilter) ([]finance.Invoice, error) {
	return r.table.List(filter.Matches), nil
}

// UpdateStatus changes only the status field
func (r *InvoiceRepository) UpdateStatus(_ context.Context, id int64, status finance.InvoiceStatus) (*finance.Invoice, error) {
	return ptr(r.table.Update(id, func(i *finance.Invoice) error {
		return i.SetStatus(status)
	}))
}

// CompanyRepository implements partner.CompanyRepository
type CompanyRepository struct {
	table *Table[partner.Company]
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(s *Store) *CompanyRepository {
	return &CompanyRepository{table: s.companies}
}

// Create stores c and assigns its ID
func (r *CompanyRepository) Create(_ context.Context, c *partner.Company) error {
	stored, err := r.table.Insert(*c)
	if err != nil {
		return err
	}
	*c = stored
	return nil
}

// FindByID finds a company by ID
func (r *CompanyRepository) FindByID(_ context.Context, id int64) (*partner.Company, error) {
	return ptr(r.table.Get(id))
}

// FindAll returns companies matching filter
func (r *CompanyRepository) FindAll(_ context.Context, filter partner.CompanyFilter) ([]partner.Company, error) {
	return r.table.List(filter.Matches), nil
}

// Update merges changes into the stored company
func (r *CompanyRepository) Update(_ context.Context, id int64, fn func(*partner.Company) error) (*partner.Company, error) {
	return ptr(r.table.Update(id, fn))
}

// CompanyTransactionRepository implements partner.CompanyTransactionRepository
type CompanyTransactionRepository struct {
	table *Table[partner.CompanyTransaction]
}

// NewCompanyTransactionRepository creates a new CompanyTransactionRepository
func NewCompanyTransactionRepository(s *Store) *CompanyTransactionRepository {
	return &CompanyTransactionRepository{table: s.companyTransactions}
}

// Create stores t and assigns its ID
func (r *CompanyTransactionRepository) Create(_ context.Context, t *partner.CompanyTransaction) error {
	stored, err := r.table.Insert(*t)
	if err != nil {
		return err
	}
	*t = stored
	return nil
}

// FindByID finds a ledger entry by ID
func (r *CompanyTransactionRepository) FindByID(_ context.Context, id int64) (*partner.CompanyTransaction, error) {
	return ptr(r.table.Get(id))
}

// FindAll returns every ledger entry
func (r *CompanyTransactionRepository) FindAll(_ context.Context) ([]partner.CompanyTransaction, error) {
	return r.table.List(nil), nil
}

// FindByCompany scans for entries of one company
func (r *CompanyTransactionRepository) FindByCompany(_ context.Context, companyID int64) ([]partner.CompanyTransaction, error) {
	return r.table.List(func(t partner.CompanyTransaction) bool { return t.CompanyID == companyID }), nil
}

func ptr[T any](v T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Compile-time interface checks
var (
	_ identity.UserRepository              = (*UserRepository)(nil)
	_ hr.EmployeeRepository                = (*EmployeeRepository)(nil)
	_ hr.AttendanceRepository              = (*AttendanceRepository)(nil)
	_ hr.EmployeePaymentRepository         = (*EmployeePaymentRepository)(nil)
	_ finance.TransactionRepository        = (*TransactionRepository)(nil)
	_ finance.InvoiceRepository            = (*InvoiceRepository)(nil)
	_ partner.CompanyRepository            = (*CompanyRepository)(nil)
	_ partner.CompanyTransactionRepository = (*CompanyTransactionRepository)(nil)
)
