package memory

import (
	"fmt"
	"time"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/domain/identity"
	"github.com/bizledger/backend/internal/domain/partner"
)

// Unique index names
const (
	IndexUsername      = "username"
	IndexEmail         = "email"
	IndexInvoiceNumber = "invoiceNumber"
)

// Store owns one table per entity type. It is created once per process and
// handed to the repositories; tests create their own.
type Store struct {
	users               *Table[identity.User]
	employees           *Table[hr.Employee]
	attendance          *Table[hr.Attendance]
	employeePayments    *Table[hr.EmployeePayment]
	transactions        *Table[finance.Transaction]
	invoices            *Table[finance.Invoice]
	companies           *Table[partner.Company]
	companyTransactions *Table[partner.CompanyTransaction]
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users: NewTable("user",
			func(u *identity.User, id int64) { u.ID = id },
			func(u identity.User) []UniqueKey {
				return []UniqueKey{
					{Index: IndexUsername, Value: identity.NormalizeUsername(u.Username)},
					{Index: IndexEmail, Value: identity.NormalizeEmail(u.Email)},
				}
			}),
		employees: NewTable("employee",
			func(e *hr.Employee, id int64) { e.ID = id }, nil),
		attendance: NewTable("attendance",
			func(a *hr.Attendance, id int64) { a.ID = id }, nil),
		employeePayments: NewTable("employee payment",
			func(p *hr.EmployeePayment, id int64) { p.ID = id }, nil),
		transactions: NewTable("transaction",
			func(t *finance.Transaction, id int64) { t.ID = id }, nil),
		invoices: NewTable("invoice",
			func(i *finance.Invoice, id int64) { i.ID = id },
			func(i finance.Invoice) []UniqueKey {
				return []UniqueKey{{Index: IndexInvoiceNumber, Value: i.InvoiceNumber}}
			}),
		companies: NewTable("company",
			func(c *partner.Company, id int64) { c.ID = id }, nil),
		companyTransactions: NewTable("company transaction",
			func(t *partner.CompanyTransaction, id int64) { t.ID = id }, nil),
	}
}

// Snapshot is the serializable state of the whole store
type Snapshot struct {
	Version             int                                       `json:"version"`
	TakenAt             time.Time                                 `json:"takenAt"`
	Users               TableSnapshot[identity.User]              `json:"users"`
	Employees           TableSnapshot[hr.Employee]                `json:"employees"`
	Attendance          TableSnapshot[hr.Attendance]              `json:"attendance"`
	EmployeePayments    TableSnapshot[hr.EmployeePayment]         `json:"employeePayments"`
	Transactions        TableSnapshot[finance.Transaction]        `json:"transactions"`
	Invoices            TableSnapshot[finance.Invoice]            `json:"invoices"`
	Companies           TableSnapshot[partner.Company]            `json:"companies"`
	CompanyTransactions TableSnapshot[partner.CompanyTransaction] `json:"companyTransactions"`
}

// SnapshotVersion is written into every snapshot
const SnapshotVersion = 1

// Snapshot copies every table. Tables are read one after another, so the
// result is consistent per table, not across tables.
func (s *Store) Snapshot(takenAt time.Time) *Snapshot {
	return &Snapshot{
		Version:             SnapshotVersion,
		TakenAt:             takenAt,
		Users:               s.users.snapshot(),
		Employees:           s.employees.snapshot(),
		Attendance:          s.attendance.snapshot(),
		EmployeePayments:    s.employeePayments.snapshot(),
		Transactions:        s.transactions.snapshot(),
		Invoices:            s.invoices.snapshot(),
		Companies:           s.companies.snapshot(),
		CompanyTransactions: s.companyTransactions.snapshot(),
	}
}

// Restore replaces the contents of every table with the snapshot. The whole
// snapshot is validated before any table changes. Id counters never move
// backwards.
func (s *Store) Restore(snap *Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	users, err := s.users.prepare(snap.Users, func(u identity.User) int64 { return u.ID })
	if err != nil {
		return fmt.Errorf("restore users: %w", err)
	}
	employees, err := s.employees.prepare(snap.Employees, func(e hr.Employee) int64 { return e.ID })
	if err != nil {
		return fmt.Errorf("restore employees: %w", err)
	}
	attendance, err := s.attendance.prepare(snap.Attendance, func(a hr.Attendance) int64 { return a.ID })
	if err != nil {
		return fmt.Errorf("restore attendance: %w", err)
	}
	payments, err := s.employeePayments.prepare(snap.EmployeePayments, func(p hr.EmployeePayment) int64 { return p.ID })
	if err != nil {
		return fmt.Errorf("restore employee payments: %w", err)
	}
	transactions, err := s.transactions.prepare(snap.Transactions, func(t finance.Transaction) int64 { return t.ID })
	if err != nil {
		return fmt.Errorf("restore transactions: %w", err)
	}
	invoices, err := s.invoices.prepare(snap.Invoices, func(i finance.Invoice) int64 { return i.ID })
	if err != nil {
		return fmt.Errorf("restore invoices: %w", err)
	}
	companies, err := s.companies.prepare(snap.Companies, func(c partner.Company) int64 { return c.ID })
	if err != nil {
		return fmt.Errorf("restore companies: %w", err)
	}
	companyTxns, err := s.companyTransactions.prepare(snap.CompanyTransactions, func(t partner.CompanyTransaction) int64 { return t.ID })
	if err != nil {
		return fmt.Errorf("restore company transactions: %w", err)
	}

	s.users.commit(users)
	s.employees.commit(employees)
	s.attendance.commit(attendance)
	s.employeePayments.commit(payments)
	s.transactions.commit(transactions)
	s.invoices.commit(invoices)
	s.companies.commit(companies)
	s.companyTransactions.commit(companyTxns)
	return nil
}
