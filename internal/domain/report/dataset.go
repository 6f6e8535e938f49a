package report

import (
	"strconv"
	"time"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Kind identifies a report dataset
type Kind string

const (
	KindFinancial           Kind = "financial"
	KindEmployees           Kind = "employees"
	KindInvoices            Kind = "invoices"
	KindAttendance          Kind = "attendance"
	KindEmployeePayments    Kind = "employee-payments"
	KindCompanyTransactions Kind = "company-transactions"
)

// Kinds lists every supported dataset kind
var Kinds = []Kind{
	KindFinancial,
	KindEmployees,
	KindInvoices,
	KindAttendance,
	KindEmployeePayments,
	KindCompanyTransactions,
}

// ParseKind validates a kind name
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", shared.Validation("unknown report kind %q", s)
}

// DateRange is an inclusive calendar window. A zero bound is open.
type DateRange struct {
	Start valueobject.Date `json:"start"`
	End   valueobject.Date `json:"end"`
}

// NewDateRange rejects a window whose start is after its end
func NewDateRange(start, end valueobject.Date) (DateRange, error) {
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return DateRange{}, shared.Validation("start %s is after end %s", start, end)
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether start <= d <= end
func (r DateRange) Contains(d valueobject.Date) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// Column describes one field of a tabular dataset
type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Totals summarizes a financial dataset
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// Dataset is the input of every export renderer.
// Records holds the typed rows; Columns and Rows hold the same data as text.
type Dataset struct {
	Kind        Kind       `json:"kind"`
	Range       DateRange  `json:"range"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Columns     []Column   `json:"columns"`
	Rows        [][]string `json:"rows"`
	Records     any        `json:"records"`
	Totals      *Totals    `json:"totals,omitempty"`
}

func filterByDate[T any](items []T, r DateRange, date func(T) valueobject.Date) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if r.Contains(date(item)) {
			out = append(out, item)
		}
	}
	return out
}

// FinancialDataset filters transactions by Transaction.date
func FinancialDataset(transactions []finance.Transaction, r DateRange, generatedAt time.Time) Dataset {
	filtered := filterByDate(transactions, r, func(t finance.Transaction) valueobject.Date { return t.Date })
	income, expenses := sumByType(filtered)
	rows := make([][]string, 0, len(filtered))
	for _, t := range filtered {
		rows = append(rows, []string{
			formatID(t.ID), t.Date.String(), t.TransactionType.String(), t.Category, t.Description, valueobject.FormatAmount(t.Amount),
		})
	}
	return Dataset{
		Kind:        KindFinancial,
		Range:       r,
		GeneratedAt: generatedAt,
		Columns:     columns("id", "date", "transactionType", "category", "description", "amount"),
		Rows:        rows,
		Records:     filtered,
		Totals:      &Totals{Income: income, Expenses: expenses, Balance: income.Sub(expenses)},
	}
}

// EmployeesDataset lists every employee; the range is ignored
func EmployeesDataset(employees []hr.Employee, r DateRange, generatedAt time.Time) Dataset {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		salary := ""
		if e.Salary != nil {
			salary = valueobject.FormatAmount(*e.Salary)
		}
		rows = append(rows, []string{
			formatID(e.ID), e.Name, e.Position, e.Department, e.Email, e.HireDate.String(), salary, strconv.FormatBool(e.IsActive),
		})
	}
	return Dataset{
		Kind:        KindEmployees,
		Range:       r,
		GeneratedAt: generatedAt,
		Columns:     columns("id", "name", "position", "department", "email", "hireDate", "salary", "isActive"),
		Rows:        rows,
		Records:     employees,
	}
}

// InvoicesDataset filters invoices by Invoice.issueDate
func InvoicesDataset(invoices []finance.Invoice, r DateRange, generatedAt time.Time) Dataset {
	filtered := filterByDate(invoices, r, func(i finance.Invoice) valueobject.Date { return i.IssueDate })
	rows := make([][]string, 0, len(filtered))
	for _, i := range filtered {
		rows = append(rows, []string{
			formatID(i.ID), i.InvoiceNumber, i.ClientName, i.IssueDate.String(), i.DueDate.String(), valueobject.FormatAmount(i.Amount), string(i.Status),
		})
	}
	return Dataset{
		Kind:        KindInvoices,
		Range:       r,
		GeneratedAt: generatedAt,
		Columns:     columns("id", "invoiceNumber", "clientName", "issueDate", "dueDate", "amount", "status"),
		Rows:        rows,
		Records:     filtered,
	}
}

// AttendanceDataset filters attendance by Attendance.date
func AttendanceDataset(records []hr.Attendance, r DateRange, generatedAt time.Time) Dataset {
	filtered := filterByDate(records, r, func(a hr.Attendance) valueobject.Date { return a.Date })
	rows := make([][]string, 0, len(filtered))
	for _, a := range filtered {
		rows = append(rows, []string{
			formatID(a.ID), formatID(a.EmployeeID), a.Date.String(), a.CheckIn, a.CheckOut, a.Status, a.Notes,
		})
	}
	return Dataset{
		Kind:        KindAttendance,
		Range:       r,
		GeneratedAt: generatedAt,
		Columns:     columns("id", "employeeId", "date", "checkIn", "checkOut", "status", "notes"),
		Rows:        rows,
		Records:     filtered,
	}
}

// EmployeePaymentsDataset filters payments by EmployeePayment.date
func EmployeePaymentsDataset(payments []hr.EmployeePayment, r DateRange, generatedAt time.Time) Dataset {
	filtered := filterByDate(payments, r, func(p hr.EmployeePayment) valueobject.Date { return p.Date })
	rows := make([][]string, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, []string{
			formatID(p.ID), formatID(p.EmployeeID), p.Date.String(), p.PaymentType, valueobject.FormatAmount(p.Amount), p.Description,
		})
	}
	return Dataset{
		Kind:        KindEmployeePayments,
		Range:       r,
		GeneratedAt: generatedAt,
		Columns:     columns("id", "employeeId", "date", "paymentType", "amount", "description"),
		Rows:        rows,
		Records:     filtered,
	}
}

// CompanyTransactionsDataset filters ledger entries by CompanyTransaction.date
func CompanyTransactionsDataset(txns []partner.CompanyTransaction, r DateRange, generatedAt time.Time) Dataset {
	filtered := filterByDate(txns, r, func(t partner.CompanyTransaction) valueobject.Date { return t.Date })
	rows := make([][]string, 0, len(filtered))
	for _, t := range filtered {
		rows = append(rows, []string{
			formatID(t.ID), formatID(t.CompanyID), t.Date.String(), string(t.TransactionType), valueobject.FormatAmount(t.Amount), t.InvoiceNumber, t.Description,
		})
	}
	return Dataset{
		Kind:        KindCompanyTransactions,
		Range:       r,
		GeneratedAt: generatedAt,
		Columns:     columns("id", "companyId", "date", "transactionType", "amount", "invoiceNumber", "description"),
		Rows:        rows,
		Records:     filtered,
	}
}

func columns(keys ...string) []Column {
	cols := make([]Column, len(keys))
	for i, k := range keys {
		cols[i] = Column{Key: k, Title: k}
	}
	return cols
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
