package report

import (
	"sort"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/shopspring/decimal"
)

// RecentTransactionLimit is how many transactions the dashboard shows
const RecentTransactionLimit = 5

// Dashboard is a read model summarizing the whole store
type Dashboard struct {
	EmployeeCount      int                   `json:"employeeCount"`
	ActiveEmployees    int                   `json:"activeEmployees"`
	Income             decimal.Decimal       `json:"income"`
	Expenses           decimal.Decimal       `json:"expenses"`
	Balance            decimal.Decimal       `json:"balance"`       // Income - Expenses
	PendingInvoices    int                   `json:"pendingInvoices"`
	OverdueInvoices    int                   `json:"overdueInvoices"`
	RecentTransactions []finance.Transaction `json:"recentTransactions"`
}

// BuildDashboard computes the summary. Inputs are not modified.
func BuildDashboard(employees []hr.Employee, transactions []finance.Transaction, invoices []finance.Invoice) Dashboard {
	d := Dashboard{
		EmployeeCount: len(employees),
		Income:        decimal.Zero,
		Expenses:      decimal.Zero,
	}
	for _, e := range employees {
		if e.IsActive {
			d.ActiveEmployees++
		}
	}
	d.Income, d.Expenses = sumByType(transactions)
	d.Balance = d.Income.Sub(d.Expenses)
	for _, inv := range invoices {
		switch inv.Status {
		case finance.InvoiceStatusPending:
			d.PendingInvoices++
		case finance.InvoiceStatusOverdue:
			d.OverdueInvoices++
		}
	}
	d.RecentTransactions = RecentTransactions(transactions, RecentTransactionLimit)
	return d
}

// RecentTransactions returns up to limit transactions, newest date first.
// Ties keep insertion order.
func RecentTransactions(transactions []finance.Transaction, limit int) []finance.Transaction {
	sorted := make([]finance.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func sumByType(transactions []finance.Transaction) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, t := range transactions {
		switch t.TransactionType {
		case finance.TransactionTypeIncome:
			income = income.Add(t.Amount)
		case finance.TransactionTypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return income, expenses
}
