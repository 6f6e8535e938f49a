package report

import (
	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CompanyLedger is the running position with one partner company
type CompanyLedger struct {
	Company      partner.Company              `json:"company"`
	Incoming     decimal.Decimal              `json:"incoming"`
	Outgoing     decimal.Decimal              `json:"outgoing"`
	Balance      decimal.Decimal              `json:"balance"` // Incoming - Outgoing
	Transactions []partner.CompanyTransaction `json:"transactions"`
}

// BuildCompanyLedger totals a company's entries. Order is preserved.
func BuildCompanyLedger(company partner.Company, txns []partner.CompanyTransaction) CompanyLedger {
	l := CompanyLedger{
		Company:      company,
		Incoming:     decimal.Zero,
		Outgoing:     decimal.Zero,
		Transactions: txns,
	}
	for _, t := range txns {
		switch t.TransactionType {
		case partner.CompanyTransactionIncoming:
			l.Incoming = l.Incoming.Add(t.Amount)
		case partner.CompanyTransactionOutgoing:
			l.Outgoing = l.Outgoing.Add(t.Amount)
		}
	}
	l.Balance = l.Incoming.Sub(l.Outgoing)
	if l.Transactions == nil {
		l.Transactions = []partner.CompanyTransaction{}
	}
	return l
}

// PaymentSummary totals what one employee has been paid
type PaymentSummary struct {
	EmployeeID      int64                `json:"employeeId"`
	EmployeeName    string               `json:"employeeName"`
	Count           int                  `json:"count"`
	Total           decimal.Decimal      `json:"total"`
	LastPaymentDate valueobject.Date     `json:"lastPaymentDate"`
	ByType          map[string]string    `json:"byType"`
	Payments        []hr.EmployeePayment `json:"payments"`
}

// BuildPaymentSummary totals payments overall and per payment type
func BuildPaymentSummary(employee hr.Employee, payments []hr.EmployeePayment) PaymentSummary {
	s := PaymentSummary{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Count:        len(payments),
		Total:        decimal.Zero,
		ByType:       map[string]string{},
		Payments:     payments,
	}
	byType := map[string]decimal.Decimal{}
	for _, p := range payments {
		s.Total = s.Total.Add(p.Amount)
		byType[p.PaymentType] = byType[p.PaymentType].Add(p.Amount)
		if p.Date.After(s.LastPaymentDate) {
			s.LastPaymentDate = p.Date
		}
	}
	for k, v := range byType {
		s.ByType[k] = valueobject.FormatAmount(v)
	}
	if s.Payments == nil {
		s.Payments = []hr.EmployeePayment{}
	}
	return s
}
