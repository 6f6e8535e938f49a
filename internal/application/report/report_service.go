package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/report"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/infrastructure/logger"
)

// Renderer turns a dataset into a document
type Renderer interface {
	// Format is the query value selecting this renderer, e.g. "xlsx"
	Format() string
	ContentType() string
	Render(ctx context.Context, ds report.Dataset) ([]byte, error)
}

// Repositories groups every repository the reports read from
type Repositories struct {
	Employees           hr.EmployeeRepository
	Attendance          hr.AttendanceRepository
	EmployeePayments    hr.EmployeePaymentRepository
	Transactions        finance.TransactionRepository
	Invoices            finance.InvoiceRepository
	CompanyTransactions partner.CompanyTransactionRepository
}

// ExportResult is a rendered report ready to be downloaded
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService builds dashboards and report datasets. Every call
// recomputes from the store.
type ReportService struct {
	repos     Repositories
	clock     shared.Clock
	renderers map[string]Renderer
}

// NewReportService creates a new ReportService
func NewReportService(repos Repositories, clock shared.Clock, renderers ...Renderer) *ReportService {
	s := &ReportService{
		repos:     repos,
		clock:     clock,
		renderers: make(map[string]Renderer, len(renderers)),
	}
	for _, r := range renderers {
		s.renderers[r.Format()] = r
	}
	return s
}

// Dashboard summarizes employees, transactions and invoices
func (s *ReportService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	employees, err := s.repos.Employees.FindAll(ctx, hr.EmployeeFilter{})
	if err != nil {
		return nil, err
	}
	transactions, err := s.repos.Transactions.FindAll(ctx, finance.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	invoices, err := s.repos.Invoices.FindAll(ctx, finance.InvoiceFilter{})
	if err != nil {
		return nil, err
	}
	d := report.BuildDashboard(employees, transactions, invoices)
	return &d, nil
}

// Dataset builds the report of the given kind over an inclusive date range
func (s *ReportService) Dataset(ctx context.Context, kindName string, start, end valueobject.Date) (*report.Dataset, error) {
	kind, err := report.ParseKind(kindName)
	if err != nil {
		return nil, err
	}
	r, err := report.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	var ds report.Dataset
	switch kind {
	case report.KindFinancial:
		transactions, err := s.repos.Transactions.FindAll(ctx, finance.TransactionFilter{})
		if err != nil {
			return nil, err
		}
		ds = report.FinancialDataset(transactions, r, now)
	case report.KindEmployees:
		employees, err := s.repos.Employees.FindAll(ctx, hr.EmployeeFilter{})
		if err != nil {
			return nil, err
		}
		ds = report.EmployeesDataset(employees, r, now)
	case report.KindInvoices:
		invoices, err := s.repos.Invoices.FindAll(ctx, finance.InvoiceFilter{})
		if err != nil {
			return nil, err
		}
		ds = report.InvoicesDataset(invoices, r, now)
	case report.KindAttendance:
		records, err := hr.CollectAllAttendance(ctx, s.repos.Employees, s.repos.Attendance)
		if err != nil {
			return nil, err
		}
		ds = report.AttendanceDataset(records, r, now)
	case report.KindEmployeePayments:
		payments, err := s.repos.EmployeePayments.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		ds = report.EmployeePaymentsDataset(payments, r, now)
	case report.KindCompanyTransactions:
		txns, err := s.repos.CompanyTransactions.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		ds = report.CompanyTransactionsDataset(txns, r, now)
	}
	return &ds, nil
}

// Formats lists the export formats that have a renderer
func (s *ReportService) Formats() []string {
	formats := make([]string, 0, len(s.renderers))
	for f := range s.renderers {
		formats = append(formats, f)
	}
	return formats
}

// Export renders the dataset of the given kind in the requested format
func (s *ReportService) Export(ctx context.Context, kindName, format string, start, end valueobject.Date) (*ExportResult, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, shared.Validation("unsupported export format %q", format)
	}
	ds, err := s.Dataset(ctx, kindName, start, end)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	data, err := renderer.Render(ctx, *ds)
	if err != nil {
		logger.L(ctx).Error("Report export failed",
			zap.String("kind", string(ds.Kind)),
			zap.String("format", format),
			zap.Error(err),
		)
		return nil, fmt.Errorf("render %s report as %s: %w", ds.Kind, format, err)
	}

	result := &ExportResult{
		Filename:    fmt.Sprintf("%s-%s.%s", ds.Kind, ds.GeneratedAt.Format("20060102"), format),
		ContentType: renderer.ContentType(),
		Data:        data,
	}
	logger.L(ctx).Info("Report exported",
		zap.String("kind", string(ds.Kind)),
		zap.String("format", format),
		zap.String("filename", result.Filename),
		zap.Int("rows", len(ds.Rows)),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(began)),
	)
	return result, nil
}
