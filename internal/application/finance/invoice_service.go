package finance

import (
	"context"

	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/infrastructure/logger"
)

// InvoiceService issues invoices and tracks their status
type InvoiceService struct {
	invoiceRepo finance.InvoiceRepository
	clock       shared.Clock
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo finance.InvoiceRepository, clock shared.Clock) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		clock:       clock,
	}
}

func (s *InvoiceService) today() valueobject.Date {
	return valueobject.DateOf(s.clock.Now())
}

// Create issues a new invoice. The invoice number must be unique.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if req.Amount == nil {
		return nil, shared.Validation("amount is required")
	}
	today := s.today()
	invoice, err := finance.NewInvoice(finance.InvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		ClientName:    req.ClientName,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Amount:        *req.Amount,
		Status:        finance.InvoiceStatus(req.Status),
		Notes:         req.Notes,
	}, today)
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		logger.L(ctx).Warn("Invoice rejected",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.Error(err),
		)
		return nil, err
	}

	logger.L(ctx).Info("Invoice issued",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	resp := ToInvoiceResponse(invoice, today)
	return &resp, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id int64) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice, s.today())
	return &resp, nil
}

// GetByNumber retrieves an invoice by its invoice number
func (s *InvoiceService) GetByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByInvoiceNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice, s.today())
	return &resp, nil
}

// List returns invoices in id order. An empty status lists all.
func (s *InvoiceService) List(ctx context.Context, status string) ([]InvoiceResponse, error) {
	var filter finance.InvoiceFilter
	if status != "" {
		st := finance.InvoiceStatus(status)
		if !st.IsValid() {
			return nil, shared.Validation("invalid invoice status %q", status)
		}
		filter.Status = &st
	}
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices, s.today()), nil
}

// UpdateStatus changes only the status of an invoice
func (s *InvoiceService) UpdateStatus(ctx context.Context, id int64, req UpdateInvoiceStatusRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.UpdateStatus(ctx, id, finance.InvoiceStatus(req.Status))
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Invoice status changed",
		zap.Int64("invoice_id", id),
		zap.String("status", string(invoice.Status)),
	)
	resp := ToInvoiceResponse(invoice, s.today())
	return &resp, nil
}
