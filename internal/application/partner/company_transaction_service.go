package partner

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/report"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/infrastructure/logger"
)

// CompanyTransactionService keeps the per-company ledger
type CompanyTransactionService struct {
	companyRepo partner.CompanyRepository
	txnRepo     partner.CompanyTransactionRepository
	clock       shared.Clock
}

// NewCompanyTransactionService creates a new CompanyTransactionService
func NewCompanyTransactionService(
	companyRepo partner.CompanyRepository,
	txnRepo partner.CompanyTransactionRepository,
	clock shared.Clock,
) *CompanyTransactionService {
	return &CompanyTransactionService{
		companyRepo: companyRepo,
		txnRepo:     txnRepo,
		clock:       clock,
	}
}

// Create adds a ledger entry for an existing company. A missing date means today.
func (s *CompanyTransactionService) Create(ctx context.Context, req CreateCompanyTransactionRequest) (*CompanyTransactionResponse, error) {
	if req.Amount == nil {
		return nil, shared.Validation("amount is required")
	}
	txn, err := partner.NewCompanyTransaction(partner.CompanyTransactionInput{
		CompanyID:       req.CompanyID,
		Date:            req.Date,
		Amount:          *req.Amount,
		TransactionType: partner.CompanyTransactionType(req.TransactionType),
		Description:     req.Description,
		InvoiceNumber:   req.InvoiceNumber,
		TransactionID:   req.TransactionID,
	}, valueobject.DateOf(s.clock.Now()))
	if err != nil {
		return nil, err
	}

	_, err = s.companyRepo.FindByID(ctx, req.CompanyID)
	if errors.Is(err, shared.ErrNotFound) {
		err = shared.InvalidReference("companyId", req.CompanyID)
	}
	if err != nil {
		logger.L(ctx).Warn("Company transaction rejected", zap.Int64("company_id", req.CompanyID), zap.Error(err))
		return nil, err
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Company transaction recorded",
		zap.Int64("company_transaction_id", txn.ID),
		zap.Int64("company_id", txn.CompanyID),
		zap.String("type", string(txn.TransactionType)),
	)
	resp := ToCompanyTransactionResponse(txn)
	return &resp, nil
}

// GetByID retrieves a ledger entry by ID
func (s *CompanyTransactionService) GetByID(ctx context.Context, id int64) (*CompanyTransactionResponse, error) {
	txn, err := s.txnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCompanyTransactionResponse(txn)
	return &resp, nil
}

// List returns every ledger entry in id order
func (s *CompanyTransactionService) List(ctx context.Context) ([]CompanyTransactionResponse, error) {
	txns, err := s.txnRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToCompanyTransactionResponses(txns), nil
}

// ListByCompany returns one company's entries; NOT_FOUND if the company does not exist
func (s *CompanyTransactionService) ListByCompany(ctx context.Context, companyID int64) ([]CompanyTransactionResponse, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return ToCompanyTransactionResponses(txns), nil
}

// Ledger totals incoming and outgoing money for one company
func (s *CompanyTransactionService) Ledger(ctx context.Context, companyID int64) (*report.CompanyLedger, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	ledger := report.BuildCompanyLedger(*company, txns)
	return &ledger, nil
}
