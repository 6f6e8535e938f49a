package finance

import (
	"context"

	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/infrastructure/logger"
)

// TransactionService records income and expense entries
type TransactionService struct {
	transactionRepo finance.TransactionRepository
	clock           shared.Clock
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo finance.TransactionRepository, clock shared.Clock) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Create stores a new transaction. A missing date means today.
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	if req.Amount == nil {
		return nil, shared.Validation("amount is required")
	}
	txn, err := finance.NewTransaction(finance.TransactionInput{
		Date:            req.Date,
		TransactionType: finance.TransactionType(req.TransactionType),
		Category:        req.Category,
		Description:     req.Description,
		Amount:          *req.Amount,
		ReferenceID:     req.ReferenceID,
		RelatedToID:     req.RelatedToID,
		RelatedToType:   req.RelatedToType,
	}, valueobject.DateOf(s.clock.Now()))
	if err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Transaction recorded",
		zap.Int64("transaction_id", txn.ID),
		zap.String("type", txn.TransactionType.String()),
		zap.String("amount", txn.Amount.String()),
	)
	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// GetByID retrieves a transaction by ID
func (s *TransactionService) GetByID(ctx context.Context, id int64) (*TransactionResponse, error) {
	txn, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// List returns transactions in id order. An empty txType lists every type.
func (s *TransactionService) List(ctx context.Context, txType string) ([]TransactionResponse, error) {
	var filter finance.TransactionFilter
	if txType != "" {
		t := finance.TransactionType(txType)
		if !t.IsValid() {
			return nil, shared.Validation("type must be 'income' or 'expense', got %q", txType)
		}
		filter.Type = &t
	}
	transactions, err := s.transactionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(transactions), nil
}
