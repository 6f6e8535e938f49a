package hr

import (
	"context"

	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/domain/report"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/infrastructure/logger"
)

// PaymentService records payments made to employees
type PaymentService struct {
	employeeRepo hr.EmployeeRepository
	paymentRepo  hr.EmployeePaymentRepository
	clock        shared.Clock
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(employeeRepo hr.EmployeeRepository, paymentRepo hr.EmployeePaymentRepository, clock shared.Clock) *PaymentService {
	return &PaymentService{
		employeeRepo: employeeRepo,
		paymentRepo:  paymentRepo,
		clock:        clock,
	}
}

// Create stores a payment for an existing employee. A missing date means today.
func (s *PaymentService) Create(ctx context.Context, req CreateEmployeePaymentRequest) (*EmployeePaymentResponse, error) {
	if req.Amount == nil {
		return nil, shared.Validation("amount is required")
	}
	date := req.Date
	if date.IsZero() {
		date = valueobject.DateOf(s.clock.Now())
	}
	payment, err := hr.NewEmployeePayment(req.EmployeeID, date, *req.Amount, req.PaymentType, req.Description, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if err := ensureEmployee(ctx, s.employeeRepo, req.EmployeeID); err != nil {
		logger.L(ctx).Warn("Employee payment rejected", zap.Int64("employee_id", req.EmployeeID), zap.Error(err))
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Employee payment recorded",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("employee_id", payment.EmployeeID),
		zap.String("amount", payment.Amount.String()),
	)
	resp := ToEmployeePaymentResponse(payment)
	return &resp, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id int64) (*EmployeePaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeePaymentResponse(payment)
	return &resp, nil
}

// List returns every payment in id order
func (s *PaymentService) List(ctx context.Context) ([]EmployeePaymentResponse, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToEmployeePaymentResponses(payments), nil
}

// ListByEmployee returns one employee's payments; NOT_FOUND if the employee does not exist
func (s *PaymentService) ListByEmployee(ctx context.Context, employeeID int64) ([]EmployeePaymentResponse, error) {
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return ToEmployeePaymentResponses(payments), nil
}

// Summary totals one employee's payments
func (s *PaymentService) Summary(ctx context.Context, employeeID int64) (*report.PaymentSummary, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	summary := report.BuildPaymentSummary(*employee, payments)
	return &summary, nil
}
