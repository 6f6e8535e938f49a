package partner

import (
	"context"

	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/infrastructure/logger"
)

// CompanyService handles partner company records
type CompanyService struct {
	companyRepo partner.CompanyRepository
	clock       shared.Clock
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo partner.CompanyRepository, clock shared.Clock) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		clock:       clock,
	}
}

// Create stores a new company
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	company, err := partner.NewCompany(partner.CompanyInput{
		Name:             req.Name,
		Type:             req.Type,
		ContactPerson:    req.ContactPerson,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		RegistrationDate: req.RegistrationDate,
		Status:           partner.CompanyStatus(req.Status),
		Notes:            req.Notes,
	}, valueobject.DateOf(s.clock.Now()))
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Company created", zap.Int64("company_id", company.ID))
	resp := ToCompanyResponse(company)
	return &resp, nil
}

// GetByID retrieves a company by ID
func (s *CompanyService) GetByID(ctx context.Context, id int64) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(company)
	return &resp, nil
}

// List returns companies in id order. An empty status lists all.
func (s *CompanyService) List(ctx context.Context, status string) ([]CompanyResponse, error) {
	var filter partner.CompanyFilter
	if status != "" {
		st := partner.CompanyStatus(status)
		if !st.IsValid() {
			return nil, shared.Validation("status must be 'active' or 'inactive', got %q", status)
		}
		filter.Status = &st
	}
	companies, err := s.companyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCompanyResponses(companies), nil
}

// Update merges the supplied fields into the stored company
func (s *CompanyService) Update(ctx context.Context, id int64, req UpdateCompanyRequest) (*CompanyResponse, error) {
	patch := partner.CompanyPatch{
		Name:             req.Name,
		Type:             req.Type,
		ContactPerson:    req.ContactPerson,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		RegistrationDate: req.RegistrationDate,
		Notes:            req.Notes,
	}
	if req.Status != nil {
		st := partner.CompanyStatus(*req.Status)
		patch.Status = &st
	}
	company, err := s.companyRepo.Update(ctx, id, func(c *partner.Company) error {
		return c.Apply(patch)
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Company updated", zap.Int64("company_id", id))
	resp := ToCompanyResponse(company)
	return &resp, nil
}
