package partner

import (
	"regexp"
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
)

var phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

// CompanyStatus represents the status of a partner company
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "active"
	CompanyStatusInactive CompanyStatus = "inactive"
)

// IsValid checks if the status is a known CompanyStatus
func (s CompanyStatus) IsValid() bool {
	return s == CompanyStatusActive || s == CompanyStatusInactive
}

// Company is a business partner: client, supplier or both
type Company struct {
	shared.BaseEntity
	Name             string           `json:"name"`
	Type             string           `json:"type,omitempty"`
	ContactPerson    string           `json:"contactPerson,omitempty"`
	Email            string           `json:"email,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	Address          string           `json:"address,omitempty"`
	RegistrationDate valueobject.Date `json:"registrationDate"`
	Status           CompanyStatus    `json:"status"`
	Notes            string           `json:"notes,omitempty"`
}

// CompanyInput carries the fields accepted on creation
type CompanyInput struct {
	Name             string
	Type             string
	ContactPerson    string
	Email            string
	Phone            string
	Address          string
	RegistrationDate valueobject.Date
	Status           CompanyStatus
	Notes            string
}

// NewCompany validates input and applies defaults: status active,
// registration date today.
func NewCompany(in CompanyInput, today valueobject.Date) (*Company, error) {
	c := &Company{
		Name:             strings.TrimSpace(in.Name),
		Type:             strings.TrimSpace(in.Type),
		ContactPerson:    strings.TrimSpace(in.ContactPerson),
		Email:            strings.TrimSpace(in.Email),
		Phone:            strings.TrimSpace(in.Phone),
		Address:          in.Address,
		RegistrationDate: in.RegistrationDate,
		Status:           in.Status,
		Notes:            in.Notes,
	}
	if c.Status == "" {
		c.Status = CompanyStatusActive
	}
	if c.RegistrationDate.IsZero() {
		c.RegistrationDate = today
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// CompanyPatch is a partial update; nil fields keep their current value
type CompanyPatch struct {
	Name             *string
	Type             *string
	ContactPerson    *string
	Email            *string
	Phone            *string
	Address          *string
	RegistrationDate *valueobject.Date
	Status           *CompanyStatus
	Notes            *string
}

// Apply merges the patch into c. On error c is left unchanged.
func (c *Company) Apply(p CompanyPatch) error {
	next := *c
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		next.Type = strings.TrimSpace(*p.Type)
	}
	if p.ContactPerson != nil {
		next.ContactPerson = strings.TrimSpace(*p.ContactPerson)
	}
	if p.Email != nil {
		next.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		next.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		next.Address = *p.Address
	}
	if p.RegistrationDate != nil && !p.RegistrationDate.IsZero() {
		next.RegistrationDate = *p.RegistrationDate
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}
	if err := next.validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// IsActive reports whether the company is active
func (c Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

func (c *Company) validate() error {
	if c.Name == "" {
		return shared.Validation("company name cannot be empty")
	}
	if len(c.Name) > 200 {
		return shared.Validation("company name cannot exceed 200 characters")
	}
	if !c.Status.IsValid() {
		return shared.Validation("company status must be 'active' or 'inactive', got %q", c.Status)
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return shared.Validation("invalid company email %q", c.Email)
	}
	if c.Phone != "" && !phonePattern.MatchString(c.Phone) {
		return shared.Validation("invalid phone number format")
	}
	return nil
}
