package hr

import (
	"context"

	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/infrastructure/logger"
)

// EmployeeService handles employee records
type EmployeeService struct {
	employeeRepo hr.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo hr.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// Create validates and stores a new employee
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := hr.NewEmployee(hr.EmployeeInput{
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Email:      req.Email,
		Phone:      req.Phone,
		HireDate:   req.HireDate,
		Salary:     req.Salary,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Employee created", zap.Int64("employee_id", employee.ID))
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// List returns employees in id order, optionally only active or inactive ones
func (s *EmployeeService) List(ctx context.Context, active *bool) ([]EmployeeResponse, error) {
	employees, err := s.employeeRepo.FindAll(ctx, hr.EmployeeFilter{IsActive: active})
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponses(employees), nil
}

// Update merges the supplied fields into the stored employee
func (s *EmployeeService) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	patch := hr.EmployeePatch{
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Email:      req.Email,
		Phone:      req.Phone,
		HireDate:   req.HireDate,
		Salary:     req.Salary,
		IsActive:   req.IsActive,
	}
	employee, err := s.employeeRepo.Update(ctx, id, func(e *hr.Employee) error {
		return e.Apply(patch)
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Employee updated", zap.Int64("employee_id", id))
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}
