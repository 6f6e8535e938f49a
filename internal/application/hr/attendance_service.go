package hr

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/hr"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/logger"
)

// AttendanceService records employee attendance
type AttendanceService struct {
	employeeRepo   hr.EmployeeRepository
	attendanceRepo hr.AttendanceRepository
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(employeeRepo hr.EmployeeRepository, attendanceRepo hr.AttendanceRepository) *AttendanceService {
	return &AttendanceService{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Create stores an attendance record for an existing employee
func (s *AttendanceService) Create(ctx context.Context, req CreateAttendanceRequest) (*AttendanceResponse, error) {
	record, err := hr.NewAttendance(req.EmployeeID, req.Date, req.CheckIn, req.CheckOut, req.Status, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := ensureEmployee(ctx, s.employeeRepo, req.EmployeeID); err != nil {
		logger.L(ctx).Warn("Attendance rejected", zap.Int64("employee_id", req.EmployeeID), zap.Error(err))
		return nil, err
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Attendance recorded",
		zap.Int64("attendance_id", record.ID),
		zap.Int64("employee_id", record.EmployeeID),
	)
	resp := ToAttendanceResponse(record)
	return &resp, nil
}

// GetByID retrieves an attendance record by ID
func (s *AttendanceService) GetByID(ctx context.Context, id int64) (*AttendanceResponse, error) {
	record, err := s.attendanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAttendanceResponse(record)
	return &resp, nil
}

// List returns every attendance record in id order
func (s *AttendanceService) List(ctx context.Context) ([]AttendanceResponse, error) {
	records, err := s.attendanceRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToAttendanceResponses(records), nil
}

// ListByEmployee returns one employee's records; NOT_FOUND if the employee does not exist
func (s *AttendanceService) ListByEmployee(ctx context.Context, employeeID int64) ([]AttendanceResponse, error) {
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return ToAttendanceResponses(records), nil
}

// ensureEmployee turns a missing employee into INVALID_REFERENCE
func ensureEmployee(ctx context.Context, repo hr.EmployeeRepository, id int64) error {
	_, err := repo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.InvalidReference("employeeId", id)
	}
	return err
}
