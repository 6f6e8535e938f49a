package handler

import (
	"github.com/gin-gonic/gin"

	hrapp "github.com/bizledger/backend/internal/application/hr"
)

// EmployeeHandler handles employee endpoints, including the per-employee
// attendance and payment views
type EmployeeHandler struct {
	BaseHandler
	employeeService   *hrapp.EmployeeService
	attendanceService *hrapp.AttendanceService
	paymentService    *hrapp.PaymentService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(
	employeeService *hrapp.EmployeeService,
	attendanceService *hrapp.AttendanceService,
	paymentService *hrapp.PaymentService,
) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService:   employeeService,
		attendanceService: attendanceService,
		paymentService:    paymentService,
	}
}

// Create godoc
// @Summary      Create an employee
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        request body hrapp.CreateEmployeeRequest true "Employee"
// @Success      201 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Failure      400 {object} dto.Response
// @Router       /hr/employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req hrapp.CreateEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// GetByID godoc
// @Summary      Get an employee
// @Tags         hr
// @Produce      json
// @Param        id path int true "Employee ID"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Failure      404 {object} dto.Response
// @Router       /hr/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	employee, err := h.employeeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// List godoc
// @Summary      List employees
// @Tags         hr
// @Produce      json
// @Param        active query bool false "Filter by active flag"
// @Success      200 {object} dto.Response{data=[]hrapp.EmployeeResponse}
// @Router       /hr/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	active, ok := h.parseBoolQuery(c, "active")
	if !ok {
		return
	}

	employees, err := h.employeeService.List(c.Request.Context(), active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}

// Update godoc
// @Summary      Update an employee
// @Description  Only the supplied fields change.
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path int true "Employee ID"
// @Param        request body hrapp.UpdateEmployeeRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /hr/employees/{id} [patch]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req hrapp.UpdateEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// ListAttendance godoc
// @Summary      List the attendance of an employee
// @Tags         hr
// @Produce      json
// @Param        id path int true "Employee ID"
// @Success      200 {object} dto.Response{data=[]hrapp.AttendanceResponse}
// @Failure      404 {object} dto.Response
// @Router       /hr/employees/{id}/attendance [get]
func (h *EmployeeHandler) ListAttendance(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	records, err := h.attendanceService.ListByEmployee(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// ListPayments godoc
// @Summary      List the payments of an employee
// @Tags         hr
// @Produce      json
// @Param        id path int true "Employee ID"
// @Success      200 {object} dto.Response{data=[]hrapp.EmployeePaymentResponse}
// @Failure      404 {object} dto.Response
// @Router       /hr/employees/{id}/payments [get]
func (h *EmployeeHandler) ListPayments(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByEmployee(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// PaymentSummary godoc
// @Summary      Total the payments of an employee
// @Tags         hr
// @Produce      json
// @Param        id path int true "Employee ID"
// @Success      200 {object} dto.Response{data=report.PaymentSummary}
// @Failure      404 {object} dto.Response
// @Router       /hr/employees/{id}/payments/summary [get]
func (h *EmployeeHandler) PaymentSummary(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	summary, err := h.paymentService.Summary(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
