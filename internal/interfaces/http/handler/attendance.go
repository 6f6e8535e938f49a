package handler

import (
	"github.com/gin-gonic/gin"

	hrapp "github.com/bizledger/backend/internal/application/hr"
)

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	BaseHandler
	attendanceService *hrapp.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService *hrapp.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Create godoc
// @Summary      Record attendance
// @Description  An unknown employee yields 422.
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        request body hrapp.CreateAttendanceRequest true "Attendance"
// @Success      201 {object} dto.Response{data=hrapp.AttendanceResponse}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /hr/attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req hrapp.CreateAttendanceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.attendanceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// GetByID godoc
// @Summary      Get an attendance record
// @Tags         hr
// @Produce      json
// @Param        id path int true "Attendance ID"
// @Success      200 {object} dto.Response{data=hrapp.AttendanceResponse}
// @Failure      404 {object} dto.Response
// @Router       /hr/attendance/{id} [get]
func (h *AttendanceHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	record, err := h.attendanceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// List godoc
// @Summary      List attendance records
// @Tags         hr
// @Produce      json
// @Success      200 {object} dto.Response{data=[]hrapp.AttendanceResponse}
// @Router       /hr/attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	records, err := h.attendanceService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}
