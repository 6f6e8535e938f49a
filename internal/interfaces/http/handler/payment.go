package handler

import (
	"github.com/gin-gonic/gin"

	hrapp "github.com/bizledger/backend/internal/application/hr"
)

// PaymentHandler handles employee payment endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *hrapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *hrapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create godoc
// @Summary      Record an employee payment
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        request body hrapp.CreateEmployeePaymentRequest true "Payment"
// @Success      201 {object} dto.Response{data=hrapp.EmployeePaymentResponse}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /hr/payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req hrapp.CreateEmployeePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// GetByID godoc
// @Summary      Get an employee payment
// @Tags         hr
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} dto.Response{data=hrapp.EmployeePaymentResponse}
// @Failure      404 {object} dto.Response
// @Router       /hr/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// List godoc
// @Summary      List employee payments
// @Tags         hr
// @Produce      json
// @Success      200 {object} dto.Response{data=[]hrapp.EmployeePaymentResponse}
// @Router       /hr/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.paymentService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}
