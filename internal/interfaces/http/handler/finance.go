package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/bizledger/backend/internal/application/finance"
)

// TransactionHandler handles company cash-flow transactions
type TransactionHandler struct {
	BaseHandler
	transactionService *financeapp.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *financeapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Create godoc
// @Summary      Record an income or expense
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateTransactionRequest true "Transaction"
// @Success      201 {object} dto.Response{data=financeapp.TransactionResponse}
// @Failure      400 {object} dto.Response
// @Router       /finance/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req financeapp.CreateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	txn, err := h.transactionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, txn)
}

// GetByID godoc
// @Summary      Get a transaction
// @Tags         finance
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Success      200 {object} dto.Response{data=financeapp.TransactionResponse}
// @Failure      404 {object} dto.Response
// @Router       /finance/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txn)
}

// List godoc
// @Summary      List transactions
// @Tags         finance
// @Produce      json
// @Param        type query string false "income or expense"
// @Success      200 {object} dto.Response{data=[]financeapp.TransactionResponse}
// @Failure      400 {object} dto.Response
// @Router       /finance/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	txns, err := h.transactionService.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txns)
}

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *financeapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *financeapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create godoc
// @Summary      Issue an invoice
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateInvoiceRequest true "Invoice"
// @Success      201 {object} dto.Response{data=financeapp.InvoiceResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response "Invoice number already used"
// @Router       /finance/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req financeapp.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// GetByID godoc
// @Summary      Get an invoice
// @Tags         finance
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response{data=financeapp.InvoiceResponse}
// @Failure      404 {object} dto.Response
// @Router       /finance/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// GetByNumber godoc
// @Summary      Get an invoice by number
// @Tags         finance
// @Produce      json
// @Param        number path string true "Invoice number"
// @Success      200 {object} dto.Response{data=financeapp.InvoiceResponse}
// @Failure      404 {object} dto.Response
// @Router       /finance/invoices/number/{number} [get]
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// List godoc
// @Summary      List invoices
// @Tags         finance
// @Produce      json
// @Param        status query string false "pending, paid or overdue"
// @Success      200 {object} dto.Response{data=[]financeapp.InvoiceResponse}
// @Failure      400 {object} dto.Response
// @Router       /finance/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.invoiceService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// UpdateStatus godoc
// @Summary      Change an invoice status
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Param        request body financeapp.UpdateInvoiceStatusRequest true "New status"
// @Success      200 {object} dto.Response{data=financeapp.InvoiceResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /finance/invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req financeapp.UpdateInvoiceStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}
