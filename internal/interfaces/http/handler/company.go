package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/bizledger/backend/internal/application/partner"
)

// CompanyHandler handles partner company endpoints
type CompanyHandler struct {
	BaseHandler
	companyService     *partnerapp.CompanyService
	transactionService *partnerapp.CompanyTransactionService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(
	companyService *partnerapp.CompanyService,
	transactionService *partnerapp.CompanyTransactionService,
) *CompanyHandler {
	return &CompanyHandler{
		companyService:     companyService,
		transactionService: transactionService,
	}
}

// Create godoc
// @Summary      Register a partner company
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCompanyRequest true "Company"
// @Success      201 {object} dto.Response{data=partnerapp.CompanyResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /partner/companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// GetByID godoc
// @Summary      Get a company
// @Tags         partner
// @Produce      json
// @Param        id path int true "Company ID"
// @Success      200 {object} dto.Response{data=partnerapp.CompanyResponse}
// @Failure      404 {object} dto.Response
// @Router       /partner/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// List godoc
// @Summary      List companies
// @Tags         partner
// @Produce      json
// @Param        status query string false "active or inactive"
// @Success      200 {object} dto.Response{data=[]partnerapp.CompanyResponse}
// @Failure      400 {object} dto.Response
// @Router       /partner/companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companies)
}

// Update godoc
// @Summary      Update a company
// @Description  Only the supplied fields change.
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        id path int true "Company ID"
// @Param        request body partnerapp.UpdateCompanyRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=partnerapp.CompanyResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /partner/companies/{id} [patch]
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateCompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// ListTransactions godoc
// @Summary      List the transactions of a company
// @Tags         partner
// @Produce      json
// @Param        id path int true "Company ID"
// @Success      200 {object} dto.Response{data=[]partnerapp.CompanyTransactionResponse}
// @Failure      404 {object} dto.Response
// @Router       /partner/companies/{id}/transactions [get]
func (h *CompanyHandler) ListTransactions(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	txns, err := h.transactionService.ListByCompany(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txns)
}

// Ledger godoc
// @Summary      Company ledger totals
// @Description  Incoming and outgoing totals with the running balance.
// @Tags         partner
// @Produce      json
// @Param        id path int true "Company ID"
// @Success      200 {object} dto.Response{data=report.CompanyLedger}
// @Failure      404 {object} dto.Response
// @Router       /partner/companies/{id}/ledger [get]
func (h *CompanyHandler) Ledger(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	ledger, err := h.transactionService.Ledger(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ledger)
}

// CompanyTransactionHandler handles ledger entries across companies
type CompanyTransactionHandler struct {
	BaseHandler
	transactionService *partnerapp.CompanyTransactionService
}

// NewCompanyTransactionHandler creates a new CompanyTransactionHandler
func NewCompanyTransactionHandler(transactionService *partnerapp.CompanyTransactionService) *CompanyTransactionHandler {
	return &CompanyTransactionHandler{transactionService: transactionService}
}

// Create godoc
// @Summary      Record a company transaction
// @Description  An unknown company yields 422.
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCompanyTransactionRequest true "Transaction"
// @Success      201 {object} dto.Response{data=partnerapp.CompanyTransactionResponse}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /partner/company-transactions [post]
func (h *CompanyTransactionHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCompanyTransactionRequest
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
// @Summary      Get a company transaction
// @Tags         partner
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Success      200 {object} dto.Response{data=partnerapp.CompanyTransactionResponse}
// @Failure      404 {object} dto.Response
// @Router       /partner/company-transactions/{id} [get]
func (h *CompanyTransactionHandler) GetByID(c *gin.Context) {
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
// @Summary      List company transactions
// @Tags         partner
// @Produce      json
// @Success      200 {object} dto.Response{data=[]partnerapp.CompanyTransactionResponse}
// @Router       /partner/company-transactions [get]
func (h *CompanyTransactionHandler) List(c *gin.Context) {
	txns, err := h.transactionService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txns)
}
