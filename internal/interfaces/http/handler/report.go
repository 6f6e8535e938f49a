package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	reportapp "github.com/bizledger/backend/internal/application/report"
)

// ReportHandler serves the dashboard, report datasets and document exports
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard godoc
// @Summary      Headline figures
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=report.Dashboard}
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Dataset godoc
// @Summary      Report rows for a date window
// @Tags         reports
// @Produce      json
// @Param        kind  path  string true  "financial, employees, invoices, attendance, employee-payments or company-transactions"
// @Param        start query string false "Inclusive start, YYYY-MM-DD"
// @Param        end   query string false "Inclusive end, YYYY-MM-DD"
// @Success      200 {object} dto.Response{data=report.Dataset}
// @Failure      400 {object} dto.Response
// @Router       /reports/{kind} [get]
func (h *ReportHandler) Dataset(c *gin.Context) {
	start, ok := h.parseDateQuery(c, "start")
	if !ok {
		return
	}
	end, ok := h.parseDateQuery(c, "end")
	if !ok {
		return
	}

	ds, err := h.reportService.Dataset(c.Request.Context(), c.Param("kind"), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ds)
}

// Export godoc
// @Summary      Export a report
// @Description  Renders the dataset as a downloadable document.
// @Tags         report
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/pdf
// @Param        kind path string true "Report kind"
// @Param        start query string false "Start date (YYYY-MM-DD)"
// @Param        end query string false "End date (YYYY-MM-DD)"
// @Param        format query string false "xlsx or pdf" default(xlsx)
// @Success      200 {file} binary
// @Failure      400 {object} dto.Response
// @Router       /reports/{kind}/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	start, ok := h.parseDateQuery(c, "start")
	if !ok {
		return
	}
	end, ok := h.parseDateQuery(c, "end")
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "xlsx")

	result, err := h.reportService.Export(c.Request.Context(), c.Param("kind"), format, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
