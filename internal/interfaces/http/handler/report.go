package handler

import (
	appreport "github.com/bizadmin/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	service *appreport.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *appreport.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Detailed godoc
// @ID           detailedReport
// @Summary      Detailed activity report for a date range
// @Description  Invoices, purchases, cash flow and returns between startDate and endDate inclusive
// @Tags         reports
// @Produce      json
// @Param        startDate query string true "Start date (RFC3339 or YYYY-MM-DD)"
// @Param        endDate query string true "End date (RFC3339 or YYYY-MM-DD)"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/detailed [get]
func (h *ReportHandler) Detailed(c *gin.Context) {
	start, ok := parseDateParam(c, "startDate")
	if !ok {
		h.BadRequest(c, "Invalid startDate")
		return
	}
	end, ok := parseDateParam(c, "endDate")
	if !ok {
		h.BadRequest(c, "Invalid endDate")
		return
	}

	report, err := h.service.GetDetailedReport(c.Request.Context(), start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
