package handler

import (
	"time"

	appbilling "github.com/bizadmin/backend/internal/application/billing"
	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	service *appbilling.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(service *appbilling.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// InvoiceItemRequest represents one invoice line
type InvoiceItemRequest struct {
	ItemName string          `json:"item_name" binding:"required,min=1,max=200"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Total    decimal.Decimal `json:"total" binding:"required"`
}

// CreateInvoiceRequest represents a request to issue an invoice
// @Description Request body for creating an invoice
type CreateInvoiceRequest struct {
	ClientID    uuid.UUID            `json:"client_id" binding:"required"`
	Date        time.Time            `json:"date" binding:"required"`
	ExpiredDate *time.Time           `json:"expired_date"`
	Items       []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Total       decimal.Decimal      `json:"total" binding:"required"`
	Currency    string               `json:"currency" binding:"omitempty,currency" example:"EUR"`
	Notes       string               `json:"notes" binding:"max=2000"`
}

// Create godoc
// @ID           createInvoice
// @Summary      Issue an invoice
// @Description  Issues a new invoice numbered sequentially within its year
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body CreateInvoiceRequest true "Invoice"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	items := make(billing.InvoiceItems, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, billing.InvoiceItem{
			ItemName: it.ItemName,
			Quantity: it.Quantity,
			Price:    it.Price,
			Total:    it.Total,
		})
	}

	var createdBy *uuid.UUID
	if adminID, err := getAdminID(c); err == nil {
		createdBy = &adminID
	}

	invoice, err := h.service.Create(c.Request.Context(), appbilling.CreateInvoiceRequest{
		ClientID:    req.ClientID,
		Date:        req.Date,
		ExpiredDate: req.ExpiredDate,
		Items:       items,
		Total:       req.Total,
		Currency:    req.Currency,
		Notes:       req.Notes,
		CreatedBy:   createdBy,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Get godoc
// @ID           getInvoice
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        startDate query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param        endDate query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Success      200 {object} dto.Response
// @Success      203 {object} dto.Response "Empty result set"
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, err := buildFilter(c, "notes", "currency")
	if err != nil {
		h.HandleBindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithPagination(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Delete godoc
// @ID           deleteInvoice
// @Summary      Delete an invoice
// @Description  Soft-deletes the invoice; its totals no longer count toward balances
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}
