package handler

import (
	"time"

	apptrade "github.com/bizadmin/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseHandler handles purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	service *apptrade.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(service *apptrade.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// CreatePurchaseRequest represents a request to record a purchase
// @Description Request body for creating a purchase
type CreatePurchaseRequest struct {
	SupplierID uuid.UUID       `json:"supplier_id" binding:"required"`
	Date       time.Time       `json:"date" binding:"required"`
	Total      decimal.Decimal `json:"total" binding:"required"`
	Currency   string          `json:"currency" binding:"omitempty,currency" example:"EUR"`
	Notes      string          `json:"notes" binding:"max=2000"`
}

// RecordPaymentRequest represents a payment against a purchase
// @Description Request body for recording a payment on a purchase
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required" example:"500.00"`
}

// Create godoc
// @ID           createPurchase
// @Summary      Record a purchase
// @Description  Records a supplier purchase numbered sequentially within its year
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        request body CreatePurchaseRequest true "Purchase"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	var createdBy *uuid.UUID
	if adminID, err := getAdminID(c); err == nil {
		createdBy = &adminID
	}

	purchase, err := h.service.Create(c.Request.Context(), apptrade.CreatePurchaseRequest{
		SupplierID: req.SupplierID,
		Date:       req.Date,
		Total:      req.Total,
		Currency:   req.Currency,
		Notes:      req.Notes,
		CreatedBy:  createdBy,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, purchase)
}

// Get godoc
// @ID           getPurchase
// @Summary      Get a purchase
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchases/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// List godoc
// @ID           listPurchases
// @Summary      List purchases
// @Tags         purchases
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        startDate query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param        endDate query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Success      200 {object} dto.Response
// @Success      203 {object} dto.Response "Empty result set"
// @Security     BearerAuth
// @Router       /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
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

// RecordPayment godoc
// @ID           recordPurchasePayment
// @Summary      Record a payment against a purchase
// @Description  Adds the amount to the purchase's credit and re-derives its payment status
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Param        request body RecordPaymentRequest true "Payment"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchases/{id}/payments [post]
func (h *PurchaseHandler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	purchase, err := h.service.RecordPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// Delete godoc
// @ID           deletePurchase
// @Summary      Delete a purchase
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
