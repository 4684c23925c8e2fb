package handler

import (
	"context"
	"time"

	apptrade "github.com/bizadmin/backend/internal/application/trade"
	"github.com/bizadmin/backend/internal/domain/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnExchangeHandler handles return and exchange endpoints
type ReturnExchangeHandler struct {
	BaseHandler
	service *apptrade.ReturnExchangeService
}

// NewReturnExchangeHandler creates a new ReturnExchangeHandler
func NewReturnExchangeHandler(service *apptrade.ReturnExchangeService) *ReturnExchangeHandler {
	return &ReturnExchangeHandler{service: service}
}

// ItemLineRequest represents one returned or exchanged item line
type ItemLineRequest struct {
	InventoryID uuid.UUID       `json:"inventory_id" binding:"required"`
	ItemName    string          `json:"item_name" binding:"required,min=1,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Total       decimal.Decimal `json:"total" binding:"required"`
}

// CreateReturnExchangeRequest represents a request to record a return or exchange
// @Description Request body for creating a return or exchange
type CreateReturnExchangeRequest struct {
	Type                  string           `json:"type" binding:"required,oneof=return exchange" example:"return"`
	Date                  time.Time        `json:"date" binding:"required"`
	ClientID              uuid.UUID        `json:"client_id" binding:"required"`
	ReturnedItem          ItemLineRequest  `json:"returned_item" binding:"required"`
	ExchangedItem         *ItemLineRequest `json:"exchanged_item"`
	Currency              string           `json:"currency" binding:"omitempty,currency" example:"EUR"`
	Reason                string           `json:"reason" binding:"max=1000"`
	Notes                 string           `json:"notes" binding:"max=2000"`
	CreateCashTransaction bool             `json:"create_cash_transaction"`
}

func toItemLine(r ItemLineRequest) trade.ItemLine {
	return trade.ItemLine{
		InventoryID: r.InventoryID,
		ItemName:    r.ItemName,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Total:       r.Total,
	}
}

// Create godoc
// @ID           createReturnExchange
// @Summary      Record a return or exchange
// @Description  Records a return or exchange and optionally derives the matching cash movement
// @Tags         return-exchanges
// @Accept       json
// @Produce      json
// @Param        request body CreateReturnExchangeRequest true "Return or exchange"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /return-exchanges [post]
func (h *ReturnExchangeHandler) Create(c *gin.Context) {
	var req CreateReturnExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	var exchanged *trade.ItemLine
	if req.ExchangedItem != nil {
		line := toItemLine(*req.ExchangedItem)
		exchanged = &line
	}

	var createdBy *uuid.UUID
	if adminID, err := getAdminID(c); err == nil {
		createdBy = &adminID
	}

	result, err := h.service.Create(c.Request.Context(), apptrade.CreateReturnExchangeRequest{
		Type:                  trade.ReturnExchangeType(req.Type),
		Date:                  req.Date,
		ClientID:              req.ClientID,
		ReturnedItem:          toItemLine(req.ReturnedItem),
		ExchangedItem:         exchanged,
		Currency:              req.Currency,
		Reason:                req.Reason,
		Notes:                 req.Notes,
		CreateCashTransaction: req.CreateCashTransaction,
		CreatedBy:             createdBy,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Get godoc
// @ID           getReturnExchange
// @Summary      Get a return or exchange
// @Tags         return-exchanges
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /return-exchanges/{id} [get]
func (h *ReturnExchangeHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// List godoc
// @ID           listReturnExchanges
// @Summary      List returns and exchanges
// @Tags         return-exchanges
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        startDate query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param        endDate query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Success      200 {object} dto.Response
// @Success      203 {object} dto.Response "Empty result set"
// @Security     BearerAuth
// @Router       /return-exchanges [get]
func (h *ReturnExchangeHandler) List(c *gin.Context) {
	filter, err := buildFilter(c, "reason", "notes")
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

// Approve godoc
// @ID           approveReturnExchange
// @Summary      Approve a pending return or exchange
// @Tags         return-exchanges
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /return-exchanges/{id}/approve [post]
func (h *ReturnExchangeHandler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

// Reject godoc
// @ID           rejectReturnExchange
// @Summary      Reject a pending return or exchange
// @Tags         return-exchanges
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /return-exchanges/{id}/reject [post]
func (h *ReturnExchangeHandler) Reject(c *gin.Context) {
	h.transition(c, h.service.Reject)
}

// Complete godoc
// @ID           completeReturnExchange
// @Summary      Complete an approved return or exchange
// @Tags         return-exchanges
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /return-exchanges/{id}/complete [post]
func (h *ReturnExchangeHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

func (h *ReturnExchangeHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*trade.ReturnExchange, error)) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	record, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// Delete godoc
// @ID           deleteReturnExchange
// @Summary      Delete a return or exchange
// @Tags         return-exchanges
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /return-exchanges/{id} [delete]
func (h *ReturnExchangeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
