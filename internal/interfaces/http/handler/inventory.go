package handler

import (
	appcatalog "github.com/bizadmin/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryHandler handles inventory item endpoints
type InventoryHandler struct {
	BaseHandler
	service *appcatalog.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *appcatalog.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// CreateInventoryItemRequest represents a request to add an inventory item
// @Description Request body for creating an inventory item
type CreateInventoryItemRequest struct {
	Product     string          `json:"product" binding:"required,min=1,max=200" example:"Ceramic mug"`
	SKU         string          `json:"sku" binding:"max=100" example:"MUG-001"`
	Description string          `json:"description" binding:"max=1000"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,currency" example:"EUR"`
}

// UpdateInventoryItemRequest represents a request to update an inventory item
// @Description Request body for updating an inventory item
type UpdateInventoryItemRequest struct {
	Product     string          `json:"product" binding:"required,min=1,max=200"`
	SKU         string          `json:"sku" binding:"max=100"`
	Description string          `json:"description" binding:"max=1000"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// AdjustQuantityRequest represents a stock adjustment
// @Description Request body for adjusting an item's stock quantity
type AdjustQuantityRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required" example:"-3"`
}

// Create godoc
// @ID           createInventoryItem
// @Summary      Add an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body CreateInventoryItemRequest true "Item"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	var createdBy *uuid.UUID
	if adminID, err := getAdminID(c); err == nil {
		createdBy = &adminID
	}

	item, err := h.service.Create(c.Request.Context(), appcatalog.CreateInventoryItemRequest{
		Product:     req.Product,
		SKU:         req.SKU,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Currency:    req.Currency,
		CreatedBy:   createdBy,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// Get godoc
// @ID           getInventoryItem
// @Summary      Get an inventory item
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// List godoc
// @ID           listInventoryItems
// @Summary      List inventory items
// @Tags         inventory
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search over product and SKU"
// @Success      200 {object} dto.Response
// @Success      203 {object} dto.Response "Empty result set"
// @Security     BearerAuth
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	filter, err := buildFilter(c, "product", "sku")
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

// Update godoc
// @ID           updateInventoryItem
// @Summary      Update an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body UpdateInventoryItemRequest true "Updated fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, appcatalog.UpdateInventoryItemRequest{
		Product:     req.Product,
		SKU:         req.SKU,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// AdjustQuantity godoc
// @ID           adjustInventoryQuantity
// @Summary      Adjust an item's stock quantity
// @Description  Applies a positive or negative delta to the item's quantity; stock cannot go negative
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body AdjustQuantityRequest true "Adjustment"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/{id}/quantity [post]
func (h *InventoryHandler) AdjustQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	item, err := h.service.AdjustQuantity(c.Request.Context(), id, req.Delta)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete godoc
// @ID           deleteInventoryItem
// @Summary      Delete an inventory item
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
