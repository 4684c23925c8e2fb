package handler

import (
	apppartner "github.com/bizadmin/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	BaseHandler
	service  *apppartner.SupplierService
	balances *apppartner.BalanceService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(service *apppartner.SupplierService, balances *apppartner.BalanceService) *SupplierHandler {
	return &SupplierHandler{service: service, balances: balances}
}

// CreateSupplierRequest represents a request to register a supplier
// @Description Request body for creating a supplier
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200" example:"Wholesale Co"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
	Country string `json:"country" binding:"max=100"`
}

// UpdateSupplierRequest represents a request to update a supplier
// @Description Request body for updating a supplier
type UpdateSupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
	Country string `json:"country" binding:"max=100"`
}

// Create godoc
// @ID           createSupplier
// @Summary      Register a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        request body CreateSupplierRequest true "Supplier"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	var createdBy *uuid.UUID
	if adminID, err := getAdminID(c); err == nil {
		createdBy = &adminID
	}

	supplier, err := h.service.Create(c.Request.Context(), apppartner.CreateSupplierRequest{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Country:   req.Country,
		CreatedBy: createdBy,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, supplier)
}

// Get godoc
// @ID           getSupplier
// @Summary      Get a supplier
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /suppliers/{id} [get]
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, supplier)
}

// List godoc
// @ID           listSuppliers
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search over name and email"
// @Success      200 {object} dto.Response
// @Success      203 {object} dto.Response "Empty result set"
// @Security     BearerAuth
// @Router       /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	filter, err := buildFilter(c, "name", "email")
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
// @ID           updateSupplier
// @Summary      Update a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        request body UpdateSupplierRequest true "Updated fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /suppliers/{id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	supplier, err := h.service.Update(c.Request.Context(), id, apppartner.UpdateSupplierRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Country: req.Country,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, supplier)
}

// Delete godoc
// @ID           deleteSupplier
// @Summary      Delete a supplier
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Summary godoc
// @ID           supplierSummary
// @Summary      Supplier count summary for a period
// @Tags         suppliers
// @Produce      json
// @Param        type query string false "Period" Enums(week, month, year) default(month)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /suppliers/summary [get]
func (h *SupplierHandler) Summary(c *gin.Context) {
	period := periodFromQuery(c)

	summary, err := h.service.Summary(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Balance godoc
// @ID           supplierBalance
// @Summary      Reconciled balance for a supplier
// @Description  Computes the supplier's outstanding balance from purchase totals and credits
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /suppliers/{id}/balance [get]
func (h *SupplierHandler) Balance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	balance, err := h.balances.GetSupplierBalance(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balance)
}
