package handler

import (
	apppartner "github.com/bizadmin/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler handles client endpoints
type ClientHandler struct {
	BaseHandler
	service  *apppartner.ClientService
	balances *apppartner.BalanceService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(service *apppartner.ClientService, balances *apppartner.BalanceService) *ClientHandler {
	return &ClientHandler{service: service, balances: balances}
}

// CreateClientRequest represents a request to register a client
// @Description Request body for creating a client
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200" example:"Acme Retail"`
	Email   string `json:"email" binding:"omitempty,email" example:"billing@acme.example"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
	Country string `json:"country" binding:"max=100"`
}

// UpdateClientRequest represents a request to update a client
// @Description Request body for updating a client
type UpdateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
	Country string `json:"country" binding:"max=100"`
}

// Create godoc
// @ID           createClient
// @Summary      Register a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request body CreateClientRequest true "Client"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	var createdBy *uuid.UUID
	if adminID, err := getAdminID(c); err == nil {
		createdBy = &adminID
	}

	client, err := h.service.Create(c.Request.Context(), apppartner.CreateClientRequest{
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

	h.Created(c, client)
}

// Get godoc
// @ID           getClient
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// List godoc
// @ID           listClients
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search over name and email"
// @Success      200 {object} dto.Response
// @Success      203 {object} dto.Response "Empty result set"
// @Security     BearerAuth
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
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
// @ID           updateClient
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id path string true "Client ID"
// @Param        request body UpdateClientRequest true "Updated fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	client, err := h.service.Update(c.Request.Context(), id, apppartner.UpdateClientRequest{
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

	h.Success(c, client)
}

// Delete godoc
// @ID           deleteClient
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Summary godoc
// @ID           clientSummary
// @Summary      Client count summary for a period
// @Tags         clients
// @Produce      json
// @Param        type query string false "Period" Enums(week, month, year) default(month)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /clients/summary [get]
func (h *ClientHandler) Summary(c *gin.Context) {
	period := periodFromQuery(c)

	summary, err := h.service.Summary(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Balance godoc
// @ID           clientBalance
// @Summary      Reconciled balance for a client
// @Description  Computes the client's outstanding balance from invoices, cash movements and returns
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /clients/{id}/balance [get]
func (h *ClientHandler) Balance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	balance, err := h.balances.GetClientBalance(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balance)
}
