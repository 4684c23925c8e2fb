package handler

import (
	"time"

	appbilling "github.com/bizadmin/backend/internal/application/billing"
	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashTransactionHandler handles cash transaction endpoints
type CashTransactionHandler struct {
	BaseHandler
	service *appbilling.CashTransactionService
}

// NewCashTransactionHandler creates a new CashTransactionHandler
func NewCashTransactionHandler(service *appbilling.CashTransactionService) *CashTransactionHandler {
	return &CashTransactionHandler{service: service}
}

// CreateCashTransactionRequest represents a request to record a cash movement
// @Description Request body for recording a cash transaction
type CreateCashTransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=in out" example:"in"`
	Amount      decimal.Decimal `json:"amount" binding:"required" example:"150.00"`
	Currency    string          `json:"currency" binding:"omitempty,currency" example:"EUR"`
	Date        time.Time       `json:"date" binding:"required" example:"2026-08-01T00:00:00Z"`
	PartyType   string          `json:"party_type" binding:"required,oneof=client supplier" example:"client"`
	ClientID    *uuid.UUID      `json:"client_id"`
	SupplierID  *uuid.UUID      `json:"supplier_id"`
	InvoiceID   *uuid.UUID      `json:"invoice_id"`
	Reference   string          `json:"reference" binding:"max=100"`
	Description string          `json:"description" binding:"max=1000"`
}

// UpdateCashTransactionRequest represents a request to update a cash movement.
// Omitted fields keep their stored values.
// @Description Request body for updating a cash transaction
type UpdateCashTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" example:"200.00"`
	Date        *time.Time       `json:"date"`
	InvoiceID   *uuid.UUID       `json:"invoice_id"`
	Reference   *string          `json:"reference" binding:"omitempty,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
}

// Create godoc
// @ID           createCashTransaction
// @Summary      Record a cash transaction
// @Description  Record a cash movement; incoming client money is allocated to invoices in the same database transaction
// @Tags         cash-transactions
// @Accept       json
// @Produce      json
// @Param        request body CreateCashTransactionRequest true "Cash transaction"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /cash-transactions [post]
func (h *CashTransactionHandler) Create(c *gin.Context) {
	var req CreateCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	var createdBy *uuid.UUID
	if adminID, err := getAdminID(c); err == nil {
		createdBy = &adminID
	}

	result, err := h.service.Create(c.Request.Context(), appbilling.CreateCashTransactionRequest{
		Type:        billing.TransactionType(req.Type),
		Amount:      req.Amount,
		Currency:    req.Currency,
		Date:        req.Date,
		PartyType:   billing.PartyType(req.PartyType),
		ClientID:    req.ClientID,
		SupplierID:  req.SupplierID,
		InvoiceID:   req.InvoiceID,
		Reference:   req.Reference,
		Description: req.Description,
		CreatedBy:   createdBy,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Get godoc
// @ID           getCashTransaction
// @Summary      Get a cash transaction
// @Tags         cash-transactions
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /cash-transactions/{id} [get]
func (h *CashTransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tx)
}

// List godoc
// @ID           listCashTransactions
// @Summary      List cash transactions
// @Tags         cash-transactions
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        startDate query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param        endDate query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Param        type query string false "Direction" Enums(in, out)
// @Param        partyType query string false "Party type" Enums(client, supplier)
// @Param        filter query string false "Column for an exact-match filter"
// @Param        equal query string false "Value the filter column must equal"
// @Success      200 {object} dto.Response
// @Success      203 {object} dto.Response "Empty result set"
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /cash-transactions [get]
func (h *CashTransactionHandler) List(c *gin.Context) {
	filter, err := buildFilter(c, "reference", "description")
	if err != nil {
		h.HandleBindError(c, err)
		return
	}

	if raw := c.Query("type"); raw != "" {
		if !billing.TransactionType(raw).IsValid() {
			h.BadRequest(c, "type must be in or out")
			return
		}
		filter.Equal["type"] = raw
	}
	if raw := c.Query("partyType"); raw != "" {
		if !billing.PartyType(raw).IsValid() {
			h.BadRequest(c, "partyType must be client or supplier")
			return
		}
		filter.Equal["party_type"] = raw
	}
	// Generic column/value pair; the persistence layer drops columns it
	// does not know.
	if column := c.Query("filter"); column != "" {
		filter.Equal[column] = c.Query("equal")
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithPagination(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Summary godoc
// @ID           cashTransactionSummary
// @Summary      Cash flow summary for a period
// @Description  Cash in/out totals over a week, month or year window ending now, plus all-time totals
// @Tags         cash-transactions
// @Produce      json
// @Param        type query string false "Period" Enums(week, month, year) default(month)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /cash-transactions/summary [get]
func (h *CashTransactionHandler) Summary(c *gin.Context) {
	period := periodFromQuery(c)

	summary, err := h.service.Summary(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Update godoc
// @ID           updateCashTransaction
// @Summary      Update a cash transaction
// @Description  Update a cash movement; prior allocations are reversed and the new amount is re-allocated
// @Tags         cash-transactions
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Param        request body UpdateCashTransactionRequest true "Updated fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /cash-transactions/{id} [patch]
func (h *CashTransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req UpdateCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, appbilling.UpdateCashTransactionRequest{
		Amount:      req.Amount,
		Date:        req.Date,
		InvoiceID:   req.InvoiceID,
		Reference:   req.Reference,
		Description: req.Description,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @ID           deleteCashTransaction
// @Summary      Delete a cash transaction
// @Description  Reverse the transaction's allocations and soft-delete it
// @Tags         cash-transactions
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /cash-transactions/{id} [delete]
func (h *CashTransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	result, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
