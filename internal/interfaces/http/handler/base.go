package handler

import (
	"errors"
	"net/http"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/interfaces/http/dto"
	"github.com/bizadmin/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getAdminID extracts the authenticated admin ID from the JWT claims
func getAdminID(c *gin.Context) (uuid.UUID, error) {
	adminIDStr := middleware.GetJWTAdminID(c)
	if adminIDStr == "" {
		return uuid.Nil, errors.New("admin ID not found in context")
	}
	return uuid.Parse(adminIDStr)
}

// parseID parses the :id path parameter
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, result any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// SuccessWithPagination sends a paginated list response. An empty page is reported with
// 203, matching the contract the admin frontend has always relied on.
func (h *BaseHandler) SuccessWithPagination(c *gin.Context, items any, total int64, page, pageSize int) {
	status := http.StatusOK
	if total == 0 {
		status = http.StatusNonAuthoritativeInfo
	}
	c.JSON(status, dto.NewSuccessResponseWithPagination(items, total, page, pageSize))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, result any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(message))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, message)
}

// HandleBindError sends a 400 response with a readable validation message
func (h *BaseHandler) HandleBindError(c *gin.Context, err error) {
	h.BadRequest(c, middleware.ValidationMessage(err))
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, message)
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, message)
}

// InternalError sends a 500 response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, message)
}

// HandleDomainError converts domain errors to HTTP responses
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), domainErr.Message)
		return
	}
	h.InternalError(c, "Internal server error")
}
