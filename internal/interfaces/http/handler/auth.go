package handler

import (
	appidentity "github.com/bizadmin/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	service *appidentity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest represents login credentials
// @Description Request body for admin login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// RegisterRequest represents a new admin registration
// @Description Request body for registering an admin account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Name     string `json:"name" binding:"required,min=1,max=100" example:"Jane Admin"`
	Password string `json:"password" binding:"required,min=8" example:"secret-password"`
}

// ChangePasswordRequest represents a password change
// @Description Request body for changing the current admin's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Login godoc
// @ID           login
// @Summary      Authenticate an admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Register godoc
// @ID           register
// @Summary      Register an admin account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "New admin"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	admin, err := h.service.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, admin)
}

// ChangePassword godoc
// @ID           changePassword
// @Summary      Change the current admin's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Passwords"
// @Success      204
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	adminID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Profile godoc
// @ID           profile
// @Summary      Get the current admin's profile
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	adminID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	admin, err := h.service.Profile(c.Request.Context(), adminID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, admin)
}
