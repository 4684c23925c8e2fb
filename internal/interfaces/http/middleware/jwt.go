package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bizadmin/backend/internal/infrastructure/auth"
	"github.com/bizadmin/backend/internal/infrastructure/logger"
	"github.com/bizadmin/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// JWT context keys and header constants
const (
	JWTAdminIDKey = "jwt_admin_id"
	JWTEmailKey   = "jwt_email"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTConfig holds configuration for the JWT middleware
type JWTConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
}

// DefaultJWTConfig returns the default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTConfig {
	return JWTConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/ping",
			"/health",
			"/api/v1/auth/login",
			"/api/v1/auth/register",
		},
		SkipPathPrefixes: []string{
			"/swagger",
		},
	}
}

// JWTAuth creates JWT authentication middleware with the default config
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthWithConfig creates JWT authentication middleware
func JWTAuthWithConfig(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		adminID, email, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(JWTAdminIDKey, adminID.String())
		c.Set(JWTEmailKey, email)

		ctx, _ := logger.WithAdminID(c.Request.Context(), logger.FromContext(c.Request.Context()), adminID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}

// GetJWTAdminID returns the authenticated admin ID set by the middleware
func GetJWTAdminID(c *gin.Context) string {
	return c.GetString(JWTAdminIDKey)
}

// GetJWTEmail returns the authenticated admin email set by the middleware
func GetJWTEmail(c *gin.Context) string {
	return c.GetString(JWTEmailKey)
}
