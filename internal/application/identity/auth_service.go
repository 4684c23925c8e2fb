package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bizadmin/backend/internal/domain/identity"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer mints access tokens for authenticated admins
type TokenIssuer interface {
	IssueToken(adminID uuid.UUID, email string) (token string, expiresAt time.Time, err error)
}

// AuthService authenticates admins and manages their credentials
type AuthService struct {
	adminRepo identity.AdminRepository
	tokens    TokenIssuer
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo identity.AdminRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		tokens:    tokens,
		logger:    logger,
	}
}

// LoginResult carries the issued token and the authenticated admin
type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Admin     *identity.Admin `json:"admin"`
}

// Login verifies the credentials and issues a token. Unknown emails and
// wrong passwords both map to the same error so the response does not
// leak which admins exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "Login")
	defer span.End()

	admin, err := s.adminRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	if admin == nil || !admin.CanLogIn() || !admin.CheckPassword(password) {
		s.logger.Warn("login rejected", zap.String("email", email))
		return nil, shared.ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.IssueToken(admin.ID, admin.Email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("admin logged in", zap.String("admin_id", admin.ID.String()))

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     admin,
	}, nil
}

// Register creates a new admin account
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*identity.Admin, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "Register")
	defer span.End()

	existing, err := s.adminRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to check existing admin: %w", err)
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	admin, err := identity.NewAdmin(email, name, password)
	if err != nil {
		return nil, err
	}

	if err := s.adminRepo.Save(ctx, admin); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save admin: %w", err)
	}

	s.logger.Info("admin registered", zap.String("admin_id", admin.ID.String()))
	return admin, nil
}

// ChangePassword verifies the current password before setting a new one
func (s *AuthService) ChangePassword(ctx context.Context, adminID uuid.UUID, current, next string) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "ChangePassword")
	defer span.End()

	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("failed to find admin: %w", err)
	}
	if admin == nil {
		return shared.ErrNotFound
	}
	if !admin.CheckPassword(current) {
		return shared.ErrUnauthorized
	}

	if err := admin.ChangePassword(next); err != nil {
		return err
	}

	if err := s.adminRepo.Save(ctx, admin); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to save admin: %w", err)
	}
	return nil
}

// Profile returns the admin behind the given id
func (s *AuthService) Profile(ctx context.Context, adminID uuid.UUID) (*identity.Admin, error) {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	if admin == nil || admin.Removed {
		return nil, shared.ErrNotFound
	}
	return admin, nil
}
