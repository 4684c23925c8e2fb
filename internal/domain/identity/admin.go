package identity

import (
	"context"
	"strings"
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Admin is a back-office user of the admin panel
type Admin struct {
	shared.BaseAggregateRoot
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Enabled      bool   `json:"enabled"`
	Removed      bool   `json:"removed"`
}

// NewAdmin creates a new admin with a bcrypt-hashed password
func NewAdmin(email, name, password string) (*Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Admin{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Name:              name,
		PasswordHash:      string(hash),
		Enabled:           true,
	}, nil
}

// CheckPassword verifies a candidate password against the stored hash
func (a *Admin) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash
func (a *Admin) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// CanLogIn returns true if the admin may authenticate
func (a *Admin) CanLogIn() bool {
	return a.Enabled && !a.Removed
}

// AdminRepository defines the persistence interface for admins
type AdminRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	Save(ctx context.Context, admin *Admin) error
}
