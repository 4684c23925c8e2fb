package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bizadmin/backend/internal/domain/identity"
	"github.com/bizadmin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAdminRepository implements identity.AdminRepository using GORM
type GormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository creates a new GormAdminRepository
func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// FindByID finds an admin by its ID. Returns nil without error when no
// admin exists.
func (r *GormAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Admin, error) {
	var model models.AdminModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an admin by email, case-insensitively. Returns nil
// without error when no admin exists.
func (r *GormAdminRepository) FindByEmail(ctx context.Context, email string) (*identity.Admin, error) {
	var model models.AdminModel
	err := dbFromContext(ctx, r.db).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return model.ToDomain(), nil
}

// Save persists an admin, inserting or updating by primary key
func (r *GormAdminRepository) Save(ctx context.Context, admin *identity.Admin) error {
	var model models.AdminModel
	model.FromDomain(admin)
	if err := dbFromContext(ctx, r.db).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save admin: %w", err)
	}
	return nil
}

var _ identity.AdminRepository = (*GormAdminRepository)(nil)
