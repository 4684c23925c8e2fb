package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizadmin/backend/internal/domain/partner"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID. Returns nil without error when no
// supplier exists.
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var model models.SupplierModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	var modelList []models.SupplierModel
	db := applyFilter(dbFromContext(ctx, r.db).Model(&models.SupplierModel{}), filter, "created_at", SupplierSortFields)
	if err := db.Where("removed = ?", false).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	suppliers := make([]partner.Supplier, len(modelList))
	for i, m := range modelList {
		suppliers[i] = *m.ToDomain()
	}
	return suppliers, nil
}

// Count returns the number of suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	db := applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&models.SupplierModel{}), filter, "created_at", SupplierSortFields)
	if err := db.Where("removed = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count suppliers: %w", err)
	}
	return count, nil
}

// CountCreatedSince counts non-removed suppliers created at or after the
// given time; a zero time counts all
func (r *GormSupplierRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	db := dbFromContext(ctx, r.db).
		Model(&models.SupplierModel{}).
		Where("removed = ?", false)
	if !since.IsZero() {
		db = db.Where("created_at >= ?", since)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count suppliers: %w", err)
	}
	return count, nil
}

// Save persists a supplier, inserting or updating by primary key
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	var model models.SupplierModel
	model.FromDomain(supplier)
	if err := dbFromContext(ctx, r.db).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}
	return nil
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
