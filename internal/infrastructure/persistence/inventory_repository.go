package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizadmin/backend/internal/domain/catalog"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryRepository implements catalog.InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds an inventory item by its ID. Returns nil without error
// when no item exists.
func (r *GormInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns inventory items matching the filter
func (r *GormInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.InventoryItem, error) {
	var modelList []models.InventoryItemModel
	db := applyFilter(dbFromContext(ctx, r.db).Model(&models.InventoryItemModel{}), filter, "created_at", InventorySortFields)
	if err := db.Where("removed = ?", false).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}

	items := make([]catalog.InventoryItem, len(modelList))
	for i, m := range modelList {
		items[i] = *m.ToDomain()
	}
	return items, nil
}

// Count returns the number of inventory items matching the filter
func (r *GormInventoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	db := applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&models.InventoryItemModel{}), filter, "created_at", InventorySortFields)
	if err := db.Where("removed = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count inventory items: %w", err)
	}
	return count, nil
}

// Save persists an inventory item, inserting or updating by primary key
func (r *GormInventoryRepository) Save(ctx context.Context, item *catalog.InventoryItem) error {
	var model models.InventoryItemModel
	model.FromDomain(item)
	if err := dbFromContext(ctx, r.db).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save inventory item: %w", err)
	}
	return nil
}

var _ catalog.InventoryRepository = (*GormInventoryRepository)(nil)
