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

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID. Returns nil without error when no
// client exists.
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	var model models.ClientModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	var modelList []models.ClientModel
	db := applyFilter(dbFromContext(ctx, r.db).Model(&models.ClientModel{}), filter, "created_at", ClientSortFields)
	if err := db.Where("removed = ?", false).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]partner.Client, len(modelList))
	for i, m := range modelList {
		clients[i] = *m.ToDomain()
	}
	return clients, nil
}

// Count returns the number of clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	db := applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&models.ClientModel{}), filter, "created_at", ClientSortFields)
	if err := db.Where("removed = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

// CountCreatedSince counts non-removed clients created at or after the
// given time; a zero time counts all
func (r *GormClientRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	db := dbFromContext(ctx, r.db).
		Model(&models.ClientModel{}).
		Where("removed = ?", false)
	if !since.IsZero() {
		db = db.Where("created_at >= ?", since)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

// Save persists a client, inserting or updating by primary key
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	var model models.ClientModel
	model.FromDomain(client)
	if err := dbFromContext(ctx, r.db).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

var _ partner.ClientRepository = (*GormClientRepository)(nil)
