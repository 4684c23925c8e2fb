package catalog

import (
	"context"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InventoryRepository defines the persistence interface for inventory items
type InventoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, item *InventoryItem) error
}
