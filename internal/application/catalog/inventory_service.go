package catalog

import (
	"context"
	"fmt"

	"github.com/bizadmin/backend/internal/domain/catalog"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryService handles inventory item lifecycle operations
type InventoryService struct {
	inventoryRepo catalog.InventoryRepository
	logger        *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(inventoryRepo catalog.InventoryRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// CreateInventoryItemRequest carries the fields for a new item
type CreateInventoryItemRequest struct {
	Product     string
	SKU         string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Currency    string
	CreatedBy   *uuid.UUID
}

// UpdateInventoryItemRequest carries the updatable item fields
type UpdateInventoryItemRequest struct {
	Product     string
	SKU         string
	Description string
	UnitPrice   decimal.Decimal
}

// Create registers a new inventory item
func (s *InventoryService) Create(ctx context.Context, req CreateInventoryItemRequest) (*catalog.InventoryItem, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "InventoryService", "Create")
	defer span.End()

	item, err := catalog.NewInventoryItem(req.Product, req.SKU, req.Description, req.Quantity, req.UnitPrice, req.Currency)
	if err != nil {
		return nil, err
	}
	item.SetCreatedBy(req.CreatedBy)

	if err := s.inventoryRepo.Save(ctx, item); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}

	s.logger.Info("inventory item created",
		zap.String("item_id", item.ID.String()),
		zap.String("product", item.Product))

	return item, nil
}

// Get returns an item by id
func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*catalog.InventoryItem, error) {
	item, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}
	if item == nil || item.Removed {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

// Update modifies an item's descriptive fields and price
func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, req UpdateInventoryItemRequest) (*catalog.InventoryItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.UpdateDetails(req.Product, req.SKU, req.Description, req.UnitPrice); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}
	return item, nil
}

// AdjustQuantity moves stock in or out. Negative deltas may not take
// the quantity below zero.
func (s *InventoryService) AdjustQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*catalog.InventoryItem, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "InventoryService", "AdjustQuantity")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrAmount, delta.String())

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.AdjustQuantity(delta); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.Save(ctx, item); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}
	return item, nil
}

// List returns a page of items
func (s *InventoryService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.InventoryItem], error) {
	items, err := s.inventoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	total, err := s.inventoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count inventory items: %w", err)
	}
	return shared.NewPaginated(items, total, filter.Page, filter.Limit()), nil
}

// Delete soft deletes an item
func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := item.MarkRemoved(); err != nil {
		return err
	}
	if err := s.inventoryRepo.Save(ctx, item); err != nil {
		return fmt.Errorf("failed to save inventory item: %w", err)
	}
	s.logger.Info("inventory item removed", zap.String("item_id", id.String()))
	return nil
}
