package partner

import (
	"context"
	"fmt"
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/partner"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplierService handles supplier lifecycle operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// CreateSupplierRequest carries the fields for a new supplier
type CreateSupplierRequest struct {
	Name      string
	Email     string
	Phone     string
	Address   string
	Country   string
	CreatedBy *uuid.UUID
}

// UpdateSupplierRequest carries the updatable supplier fields
type UpdateSupplierRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Country string
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*partner.Supplier, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "SupplierService", "Create")
	defer span.End()

	supplier, err := partner.NewSupplier(req.Name, req.Email, req.Phone, req.Address, req.Country)
	if err != nil {
		return nil, err
	}
	supplier.SetCreatedBy(req.CreatedBy)

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}

	s.logger.Info("supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name))

	return supplier, nil
}

// Get returns a supplier by id
func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	if supplier == nil || supplier.Removed {
		return nil, shared.ErrNotFound
	}
	return supplier, nil
}

// Update modifies a supplier's contact details
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*partner.Supplier, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "SupplierService", "Update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrSupplierID, id.String())

	supplier, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := supplier.UpdateDetails(req.Name, req.Email, req.Phone, req.Address, req.Country); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}

	return supplier, nil
}

// Delete soft deletes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "SupplierService", "Delete")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrSupplierID, id.String())

	supplier, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := supplier.MarkRemoved(); err != nil {
		return err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to save supplier: %w", err)
	}

	s.logger.Info("supplier removed", zap.String("supplier_id", id.String()))
	return nil
}

// List returns a page of suppliers
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Supplier], error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}
	return shared.NewPaginated(suppliers, total, filter.Page, filter.Limit()), nil
}

// Summary counts suppliers and how many were added within the period
func (s *SupplierService) Summary(ctx context.Context, period billing.Period) (*PartnerSummary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "SupplierService", "Summary")
	defer span.End()

	if !period.IsValid() {
		return nil, shared.ErrInvalidPeriod
	}
	start, end, err := period.Bounds(time.Now())
	if err != nil {
		return nil, err
	}

	total, err := s.supplierRepo.CountCreatedSince(ctx, time.Time{})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}
	newInPeriod, err := s.supplierRepo.CountCreatedSince(ctx, start)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count new suppliers: %w", err)
	}

	return &PartnerSummary{
		Period:        period,
		PeriodStart:   start,
		PeriodEnd:     end,
		Total:         total,
		NewInPeriod:   newInPeriod,
		GrowthPercent: growthPercent(total, newInPeriod),
	}, nil
}
