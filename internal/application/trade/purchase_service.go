package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/domain/trade"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseService handles purchases from suppliers
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
	txManager    shared.TransactionManager
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo trade.PurchaseRepository, txManager shared.TransactionManager, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreatePurchaseRequest carries the fields for a new purchase
type CreatePurchaseRequest struct {
	SupplierID uuid.UUID
	Date       time.Time
	Total      decimal.Decimal
	Currency   string
	Notes      string
	CreatedBy  *uuid.UUID
}

// Create records a new purchase with the next sequential number for its
// year
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*trade.Purchase, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "PurchaseService", "Create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrSupplierID, req.SupplierID.String(),
		telemetry.SpanAttrAmount, req.Total.String(),
	)

	var purchase *trade.Purchase
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		number, err := s.purchaseRepo.NextNumber(ctx, req.Date.Year())
		if err != nil {
			return fmt.Errorf("failed to get next number: %w", err)
		}

		purchase, err = trade.NewPurchase(number, req.Date.Year(), req.SupplierID, req.Date, req.Total, req.Currency)
		if err != nil {
			return err
		}
		purchase.Notes = req.Notes
		purchase.SetCreatedBy(req.CreatedBy)

		if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
			return fmt.Errorf("failed to save purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("purchase created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("supplier_id", req.SupplierID.String()),
		zap.String("total", req.Total.String()))

	return purchase, nil
}

// Get returns a purchase by id
func (s *PurchaseService) Get(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase: %w", err)
	}
	if purchase == nil || purchase.Removed {
		return nil, shared.ErrNotFound
	}
	return purchase, nil
}

// List returns a page of purchases
func (s *PurchaseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[trade.Purchase], error) {
	purchases, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	total, err := s.purchaseRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count purchases: %w", err)
	}
	return shared.NewPaginated(purchases, total, filter.Page, filter.Limit()), nil
}

// RecordPayment applies a credit against the purchase, moving its
// payment status forward. Supplier payments do not auto-allocate.
func (s *PurchaseService) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*trade.Purchase, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "PurchaseService", "RecordPayment")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrAmount, amount.String())

	var purchase *trade.Purchase
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		purchase, err = s.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := purchase.ApplyCredit(amount); err != nil {
			return err
		}
		if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
			return fmt.Errorf("failed to save purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return purchase, nil
}

// Delete soft deletes a purchase
func (s *PurchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "PurchaseService", "Delete")
	defer span.End()

	purchase, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := purchase.MarkRemoved(); err != nil {
		return err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to save purchase: %w", err)
	}

	s.logger.Info("purchase removed", zap.String("purchase_id", id.String()))
	return nil
}
