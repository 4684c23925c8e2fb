package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BalanceCacheInvalidator drops cached balances after cash movements.
// A nil invalidator disables invalidation.
type BalanceCacheInvalidator interface {
	InvalidateClient(ctx context.Context, clientID uuid.UUID)
	InvalidateSupplier(ctx context.Context, supplierID uuid.UUID)
}

// CashTransactionService orchestrates cash movements: creation, mutation
// and soft deletion, each with its allocation or reversal side effects run
// inside one database transaction.
type CashTransactionService struct {
	txRepo     billing.CashTransactionRepository
	allocator  *AllocationService
	flowReader billing.CashFlowReader
	txManager  shared.TransactionManager
	cache      BalanceCacheInvalidator
	logger     *zap.Logger
}

// NewCashTransactionService creates a new CashTransactionService
func NewCashTransactionService(
	txRepo billing.CashTransactionRepository,
	allocator *AllocationService,
	flowReader billing.CashFlowReader,
	txManager shared.TransactionManager,
	cache BalanceCacheInvalidator,
	logger *zap.Logger,
) *CashTransactionService {
	return &CashTransactionService{
		txRepo:     txRepo,
		allocator:  allocator,
		flowReader: flowReader,
		txManager:  txManager,
		cache:      cache,
		logger:     logger,
	}
}

// CreateCashTransactionRequest carries the fields for a new transaction
type CreateCashTransactionRequest struct {
	Type        billing.TransactionType
	Amount      decimal.Decimal
	Currency    string
	Date        time.Time
	PartyType   billing.PartyType
	ClientID    *uuid.UUID
	SupplierID  *uuid.UUID
	InvoiceID   *uuid.UUID
	Reference   string
	Description string
	CreatedBy   *uuid.UUID
}

// UpdateCashTransactionRequest carries the mutable fields of a
// transaction. Nil fields keep their stored values.
type UpdateCashTransactionRequest struct {
	Amount      *decimal.Decimal
	Date        *time.Time
	InvoiceID   *uuid.UUID
	Reference   *string
	Description *string
}

// CashTransactionResult pairs a transaction with what its latest
// allocation or reversal run did
type CashTransactionResult struct {
	Transaction *billing.CashTransaction   `json:"transaction"`
	Allocation  *billing.AllocationOutcome `json:"allocation,omitempty"`
	Reversal    *billing.ReversalOutcome   `json:"reversal,omitempty"`
}

// Create persists a new cash transaction and, for incoming client money,
// allocates it to invoices in the same database transaction.
func (s *CashTransactionService) Create(ctx context.Context, req CreateCashTransactionRequest) (*CashTransactionResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cash_transaction", "create")
	defer span.End()

	tx, err := billing.NewCashTransaction(
		req.Type, req.Amount, req.Currency, req.Date,
		req.PartyType, req.ClientID, req.SupplierID, req.InvoiceID,
		req.Reference, req.Description,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	tx.SetCreatedBy(req.CreatedBy)

	result := &CashTransactionResult{Transaction: tx}
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		outcome, err := s.allocator.Allocate(txCtx, tx)
		if err != nil {
			return err
		}
		tx.RecordAllocation(outcome.Legs)
		result.Allocation = outcome

		return s.txRepo.Save(txCtx, tx)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.invalidateBalances(ctx, tx)
	s.logger.Info("cash transaction created",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("type", string(tx.Type)),
		zap.String("amount", tx.Amount.String()),
	)

	return result, nil
}

// Get loads a single non-removed transaction
func (s *CashTransactionService) Get(ctx context.Context, id uuid.UUID) (*billing.CashTransaction, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if tx == nil || tx.Removed {
		return nil, shared.ErrNotFound
	}
	return tx, nil
}

// Update reverses the transaction's previous invoice effect, applies the
// new field values, then allocates the new effect. The whole sequence runs
// inside one database transaction so a failure leaves nothing half done.
func (s *CashTransactionService) Update(ctx context.Context, id uuid.UUID, req UpdateCashTransactionRequest) (*CashTransactionResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cash_transaction", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrTransactionID, id.String())

	var result *CashTransactionResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		tx, err := s.txRepo.FindByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load transaction: %w", err)
		}
		if tx == nil || tx.Removed {
			return shared.ErrNotFound
		}

		// Merge the patch over the stored snapshot before touching it
		amount := tx.Amount
		if req.Amount != nil {
			amount = *req.Amount
		}
		date := tx.Date
		if req.Date != nil {
			date = *req.Date
		}
		invoiceID := tx.InvoiceID
		if req.InvoiceID != nil {
			invoiceID = req.InvoiceID
		}
		reference := tx.Reference
		if req.Reference != nil {
			reference = *req.Reference
		}
		description := tx.Description
		if req.Description != nil {
			description = *req.Description
		}

		reversal, err := s.allocator.Reverse(txCtx, tx)
		if err != nil {
			return err
		}
		tx.ClearAllocation()

		if err := tx.UpdateDetails(amount, date, invoiceID, reference, description); err != nil {
			return err
		}

		allocation, err := s.allocator.Allocate(txCtx, tx)
		if err != nil {
			return err
		}
		tx.RecordAllocation(allocation.Legs)

		if err := s.txRepo.Save(txCtx, tx); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}

		result = &CashTransactionResult{
			Transaction: tx,
			Allocation:  allocation,
			Reversal:    reversal,
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.invalidateBalances(ctx, result.Transaction)
	return result, nil
}

// Delete reverses the transaction's invoice effect and soft-deletes it
func (s *CashTransactionService) Delete(ctx context.Context, id uuid.UUID) (*CashTransactionResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cash_transaction", "delete")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrTransactionID, id.String())

	var result *CashTransactionResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		tx, err := s.txRepo.FindByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load transaction: %w", err)
		}
		if tx == nil || tx.Removed {
			return shared.ErrNotFound
		}

		reversal, err := s.allocator.Reverse(txCtx, tx)
		if err != nil {
			return err
		}
		tx.ClearAllocation()

		if err := tx.MarkRemoved(); err != nil {
			return err
		}
		if err := s.txRepo.Save(txCtx, tx); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}

		result = &CashTransactionResult{Transaction: tx, Reversal: reversal}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.invalidateBalances(ctx, result.Transaction)
	return result, nil
}

// List returns a page of non-removed transactions matching the filter
func (s *CashTransactionService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[billing.CashTransaction], error) {
	items, err := s.txRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	total, err := s.txRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	return shared.NewPaginated(items, total, filter.Page, filter.Limit()), nil
}

// CashSummary aggregates cash flow for a period alongside all-time totals
type CashSummary struct {
	Period      billing.Period  `json:"period"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	PeriodIn    decimal.Decimal `json:"period_in"`
	PeriodOut   decimal.Decimal `json:"period_out"`
	TotalIn     decimal.Decimal `json:"total_in"`
	TotalOut    decimal.Decimal `json:"total_out"`
	CountIn     int64           `json:"count_in"`
	CountOut    int64           `json:"count_out"`
}

// Summary computes cash in/out totals over a week, month or year window
// terminating at now, plus all-time totals.
func (s *CashTransactionService) Summary(ctx context.Context, period billing.Period) (*CashSummary, error) {
	if !period.IsValid() {
		return nil, shared.ErrInvalidPeriod
	}

	start, end, err := period.Bounds(time.Now())
	if err != nil {
		return nil, err
	}

	periodTotals, err := s.flowReader.Totals(ctx, &start, &end)
	if err != nil {
		return nil, fmt.Errorf("failed to compute period totals: %w", err)
	}
	allTime, err := s.flowReader.Totals(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compute all-time totals: %w", err)
	}

	return &CashSummary{
		Period:      period,
		PeriodStart: start,
		PeriodEnd:   end,
		PeriodIn:    periodTotals.TotalIn,
		PeriodOut:   periodTotals.TotalOut,
		TotalIn:     allTime.TotalIn,
		TotalOut:    allTime.TotalOut,
		CountIn:     allTime.CountIn,
		CountOut:    allTime.CountOut,
	}, nil
}

func (s *CashTransactionService) invalidateBalances(ctx context.Context, tx *billing.CashTransaction) {
	if s.cache == nil {
		return
	}
	if tx.ClientID != nil {
		s.cache.InvalidateClient(ctx, *tx.ClientID)
	}
	if tx.SupplierID != nil {
		s.cache.InvalidateSupplier(ctx, *tx.SupplierID)
	}
}
