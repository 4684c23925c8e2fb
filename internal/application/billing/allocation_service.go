package billing

import (
	"context"
	"fmt"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AllocationService applies incoming cash to invoices and undoes prior
// applications. It mutates invoices only; recording the legs on the owning
// cash transaction is the caller's job.
type AllocationService struct {
	invoiceRepo billing.InvoiceRepository
	policy      billing.OverflowPolicy
	logger      *zap.Logger
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(invoiceRepo billing.InvoiceRepository, policy billing.OverflowPolicy, logger *zap.Logger) *AllocationService {
	if !policy.IsValid() {
		policy = billing.OverflowPolicyAbsorb
	}
	return &AllocationService{
		invoiceRepo: invoiceRepo,
		policy:      policy,
		logger:      logger,
	}
}

// Allocate distributes the transaction amount across invoices. A direct
// target invoice receives the full amount; otherwise the amount walks the
// client's open invoices oldest first. Transactions that do not affect
// invoices produce an empty outcome.
func (s *AllocationService) Allocate(ctx context.Context, tx *billing.CashTransaction) (*billing.AllocationOutcome, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "allocation", "allocate")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTransactionID, tx.ID.String(),
		telemetry.SpanAttrAmount, tx.Amount.String(),
		telemetry.SpanAttrTxType, string(tx.Type),
	)

	if !tx.AffectsInvoices() {
		return &billing.AllocationOutcome{
			Legs:           billing.AppliedInvoices{},
			TotalAllocated: decimal.Zero,
			Leftover:       decimal.Zero,
		}, nil
	}

	var plan *billing.AllocationPlan
	if tx.InvoiceID != nil {
		invoice, err := s.invoiceRepo.FindByID(ctx, *tx.InvoiceID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load target invoice: %w", err)
		}
		if invoice == nil || invoice.Removed {
			err := shared.NewDomainError("INVOICE_NOT_FOUND", "Target invoice not found")
			telemetry.RecordError(span, err)
			return nil, err
		}

		plan, err = billing.PlanDirectAllocation(tx.Amount, invoice)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	} else {
		open, err := s.invoiceRepo.FindOpenByClient(ctx, *tx.ClientID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load open invoices: %w", err)
		}

		plan, err = billing.PlanAutoAllocation(tx.Amount, open, s.policy)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	for _, leg := range plan.Legs {
		invoice, err := s.invoiceRepo.FindByID(ctx, leg.InvoiceID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load invoice %s: %w", leg.InvoiceID, err)
		}
		if invoice == nil {
			err := shared.NewDomainError("INVOICE_NOT_FOUND", "Planned invoice disappeared during allocation")
			telemetry.RecordError(span, err)
			return nil, err
		}

		expected := invoice.Version
		if err := invoice.ApplyCredit(leg.Amount); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice, expected); err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to save invoice %s: %w", invoice.ID, err)
		}
	}

	if plan.Leftover.GreaterThan(decimal.Zero) {
		s.logger.Warn("allocation left money unplaced",
			zap.String("transaction_id", tx.ID.String()),
			zap.String("leftover", plan.Leftover.String()),
		)
	}

	return &billing.AllocationOutcome{
		Legs:           plan.Legs,
		TotalAllocated: plan.TotalAllocated,
		Leftover:       plan.Leftover,
	}, nil
}

// Reverse undoes the transaction's recorded allocation legs. Invoices that
// no longer exist are reported as skipped rather than failing the whole
// reversal; credit clamped at zero is summed into the outcome.
func (s *AllocationService) Reverse(ctx context.Context, tx *billing.CashTransaction) (*billing.ReversalOutcome, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "allocation", "reverse")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrTransactionID, tx.ID.String())

	outcome := &billing.ReversalOutcome{
		Reversed:        billing.AppliedInvoices{},
		SkippedInvoices: []uuid.UUID{},
		ClampedAmount:   decimal.Zero,
	}

	for _, leg := range tx.AppliedInvoices {
		invoice, err := s.invoiceRepo.FindByID(ctx, leg.InvoiceID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load invoice %s: %w", leg.InvoiceID, err)
		}
		if invoice == nil {
			s.logger.Warn("reversal skipped missing invoice",
				zap.String("transaction_id", tx.ID.String()),
				zap.String("invoice_id", leg.InvoiceID.String()),
			)
			outcome.SkippedInvoices = append(outcome.SkippedInvoices, leg.InvoiceID)
			continue
		}

		expected := invoice.Version
		clamped, err := invoice.RevertCredit(leg.Amount)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if clamped.GreaterThan(decimal.Zero) {
			s.logger.Warn("reversal clamped invoice credit at zero",
				zap.String("invoice_id", invoice.ID.String()),
				zap.String("clamped", clamped.String()),
			)
			outcome.ClampedAmount = outcome.ClampedAmount.Add(clamped)
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice, expected); err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to save invoice %s: %w", invoice.ID, err)
		}

		outcome.Reversed = append(outcome.Reversed, leg)
	}

	return outcome, nil
}
