package billing

import (
	"sort"
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OverflowPolicy controls what happens when an incoming amount exceeds the
// total outstanding across a client's open invoices.
type OverflowPolicy string

const (
	// OverflowPolicyAbsorb allocates what it can and drops the remainder.
	// The leftover is still reported on the allocation plan so callers can
	// log it.
	OverflowPolicyAbsorb OverflowPolicy = "absorb"
	// OverflowPolicyReject fails the allocation when the amount cannot be
	// fully placed.
	OverflowPolicyReject OverflowPolicy = "reject"
)

// IsValid checks if the policy is a valid OverflowPolicy
func (p OverflowPolicy) IsValid() bool {
	return p == OverflowPolicyAbsorb || p == OverflowPolicyReject
}

// AllocationPlan is the computed outcome of an allocation walk, before any
// invoice has been mutated.
type AllocationPlan struct {
	Legs           AppliedInvoices // per-invoice amounts, in walk order
	TotalAllocated decimal.Decimal
	Leftover       decimal.Decimal // amount that found no open invoice
	FullyPlaced    bool
}

// PlanDirectAllocation builds a single-leg plan against one invoice.
// The full transaction amount lands on the invoice regardless of its
// outstanding balance; overpayment simply pushes the invoice to paid.
func PlanDirectAllocation(amount decimal.Decimal, invoice *Invoice) (*AllocationPlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	if invoice == nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Allocation target invoice cannot be nil")
	}
	if invoice.Removed {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot allocate to a removed invoice")
	}

	return &AllocationPlan{
		Legs:           AppliedInvoices{{InvoiceID: invoice.ID, Amount: amount}},
		TotalAllocated: amount,
		Leftover:       decimal.Zero,
		FullyPlaced:    true,
	}, nil
}

// PlanAutoAllocation walks the given invoices oldest first (by document
// date, creation date as tiebreak) and fills each open invoice up to its
// outstanding balance until the amount runs out. Removed invoices and
// invoices that are already paid are skipped.
func PlanAutoAllocation(amount decimal.Decimal, invoices []Invoice, policy OverflowPolicy) (*AllocationPlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	if !policy.IsValid() {
		return nil, shared.NewDomainError("INVALID_POLICY", "Unknown overflow policy")
	}

	open := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Removed {
			continue
		}
		if !inv.PaymentStatus.CanReceiveAllocation() {
			continue
		}
		if inv.Outstanding().LessThanOrEqual(decimal.Zero) {
			continue
		}
		open = append(open, inv)
	}

	sort.Slice(open, func(i, j int) bool {
		if !open[i].Date.Equal(open[j].Date) {
			return open[i].Date.Before(open[j].Date)
		}
		return open[i].CreatedAt.Before(open[j].CreatedAt)
	})

	legs := make(AppliedInvoices, 0, len(open))
	remaining := amount
	totalAllocated := decimal.Zero

	for _, inv := range open {
		if remaining.IsZero() {
			break
		}

		allocAmount := decimal.Min(remaining, inv.Outstanding())

		legs = append(legs, AppliedInvoice{
			InvoiceID: inv.ID,
			Amount:    allocAmount,
		})

		totalAllocated = totalAllocated.Add(allocAmount)
		remaining = remaining.Sub(allocAmount)
	}

	if policy == OverflowPolicyReject && remaining.GreaterThan(decimal.Zero) {
		return nil, shared.NewDomainError("ALLOCATION_OVERFLOW",
			"Amount exceeds the total outstanding across open invoices")
	}

	return &AllocationPlan{
		Legs:           legs,
		TotalAllocated: totalAllocated,
		Leftover:       remaining,
		FullyPlaced:    remaining.IsZero(),
	}, nil
}

// AllocationOutcome reports what an executed allocation actually did
type AllocationOutcome struct {
	Legs           AppliedInvoices `json:"legs"`
	TotalAllocated decimal.Decimal `json:"total_allocated"`
	Leftover       decimal.Decimal `json:"leftover"`
}

// ReversalOutcome reports what a reversal run actually undid.
// SkippedInvoices lists allocation legs whose invoice no longer exists;
// ClampedAmount is credit the clamp at zero swallowed.
type ReversalOutcome struct {
	Reversed        AppliedInvoices `json:"reversed"`
	SkippedInvoices []uuid.UUID     `json:"skipped_invoices"`
	ClampedAmount   decimal.Decimal `json:"clamped_amount"`
	ReversedAt      time.Time       `json:"reversed_at"`
}

// HasSkips returns true if any allocation leg could not be reversed
func (r *ReversalOutcome) HasSkips() bool {
	return len(r.SkippedInvoices) > 0
}
