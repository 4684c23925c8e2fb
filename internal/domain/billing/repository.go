package billing

import (
	"context"
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the persistence interface for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	// FindOpenByClient returns the client's non-removed invoices that can
	// still receive allocations, ordered oldest first.
	FindOpenByClient(ctx context.Context, clientID uuid.UUID) ([]Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	// SaveWithLock persists the invoice only if the stored version matches
	// expectedVersion, returning ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, invoice *Invoice, expectedVersion int) error
	NextNumber(ctx context.Context, year int) (int, error)
}

// CashTransactionRepository defines the persistence interface for cash
// transactions
type CashTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashTransaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CashTransaction, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, tx *CashTransaction) error
}

// CashFlowTotals aggregates cash movement amounts per direction
type CashFlowTotals struct {
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
	CountIn  int64
	CountOut int64
}

// InvoiceTotals aggregates a client's invoice amounts
type InvoiceTotals struct {
	TotalInvoiced decimal.Decimal
	TotalCredited decimal.Decimal
}

// InvoiceTotalsReader provides aggregate queries over invoices.
// Implementations exclude removed invoices.
type InvoiceTotalsReader interface {
	InvoiceTotalsForClient(ctx context.Context, clientID uuid.UUID) (*InvoiceTotals, error)
}

// CashFlowReader provides aggregate queries over cash transactions.
// Implementations exclude removed transactions.
type CashFlowReader interface {
	// Totals sums non-removed transactions dated within [from, to); a
	// nil bound leaves that side of the range open.
	Totals(ctx context.Context, from, to *time.Time) (*CashFlowTotals, error)
	// TotalsForClient sums a single client's non-removed transactions.
	TotalsForClient(ctx context.Context, clientID uuid.UUID) (*CashFlowTotals, error)
}
