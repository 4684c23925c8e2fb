package trade

import (
	"context"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseRepository defines the persistence interface for purchases
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, purchase *Purchase) error
	NextNumber(ctx context.Context, year int) (int, error)
	// TotalsForSupplier sums total and credit across the supplier's
	// non-removed purchases.
	TotalsForSupplier(ctx context.Context, supplierID uuid.UUID) (total, credit decimal.Decimal, err error)
}

// PurchaseTotalsReader is the aggregate-query slice of
// PurchaseRepository needed by balance reconciliation
type PurchaseTotalsReader interface {
	TotalsForSupplier(ctx context.Context, supplierID uuid.UUID) (total, credit decimal.Decimal, err error)
}

// ReturnExchangeRepository defines the persistence interface for
// return/exchange records
type ReturnExchangeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnExchange, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ReturnExchange, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, re *ReturnExchange) error
	NextNumber(ctx context.Context, year int) (int, error)
	// TotalsForClient sums returned totals and signed price differences
	// across the client's non-removed records.
	TotalsForClient(ctx context.Context, clientID uuid.UUID) (returns, exchangeDifference decimal.Decimal, err error)
}

// ReturnTotalsReader is the aggregate-query slice of
// ReturnExchangeRepository needed by balance reconciliation
type ReturnTotalsReader interface {
	TotalsForClient(ctx context.Context, clientID uuid.UUID) (returns, exchangeDifference decimal.Decimal, err error)
}
