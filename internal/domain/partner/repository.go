package partner

import (
	"context"
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the persistence interface for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// CountCreatedSince counts non-removed clients created at or after the
	// given time; a zero time counts all.
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	Save(ctx context.Context, client *Client) error
}

// SupplierRepository defines the persistence interface for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error
}
