package shared

import "context"

// TransactionManager runs a function inside a single database transaction.
// Repositories participating in the transaction pick it up from the context
// passed to fn; outside a transaction they fall back to their own connection.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTransactionManager executes fn directly, without transactional
// semantics. Useful in tests of services whose repositories are fakes.
type NoopTransactionManager struct{}

// WithinTransaction calls fn with the unchanged context
func (NoopTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
