package partner

import (
	"context"
	"testing"
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/partner"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory fakes

type fakeClientRepo struct {
	clients map[uuid.UUID]partner.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]partner.Client)}
}

func (r *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	out := c
	return &out, nil
}

func (r *fakeClientRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Client, error) {
	var out []partner.Client
	for _, c := range r.clients {
		if !c.Removed {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	var n int64
	for _, c := range r.clients {
		if !c.Removed {
			n++
		}
	}
	return n, nil
}

func (r *fakeClientRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, c := range r.clients {
		if !c.Removed && !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeClientRepo) Save(_ context.Context, c *partner.Client) error {
	r.clients[c.ID] = *c
	return nil
}

type fakeSupplierRepo struct {
	suppliers map[uuid.UUID]partner.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: make(map[uuid.UUID]partner.Supplier)}
}

func (r *fakeSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	out := s
	return &out, nil
}

func (r *fakeSupplierRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Supplier, error) {
	var out []partner.Supplier
	for _, s := range r.suppliers {
		if !s.Removed {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSupplierRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.suppliers)), nil
}

func (r *fakeSupplierRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, s := range r.suppliers {
		if !s.Removed && !s.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeSupplierRepo) Save(_ context.Context, s *partner.Supplier) error {
	r.suppliers[s.ID] = *s
	return nil
}

type fakeInvoiceTotals struct {
	totals billing.InvoiceTotals
}

func (r *fakeInvoiceTotals) InvoiceTotalsForClient(_ context.Context, _ uuid.UUID) (*billing.InvoiceTotals, error) {
	out := r.totals
	return &out, nil
}

type fakeFlowReader struct {
	totals billing.CashFlowTotals
}

func (r *fakeFlowReader) Totals(_ context.Context, _, _ *time.Time) (*billing.CashFlowTotals, error) {
	out := r.totals
	return &out, nil
}

func (r *fakeFlowReader) TotalsForClient(_ context.Context, _ uuid.UUID) (*billing.CashFlowTotals, error) {
	out := r.totals
	return &out, nil
}

type fakePurchaseTotals struct {
	total  decimal.Decimal
	credit decimal.Decimal
	calls  int
}

func (r *fakePurchaseTotals) TotalsForSupplier(_ context.Context, _ uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	r.calls++
	return r.total, r.credit, nil
}

type fakeReturnTotals struct {
	returns      decimal.Decimal
	exchangeDiff decimal.Decimal
}

func (r *fakeReturnTotals) TotalsForClient(_ context.Context, _ uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	return r.returns, r.exchangeDiff, nil
}

type memoryBalanceCache struct {
	clients   map[uuid.UUID]*ClientBalance
	suppliers map[uuid.UUID]*SupplierBalance
}

func newMemoryBalanceCache() *memoryBalanceCache {
	return &memoryBalanceCache{
		clients:   make(map[uuid.UUID]*ClientBalance),
		suppliers: make(map[uuid.UUID]*SupplierBalance),
	}
}

func (c *memoryBalanceCache) GetClientBalance(_ context.Context, id uuid.UUID) (*ClientBalance, error) {
	return c.clients[id], nil
}

func (c *memoryBalanceCache) SetClientBalance(_ context.Context, b *ClientBalance) error {
	c.clients[b.ClientID] = b
	return nil
}

func (c *memoryBalanceCache) GetSupplierBalance(_ context.Context, id uuid.UUID) (*SupplierBalance, error) {
	return c.suppliers[id], nil
}

func (c *memoryBalanceCache) SetSupplierBalance(_ context.Context, b *SupplierBalance) error {
	c.suppliers[b.SupplierID] = b
	return nil
}

func (c *memoryBalanceCache) InvalidateClient(_ context.Context, id uuid.UUID) error {
	delete(c.clients, id)
	return nil
}

func (c *memoryBalanceCache) InvalidateSupplier(_ context.Context, id uuid.UUID) error {
	delete(c.suppliers, id)
	return nil
}

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// ============================================
// Client balance
// ============================================

func TestBalanceService_GetClientBalance(t *testing.T) {
	clientRepo := newFakeClientRepo()
	client, err := partner.NewClient("Acme", "acme@example.com", "", "", "US")
	require.NoError(t, err)
	require.NoError(t, clientRepo.Save(context.Background(), client))

	purchases := &fakePurchaseTotals{}
	svc := NewBalanceService(
		clientRepo,
		newFakeSupplierRepo(),
		&fakeInvoiceTotals{totals: billing.InvoiceTotals{
			TotalInvoiced: dec("1000"),
			TotalCredited: dec("400"),
		}},
		&fakeFlowReader{totals: billing.CashFlowTotals{
			TotalIn:  dec("400"),
			TotalOut: dec("50"),
		}},
		purchases,
		&fakeReturnTotals{returns: dec("100"), exchangeDiff: dec("25")},
		nil,
		zap.NewNop(),
	)

	t.Run("applies the full reconciliation formula", func(t *testing.T) {
		balance, err := svc.GetClientBalance(context.Background(), client.ID)
		require.NoError(t, err)

		// 1000 - 400 - 400 + 50 - 100 + 25
		assert.True(t, balance.Outstanding.Equal(dec("175")),
			"got %s", balance.Outstanding)
		assert.True(t, balance.TotalInvoiced.Equal(dec("1000")))
		assert.True(t, balance.TotalReturns.Equal(dec("100")))
	})

	t.Run("unknown client yields not found", func(t *testing.T) {
		_, err := svc.GetClientBalance(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("removed client yields not found", func(t *testing.T) {
		removed, err := partner.NewClient("Gone", "", "", "", "")
		require.NoError(t, err)
		removed.MarkRemoved()
		require.NoError(t, clientRepo.Save(context.Background(), removed))

		_, err = svc.GetClientBalance(context.Background(), removed.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBalanceService_GetClientBalance_NegativeOutstanding(t *testing.T) {
	clientRepo := newFakeClientRepo()
	client, err := partner.NewClient("Prepaid", "", "", "", "")
	require.NoError(t, err)
	require.NoError(t, clientRepo.Save(context.Background(), client))

	svc := NewBalanceService(
		clientRepo,
		newFakeSupplierRepo(),
		&fakeInvoiceTotals{totals: billing.InvoiceTotals{
			TotalInvoiced: dec("100"),
			TotalCredited: dec("100"),
		}},
		&fakeFlowReader{totals: billing.CashFlowTotals{TotalIn: dec("150")}},
		&fakePurchaseTotals{},
		&fakeReturnTotals{},
		nil,
		zap.NewNop(),
	)

	balance, err := svc.GetClientBalance(context.Background(), client.ID)
	require.NoError(t, err)

	// Overpayment surfaces as a negative position, it is not clamped
	assert.True(t, balance.Outstanding.Equal(dec("-150")),
		"got %s", balance.Outstanding)
}

// ============================================
// Supplier balance
// ============================================

func TestBalanceService_GetSupplierBalance(t *testing.T) {
	supplierRepo := newFakeSupplierRepo()
	supplier, err := partner.NewSupplier("Globex", "", "", "", "")
	require.NoError(t, err)
	require.NoError(t, supplierRepo.Save(context.Background(), supplier))

	svc := NewBalanceService(
		newFakeClientRepo(),
		supplierRepo,
		&fakeInvoiceTotals{},
		&fakeFlowReader{},
		&fakePurchaseTotals{total: dec("800"), credit: dec("300")},
		&fakeReturnTotals{},
		nil,
		zap.NewNop(),
	)

	t.Run("uses purchases only", func(t *testing.T) {
		balance, err := svc.GetSupplierBalance(context.Background(), supplier.ID)
		require.NoError(t, err)

		assert.True(t, balance.Outstanding.Equal(dec("500")))
		assert.True(t, balance.TotalPurchased.Equal(dec("800")))
		assert.True(t, balance.TotalPaid.Equal(dec("300")))
	})

	t.Run("unknown supplier yields not found", func(t *testing.T) {
		_, err := svc.GetSupplierBalance(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// ============================================
// Caching
// ============================================

func TestBalanceService_Cache(t *testing.T) {
	supplierRepo := newFakeSupplierRepo()
	supplier, err := partner.NewSupplier("Initech", "", "", "", "")
	require.NoError(t, err)
	require.NoError(t, supplierRepo.Save(context.Background(), supplier))

	purchases := &fakePurchaseTotals{total: dec("100"), credit: dec("40")}
	cache := newMemoryBalanceCache()
	svc := NewBalanceService(
		newFakeClientRepo(),
		supplierRepo,
		&fakeInvoiceTotals{},
		&fakeFlowReader{},
		purchases,
		&fakeReturnTotals{},
		cache,
		zap.NewNop(),
	)

	_, err = svc.GetSupplierBalance(context.Background(), supplier.ID)
	require.NoError(t, err)
	_, err = svc.GetSupplierBalance(context.Background(), supplier.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, purchases.calls, "second read should hit the cache")

	require.NoError(t, cache.InvalidateSupplier(context.Background(), supplier.ID))
	_, err = svc.GetSupplierBalance(context.Background(), supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, purchases.calls)
}
