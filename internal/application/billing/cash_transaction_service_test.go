package billing

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory fakes

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]billing.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]billing.Invoice)}
}

func (r *fakeInvoiceRepo) put(inv *billing.Invoice) {
	r.invoices[inv.ID] = *inv
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	out := inv
	return &out, nil
}

func (r *fakeInvoiceRepo) FindOpenByClient(_ context.Context, clientID uuid.UUID) ([]billing.Invoice, error) {
	var out []billing.Invoice
	for _, inv := range r.invoices {
		if inv.ClientID == clientID && !inv.Removed && inv.PaymentStatus.CanReceiveAllocation() {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeInvoiceRepo) FindAll(_ context.Context, _ shared.Filter) ([]billing.Invoice, error) {
	var out []billing.Invoice
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.invoices)), nil
}

func (r *fakeInvoiceRepo) Save(_ context.Context, inv *billing.Invoice) error {
	r.invoices[inv.ID] = *inv
	return nil
}

func (r *fakeInvoiceRepo) SaveWithLock(_ context.Context, inv *billing.Invoice, expectedVersion int) error {
	stored, ok := r.invoices[inv.ID]
	if ok && stored.Version != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.invoices[inv.ID] = *inv
	return nil
}

func (r *fakeInvoiceRepo) NextNumber(_ context.Context, _ int) (int, error) {
	return len(r.invoices) + 1, nil
}

type fakeTxRepo struct {
	txs map[uuid.UUID]billing.CashTransaction
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{txs: make(map[uuid.UUID]billing.CashTransaction)}
}

func (r *fakeTxRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.CashTransaction, error) {
	tx, ok := r.txs[id]
	if !ok {
		return nil, nil
	}
	out := tx
	return &out, nil
}

func (r *fakeTxRepo) FindAll(_ context.Context, _ shared.Filter) ([]billing.CashTransaction, error) {
	var out []billing.CashTransaction
	for _, tx := range r.txs {
		if !tx.Removed {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeTxRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	var n int64
	for _, tx := range r.txs {
		if !tx.Removed {
			n++
		}
	}
	return n, nil
}

func (r *fakeTxRepo) Save(_ context.Context, tx *billing.CashTransaction) error {
	r.txs[tx.ID] = *tx
	return nil
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

// Test fixture

type serviceFixture struct {
	svc      *CashTransactionService
	invoices *fakeInvoiceRepo
	txs      *fakeTxRepo
	clientID uuid.UUID
}

func newServiceFixture(t *testing.T, policy billing.OverflowPolicy) *serviceFixture {
	t.Helper()
	invoices := newFakeInvoiceRepo()
	txs := newFakeTxRepo()
	logger := zap.NewNop()
	allocator := NewAllocationService(invoices, policy, logger)
	svc := NewCashTransactionService(txs, allocator, &fakeFlowReader{}, shared.NoopTransactionManager{}, nil, logger)

	return &serviceFixture{
		svc:      svc,
		invoices: invoices,
		txs:      txs,
		clientID: uuid.New(),
	}
}

func (f *serviceFixture) addInvoice(t *testing.T, total float64, daysAgo int) *billing.Invoice {
	t.Helper()
	inv, err := billing.NewInvoice(len(f.invoices.invoices)+1, 2026, f.clientID,
		time.Now().AddDate(0, 0, -daysAgo), nil, decimal.NewFromFloat(total), "USD")
	require.NoError(t, err)
	f.invoices.put(inv)
	return inv
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func strPtr(s string) *string { return &s }

func (f *serviceFixture) createIn(t *testing.T, amount float64, invoiceID *uuid.UUID) *CashTransactionResult {
	t.Helper()
	res, err := f.svc.Create(context.Background(), CreateCashTransactionRequest{
		Type:      billing.TransactionTypeIn,
		Amount:    decimal.NewFromFloat(amount),
		Currency:  "USD",
		Date:      time.Now(),
		PartyType: billing.PartyTypeClient,
		ClientID:  &f.clientID,
		InvoiceID: invoiceID,
	})
	require.NoError(t, err)
	return res
}

// ============================================
// Create
// ============================================

func TestCashTransactionService_Create(t *testing.T) {
	t.Run("direct allocation credits the target invoice", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		inv := f.addInvoice(t, 100, 0)

		res := f.createIn(t, 60, &inv.ID)

		require.Len(t, res.Allocation.Legs, 1)
		assert.Equal(t, inv.ID, res.Allocation.Legs[0].InvoiceID)

		stored, _ := f.invoices.FindByID(context.Background(), inv.ID)
		assert.True(t, stored.Credit.Equal(decimal.NewFromInt(60)))
		assert.Equal(t, billing.PaymentStatusPartially, stored.PaymentStatus)
	})

	t.Run("direct allocation to missing invoice fails", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		missing := uuid.New()

		_, err := f.svc.Create(context.Background(), CreateCashTransactionRequest{
			Type:      billing.TransactionTypeIn,
			Amount:    decimal.NewFromInt(10),
			Currency:  "USD",
			Date:      time.Now(),
			PartyType: billing.PartyTypeClient,
			ClientID:  &f.clientID,
			InvoiceID: &missing,
		})
		assert.Error(t, err)
	})

	t.Run("auto allocation walks oldest invoice first", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		older := f.addInvoice(t, 100, 10)
		newer := f.addInvoice(t, 100, 1)

		res := f.createIn(t, 150, nil)

		require.Len(t, res.Allocation.Legs, 2)
		assert.Equal(t, older.ID, res.Allocation.Legs[0].InvoiceID)
		assert.Equal(t, newer.ID, res.Allocation.Legs[1].InvoiceID)

		storedOlder, _ := f.invoices.FindByID(context.Background(), older.ID)
		storedNewer, _ := f.invoices.FindByID(context.Background(), newer.ID)
		assert.Equal(t, billing.PaymentStatusPaid, storedOlder.PaymentStatus)
		assert.Equal(t, billing.PaymentStatusPartially, storedNewer.PaymentStatus)
		assert.True(t, storedNewer.Credit.Equal(decimal.NewFromInt(50)))
	})

	t.Run("legs are recorded on the stored transaction", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		f.addInvoice(t, 100, 0)

		res := f.createIn(t, 40, nil)

		stored, _ := f.txs.FindByID(context.Background(), res.Transaction.ID)
		require.Len(t, stored.AppliedInvoices, 1)
		assert.True(t, stored.AppliedInvoices.TotalApplied().Equal(decimal.NewFromInt(40)))
	})

	t.Run("absorb policy drops but reports leftover", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		f.addInvoice(t, 100, 0)

		res := f.createIn(t, 130, nil)

		assert.True(t, res.Allocation.Leftover.Equal(decimal.NewFromInt(30)))
		assert.True(t, res.Allocation.TotalAllocated.Equal(decimal.NewFromInt(100)))
	})

	t.Run("reject policy fails the whole create on overflow", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyReject)
		inv := f.addInvoice(t, 100, 0)

		_, err := f.svc.Create(context.Background(), CreateCashTransactionRequest{
			Type:      billing.TransactionTypeIn,
			Amount:    decimal.NewFromInt(130),
			Currency:  "USD",
			Date:      time.Now(),
			PartyType: billing.PartyTypeClient,
			ClientID:  &f.clientID,
		})
		require.Error(t, err)

		// Nothing persisted
		stored, _ := f.invoices.FindByID(context.Background(), inv.ID)
		assert.True(t, stored.Credit.IsZero())
		n, _ := f.txs.Count(context.Background(), shared.Filter{})
		assert.Zero(t, n)
	})

	t.Run("outgoing supplier money never touches invoices", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		inv := f.addInvoice(t, 100, 0)
		supplierID := uuid.New()

		res, err := f.svc.Create(context.Background(), CreateCashTransactionRequest{
			Type:       billing.TransactionTypeOut,
			Amount:     decimal.NewFromInt(500),
			Currency:   "USD",
			Date:       time.Now(),
			PartyType:  billing.PartyTypeSupplier,
			SupplierID: &supplierID,
		})
		require.NoError(t, err)

		assert.Empty(t, res.Allocation.Legs)
		stored, _ := f.invoices.FindByID(context.Background(), inv.ID)
		assert.True(t, stored.Credit.IsZero())
	})
}

// ============================================
// Update
// ============================================

func TestCashTransactionService_Update(t *testing.T) {
	t.Run("reverses old effect before applying the new one", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		inv := f.addInvoice(t, 100, 0)
		res := f.createIn(t, 100, nil)

		stored, _ := f.invoices.FindByID(context.Background(), inv.ID)
		require.Equal(t, billing.PaymentStatusPaid, stored.PaymentStatus)

		updated, err := f.svc.Update(context.Background(), res.Transaction.ID, UpdateCashTransactionRequest{
			Amount: decPtr(30),
		})
		require.NoError(t, err)

		// Old 100 reversed, new 30 applied
		stored, _ = f.invoices.FindByID(context.Background(), inv.ID)
		assert.True(t, stored.Credit.Equal(decimal.NewFromInt(30)))
		assert.Equal(t, billing.PaymentStatusPartially, stored.PaymentStatus)

		require.Len(t, updated.Reversal.Reversed, 1)
		require.Len(t, updated.Allocation.Legs, 1)
		assert.True(t, updated.Allocation.Legs[0].Amount.Equal(decimal.NewFromInt(30)))
	})

	t.Run("allocation legs are overwritten wholesale", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		f.addInvoice(t, 50, 10)
		f.addInvoice(t, 50, 5)
		res := f.createIn(t, 100, nil)

		stored, _ := f.txs.FindByID(context.Background(), res.Transaction.ID)
		require.Len(t, stored.AppliedInvoices, 2)

		_, err := f.svc.Update(context.Background(), res.Transaction.ID, UpdateCashTransactionRequest{
			Amount: decPtr(20),
		})
		require.NoError(t, err)

		stored, _ = f.txs.FindByID(context.Background(), res.Transaction.ID)
		require.Len(t, stored.AppliedInvoices, 1)
		assert.True(t, stored.AppliedInvoices.TotalApplied().Equal(decimal.NewFromInt(20)))
	})

	t.Run("omitted fields keep their stored values", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		inv := f.addInvoice(t, 100, 0)
		res := f.createIn(t, 60, nil)
		originalDate := res.Transaction.Date

		updated, err := f.svc.Update(context.Background(), res.Transaction.ID, UpdateCashTransactionRequest{
			Description: strPtr("corrected memo"),
		})
		require.NoError(t, err)

		assert.Equal(t, "corrected memo", updated.Transaction.Description)
		assert.True(t, updated.Transaction.Amount.Equal(decimal.NewFromInt(60)))
		assert.True(t, updated.Transaction.Date.Equal(originalDate))

		// The unchanged amount is reversed and re-applied as-is
		stored, _ := f.invoices.FindByID(context.Background(), inv.ID)
		assert.True(t, stored.Credit.Equal(decimal.NewFromInt(60)))
		assert.Equal(t, billing.PaymentStatusPartially, stored.PaymentStatus)
	})

	t.Run("missing transaction yields not found", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)

		_, err := f.svc.Update(context.Background(), uuid.New(), UpdateCashTransactionRequest{
			Amount: decPtr(10),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// ============================================
// Delete
// ============================================

func TestCashTransactionService_Delete(t *testing.T) {
	t.Run("reverses allocation and soft deletes", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		inv := f.addInvoice(t, 100, 0)
		res := f.createIn(t, 100, nil)

		_, err := f.svc.Delete(context.Background(), res.Transaction.ID)
		require.NoError(t, err)

		storedInv, _ := f.invoices.FindByID(context.Background(), inv.ID)
		assert.True(t, storedInv.Credit.IsZero())
		assert.Equal(t, billing.PaymentStatusUnpaid, storedInv.PaymentStatus)

		storedTx, _ := f.txs.FindByID(context.Background(), res.Transaction.ID)
		assert.True(t, storedTx.Removed)
		assert.Empty(t, storedTx.AppliedInvoices)
	})

	t.Run("reversal reports invoices that disappeared", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		inv := f.addInvoice(t, 100, 0)
		res := f.createIn(t, 60, nil)

		// Hard-delete the invoice behind the service's back
		delete(f.invoices.invoices, inv.ID)

		out, err := f.svc.Delete(context.Background(), res.Transaction.ID)
		require.NoError(t, err)

		require.Len(t, out.Reversal.SkippedInvoices, 1)
		assert.Equal(t, inv.ID, out.Reversal.SkippedInvoices[0])
		assert.Empty(t, out.Reversal.Reversed)
	})

	t.Run("deleting twice yields not found", func(t *testing.T) {
		f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
		f.addInvoice(t, 100, 0)
		res := f.createIn(t, 10, nil)

		_, err := f.svc.Delete(context.Background(), res.Transaction.ID)
		require.NoError(t, err)

		_, err = f.svc.Delete(context.Background(), res.Transaction.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// ============================================
// Summary
// ============================================

func TestCashTransactionService_Summary(t *testing.T) {
	f := newServiceFixture(t, billing.OverflowPolicyAbsorb)

	t.Run("rejects invalid period", func(t *testing.T) {
		_, err := f.svc.Summary(context.Background(), billing.Period("decade"))
		assert.ErrorIs(t, err, shared.ErrInvalidPeriod)
	})

	t.Run("returns bounds for a valid period", func(t *testing.T) {
		sum, err := f.svc.Summary(context.Background(), billing.PeriodMonth)
		require.NoError(t, err)

		assert.Equal(t, billing.PeriodMonth, sum.Period)
		assert.True(t, sum.PeriodStart.Before(sum.PeriodEnd))
	})
}

// ============================================
// Round trip: create then delete restores state
// ============================================

func TestCashTransactionService_CreateDeleteRoundTrip(t *testing.T) {
	f := newServiceFixture(t, billing.OverflowPolicyAbsorb)
	a := f.addInvoice(t, 75.50, 3)
	b := f.addInvoice(t, 24.50, 1)

	res := f.createIn(t, 100, nil)
	_, err := f.svc.Delete(context.Background(), res.Transaction.ID)
	require.NoError(t, err)

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		stored, _ := f.invoices.FindByID(context.Background(), id)
		assert.True(t, stored.Credit.IsZero())
		assert.Equal(t, billing.PaymentStatusUnpaid, stored.PaymentStatus)
	}
}
