package trade

import (
	"context"
	"testing"
	"time"

	appbilling "github.com/bizadmin/backend/internal/application/billing"
	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReturnRepo struct {
	records map[uuid.UUID]trade.ReturnExchange
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{records: make(map[uuid.UUID]trade.ReturnExchange)}
}

func (r *fakeReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.ReturnExchange, error) {
	re, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	out := re
	return &out, nil
}

func (r *fakeReturnRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.ReturnExchange, error) {
	var out []trade.ReturnExchange
	for _, re := range r.records {
		if !re.Removed {
			out = append(out, re)
		}
	}
	return out, nil
}

func (r *fakeReturnRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	var n int64
	for _, re := range r.records {
		if !re.Removed {
			n++
		}
	}
	return n, nil
}

func (r *fakeReturnRepo) Save(_ context.Context, re *trade.ReturnExchange) error {
	r.records[re.ID] = *re
	return nil
}

func (r *fakeReturnRepo) NextNumber(_ context.Context, _ int) (int, error) {
	return len(r.records) + 1, nil
}

func (r *fakeReturnRepo) TotalsForClient(_ context.Context, _ uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	returns := decimal.Zero
	diff := decimal.Zero
	for _, re := range r.records {
		if re.Removed {
			continue
		}
		if re.Type == trade.ReturnExchangeTypeReturn {
			returns = returns.Add(re.ReturnedItem.Total)
		}
		diff = diff.Add(re.PriceDifference)
	}
	return returns, diff, nil
}

type fakeCashCreator struct {
	requests []appbilling.CreateCashTransactionRequest
}

func (c *fakeCashCreator) Create(_ context.Context, req appbilling.CreateCashTransactionRequest) (*appbilling.CashTransactionResult, error) {
	c.requests = append(c.requests, req)
	tx, err := billing.NewCashTransaction(
		req.Type, req.Amount, req.Currency, req.Date,
		req.PartyType, req.ClientID, req.SupplierID, req.InvoiceID,
		req.Reference, req.Description,
	)
	if err != nil {
		return nil, err
	}
	return &appbilling.CashTransactionResult{Transaction: tx}, nil
}

func line(name string, total float64) trade.ItemLine {
	return trade.ItemLine{
		ItemName: name,
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromFloat(total),
		Total:    decimal.NewFromFloat(total),
	}
}

func newReturnFixture(t *testing.T) (*ReturnExchangeService, *fakeReturnRepo, *fakeCashCreator) {
	t.Helper()
	repo := newFakeReturnRepo()
	creator := &fakeCashCreator{}
	svc := NewReturnExchangeService(repo, creator, shared.NoopTransactionManager{}, zap.NewNop())
	return svc, repo, creator
}

// ============================================
// Create with derived cash transaction
// ============================================

func TestReturnExchangeService_Create(t *testing.T) {
	clientID := uuid.New()

	t.Run("return derives a cash-out of the returned total", func(t *testing.T) {
		svc, _, creator := newReturnFixture(t)

		res, err := svc.Create(context.Background(), CreateReturnExchangeRequest{
			Type:                  trade.ReturnExchangeTypeReturn,
			Date:                  time.Now(),
			ClientID:              clientID,
			ReturnedItem:          line("widget", 80),
			Currency:              "USD",
			CreateCashTransaction: true,
		})
		require.NoError(t, err)

		require.Len(t, creator.requests, 1)
		req := creator.requests[0]
		assert.Equal(t, billing.TransactionTypeOut, req.Type)
		assert.True(t, req.Amount.Equal(decimal.NewFromInt(80)))
		assert.Equal(t, billing.PartyTypeClient, req.PartyType)
		assert.Equal(t, clientID, *req.ClientID)
		assert.Equal(t, res.ReturnExchange.Reference(), req.Reference)
		assert.NotNil(t, res.CashTransaction)
	})

	t.Run("exchange with positive difference derives a cash-in", func(t *testing.T) {
		svc, _, creator := newReturnFixture(t)
		exchanged := line("premium widget", 120)

		_, err := svc.Create(context.Background(), CreateReturnExchangeRequest{
			Type:                  trade.ReturnExchangeTypeExchange,
			Date:                  time.Now(),
			ClientID:              clientID,
			ReturnedItem:          line("widget", 80),
			ExchangedItem:         &exchanged,
			Currency:              "USD",
			CreateCashTransaction: true,
		})
		require.NoError(t, err)

		require.Len(t, creator.requests, 1)
		assert.Equal(t, billing.TransactionTypeIn, creator.requests[0].Type)
		assert.True(t, creator.requests[0].Amount.Equal(decimal.NewFromInt(40)))
	})

	t.Run("exchange with negative difference derives a cash-out", func(t *testing.T) {
		svc, _, creator := newReturnFixture(t)
		exchanged := line("basic widget", 50)

		_, err := svc.Create(context.Background(), CreateReturnExchangeRequest{
			Type:                  trade.ReturnExchangeTypeExchange,
			Date:                  time.Now(),
			ClientID:              clientID,
			ReturnedItem:          line("widget", 80),
			ExchangedItem:         &exchanged,
			Currency:              "USD",
			CreateCashTransaction: true,
		})
		require.NoError(t, err)

		require.Len(t, creator.requests, 1)
		assert.Equal(t, billing.TransactionTypeOut, creator.requests[0].Type)
		assert.True(t, creator.requests[0].Amount.Equal(decimal.NewFromInt(30)))
	})

	t.Run("even exchange moves no money", func(t *testing.T) {
		svc, _, creator := newReturnFixture(t)
		exchanged := line("same-price widget", 80)

		res, err := svc.Create(context.Background(), CreateReturnExchangeRequest{
			Type:                  trade.ReturnExchangeTypeExchange,
			Date:                  time.Now(),
			ClientID:              clientID,
			ReturnedItem:          line("widget", 80),
			ExchangedItem:         &exchanged,
			Currency:              "USD",
			CreateCashTransaction: true,
		})
		require.NoError(t, err)

		assert.Empty(t, creator.requests)
		assert.Nil(t, res.CashTransaction)
	})

	t.Run("flag off skips the cash transaction entirely", func(t *testing.T) {
		svc, _, creator := newReturnFixture(t)

		res, err := svc.Create(context.Background(), CreateReturnExchangeRequest{
			Type:         trade.ReturnExchangeTypeReturn,
			Date:         time.Now(),
			ClientID:     clientID,
			ReturnedItem: line("widget", 80),
			Currency:     "USD",
		})
		require.NoError(t, err)

		assert.Empty(t, creator.requests)
		assert.Nil(t, res.CashTransaction)
	})

	t.Run("numbers are sequential with a yearly reference", func(t *testing.T) {
		svc, _, _ := newReturnFixture(t)
		date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

		first, err := svc.Create(context.Background(), CreateReturnExchangeRequest{
			Type:         trade.ReturnExchangeTypeReturn,
			Date:         date,
			ClientID:     clientID,
			ReturnedItem: line("widget", 10),
			Currency:     "USD",
		})
		require.NoError(t, err)
		second, err := svc.Create(context.Background(), CreateReturnExchangeRequest{
			Type:         trade.ReturnExchangeTypeReturn,
			Date:         date,
			ClientID:     clientID,
			ReturnedItem: line("widget", 10),
			Currency:     "USD",
		})
		require.NoError(t, err)

		assert.Equal(t, "RE-1/2026", first.ReturnExchange.Reference())
		assert.Equal(t, "RE-2/2026", second.ReturnExchange.Reference())
	})
}

// ============================================
// Status transitions and delete
// ============================================

func TestReturnExchangeService_Lifecycle(t *testing.T) {
	clientID := uuid.New()
	svc, repo, _ := newReturnFixture(t)

	res, err := svc.Create(context.Background(), CreateReturnExchangeRequest{
		Type:         trade.ReturnExchangeTypeReturn,
		Date:         time.Now(),
		ClientID:     clientID,
		ReturnedItem: line("widget", 25),
		Currency:     "USD",
	})
	require.NoError(t, err)
	id := res.ReturnExchange.ID

	t.Run("approve then complete", func(t *testing.T) {
		re, err := svc.Approve(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, trade.ReturnExchangeStatusApproved, re.Status)

		re, err = svc.Complete(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, trade.ReturnExchangeStatusCompleted, re.Status)
	})

	t.Run("rejecting a completed record fails", func(t *testing.T) {
		_, err := svc.Reject(context.Background(), id)
		assert.Error(t, err)
	})

	t.Run("delete is soft and hides the record", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), id))

		_, err := svc.Get(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		stored := repo.records[id]
		assert.True(t, stored.Removed)
	})
}
