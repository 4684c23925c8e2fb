package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizadmin/backend/internal/domain/billing"
)

func createTestPurchase(t *testing.T, total float64) *Purchase {
	p, err := NewPurchase(3, 2026, uuid.New(), time.Now(), decimal.NewFromFloat(total), "EUR")
	require.NoError(t, err)
	return p
}

// ============================================
// Construction
// ============================================

func TestNewPurchase(t *testing.T) {
	t.Run("starts unpaid with zero credit", func(t *testing.T) {
		p := createTestPurchase(t, 500)

		assert.True(t, p.Credit.IsZero())
		assert.Equal(t, billing.PaymentStatusUnpaid, p.PaymentStatus)
	})

	t.Run("zero total starts paid", func(t *testing.T) {
		p := createTestPurchase(t, 0)
		assert.Equal(t, billing.PaymentStatusPaid, p.PaymentStatus)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewPurchase(0, 2026, uuid.New(), time.Now(), decimal.NewFromInt(100), "EUR")
		assert.Error(t, err)

		_, err = NewPurchase(1, 2026, uuid.Nil, time.Now(), decimal.NewFromInt(100), "EUR")
		assert.Error(t, err)

		_, err = NewPurchase(1, 2026, uuid.New(), time.Now(), decimal.NewFromInt(-1), "EUR")
		assert.Error(t, err)
	})
}

// ============================================
// Credit application
// ============================================

func TestPurchase_ApplyCredit(t *testing.T) {
	t.Run("partial payment", func(t *testing.T) {
		p := createTestPurchase(t, 500)
		version := p.Version

		require.NoError(t, p.ApplyCredit(decimal.NewFromInt(200)))

		assert.True(t, p.Credit.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, billing.PaymentStatusPartially, p.PaymentStatus)
		assert.Equal(t, version+1, p.Version)
	})

	t.Run("full payment", func(t *testing.T) {
		p := createTestPurchase(t, 500)

		require.NoError(t, p.ApplyCredit(decimal.NewFromInt(500)))

		assert.Equal(t, billing.PaymentStatusPaid, p.PaymentStatus)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		p := createTestPurchase(t, 500)

		assert.Error(t, p.ApplyCredit(decimal.Zero))
		assert.Error(t, p.ApplyCredit(decimal.NewFromInt(-10)))
	})

	t.Run("rejects removed purchase", func(t *testing.T) {
		p := createTestPurchase(t, 500)
		require.NoError(t, p.MarkRemoved())

		assert.Error(t, p.ApplyCredit(decimal.NewFromInt(10)))
	})
}

// ============================================
// Soft delete
// ============================================

func TestPurchase_MarkRemoved(t *testing.T) {
	p := createTestPurchase(t, 100)

	require.NoError(t, p.MarkRemoved())
	assert.True(t, p.Removed)

	assert.Error(t, p.MarkRemoved())
}
