package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestInvoice(t *testing.T, total float64) *Invoice {
	inv, err := NewInvoice(
		1,
		2026,
		uuid.New(),
		time.Now(),
		InvoiceItems{{ItemName: "Widget", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromFloat(total / 2), Total: decimal.NewFromFloat(total)}},
		decimal.NewFromFloat(total),
		"USD",
	)
	require.NoError(t, err)
	return inv
}

// ============================================
// PaymentStatus Tests
// ============================================

func TestPaymentStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PaymentStatus
		isValid bool
	}{
		{PaymentStatusUnpaid, true},
		{PaymentStatusPartially, true},
		{PaymentStatusPaid, true},
		{PaymentStatus("invalid"), false},
		{PaymentStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestPaymentStatus_CanReceiveAllocation(t *testing.T) {
	tests := []struct {
		status     PaymentStatus
		canReceive bool
	}{
		{PaymentStatusUnpaid, true},
		{PaymentStatusPartially, true},
		{PaymentStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.canReceive, tt.status.CanReceiveAllocation())
		})
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name   string
		credit string
		total  string
		want   PaymentStatus
	}{
		{"zero credit", "0", "100", PaymentStatusUnpaid},
		{"negative credit", "-10", "100", PaymentStatusUnpaid},
		{"partial credit", "50", "100", PaymentStatusPartially},
		{"one cent credit", "0.01", "100", PaymentStatusPartially},
		{"credit equals total", "100", "100", PaymentStatusPaid},
		{"credit exceeds total", "150", "100", PaymentStatusPaid},
		{"one cent short", "99.99", "100", PaymentStatusPartially},
		{"zero total zero credit", "0", "0", PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credit, err := decimal.NewFromString(tt.credit)
			require.NoError(t, err)
			total, err := decimal.NewFromString(tt.total)
			require.NoError(t, err)

			assert.Equal(t, tt.want, DerivePaymentStatus(credit, total))
		})
	}
}

// ============================================
// Invoice Tests
// ============================================

func TestNewInvoice(t *testing.T) {
	t.Run("creates unpaid invoice with zero credit", func(t *testing.T) {
		inv := createTestInvoice(t, 500)

		assert.Equal(t, PaymentStatusUnpaid, inv.PaymentStatus)
		assert.True(t, inv.Credit.IsZero())
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.False(t, inv.Removed)
		assert.Equal(t, 1, inv.Version)
	})

	t.Run("rejects nil client", func(t *testing.T) {
		_, err := NewInvoice(1, 2026, uuid.Nil, time.Now(), nil, decimal.NewFromInt(100), "USD")
		assert.Error(t, err)
	})

	t.Run("rejects negative total", func(t *testing.T) {
		_, err := NewInvoice(1, 2026, uuid.New(), time.Now(), nil, decimal.NewFromInt(-100), "USD")
		assert.Error(t, err)
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewInvoice(1, 2026, uuid.New(), time.Now(), nil, decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestInvoice_ApplyCredit(t *testing.T) {
	t.Run("moves invoice to partially", func(t *testing.T) {
		inv := createTestInvoice(t, 100)

		err := inv.ApplyCredit(decimal.NewFromInt(40))
		require.NoError(t, err)

		assert.True(t, inv.Credit.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, PaymentStatusPartially, inv.PaymentStatus)
	})

	t.Run("moves invoice to paid when credit reaches total", func(t *testing.T) {
		inv := createTestInvoice(t, 100)

		require.NoError(t, inv.ApplyCredit(decimal.NewFromInt(60)))
		require.NoError(t, inv.ApplyCredit(decimal.NewFromInt(40)))

		assert.Equal(t, PaymentStatusPaid, inv.PaymentStatus)
		assert.True(t, inv.Outstanding().IsZero())
	})

	t.Run("overpayment keeps invoice paid with zero outstanding", func(t *testing.T) {
		inv := createTestInvoice(t, 100)

		require.NoError(t, inv.ApplyCredit(decimal.NewFromInt(150)))

		assert.Equal(t, PaymentStatusPaid, inv.PaymentStatus)
		assert.True(t, inv.Outstanding().IsZero())
		assert.True(t, inv.Credit.Equal(decimal.NewFromInt(150)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		inv := createTestInvoice(t, 100)

		assert.Error(t, inv.ApplyCredit(decimal.Zero))
		assert.Error(t, inv.ApplyCredit(decimal.NewFromInt(-5)))
	})

	t.Run("rejects removed invoice", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.MarkRemoved())

		assert.Error(t, inv.ApplyCredit(decimal.NewFromInt(10)))
	})

	t.Run("increments version", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		before := inv.Version

		require.NoError(t, inv.ApplyCredit(decimal.NewFromInt(10)))

		assert.Equal(t, before+1, inv.Version)
	})
}

func TestInvoice_RevertCredit(t *testing.T) {
	t.Run("restores prior credit and status", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.ApplyCredit(decimal.NewFromInt(100)))
		require.Equal(t, PaymentStatusPaid, inv.PaymentStatus)

		clamped, err := inv.RevertCredit(decimal.NewFromInt(100))
		require.NoError(t, err)

		assert.True(t, clamped.IsZero())
		assert.True(t, inv.Credit.IsZero())
		assert.Equal(t, PaymentStatusUnpaid, inv.PaymentStatus)
	})

	t.Run("partial revert leaves invoice partially paid", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.ApplyCredit(decimal.NewFromInt(80)))

		clamped, err := inv.RevertCredit(decimal.NewFromInt(30))
		require.NoError(t, err)

		assert.True(t, clamped.IsZero())
		assert.True(t, inv.Credit.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, PaymentStatusPartially, inv.PaymentStatus)
	})

	t.Run("clamps at zero and reports swallowed amount", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.ApplyCredit(decimal.NewFromInt(20)))

		clamped, err := inv.RevertCredit(decimal.NewFromInt(50))
		require.NoError(t, err)

		assert.True(t, clamped.Equal(decimal.NewFromInt(30)))
		assert.True(t, inv.Credit.IsZero())
		assert.Equal(t, PaymentStatusUnpaid, inv.PaymentStatus)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		inv := createTestInvoice(t, 100)

		_, err := inv.RevertCredit(decimal.Zero)
		assert.Error(t, err)
	})
}

func TestInvoice_Outstanding(t *testing.T) {
	inv := createTestInvoice(t, 100)
	require.NoError(t, inv.ApplyCredit(decimal.NewFromInt(150)))

	// Overpaid invoices never report negative outstanding
	assert.True(t, inv.Outstanding().IsZero())
}

func TestInvoice_MarkRemoved(t *testing.T) {
	inv := createTestInvoice(t, 100)

	require.NoError(t, inv.MarkRemoved())
	assert.True(t, inv.Removed)

	// Second removal is rejected
	assert.Error(t, inv.MarkRemoved())
}

func TestInvoice_Reference(t *testing.T) {
	inv := createTestInvoice(t, 100)
	inv.Number = 42
	inv.Year = 2026

	assert.Equal(t, "42/2026", inv.Reference())
}
