package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCashIn(t *testing.T, amount float64) *CashTransaction {
	clientID := uuid.New()
	tx, err := NewCashTransaction(
		TransactionTypeIn,
		decimal.NewFromFloat(amount),
		"usd",
		time.Now(),
		PartyTypeClient,
		&clientID,
		nil,
		nil,
		"PAY-001",
		"test payment",
	)
	require.NoError(t, err)
	return tx
}

// ============================================
// TransactionType / PartyType Tests
// ============================================

func TestTransactionType_IsValid(t *testing.T) {
	tests := []struct {
		txType  TransactionType
		isValid bool
	}{
		{TransactionTypeIn, true},
		{TransactionTypeOut, true},
		{TransactionType("inout"), false},
		{TransactionType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.txType), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.txType.IsValid())
		})
	}
}

func TestPartyType_IsValid(t *testing.T) {
	assert.True(t, PartyTypeClient.IsValid())
	assert.True(t, PartyTypeSupplier.IsValid())
	assert.False(t, PartyType("vendor").IsValid())
}

// ============================================
// CashTransaction Tests
// ============================================

func TestNewCashTransaction(t *testing.T) {
	clientID := uuid.New()
	supplierID := uuid.New()

	t.Run("creates enabled transaction with uppercase currency", func(t *testing.T) {
		tx := createTestCashIn(t, 100)

		assert.True(t, tx.Enabled)
		assert.False(t, tx.Removed)
		assert.Equal(t, "USD", tx.Currency)
		assert.Empty(t, tx.AppliedInvoices)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewCashTransaction(TransactionTypeIn, decimal.Zero, "USD", time.Now(),
			PartyTypeClient, &clientID, nil, nil, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewCashTransaction(TransactionType("sideways"), decimal.NewFromInt(10), "USD", time.Now(),
			PartyTypeClient, &clientID, nil, nil, "", "")
		assert.Error(t, err)
	})

	t.Run("client transaction requires client id", func(t *testing.T) {
		_, err := NewCashTransaction(TransactionTypeIn, decimal.NewFromInt(10), "USD", time.Now(),
			PartyTypeClient, nil, nil, nil, "", "")
		assert.Error(t, err)
	})

	t.Run("client transaction must not carry supplier id", func(t *testing.T) {
		_, err := NewCashTransaction(TransactionTypeIn, decimal.NewFromInt(10), "USD", time.Now(),
			PartyTypeClient, &clientID, &supplierID, nil, "", "")
		assert.Error(t, err)
	})

	t.Run("supplier transaction requires supplier id", func(t *testing.T) {
		_, err := NewCashTransaction(TransactionTypeOut, decimal.NewFromInt(10), "USD", time.Now(),
			PartyTypeSupplier, nil, nil, nil, "", "")
		assert.Error(t, err)
	})

	t.Run("outgoing transaction cannot target an invoice", func(t *testing.T) {
		invoiceID := uuid.New()
		_, err := NewCashTransaction(TransactionTypeOut, decimal.NewFromInt(10), "USD", time.Now(),
			PartyTypeSupplier, nil, &supplierID, &invoiceID, "", "")
		assert.Error(t, err)
	})
}

func TestCashTransaction_AffectsInvoices(t *testing.T) {
	clientID := uuid.New()
	supplierID := uuid.New()

	tests := []struct {
		name       string
		txType     TransactionType
		partyType  PartyType
		clientID   *uuid.UUID
		supplierID *uuid.UUID
		want       bool
	}{
		{"client cash in", TransactionTypeIn, PartyTypeClient, &clientID, nil, true},
		{"client cash out", TransactionTypeOut, PartyTypeClient, &clientID, nil, false},
		{"supplier cash in", TransactionTypeIn, PartyTypeSupplier, nil, &supplierID, false},
		{"supplier cash out", TransactionTypeOut, PartyTypeSupplier, nil, &supplierID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewCashTransaction(tt.txType, decimal.NewFromInt(10), "USD", time.Now(),
				tt.partyType, tt.clientID, tt.supplierID, nil, "", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, tx.AffectsInvoices())
		})
	}
}

func TestCashTransaction_RecordAllocation(t *testing.T) {
	tx := createTestCashIn(t, 100)
	legs := AppliedInvoices{
		{InvoiceID: uuid.New(), Amount: decimal.NewFromInt(60)},
		{InvoiceID: uuid.New(), Amount: decimal.NewFromInt(40)},
	}

	tx.RecordAllocation(legs)

	assert.Len(t, tx.AppliedInvoices, 2)
	assert.True(t, tx.AppliedInvoices.TotalApplied().Equal(decimal.NewFromInt(100)))

	// A later run replaces the legs wholesale
	tx.RecordAllocation(AppliedInvoices{{InvoiceID: uuid.New(), Amount: decimal.NewFromInt(100)}})
	assert.Len(t, tx.AppliedInvoices, 1)

	tx.ClearAllocation()
	assert.Empty(t, tx.AppliedInvoices)
}

func TestCashTransaction_UpdateDetails(t *testing.T) {
	t.Run("updates mutable fields", func(t *testing.T) {
		tx := createTestCashIn(t, 100)
		newDate := time.Now().AddDate(0, 0, -1)
		invoiceID := uuid.New()

		err := tx.UpdateDetails(decimal.NewFromInt(80), newDate, &invoiceID, "PAY-002", "updated")
		require.NoError(t, err)

		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(80)))
		assert.Equal(t, &invoiceID, tx.InvoiceID)
		assert.Equal(t, "PAY-002", tx.Reference)
	})

	t.Run("rejects update of removed transaction", func(t *testing.T) {
		tx := createTestCashIn(t, 100)
		require.NoError(t, tx.MarkRemoved())

		err := tx.UpdateDetails(decimal.NewFromInt(80), time.Now(), nil, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		tx := createTestCashIn(t, 100)

		err := tx.UpdateDetails(decimal.Zero, time.Now(), nil, "", "")
		assert.Error(t, err)
	})
}

func TestCashTransaction_MarkRemoved(t *testing.T) {
	tx := createTestCashIn(t, 100)

	require.NoError(t, tx.MarkRemoved())
	assert.True(t, tx.Removed)
	assert.Error(t, tx.MarkRemoved())
}

// ============================================
// AppliedInvoices JSONB round trip
// ============================================

func TestAppliedInvoices_ScanValue(t *testing.T) {
	legs := AppliedInvoices{
		{InvoiceID: uuid.New(), Amount: decimal.NewFromFloat(12.34)},
	}

	raw, err := legs.Value()
	require.NoError(t, err)

	var scanned AppliedInvoices
	require.NoError(t, scanned.Scan(raw))

	require.Len(t, scanned, 1)
	assert.Equal(t, legs[0].InvoiceID, scanned[0].InvoiceID)
	assert.True(t, legs[0].Amount.Equal(scanned[0].Amount))

	t.Run("nil value scans to empty slice", func(t *testing.T) {
		var empty AppliedInvoices
		require.NoError(t, empty.Scan(nil))
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})
}
