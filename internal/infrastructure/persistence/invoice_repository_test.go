package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

// ============================================================
// FindByID
// ============================================================

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	t.Run("finds existing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		clientID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "number", "year", "client_id", "date", "items", "total", "credit", "currency", "status", "payment_status", "removed"}).
			AddRow(invoiceID, 1, 7, 2026, clientID, time.Now(), "[]", decimal.NewFromInt(100), decimal.Zero, "EUR", "draft", "unpaid", false)

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnRows(rows)

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, invoiceID, invoice.ID)
		assert.Equal(t, 7, invoice.Number)
		assert.Equal(t, billing.PaymentStatusUnpaid, invoice.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for non-existent invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.NoError(t, err)
		assert.Nil(t, invoice)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ============================================================
// FindOpenByClient
// ============================================================

func TestGormInvoiceRepository_FindOpenByClient(t *testing.T) {
	t.Run("queries open invoices oldest first", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()
		older := uuid.New()
		newer := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "number", "year", "client_id", "date", "items", "total", "credit", "currency", "status", "payment_status", "removed"}).
			AddRow(older, 1, 1, 2026, clientID, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "[]", decimal.NewFromInt(100), decimal.Zero, "EUR", "sent", "unpaid", false).
			AddRow(newer, 1, 2, 2026, clientID, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), "[]", decimal.NewFromInt(50), decimal.NewFromInt(10), "EUR", "sent", "partially", false)

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE client_id = \$1 AND removed = \$2 AND payment_status IN \(\$3,\$4\) ORDER BY date asc, created_at asc`).
			WithArgs(clientID, false, "unpaid", "partially").
			WillReturnRows(rows)

		invoices, err := repo.FindOpenByClient(context.Background(), clientID)

		assert.NoError(t, err)
		require.Len(t, invoices, 2)
		assert.Equal(t, older, invoices[0].ID)
		assert.Equal(t, newer, invoices[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ============================================================
// SaveWithLock
// ============================================================

func TestGormInvoiceRepository_SaveWithLock(t *testing.T) {
	t.Run("updates when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoice, err := billing.NewInvoice(3, 2026, uuid.New(), time.Now(), nil, decimal.NewFromInt(200), "EUR")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "invoices" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), invoice, 1)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports conflict when no row matches the version", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoice, err := billing.NewInvoice(3, 2026, uuid.New(), time.Now(), nil, decimal.NewFromInt(200), "EUR")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "invoices" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), invoice, 1)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ============================================================
// NextNumber
// ============================================================

func TestGormInvoiceRepository_NextNumber(t *testing.T) {
	t.Run("increments the highest number in the year", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"coalesce"}).AddRow(41)

		mock.ExpectQuery(`SELECT COALESCE\(MAX\(number\), 0\) FROM "invoices" WHERE year = \$1`).
			WithArgs(2026).
			WillReturnRows(rows)

		number, err := repo.NextNumber(context.Background(), 2026)

		assert.NoError(t, err)
		assert.Equal(t, 42, number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts at one for an empty year", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"coalesce"}).AddRow(0)

		mock.ExpectQuery(`SELECT COALESCE\(MAX\(number\), 0\) FROM "invoices" WHERE year = \$1`).
			WithArgs(2027).
			WillReturnRows(rows)

		number, err := repo.NextNumber(context.Background(), 2027)

		assert.NoError(t, err)
		assert.Equal(t, 1, number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ============================================================
// InvoiceTotalsForClient
// ============================================================

func TestGormInvoiceRepository_InvoiceTotalsForClient(t *testing.T) {
	t.Run("sums totals excluding removed invoices", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		rows := sqlmock.NewRows([]string{"total_invoiced", "total_credited"}).
			AddRow(decimal.NewFromInt(1000), decimal.NewFromInt(400))

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\) AS total_invoiced, COALESCE\(SUM\(credit\), 0\) AS total_credited FROM "invoices" WHERE client_id = \$1 AND removed = \$2`).
			WithArgs(clientID, false).
			WillReturnRows(rows)

		totals, err := repo.InvoiceTotalsForClient(context.Background(), clientID)

		assert.NoError(t, err)
		require.NotNil(t, totals)
		assert.True(t, totals.TotalInvoiced.Equal(decimal.NewFromInt(1000)))
		assert.True(t, totals.TotalCredited.Equal(decimal.NewFromInt(400)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
