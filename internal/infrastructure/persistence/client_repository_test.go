package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ============================================================
// FindByID
// ============================================================

func TestGormClientRepository_FindByID(t *testing.T) {
	t.Run("finds existing client", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(gormDB)

		clientID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "name", "email", "enabled", "removed"}).
			AddRow(clientID, 1, "Acme GmbH", "billing@acme.test", true, false)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, 1).
			WillReturnRows(rows)

		client, err := repo.FindByID(context.Background(), clientID)

		assert.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "Acme GmbH", client.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for non-existent client", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(gormDB)

		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		client, err := repo.FindByID(context.Background(), clientID)

		assert.NoError(t, err)
		assert.Nil(t, client)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ============================================================
// CountCreatedSince
// ============================================================

func TestGormClientRepository_CountCreatedSince(t *testing.T) {
	t.Run("counts all clients for a zero time", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(gormDB)

		rows := sqlmock.NewRows([]string{"count"}).AddRow(12)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "clients" WHERE removed = \$1`).
			WithArgs(false).
			WillReturnRows(rows)

		count, err := repo.CountCreatedSince(context.Background(), time.Time{})

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies the lower bound when set", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(gormDB)

		since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{"count"}).AddRow(3)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "clients" WHERE removed = \$1 AND created_at >= \$2`).
			WithArgs(false, since).
			WillReturnRows(rows)

		count, err := repo.CountCreatedSince(context.Background(), since)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
