package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCashTransactionRepository implements billing.CashTransactionRepository
// and billing.CashFlowReader using GORM
type GormCashTransactionRepository struct {
	db *gorm.DB
}

// NewGormCashTransactionRepository creates a new GormCashTransactionRepository
func NewGormCashTransactionRepository(db *gorm.DB) *GormCashTransactionRepository {
	return &GormCashTransactionRepository{db: db}
}

// FindByID finds a cash transaction by its ID. Returns nil without error
// when no transaction exists.
func (r *GormCashTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.CashTransaction, error) {
	var model models.CashTransactionModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cash transaction: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns cash transactions matching the filter
func (r *GormCashTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.CashTransaction, error) {
	var modelList []models.CashTransactionModel
	db := applyFilter(dbFromContext(ctx, r.db).Model(&models.CashTransactionModel{}), filter, "date", CashTransactionSortFields)
	if err := db.Where("removed = ?", false).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list cash transactions: %w", err)
	}

	txs := make([]billing.CashTransaction, len(modelList))
	for i, m := range modelList {
		txs[i] = *m.ToDomain()
	}
	return txs, nil
}

// Count returns the number of cash transactions matching the filter
func (r *GormCashTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	db := applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&models.CashTransactionModel{}), filter, "date", CashTransactionSortFields)
	if err := db.Where("removed = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cash transactions: %w", err)
	}
	return count, nil
}

// Save persists a cash transaction, inserting or updating by primary key
func (r *GormCashTransactionRepository) Save(ctx context.Context, tx *billing.CashTransaction) error {
	var model models.CashTransactionModel
	model.FromDomain(tx)
	if err := dbFromContext(ctx, r.db).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save cash transaction: %w", err)
	}
	return nil
}

type cashFlowRow struct {
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
	CountIn  int64
	CountOut int64
}

const cashFlowSelect = `
COALESCE(SUM(amount) FILTER (WHERE type = 'in'), 0) AS total_in,
COALESCE(SUM(amount) FILTER (WHERE type = 'out'), 0) AS total_out,
COUNT(*) FILTER (WHERE type = 'in') AS count_in,
COUNT(*) FILTER (WHERE type = 'out') AS count_out`

// Totals sums non-removed transactions per direction over the half-open
// range [from, to). Nil bounds leave that side of the range open.
func (r *GormCashTransactionRepository) Totals(ctx context.Context, from, to *time.Time) (*billing.CashFlowTotals, error) {
	db := dbFromContext(ctx, r.db).
		Model(&models.CashTransactionModel{}).
		Where("removed = ?", false)
	if from != nil {
		db = db.Where("date >= ?", *from)
	}
	if to != nil {
		db = db.Where("date < ?", *to)
	}

	var row cashFlowRow
	if err := db.Select(cashFlowSelect).Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to sum cash flow: %w", err)
	}
	return &billing.CashFlowTotals{
		TotalIn:  row.TotalIn,
		TotalOut: row.TotalOut,
		CountIn:  row.CountIn,
		CountOut: row.CountOut,
	}, nil
}

// TotalsForClient sums a single client's non-removed transactions
func (r *GormCashTransactionRepository) TotalsForClient(ctx context.Context, clientID uuid.UUID) (*billing.CashFlowTotals, error) {
	var row cashFlowRow
	err := dbFromContext(ctx, r.db).
		Model(&models.CashTransactionModel{}).
		Where("client_id = ? AND removed = ?", clientID, false).
		Select(cashFlowSelect).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum client cash flow: %w", err)
	}
	return &billing.CashFlowTotals{
		TotalIn:  row.TotalIn,
		TotalOut: row.TotalOut,
		CountIn:  row.CountIn,
		CountOut: row.CountOut,
	}, nil
}

var (
	_ billing.CashTransactionRepository = (*GormCashTransactionRepository)(nil)
	_ billing.CashFlowReader            = (*GormCashTransactionRepository)(nil)
)
