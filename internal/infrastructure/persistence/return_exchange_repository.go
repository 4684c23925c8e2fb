package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/domain/trade"
	"github.com/bizadmin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReturnExchangeRepository implements trade.ReturnExchangeRepository
// using GORM
type GormReturnExchangeRepository struct {
	db *gorm.DB
}

// NewGormReturnExchangeRepository creates a new GormReturnExchangeRepository
func NewGormReturnExchangeRepository(db *gorm.DB) *GormReturnExchangeRepository {
	return &GormReturnExchangeRepository{db: db}
}

// FindByID finds a return/exchange by its ID. Returns nil without error
// when no record exists.
func (r *GormReturnExchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReturnExchange, error) {
	var model models.ReturnExchangeModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find return/exchange: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns return/exchange records matching the filter
func (r *GormReturnExchangeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.ReturnExchange, error) {
	var modelList []models.ReturnExchangeModel
	db := applyFilter(dbFromContext(ctx, r.db).Model(&models.ReturnExchangeModel{}), filter, "date", ReturnExchangeSortFields)
	if err := db.Where("removed = ?", false).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list return/exchanges: %w", err)
	}

	records := make([]trade.ReturnExchange, len(modelList))
	for i, m := range modelList {
		records[i] = *m.ToDomain()
	}
	return records, nil
}

// Count returns the number of return/exchange records matching the filter
func (r *GormReturnExchangeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	db := applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&models.ReturnExchangeModel{}), filter, "date", ReturnExchangeSortFields)
	if err := db.Where("removed = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count return/exchanges: %w", err)
	}
	return count, nil
}

// Save persists a return/exchange, inserting or updating by primary key
func (r *GormReturnExchangeRepository) Save(ctx context.Context, re *trade.ReturnExchange) error {
	var model models.ReturnExchangeModel
	model.FromDomain(re)
	if err := dbFromContext(ctx, r.db).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save return/exchange: %w", err)
	}
	return nil
}

// NextNumber returns the next return/exchange number for the given year
func (r *GormReturnExchangeRepository) NextNumber(ctx context.Context, year int) (int, error) {
	var max int
	err := dbFromContext(ctx, r.db).
		Model(&models.ReturnExchangeModel{}).
		Where("year = ?", year).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute next return/exchange number: %w", err)
	}
	return max + 1, nil
}

// TotalsForClient sums returned totals and signed price differences
// across the client's non-removed records. Returned totals only count
// plain returns; price differences only accrue on exchanges.
func (r *GormReturnExchangeRepository) TotalsForClient(ctx context.Context, clientID uuid.UUID) (returns, exchangeDifference decimal.Decimal, err error) {
	var row struct {
		Returns            decimal.Decimal
		ExchangeDifference decimal.Decimal
	}
	err = dbFromContext(ctx, r.db).
		Model(&models.ReturnExchangeModel{}).
		Where("client_id = ? AND removed = ?", clientID, false).
		Select(`COALESCE(SUM((returned_item->>'total')::numeric) FILTER (WHERE type = 'return'), 0) AS returns,
COALESCE(SUM(price_difference) FILTER (WHERE type = 'exchange'), 0) AS exchange_difference`).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum return/exchange totals: %w", err)
	}
	return row.Returns, row.ExchangeDifference, nil
}

var (
	_ trade.ReturnExchangeRepository = (*GormReturnExchangeRepository)(nil)
	_ trade.ReturnTotalsReader       = (*GormReturnExchangeRepository)(nil)
)
