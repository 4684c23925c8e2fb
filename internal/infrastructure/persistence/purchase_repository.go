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

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID. Returns nil without error when no
// purchase exists.
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var model models.PurchaseModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find purchase: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	var modelList []models.PurchaseModel
	db := applyFilter(dbFromContext(ctx, r.db).Model(&models.PurchaseModel{}), filter, "date", PurchaseSortFields)
	if err := db.Where("removed = ?", false).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	purchases := make([]trade.Purchase, len(modelList))
	for i, m := range modelList {
		purchases[i] = *m.ToDomain()
	}
	return purchases, nil
}

// Count returns the number of purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	db := applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&models.PurchaseModel{}), filter, "date", PurchaseSortFields)
	if err := db.Where("removed = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count, nil
}

// Save persists a purchase, inserting or updating by primary key
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	var model models.PurchaseModel
	model.FromDomain(purchase)
	if err := dbFromContext(ctx, r.db).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save purchase: %w", err)
	}
	return nil
}

// NextNumber returns the next purchase number for the given year
func (r *GormPurchaseRepository) NextNumber(ctx context.Context, year int) (int, error) {
	var max int
	err := dbFromContext(ctx, r.db).
		Model(&models.PurchaseModel{}).
		Where("year = ?", year).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute next purchase number: %w", err)
	}
	return max + 1, nil
}

// TotalsForSupplier sums total and credit across the supplier's
// non-removed purchases
func (r *GormPurchaseRepository) TotalsForSupplier(ctx context.Context, supplierID uuid.UUID) (total, credit decimal.Decimal, err error) {
	var row struct {
		Total  decimal.Decimal
		Credit decimal.Decimal
	}
	err = dbFromContext(ctx, r.db).
		Model(&models.PurchaseModel{}).
		Where("supplier_id = ? AND removed = ?", supplierID, false).
		Select("COALESCE(SUM(total), 0) AS total, COALESCE(SUM(credit), 0) AS credit").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum purchase totals: %w", err)
	}
	return row.Total, row.Credit, nil
}

var (
	_ trade.PurchaseRepository   = (*GormPurchaseRepository)(nil)
	_ trade.PurchaseTotalsReader = (*GormPurchaseRepository)(nil)
)
