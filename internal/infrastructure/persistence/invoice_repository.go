package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID. Returns nil without error when no
// invoice exists.
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return model.ToDomain(), nil
}

// FindOpenByClient returns the client's invoices that can still receive
// allocations, oldest document first
func (r *GormInvoiceRepository) FindOpenByClient(ctx context.Context, clientID uuid.UUID) ([]billing.Invoice, error) {
	var modelList []models.InvoiceModel
	err := dbFromContext(ctx, r.db).
		Where("client_id = ? AND removed = ? AND payment_status IN ?",
			clientID, false, []billing.PaymentStatus{billing.PaymentStatusUnpaid, billing.PaymentStatusPartially}).
		Order("date asc, created_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find open invoices: %w", err)
	}

	invoices := make([]billing.Invoice, len(modelList))
	for i, m := range modelList {
		invoices[i] = *m.ToDomain()
	}
	return invoices, nil
}

// FindAll returns invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	var modelList []models.InvoiceModel
	db := applyFilter(dbFromContext(ctx, r.db).Model(&models.InvoiceModel{}), filter, "date", InvoiceSortFields)
	if err := db.Where("removed = ?", false).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]billing.Invoice, len(modelList))
	for i, m := range modelList {
		invoices[i] = *m.ToDomain()
	}
	return invoices, nil
}

// Count returns the number of invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	db := applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&models.InvoiceModel{}), filter, "date", InvoiceSortFields)
	if err := db.Where("removed = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

// Save persists an invoice, inserting or updating by primary key
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)
	if err := dbFromContext(ctx, r.db).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return nil
}

// SaveWithLock persists the invoice only if the stored row still carries
// expectedVersion. A zero-row update means another process got there
// first.
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice, expectedVersion int) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)

	result := dbFromContext(ctx, r.db).
		Model(&models.InvoiceModel{}).
		Where("id = ? AND version = ?", invoice.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// NextNumber returns the next invoice number for the given year
func (r *GormInvoiceRepository) NextNumber(ctx context.Context, year int) (int, error) {
	var max int
	err := dbFromContext(ctx, r.db).
		Model(&models.InvoiceModel{}).
		Where("year = ?", year).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute next invoice number: %w", err)
	}
	return max + 1, nil
}

// InvoiceTotalsForClient sums total and credit across the client's
// non-removed invoices
func (r *GormInvoiceRepository) InvoiceTotalsForClient(ctx context.Context, clientID uuid.UUID) (*billing.InvoiceTotals, error) {
	var row struct {
		TotalInvoiced decimal.Decimal
		TotalCredited decimal.Decimal
	}
	err := dbFromContext(ctx, r.db).
		Model(&models.InvoiceModel{}).
		Where("client_id = ? AND removed = ?", clientID, false).
		Select("COALESCE(SUM(total), 0) AS total_invoiced, COALESCE(SUM(credit), 0) AS total_credited").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum invoice totals: %w", err)
	}
	return &billing.InvoiceTotals{
		TotalInvoiced: row.TotalInvoiced,
		TotalCredited: row.TotalCredited,
	}, nil
}

var (
	_ billing.InvoiceRepository   = (*GormInvoiceRepository)(nil)
	_ billing.InvoiceTotalsReader = (*GormInvoiceRepository)(nil)
)
