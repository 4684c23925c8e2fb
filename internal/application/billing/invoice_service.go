package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceService manages the invoice lifecycle. Credit mutation is not
// exposed here; it only ever happens through allocations.
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// CreateInvoiceRequest carries the fields for a new invoice
type CreateInvoiceRequest struct {
	ClientID    uuid.UUID
	Date        time.Time
	ExpiredDate *time.Time
	Items       billing.InvoiceItems
	Total       decimal.Decimal
	Currency    string
	Notes       string
	CreatedBy   *uuid.UUID
}

// Create numbers and persists a new invoice
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*billing.Invoice, error) {
	year := req.Date.Year()
	number, err := s.invoiceRepo.NextNumber(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to compute next invoice number: %w", err)
	}

	invoice, err := billing.NewInvoice(number, year, req.ClientID, req.Date, req.Items, req.Total, req.Currency)
	if err != nil {
		return nil, err
	}
	invoice.ExpiredDate = req.ExpiredDate
	invoice.Notes = req.Notes
	invoice.SetCreatedBy(req.CreatedBy)

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("reference", invoice.Reference()),
	)
	return invoice, nil
}

// Get loads a single non-removed invoice
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	if invoice == nil || invoice.Removed {
		return nil, shared.ErrNotFound
	}
	return invoice, nil
}

// List returns a page of non-removed invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[billing.Invoice], error) {
	items, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}

	return shared.NewPaginated(items, total, filter.Page, filter.Limit()), nil
}

// Delete soft-deletes an invoice. Applied credit stays on the record so
// reversals of its cash transactions still see a consistent history.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkRemoved(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	return invoice, nil
}
