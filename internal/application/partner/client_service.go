package partner

import (
	"context"
	"fmt"
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/partner"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ClientService handles client lifecycle operations
type ClientService struct {
	clientRepo partner.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// CreateClientRequest carries the fields for a new client
type CreateClientRequest struct {
	Name      string
	Email     string
	Phone     string
	Address   string
	Country   string
	CreatedBy *uuid.UUID
}

// UpdateClientRequest carries the updatable client fields
type UpdateClientRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Country string
}

// Create registers a new client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*partner.Client, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ClientService", "Create")
	defer span.End()

	client, err := partner.NewClient(req.Name, req.Email, req.Phone, req.Address, req.Country)
	if err != nil {
		return nil, err
	}
	client.SetCreatedBy(req.CreatedBy)

	if err := s.clientRepo.Save(ctx, client); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	s.logger.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.String("name", client.Name))

	return client, nil
}

// Get returns a client by id
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	if client == nil || client.Removed {
		return nil, shared.ErrNotFound
	}
	return client, nil
}

// Update modifies a client's contact details
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*partner.Client, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ClientService", "Update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrClientID, id.String())

	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := client.UpdateDetails(req.Name, req.Email, req.Phone, req.Address, req.Country); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	return client, nil
}

// Delete soft deletes a client. Historical invoices and transactions
// keep referencing it.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "ClientService", "Delete")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrClientID, id.String())

	client, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := client.MarkRemoved(); err != nil {
		return err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to save client: %w", err)
	}

	s.logger.Info("client removed", zap.String("client_id", id.String()))
	return nil
}

// List returns a page of clients
func (s *ClientService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Client], error) {
	clients, err := s.clientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	total, err := s.clientRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	return shared.NewPaginated(clients, total, filter.Page, filter.Limit()), nil
}

// PartnerSummary reports headcount growth within a period
type PartnerSummary struct {
	Period        billing.Period  `json:"period"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	Total         int64           `json:"total"`
	NewInPeriod   int64           `json:"new_in_period"`
	GrowthPercent decimal.Decimal `json:"growth_percent"`
}

// Summary counts clients and how many of them joined within the period
func (s *ClientService) Summary(ctx context.Context, period billing.Period) (*PartnerSummary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ClientService", "Summary")
	defer span.End()

	if !period.IsValid() {
		return nil, shared.ErrInvalidPeriod
	}
	start, end, err := period.Bounds(time.Now())
	if err != nil {
		return nil, err
	}

	total, err := s.clientRepo.CountCreatedSince(ctx, time.Time{})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	newInPeriod, err := s.clientRepo.CountCreatedSince(ctx, start)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count new clients: %w", err)
	}

	return &PartnerSummary{
		Period:        period,
		PeriodStart:   start,
		PeriodEnd:     end,
		Total:         total,
		NewInPeriod:   newInPeriod,
		GrowthPercent: growthPercent(total, newInPeriod),
	}, nil
}

// growthPercent is newInPeriod over total, as a percentage rounded to
// two places. Zero totals yield zero rather than dividing.
func growthPercent(total, newInPeriod int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(newInPeriod).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
