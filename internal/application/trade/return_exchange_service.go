package trade

import (
	"context"
	"fmt"
	"time"

	appbilling "github.com/bizadmin/backend/internal/application/billing"
	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/domain/trade"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CashTransactionCreator records the cash transaction a return/exchange
// gives rise to. Routing through the cash transaction service means a
// derived cash-in allocates against open invoices like any other.
type CashTransactionCreator interface {
	Create(ctx context.Context, req appbilling.CreateCashTransactionRequest) (*appbilling.CashTransactionResult, error)
}

// ReturnExchangeService handles return and exchange records
type ReturnExchangeService struct {
	returnRepo  trade.ReturnExchangeRepository
	cashCreator CashTransactionCreator
	txManager   shared.TransactionManager
	logger      *zap.Logger
}

// NewReturnExchangeService creates a new ReturnExchangeService
func NewReturnExchangeService(
	returnRepo trade.ReturnExchangeRepository,
	cashCreator CashTransactionCreator,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *ReturnExchangeService {
	return &ReturnExchangeService{
		returnRepo:  returnRepo,
		cashCreator: cashCreator,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateReturnExchangeRequest carries the fields for a new record
type CreateReturnExchangeRequest struct {
	Type                  trade.ReturnExchangeType
	Date                  time.Time
	ClientID              uuid.UUID
	ReturnedItem          trade.ItemLine
	ExchangedItem         *trade.ItemLine
	Currency              string
	Reason                string
	Notes                 string
	CreateCashTransaction bool
	CreatedBy             *uuid.UUID
}

// ReturnExchangeResult bundles the stored record with the cash
// transaction derived from it, if any
type ReturnExchangeResult struct {
	ReturnExchange  *trade.ReturnExchange             `json:"return_exchange"`
	CashTransaction *appbilling.CashTransactionResult `json:"cash_transaction,omitempty"`
}

// Create stores a return/exchange and, when requested, the cash
// transaction it implies. An exchange with zero price difference moves
// no money even when the flag is set.
func (s *ReturnExchangeService) Create(ctx context.Context, req CreateReturnExchangeRequest) (*ReturnExchangeResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ReturnExchangeService", "Create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrClientID, req.ClientID.String(),
		telemetry.SpanAttrTxType, string(req.Type),
	)

	result := &ReturnExchangeResult{}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		number, err := s.returnRepo.NextNumber(ctx, req.Date.Year())
		if err != nil {
			return fmt.Errorf("failed to get next number: %w", err)
		}

		re, err := trade.NewReturnExchange(
			number, req.Date.Year(), req.Type, req.Date, req.ClientID,
			req.ReturnedItem, req.ExchangedItem,
			req.Currency, req.Reason, req.Notes,
		)
		if err != nil {
			return err
		}
		re.SetCreatedBy(req.CreatedBy)

		if err := s.returnRepo.Save(ctx, re); err != nil {
			return fmt.Errorf("failed to save return exchange: %w", err)
		}
		result.ReturnExchange = re

		if !req.CreateCashTransaction {
			return nil
		}
		movement := re.DeriveCashMovement()
		if movement == nil {
			return nil
		}

		txResult, err := s.cashCreator.Create(ctx, appbilling.CreateCashTransactionRequest{
			Type:        movement.Type,
			Amount:      movement.Amount,
			Currency:    re.Currency,
			Date:        re.Date,
			PartyType:   billing.PartyTypeClient,
			ClientID:    &re.ClientID,
			Reference:   movement.Reference,
			Description: movement.Description,
			CreatedBy:   req.CreatedBy,
		})
		if err != nil {
			return fmt.Errorf("failed to create derived cash transaction: %w", err)
		}
		result.CashTransaction = txResult
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("return exchange created",
		zap.String("id", result.ReturnExchange.ID.String()),
		zap.String("reference", result.ReturnExchange.Reference()),
		zap.Bool("cash_transaction", result.CashTransaction != nil))

	return result, nil
}

// Get returns a record by id
func (s *ReturnExchangeService) Get(ctx context.Context, id uuid.UUID) (*trade.ReturnExchange, error) {
	re, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find return exchange: %w", err)
	}
	if re == nil || re.Removed {
		return nil, shared.ErrNotFound
	}
	return re, nil
}

// List returns a page of records
func (s *ReturnExchangeService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[trade.ReturnExchange], error) {
	items, err := s.returnRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list return exchanges: %w", err)
	}
	total, err := s.returnRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count return exchanges: %w", err)
	}
	return shared.NewPaginated(items, total, filter.Page, filter.Limit()), nil
}

// Approve moves a pending record to approved
func (s *ReturnExchangeService) Approve(ctx context.Context, id uuid.UUID) (*trade.ReturnExchange, error) {
	return s.transition(ctx, id, (*trade.ReturnExchange).Approve)
}

// Reject moves a pending record to rejected
func (s *ReturnExchangeService) Reject(ctx context.Context, id uuid.UUID) (*trade.ReturnExchange, error) {
	return s.transition(ctx, id, (*trade.ReturnExchange).Reject)
}

// Complete moves an approved record to completed
func (s *ReturnExchangeService) Complete(ctx context.Context, id uuid.UUID) (*trade.ReturnExchange, error) {
	return s.transition(ctx, id, (*trade.ReturnExchange).Complete)
}

func (s *ReturnExchangeService) transition(ctx context.Context, id uuid.UUID, apply func(*trade.ReturnExchange) error) (*trade.ReturnExchange, error) {
	re, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(re); err != nil {
		return nil, err
	}
	if err := s.returnRepo.Save(ctx, re); err != nil {
		return nil, fmt.Errorf("failed to save return exchange: %w", err)
	}
	return re, nil
}

// Delete soft deletes a record. The derived cash transaction, if one was
// created, is managed through the cash transaction endpoints.
func (s *ReturnExchangeService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "ReturnExchangeService", "Delete")
	defer span.End()

	re, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := re.MarkRemoved(); err != nil {
		return err
	}

	if err := s.returnRepo.Save(ctx, re); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to save return exchange: %w", err)
	}

	s.logger.Info("return exchange removed", zap.String("id", id.String()))
	return nil
}
