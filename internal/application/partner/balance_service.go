package partner

import (
	"context"
	"fmt"
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/partner"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/domain/trade"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ClientBalance is the reconciled financial position of a client
type ClientBalance struct {
	ClientID                uuid.UUID       `json:"client_id"`
	TotalInvoiced           decimal.Decimal `json:"total_invoiced"`
	TotalPaid               decimal.Decimal `json:"total_paid"`
	TotalCashIn             decimal.Decimal `json:"total_cash_in"`
	TotalCashOut            decimal.Decimal `json:"total_cash_out"`
	TotalReturns            decimal.Decimal `json:"total_returns"`
	TotalExchangeDifference decimal.Decimal `json:"total_exchange_difference"`
	Outstanding             decimal.Decimal `json:"outstanding"`
	ComputedAt              time.Time       `json:"computed_at"`
}

// SupplierBalance is the financial position of a supplier. Unlike the
// client side it is computed from purchases only: supplier cash-out is
// already reflected in purchase credits, and returns do not apply.
type SupplierBalance struct {
	SupplierID     uuid.UUID       `json:"supplier_id"`
	TotalPurchased decimal.Decimal `json:"total_purchased"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	ComputedAt     time.Time       `json:"computed_at"`
}

// BalanceCache stores computed balances with a short TTL. A nil cache
// disables caching entirely.
type BalanceCache interface {
	GetClientBalance(ctx context.Context, clientID uuid.UUID) (*ClientBalance, error)
	SetClientBalance(ctx context.Context, balance *ClientBalance) error
	GetSupplierBalance(ctx context.Context, supplierID uuid.UUID) (*SupplierBalance, error)
	SetSupplierBalance(ctx context.Context, balance *SupplierBalance) error
	InvalidateClient(ctx context.Context, clientID uuid.UUID) error
	InvalidateSupplier(ctx context.Context, supplierID uuid.UUID) error
}

// BalanceService reconciles balances across invoices, cash transactions,
// purchases and return/exchange records
type BalanceService struct {
	clientRepo    partner.ClientRepository
	supplierRepo  partner.SupplierRepository
	invoiceTotals billing.InvoiceTotalsReader
	flowReader    billing.CashFlowReader
	purchaseRepo  trade.PurchaseTotalsReader
	returnRepo    trade.ReturnTotalsReader
	cache         BalanceCache
	logger        *zap.Logger
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(
	clientRepo partner.ClientRepository,
	supplierRepo partner.SupplierRepository,
	invoiceTotals billing.InvoiceTotalsReader,
	flowReader billing.CashFlowReader,
	purchaseRepo trade.PurchaseTotalsReader,
	returnRepo trade.ReturnTotalsReader,
	cache BalanceCache,
	logger *zap.Logger,
) *BalanceService {
	return &BalanceService{
		clientRepo:    clientRepo,
		supplierRepo:  supplierRepo,
		invoiceTotals: invoiceTotals,
		flowReader:    flowReader,
		purchaseRepo:  purchaseRepo,
		returnRepo:    returnRepo,
		cache:         cache,
		logger:        logger,
	}
}

// GetClientBalance computes the client's outstanding amount:
//
//	totalInvoiced - totalPaid - totalCashIn + totalCashOut
//	  - totalReturns + totalExchangeDifference
//
// where totalPaid is the sum of invoice credits. Cash-in applied to
// invoices therefore counts on both terms, matching the books the admin
// panel has always shown.
func (s *BalanceService) GetClientBalance(ctx context.Context, clientID uuid.UUID) (*ClientBalance, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "BalanceService", "GetClientBalance")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrClientID, clientID.String())

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	if client == nil || client.Removed {
		return nil, shared.ErrNotFound
	}

	if s.cache != nil {
		if cached, err := s.cache.GetClientBalance(ctx, clientID); err == nil && cached != nil {
			return cached, nil
		}
	}

	invTotals, err := s.invoiceTotals.InvoiceTotalsForClient(ctx, clientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum invoices: %w", err)
	}

	flow, err := s.flowReader.TotalsForClient(ctx, clientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum cash transactions: %w", err)
	}

	returns, exchangeDiff, err := s.returnRepo.TotalsForClient(ctx, clientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum returns: %w", err)
	}

	balance := &ClientBalance{
		ClientID:                clientID,
		TotalInvoiced:           invTotals.TotalInvoiced,
		TotalPaid:               invTotals.TotalCredited,
		TotalCashIn:             flow.TotalIn,
		TotalCashOut:            flow.TotalOut,
		TotalReturns:            returns,
		TotalExchangeDifference: exchangeDiff,
		ComputedAt:              time.Now(),
	}
	balance.Outstanding = invTotals.TotalInvoiced.
		Sub(invTotals.TotalCredited).
		Sub(flow.TotalIn).
		Add(flow.TotalOut).
		Sub(returns).
		Add(exchangeDiff)

	if s.cache != nil {
		if err := s.cache.SetClientBalance(ctx, balance); err != nil {
			s.logger.Warn("failed to cache client balance",
				zap.String("client_id", clientID.String()),
				zap.Error(err))
		}
	}

	return balance, nil
}

// GetSupplierBalance computes the supplier's outstanding amount from
// purchase totals and credits only
func (s *BalanceService) GetSupplierBalance(ctx context.Context, supplierID uuid.UUID) (*SupplierBalance, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "BalanceService", "GetSupplierBalance")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrSupplierID, supplierID.String())

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	if supplier == nil || supplier.Removed {
		return nil, shared.ErrNotFound
	}

	if s.cache != nil {
		if cached, err := s.cache.GetSupplierBalance(ctx, supplierID); err == nil && cached != nil {
			return cached, nil
		}
	}

	total, credit, err := s.purchaseRepo.TotalsForSupplier(ctx, supplierID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum purchases: %w", err)
	}

	balance := &SupplierBalance{
		SupplierID:     supplierID,
		TotalPurchased: total,
		TotalPaid:      credit,
		Outstanding:    total.Sub(credit),
		ComputedAt:     time.Now(),
	}

	if s.cache != nil {
		if err := s.cache.SetSupplierBalance(ctx, balance); err != nil {
			s.logger.Warn("failed to cache supplier balance",
				zap.String("supplier_id", supplierID.String()),
				zap.Error(err))
		}
	}

	return balance, nil
}
