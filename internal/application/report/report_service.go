package report

import (
	"context"
	"fmt"
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/domain/trade"
	"github.com/bizadmin/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService builds cross-entity aggregates for the admin panel
type ReportService struct {
	invoiceRepo  billing.InvoiceRepository
	txRepo       billing.CashTransactionRepository
	purchaseRepo trade.PurchaseRepository
	returnRepo   trade.ReturnExchangeRepository
	logger       *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	invoiceRepo billing.InvoiceRepository,
	txRepo billing.CashTransactionRepository,
	purchaseRepo trade.PurchaseRepository,
	returnRepo trade.ReturnExchangeRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		invoiceRepo:  invoiceRepo,
		txRepo:       txRepo,
		purchaseRepo: purchaseRepo,
		returnRepo:   returnRepo,
		logger:       logger,
	}
}

// ReportSummary totals every entity type within the range
type ReportSummary struct {
	TotalInvoiced  decimal.Decimal `json:"total_invoiced"`
	TotalPurchased decimal.Decimal `json:"total_purchased"`
	TotalCashIn    decimal.Decimal `json:"total_cash_in"`
	TotalCashOut   decimal.Decimal `json:"total_cash_out"`
	TotalReturned  decimal.Decimal `json:"total_returned"`
	InvoiceCount   int             `json:"invoice_count"`
	PurchaseCount  int             `json:"purchase_count"`
	CashTxCount    int             `json:"cash_transaction_count"`
	ReturnCount    int             `json:"return_exchange_count"`
}

// DetailedReport bundles the summary with the underlying records
type DetailedReport struct {
	StartDate       time.Time                 `json:"start_date"`
	EndDate         time.Time                 `json:"end_date"`
	Summary         ReportSummary             `json:"summary"`
	Invoices        []billing.Invoice         `json:"invoices"`
	Purchases       []trade.Purchase          `json:"purchases"`
	CashTxs         []billing.CashTransaction `json:"cash_transactions"`
	ReturnExchanges []trade.ReturnExchange    `json:"return_exchanges"`
}

// GetDetailedReport collects every record dated within [start, end].
// Both bounds are required; the end date is pushed to the last instant
// of its day so a same-day range still matches.
func (s *ReportService) GetDetailedReport(ctx context.Context, start, end *time.Time) (*DetailedReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ReportService", "GetDetailedReport")
	defer span.End()

	if start == nil || end == nil {
		return nil, shared.ErrInvalidDateRange
	}
	if end.Before(*start) {
		return nil, shared.ErrInvalidDateRange
	}

	from := *start
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), end.Location())

	filter := shared.DefaultFilter()
	filter.PageSize = 200
	filter.DateFrom = &from
	filter.DateTo = &to

	invoices, err := collectAll(ctx, filter, s.invoiceRepo.FindAll)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	purchases, err := collectAll(ctx, filter, s.purchaseRepo.FindAll)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load purchases: %w", err)
	}
	txs, err := collectAll(ctx, filter, s.txRepo.FindAll)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load cash transactions: %w", err)
	}
	returns, err := collectAll(ctx, filter, s.returnRepo.FindAll)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load return exchanges: %w", err)
	}

	report := &DetailedReport{
		StartDate:       from,
		EndDate:         to,
		Invoices:        invoices,
		Purchases:       purchases,
		CashTxs:         txs,
		ReturnExchanges: returns,
	}
	report.Summary = summarize(invoices, purchases, txs, returns)

	s.logger.Debug("detailed report built",
		zap.Time("start", from),
		zap.Time("end", to),
		zap.Int("invoices", len(invoices)),
		zap.Int("purchases", len(purchases)))

	return report, nil
}

// collectAll drains a paginated list query, page by page, until a short
// page signals the end. Reports must cover the whole range, not just
// whatever fits in one page.
func collectAll[T any](ctx context.Context, filter shared.Filter, find func(context.Context, shared.Filter) ([]T, error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		filter.Page = page
		batch, err := find(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < filter.Limit() {
			return all, nil
		}
	}
}

func summarize(
	invoices []billing.Invoice,
	purchases []trade.Purchase,
	txs []billing.CashTransaction,
	returns []trade.ReturnExchange,
) ReportSummary {
	summary := ReportSummary{
		InvoiceCount:  len(invoices),
		PurchaseCount: len(purchases),
		CashTxCount:   len(txs),
		ReturnCount:   len(returns),
	}
	for _, inv := range invoices {
		summary.TotalInvoiced = summary.TotalInvoiced.Add(inv.Total)
	}
	for _, p := range purchases {
		summary.TotalPurchased = summary.TotalPurchased.Add(p.Total)
	}
	for _, tx := range txs {
		if tx.Type == billing.TransactionTypeIn {
			summary.TotalCashIn = summary.TotalCashIn.Add(tx.Amount)
		} else {
			summary.TotalCashOut = summary.TotalCashOut.Add(tx.Amount)
		}
	}
	for _, re := range returns {
		if re.Type == trade.ReturnExchangeTypeReturn {
			summary.TotalReturned = summary.TotalReturned.Add(re.ReturnedItem.Total)
		}
	}
	return summary
}
