package trade

import (
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase represents money the business owes a supplier. It mirrors the
// invoice shape on the supplier side: a total, accumulated credit and a
// derived payment status.
type Purchase struct {
	shared.AuditedAggregateRoot
	Number        int                   `json:"number"`
	Year          int                   `json:"year"`
	SupplierID    uuid.UUID             `json:"supplier_id"`
	Date          time.Time             `json:"date"`
	Total         decimal.Decimal       `json:"total"`
	Credit        decimal.Decimal       `json:"credit"`
	Currency      string                `json:"currency"`
	PaymentStatus billing.PaymentStatus `json:"payment_status"`
	Notes         string                `json:"notes"`
	Removed       bool                  `json:"removed"`
}

// NewPurchase creates a new purchase
func NewPurchase(number, year int, supplierID uuid.UUID, date time.Time, total decimal.Decimal, currency string) (*Purchase, error) {
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Purchase number must be positive")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if total.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Purchase total cannot be negative")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}

	return &Purchase{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(nil),
		Number:               number,
		Year:                 year,
		SupplierID:           supplierID,
		Date:                 date,
		Total:                total,
		Credit:               decimal.Zero,
		Currency:             currency,
		PaymentStatus:        billing.DerivePaymentStatus(decimal.Zero, total),
	}, nil
}

// ApplyCredit increases the purchase credit and re-derives the payment status
func (p *Purchase) ApplyCredit(amount decimal.Decimal) error {
	if p.Removed {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply credit to a removed purchase")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}

	p.Credit = p.Credit.Add(amount)
	p.PaymentStatus = billing.DerivePaymentStatus(p.Credit, p.Total)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkRemoved soft-deletes the purchase
func (p *Purchase) MarkRemoved() error {
	if p.Removed {
		return shared.NewDomainError("INVALID_STATE", "Purchase is already removed")
	}
	p.Removed = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
