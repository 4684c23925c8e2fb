package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus tracks how much of a document's total has been covered
// by applied credit.
type PaymentStatus string

const (
	PaymentStatusUnpaid    PaymentStatus = "unpaid"    // credit <= 0
	PaymentStatusPartially PaymentStatus = "partially" // 0 < credit < total
	PaymentStatusPaid      PaymentStatus = "paid"      // credit >= total
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartially, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// CanReceiveAllocation returns true if credit can still be allocated to a
// document in this status
func (s PaymentStatus) CanReceiveAllocation() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPartially
}

// DerivePaymentStatus computes the payment status from credit and total.
// The boundaries are closed towards the terminal states: credit equal to
// total is paid, credit of exactly zero is unpaid.
func DerivePaymentStatus(credit, total decimal.Decimal) PaymentStatus {
	if credit.GreaterThanOrEqual(total) {
		return PaymentStatusPaid
	}
	if credit.GreaterThan(decimal.Zero) {
		return PaymentStatusPartially
	}
	return PaymentStatusUnpaid
}

// InvoiceStatus represents the document lifecycle, independent of payment
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusSent    InvoiceStatus = "sent"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusSent:
		return true
	}
	return false
}

// InvoiceItem is a line on an invoice. Value object, stored as JSONB.
type InvoiceItem struct {
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// InvoiceItems implements GORM Scanner/Valuer for JSONB storage
type InvoiceItems []InvoiceItem

// Value implements driver.Valuer interface for GORM to store as JSONB
func (i InvoiceItems) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	return json.Marshal(i)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (i *InvoiceItems) Scan(value interface{}) error {
	if value == nil {
		*i = InvoiceItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan InvoiceItems: unsupported type")
	}

	if len(bytes) == 0 {
		*i = InvoiceItems{}
		return nil
	}

	return json.Unmarshal(bytes, i)
}

// Invoice represents money owed to the business by a client.
// Credit accumulates through cash transaction allocations; the payment
// status is always re-derived from credit and total, never set directly.
type Invoice struct {
	shared.AuditedAggregateRoot
	Number        int             `json:"number"`
	Year          int             `json:"year"`
	ClientID      uuid.UUID       `json:"client_id"`
	Date          time.Time       `json:"date"`
	ExpiredDate   *time.Time      `json:"expired_date"`
	Items         InvoiceItems    `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Credit        decimal.Decimal `json:"credit"`
	Currency      string          `json:"currency"`
	Status        InvoiceStatus   `json:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Notes         string          `json:"notes"`
	Removed       bool            `json:"removed"`
}

// NewInvoice creates a new invoice
func NewInvoice(number, year int, clientID uuid.UUID, date time.Time, items InvoiceItems, total decimal.Decimal, currency string) (*Invoice, error) {
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number must be positive")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if total.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice total cannot be negative")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}

	return &Invoice{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(nil),
		Number:               number,
		Year:                 year,
		ClientID:             clientID,
		Date:                 date,
		Items:                items,
		Total:                total,
		Credit:               decimal.Zero,
		Currency:             currency,
		Status:               InvoiceStatusDraft,
		PaymentStatus:        DerivePaymentStatus(decimal.Zero, total),
	}, nil
}

// ApplyCredit increases the invoice credit and re-derives the payment status
func (inv *Invoice) ApplyCredit(amount decimal.Decimal) error {
	if inv.Removed {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply credit to a removed invoice")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}

	inv.Credit = inv.Credit.Add(amount)
	inv.PaymentStatus = DerivePaymentStatus(inv.Credit, inv.Total)
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// RevertCredit removes previously applied credit, clamping the result at
// zero. The returned value is the amount that could not be reverted because
// the clamp fired; callers log it when non-zero.
func (inv *Invoice) RevertCredit(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_AMOUNT", "Revert amount must be positive")
	}

	clamped := decimal.Zero
	next := inv.Credit.Sub(amount)
	if next.IsNegative() {
		clamped = next.Neg()
		next = decimal.Zero
	}

	inv.Credit = next
	inv.PaymentStatus = DerivePaymentStatus(inv.Credit, inv.Total)
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return clamped, nil
}

// Outstanding returns the uncovered part of the invoice total
func (inv *Invoice) Outstanding() decimal.Decimal {
	out := inv.Total.Sub(inv.Credit)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// MarkSent moves the invoice out of draft
func (inv *Invoice) MarkSent() error {
	if inv.Removed {
		return shared.NewDomainError("INVALID_STATE", "Cannot send a removed invoice")
	}
	inv.Status = InvoiceStatusSent
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// MarkRemoved soft-deletes the invoice
func (inv *Invoice) MarkRemoved() error {
	if inv.Removed {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already removed")
	}
	inv.Removed = true
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// Reference returns the human-facing invoice reference, e.g. "12/2026"
func (inv *Invoice) Reference() string {
	return fmt.Sprintf("%d/%d", inv.Number, inv.Year)
}
