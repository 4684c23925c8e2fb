package trade

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnExchangeType distinguishes a plain return from an exchange
type ReturnExchangeType string

const (
	ReturnExchangeTypeReturn   ReturnExchangeType = "return"
	ReturnExchangeTypeExchange ReturnExchangeType = "exchange"
)

// IsValid checks if the type is valid
func (t ReturnExchangeType) IsValid() bool {
	return t == ReturnExchangeTypeReturn || t == ReturnExchangeTypeExchange
}

// ReturnExchangeStatus is the workflow state of a return/exchange
type ReturnExchangeStatus string

const (
	ReturnExchangeStatusPending   ReturnExchangeStatus = "pending"
	ReturnExchangeStatusApproved  ReturnExchangeStatus = "approved"
	ReturnExchangeStatusRejected  ReturnExchangeStatus = "rejected"
	ReturnExchangeStatusCompleted ReturnExchangeStatus = "completed"
)

// IsValid checks if the status is valid
func (s ReturnExchangeStatus) IsValid() bool {
	switch s {
	case ReturnExchangeStatusPending, ReturnExchangeStatusApproved,
		ReturnExchangeStatusRejected, ReturnExchangeStatusCompleted:
		return true
	}
	return false
}

// IsTerminal returns true once the workflow can no longer move
func (s ReturnExchangeStatus) IsTerminal() bool {
	return s == ReturnExchangeStatusRejected || s == ReturnExchangeStatusCompleted
}

// ItemLine describes one side of a return or exchange. Value object,
// stored as JSONB.
type ItemLine struct {
	InventoryID uuid.UUID       `json:"inventory_id"`
	ItemName    string          `json:"item_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// Value implements driver.Valuer interface for GORM to store as JSONB
func (l ItemLine) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (l *ItemLine) Scan(value interface{}) error {
	if value == nil {
		*l = ItemLine{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ItemLine: unsupported type")
	}

	if len(bytes) == 0 {
		*l = ItemLine{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// ReturnExchange represents a client giving goods back, optionally taking
// a replacement item. The price difference is signed from the client's
// perspective: positive means the client owes the business extra.
type ReturnExchange struct {
	shared.AuditedAggregateRoot
	Number          int                  `json:"number"`
	Year            int                  `json:"year"`
	Type            ReturnExchangeType   `json:"type"`
	Date            time.Time            `json:"date"`
	ClientID        uuid.UUID            `json:"client_id"`
	ReturnedItem    ItemLine             `json:"returned_item"`
	ExchangedItem   *ItemLine            `json:"exchanged_item"`
	PriceDifference decimal.Decimal      `json:"price_difference"`
	Currency        string               `json:"currency"`
	Reason          string               `json:"reason"`
	Notes           string               `json:"notes"`
	Status          ReturnExchangeStatus `json:"status"`
	Removed         bool                 `json:"removed"`
}

// NewReturnExchange creates a new return or exchange
func NewReturnExchange(
	number, year int,
	reType ReturnExchangeType,
	date time.Time,
	clientID uuid.UUID,
	returnedItem ItemLine,
	exchangedItem *ItemLine,
	currency, reason, notes string,
) (*ReturnExchange, error) {
	if !reType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Type must be return or exchange")
	}
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Number must be positive")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if returnedItem.Total.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Returned item total cannot be negative")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}
	if reType == ReturnExchangeTypeExchange && exchangedItem == nil {
		return nil, shared.NewDomainError("INVALID_EXCHANGE", "Exchange requires an exchanged item")
	}
	if reType == ReturnExchangeTypeReturn && exchangedItem != nil {
		return nil, shared.NewDomainError("INVALID_RETURN", "Return must not carry an exchanged item")
	}

	priceDifference := decimal.Zero
	if exchangedItem != nil {
		priceDifference = exchangedItem.Total.Sub(returnedItem.Total)
	}

	return &ReturnExchange{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(nil),
		Number:               number,
		Year:                 year,
		Type:                 reType,
		Date:                 date,
		ClientID:             clientID,
		ReturnedItem:         returnedItem,
		ExchangedItem:        exchangedItem,
		PriceDifference:      priceDifference,
		Currency:             strings.ToUpper(currency),
		Reason:               reason,
		Notes:                notes,
		Status:               ReturnExchangeStatusPending,
	}, nil
}

// CashMovement is the cash transaction a return/exchange gives rise to
type CashMovement struct {
	Type        billing.TransactionType
	Amount      decimal.Decimal
	Description string
	Reference   string
}

// DeriveCashMovement computes the cash transaction this record implies.
// A return refunds the returned total to the client; an exchange settles
// only the signed price difference. Returns nil when no money moves.
func (re *ReturnExchange) DeriveCashMovement() *CashMovement {
	switch re.Type {
	case ReturnExchangeTypeReturn:
		if re.ReturnedItem.Total.LessThanOrEqual(decimal.Zero) {
			return nil
		}
		return &CashMovement{
			Type:        billing.TransactionTypeOut,
			Amount:      re.ReturnedItem.Total,
			Description: fmt.Sprintf("Refund for return %s", re.Reference()),
			Reference:   re.Reference(),
		}
	case ReturnExchangeTypeExchange:
		switch {
		case re.PriceDifference.GreaterThan(decimal.Zero):
			return &CashMovement{
				Type:        billing.TransactionTypeIn,
				Amount:      re.PriceDifference,
				Description: fmt.Sprintf("Payment for exchange %s", re.Reference()),
				Reference:   re.Reference(),
			}
		case re.PriceDifference.LessThan(decimal.Zero):
			return &CashMovement{
				Type:        billing.TransactionTypeOut,
				Amount:      re.PriceDifference.Neg(),
				Description: fmt.Sprintf("Refund for exchange %s", re.Reference()),
				Reference:   re.Reference(),
			}
		}
	}
	return nil
}

// Approve moves a pending record to approved
func (re *ReturnExchange) Approve() error {
	if re.Status != ReturnExchangeStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve a %s return/exchange", re.Status))
	}
	re.Status = ReturnExchangeStatusApproved
	re.UpdatedAt = time.Now()
	re.IncrementVersion()
	return nil
}

// Reject moves a pending record to rejected
func (re *ReturnExchange) Reject() error {
	if re.Status != ReturnExchangeStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject a %s return/exchange", re.Status))
	}
	re.Status = ReturnExchangeStatusRejected
	re.UpdatedAt = time.Now()
	re.IncrementVersion()
	return nil
}

// Complete closes an approved record
func (re *ReturnExchange) Complete() error {
	if re.Status != ReturnExchangeStatusApproved {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete a %s return/exchange", re.Status))
	}
	re.Status = ReturnExchangeStatusCompleted
	re.UpdatedAt = time.Now()
	re.IncrementVersion()
	return nil
}

// MarkRemoved soft-deletes the record
func (re *ReturnExchange) MarkRemoved() error {
	if re.Removed {
		return shared.NewDomainError("INVALID_STATE", "Return/exchange is already removed")
	}
	re.Removed = true
	re.UpdatedAt = time.Now()
	re.IncrementVersion()
	return nil
}

// Reference returns the human-facing reference, e.g. "RE-7/2026"
func (re *ReturnExchange) Reference() string {
	return fmt.Sprintf("RE-%d/%d", re.Number, re.Year)
}
