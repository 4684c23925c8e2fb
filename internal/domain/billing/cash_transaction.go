package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a cash movement
type TransactionType string

const (
	TransactionTypeIn  TransactionType = "in"  // money received
	TransactionTypeOut TransactionType = "out" // money paid out
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIn || t == TransactionTypeOut
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// PartyType identifies which kind of counterparty a transaction belongs to
type PartyType string

const (
	PartyTypeClient   PartyType = "client"
	PartyTypeSupplier PartyType = "supplier"
)

// IsValid checks if the party type is valid
func (p PartyType) IsValid() bool {
	return p == PartyTypeClient || p == PartyTypeSupplier
}

// AppliedInvoice records one allocation leg: how much of the transaction
// amount was applied to which invoice. Value object, stored as JSONB in
// the order the allocation walk produced it.
type AppliedInvoice struct {
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// AppliedInvoices implements GORM Scanner/Valuer for JSONB storage
type AppliedInvoices []AppliedInvoice

// Value implements driver.Valuer interface for GORM to store as JSONB
func (a AppliedInvoices) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (a *AppliedInvoices) Scan(value interface{}) error {
	if value == nil {
		*a = AppliedInvoices{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan AppliedInvoices: unsupported type")
	}

	if len(bytes) == 0 {
		*a = AppliedInvoices{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// TotalApplied sums the amounts across all legs
func (a AppliedInvoices) TotalApplied() decimal.Decimal {
	sum := decimal.Zero
	for _, leg := range a {
		sum = sum.Add(leg.Amount)
	}
	return sum
}

// CashTransaction represents a single cash movement, optionally tied to a
// counterparty and, for incoming money, to the invoices its amount was
// allocated against.
type CashTransaction struct {
	shared.AuditedAggregateRoot
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Date            time.Time       `json:"date"`
	PartyType       PartyType       `json:"party_type"`
	ClientID        *uuid.UUID      `json:"client_id"`
	SupplierID      *uuid.UUID      `json:"supplier_id"`
	InvoiceID       *uuid.UUID      `json:"invoice_id"` // direct allocation target, nil for auto
	AppliedInvoices AppliedInvoices `json:"applied_invoices"`
	Reference       string          `json:"reference"`
	Description     string          `json:"description"`
	Enabled         bool            `json:"enabled"`
	Removed         bool            `json:"removed"`
}

// NewCashTransaction creates a new cash transaction.
// Exactly one of clientID/supplierID must be set, matching partyType.
func NewCashTransaction(
	txType TransactionType,
	amount decimal.Decimal,
	currency string,
	date time.Time,
	partyType PartyType,
	clientID, supplierID *uuid.UUID,
	invoiceID *uuid.UUID,
	reference, description string,
) (*CashTransaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Transaction type must be in or out")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}
	if !partyType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PARTY_TYPE", "Party type must be client or supplier")
	}
	switch partyType {
	case PartyTypeClient:
		if clientID == nil || *clientID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PARTY", "Client ID is required for client transactions")
		}
		if supplierID != nil {
			return nil, shared.NewDomainError("INVALID_PARTY", "Supplier ID must not be set for client transactions")
		}
	case PartyTypeSupplier:
		if supplierID == nil || *supplierID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PARTY", "Supplier ID is required for supplier transactions")
		}
		if clientID != nil {
			return nil, shared.NewDomainError("INVALID_PARTY", "Client ID must not be set for supplier transactions")
		}
	}
	if invoiceID != nil && txType != TransactionTypeIn {
		return nil, shared.NewDomainError("INVALID_TARGET", "Only incoming transactions can target an invoice")
	}

	return &CashTransaction{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(nil),
		Type:                 txType,
		Amount:               amount,
		Currency:             strings.ToUpper(currency),
		Date:                 date,
		PartyType:            partyType,
		ClientID:             clientID,
		SupplierID:           supplierID,
		InvoiceID:            invoiceID,
		AppliedInvoices:      AppliedInvoices{},
		Reference:            reference,
		Description:          description,
		Enabled:              true,
	}, nil
}

// AffectsInvoices returns true if this transaction participates in invoice
// allocation. Outgoing money never touches invoice credit.
func (ct *CashTransaction) AffectsInvoices() bool {
	return ct.Type == TransactionTypeIn && ct.PartyType == PartyTypeClient
}

// RecordAllocation overwrites the allocation legs wholesale with the
// outcome of the latest allocation run
func (ct *CashTransaction) RecordAllocation(legs AppliedInvoices) {
	if legs == nil {
		legs = AppliedInvoices{}
	}
	ct.AppliedInvoices = legs
	ct.UpdatedAt = time.Now()
	ct.IncrementVersion()
}

// ClearAllocation drops all allocation legs, used after a reversal
func (ct *CashTransaction) ClearAllocation() {
	ct.AppliedInvoices = AppliedInvoices{}
	ct.UpdatedAt = time.Now()
	ct.IncrementVersion()
}

// UpdateDetails changes the mutable fields of the transaction. The amount,
// date, target invoice and descriptive fields may change; type and party
// are fixed at creation.
func (ct *CashTransaction) UpdateDetails(amount decimal.Decimal, date time.Time, invoiceID *uuid.UUID, reference, description string) error {
	if ct.Removed {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a removed transaction")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}
	if invoiceID != nil && ct.Type != TransactionTypeIn {
		return shared.NewDomainError("INVALID_TARGET", "Only incoming transactions can target an invoice")
	}

	ct.Amount = amount
	ct.Date = date
	ct.InvoiceID = invoiceID
	ct.Reference = reference
	ct.Description = description
	ct.UpdatedAt = time.Now()
	ct.IncrementVersion()

	return nil
}

// MarkRemoved soft-deletes the transaction
func (ct *CashTransaction) MarkRemoved() error {
	if ct.Removed {
		return shared.NewDomainError("INVALID_STATE", "Transaction is already removed")
	}
	ct.Removed = true
	ct.UpdatedAt = time.Now()
	ct.IncrementVersion()
	return nil
}
