package models

import (
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
type InvoiceModel struct {
	AuditedAggregateModel
	Number        int       `gorm:"not null;uniqueIndex:idx_invoice_number_year,priority:1"`
	Year          int       `gorm:"not null;uniqueIndex:idx_invoice_number_year,priority:2"`
	ClientID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Date          time.Time `gorm:"not null;index"`
	ExpiredDate   *time.Time
	Items         billing.InvoiceItems  `gorm:"type:jsonb;not null;default:'[]'"`
	Total         decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Credit        decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Currency      string                `gorm:"type:varchar(3);not null"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	PaymentStatus billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid';index"`
	Notes         string                `gorm:"type:text"`
	Removed       bool                  `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		Number:               m.Number,
		Year:                 m.Year,
		ClientID:             m.ClientID,
		Date:                 m.Date,
		ExpiredDate:          m.ExpiredDate,
		Items:                m.Items,
		Total:                m.Total,
		Credit:               m.Credit,
		Currency:             m.Currency,
		Status:               m.Status,
		PaymentStatus:        m.PaymentStatus,
		Notes:                m.Notes,
		Removed:              m.Removed,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAuditedAggregateRoot(inv.AuditedAggregateRoot)
	m.Number = inv.Number
	m.Year = inv.Year
	m.ClientID = inv.ClientID
	m.Date = inv.Date
	m.ExpiredDate = inv.ExpiredDate
	m.Items = inv.Items
	m.Total = inv.Total
	m.Credit = inv.Credit
	m.Currency = inv.Currency
	m.Status = inv.Status
	m.PaymentStatus = inv.PaymentStatus
	m.Notes = inv.Notes
	m.Removed = inv.Removed
}

// CashTransactionModel is the persistence model for the CashTransaction
// domain entity.
type CashTransactionModel struct {
	AuditedAggregateModel
	Type            billing.TransactionType `gorm:"type:varchar(10);not null;index"`
	Amount          decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Currency        string                  `gorm:"type:varchar(3);not null"`
	Date            time.Time               `gorm:"not null;index"`
	PartyType       billing.PartyType       `gorm:"type:varchar(10);not null"`
	ClientID        *uuid.UUID              `gorm:"type:uuid;index"`
	SupplierID      *uuid.UUID              `gorm:"type:uuid;index"`
	InvoiceID       *uuid.UUID              `gorm:"type:uuid;index"`
	AppliedInvoices billing.AppliedInvoices `gorm:"type:jsonb;not null;default:'[]'"`
	Reference       string                  `gorm:"type:varchar(100);index"`
	Description     string                  `gorm:"type:text"`
	Enabled         bool                    `gorm:"not null;default:true"`
	Removed         bool                    `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (CashTransactionModel) TableName() string {
	return "cash_transactions"
}

// ToDomain converts the persistence model to a domain CashTransaction entity.
func (m *CashTransactionModel) ToDomain() *billing.CashTransaction {
	return &billing.CashTransaction{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		Type:                 m.Type,
		Amount:               m.Amount,
		Currency:             m.Currency,
		Date:                 m.Date,
		PartyType:            m.PartyType,
		ClientID:             m.ClientID,
		SupplierID:           m.SupplierID,
		InvoiceID:            m.InvoiceID,
		AppliedInvoices:      m.AppliedInvoices,
		Reference:            m.Reference,
		Description:          m.Description,
		Enabled:              m.Enabled,
		Removed:              m.Removed,
	}
}

// FromDomain populates the persistence model from a domain CashTransaction.
func (m *CashTransactionModel) FromDomain(ct *billing.CashTransaction) {
	m.FromDomainAuditedAggregateRoot(ct.AuditedAggregateRoot)
	m.Type = ct.Type
	m.Amount = ct.Amount
	m.Currency = ct.Currency
	m.Date = ct.Date
	m.PartyType = ct.PartyType
	m.ClientID = ct.ClientID
	m.SupplierID = ct.SupplierID
	m.InvoiceID = ct.InvoiceID
	m.AppliedInvoices = ct.AppliedInvoices
	m.Reference = ct.Reference
	m.Description = ct.Description
	m.Enabled = ct.Enabled
	m.Removed = ct.Removed
}
