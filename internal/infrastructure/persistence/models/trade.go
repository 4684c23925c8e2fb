package models

import (
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseModel is the persistence model for the Purchase domain entity.
type PurchaseModel struct {
	AuditedAggregateModel
	Number        int                   `gorm:"not null;uniqueIndex:idx_purchase_number_year,priority:1"`
	Year          int                   `gorm:"not null;uniqueIndex:idx_purchase_number_year,priority:2"`
	SupplierID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	Date          time.Time             `gorm:"not null;index"`
	Total         decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Credit        decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Currency      string                `gorm:"type:varchar(3);not null"`
	PaymentStatus billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid';index"`
	Notes         string                `gorm:"type:text"`
	Removed       bool                  `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase entity.
func (m *PurchaseModel) ToDomain() *trade.Purchase {
	return &trade.Purchase{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		Number:               m.Number,
		Year:                 m.Year,
		SupplierID:           m.SupplierID,
		Date:                 m.Date,
		Total:                m.Total,
		Credit:               m.Credit,
		Currency:             m.Currency,
		PaymentStatus:        m.PaymentStatus,
		Notes:                m.Notes,
		Removed:              m.Removed,
	}
}

// FromDomain populates the persistence model from a domain Purchase entity.
func (m *PurchaseModel) FromDomain(p *trade.Purchase) {
	m.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	m.Number = p.Number
	m.Year = p.Year
	m.SupplierID = p.SupplierID
	m.Date = p.Date
	m.Total = p.Total
	m.Credit = p.Credit
	m.Currency = p.Currency
	m.PaymentStatus = p.PaymentStatus
	m.Notes = p.Notes
	m.Removed = p.Removed
}

// ReturnExchangeModel is the persistence model for the ReturnExchange
// domain entity.
type ReturnExchangeModel struct {
	AuditedAggregateModel
	Number          int                        `gorm:"not null;uniqueIndex:idx_return_number_year,priority:1"`
	Year            int                        `gorm:"not null;uniqueIndex:idx_return_number_year,priority:2"`
	Type            trade.ReturnExchangeType   `gorm:"type:varchar(10);not null;index"`
	Date            time.Time                  `gorm:"not null;index"`
	ClientID        uuid.UUID                  `gorm:"type:uuid;not null;index"`
	ReturnedItem    trade.ItemLine             `gorm:"type:jsonb;not null"`
	ExchangedItem   *trade.ItemLine            `gorm:"type:jsonb"`
	PriceDifference decimal.Decimal            `gorm:"type:decimal(18,4);not null;default:0"`
	Currency        string                     `gorm:"type:varchar(3);not null"`
	Reason          string                     `gorm:"type:text"`
	Notes           string                     `gorm:"type:text"`
	Status          trade.ReturnExchangeStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Removed         bool                       `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ReturnExchangeModel) TableName() string {
	return "return_exchanges"
}

// ToDomain converts the persistence model to a domain ReturnExchange entity.
func (m *ReturnExchangeModel) ToDomain() *trade.ReturnExchange {
	return &trade.ReturnExchange{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		Number:               m.Number,
		Year:                 m.Year,
		Type:                 m.Type,
		Date:                 m.Date,
		ClientID:             m.ClientID,
		ReturnedItem:         m.ReturnedItem,
		ExchangedItem:        m.ExchangedItem,
		PriceDifference:      m.PriceDifference,
		Currency:             m.Currency,
		Reason:               m.Reason,
		Notes:                m.Notes,
		Status:               m.Status,
		Removed:              m.Removed,
	}
}

// FromDomain populates the persistence model from a domain ReturnExchange.
func (m *ReturnExchangeModel) FromDomain(re *trade.ReturnExchange) {
	m.FromDomainAuditedAggregateRoot(re.AuditedAggregateRoot)
	m.Number = re.Number
	m.Year = re.Year
	m.Type = re.Type
	m.Date = re.Date
	m.ClientID = re.ClientID
	m.ReturnedItem = re.ReturnedItem
	m.ExchangedItem = re.ExchangedItem
	m.PriceDifference = re.PriceDifference
	m.Currency = re.Currency
	m.Reason = re.Reason
	m.Notes = re.Notes
	m.Status = re.Status
	m.Removed = re.Removed
}
