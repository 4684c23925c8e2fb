package models

import (
	"github.com/bizadmin/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for the InventoryItem
// domain entity.
type InventoryItemModel struct {
	AuditedAggregateModel
	Product     string          `gorm:"type:varchar(200);not null;index"`
	SKU         string          `gorm:"type:varchar(100);index"`
	Description string          `gorm:"type:text"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency    string          `gorm:"type:varchar(3);not null"`
	Enabled     bool            `gorm:"not null;default:true"`
	Removed     bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem entity.
func (m *InventoryItemModel) ToDomain() *catalog.InventoryItem {
	return &catalog.InventoryItem{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		Product:              m.Product,
		SKU:                  m.SKU,
		Description:          m.Description,
		Quantity:             m.Quantity,
		UnitPrice:            m.UnitPrice,
		Currency:             m.Currency,
		Enabled:              m.Enabled,
		Removed:              m.Removed,
	}
}

// FromDomain populates the persistence model from a domain InventoryItem.
func (m *InventoryItemModel) FromDomain(i *catalog.InventoryItem) {
	m.FromDomainAuditedAggregateRoot(i.AuditedAggregateRoot)
	m.Product = i.Product
	m.SKU = i.SKU
	m.Description = i.Description
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.Currency = i.Currency
	m.Enabled = i.Enabled
	m.Removed = i.Removed
}
