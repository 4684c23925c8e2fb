package catalog

import (
	"strings"
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryItem is a product the business stocks and sells
type InventoryItem struct {
	shared.AuditedAggregateRoot
	Product     string          `json:"product"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Currency    string          `json:"currency"`
	Enabled     bool            `json:"enabled"`
	Removed     bool            `json:"removed"`
}

// NewInventoryItem creates a new inventory item
func NewInventoryItem(product, sku, description string, quantity, unitPrice decimal.Decimal, currency string) (*InventoryItem, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if quantity.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if unitPrice.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}

	return &InventoryItem{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(nil),
		Product:              product,
		SKU:                  sku,
		Description:          description,
		Quantity:             quantity,
		UnitPrice:            unitPrice,
		Currency:             strings.ToUpper(currency),
		Enabled:              true,
	}, nil
}

// UpdateDetails changes the item's descriptive fields and pricing
func (i *InventoryItem) UpdateDetails(product, sku, description string, unitPrice decimal.Decimal) error {
	if i.Removed {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a removed item")
	}
	product = strings.TrimSpace(product)
	if product == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if unitPrice.LessThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	i.Product = product
	i.SKU = sku
	i.Description = description
	i.UnitPrice = unitPrice
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// AdjustQuantity changes stock by a signed delta, rejecting negative results
func (i *InventoryItem) AdjustQuantity(delta decimal.Decimal) error {
	if i.Removed {
		return shared.NewDomainError("INVALID_STATE", "Cannot adjust a removed item")
	}
	next := i.Quantity.Add(delta)
	if next.LessThan(decimal.Zero) {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Quantity cannot go below zero")
	}

	i.Quantity = next
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// MarkRemoved soft-deletes the item
func (i *InventoryItem) MarkRemoved() error {
	if i.Removed {
		return shared.NewDomainError("INVALID_STATE", "Item is already removed")
	}
	i.Removed = true
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}
