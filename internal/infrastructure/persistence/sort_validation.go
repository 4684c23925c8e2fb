package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort direction to asc
// or desc. Returns "desc" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToLower(strings.TrimSpace(orderDir))
	if normalized == "asc" {
		return "asc"
	}
	return "desc"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// columns. Returns the defaultField if the input is empty or not whitelisted.
// Column names reach the SQL text verbatim, so nothing outside the
// whitelist may pass.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Per-entity column whitelists. These gate both ORDER BY targets and the
// columns equality filters may reference.

// ClientSortFields contains allowed sort and filter columns for clients
var ClientSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"phone":      true,
	"country":    true,
	"enabled":    true,
	"removed":    true,
}

// SupplierSortFields contains allowed sort and filter columns for suppliers
var SupplierSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"phone":      true,
	"country":    true,
	"enabled":    true,
	"removed":    true,
}

// InvoiceSortFields contains allowed sort and filter columns for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"number":         true,
	"year":           true,
	"client_id":      true,
	"date":           true,
	"expired_date":   true,
	"total":          true,
	"credit":         true,
	"currency":       true,
	"status":         true,
	"payment_status": true,
}

// CashTransactionSortFields contains allowed sort and filter columns for
// cash transactions
var CashTransactionSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"type":        true,
	"amount":      true,
	"currency":    true,
	"date":        true,
	"party_type":  true,
	"client_id":   true,
	"supplier_id": true,
	"invoice_id":  true,
	"reference":   true,
}

// PurchaseSortFields contains allowed sort and filter columns for purchases
var PurchaseSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"number":         true,
	"year":           true,
	"supplier_id":    true,
	"date":           true,
	"total":          true,
	"credit":         true,
	"currency":       true,
	"payment_status": true,
}

// ReturnExchangeSortFields contains allowed sort and filter columns for
// return/exchange records
var ReturnExchangeSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"number":           true,
	"year":             true,
	"type":             true,
	"date":             true,
	"client_id":        true,
	"price_difference": true,
	"currency":         true,
	"status":           true,
}

// InventorySortFields contains allowed sort and filter columns for
// inventory items
var InventorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"product":    true,
	"sku":        true,
	"quantity":   true,
	"unit_price": true,
	"currency":   true,
	"enabled":    true,
}
