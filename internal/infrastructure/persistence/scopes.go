package persistence

import (
	"fmt"
	"strings"

	"github.com/bizadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies search, equality, date range, ordering and
// pagination from a shared.Filter. dateColumn names the column the
// DateFrom/DateTo bounds apply to; empty disables range filtering.
// columns whitelists what OrderBy and Equal keys may reference, since
// both end up in the SQL text rather than in bind parameters.
func applyFilter(db *gorm.DB, filter shared.Filter, dateColumn string, columns map[string]bool) *gorm.DB {
	db = applyFilterWithoutPagination(db, filter, dateColumn, columns)

	orderBy := ValidateSortField(filter.OrderBy, columns, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	db = db.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return db.Offset(filter.Offset()).Limit(filter.Limit())
}

// applyFilterWithoutPagination is used by Count queries, which must see
// the same conditions but no limit or ordering.
func applyFilterWithoutPagination(db *gorm.DB, filter shared.Filter, dateColumn string, columns map[string]bool) *gorm.DB {
	if filter.Query != "" && len(filter.SearchFields) > 0 {
		pattern := "%" + filter.Query + "%"
		conditions := make([]string, 0, len(filter.SearchFields))
		args := make([]interface{}, 0, len(filter.SearchFields))
		for _, field := range filter.SearchFields {
			conditions = append(conditions, fmt.Sprintf("%s ILIKE ?", field))
			args = append(args, pattern)
		}
		db = db.Where(strings.Join(conditions, " OR "), args...)
	}

	for column, value := range filter.Equal {
		if !columns[column] {
			continue
		}
		db = db.Where(fmt.Sprintf("%s = ?", column), value)
	}

	if dateColumn != "" {
		if filter.DateFrom != nil {
			db = db.Where(fmt.Sprintf("%s >= ?", dateColumn), *filter.DateFrom)
		}
		if filter.DateTo != nil {
			db = db.Where(fmt.Sprintf("%s <= ?", dateColumn), *filter.DateTo)
		}
	}

	return db
}
