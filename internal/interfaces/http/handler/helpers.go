package handler

import (
	"time"

	"github.com/bizadmin/backend/internal/domain/billing"
	"github.com/bizadmin/backend/internal/domain/shared"
	"github.com/bizadmin/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// periodFromQuery reads the summary window from the type query
// parameter, with period accepted as an alias. An absent parameter
// means a month window; a present but unknown value passes through so
// the service rejects it.
func periodFromQuery(c *gin.Context) billing.Period {
	raw := c.Query("type")
	if raw == "" {
		raw = c.Query("period")
	}
	if raw == "" {
		return billing.PeriodMonth
	}
	return billing.Period(raw)
}

// dateLayouts are the accepted query-parameter date formats
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDateParam parses a date query parameter, returning nil when the
// parameter is absent and false when it is present but malformed
func parseDateParam(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// buildFilter converts list query parameters into a repository filter.
// searchFields names the columns free-text search applies to.
func buildFilter(c *gin.Context, searchFields ...string) (shared.Filter, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	if req.Search != "" {
		filter.Query = req.Search
		filter.SearchFields = searchFields
	}

	if from, ok := parseDateParam(c, "startDate"); ok {
		filter.DateFrom = from
	}
	if to, ok := parseDateParam(c, "endDate"); ok {
		filter.DateTo = to
	}

	return filter, nil
}
