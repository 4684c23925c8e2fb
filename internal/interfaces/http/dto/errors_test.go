package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================
// GetHTTPStatus
// ============================================================

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found maps to 404", ErrCodeNotFound, http.StatusNotFound},
		{"validation maps to 400", ErrCodeValidation, http.StatusBadRequest},
		{"invalid state maps to 422", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"concurrency conflict maps to 409", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"unauthorized maps to 401", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"unknown code falls back to 500", "ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

// ============================================================
// NormalizeErrorCode
// ============================================================

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name       string
		domainCode string
		want       string
	}{
		{"not found", "NOT_FOUND", ErrCodeNotFound},
		{"invalid amount is a validation error", "INVALID_AMOUNT", ErrCodeValidation},
		{"allocation overflow is a business rule", "ALLOCATION_OVERFLOW", ErrCodeBusinessRule},
		{"invalid date range is a bad request", "INVALID_DATE_RANGE", ErrCodeBadRequest},
		{"unmapped code normalizes to unknown", "SOMETHING_NEW", ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.domainCode))
		})
	}
}

// ============================================================
// Response constructors
// ============================================================

func TestNewSuccessResponseWithPagination(t *testing.T) {
	t.Run("computes total pages with a partial last page", func(t *testing.T) {
		resp := NewSuccessResponseWithPagination([]int{1, 2, 3}, 45, 1, 20)

		assert.True(t, resp.Success)
		assert.Equal(t, int64(45), resp.Pagination.Total)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
	})

	t.Run("guards against a zero page size", func(t *testing.T) {
		resp := NewSuccessResponseWithPagination(nil, 10, 1, 0)

		assert.Equal(t, 20, resp.Pagination.PageSize)
	})
}
