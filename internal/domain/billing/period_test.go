package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod_IsValid(t *testing.T) {
	tests := []struct {
		period  Period
		isValid bool
	}{
		{PeriodWeek, true},
		{PeriodMonth, true},
		{PeriodYear, true},
		{Period("day"), false},
		{Period(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.period.IsValid())
		})
	}
}

func TestPeriod_Bounds(t *testing.T) {
	// Wednesday 2026-08-26
	ref := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

	t.Run("week starts on Monday", func(t *testing.T) {
		start, end, err := PeriodWeek.Bounds(ref)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("Sunday belongs to the preceding Monday's week", func(t *testing.T) {
		sunday := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
		start, _, err := PeriodWeek.Bounds(sunday)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("month", func(t *testing.T) {
		start, end, err := PeriodMonth.Bounds(ref)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("year", func(t *testing.T) {
		start, end, err := PeriodYear.Bounds(ref)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("invalid period", func(t *testing.T) {
		_, _, err := Period("quarter").Bounds(ref)
		assert.Error(t, err)
	})
}
