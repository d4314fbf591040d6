package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthPeriod(t *testing.T) {
	cases := []struct {
		month      string
		year       int
		start, end string
	}{
		{"ENERO", 2026, "2026-01-01", "2026-01-31"},
		{"FEBRERO", 2026, "2026-02-01", "2026-02-28"},
		{"FEBRERO", 2028, "2028-02-01", "2028-02-29"}, // leap year
		{"ABRIL", 2026, "2026-04-01", "2026-04-30"},
		{"DICIEMBRE", 2026, "2026-12-01", "2026-12-31"},
		{"marzo", 2026, "2026-03-01", "2026-03-31"}, // case-insensitive
	}

	for _, tc := range cases {
		start, end, err := MonthPeriod(tc.month, tc.year)
		require.NoError(t, err, "month %s", tc.month)
		assert.Equal(t, tc.start, start)
		assert.Equal(t, tc.end, end)
	}
}

func TestMonthPeriodUnknownMonth(t *testing.T) {
	_, _, err := MonthPeriod("MARCH", 2026)
	assert.Error(t, err)
}
