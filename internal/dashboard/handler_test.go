package dashboard

import (
	"testing"
	"time"

	"backoffice-backend/internal/summary"
	"backoffice-backend/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeRequestValidation(t *testing.T) {
	ok := RecomputeRequest{Year: 2024, Month: 3, Group: "sales"}
	assert.NoError(t, validation.Struct(&ok))

	cases := []struct {
		name string
		body RecomputeRequest
	}{
		{"missing group", RecomputeRequest{Year: 2024, Month: 3}},
		{"unknown group", RecomputeRequest{Year: 2024, Month: 3, Group: "inventory"}},
		{"month too large", RecomputeRequest{Year: 2024, Month: 13, Group: "payroll"}},
		{"year too small", RecomputeRequest{Year: 1999, Month: 3, Group: "operating"}},
	}
	for _, tc := range cases {
		assert.Error(t, validation.Struct(&tc.body), tc.name)
	}
}

func TestChartPeriodsAnchorsToFirstOfMonth(t *testing.T) {
	// day 31 steps back through April (30 days) without skipping it
	now := time.Date(2026, 5, 31, 12, 0, 0, 0, time.UTC)
	got := chartPeriods(now, 3)
	assert.Equal(t, []summary.Period{
		{Year: 2026, Month: 3},
		{Year: 2026, Month: 4},
		{Year: 2026, Month: 5},
	}, got)
}

func TestChartPeriodsCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	got := chartPeriods(now, 3)
	assert.Equal(t, []summary.Period{
		{Year: 2025, Month: 11},
		{Year: 2025, Month: 12},
		{Year: 2026, Month: 1},
	}, got)
}

func TestChartPeriodsNoDuplicates(t *testing.T) {
	// every end-of-month day over a full year yields distinct buckets
	for m := time.January; m <= time.December; m++ {
		first := time.Date(2026, m, 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		got := chartPeriods(last, 12)

		seen := map[summary.Period]bool{}
		for _, p := range got {
			assert.False(t, seen[p], "duplicate bucket %s for now=%s", p, last.Format("2006-01-02"))
			seen[p] = true
		}
		assert.Len(t, got, 12)
		assert.Equal(t, summary.PeriodOf(last), got[len(got)-1])
	}
}
