package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodOf(t *testing.T) {
	p := PeriodOf(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, Period{Year: 2024, Month: 3}, p)
}

func TestPeriodBounds(t *testing.T) {
	from, to := Period{Year: 2024, Month: 12}.Bounds()
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestPeriodString(t *testing.T) {
	assert.Equal(t, "2024-03", Period{Year: 2024, Month: 3}.String())
}

func TestPeriodsOf(t *testing.T) {
	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	jan20 := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	feb15 := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, []Period{{2024, 1}}, PeriodsOf([]time.Time{jan15, jan20}))
	assert.Equal(t, []Period{{2024, 1}, {2024, 2}}, PeriodsOf([]time.Time{jan15, feb15}))
	assert.Empty(t, PeriodsOf(nil))
}
