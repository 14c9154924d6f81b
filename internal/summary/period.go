package summary

import (
	"fmt"
	"time"
)

// Period - one (year, month) key of the monthly_summaries table
type Period struct {
	Year  int
	Month int
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Bounds returns the half-open UTC range [first of month, first of next month).
// Aggregators filter on the record's own date column with this range, so a
// record that moves to another month always counts in its current month.
func (p Period) Bounds() (time.Time, time.Time) {
	from := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// PeriodsOf collapses a mutation's affected dates into distinct periods.
// A same-month edit yields one period, a cross-month date move yields two.
func PeriodsOf(dates []time.Time) []Period {
	seen := make(map[Period]bool, 2)
	periods := make([]Period, 0, 2)
	for _, d := range dates {
		p := PeriodOf(d)
		if !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
	}
	return periods
}
