package engine

import (
	"time"

	"zerosum/internal/models"
)

const monthLayout = "2006-01"

// MonthOf returns the YYYY-MM bucket a timestamp falls in.
func MonthOf(t time.Time) models.Month {
	return t.Format(monthLayout)
}

// AddMonths shifts a month key by n months (n may be negative).
// A malformed key is returned unchanged; callers validate keys at the edge.
func AddMonths(m models.Month, n int) models.Month {
	t, err := time.Parse(monthLayout, m)
	if err != nil {
		return m
	}
	return t.AddDate(0, n, 0).Format(monthLayout)
}

// NextMonth returns the month after m.
func NextMonth(m models.Month) models.Month { return AddMonths(m, 1) }

// PrevMonth returns the month before m.
func PrevMonth(m models.Month) models.Month { return AddMonths(m, -1) }

// MonthsBetween returns the signed number of months from a to b
// (zero when equal, positive when b is later).
func MonthsBetween(a, b models.Month) int {
	ta, errA := time.Parse(monthLayout, a)
	tb, errB := time.Parse(monthLayout, b)
	if errA != nil || errB != nil {
		return 0
	}
	return (tb.Year()-ta.Year())*12 + int(tb.Month()) - int(ta.Month())
}

// MonthRange returns the inclusive sequence of months from first to last.
// Returns nil when last precedes first.
func MonthRange(first, last models.Month) []models.Month {
	n := MonthsBetween(first, last)
	if n < 0 || first > last {
		return nil
	}
	out := make([]models.Month, 0, n+1)
	for m := first; m <= last; m = NextMonth(m) {
		out = append(out, m)
	}
	return out
}
