package engine

import (
	"testing"
	"time"
)

func TestMonthArithmetic(t *testing.T) {
	t.Run("next_and_prev", func(t *testing.T) {
		if got := NextMonth("2024-12"); got != "2025-01" {
			t.Errorf("expected 2025-01, got %s", got)
		}
		if got := PrevMonth("2024-01"); got != "2023-12" {
			t.Errorf("expected 2023-12, got %s", got)
		}
	})

	t.Run("lexicographic_order_is_chronological", func(t *testing.T) {
		if !("2024-09" < "2024-10") {
			t.Error("expected 2024-09 < 2024-10")
		}
		if !("2024-12" < "2025-01") {
			t.Error("expected 2024-12 < 2025-01")
		}
	})

	t.Run("months_between", func(t *testing.T) {
		if got := MonthsBetween("2024-01", "2024-07"); got != 6 {
			t.Errorf("expected 6, got %d", got)
		}
		if got := MonthsBetween("2024-07", "2024-01"); got != -6 {
			t.Errorf("expected -6, got %d", got)
		}
		if got := MonthsBetween("2023-11", "2024-02"); got != 3 {
			t.Errorf("expected 3, got %d", got)
		}
	})

	t.Run("month_range", func(t *testing.T) {
		months := MonthRange("2024-11", "2025-02")
		want := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
		if len(months) != len(want) {
			t.Fatalf("expected %d months, got %d", len(want), len(months))
		}
		for i := range want {
			if months[i] != want[i] {
				t.Errorf("index %d: expected %s, got %s", i, want[i], months[i])
			}
		}
		if got := MonthRange("2024-05", "2024-04"); got != nil {
			t.Errorf("expected nil for inverted range, got %v", got)
		}
	})

	t.Run("month_of", func(t *testing.T) {
		ts := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
		if got := MonthOf(ts); got != "2024-06" {
			t.Errorf("expected 2024-06, got %s", got)
		}
	})
}
