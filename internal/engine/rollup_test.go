package engine

import (
	"testing"

	"zerosum/internal/models"
)

func TestRollupGroup(t *testing.T) {
	snap := &Snapshot{
		Groups: []models.CategoryGroup{
			{Base: models.Base{ID: 1}, Name: "Essentials"},
			{Base: models.Base{ID: 2}, Name: "Lifestyle"},
		},
		Categories: []models.Category{
			testCategory(1, 1, "Rent", models.RolloverReturn, models.RolloverReduceTA),
			testCategory(2, 1, "Utilities", models.RolloverCarry, models.RolloverReduceTA),
			testCategory(3, 2, "Dining", models.RolloverReturn, models.RolloverIgnore),
		},
		Entries: []models.BudgetEntry{
			testEntry(1, "2024-06", 120000),
			testEntry(2, "2024-06", 8000),
			testEntry(3, "2024-06", 15000),
		},
		Transactions: []models.Transaction{
			testOutflow(1, mid("2024-06", 1), 120000),
			testOutflow(2, mid("2024-06", 12), 9500),
		},
		Bills: []models.Bill{
			{Base: models.Base{ID: 1}, Name: "Rent", Amount: 120000, Cadence: models.CadenceMonthly, NextDue: mid("2024-06", 1), CategoryID: 1},
			{Base: models.Base{ID: 2}, Name: "Electric", Amount: 9000, Cadence: models.CadenceMonthly, NextDue: mid("2024-06", 12), CategoryID: 2},
		},
	}

	t.Run("sums_member_ledgers", func(t *testing.T) {
		rollup := RollupGroup(snap, 1, "2024-06")
		if rollup.Name != "Essentials" {
			t.Errorf("expected group name Essentials, got %q", rollup.Name)
		}
		if rollup.Assigned != 128000 {
			t.Errorf("assigned: expected 128000, got %d", rollup.Assigned)
		}
		if rollup.Spent != 129500 {
			t.Errorf("spent: expected 129500, got %d", rollup.Spent)
		}
		if rollup.Available != -1500 {
			t.Errorf("available: expected -1500, got %d", rollup.Available)
		}
		if len(rollup.Categories) != 2 {
			t.Fatalf("expected 2 member categories, got %d", len(rollup.Categories))
		}
	})

	t.Run("min_required_from_bills_due_in_month", func(t *testing.T) {
		rollup := RollupGroup(snap, 1, "2024-06")
		if rollup.MinRequired != 129000 {
			t.Errorf("min required: expected 129000, got %d", rollup.MinRequired)
		}
		if rollup.Shortfall != 1000 {
			t.Errorf("shortfall: expected 1000, got %d", rollup.Shortfall)
		}
	})

	t.Run("shortfall_never_negative", func(t *testing.T) {
		rollup := RollupGroup(snap, 2, "2024-06")
		if rollup.MinRequired != 0 {
			t.Errorf("min required: expected 0, got %d", rollup.MinRequired)
		}
		if rollup.Shortfall != 0 {
			t.Errorf("shortfall: expected 0, got %d", rollup.Shortfall)
		}
	})

	t.Run("unknown_group_is_empty", func(t *testing.T) {
		rollup := RollupGroup(snap, 99, "2024-06")
		if rollup.Name != "" || rollup.Assigned != 0 || len(rollup.Categories) != 0 {
			t.Errorf("expected zero-valued rollup, got %+v", rollup)
		}
	})
}
