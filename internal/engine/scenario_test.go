package engine

import (
	"testing"

	"zerosum/internal/models"
)

func baseForecast() CashFlowForecast {
	f := CashFlowForecast{Start: "2024-06", Mode: ForecastPlannedOnly, LiquidCashNow: 100000}
	for i := 1; i <= 3; i++ {
		f.Months = append(f.Months, ForecastMonth{
			Month:    AddMonths("2024-06", i),
			Income:   10000,
			Outflows: map[uint]int64{1: 4000, 0: 1000},
			Outflow:  5000,
			Net:      5000,
		})
	}
	cash := f.LiquidCashNow
	for i := range f.Months {
		cash += f.Months[i].Net
		f.Months[i].EndingCash = cash
	}
	return f
}

func TestApplyScenario(t *testing.T) {
	t.Run("percentages_compound_on_the_running_value", func(t *testing.T) {
		scn := &models.Scenario{
			Name: "raises",
			Adjustments: []models.ScenarioAdjustment{
				{Type: models.AdjustmentPercentage, Percent: 10},
				{Type: models.AdjustmentPercentage, Percent: 10},
			},
		}
		out, err := ApplyScenario(baseForecast(), scn)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 10000 * 1.1 * 1.1 = 12100, not 12000.
		if got := out.Months[0].Income; got != 12100 {
			t.Errorf("expected compounded income 12100, got %d", got)
		}
	})

	t.Run("category_adjustment_targets_one_outflow", func(t *testing.T) {
		cat := uint(1)
		scn := &models.Scenario{
			Name: "downsizing",
			Adjustments: []models.ScenarioAdjustment{
				{CategoryID: &cat, Type: models.AdjustmentFixed, Amount: -1500},
			},
		}
		out, err := ApplyScenario(baseForecast(), scn)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		fm := out.Months[0]
		if fm.Outflows[1] != 2500 {
			t.Errorf("category 1: expected 2500, got %d", fm.Outflows[1])
		}
		if fm.Outflows[0] != 1000 {
			t.Errorf("category 0 should be untouched, got %d", fm.Outflows[0])
		}
		if fm.Net != 6500 {
			t.Errorf("net: expected 6500, got %d", fm.Net)
		}
	})

	t.Run("window_bounds_are_inclusive", func(t *testing.T) {
		start := models.Month("2024-07")
		end := models.Month("2024-08")
		scn := &models.Scenario{
			Name: "summer_cut",
			Adjustments: []models.ScenarioAdjustment{
				{Type: models.AdjustmentPercentage, Percent: -50, StartMonth: &start, EndMonth: &end},
			},
		}
		out, err := ApplyScenario(baseForecast(), scn)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Months[0].Income != 5000 {
			t.Errorf("july at window start: expected 5000, got %d", out.Months[0].Income)
		}
		if out.Months[1].Income != 5000 {
			t.Errorf("august at window end: expected 5000, got %d", out.Months[1].Income)
		}
		if out.Months[2].Income != 10000 {
			t.Errorf("september after window: expected 10000, got %d", out.Months[2].Income)
		}
	})

	t.Run("rejects_window_start_at_or_past_end", func(t *testing.T) {
		start := models.Month("2024-08")
		for _, end := range []models.Month{"2024-08", "2024-07"} {
			e := end
			scn := &models.Scenario{
				Name: "bad_window",
				Adjustments: []models.ScenarioAdjustment{
					{Type: models.AdjustmentPercentage, Percent: -50, StartMonth: &start, EndMonth: &e},
				},
			}
			if _, err := ApplyScenario(baseForecast(), scn); err == nil {
				t.Errorf("window %s..%s should be rejected", start, end)
			}
		}
	})

	t.Run("default_start_is_month_after_baseline", func(t *testing.T) {
		scn := &models.Scenario{
			Name: "cut",
			Adjustments: []models.ScenarioAdjustment{
				{Type: models.AdjustmentPercentage, Percent: -10},
			},
		}
		out, err := ApplyScenario(baseForecast(), scn)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// The first projected month (2024-07) is already in scope.
		if out.Months[0].Income != 9000 {
			t.Errorf("expected first projected month adjusted, got %d", out.Months[0].Income)
		}
	})

	t.Run("shocks_apply_after_adjustments", func(t *testing.T) {
		scn := &models.Scenario{
			Name: "stress",
			Adjustments: []models.ScenarioAdjustment{
				{Type: models.AdjustmentFixed, Amount: 2000},
			},
			Shocks: []models.ScenarioShock{{Name: "job_loss"}},
		}
		out, err := ApplyScenario(baseForecast(), scn)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// (10000 + 2000) halved, not 10000 halved plus 2000.
		if got := out.Months[0].Income; got != 6000 {
			t.Errorf("expected 6000, got %d", got)
		}
	})

	t.Run("unknown_shock_is_an_error", func(t *testing.T) {
		scn := &models.Scenario{Name: "bad", Shocks: []models.ScenarioShock{{Name: "asteroid"}}}
		if _, err := ApplyScenario(baseForecast(), scn); err == nil {
			t.Fatal("expected error for unknown shock template")
		}
	})

	t.Run("inverted_window_is_an_error", func(t *testing.T) {
		start := models.Month("2024-09")
		end := models.Month("2024-07")
		scn := &models.Scenario{
			Name: "bad",
			Adjustments: []models.ScenarioAdjustment{
				{Type: models.AdjustmentPercentage, Percent: 5, StartMonth: &start, EndMonth: &end},
			},
		}
		if _, err := ApplyScenario(baseForecast(), scn); err == nil {
			t.Fatal("expected error for start after end")
		}
	})

	t.Run("baseline_is_not_mutated", func(t *testing.T) {
		base := baseForecast()
		scn := &models.Scenario{
			Name:   "stress",
			Shocks: []models.ScenarioShock{{Name: "inflation_spike"}},
		}
		if _, err := ApplyScenario(base, scn); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if base.Months[0].Outflows[1] != 4000 {
			t.Errorf("baseline outflow changed to %d", base.Months[0].Outflows[1])
		}
	})
}

func TestCompareScenarios(t *testing.T) {
	mild := &models.Scenario{
		Name: "mild",
		Adjustments: []models.ScenarioAdjustment{
			{Type: models.AdjustmentPercentage, Percent: -5},
		},
	}
	stress := &models.Scenario{
		Name:   "stress",
		Shocks: []models.ScenarioShock{{Name: "job_loss"}},
	}
	names := map[uint]string{1: "Groceries"}

	cmp, err := CompareScenarios(baseForecast(), []*models.Scenario{mild, stress}, names)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.Horizon != 3 {
		t.Errorf("horizon: expected 3, got %d", cmp.Horizon)
	}

	t.Run("diffs_horizon_totals", func(t *testing.T) {
		var income *ComparisonRow
		for i := range cmp.Rows {
			if cmp.Rows[i].Label == "income" {
				income = &cmp.Rows[i]
			}
		}
		if income == nil {
			t.Fatal("expected an income row")
		}
		if income.Base != 30000 {
			t.Errorf("base income: expected 30000, got %d", income.Base)
		}
		if income.Values["stress"] != 15000 {
			t.Errorf("stress income: expected 15000, got %d", income.Values["stress"])
		}
		if income.Deltas["stress"] != -15000 {
			t.Errorf("stress delta: expected -15000, got %d", income.Deltas["stress"])
		}
		if income.Deltas["mild"] != -1500 {
			t.Errorf("mild delta: expected -1500, got %d", income.Deltas["mild"])
		}
	})

	t.Run("rows_sorted_by_stress_impact", func(t *testing.T) {
		if cmp.Rows[0].Label != "income" {
			t.Errorf("expected income (largest stress delta) first, got %q", cmp.Rows[0].Label)
		}
		last := abs(cmp.Rows[0].Deltas["stress"])
		for _, row := range cmp.Rows[1:] {
			d := abs(row.Deltas["stress"])
			if d > last {
				t.Fatalf("rows not ordered by descending stress delta")
			}
			last = d
		}
	})

	t.Run("uncategorized_bucket_labeled", func(t *testing.T) {
		found := false
		for _, row := range cmp.Rows {
			if row.Label == "uncategorized" {
				found = true
			}
		}
		if !found {
			t.Error("expected an uncategorized row for key 0 outflows")
		}
	})
}
