package services

import (
	"testing"
	"time"

	"zerosum/internal/engine"
	"zerosum/internal/models"
	"zerosum/internal/testutil"
)

func TestCreateScenario(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScenarioService(db, 12)

		scenario, err := svc.CreateScenario("tighter belt", []AdjustmentInput{
			{Type: models.AdjustmentPercentage, Percent: -10},
		}, []string{"inflation_spike"})
		testutil.AssertNoError(t, err)

		if scenario.ID == 0 {
			t.Fatal("expected non-zero scenario ID")
		}
		if len(scenario.Adjustments) != 1 || len(scenario.Shocks) != 1 {
			t.Errorf("expected 1 adjustment and 1 shock, got %d and %d", len(scenario.Adjustments), len(scenario.Shocks))
		}
	})

	t.Run("rejects_unknown_shock", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScenarioService(db, 12)

		_, err := svc.CreateScenario("bad", nil, []string{"asteroid"})
		testutil.AssertAppError(t, err, "UNKNOWN_SHOCK")
	})

	t.Run("rejects_inverted_window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScenarioService(db, 12)

		start := models.Month("2024-09")
		end := models.Month("2024-07")
		_, err := svc.CreateScenario("bad", []AdjustmentInput{
			{Type: models.AdjustmentPercentage, Percent: 5, StartMonth: &start, EndMonth: &end},
		}, nil)
		testutil.AssertAppError(t, err, "INVALID_ADJUSTMENT")
	})

	t.Run("rejects_empty_scenario", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScenarioService(db, 12)

		_, err := svc.CreateScenario("empty", nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestForecastScenario(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("adjusts_income_without_touching_plan", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScenarioService(db, 12)
		testutil.CreateTestIncomeSource(t, db, 400000)

		scenario, err := svc.CreateScenario("pay cut", nil, []string{"pay_cut"})
		testutil.AssertNoError(t, err)

		forecast, err := svc.ForecastScenario(scenario.ID, engine.ForecastPlannedOnly, 3, asOf)
		testutil.AssertNoError(t, err)

		if len(forecast.Months) != 3 {
			t.Fatalf("expected 3 months, got %d", len(forecast.Months))
		}
		testutil.AssertCents(t, "adjusted income", forecast.Months[0].Income, 340000)

		var count int64
		db.Model(&models.BudgetEntry{}).Count(&count)
		if count != 0 {
			t.Error("forecasting a scenario must not write budget entries")
		}
	})

	t.Run("unknown_scenario", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScenarioService(db, 12)

		_, err := svc.ForecastScenario(9999, engine.ForecastPlannedOnly, 3, asOf)
		testutil.AssertAppError(t, err, "SCENARIO_NOT_FOUND")
	})
}

func TestApplyToPlan(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("requires_confirmation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScenarioService(db, 3)
		group := testutil.CreateTestGroup(t, db)
		cat := testutil.CreateTestCategory(t, db, group.ID)

		scenario, err := svc.CreateScenario("raise", []AdjustmentInput{
			{CategoryID: &cat.ID, Type: models.AdjustmentPercentage, Percent: 50},
		}, nil)
		testutil.AssertNoError(t, err)

		_, err = svc.ApplyToPlan(scenario.ID, "2024-07", false, asOf)
		testutil.AssertAppError(t, err, "APPLY_NOT_CONFIRMED")
	})

	t.Run("refuses_current_and_past_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScenarioService(db, 3)
		group := testutil.CreateTestGroup(t, db)
		cat := testutil.CreateTestCategory(t, db, group.ID)

		scenario, err := svc.CreateScenario("raise", []AdjustmentInput{
			{CategoryID: &cat.ID, Type: models.AdjustmentPercentage, Percent: 50},
		}, nil)
		testutil.AssertNoError(t, err)

		_, err = svc.ApplyToPlan(scenario.ID, "2024-06", true, asOf)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rewrites_future_entries_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScenarioService(db, 3)
		group := testutil.CreateTestGroup(t, db)
		cat := testutil.CreateTestCategory(t, db, group.ID)
		testutil.CreateTestEntry(t, db, cat.ID, "2024-06", 10000)
		testutil.CreateTestEntry(t, db, cat.ID, "2024-07", 10000)

		scenario, err := svc.CreateScenario("raise", []AdjustmentInput{
			{CategoryID: &cat.ID, Type: models.AdjustmentPercentage, Percent: 50},
		}, nil)
		testutil.AssertNoError(t, err)

		updated, err := svc.ApplyToPlan(scenario.ID, "2024-07", true, asOf)
		testutil.AssertNoError(t, err)
		if len(updated) == 0 {
			t.Fatal("expected rewritten entries")
		}

		var july, june models.BudgetEntry
		db.Where("category_id = ? AND month = ?", cat.ID, "2024-07").First(&july)
		db.Where("category_id = ? AND month = ?", cat.ID, "2024-06").First(&june)
		testutil.AssertCents(t, "july assigned", july.Assigned, 15000)
		testutil.AssertCents(t, "june assigned untouched", june.Assigned, 10000)
	})

	t.Run("income_adjustments_are_skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScenarioService(db, 3)

		scenario, err := svc.CreateScenario("pay cut", []AdjustmentInput{
			{Type: models.AdjustmentPercentage, Percent: -20},
		}, nil)
		testutil.AssertNoError(t, err)

		updated, err := svc.ApplyToPlan(scenario.ID, "2024-07", true, asOf)
		testutil.AssertNoError(t, err)
		if len(updated) != 0 {
			t.Errorf("income adjustments have no entries to rewrite, got %d", len(updated))
		}
	})
}
