package engine

import (
	"testing"
	"time"

	"zerosum/internal/models"
)

func TestComputeRunway(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("unbounded_when_net_non_negative", func(t *testing.T) {
		snap := &Snapshot{
			Accounts: []models.Account{
				{Base: models.Base{ID: 1}, Type: models.AccountTypeChecking, OnBudget: true, Balance: 500000},
			},
			IncomeSources: []models.IncomeSource{
				{Base: models.Base{ID: 1}, Name: "Salary", Amount: 400000, Cadence: models.CadenceMonthly},
			},
			Bills: []models.Bill{
				{Base: models.Base{ID: 1}, Name: "Rent", Amount: 150000, Cadence: models.CadenceMonthly, NextDue: mid("2024-06", 1), CategoryID: 1},
			},
		}
		runway := ComputeRunway(snap, ForecastPlannedOnly, 3, asOf)
		if !runway.Unbounded {
			t.Fatal("expected unbounded runway with positive net")
		}
		if runway.DepletionMonth != nil {
			t.Errorf("expected no depletion month, got %v", *runway.DepletionMonth)
		}
		if runway.IsCritical {
			t.Error("unbounded runway should never be critical")
		}
	})

	t.Run("runway_months_from_liquid_cash_over_burn", func(t *testing.T) {
		snap := &Snapshot{
			Accounts: []models.Account{
				{Base: models.Base{ID: 1}, Type: models.AccountTypeSavings, OnBudget: true, Balance: 900000},
				{Base: models.Base{ID: 2}, Type: models.AccountTypeCredit, OnBudget: true, Balance: -40000},
				{Base: models.Base{ID: 3}, Type: models.AccountTypeChecking, OnBudget: false, Balance: 100000},
			},
			Bills: []models.Bill{
				{Base: models.Base{ID: 1}, Name: "Rent", Amount: 150000, Cadence: models.CadenceMonthly, NextDue: mid("2024-06", 1), CategoryID: 1},
			},
		}
		runway := ComputeRunway(snap, ForecastPlannedOnly, 3, asOf)
		if runway.LiquidCashNow != 900000 {
			t.Errorf("liquid cash: expected 900000 (credit and off-budget excluded), got %d", runway.LiquidCashNow)
		}
		if runway.Unbounded {
			t.Fatal("expected bounded runway with zero income")
		}
		if runway.RunwayMonths != 6.0 {
			t.Errorf("runway: expected 6.0 months, got %v", runway.RunwayMonths)
		}
		if runway.DepletionMonth == nil || *runway.DepletionMonth != "2024-12" {
			t.Errorf("depletion month: expected 2024-12, got %v", runway.DepletionMonth)
		}
		if runway.IsCritical {
			t.Error("6 months of runway should not be critical at a 3-month threshold")
		}
	})

	t.Run("critical_at_or_below_warning_threshold", func(t *testing.T) {
		snap := &Snapshot{
			Accounts: []models.Account{
				{Base: models.Base{ID: 1}, Type: models.AccountTypeChecking, OnBudget: true, Balance: 300000},
			},
			Bills: []models.Bill{
				{Base: models.Base{ID: 1}, Name: "Rent", Amount: 150000, Cadence: models.CadenceMonthly, NextDue: mid("2024-06", 1), CategoryID: 1},
			},
		}
		runway := ComputeRunway(snap, ForecastPlannedOnly, 3, asOf)
		if runway.RunwayMonths != 2.0 {
			t.Errorf("runway: expected 2.0 months, got %v", runway.RunwayMonths)
		}
		if !runway.IsCritical {
			t.Error("2 months of runway should be critical at a 3-month threshold")
		}
	})

	t.Run("planned_plus_average_never_forecasts_income_below_plan", func(t *testing.T) {
		snap := &Snapshot{
			IncomeSources: []models.IncomeSource{
				{Base: models.Base{ID: 1}, Name: "Salary", Amount: 400000, Cadence: models.CadenceMonthly},
			},
			Transactions: []models.Transaction{
				// 90-day actuals average well under plan.
				testInflow(asOf.AddDate(0, 0, -30), 150000, true),
			},
		}
		if got := MonthlyIncomeForecast(snap, ForecastPlannedPlusAverage, asOf); got != 400000 {
			t.Errorf("expected plan 400000 to floor the forecast, got %d", got)
		}

		// When actuals exceed plan, the average wins.
		snap.Transactions = []models.Transaction{
			testInflow(asOf.AddDate(0, 0, -80), 500000, true),
			testInflow(asOf.AddDate(0, 0, -50), 500000, true),
			testInflow(asOf.AddDate(0, 0, -20), 500000, true),
		}
		if got := MonthlyIncomeForecast(snap, ForecastPlannedPlusAverage, asOf); got != 500000 {
			t.Errorf("expected trailing average 500000, got %d", got)
		}
	})
}

func TestProjectCashFlow(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	snap := &Snapshot{
		Accounts: []models.Account{
			{Base: models.Base{ID: 1}, Type: models.AccountTypeChecking, OnBudget: true, Balance: 200000},
		},
		IncomeSources: []models.IncomeSource{
			{Base: models.Base{ID: 1}, Name: "Salary", Amount: 300000, Cadence: models.CadenceMonthly},
		},
		Bills: []models.Bill{
			{Base: models.Base{ID: 1}, Name: "Rent", Amount: 150000, Cadence: models.CadenceMonthly, NextDue: mid("2024-06", 1), CategoryID: 1},
			{Base: models.Base{ID: 2}, Name: "Insurance", Amount: 60000, Cadence: models.CadenceQuarterly, NextDue: mid("2024-07", 10), CategoryID: 2},
		},
	}

	forecast := ProjectCashFlow(snap, ForecastPlannedOnly, 4, asOf)
	if forecast.Start != "2024-06" {
		t.Fatalf("start: expected 2024-06, got %s", forecast.Start)
	}
	if len(forecast.Months) != 4 {
		t.Fatalf("expected 4 projected months, got %d", len(forecast.Months))
	}

	t.Run("quarterly_bills_land_in_due_months", func(t *testing.T) {
		july := forecast.Months[0]
		if july.Month != "2024-07" {
			t.Fatalf("first projected month: expected 2024-07, got %s", july.Month)
		}
		if july.Outflows[2] != 60000 {
			t.Errorf("july insurance: expected 60000, got %d", july.Outflows[2])
		}
		august := forecast.Months[1]
		if august.Outflows[2] != 0 {
			t.Errorf("august insurance: expected 0, got %d", august.Outflows[2])
		}
		october := forecast.Months[3]
		if october.Outflows[2] != 60000 {
			t.Errorf("october insurance: expected 60000, got %d", october.Outflows[2])
		}
	})

	t.Run("ending_cash_is_cumulative", func(t *testing.T) {
		// July: 300000 - 210000 = +90000. August: 300000 - 150000 = +150000.
		if got := forecast.Months[0].EndingCash; got != 290000 {
			t.Errorf("july ending cash: expected 290000, got %d", got)
		}
		if got := forecast.Months[1].EndingCash; got != 440000 {
			t.Errorf("august ending cash: expected 440000, got %d", got)
		}
	})
}
