package services

import (
	"testing"

	"zerosum/internal/engine"
	"zerosum/internal/testutil"
)

func TestSimulatePayoffService(t *testing.T) {
	t.Run("simulates_open_debts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		testutil.CreateTestDebt(t, db, 100000, 20, 5000)
		testutil.CreateTestDebt(t, db, 50000, 10, 3000)

		schedule, err := svc.SimulatePayoff(engine.PayoffOptions{
			Method:        engine.PayoffAvalanche,
			ExtraPerMonth: 10000,
			StartMonth:    "2024-06",
		})
		testutil.AssertNoError(t, err)

		if schedule.MonthsToDebtFree == 0 {
			t.Fatal("expected the plan to converge")
		}
		if len(schedule.Milestones) != 2 {
			t.Errorf("expected a milestone per debt, got %d", len(schedule.Milestones))
		}
	})

	t.Run("paid_off_debts_are_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		testutil.CreateTestDebt(t, db, 0, 20, 5000)

		_, err := svc.SimulatePayoff(engine.PayoffOptions{Method: engine.PayoffSnowball, StartMonth: "2024-06"})
		testutil.AssertAppError(t, err, "NO_DEBTS")
	})

	t.Run("stalled_plan_maps_to_app_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		// Minimum below monthly interest accrual.
		testutil.CreateTestDebt(t, db, 100000, 20, 1000)

		_, err := svc.SimulatePayoff(engine.PayoffOptions{Method: engine.PayoffAvalanche, StartMonth: "2024-06"})
		testutil.AssertAppError(t, err, "PAYOFF_NOT_CONVERGING")
	})

	t.Run("rejects_bad_options", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		testutil.CreateTestDebt(t, db, 100000, 20, 5000)

		_, err := svc.SimulatePayoff(engine.PayoffOptions{Method: "highest_first", StartMonth: "2024-06"})
		testutil.AssertAppError(t, err, "INVALID_PAYOFF_OPTIONS")

		_, err = svc.SimulatePayoff(engine.PayoffOptions{Method: engine.PayoffAvalanche})
		testutil.AssertAppError(t, err, "INVALID_PAYOFF_OPTIONS")
	})
}

func TestComparePayoffMethods(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDebtService(db)
	testutil.CreateTestDebt(t, db, 300000, 24, 6000)
	testutil.CreateTestDebt(t, db, 100000, 6, 2000)

	comparison, err := svc.ComparePayoffMethods(engine.PayoffOptions{
		ExtraPerMonth: 20000,
		StartMonth:    "2024-06",
	})
	testutil.AssertNoError(t, err)

	if comparison.Avalanche == nil || comparison.Snowball == nil {
		t.Fatal("expected both schedules")
	}
	if comparison.Avalanche.TotalInterestPaid > comparison.Snowball.TotalInterestPaid {
		t.Errorf("avalanche interest %d exceeds snowball %d",
			comparison.Avalanche.TotalInterestPaid, comparison.Snowball.TotalInterestPaid)
	}
}
