package engine

import (
	"errors"
	"testing"

	"zerosum/internal/models"
)

func TestSimulatePayoff(t *testing.T) {
	t.Run("requires_start_month", func(t *testing.T) {
		_, err := SimulatePayoff([]models.Debt{testDebt(1, "Card", 10000, 20, 1000)}, PayoffOptions{Method: PayoffAvalanche})
		if err == nil {
			t.Fatal("expected error without a start month")
		}
	})

	t.Run("minimum_above_balance_pays_off_in_one_month", func(t *testing.T) {
		debts := []models.Debt{testDebt(1, "Card", 20000, 12, 30000)}
		schedule, err := SimulatePayoff(debts, PayoffOptions{Method: PayoffAvalanche, StartMonth: "2024-06"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if schedule.MonthsToDebtFree != 1 {
			t.Errorf("expected 1 month to debt free, got %d", schedule.MonthsToDebtFree)
		}
		if schedule.DebtFreeMonth != "2024-06" {
			t.Errorf("expected debt free in 2024-06, got %s", schedule.DebtFreeMonth)
		}
		// One month of interest (200) accrues before the final payment.
		if schedule.TotalInterestPaid != 200 {
			t.Errorf("expected 200 interest, got %d", schedule.TotalInterestPaid)
		}
		if schedule.TotalPaid != 20200 {
			t.Errorf("expected 20200 paid, got %d", schedule.TotalPaid)
		}
		if debts[0].Balance != 20000 {
			t.Error("simulation must not mutate the input debts")
		}
	})

	t.Run("snowball_targets_smallest_balance_first", func(t *testing.T) {
		debts := []models.Debt{
			testDebt(1, "Big Card", 100000, 20, 5000),
			testDebt(2, "Small Card", 50000, 10, 3000),
		}
		schedule, err := SimulatePayoff(debts, PayoffOptions{
			Method:        PayoffSnowball,
			ExtraPerMonth: 10000,
			StartMonth:    "2024-06",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first := schedule.Timeline[0]
		// Small Card gets its minimum plus the entire extra pool.
		if first.Payments[2] != 13000 {
			t.Errorf("small card month 1: expected 13000, got %d", first.Payments[2])
		}
		if first.Payments[1] != 5000 {
			t.Errorf("big card month 1: expected minimum 5000, got %d", first.Payments[1])
		}
		if len(schedule.Milestones) == 0 || schedule.Milestones[0].DebtID != 2 {
			t.Fatalf("expected Small Card to reach zero first, milestones: %+v", schedule.Milestones)
		}
	})

	t.Run("avalanche_never_pays_more_interest_than_snowball", func(t *testing.T) {
		debts := []models.Debt{
			testDebt(1, "High APR", 300000, 24, 6000),
			testDebt(2, "Low APR", 100000, 6, 2000),
		}
		opts := PayoffOptions{ExtraPerMonth: 20000, StartMonth: "2024-06"}

		opts.Method = PayoffAvalanche
		avalanche, err := SimulatePayoff(debts, opts)
		if err != nil {
			t.Fatalf("avalanche: %v", err)
		}
		opts.Method = PayoffSnowball
		snowball, err := SimulatePayoff(debts, opts)
		if err != nil {
			t.Fatalf("snowball: %v", err)
		}
		if avalanche.TotalInterestPaid > snowball.TotalInterestPaid {
			t.Errorf("avalanche interest %d exceeds snowball %d",
				avalanche.TotalInterestPaid, snowball.TotalInterestPaid)
		}
	})

	t.Run("keep_minimums_redirects_freed_payments", func(t *testing.T) {
		debts := []models.Debt{
			testDebt(1, "Loan", 500000, 18, 10000),
			testDebt(2, "Card", 50000, 18, 10000),
		}
		base := PayoffOptions{Method: PayoffSnowball, ExtraPerMonth: 10000, StartMonth: "2024-06"}

		drop := base
		kept := base
		kept.KeepMinimums = true

		dropped, err := SimulatePayoff(debts, drop)
		if err != nil {
			t.Fatalf("without redirect: %v", err)
		}
		redirected, err := SimulatePayoff(debts, kept)
		if err != nil {
			t.Fatalf("with redirect: %v", err)
		}
		if redirected.MonthsToDebtFree >= dropped.MonthsToDebtFree {
			t.Errorf("redirecting freed minimums should finish sooner: %d vs %d",
				redirected.MonthsToDebtFree, dropped.MonthsToDebtFree)
		}
		if redirected.TotalInterestPaid >= dropped.TotalInterestPaid {
			t.Errorf("redirecting freed minimums should cost less interest: %d vs %d",
				redirected.TotalInterestPaid, dropped.TotalInterestPaid)
		}
	})

	t.Run("round_up_raises_payment_to_next_step", func(t *testing.T) {
		debts := []models.Debt{testDebt(1, "Loan", 100000, 0, 4700)}
		schedule, err := SimulatePayoff(debts, PayoffOptions{
			Method:           PayoffAvalanche,
			RoundUpToNearest: 5000,
			StartMonth:       "2024-06",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := schedule.Timeline[0].Payments[1]; got != 5000 {
			t.Errorf("expected payment rounded up to 5000, got %d", got)
		}
	})

	t.Run("stalled_plan_reports_error", func(t *testing.T) {
		// Minimum below monthly interest: the balance only grows.
		debts := []models.Debt{testDebt(1, "Card", 100000, 20, 1000)}
		_, err := SimulatePayoff(debts, PayoffOptions{Method: PayoffAvalanche, StartMonth: "2024-06"})
		if !errors.Is(err, ErrPayoffStalled) {
			t.Fatalf("expected ErrPayoffStalled, got %v", err)
		}
	})

	t.Run("baseline_stall_flagged_when_extra_converges", func(t *testing.T) {
		debts := []models.Debt{testDebt(1, "Card", 100000, 20, 1000)}
		schedule, err := SimulatePayoff(debts, PayoffOptions{
			Method:        PayoffAvalanche,
			ExtraPerMonth: 5000,
			StartMonth:    "2024-06",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !schedule.BaselineStalled {
			t.Error("expected the minimum-only baseline to be flagged as stalled")
		}
		if schedule.InterestSaved != 0 || schedule.MonthsSaved != 0 {
			t.Error("savings figures should stay zero without a baseline")
		}
	})

	t.Run("lump_sum_lands_in_its_month", func(t *testing.T) {
		debts := []models.Debt{testDebt(1, "Loan", 200000, 0, 5000)}
		schedule, err := SimulatePayoff(debts, PayoffOptions{
			Method:     PayoffAvalanche,
			LumpSum:    &LumpSum{Month: "2024-08", Amount: 50000},
			StartMonth: "2024-06",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := schedule.Timeline[1].Payments[1]; got != 5000 {
			t.Errorf("july: expected minimum only, got %d", got)
		}
		if got := schedule.Timeline[2].Payments[1]; got != 55000 {
			t.Errorf("august: expected minimum plus lump sum, got %d", got)
		}
	})

	t.Run("promo_apr_applies_until_expiry", func(t *testing.T) {
		promo := 0.0
		ends := models.Month("2024-08")
		debt := testDebt(1, "Promo Card", 100000, 24, 10000)
		debt.PromoAPR = &promo
		debt.PromoEndsMonth = &ends

		schedule, err := SimulatePayoff([]models.Debt{debt}, PayoffOptions{Method: PayoffAvalanche, StartMonth: "2024-06"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := schedule.Timeline[0].InterestAccrued; got != 0 {
			t.Errorf("june under promo: expected 0 interest, got %d", got)
		}
		if got := schedule.Timeline[1].InterestAccrued; got != 0 {
			t.Errorf("july under promo: expected 0 interest, got %d", got)
		}
		if got := schedule.Timeline[2].InterestAccrued; got <= 0 {
			t.Error("august after promo: expected interest to accrue")
		}
	})
}
