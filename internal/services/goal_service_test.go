package services

import (
	"testing"
	"time"

	"zerosum/internal/models"
	"zerosum/internal/testutil"
)

func TestContribute(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("appends_to_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		goal := testutil.CreateTestGoal(t, db, 100000, 10000)

		_, err := svc.Contribute(goal.ID, 25000, date, "tax refund")
		testutil.AssertNoError(t, err)

		loaded, err := svc.GetGoalByID(goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertCents(t, "saved", loaded.Saved(), 25000)
	})

	t.Run("negative_entry_corrects_a_mistake", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		goal := testutil.CreateTestGoal(t, db, 100000, 10000)

		_, err := svc.Contribute(goal.ID, 25000, date, "")
		testutil.AssertNoError(t, err)
		_, err = svc.Contribute(goal.ID, -5000, date, "entered too much")
		testutil.AssertNoError(t, err)

		loaded, err := svc.GetGoalByID(goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertCents(t, "saved", loaded.Saved(), 20000)
		if len(loaded.Contributions) != 2 {
			t.Errorf("corrections must be new entries, got %d", len(loaded.Contributions))
		}
	})

	t.Run("reaching_target_completes_the_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		goal := testutil.CreateTestGoal(t, db, 50000, 10000)

		_, err := svc.Contribute(goal.ID, 50000, date, "")
		testutil.AssertNoError(t, err)

		loaded, err := svc.GetGoalByID(goal.ID)
		testutil.AssertNoError(t, err)
		if loaded.Status != models.GoalStatusCompleted {
			t.Errorf("expected completed status, got %s", loaded.Status)
		}
	})

	t.Run("rejects_paused_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		goal := testutil.CreateTestGoal(t, db, 100000, 10000)

		_, err := svc.SetGoalStatus(goal.ID, models.GoalStatusPaused)
		testutil.AssertNoError(t, err)
		_, err = svc.Contribute(goal.ID, 1000, date, "")
		testutil.AssertAppError(t, err, "GOAL_NOT_ACTIVE")
	})
}

func TestSetGoalStatus(t *testing.T) {
	t.Run("pause_and_resume", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		goal := testutil.CreateTestGoal(t, db, 100000, 10000)

		paused, err := svc.SetGoalStatus(goal.ID, models.GoalStatusPaused)
		testutil.AssertNoError(t, err)
		if paused.Status != models.GoalStatusPaused {
			t.Errorf("expected paused, got %s", paused.Status)
		}

		resumed, err := svc.SetGoalStatus(goal.ID, models.GoalStatusActive)
		testutil.AssertNoError(t, err)
		if resumed.Status != models.GoalStatusActive {
			t.Errorf("expected active, got %s", resumed.Status)
		}
	})

	t.Run("archived_is_terminal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		goal := testutil.CreateTestGoal(t, db, 100000, 10000)

		_, err := svc.SetGoalStatus(goal.ID, models.GoalStatusArchived)
		testutil.AssertNoError(t, err)
		_, err = svc.SetGoalStatus(goal.ID, models.GoalStatusActive)
		testutil.AssertAppError(t, err, "INVALID_GOAL_STATUS")
	})
}

func TestDeleteGoal(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("removes_goal_and_contributions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		goal := testutil.CreateTestGoal(t, db, 100000, 10000)

		_, err := svc.Contribute(goal.ID, 25000, date, "")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteGoal(goal.ID))
		_, err = svc.GetGoalByID(goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("missing_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)

		testutil.AssertAppError(t, svc.DeleteGoal(999), "GOAL_NOT_FOUND")
	})
}

func TestGetProgress(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("on_track_against_target_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		goal := testutil.CreateTestGoal(t, db, 100000, 10000)
		target := models.Month("2024-12")
		_, err := svc.UpdateGoal(goal.ID, nil, nil, &target, nil, nil)
		testutil.AssertNoError(t, err)

		_, err = svc.Contribute(goal.ID, 40000, asOf, "")
		testutil.AssertNoError(t, err)

		progress, err := svc.GetProgress(goal.ID, asOf)
		testutil.AssertNoError(t, err)

		testutil.AssertCents(t, "saved", progress.Saved, 40000)
		testutil.AssertCents(t, "remaining", progress.Remaining, 60000)
		if progress.MonthsRemaining == nil || *progress.MonthsRemaining != 6 {
			t.Fatalf("expected 6 months remaining, got %v", progress.MonthsRemaining)
		}
		// 60000 over 6 months needs 10000 a month, exactly the plan.
		if progress.RequiredMonthly == nil || *progress.RequiredMonthly != 10000 {
			t.Fatalf("expected required monthly 10000, got %v", progress.RequiredMonthly)
		}
		if progress.OnTrack == nil || !*progress.OnTrack {
			t.Error("expected goal to be on track")
		}
	})
}
