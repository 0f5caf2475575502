package services

import (
	"testing"
	"time"

	"zerosum/internal/models"
	"zerosum/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("outflow_decreases_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		group := testutil.CreateTestGroup(t, db)
		cat := testutil.CreateTestCategory(t, db, group.ID)
		account := testutil.CreateTestAccount(t, db, 100000)

		txn, err := svc.CreateTransaction(account.ID, models.DirectionOutflow, 25000, date, &cat.ID, false, "groceries", nil)
		testutil.AssertNoError(t, err)

		if txn.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}

		var updated models.Account
		db.First(&updated, account.ID)
		testutil.AssertCents(t, "balance", updated.Balance, 75000)
	})

	t.Run("inflow_increases_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		account := testutil.CreateTestAccount(t, db, 100000)

		_, err := svc.CreateTransaction(account.ID, models.DirectionInflow, 50000, date, nil, true, "paycheck", nil)
		testutil.AssertNoError(t, err)

		var updated models.Account
		db.First(&updated, account.ID)
		testutil.AssertCents(t, "balance", updated.Balance, 150000)
	})

	t.Run("splits_must_sum_to_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		group := testutil.CreateTestGroup(t, db)
		cat1 := testutil.CreateTestCategory(t, db, group.ID)
		cat2 := testutil.CreateTestCategory(t, db, group.ID)
		account := testutil.CreateTestAccount(t, db, 100000)

		_, err := svc.CreateTransaction(account.ID, models.DirectionOutflow, 10000, date, nil, false, "", []SplitInput{
			{CategoryID: cat1.ID, Amount: 6000},
			{CategoryID: cat2.ID, Amount: 3000},
		})
		testutil.AssertAppError(t, err, "SPLIT_MISMATCH")

		txn, err := svc.CreateTransaction(account.ID, models.DirectionOutflow, 10000, date, nil, false, "", []SplitInput{
			{CategoryID: cat1.ID, Amount: 6000},
			{CategoryID: cat2.ID, Amount: 4000},
		})
		testutil.AssertNoError(t, err)
		if len(txn.Splits) != 2 {
			t.Fatalf("expected 2 splits, got %d", len(txn.Splits))
		}
	})

	t.Run("rejects_unknown_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.CreateTransaction(9999, models.DirectionOutflow, 1000, date, nil, false, "", nil)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		account := testutil.CreateTestAccount(t, db, 0)

		_, err := svc.CreateTransaction(account.ID, models.DirectionOutflow, 0, date, nil, false, "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestCreateTransfer(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("moves_funds_between_accounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		from := testutil.CreateTestAccount(t, db, 100000)
		to := testutil.CreateTestAccount(t, db, 20000)

		txn, err := svc.CreateTransfer(from.ID, to.ID, 30000, date, "topping up savings")
		testutil.AssertNoError(t, err)
		if txn.Direction != models.DirectionTransfer {
			t.Errorf("expected transfer direction, got %s", txn.Direction)
		}

		var fromAfter, toAfter models.Account
		db.First(&fromAfter, from.ID)
		db.First(&toAfter, to.ID)
		testutil.AssertCents(t, "from balance", fromAfter.Balance, 70000)
		testutil.AssertCents(t, "to balance", toAfter.Balance, 50000)
	})

	t.Run("rejects_same_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		account := testutil.CreateTestAccount(t, db, 100000)

		_, err := svc.CreateTransfer(account.ID, account.ID, 1000, date, "")
		testutil.AssertAppError(t, err, "SAME_ACCOUNT_TRANSFER")
	})
}

func TestUpdateTransaction(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("reverses_and_reapplies_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		group := testutil.CreateTestGroup(t, db)
		cat := testutil.CreateTestCategory(t, db, group.ID)
		account := testutil.CreateTestAccount(t, db, 100000)

		txn, err := svc.CreateTransaction(account.ID, models.DirectionOutflow, 25000, date, &cat.ID, false, "", nil)
		testutil.AssertNoError(t, err)

		newAmount := int64(10000)
		_, err = svc.UpdateTransaction(txn.ID, &newAmount, nil, nil, false, nil, nil)
		testutil.AssertNoError(t, err)

		var updated models.Account
		db.First(&updated, account.ID)
		testutil.AssertCents(t, "balance after edit", updated.Balance, 90000)
	})

	t.Run("clears_the_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		group := testutil.CreateTestGroup(t, db)
		cat := testutil.CreateTestCategory(t, db, group.ID)
		account := testutil.CreateTestAccount(t, db, 100000)

		txn, err := svc.CreateTransaction(account.ID, models.DirectionOutflow, 25000, date, &cat.ID, false, "", nil)
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateTransaction(txn.ID, nil, nil, nil, true, nil, nil)
		testutil.AssertNoError(t, err)
		if updated.CategoryID != nil {
			t.Errorf("expected no category after clearing, got %d", *updated.CategoryID)
		}

		loaded, err := svc.GetTransactionByID(txn.ID)
		testutil.AssertNoError(t, err)
		if loaded.CategoryID != nil {
			t.Error("clearing the category must persist")
		}

		_, err = svc.UpdateTransaction(txn.ID, nil, nil, &cat.ID, true, nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_transfer_edit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		from := testutil.CreateTestAccount(t, db, 100000)
		to := testutil.CreateTestAccount(t, db, 0)

		txn, err := svc.CreateTransfer(from.ID, to.ID, 30000, date, "")
		testutil.AssertNoError(t, err)

		amount := int64(1000)
		_, err = svc.UpdateTransaction(txn.ID, &amount, nil, nil, false, nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteTransaction(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("reverses_outflow", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		account := testutil.CreateTestAccount(t, db, 100000)

		txn, err := svc.CreateTransaction(account.ID, models.DirectionOutflow, 25000, date, nil, false, "", nil)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeleteTransaction(txn.ID))

		var updated models.Account
		db.First(&updated, account.ID)
		testutil.AssertCents(t, "balance after delete", updated.Balance, 100000)

		_, err = svc.GetTransactionByID(txn.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("reverses_both_ends_of_transfer", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		from := testutil.CreateTestAccount(t, db, 100000)
		to := testutil.CreateTestAccount(t, db, 20000)

		txn, err := svc.CreateTransfer(from.ID, to.ID, 30000, date, "")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeleteTransaction(txn.ID))

		var fromAfter, toAfter models.Account
		db.First(&fromAfter, from.ID)
		db.First(&toAfter, to.ID)
		testutil.AssertCents(t, "from balance", fromAfter.Balance, 100000)
		testutil.AssertCents(t, "to balance", toAfter.Balance, 20000)
	})
}
