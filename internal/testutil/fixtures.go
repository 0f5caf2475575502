package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"zerosum/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestGroup creates a category group with a unique name.
func CreateTestGroup(t *testing.T, db *gorm.DB) *models.CategoryGroup {
	t.Helper()

	group := &models.CategoryGroup{
		Name: fmt.Sprintf("Test Group %d", nextID()),
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateTestCategory creates a carry-rollover category in the given group.
func CreateTestCategory(t *testing.T, db *gorm.DB, groupID uint) *models.Category {
	t.Helper()

	category := &models.Category{
		GroupID:          groupID,
		Name:             fmt.Sprintf("Test Category %d", nextID()),
		Priority:         3,
		Rollover:         models.RolloverCarry,
		RolloverNegative: models.RolloverReduceTA,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestReturnCategory creates a category whose leftovers return to
// Ready-to-Assign.
func CreateTestReturnCategory(t *testing.T, db *gorm.DB, groupID uint, negative models.RolloverNegative) *models.Category {
	t.Helper()

	category := &models.Category{
		GroupID:          groupID,
		Name:             fmt.Sprintf("Test Category %d", nextID()),
		Priority:         3,
		Rollover:         models.RolloverReturn,
		RolloverNegative: negative,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestAccount creates an on-budget checking account with the given
// balance (in cents).
func CreateTestAccount(t *testing.T, db *gorm.DB, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:        fmt.Sprintf("Test Account %d", nextID()),
		Type:        models.AccountTypeChecking,
		OnBudget:    true,
		Balance:     balance,
		BalanceAsOf: time.Now(),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestEntry assigns an amount to a category for a month.
func CreateTestEntry(t *testing.T, db *gorm.DB, categoryID uint, month models.Month, assigned int64) *models.BudgetEntry {
	t.Helper()

	entry := &models.BudgetEntry{
		CategoryID: categoryID,
		Month:      month,
		Assigned:   assigned,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test budget entry: %v", err)
	}
	return entry
}

// CreateTestOutflow creates a categorized outflow transaction.
func CreateTestOutflow(t *testing.T, db *gorm.DB, accountID, categoryID uint, date time.Time, amount int64) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		AccountID:  accountID,
		Date:       date,
		Amount:     amount,
		Direction:  models.DirectionOutflow,
		CategoryID: &categoryID,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test outflow: %v", err)
	}
	return txn
}

// CreateTestInflow creates a to-budget inflow transaction.
func CreateTestInflow(t *testing.T, db *gorm.DB, accountID uint, date time.Time, amount int64) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		AccountID: accountID,
		Date:      date,
		Amount:    amount,
		Direction: models.DirectionInflow,
		ToBudget:  true,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test inflow: %v", err)
	}
	return txn
}

// CreateTestBill creates a monthly bill linked to a category.
func CreateTestBill(t *testing.T, db *gorm.DB, categoryID uint, amount int64, nextDue time.Time) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		Name:       fmt.Sprintf("Test Bill %d", nextID()),
		Amount:     amount,
		Cadence:    models.CadenceMonthly,
		NextDue:    nextDue,
		CategoryID: categoryID,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreateTestDebt creates a debt with the given balance, APR, and minimum.
func CreateTestDebt(t *testing.T, db *gorm.DB, balance int64, apr float64, minimum int64) *models.Debt {
	t.Helper()

	debt := &models.Debt{
		Name:           fmt.Sprintf("Test Debt %d", nextID()),
		Balance:        balance,
		APR:            apr,
		MinimumPayment: minimum,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestGoal creates an active savings goal.
func CreateTestGoal(t *testing.T, db *gorm.DB, target, plannedMonthly int64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Name:           fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:   target,
		Priority:       3,
		Status:         models.GoalStatusActive,
		PlannedMonthly: plannedMonthly,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestIncomeSource creates a monthly income source.
func CreateTestIncomeSource(t *testing.T, db *gorm.DB, amount int64) *models.IncomeSource {
	t.Helper()

	source := &models.IncomeSource{
		Name:    fmt.Sprintf("Test Income %d", nextID()),
		Amount:  amount,
		Cadence: models.CadenceMonthly,
	}
	if err := db.Create(source).Error; err != nil {
		t.Fatalf("failed to create test income source: %v", err)
	}
	return source
}
