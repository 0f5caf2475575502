// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"zerosum/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels is the list of all GORM models to auto-migrate in tests.
var allModels = []interface{}{
	&models.CategoryGroup{},
	&models.Category{},
	&models.BudgetEntry{},
	&models.Account{},
	&models.Transaction{},
	&models.TransactionSplit{},
	&models.Bill{},
	&models.Debt{},
	&models.Goal{},
	&models.GoalContribution{},
	&models.IncomeSource{},
	&models.Scenario{},
	&models.ScenarioAdjustment{},
	&models.ScenarioShock{},
	&models.Reassignment{},
	&models.ReassignmentMove{},
}

// dbCounter gives each test its own named in-memory database. A shared
// anonymous one would leak rows between tests, and the summary queries
// aggregate over whole tables.
var dbCounter atomic.Int64

// SetupTestDB creates an in-memory SQLite database with all models migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
