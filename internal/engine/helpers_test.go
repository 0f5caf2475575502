package engine

import (
	"time"

	"zerosum/internal/models"
)

// Fixture builders shared across engine tests. IDs are passed explicitly so
// expectations can reference them directly.

func testCategory(id, groupID uint, name string, rollover models.RolloverPolicy, negative models.RolloverNegative) models.Category {
	c := models.Category{
		GroupID:          groupID,
		Name:             name,
		Priority:         3,
		Rollover:         rollover,
		RolloverNegative: negative,
	}
	c.ID = id
	return c
}

func testEntry(categoryID uint, month models.Month, assigned int64) models.BudgetEntry {
	return models.BudgetEntry{CategoryID: categoryID, Month: month, Assigned: assigned}
}

func testOutflow(categoryID uint, date time.Time, amount int64) models.Transaction {
	id := categoryID
	return models.Transaction{
		AccountID:  1,
		Date:       date,
		Amount:     amount,
		Direction:  models.DirectionOutflow,
		CategoryID: &id,
	}
}

func testInflow(date time.Time, amount int64, toBudget bool) models.Transaction {
	return models.Transaction{
		AccountID: 1,
		Date:      date,
		Amount:    amount,
		Direction: models.DirectionInflow,
		ToBudget:  toBudget,
	}
}

func testDebt(id uint, name string, balance int64, apr float64, minimum int64) models.Debt {
	d := models.Debt{Name: name, Balance: balance, APR: apr, MinimumPayment: minimum}
	d.ID = id
	return d
}

func mid(month models.Month, day int) time.Time {
	t, _ := time.Parse("2006-01-02", month+"-01")
	return t.AddDate(0, 0, day-1)
}
