// Package engine implements the derived-financial-calculation core: category
// ledgers, Ready-to-Assign, group rollups, cash-flow forecasting, debt payoff
// simulation, rebalancing, and what-if scenarios.
//
// Everything in this package is a pure, synchronous function of an in-memory
// Snapshot. The engine performs no I/O and keeps no state between calls, so
// it is safe to invoke concurrently as long as each call gets a consistent
// snapshot; freshness of that snapshot is the caller's problem.
package engine

import "zerosum/internal/models"

// Snapshot is the consistent view of ledger data every computation runs
// against. Services load one snapshot per request; the engine never reloads.
type Snapshot struct {
	Groups        []models.CategoryGroup
	Categories    []models.Category
	Entries       []models.BudgetEntry
	Transactions  []models.Transaction
	Bills         []models.Bill
	Debts         []models.Debt
	Goals         []models.Goal
	IncomeSources []models.IncomeSource
	Accounts      []models.Account
}

// Category returns the category with the given id, or nil.
func (s *Snapshot) Category(id uint) *models.Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

// CategoryName returns the category's name, or "" when the id is unknown.
func (s *Snapshot) CategoryName(id uint) string {
	if c := s.Category(id); c != nil {
		return c.Name
	}
	return ""
}
