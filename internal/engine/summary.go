package engine

import (
	"sort"

	"zerosum/internal/models"
)

// MonthSummary aggregates category ledgers into the month's headline
// figures. ToAllocate is Ready-to-Assign:
//
//	to-budget inflows - total assigned + rollover effect
//
// where the rollover effect collects prior-month leftovers of "return"
// categories: positive leftovers come back to RTA, and overspends debit RTA
// when the category's negative policy is reduce_ta. Carry categories keep
// their leftover in-category and contribute nothing here.
type MonthSummary struct {
	Month          models.Month     `json:"month"`
	ToAllocate     int64            `json:"to_allocate"`
	TotalAssigned  int64            `json:"total_assigned"`
	TotalSpent     int64            `json:"total_spent"`
	TotalInflows   int64            `json:"total_inflows"`
	RolloverEffect int64            `json:"rollover_effect"`
	Categories     []CategoryLedger `json:"categories"`
	Overspends     []CategoryLedger `json:"overspends"`
}

// SummarizeMonth computes the month summary. It is deterministic: identical
// snapshots always produce identical output, category lines in id order.
// This is the canonical Ready-to-Assign definition; other components consume
// it rather than re-deriving their own.
func SummarizeMonth(snap *Snapshot, month models.Month) MonthSummary {
	ledger := NewLedger(snap)
	return summarizeWithLedger(snap, ledger, month)
}

func summarizeWithLedger(snap *Snapshot, ledger *Ledger, month models.Month) MonthSummary {
	summary := MonthSummary{Month: month}

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.Direction == models.DirectionInflow && t.ToBudget && t.MonthKey() == month {
			summary.TotalInflows += t.Amount
		}
	}

	prev := PrevMonth(month)
	for i := range snap.Categories {
		cat := &snap.Categories[i]
		line := ledger.Entry(cat.ID, month)
		summary.Categories = append(summary.Categories, line)
		summary.TotalAssigned += line.Assigned
		summary.TotalSpent += line.Spent
		if line.Available < 0 {
			summary.Overspends = append(summary.Overspends, line)
		}

		if cat.Rollover != models.RolloverReturn {
			continue
		}
		leftover := ledger.Available(cat.ID, prev)
		switch {
		case leftover > 0:
			summary.RolloverEffect += leftover
		case leftover < 0 && cat.RolloverNegative == models.RolloverReduceTA:
			summary.RolloverEffect += leftover
		}
	}

	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].CategoryID < summary.Categories[j].CategoryID
	})
	sort.Slice(summary.Overspends, func(i, j int) bool {
		return summary.Overspends[i].CategoryID < summary.Overspends[j].CategoryID
	})

	summary.ToAllocate = summary.TotalInflows - summary.TotalAssigned + summary.RolloverEffect
	return summary
}
