package engine

import "zerosum/internal/models"

// GroupRollup aggregates a category group's ledgers for one month.
// MinRequired sums the bill amounts falling due in the month for the group's
// categories; Shortfall is how far assigned funding lags that minimum and is
// never negative.
type GroupRollup struct {
	GroupID     uint             `json:"group_id"`
	Name        string           `json:"name"`
	Month       models.Month     `json:"month"`
	Assigned    int64            `json:"assigned"`
	Spent       int64            `json:"spent"`
	Available   int64            `json:"available"`
	MinRequired int64            `json:"min_required"`
	Shortfall   int64            `json:"shortfall"`
	Categories  []CategoryLedger `json:"categories"`
}

// RollupGroup computes the rollup for one group. Unknown group ids yield a
// zero-valued rollup rather than an error; the service layer decides whether
// absence is reportable.
func RollupGroup(snap *Snapshot, groupID uint, month models.Month) GroupRollup {
	rollup := GroupRollup{GroupID: groupID, Month: month}
	for i := range snap.Groups {
		if snap.Groups[i].ID == groupID {
			rollup.Name = snap.Groups[i].Name
		}
	}

	ledger := NewLedger(snap)
	inGroup := make(map[uint]bool)
	for i := range snap.Categories {
		cat := &snap.Categories[i]
		if cat.GroupID != groupID {
			continue
		}
		inGroup[cat.ID] = true
		line := ledger.Entry(cat.ID, month)
		rollup.Categories = append(rollup.Categories, line)
		rollup.Assigned += line.Assigned
		rollup.Spent += line.Spent
		rollup.Available += line.Available
	}

	for i := range snap.Bills {
		bill := &snap.Bills[i]
		if inGroup[bill.CategoryID] {
			rollup.MinRequired += BillAmountDueIn(bill, month)
		}
	}

	if shortfall := rollup.MinRequired - rollup.Assigned; shortfall > 0 {
		rollup.Shortfall = shortfall
	}
	return rollup
}
