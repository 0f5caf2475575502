package engine

import (
	"sort"

	"zerosum/internal/models"
)

// CategoryLedger is the derived position of one category in one month.
// Available = Assigned - Spent + Carryover, where Carryover is the prior
// month's Available when the category's rollover policy carries it forward.
type CategoryLedger struct {
	CategoryID uint         `json:"category_id"`
	Name       string       `json:"name"`
	Month      models.Month `json:"month"`
	Assigned   int64        `json:"assigned"`
	Spent      int64        `json:"spent"`
	Carryover  int64        `json:"carryover"`
	Available  int64        `json:"available"`
}

type ledgerKey struct {
	categoryID uint
	month      models.Month
}

// Ledger answers category/month selector queries over one snapshot.
// Assignments and spending are indexed up front; carryover is evaluated as
// a memoized fold from each category's earliest activity month, so a long
// history costs linear time and constant stack.
type Ledger struct {
	snap       *Snapshot
	assigned   map[ledgerKey]int64
	spent      map[ledgerKey]int64
	available  map[ledgerKey]int64
	firstMonth map[uint]models.Month
}

// NewLedger indexes a snapshot for selector queries.
func NewLedger(snap *Snapshot) *Ledger {
	l := &Ledger{
		snap:       snap,
		assigned:   make(map[ledgerKey]int64, len(snap.Entries)),
		spent:      make(map[ledgerKey]int64),
		available:  make(map[ledgerKey]int64),
		firstMonth: make(map[uint]models.Month, len(snap.Categories)),
	}

	for _, e := range snap.Entries {
		l.assigned[ledgerKey{e.CategoryID, e.Month}] += e.Assigned
		l.noteActivity(e.CategoryID, e.Month)
	}

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.Direction != models.DirectionOutflow {
			continue
		}
		month := t.MonthKey()
		if len(t.Splits) > 0 {
			// Only the split portion assigned to a category counts,
			// never the transaction total.
			for _, s := range t.Splits {
				l.spent[ledgerKey{s.CategoryID, month}] += s.Amount
				l.noteActivity(s.CategoryID, month)
			}
			continue
		}
		if t.CategoryID != nil {
			l.spent[ledgerKey{*t.CategoryID, month}] += t.Amount
			l.noteActivity(*t.CategoryID, month)
		}
	}

	return l
}

func (l *Ledger) noteActivity(categoryID uint, month models.Month) {
	if first, ok := l.firstMonth[categoryID]; !ok || month < first {
		l.firstMonth[categoryID] = month
	}
}

// Assigned returns the budget-entry amount for (category, month), or 0 when
// no entry exists.
func (l *Ledger) Assigned(categoryID uint, month models.Month) int64 {
	return l.assigned[ledgerKey{categoryID, month}]
}

// Spent returns the outflow total tagged to the category in the month,
// honoring split allocations.
func (l *Ledger) Spent(categoryID uint, month models.Month) int64 {
	return l.spent[ledgerKey{categoryID, month}]
}

// Carryover returns the portion of the prior month's available balance that
// propagates into this month. Carry categories drag both positive and
// negative balances forward; return categories carry nothing in-category
// (their leftovers flow through Ready-to-Assign instead).
func (l *Ledger) Carryover(categoryID uint, month models.Month) int64 {
	cat := l.snap.Category(categoryID)
	if cat == nil || cat.Rollover != models.RolloverCarry {
		return 0
	}
	first, ok := l.firstMonth[categoryID]
	if !ok || month <= first {
		return 0
	}
	return l.Available(categoryID, PrevMonth(month))
}

// Available returns assigned - spent + carryover for (category, month).
// A month with no budget entry still evaluates carryover, so a category can
// be available-negative purely from carried-forward overspend.
func (l *Ledger) Available(categoryID uint, month models.Month) int64 {
	key := ledgerKey{categoryID, month}
	if v, ok := l.available[key]; ok {
		return v
	}

	first, hasActivity := l.firstMonth[categoryID]
	if !hasActivity || month < first {
		return 0
	}

	// Fold forward from the earliest month not yet memoized instead of
	// recursing backward, bounding stack depth over long histories.
	start := first
	for m := month; m > first; m = PrevMonth(m) {
		if _, ok := l.available[ledgerKey{categoryID, PrevMonth(m)}]; ok {
			start = m
			break
		}
	}
	for _, m := range MonthRange(start, month) {
		k := ledgerKey{categoryID, m}
		l.available[k] = l.Assigned(categoryID, m) - l.Spent(categoryID, m) + l.Carryover(categoryID, m)
	}
	return l.available[key]
}

// Entry assembles the full ledger line for (category, month).
func (l *Ledger) Entry(categoryID uint, month models.Month) CategoryLedger {
	return CategoryLedger{
		CategoryID: categoryID,
		Name:       l.snap.CategoryName(categoryID),
		Month:      month,
		Assigned:   l.Assigned(categoryID, month),
		Spent:      l.Spent(categoryID, month),
		Carryover:  l.Carryover(categoryID, month),
		Available:  l.Available(categoryID, month),
	}
}

// Entries returns ledger lines for all snapshot categories in a stable
// (category id) order.
func (l *Ledger) Entries(month models.Month) []CategoryLedger {
	out := make([]CategoryLedger, 0, len(l.snap.Categories))
	for i := range l.snap.Categories {
		out = append(out, l.Entry(l.snap.Categories[i].ID, month))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out
}

// LastOutflow returns the date of the category's most recent outflow, or nil.
func (l *Ledger) LastOutflow(categoryID uint) *models.Transaction {
	var last *models.Transaction
	for i := range l.snap.Transactions {
		t := &l.snap.Transactions[i]
		if t.Direction != models.DirectionOutflow {
			continue
		}
		hit := t.CategoryID != nil && *t.CategoryID == categoryID
		for _, s := range t.Splits {
			if s.CategoryID == categoryID {
				hit = true
			}
		}
		if hit && (last == nil || t.Date.After(last.Date)) {
			last = t
		}
	}
	return last
}
