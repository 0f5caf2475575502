package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"zerosum/internal/models"
)

// Overspend is a category whose available balance is below zero; Amount is
// the positive amount needed to bring it back to zero.
type Overspend struct {
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
}

// Donor is a category with spare funds that may cover overspends.
type Donor struct {
	CategoryID  uint   `json:"category_id"`
	Name        string `json:"name"`
	Available   int64  `json:"available"`
	Flexibility int    `json:"flexibility"`
}

// Move transfers assigned funds between two categories within a month.
type Move struct {
	FromCategoryID uint  `json:"from_category_id"`
	ToCategoryID   uint  `json:"to_category_id"`
	Amount         int64 `json:"amount"`
}

// RebalancePlan is a proposed set of moves covering the month's overspends.
// When donors cannot cover everything, Uncovered is the remainder and
// Alternatives lists fallback options.
type RebalancePlan struct {
	Month        models.Month `json:"month"`
	Overspends   []Overspend  `json:"overspends"`
	Donors       []Donor      `json:"donors"`
	Moves        []Move       `json:"moves"`
	TotalNeed    int64        `json:"total_need"`
	TotalCovered int64        `json:"total_covered"`
	Uncovered    int64        `json:"uncovered"`
	Alternatives []string     `json:"alternatives,omitempty"`
}

// donorState tracks a donor's unclaimed balance while moves are matched.
type donorState struct {
	donor     Donor
	groupID   uint
	remaining int64
	quiet     bool // no outflows in the trailing week
}

var (
	flexibleNameHints = []string{"saving", "emergency", "fun", "entertainment", "dining", "eating", "restaurant", "hobby", "misc"}
	rigidNameHints    = []string{"rent", "mortgage", "insurance", "utilit", "electric", "water", "internet", "phone", "medical"}
)

// FlexibilityScore rates how freely a category's funds can be raided, 0-100.
// It blends a name signal, an assigned-vs-spent utilization signal, a
// trailing-activity signal, and target urgency. This is a ranking heuristic,
// not a guarantee that moving the funds is harmless.
func FlexibilityScore(cat *models.Category, line CategoryLedger, lastOutflow *time.Time, month models.Month, asOf time.Time) int {
	score := 50
	name := strings.ToLower(cat.Name)

	for _, hint := range flexibleNameHints {
		if strings.Contains(name, hint) {
			score += 15
			break
		}
	}
	for _, hint := range rigidNameHints {
		if strings.Contains(name, hint) {
			score -= 25
			break
		}
	}

	if line.Assigned > 0 {
		utilization := float64(line.Spent) / float64(line.Assigned)
		switch {
		case utilization < 0.25:
			score += 15
		case utilization > 0.75:
			score -= 15
		}
	}

	if lastOutflow == nil || asOf.Sub(*lastOutflow) > 7*24*time.Hour {
		score += 10
	}

	if cat.TargetMonth != nil && MonthsBetween(month, *cat.TargetMonth) <= 2 {
		score -= 20
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// BuildRebalancePlan proposes moves to cover the month's overspent
// categories. Donors must have spare funds and no linked bill due within a
// week. Overspends are processed largest first; each repeatedly takes from
// the best-scoring remaining donor until covered or donors run dry.
func BuildRebalancePlan(snap *Snapshot, month models.Month, asOf time.Time) RebalancePlan {
	plan := RebalancePlan{Month: month}
	ledger := NewLedger(snap)

	billDueSoon := make(map[uint]bool)
	for i := range snap.Bills {
		b := &snap.Bills[i]
		until := b.NextDue.Sub(asOf)
		if until >= 0 && until <= 7*24*time.Hour {
			billDueSoon[b.CategoryID] = true
		}
	}

	groupOf := make(map[uint]uint, len(snap.Categories))
	var donors []*donorState

	for i := range snap.Categories {
		cat := &snap.Categories[i]
		groupOf[cat.ID] = cat.GroupID
		line := ledger.Entry(cat.ID, month)

		var last *time.Time
		if t := ledger.LastOutflow(cat.ID); t != nil {
			last = &t.Date
		}

		if line.Available < 0 {
			plan.Overspends = append(plan.Overspends, Overspend{
				CategoryID: cat.ID,
				Name:       cat.Name,
				Amount:     -line.Available,
			})
			plan.TotalNeed += -line.Available
			continue
		}
		if cat.Archived || line.Available == 0 || billDueSoon[cat.ID] {
			continue
		}
		quiet := last == nil || asOf.Sub(*last) > 7*24*time.Hour
		d := Donor{
			CategoryID:  cat.ID,
			Name:        cat.Name,
			Available:   line.Available,
			Flexibility: FlexibilityScore(cat, line, last, month, asOf),
		}
		plan.Donors = append(plan.Donors, d)
		donors = append(donors, &donorState{donor: d, groupID: cat.GroupID, remaining: line.Available, quiet: quiet})
	}

	sort.Slice(plan.Overspends, func(i, j int) bool {
		if plan.Overspends[i].Amount != plan.Overspends[j].Amount {
			return plan.Overspends[i].Amount > plan.Overspends[j].Amount
		}
		return plan.Overspends[i].CategoryID < plan.Overspends[j].CategoryID
	})
	sort.Slice(plan.Donors, func(i, j int) bool {
		if plan.Donors[i].Flexibility != plan.Donors[j].Flexibility {
			return plan.Donors[i].Flexibility > plan.Donors[j].Flexibility
		}
		return plan.Donors[i].CategoryID < plan.Donors[j].CategoryID
	})

	for _, need := range plan.Overspends {
		remaining := need.Amount
		for remaining > 0 {
			best := pickDonor(donors, remaining, groupOf[need.CategoryID])
			if best == nil {
				break
			}
			amount := remaining
			if amount > best.remaining {
				amount = best.remaining
			}
			plan.Moves = append(plan.Moves, Move{
				FromCategoryID: best.donor.CategoryID,
				ToCategoryID:   need.CategoryID,
				Amount:         amount,
			})
			best.remaining -= amount
			remaining -= amount
			plan.TotalCovered += amount
		}
	}

	plan.Uncovered = plan.TotalNeed - plan.TotalCovered
	if plan.Uncovered > 0 {
		plan.Alternatives = append(plan.Alternatives,
			fmt.Sprintf("Reduce next month's budget by %s to absorb the remaining overspend", formatCents(plan.Uncovered)))
		for _, d := range donors {
			if strings.Contains(strings.ToLower(d.donor.Name), "emergency") {
				plan.Alternatives = append(plan.Alternatives,
					fmt.Sprintf("Draw the remaining %s from %q", formatCents(plan.Uncovered), d.donor.Name))
				break
			}
		}
	}
	return plan
}

// pickDonor scores remaining donors against one overspend: flexibility plus
// bonuses for covering the whole need, sitting in a different group, and
// having no recent activity.
func pickDonor(donors []*donorState, need int64, needGroup uint) *donorState {
	var best *donorState
	bestScore := -1
	for _, d := range donors {
		if d.remaining <= 0 {
			continue
		}
		score := d.donor.Flexibility
		if d.remaining >= need {
			score += 10
		}
		if d.groupID != needGroup {
			score += 5
		}
		if d.quiet {
			score += 5
		}
		if score > bestScore || (score == bestScore && best != nil && d.donor.CategoryID < best.donor.CategoryID) {
			best = d
			bestScore = score
		}
	}
	return best
}

// InverseMoves returns the moves that exactly undo a plan's moves.
func InverseMoves(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[i] = Move{FromCategoryID: m.ToCategoryID, ToCategoryID: m.FromCategoryID, Amount: m.Amount}
	}
	return out
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
