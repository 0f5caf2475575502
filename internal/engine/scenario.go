package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"zerosum/internal/models"
)

// ShockTemplate is a named, reusable global shock. Shocks scale the running
// income and outflow totals by a percentage; they apply after the scenario's
// own adjustments, in the order the scenario lists them.
type ShockTemplate struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	IncomePercent  float64 `json:"income_percent"`
	OutflowPercent float64 `json:"outflow_percent"`
}

var shockTemplates = []ShockTemplate{
	{Name: "job_loss", Description: "Primary income cut in half", IncomePercent: -50},
	{Name: "pay_cut", Description: "Across-the-board 15% income reduction", IncomePercent: -15},
	{Name: "inflation_spike", Description: "All spending up 8%", OutflowPercent: 8},
	{Name: "windfall", Description: "10% income bump", IncomePercent: 10},
}

// ShockTemplates lists the available global shock templates.
func ShockTemplates() []ShockTemplate {
	out := make([]ShockTemplate, len(shockTemplates))
	copy(out, shockTemplates)
	return out
}

// LookupShock resolves a shock template by name.
func LookupShock(name string) (ShockTemplate, bool) {
	for _, t := range shockTemplates {
		if t.Name == name {
			return t, true
		}
	}
	return ShockTemplate{}, false
}

// AdjustedForecast is a baseline forecast with a scenario applied.
type AdjustedForecast struct {
	ScenarioName string          `json:"scenario_name"`
	Mode         ForecastMode    `json:"mode"`
	Start        models.Month    `json:"start"`
	Months       []ForecastMonth `json:"months"`
}

// ApplyScenario produces the scenario's alternate timeline from a baseline
// forecast. Adjustments apply in declared order, then global shocks, each
// percentage computing off the running value as of immediately before it —
// two +10% adjustments compound to +21%, they do not add to +20%. The
// baseline is never mutated.
func ApplyScenario(base CashFlowForecast, scn *models.Scenario) (*AdjustedForecast, error) {
	for _, adj := range scn.Adjustments {
		if adj.StartMonth != nil && adj.EndMonth != nil && *adj.StartMonth >= *adj.EndMonth {
			return nil, fmt.Errorf("scenario %q: adjustment window start %s must precede end %s", scn.Name, *adj.StartMonth, *adj.EndMonth)
		}
	}
	shocks := make([]ShockTemplate, 0, len(scn.Shocks))
	for _, s := range scn.Shocks {
		t, ok := LookupShock(s.Name)
		if !ok {
			return nil, fmt.Errorf("scenario %q: unknown shock %q", scn.Name, s.Name)
		}
		shocks = append(shocks, t)
	}

	out := &AdjustedForecast{ScenarioName: scn.Name, Mode: base.Mode, Start: base.Start}
	defaultStart := NextMonth(base.Start)
	cash := base.LiquidCashNow

	for _, fm := range base.Months {
		adj := ForecastMonth{
			Month:    fm.Month,
			Income:   fm.Income,
			Outflows: make(map[uint]int64, len(fm.Outflows)),
		}
		for k, v := range fm.Outflows {
			adj.Outflows[k] = v
		}

		for i := range scn.Adjustments {
			applyAdjustment(&adj, &scn.Adjustments[i], defaultStart)
		}
		for _, shock := range shocks {
			adj.Income = ScalePercent(adj.Income, shock.IncomePercent)
			if shock.OutflowPercent != 0 {
				for k, v := range adj.Outflows {
					adj.Outflows[k] = ScalePercent(v, shock.OutflowPercent)
				}
			}
		}

		adj.Outflow = 0
		for _, v := range adj.Outflows {
			adj.Outflow += v
		}
		adj.Net = adj.Income - adj.Outflow
		cash += adj.Net
		adj.EndingCash = cash
		out.Months = append(out.Months, adj)
	}
	return out, nil
}

func applyAdjustment(fm *ForecastMonth, adj *models.ScenarioAdjustment, defaultStart models.Month) {
	start := defaultStart
	if adj.StartMonth != nil {
		start = *adj.StartMonth
	}
	if fm.Month < start {
		return
	}
	if adj.EndMonth != nil && fm.Month > *adj.EndMonth {
		return
	}

	if adj.CategoryID == nil {
		switch adj.Type {
		case models.AdjustmentPercentage:
			fm.Income = ScalePercent(fm.Income, adj.Percent)
		case models.AdjustmentFixed:
			fm.Income += adj.Amount
		}
		return
	}

	id := *adj.CategoryID
	switch adj.Type {
	case models.AdjustmentPercentage:
		fm.Outflows[id] = ScalePercent(fm.Outflows[id], adj.Percent)
	case models.AdjustmentFixed:
		fm.Outflows[id] += adj.Amount
	}
}

// ScalePercent applies a percentage to a cent value, rounding to whole cents.
func ScalePercent(value int64, percent float64) int64 {
	if percent == 0 {
		return value
	}
	return decimal.NewFromInt(value).
		Mul(decimal.NewFromFloat(1 + percent/100)).
		Round(0).
		IntPart()
}

// ComparisonRow is one line of a scenario comparison: the horizon total for
// income or one category under the baseline and under each scenario.
type ComparisonRow struct {
	Label      string           `json:"label"`
	CategoryID *uint            `json:"category_id,omitempty"`
	Base       int64            `json:"base"`
	Values     map[string]int64 `json:"values"`
	Deltas     map[string]int64 `json:"deltas"`
}

// ScenarioComparison tabulates several scenarios against one baseline,
// sorted by the last ("stress") scenario's absolute delta descending so the
// biggest risk reads first.
type ScenarioComparison struct {
	Start     models.Month    `json:"start"`
	Horizon   int             `json:"horizon_months"`
	Scenarios []string        `json:"scenarios"`
	Rows      []ComparisonRow `json:"rows"`
}

// CompareScenarios applies each scenario to the baseline and diffs totals
// per category and for income.
func CompareScenarios(base CashFlowForecast, scenarios []*models.Scenario, categoryNames map[uint]string) (*ScenarioComparison, error) {
	cmp := &ScenarioComparison{Start: base.Start, Horizon: len(base.Months)}

	adjusted := make([]*AdjustedForecast, 0, len(scenarios))
	for _, scn := range scenarios {
		af, err := ApplyScenario(base, scn)
		if err != nil {
			return nil, err
		}
		adjusted = append(adjusted, af)
		cmp.Scenarios = append(cmp.Scenarios, scn.Name)
	}

	incomeRow := ComparisonRow{Label: "income", Values: map[string]int64{}, Deltas: map[string]int64{}}
	rowsByCategory := make(map[uint]*ComparisonRow)

	for _, fm := range base.Months {
		incomeRow.Base += fm.Income
		for id, v := range fm.Outflows {
			row := ensureRow(rowsByCategory, id, categoryNames)
			row.Base += v
		}
	}
	for i, af := range adjusted {
		name := cmp.Scenarios[i]
		for _, fm := range af.Months {
			incomeRow.Values[name] += fm.Income
			for id, v := range fm.Outflows {
				row := ensureRow(rowsByCategory, id, categoryNames)
				row.Values[name] += v
			}
		}
	}

	incomeRow.fillDeltas(cmp.Scenarios)
	cmp.Rows = append(cmp.Rows, incomeRow)
	for _, row := range rowsByCategory {
		row.fillDeltas(cmp.Scenarios)
		cmp.Rows = append(cmp.Rows, *row)
	}

	stress := ""
	if len(cmp.Scenarios) > 0 {
		stress = cmp.Scenarios[len(cmp.Scenarios)-1]
	}
	sort.SliceStable(cmp.Rows, func(i, j int) bool {
		di, dj := abs(cmp.Rows[i].Deltas[stress]), abs(cmp.Rows[j].Deltas[stress])
		if di != dj {
			return di > dj
		}
		return cmp.Rows[i].Label < cmp.Rows[j].Label
	})
	return cmp, nil
}

func ensureRow(rows map[uint]*ComparisonRow, id uint, names map[uint]string) *ComparisonRow {
	if row, ok := rows[id]; ok {
		return row
	}
	label := names[id]
	if label == "" {
		label = "uncategorized"
	}
	catID := id
	row := &ComparisonRow{Label: label, CategoryID: &catID, Values: map[string]int64{}, Deltas: map[string]int64{}}
	rows[id] = row
	return row
}

func (r *ComparisonRow) fillDeltas(scenarios []string) {
	for _, name := range scenarios {
		r.Deltas[name] = r.Values[name] - r.Base
	}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
