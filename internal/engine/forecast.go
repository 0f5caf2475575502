package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"zerosum/internal/models"
)

// ForecastMode selects how much history feeds the projection.
type ForecastMode string

const (
	// ForecastPlannedOnly projects from scheduled items alone.
	ForecastPlannedOnly ForecastMode = "planned_only"
	// ForecastPlannedPlusAverage additionally folds in trailing actuals:
	// income is never forecast below plan, and variable spend is estimated
	// from the last 90 days of non-bill outflows.
	ForecastPlannedPlusAverage ForecastMode = "planned_plus_average"
)

// uncategorizedKey buckets outflows that belong to no category: goal
// contributions, debt minimums, and uncategorized variable spend.
const uncategorizedKey uint = 0

// ForecastMonth is one projected month of cash flow.
type ForecastMonth struct {
	Month      models.Month   `json:"month"`
	Income     int64          `json:"income"`
	Outflows   map[uint]int64 `json:"outflows"`
	Outflow    int64          `json:"outflow"`
	Net        int64          `json:"net"`
	EndingCash int64          `json:"ending_cash"`
}

// CashFlowForecast is a multi-month projection starting the month after Start.
type CashFlowForecast struct {
	Start         models.Month    `json:"start"`
	Mode          ForecastMode    `json:"mode"`
	LiquidCashNow int64           `json:"liquid_cash_now"`
	Months        []ForecastMonth `json:"months"`
}

// SavingsRunway reports how long liquid cash sustains the current burn.
// When monthly net is non-negative there is no depletion: Unbounded is set
// and RunwayMonths/DepletionMonth are meaningless rather than divided by a
// non-negative number.
type SavingsRunway struct {
	LiquidCashNow          int64         `json:"liquid_cash_now"`
	MonthlyIncomeForecast  int64         `json:"monthly_income_forecast"`
	MonthlyOutflowForecast int64         `json:"monthly_outflow_forecast"`
	MonthlyNet             int64         `json:"monthly_net"`
	RunwayMonths           float64       `json:"runway_months"`
	Unbounded              bool          `json:"unbounded"`
	DepletionMonth         *models.Month `json:"depletion_month,omitempty"`
	IsCritical             bool          `json:"is_critical"`
	WarningThresholdMonths int           `json:"warning_threshold_months"`
}

// LiquidCash sums the positive balances of on-budget checking and savings
// accounts. Credit balances and off-budget accounts never add to runway.
func LiquidCash(snap *Snapshot) int64 {
	var total int64
	for i := range snap.Accounts {
		a := &snap.Accounts[i]
		if !a.OnBudget || a.Type == models.AccountTypeCredit {
			continue
		}
		if a.Balance > 0 {
			total += a.Balance
		}
	}
	return total
}

// MonthlyIncomeForecast returns the projected monthly income. In planned-only
// mode this is the normalized sum of income sources; with averages it is the
// greater of that plan and the 3-month trailing average of actual inflows,
// so the forecast never drops below what is already scheduled.
func MonthlyIncomeForecast(snap *Snapshot, mode ForecastMode, asOf time.Time) int64 {
	planned := int64(0)
	for i := range snap.IncomeSources {
		planned += NormalizeMonthly(snap.IncomeSources[i].Amount, snap.IncomeSources[i].Cadence)
	}
	if mode != ForecastPlannedPlusAverage {
		return planned
	}
	if avg := trailingInflowAverage(snap, asOf); avg > planned {
		return avg
	}
	return planned
}

// trailingInflowAverage is the 90-day inflow total expressed as a monthly rate.
func trailingInflowAverage(snap *Snapshot, asOf time.Time) int64 {
	cutoff := asOf.AddDate(0, 0, -90)
	var total int64
	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.Direction == models.DirectionInflow && t.Date.After(cutoff) && !t.Date.After(asOf) {
			total += t.Amount
		}
	}
	return total / 3
}

// billCategories returns the set of categories covered by bills.
func billCategories(snap *Snapshot) map[uint]bool {
	covered := make(map[uint]bool, len(snap.Bills))
	for i := range snap.Bills {
		covered[snap.Bills[i].CategoryID] = true
	}
	return covered
}

// variableSpendEstimate returns the 90-day trailing outflow average, as a
// monthly rate, per category not covered by a bill. Key 0 collects
// uncategorized outflows. Bill-covered categories are excluded because their
// spend is already planned via the bill itself.
func variableSpendEstimate(snap *Snapshot, asOf time.Time) map[uint]int64 {
	covered := billCategories(snap)
	cutoff := asOf.AddDate(0, 0, -90)
	totals := make(map[uint]int64)

	add := func(categoryID uint, amount int64) {
		if covered[categoryID] {
			return
		}
		totals[categoryID] += amount
	}

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.Direction != models.DirectionOutflow || !t.Date.After(cutoff) || t.Date.After(asOf) {
			continue
		}
		if len(t.Splits) > 0 {
			for _, s := range t.Splits {
				add(s.CategoryID, s.Amount)
			}
			continue
		}
		if t.CategoryID != nil {
			add(*t.CategoryID, t.Amount)
		} else {
			totals[uncategorizedKey] += t.Amount
		}
	}

	for k, v := range totals {
		totals[k] = v / 3
	}
	return totals
}

// plannedContributions sums active goal contributions and debt minimums.
func plannedContributions(snap *Snapshot) int64 {
	var total int64
	for i := range snap.Goals {
		if snap.Goals[i].Status == models.GoalStatusActive {
			total += snap.Goals[i].PlannedMonthly
		}
	}
	for i := range snap.Debts {
		if snap.Debts[i].Balance > 0 {
			total += snap.Debts[i].MinimumPayment
		}
	}
	return total
}

// MonthlyOutflowForecast returns the projected monthly outflow: normalized
// bills, planned goal/debt contributions, and (with averages) the variable
// spend estimate.
func MonthlyOutflowForecast(snap *Snapshot, mode ForecastMode, asOf time.Time) int64 {
	var total int64
	for i := range snap.Bills {
		total += NormalizeMonthly(snap.Bills[i].EffectiveAmount(), snap.Bills[i].Cadence)
	}
	total += plannedContributions(snap)
	if mode == ForecastPlannedPlusAverage {
		for _, v := range variableSpendEstimate(snap, asOf) {
			total += v
		}
	}
	return total
}

// ComputeRunway derives the savings runway from the monthly forecasts.
func ComputeRunway(snap *Snapshot, mode ForecastMode, warningMonths int, asOf time.Time) SavingsRunway {
	runway := SavingsRunway{
		LiquidCashNow:          LiquidCash(snap),
		MonthlyIncomeForecast:  MonthlyIncomeForecast(snap, mode, asOf),
		MonthlyOutflowForecast: MonthlyOutflowForecast(snap, mode, asOf),
		WarningThresholdMonths: warningMonths,
	}
	runway.MonthlyNet = runway.MonthlyIncomeForecast - runway.MonthlyOutflowForecast

	if runway.MonthlyNet >= 0 {
		runway.Unbounded = true
		return runway
	}

	months, _ := decimal.NewFromInt(runway.LiquidCashNow).
		Div(decimal.NewFromInt(-runway.MonthlyNet)).
		Round(1).Float64()
	runway.RunwayMonths = months
	depletion := AddMonths(MonthOf(asOf), int(months))
	runway.DepletionMonth = &depletion
	runway.IsCritical = months <= float64(warningMonths)
	return runway
}

// ProjectCashFlow projects income and per-category outflows for the given
// number of months beginning the month after asOf. Quarterly, yearly, and
// one-off bills land in the months they actually fall due.
func ProjectCashFlow(snap *Snapshot, mode ForecastMode, months int, asOf time.Time) CashFlowForecast {
	forecast := CashFlowForecast{
		Start:         MonthOf(asOf),
		Mode:          mode,
		LiquidCashNow: LiquidCash(snap),
	}

	income := MonthlyIncomeForecast(snap, mode, asOf)
	contributions := plannedContributions(snap)
	var variable map[uint]int64
	if mode == ForecastPlannedPlusAverage {
		variable = variableSpendEstimate(snap, asOf)
	}

	cash := forecast.LiquidCashNow
	for i := 1; i <= months; i++ {
		month := AddMonths(forecast.Start, i)
		fm := ForecastMonth{
			Month:    month,
			Income:   income,
			Outflows: make(map[uint]int64),
		}

		for j := range snap.Bills {
			bill := &snap.Bills[j]
			if due := BillAmountDueIn(bill, month); due > 0 {
				fm.Outflows[bill.CategoryID] += due
			}
		}
		fm.Outflows[uncategorizedKey] += contributions
		for categoryID, amount := range variable {
			fm.Outflows[categoryID] += amount
		}

		for _, amount := range fm.Outflows {
			fm.Outflow += amount
		}
		fm.Net = fm.Income - fm.Outflow
		cash += fm.Net
		fm.EndingCash = cash
		forecast.Months = append(forecast.Months, fm)
	}
	return forecast
}
