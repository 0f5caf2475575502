package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"zerosum/internal/models"
)

// PayoffMethod orders debts for extra-payment targeting.
type PayoffMethod string

const (
	// PayoffAvalanche targets the highest effective APR first.
	PayoffAvalanche PayoffMethod = "avalanche"
	// PayoffSnowball targets the smallest remaining balance first.
	PayoffSnowball PayoffMethod = "snowball"
)

// payoffCapMonths bounds the simulation at 50 years; hitting the cap with
// balances outstanding means the plan never converges.
const payoffCapMonths = 600

// ErrPayoffStalled reports a plan whose payments never retire the principal
// (e.g. minimums smaller than monthly interest accrual).
var ErrPayoffStalled = errors.New("payments never retire the principal")

// LumpSum is a one-time extra payment scheduled for a calendar month.
type LumpSum struct {
	Month  models.Month `json:"month"`
	Amount int64        `json:"amount"`
}

// PayoffOptions configures a payoff simulation.
type PayoffOptions struct {
	Method           PayoffMethod `json:"method"`
	ExtraPerMonth    int64        `json:"extra_per_month"`
	LumpSum          *LumpSum     `json:"lump_sum,omitempty"`
	RoundUpToNearest int64        `json:"round_up_to_nearest,omitempty"`
	KeepMinimums     bool         `json:"keep_minimums"`
	StartMonth       models.Month `json:"start_month"`
}

// DebtMilestone marks the month a debt reaches zero.
type DebtMilestone struct {
	DebtID     uint         `json:"debt_id"`
	Name       string       `json:"name"`
	Month      models.Month `json:"month"`
	MonthIndex int          `json:"month_index"`
	Message    string       `json:"message"`
}

// PayoffMonth is one simulated month of the schedule.
type PayoffMonth struct {
	Month            models.Month   `json:"month"`
	Payments         map[uint]int64 `json:"payments"`
	InterestAccrued  int64          `json:"interest_accrued"`
	TotalPaid        int64          `json:"total_paid"`
	RemainingBalance int64          `json:"remaining_balance"`
}

// PayoffSchedule is the outcome of a payoff simulation. InterestSaved and
// MonthsSaved compare against a minimum-only baseline of the same debts;
// BaselineStalled is set when minimums alone never converge (the savings
// figures are then meaningless).
type PayoffSchedule struct {
	Method            PayoffMethod    `json:"method"`
	MonthsToDebtFree  int             `json:"months_to_debt_free"`
	DebtFreeMonth     models.Month    `json:"debt_free_month"`
	TotalPaid         int64           `json:"total_paid"`
	TotalInterestPaid int64           `json:"total_interest_paid"`
	InterestSaved     int64           `json:"interest_saved"`
	MonthsSaved       int             `json:"months_saved"`
	BaselineStalled   bool            `json:"baseline_stalled,omitempty"`
	Milestones        []DebtMilestone `json:"milestones"`
	Timeline          []PayoffMonth   `json:"timeline"`
}

// monthlyInterest accrues one month of interest on a cent balance at the
// given APR, rounded to whole cents. Decimal arithmetic keeps repeated
// accrual from drifting the way float math would.
func monthlyInterest(balance int64, apr float64) int64 {
	return decimal.NewFromInt(balance).
		Mul(decimal.NewFromFloat(apr)).
		Div(decimal.NewFromInt(1200)).
		Round(0).
		IntPart()
}

// roundUpTo rounds a payment up to the next multiple of step. This is
// strictly a payment-size effect; callers cap the result at the balance.
func roundUpTo(payment, step int64) int64 {
	if step <= 0 || payment <= 0 {
		return payment
	}
	if rem := payment % step; rem != 0 {
		return payment + step - rem
	}
	return payment
}

type simDebt struct {
	debt    *models.Debt
	balance int64
	paidOff bool
}

// SimulatePayoff amortizes the debts month by month under the configured
// method. The debts themselves are never mutated; the simulation runs on
// copies of the balances.
func SimulatePayoff(debts []models.Debt, opts PayoffOptions) (*PayoffSchedule, error) {
	if opts.StartMonth == "" {
		return nil, fmt.Errorf("payoff: start month required")
	}

	schedule, err := simulate(debts, opts)
	if err != nil {
		return nil, err
	}

	if opts.ExtraPerMonth > 0 || opts.LumpSum != nil {
		baselineOpts := opts
		baselineOpts.ExtraPerMonth = 0
		baselineOpts.LumpSum = nil
		baseline, err := simulate(debts, baselineOpts)
		if err != nil {
			if errors.Is(err, ErrPayoffStalled) {
				// Extra payments converge where minimums alone never would;
				// there is no baseline to diff against.
				schedule.BaselineStalled = true
				return schedule, nil
			}
			return nil, err
		}
		schedule.InterestSaved = baseline.TotalInterestPaid - schedule.TotalInterestPaid
		schedule.MonthsSaved = baseline.MonthsToDebtFree - schedule.MonthsToDebtFree
	}
	return schedule, nil
}

func simulate(debts []models.Debt, opts PayoffOptions) (*PayoffSchedule, error) {
	sim := make([]*simDebt, 0, len(debts))
	for i := range debts {
		if debts[i].Balance > 0 {
			sim = append(sim, &simDebt{debt: &debts[i], balance: debts[i].Balance})
		}
	}
	schedule := &PayoffSchedule{Method: opts.Method}
	if len(sim) == 0 {
		schedule.DebtFreeMonth = opts.StartMonth
		return schedule, nil
	}

	redirected := int64(0) // freed minimums, when KeepMinimums is set

	for idx := 1; idx <= payoffCapMonths; idx++ {
		month := AddMonths(opts.StartMonth, idx-1)
		pm := PayoffMonth{Month: month, Payments: make(map[uint]int64)}
		freedThisMonth := int64(0)

		active := activeDebts(sim)
		if len(active) == 0 {
			break
		}
		orderDebts(active, opts.Method, month)

		// Minimum pass: accrue interest, then pay the minimum on every
		// active debt.
		for _, d := range active {
			interest := monthlyInterest(d.balance, d.debt.EffectiveAPR(month))
			d.balance += interest
			pm.InterestAccrued += interest
			schedule.TotalInterestPaid += interest

			payment := roundUpTo(d.debt.MinimumPayment, opts.RoundUpToNearest)
			if payment > d.balance {
				payment = d.balance
			}
			d.balance -= payment
			pm.Payments[d.debt.ID] += payment
			pm.TotalPaid += payment
		}

		// Extra pass: the whole pool goes to the top debt in method order,
		// cascading to the next when a balance hits zero mid-month.
		pool := opts.ExtraPerMonth + redirected
		if opts.LumpSum != nil && opts.LumpSum.Month == month {
			pool += opts.LumpSum.Amount
		}
		for _, d := range active {
			if pool <= 0 {
				break
			}
			if d.balance <= 0 {
				continue
			}
			payment := pool
			if payment > d.balance {
				payment = d.balance
			}
			payment = roundUpTo(payment, opts.RoundUpToNearest)
			if payment > d.balance {
				payment = d.balance
			}
			d.balance -= payment
			pool -= payment
			pm.Payments[d.debt.ID] += payment
			pm.TotalPaid += payment
		}

		for _, d := range active {
			if d.balance == 0 && !d.paidOff {
				d.paidOff = true
				schedule.Milestones = append(schedule.Milestones, DebtMilestone{
					DebtID:     d.debt.ID,
					Name:       d.debt.Name,
					Month:      month,
					MonthIndex: idx,
					Message:    fmt.Sprintf("%s paid off in %s", d.debt.Name, month),
				})
				if opts.KeepMinimums {
					freedThisMonth += d.debt.MinimumPayment
				}
			}
		}
		// Freed minimums join the extra pool starting the following month.
		redirected += freedThisMonth

		for _, d := range sim {
			pm.RemainingBalance += d.balance
		}
		schedule.TotalPaid += pm.TotalPaid
		schedule.Timeline = append(schedule.Timeline, pm)

		if pm.RemainingBalance == 0 {
			schedule.MonthsToDebtFree = idx
			schedule.DebtFreeMonth = month
			return schedule, nil
		}
	}

	return nil, ErrPayoffStalled
}

func activeDebts(sim []*simDebt) []*simDebt {
	out := make([]*simDebt, 0, len(sim))
	for _, d := range sim {
		if d.balance > 0 {
			out = append(out, d)
		}
	}
	return out
}

// orderDebts re-sorts every month: payoffs change snowball order, and promo
// windows expiring change avalanche order. Ties break on debt id so runs
// are deterministic.
func orderDebts(active []*simDebt, method PayoffMethod, month models.Month) {
	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		switch method {
		case PayoffSnowball:
			if a.balance != b.balance {
				return a.balance < b.balance
			}
		default: // avalanche
			ra, rb := a.debt.EffectiveAPR(month), b.debt.EffectiveAPR(month)
			if ra != rb {
				return ra > rb
			}
		}
		return a.debt.ID < b.debt.ID
	})
}
