package engine

import (
	"math"
	"time"

	"zerosum/internal/models"
)

// MonthlyMultiplier converts a per-occurrence cadence into occurrences per
// month. One-off items have no recurring monthly rate and return 0; their
// amount lands entirely in the month they fall due.
func MonthlyMultiplier(c models.Cadence) float64 {
	switch c {
	case models.CadenceWeekly:
		return 52.0 / 12.0
	case models.CadenceBiweekly:
		return 26.0 / 12.0
	case models.CadenceMonthly:
		return 1
	case models.CadenceQuarterly:
		return 1.0 / 3.0
	case models.CadenceYearly:
		return 1.0 / 12.0
	case models.CadenceOnce:
		return 0
	default:
		return 0
	}
}

// NormalizeMonthly converts a per-occurrence amount in cents into a monthly
// rate in cents, rounding half away from zero.
func NormalizeMonthly(amount int64, c models.Cadence) int64 {
	return int64(math.Round(float64(amount) * MonthlyMultiplier(c)))
}

// NextOccurrence advances a due date by one cadence period. For one-off
// items the date is returned unchanged.
func NextOccurrence(due time.Time, c models.Cadence) time.Time {
	switch c {
	case models.CadenceWeekly:
		return due.AddDate(0, 0, 7)
	case models.CadenceBiweekly:
		return due.AddDate(0, 0, 14)
	case models.CadenceMonthly:
		return due.AddDate(0, 1, 0)
	case models.CadenceQuarterly:
		return due.AddDate(0, 3, 0)
	case models.CadenceYearly:
		return due.AddDate(1, 0, 0)
	default:
		return due
	}
}

// BillAmountDueIn returns how much of a bill falls due within the given
// month. Sub-monthly cadences contribute their normalized monthly rate;
// quarterly and yearly bills contribute their nominal amount only in months
// where an occurrence lands; one-off bills only in their due month.
func BillAmountDueIn(bill *models.Bill, month models.Month) int64 {
	anchor := MonthOf(bill.NextDue)
	amount := bill.EffectiveAmount()

	switch bill.Cadence {
	case models.CadenceWeekly, models.CadenceBiweekly:
		if month < anchor {
			return 0
		}
		return NormalizeMonthly(amount, bill.Cadence)
	case models.CadenceMonthly:
		if month < anchor {
			return 0
		}
		return amount
	case models.CadenceQuarterly:
		gap := MonthsBetween(anchor, month)
		if gap >= 0 && gap%3 == 0 {
			return amount
		}
		return 0
	case models.CadenceYearly:
		gap := MonthsBetween(anchor, month)
		if gap >= 0 && gap%12 == 0 {
			return amount
		}
		return 0
	case models.CadenceOnce:
		if month == anchor {
			return amount
		}
		return 0
	default:
		return 0
	}
}
