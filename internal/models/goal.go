package models

import "time"

// GoalStatus represents the lifecycle state of a goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "ACTIVE"
	GoalStatusPaused    GoalStatus = "PAUSED"
	GoalStatusCompleted GoalStatus = "COMPLETED"
	GoalStatusArchived  GoalStatus = "ARCHIVED"
)

// Goal is a savings target with an append-only contribution ledger.
type Goal struct {
	Base
	Name           string     `gorm:"not null" json:"name"`
	TargetAmount   int64      `gorm:"not null" json:"target_amount"`
	TargetMonth    *Month     `json:"target_month,omitempty"`
	Priority       int        `gorm:"not null;default:3" json:"priority"`
	Status         GoalStatus `gorm:"not null;default:ACTIVE" json:"status"`
	PlannedMonthly int64      `gorm:"not null;default:0" json:"planned_monthly"`

	Contributions []GoalContribution `gorm:"foreignKey:GoalID" json:"contributions,omitempty"`
}

// Saved returns the total contributed so far.
func (g *Goal) Saved() int64 {
	var total int64
	for _, c := range g.Contributions {
		total += c.Amount
	}
	return total
}

// GoalContribution is one entry in a goal's contribution ledger.
// Contributions are append-only; corrections are new negative entries.
type GoalContribution struct {
	Base
	GoalID uint      `gorm:"not null;index" json:"goal_id"`
	Amount int64     `gorm:"not null" json:"amount"`
	Date   time.Time `gorm:"not null" json:"date"`
	Note   string    `json:"note"`
}
