package models

import "time"

// Cadence represents how often a planned item recurs
type Cadence string

const (
	CadenceWeekly    Cadence = "weekly"
	CadenceBiweekly  Cadence = "biweekly"
	CadenceMonthly   Cadence = "monthly"
	CadenceQuarterly Cadence = "quarterly"
	CadenceYearly    Cadence = "yearly"
	CadenceOnce      Cadence = "once"
)

// Bill is a recurring or one-off obligation linked to a category. It drives
// the group min-required figure and the due-soon/overdue lists. A flexible
// bill (e.g. a utility that varies) contributes its recorded trailing
// average instead of its nominal amount when one has been recorded.
type Bill struct {
	Base
	Name            string    `gorm:"not null" json:"name"`
	Amount          int64     `gorm:"not null" json:"amount"`
	Cadence         Cadence   `gorm:"not null" json:"cadence"`
	NextDue         time.Time `gorm:"not null;index" json:"next_due"`
	CategoryID      uint      `gorm:"not null;index" json:"category_id"`
	Flexible        bool      `gorm:"not null;default:false" json:"flexible"`
	TrailingAverage *int64    `json:"trailing_average,omitempty"`
	Autopay         bool      `gorm:"not null;default:false" json:"autopay"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// EffectiveAmount returns the amount a flexible bill should be planned at.
func (b *Bill) EffectiveAmount() int64 {
	if b.Flexible && b.TrailingAverage != nil {
		return *b.TrailingAverage
	}
	return b.Amount
}
