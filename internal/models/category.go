package models

// RolloverPolicy governs what happens to a category's positive leftover
// at month end.
type RolloverPolicy string

const (
	// RolloverCarry keeps the leftover in the category next month.
	RolloverCarry RolloverPolicy = "carry"
	// RolloverReturn returns positive leftovers to Ready-to-Assign.
	RolloverReturn RolloverPolicy = "return"
)

// RolloverNegative governs what happens to a "return" category's overspend
// at month end. Carry categories drag their negative balance forward instead.
type RolloverNegative string

const (
	// RolloverReduceTA debits next month's Ready-to-Assign by the overspend.
	RolloverReduceTA RolloverNegative = "reduce_ta"
	// RolloverIgnore drops the overspend entirely.
	RolloverIgnore RolloverNegative = "ignore"
)

// CategoryGroup is a named bucket of categories (e.g. "Immediate Obligations").
type CategoryGroup struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`

	Categories []Category `gorm:"foreignKey:GroupID" json:"categories,omitempty"`
}

// Category is a budgeting envelope. Categories referenced by budget entries
// or transactions are never hard-deleted, only archived.
type Category struct {
	Base
	GroupID          uint             `gorm:"not null;index" json:"group_id"`
	Name             string           `gorm:"not null" json:"name"`
	Priority         int              `gorm:"not null;default:3" json:"priority"`
	Rollover         RolloverPolicy   `gorm:"not null;default:carry" json:"rollover"`
	RolloverNegative RolloverNegative `gorm:"not null;default:reduce_ta" json:"rollover_negative"`
	TargetAmount     *int64           `json:"target_amount,omitempty"`
	TargetMonth      *Month           `json:"target_month,omitempty"`
	Archived         bool             `gorm:"not null;default:false" json:"archived"`

	Group CategoryGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}
