package models

// Reassignment is the immutable record of one applied rebalance: a set of
// fund moves between categories for a month. Reversal re-applies the exact
// inverse deltas and flips Reversed; the record itself is never edited.
type Reassignment struct {
	Base
	Month    Month `gorm:"not null;index" json:"month"`
	Reversed bool  `gorm:"not null;default:false" json:"reversed"`

	Moves []ReassignmentMove `gorm:"foreignKey:ReassignmentID" json:"moves"`
}

// ReassignmentMove moves Amount cents of assigned funds from one category
// to another within the reassignment's month.
type ReassignmentMove struct {
	Base
	ReassignmentID uint  `gorm:"not null;index" json:"reassignment_id"`
	FromCategoryID uint  `gorm:"not null" json:"from_category_id"`
	ToCategoryID   uint  `gorm:"not null" json:"to_category_id"`
	Amount         int64 `gorm:"not null" json:"amount"`
}
