package models

// BudgetEntry records the amount assigned to a category for one month.
// There is at most one entry per (category, month); entries are created
// lazily the first time a category is funded in a month. Amounts are cents.
type BudgetEntry struct {
	Base
	CategoryID uint  `gorm:"not null;uniqueIndex:idx_entry_category_month" json:"category_id"`
	Month      Month `gorm:"not null;uniqueIndex:idx_entry_category_month;index" json:"month"`
	Assigned   int64 `gorm:"not null;default:0" json:"assigned"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
