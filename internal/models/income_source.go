package models

// IncomeSource is a planned, recurring income stream (salary, side gig)
// used by the forecast projector. One-off windfalls are plain inflow
// transactions, not income sources.
type IncomeSource struct {
	Base
	Name    string  `gorm:"not null" json:"name"`
	Amount  int64   `gorm:"not null" json:"amount"`
	Cadence Cadence `gorm:"not null" json:"cadence"`
}
