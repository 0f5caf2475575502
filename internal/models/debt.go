package models

// Debt is a liability fed to the payoff simulator: principal balance in
// cents, annual percentage rate, and the contractual minimum payment.
// The simulator works on copies and never mutates these rows.
type Debt struct {
	Base
	Name           string   `gorm:"not null" json:"name"`
	Balance        int64    `gorm:"not null" json:"balance"`
	APR            float64  `gorm:"not null" json:"apr"`
	MinimumPayment int64    `gorm:"not null" json:"minimum_payment"`
	PromoAPR       *float64 `json:"promo_apr,omitempty"`
	PromoEndsMonth *Month   `json:"promo_ends_month,omitempty"`
}

// EffectiveAPR returns the rate in force for the given month, honoring a
// promotional window when one is set.
func (d *Debt) EffectiveAPR(month Month) float64 {
	if d.PromoAPR != nil && d.PromoEndsMonth != nil && month < *d.PromoEndsMonth {
		return *d.PromoAPR
	}
	return d.APR
}
