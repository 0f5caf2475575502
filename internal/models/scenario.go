package models

// AdjustmentType represents how a scenario adjustment is applied
type AdjustmentType string

const (
	// AdjustmentPercentage scales the running value by Percent.
	AdjustmentPercentage AdjustmentType = "percentage"
	// AdjustmentFixed adds Amount cents to the running value.
	AdjustmentFixed AdjustmentType = "fixed_amount"
)

// Scenario is a named set of what-if adjustments plus applied global shock
// templates. Forecasting with a scenario never mutates the base plan; only
// an explicit apply does.
type Scenario struct {
	Base
	Name string `gorm:"not null" json:"name"`

	Adjustments []ScenarioAdjustment `gorm:"foreignKey:ScenarioID" json:"adjustments,omitempty"`
	Shocks      []ScenarioShock      `gorm:"foreignKey:ScenarioID" json:"shocks,omitempty"`
}

// ScenarioAdjustment targets total income (CategoryID nil) or one category.
// Percent is used for percentage adjustments (+10 means +10%), Amount for
// fixed ones. Both window bounds are inclusive and the start must precede
// the end; a nil StartMonth defaults to the month after the forecast
// baseline starts.
type ScenarioAdjustment struct {
	Base
	ScenarioID uint           `gorm:"not null;index" json:"scenario_id"`
	CategoryID *uint          `json:"category_id,omitempty"`
	Type       AdjustmentType `gorm:"not null" json:"type"`
	Percent    float64        `json:"percent"`
	Amount     int64          `json:"amount"`
	StartMonth *Month         `json:"start_month,omitempty"`
	EndMonth   *Month         `json:"end_month,omitempty"`
}

// ScenarioShock applies a named global shock template to the scenario.
type ScenarioShock struct {
	Base
	ScenarioID uint   `gorm:"not null;index" json:"scenario_id"`
	Name       string `gorm:"not null" json:"name"`
}
