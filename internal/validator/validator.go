// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var monthKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month_key", validateMonthKey)
		_ = v.RegisterValidation("cadence", validateCadence)
		_ = v.RegisterValidation("rollover_policy", validateRolloverPolicy)
		_ = v.RegisterValidation("rollover_negative", validateRolloverNegative)
		_ = v.RegisterValidation("direction", validateDirection)
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("payoff_method", validatePayoffMethod)
		_ = v.RegisterValidation("goal_status", validateGoalStatus)
		_ = v.RegisterValidation("adjustment_type", validateAdjustmentType)
		_ = v.RegisterValidation("forecast_mode", validateForecastMode)
	}
}

func validateMonthKey(fl validator.FieldLevel) bool {
	return monthKeyRegex.MatchString(fl.Field().String())
}

func validateCadence(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "biweekly", "monthly", "quarterly", "yearly", "once":
		return true
	}
	return false
}

func validateRolloverPolicy(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "carry", "return":
		return true
	}
	return false
}

func validateRolloverNegative(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "reduce_ta", "ignore":
		return true
	}
	return false
}

func validateDirection(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "inflow", "outflow", "transfer":
		return true
	}
	return false
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "checking", "savings", "credit":
		return true
	}
	return false
}

func validatePayoffMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "avalanche", "snowball":
		return true
	}
	return false
}

func validateGoalStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "ACTIVE", "PAUSED", "COMPLETED", "ARCHIVED":
		return true
	}
	return false
}

func validateAdjustmentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "percentage", "fixed_amount":
		return true
	}
	return false
}

func validateForecastMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "planned_only", "planned_plus_average":
		return true
	}
	return false
}
