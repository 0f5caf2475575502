package services

import (
	"time"

	"gorm.io/gorm"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
)

// forecastService computes runway and cash-flow projections.
type forecastService struct {
	db             *gorm.DB
	warningMonths  int
	defaultHorizon int
}

// NewForecastService creates a new ForecastServicer. warningMonths is the
// runway level at which IsCritical trips; defaultHorizon bounds projections
// when the caller does not say how far to look.
func NewForecastService(db *gorm.DB, warningMonths, defaultHorizon int) ForecastServicer {
	return &forecastService{db: db, warningMonths: warningMonths, defaultHorizon: defaultHorizon}
}

func validMode(mode engine.ForecastMode) bool {
	return mode == engine.ForecastPlannedOnly || mode == engine.ForecastPlannedPlusAverage
}

// GetRunway reports how long liquid cash sustains the current burn rate.
func (s *forecastService) GetRunway(mode engine.ForecastMode, asOf time.Time) (*engine.SavingsRunway, error) {
	if mode == "" {
		mode = engine.ForecastPlannedOnly
	}
	if !validMode(mode) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "mode must be planned_only or planned_plus_average")
	}

	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}
	runway := engine.ComputeRunway(snap, mode, s.warningMonths, asOf)
	return &runway, nil
}

// GetProjection projects month-by-month cash flow starting next month.
func (s *forecastService) GetProjection(mode engine.ForecastMode, months int, asOf time.Time) (*engine.CashFlowForecast, error) {
	if mode == "" {
		mode = engine.ForecastPlannedOnly
	}
	if !validMode(mode) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "mode must be planned_only or planned_plus_average")
	}
	if months <= 0 {
		months = s.defaultHorizon
	}
	if months > 120 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "projection horizon cannot exceed 120 months")
	}

	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}
	forecast := engine.ProjectCashFlow(snap, mode, months, asOf)
	return &forecast, nil
}
