package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
)

// scenarioService handles what-if planning.
type scenarioService struct {
	db             *gorm.DB
	defaultHorizon int
}

// NewScenarioService creates a new ScenarioServicer.
func NewScenarioService(db *gorm.DB, defaultHorizon int) ScenarioServicer {
	return &scenarioService{db: db, defaultHorizon: defaultHorizon}
}

// CreateScenario stores a named set of adjustments and shock references.
func (s *scenarioService) CreateScenario(name string, adjustments []AdjustmentInput, shocks []string) (*models.Scenario, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "scenario name is required")
	}
	if len(adjustments) == 0 && len(shocks) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a scenario needs at least one adjustment or shock")
	}

	for _, a := range adjustments {
		if a.Type != models.AdjustmentPercentage && a.Type != models.AdjustmentFixed {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "adjustment type must be percentage or fixed_amount")
		}
		if a.StartMonth != nil && a.EndMonth != nil && *a.StartMonth >= *a.EndMonth {
			return nil, apperrors.ErrInvalidAdjustment
		}
		if a.CategoryID != nil {
			var category models.Category
			if err := s.db.First(&category, *a.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.ErrCategoryNotFound
				}
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
	}
	for _, name := range shocks {
		if _, ok := engine.LookupShock(name); !ok {
			return nil, apperrors.WithMessage(apperrors.ErrUnknownShock, "unknown shock template: "+name)
		}
	}

	scenario := &models.Scenario{Name: name}
	for _, a := range adjustments {
		scenario.Adjustments = append(scenario.Adjustments, models.ScenarioAdjustment{
			CategoryID: a.CategoryID,
			Type:       a.Type,
			Percent:    a.Percent,
			Amount:     a.Amount,
			StartMonth: a.StartMonth,
			EndMonth:   a.EndMonth,
		})
	}
	for _, name := range shocks {
		scenario.Shocks = append(scenario.Shocks, models.ScenarioShock{Name: name})
	}

	if err := s.db.Create(scenario).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return scenario, nil
}

// GetScenarios returns all scenarios with their adjustments and shocks.
func (s *scenarioService) GetScenarios() ([]models.Scenario, error) {
	var scenarios []models.Scenario
	if err := s.db.Preload("Adjustments").Preload("Shocks").Order("id").Find(&scenarios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return scenarios, nil
}

// GetScenarioByID returns one scenario.
func (s *scenarioService) GetScenarioByID(scenarioID uint) (*models.Scenario, error) {
	var scenario models.Scenario
	if err := s.db.Preload("Adjustments").Preload("Shocks").First(&scenario, scenarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScenarioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &scenario, nil
}

// DeleteScenario removes a scenario and its adjustments.
func (s *scenarioService) DeleteScenario(scenarioID uint) error {
	scenario, err := s.GetScenarioByID(scenarioID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scenario_id = ?", scenario.ID).Delete(&models.ScenarioAdjustment{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("scenario_id = ?", scenario.ID).Delete(&models.ScenarioShock{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(scenario).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetShockTemplates lists the built-in global shock templates.
func (s *scenarioService) GetShockTemplates() []engine.ShockTemplate {
	return engine.ShockTemplates()
}

func (s *scenarioService) baseline(mode engine.ForecastMode, months int, asOf time.Time) (engine.CashFlowForecast, error) {
	if mode == "" {
		mode = engine.ForecastPlannedOnly
	}
	if !validMode(mode) {
		return engine.CashFlowForecast{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "mode must be planned_only or planned_plus_average")
	}
	if months <= 0 {
		months = s.defaultHorizon
	}

	snap, err := loadSnapshot(s.db)
	if err != nil {
		return engine.CashFlowForecast{}, err
	}
	return engine.ProjectCashFlow(snap, mode, months, asOf), nil
}

// ForecastScenario projects cash flow with the scenario applied. The real
// plan is untouched.
func (s *scenarioService) ForecastScenario(scenarioID uint, mode engine.ForecastMode, months int, asOf time.Time) (*engine.AdjustedForecast, error) {
	scenario, err := s.GetScenarioByID(scenarioID)
	if err != nil {
		return nil, err
	}

	base, err := s.baseline(mode, months, asOf)
	if err != nil {
		return nil, err
	}

	adjusted, err := engine.ApplyScenario(base, scenario)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidAdjustment, err)
	}
	return adjusted, nil
}

// CompareScenarios tabulates several scenarios against the same baseline.
func (s *scenarioService) CompareScenarios(scenarioIDs []uint, mode engine.ForecastMode, months int, asOf time.Time) (*engine.ScenarioComparison, error) {
	if len(scenarioIDs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one scenario id is required")
	}

	scenarios := make([]*models.Scenario, 0, len(scenarioIDs))
	for _, id := range scenarioIDs {
		scenario, err := s.GetScenarioByID(id)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}

	base, err := s.baseline(mode, months, asOf)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	comparison, err := engine.CompareScenarios(base, scenarios, names)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidAdjustment, err)
	}
	return comparison, nil
}

// ApplyToPlan rewrites future budget entries to match the scenario's
// category adjustments. This is the one scenario operation that mutates the
// real plan, so it requires an explicit confirmation and refuses to touch
// the current or past months. Income adjustments and global shocks have no
// budget entry to rewrite and are skipped.
func (s *scenarioService) ApplyToPlan(scenarioID uint, fromMonth models.Month, confirm bool, asOf time.Time) ([]models.BudgetEntry, error) {
	if !confirm {
		return nil, apperrors.ErrApplyNotConfirmed
	}
	if !monthKeyPattern.MatchString(string(fromMonth)) {
		return nil, apperrors.ErrInvalidMonth
	}
	current := engine.MonthOf(asOf)
	if fromMonth <= current {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "scenarios can only be applied to future months")
	}

	scenario, err := s.GetScenarioByID(scenarioID)
	if err != nil {
		return nil, err
	}

	horizon := engine.AddMonths(fromMonth, s.defaultHorizon-1)
	var updated []models.BudgetEntry

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range scenario.Adjustments {
			adj := &scenario.Adjustments[i]
			if adj.CategoryID == nil {
				continue
			}

			start := fromMonth
			if adj.StartMonth != nil && *adj.StartMonth > start {
				start = *adj.StartMonth
			}
			end := horizon
			if adj.EndMonth != nil && *adj.EndMonth < end {
				end = *adj.EndMonth
			}

			for _, month := range engine.MonthRange(start, end) {
				var entry models.BudgetEntry
				findErr := tx.Where("category_id = ? AND month = ?", *adj.CategoryID, month).First(&entry).Error
				if errors.Is(findErr, gorm.ErrRecordNotFound) {
					entry = models.BudgetEntry{CategoryID: *adj.CategoryID, Month: month}
				} else if findErr != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, findErr)
				}

				switch adj.Type {
				case models.AdjustmentPercentage:
					entry.Assigned = engine.ScalePercent(entry.Assigned, adj.Percent)
				case models.AdjustmentFixed:
					entry.Assigned += adj.Amount
				}
				if entry.Assigned < 0 {
					entry.Assigned = 0
				}

				if err := tx.Save(&entry).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				updated = append(updated, entry)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
