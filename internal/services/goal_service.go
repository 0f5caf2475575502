package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
)

// goalService handles savings goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// allowedTransitions maps each goal status to the statuses it may move to.
var allowedTransitions = map[models.GoalStatus][]models.GoalStatus{
	models.GoalStatusActive:    {models.GoalStatusPaused, models.GoalStatusCompleted, models.GoalStatusArchived},
	models.GoalStatusPaused:    {models.GoalStatusActive, models.GoalStatusArchived},
	models.GoalStatusCompleted: {models.GoalStatusArchived},
	models.GoalStatusArchived:  {},
}

// CreateGoal creates an active savings goal.
func (s *goalService) CreateGoal(name string, target int64, targetMonth *models.Month, priority int, plannedMonthly int64) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if target <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}
	if plannedMonthly < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "planned monthly contribution cannot be negative")
	}
	if priority < 1 || priority > 5 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "priority must be between 1 and 5")
	}

	goal := &models.Goal{
		Name:           name,
		TargetAmount:   target,
		TargetMonth:    targetMonth,
		Priority:       priority,
		Status:         models.GoalStatusActive,
		PlannedMonthly: plannedMonthly,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetGoals returns goals, optionally filtered by status, highest priority first.
func (s *goalService) GetGoals(status *models.GoalStatus) ([]models.Goal, error) {
	query := s.db.Preload("Contributions")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var goals []models.Goal
	if err := query.Order("priority, id").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetGoalByID returns one goal with its contribution ledger.
func (s *goalService) GetGoalByID(goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Preload("Contributions").First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies partial updates to a goal.
func (s *goalService) UpdateGoal(goalID uint, name *string, target *int64, targetMonth *models.Month, priority *int, plannedMonthly *int64) (*models.Goal, error) {
	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
		}
		goal.Name = *name
	}
	if target != nil {
		if *target <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
		}
		goal.TargetAmount = *target
	}
	if targetMonth != nil {
		goal.TargetMonth = targetMonth
	}
	if priority != nil {
		if *priority < 1 || *priority > 5 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "priority must be between 1 and 5")
		}
		goal.Priority = *priority
	}
	if plannedMonthly != nil {
		if *plannedMonthly < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "planned monthly contribution cannot be negative")
		}
		goal.PlannedMonthly = *plannedMonthly
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// DeleteGoal soft-deletes a goal and its contribution ledger.
func (s *goalService) DeleteGoal(goalID uint) error {
	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.GoalContribution{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// SetGoalStatus moves a goal through its lifecycle. Archived is terminal.
func (s *goalService) SetGoalStatus(goalID uint, status models.GoalStatus) (*models.Goal, error) {
	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range allowedTransitions[goal.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidGoalStatus,
			"cannot move goal from "+string(goal.Status)+" to "+string(status))
	}

	goal.Status = status
	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// Contribute appends to a goal's contribution ledger. Corrections are new
// negative entries, never edits. Reaching the target flips the goal to
// completed automatically.
func (s *goalService) Contribute(goalID uint, amount int64, date time.Time, note string) (*models.GoalContribution, error) {
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution amount cannot be zero")
	}

	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status != models.GoalStatusActive {
		return nil, apperrors.ErrGoalNotActive
	}

	contribution := &models.GoalContribution{
		GoalID: goalID,
		Amount: amount,
		Date:   date,
		Note:   note,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contribution).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if goal.Saved()+amount >= goal.TargetAmount {
			goal.Status = models.GoalStatusCompleted
			if err := tx.Save(goal).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contribution, nil
}

// GetProgress reports how a goal tracks against its target. The on-track
// figures are only meaningful for goals with a target month.
func (s *goalService) GetProgress(goalID uint, asOf time.Time) (*GoalProgress, error) {
	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return nil, err
	}

	saved := goal.Saved()
	remaining := goal.TargetAmount - saved
	if remaining < 0 {
		remaining = 0
	}

	progress := &GoalProgress{
		Goal:      *goal,
		Saved:     saved,
		Remaining: remaining,
	}
	if goal.TargetAmount > 0 {
		progress.PercentComplete = math.Min(100, float64(saved)/float64(goal.TargetAmount)*100)
	}

	if goal.PlannedMonthly > 0 && remaining > 0 {
		monthsNeeded := int(math.Ceil(float64(remaining) / float64(goal.PlannedMonthly)))
		finish := engine.AddMonths(engine.MonthOf(asOf), monthsNeeded)
		progress.ProjectedFinish = &finish
	}

	if goal.TargetMonth != nil {
		monthsLeft := engine.MonthsBetween(engine.MonthOf(asOf), *goal.TargetMonth)
		if monthsLeft < 0 {
			monthsLeft = 0
		}
		progress.MonthsRemaining = &monthsLeft

		var required int64
		if monthsLeft > 0 {
			required = int64(math.Ceil(float64(remaining) / float64(monthsLeft)))
		} else {
			required = remaining
		}
		progress.RequiredMonthly = &required

		onTrack := goal.PlannedMonthly >= required
		progress.OnTrack = &onTrack
	}

	return progress, nil
}
