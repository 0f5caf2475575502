package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
)

// rebalanceService proposes and applies overspend rebalances.
type rebalanceService struct {
	db *gorm.DB
}

// NewRebalanceService creates a new RebalanceServicer.
func NewRebalanceService(db *gorm.DB) RebalanceServicer {
	return &rebalanceService{db: db}
}

// Suggest builds a rebalance plan for the month's overspent categories.
func (s *rebalanceService) Suggest(month models.Month, asOf time.Time) (*engine.RebalancePlan, error) {
	if !monthKeyPattern.MatchString(string(month)) {
		return nil, apperrors.ErrInvalidMonth
	}

	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}
	plan := engine.BuildRebalancePlan(snap, month, asOf)
	if len(plan.Overspends) == 0 {
		return nil, apperrors.ErrNothingToRebalance
	}
	return &plan, nil
}

// applyMoves shifts assigned amounts between categories for a month. Each
// move debits the source entry and credits the destination, creating entries
// lazily where a category was never funded that month.
func applyMoves(tx *gorm.DB, month models.Month, moves []engine.Move) error {
	for _, m := range moves {
		if m.Amount <= 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "move amounts must be positive")
		}
		if m.FromCategoryID == m.ToCategoryID {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "cannot move funds to the same category")
		}
		if err := shiftAssigned(tx, m.FromCategoryID, month, -m.Amount); err != nil {
			return err
		}
		if err := shiftAssigned(tx, m.ToCategoryID, month, m.Amount); err != nil {
			return err
		}
	}
	return nil
}

func shiftAssigned(tx *gorm.DB, categoryID uint, month models.Month, delta int64) error {
	var entry models.BudgetEntry
	err := tx.Where("category_id = ? AND month = ?", categoryID, month).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.BudgetEntry{CategoryID: categoryID, Month: month}
		if err := tx.Create(&entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	} else if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entry.Assigned += delta
	if err := tx.Save(&entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Apply executes a set of moves and records them as an immutable
// reassignment so they can be reversed later.
func (s *rebalanceService) Apply(month models.Month, moves []engine.Move) (*models.Reassignment, error) {
	if !monthKeyPattern.MatchString(string(month)) {
		return nil, apperrors.ErrInvalidMonth
	}
	if len(moves) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one move is required")
	}

	for _, m := range moves {
		for _, id := range []uint{m.FromCategoryID, m.ToCategoryID} {
			var category models.Category
			if err := s.db.First(&category, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.ErrCategoryNotFound
				}
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
	}

	reassignment := &models.Reassignment{Month: month}
	for _, m := range moves {
		reassignment.Moves = append(reassignment.Moves, models.ReassignmentMove{
			FromCategoryID: m.FromCategoryID,
			ToCategoryID:   m.ToCategoryID,
			Amount:         m.Amount,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyMoves(tx, month, moves); err != nil {
			return err
		}
		if err := tx.Create(reassignment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reassignment, nil
}

// Reverse re-applies the exact inverse of a reassignment's moves. A
// reassignment can only be reversed once; the record itself is never edited
// beyond the reversed flag.
func (s *rebalanceService) Reverse(reassignmentID uint) (*models.Reassignment, error) {
	var reassignment models.Reassignment
	if err := s.db.Preload("Moves").First(&reassignment, reassignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReassignmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if reassignment.Reversed {
		return nil, apperrors.ErrAlreadyReversed
	}

	moves := make([]engine.Move, 0, len(reassignment.Moves))
	for _, m := range reassignment.Moves {
		moves = append(moves, engine.Move{FromCategoryID: m.FromCategoryID, ToCategoryID: m.ToCategoryID, Amount: m.Amount})
	}
	inverse := engine.InverseMoves(moves)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyMoves(tx, reassignment.Month, inverse); err != nil {
			return err
		}
		reassignment.Reversed = true
		if err := tx.Save(&reassignment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reassignment, nil
}

// GetReassignments lists applied reassignments, newest first.
func (s *rebalanceService) GetReassignments(month *models.Month) ([]models.Reassignment, error) {
	query := s.db.Preload("Moves")
	if month != nil {
		query = query.Where("month = ?", *month)
	}

	var reassignments []models.Reassignment
	if err := query.Order("id DESC").Find(&reassignments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return reassignments, nil
}
