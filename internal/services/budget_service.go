package services

import (
	"errors"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// budgetService handles fund assignment and derived monthly figures.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// Assign sets the amount assigned to a category for a month, upserting the
// month's budget entry. Assigning zero is how funds are withdrawn; negative
// amounts are rejected.
func (s *budgetService) Assign(categoryID uint, month models.Month, amount int64) (*models.BudgetEntry, error) {
	if amount < 0 {
		return nil, apperrors.ErrNegativeAssignment
	}
	if !monthKeyPattern.MatchString(string(month)) {
		return nil, apperrors.ErrInvalidMonth
	}

	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.Archived {
		return nil, apperrors.ErrCategoryArchived
	}

	entry := &models.BudgetEntry{
		CategoryID: categoryID,
		Month:      month,
		Assigned:   amount,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"assigned", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Where("category_id = ? AND month = ?", categoryID, month).First(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// GetMonthSummary computes the month's Ready-to-Assign and category lines.
func (s *budgetService) GetMonthSummary(month models.Month) (*engine.MonthSummary, error) {
	if !monthKeyPattern.MatchString(string(month)) {
		return nil, apperrors.ErrInvalidMonth
	}

	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}
	summary := engine.SummarizeMonth(snap, month)
	return &summary, nil
}

// GetCategoryLedger returns one category's line for a month.
func (s *budgetService) GetCategoryLedger(categoryID uint, month models.Month) (*engine.CategoryLedger, error) {
	if !monthKeyPattern.MatchString(string(month)) {
		return nil, apperrors.ErrInvalidMonth
	}

	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}
	line := engine.NewLedger(snap).Entry(categoryID, month)
	return &line, nil
}

// GetGroupRollup aggregates a group's ledgers and bill minimums for a month.
func (s *budgetService) GetGroupRollup(groupID uint, month models.Month) (*engine.GroupRollup, error) {
	if !monthKeyPattern.MatchString(string(month)) {
		return nil, apperrors.ErrInvalidMonth
	}

	var group models.CategoryGroup
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}
	rollup := engine.RollupGroup(snap, groupID, month)
	return &rollup, nil
}
