package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/pagination"
)

// categoryService handles category and group business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateGroup creates a named category group.
func (s *categoryService) CreateGroup(name string) (*models.CategoryGroup, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group name is required")
	}

	group := &models.CategoryGroup{Name: name}
	if err := s.db.Create(group).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return group, nil
}

// GetGroups returns all groups with their categories preloaded.
func (s *categoryService) GetGroups() ([]models.CategoryGroup, error) {
	var groups []models.CategoryGroup
	if err := s.db.Preload("Categories").Order("id").Find(&groups).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return groups, nil
}

// RenameGroup changes a group's name.
func (s *categoryService) RenameGroup(groupID uint, name string) (*models.CategoryGroup, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group name is required")
	}

	var group models.CategoryGroup
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	group.Name = name
	if err := s.db.Save(&group).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &group, nil
}

// DeleteGroup removes an empty group. Groups that still contain categories
// cannot be deleted; the categories must be moved or archived first.
func (s *categoryService) DeleteGroup(groupID uint) error {
	var group models.CategoryGroup
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrGroupNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("group_id = ?", groupID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrGroupNotEmpty
	}

	if err := s.db.Delete(&group).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreateCategory creates a budgeting category inside a group.
func (s *categoryService) CreateCategory(groupID uint, name string, priority int, rollover models.RolloverPolicy, negative models.RolloverNegative, targetAmount *int64, targetMonth *models.Month) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if priority < 1 || priority > 5 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "priority must be between 1 and 5")
	}

	var group models.CategoryGroup
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	category := &models.Category{
		GroupID:          groupID,
		Name:             name,
		Priority:         priority,
		Rollover:         rollover,
		RolloverNegative: negative,
		TargetAmount:     targetAmount,
		TargetMonth:      targetMonth,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategories returns a page of categories, hiding archived ones unless asked.
func (s *categoryService) GetCategories(page pagination.PageRequest, includeArchived bool) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	query := s.db.Model(&models.Category{})
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := query.Scopes(pagination.Paginate(page)).Order("group_id, priority, id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(categories, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetCategoryByID returns one category.
func (s *categoryService) GetCategoryByID(categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory applies partial updates to a category.
func (s *categoryService) UpdateCategory(categoryID uint, name *string, groupID *uint, priority *int, rollover *models.RolloverPolicy, negative *models.RolloverNegative, targetAmount *int64, targetMonth *models.Month) (*models.Category, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category.Archived {
		return nil, apperrors.ErrCategoryArchived
	}

	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
		}
		category.Name = *name
	}
	if groupID != nil {
		var group models.CategoryGroup
		if err := s.db.First(&group, *groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrGroupNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		category.GroupID = *groupID
	}
	if priority != nil {
		if *priority < 1 || *priority > 5 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "priority must be between 1 and 5")
		}
		category.Priority = *priority
	}
	if rollover != nil {
		category.Rollover = *rollover
	}
	if negative != nil {
		category.RolloverNegative = *negative
	}
	if targetAmount != nil {
		category.TargetAmount = targetAmount
	}
	if targetMonth != nil {
		category.TargetMonth = targetMonth
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// ArchiveCategory hides a category from budgeting without touching history.
func (s *categoryService) ArchiveCategory(categoryID uint) error {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}

	category.Archived = true
	if err := s.db.Save(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteCategory removes a category that has no history. Categories
// referenced by budget entries, transactions, or bills can only be archived.
func (s *categoryService) DeleteCategory(categoryID uint) error {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.BudgetEntry{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrCategoryInUse
	}
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrCategoryInUse
	}
	if err := s.db.Model(&models.TransactionSplit{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrCategoryInUse
	}
	if err := s.db.Model(&models.Bill{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
