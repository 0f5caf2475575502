package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
)

// incomeService handles planned income source business logic.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncomeSource records a recurring income stream.
func (s *incomeService) CreateIncomeSource(name string, amount int64, cadence models.Cadence) (*models.IncomeSource, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income source name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income amount must be positive")
	}
	if cadence == models.CadenceOnce {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "one-off income is a to-budget inflow, not an income source")
	}

	source := &models.IncomeSource{Name: name, Amount: amount, Cadence: cadence}
	if err := s.db.Create(source).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return source, nil
}

// GetIncomeSources returns all income sources.
func (s *incomeService) GetIncomeSources() ([]models.IncomeSource, error) {
	var sources []models.IncomeSource
	if err := s.db.Order("id").Find(&sources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sources, nil
}

// UpdateIncomeSource applies partial updates to an income source.
func (s *incomeService) UpdateIncomeSource(sourceID uint, name *string, amount *int64, cadence *models.Cadence) (*models.IncomeSource, error) {
	var source models.IncomeSource
	if err := s.db.First(&source, sourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeSourceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income source name is required")
		}
		source.Name = *name
	}
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income amount must be positive")
		}
		source.Amount = *amount
	}
	if cadence != nil {
		if *cadence == models.CadenceOnce {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "one-off income is a to-budget inflow, not an income source")
		}
		source.Cadence = *cadence
	}

	if err := s.db.Save(&source).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &source, nil
}

// DeleteIncomeSource removes an income source.
func (s *incomeService) DeleteIncomeSource(sourceID uint) error {
	var source models.IncomeSource
	if err := s.db.First(&source, sourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrIncomeSourceNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&source).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
