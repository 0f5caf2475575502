package services

import (
	"errors"

	"gorm.io/gorm"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
)

// debtService handles debt management and payoff planning.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// CreateDebt records a liability.
func (s *debtService) CreateDebt(name string, balance int64, apr float64, minimum int64, promoAPR *float64, promoEnds *models.Month) (*models.Debt, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "debt name is required")
	}
	if balance < 0 || minimum < 0 || apr < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "balance, APR, and minimum payment cannot be negative")
	}
	if (promoAPR == nil) != (promoEnds == nil) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "promo APR and promo end month must be set together")
	}

	debt := &models.Debt{
		Name:           name,
		Balance:        balance,
		APR:            apr,
		MinimumPayment: minimum,
		PromoAPR:       promoAPR,
		PromoEndsMonth: promoEnds,
	}
	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debt, nil
}

// GetDebts returns all debts, largest balance first.
func (s *debtService) GetDebts() ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.Order("balance DESC").Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debts, nil
}

// GetDebtByID returns one debt.
func (s *debtService) GetDebtByID(debtID uint) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.First(&debt, debtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// UpdateDebt applies partial updates to a debt.
func (s *debtService) UpdateDebt(debtID uint, name *string, balance *int64, apr *float64, minimum *int64) (*models.Debt, error) {
	debt, err := s.GetDebtByID(debtID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "debt name is required")
		}
		debt.Name = *name
	}
	if balance != nil {
		if *balance < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "balance cannot be negative")
		}
		debt.Balance = *balance
	}
	if apr != nil {
		if *apr < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "APR cannot be negative")
		}
		debt.APR = *apr
	}
	if minimum != nil {
		if *minimum < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "minimum payment cannot be negative")
		}
		debt.MinimumPayment = *minimum
	}

	if err := s.db.Save(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debt, nil
}

// DeleteDebt removes a debt.
func (s *debtService) DeleteDebt(debtID uint) error {
	debt, err := s.GetDebtByID(debtID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(debt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *debtService) openDebts() ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.Where("balance > 0").Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(debts) == 0 {
		return nil, apperrors.ErrNoDebtsToSimulate
	}
	return debts, nil
}

func validatePayoffOptions(opts *engine.PayoffOptions) error {
	if opts.Method != engine.PayoffAvalanche && opts.Method != engine.PayoffSnowball {
		return apperrors.WithMessage(apperrors.ErrInvalidPayoffOptions, "method must be avalanche or snowball")
	}
	if opts.ExtraPerMonth < 0 || opts.RoundUpToNearest < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidPayoffOptions, "extra payment and round-up step cannot be negative")
	}
	if opts.LumpSum != nil && opts.LumpSum.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidPayoffOptions, "lump sum amount must be positive")
	}
	if opts.StartMonth == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidPayoffOptions, "start month is required")
	}
	return nil
}

// SimulatePayoff runs the payoff simulation over all open debts.
func (s *debtService) SimulatePayoff(opts engine.PayoffOptions) (*engine.PayoffSchedule, error) {
	if err := validatePayoffOptions(&opts); err != nil {
		return nil, err
	}
	debts, err := s.openDebts()
	if err != nil {
		return nil, err
	}

	schedule, err := engine.SimulatePayoff(debts, opts)
	if err != nil {
		if errors.Is(err, engine.ErrPayoffStalled) {
			return nil, apperrors.Wrap(apperrors.ErrPayoffNotConverging, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return schedule, nil
}

// ComparePayoffMethods runs both methods over the same debts and options.
func (s *debtService) ComparePayoffMethods(opts engine.PayoffOptions) (*PayoffComparison, error) {
	opts.Method = engine.PayoffAvalanche
	avalanche, err := s.SimulatePayoff(opts)
	if err != nil {
		return nil, err
	}
	opts.Method = engine.PayoffSnowball
	snowball, err := s.SimulatePayoff(opts)
	if err != nil {
		return nil, err
	}
	return &PayoffComparison{Avalanche: avalanche, Snowball: snowball}, nil
}
