package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
)

// accountService handles account business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates an account with an opening balance.
func (s *accountService) CreateAccount(name string, accountType models.AccountType, onBudget bool, openingBalance int64) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	account := &models.Account{
		Name:        name,
		Type:        accountType,
		OnBudget:    onBudget,
		Balance:     openingBalance,
		BalanceAsOf: time.Now(),
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetAccounts returns all accounts.
func (s *accountService) GetAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Order("id").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetAccountByID returns one account.
func (s *accountService) GetAccountByID(accountID uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount applies partial updates to an account.
func (s *accountService) UpdateAccount(accountID uint, name *string, onBudget *bool) (*models.Account, error) {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
		}
		account.Name = *name
	}
	if onBudget != nil {
		account.OnBudget = *onBudget
	}

	if err := s.db.Save(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// ReconcileBalance overwrites the account balance with an externally
// verified figure, e.g. after comparing against a bank statement.
func (s *accountService) ReconcileBalance(accountID uint, balance int64) (*models.Account, error) {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	account.Balance = balance
	account.BalanceAsOf = time.Now()
	if err := s.db.Save(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// applyToBalance shifts an account balance by the transaction's signed
// effect. Outflows subtract, inflows add. Used inside write transactions by
// the transaction service.
func applyToBalance(tx *gorm.DB, accountID uint, direction models.Direction, amount int64) error {
	delta := amount
	if direction == models.DirectionOutflow {
		delta = -amount
	}
	res := tx.Model(&models.Account{}).Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"balance":       gorm.Expr("balance + ?", delta),
			"balance_as_of": time.Now(),
		})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
