package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/pagination"
)

// transactionService handles money-movement business logic. Every write
// keeps account balances current inside the same database transaction.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

func validateSplits(amount int64, splits []SplitInput) error {
	if len(splits) == 0 {
		return nil
	}
	var sum int64
	for _, sp := range splits {
		if sp.Amount <= 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "split amounts must be positive")
		}
		sum += sp.Amount
	}
	if sum != amount {
		return apperrors.ErrSplitMismatch
	}
	return nil
}

// CreateTransaction records an inflow or outflow and adjusts the account
// balance. Splits, when present, must sum to the amount exactly.
func (s *transactionService) CreateTransaction(accountID uint, direction models.Direction, amount int64, date time.Time, categoryID *uint, toBudget bool, memo string, splits []SplitInput) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if direction != models.DirectionInflow && direction != models.DirectionOutflow {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "direction must be inflow or outflow")
	}
	if err := validateSplits(amount, splits); err != nil {
		return nil, err
	}

	if categoryID != nil {
		var category models.Category
		if err := s.db.First(&category, *categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	for _, sp := range splits {
		var category models.Category
		if err := s.db.First(&category, sp.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	txn := &models.Transaction{
		AccountID:  accountID,
		Date:       date,
		Amount:     amount,
		Direction:  direction,
		CategoryID: categoryID,
		ToBudget:   toBudget && direction == models.DirectionInflow,
		Memo:       memo,
	}
	for _, sp := range splits {
		txn.Splits = append(txn.Splits, models.TransactionSplit{CategoryID: sp.CategoryID, Amount: sp.Amount})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyToBalance(tx, accountID, direction, amount); err != nil {
			return err
		}
		if err := tx.Create(txn).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// CreateTransfer moves funds between two accounts. Transfers are budget
// neutral: they touch no category and never count as income or spending.
func (s *transactionService) CreateTransfer(fromAccountID, toAccountID uint, amount int64, date time.Time, memo string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if fromAccountID == toAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}

	txn := &models.Transaction{
		AccountID:   fromAccountID,
		Date:        date,
		Amount:      amount,
		Direction:   models.DirectionTransfer,
		Memo:        memo,
		ToAccountID: &toAccountID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyToBalance(tx, fromAccountID, models.DirectionOutflow, amount); err != nil {
			return err
		}
		if err := applyToBalance(tx, toAccountID, models.DirectionInflow, amount); err != nil {
			return err
		}
		if err := tx.Create(txn).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// GetTransactions returns a filtered page of transactions, newest first.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	query := s.db.Model(&models.Transaction{})
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Direction != nil {
		query = query.Where("direction = ?", *filter.Direction)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var txns []models.Transaction
	if err := query.Scopes(pagination.Paginate(page)).Preload("Splits").Order("date DESC, id DESC").Find(&txns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(txns, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetTransactionByID returns one transaction with its splits.
func (s *transactionService) GetTransactionByID(transactionID uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.Preload("Splits").First(&txn, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &txn, nil
}

// UpdateTransaction edits a transaction, reversing the old balance effect
// and applying the new one atomically. Passing splits replaces the existing
// split set; passing none leaves it untouched. A nil categoryID means no
// change; clearCategory drops the category outright.
func (s *transactionService) UpdateTransaction(transactionID uint, amount *int64, date *time.Time, categoryID *uint, clearCategory bool, memo *string, splits []SplitInput) (*models.Transaction, error) {
	txn, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Direction == models.DirectionTransfer {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfers cannot be edited; delete and re-create instead")
	}
	if clearCategory && categoryID != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cannot both set and clear the category")
	}

	newAmount := txn.Amount
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		newAmount = *amount
	}
	if splits != nil {
		if err := validateSplits(newAmount, splits); err != nil {
			return nil, err
		}
	} else if len(txn.Splits) > 0 {
		var sum int64
		for _, sp := range txn.Splits {
			sum += sp.Amount
		}
		if sum != newAmount {
			return nil, apperrors.ErrSplitMismatch
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Reverse the original effect, then apply the edited one.
		reverse := models.DirectionInflow
		if txn.Direction == models.DirectionInflow {
			reverse = models.DirectionOutflow
		}
		if err := applyToBalance(tx, txn.AccountID, reverse, txn.Amount); err != nil {
			return err
		}
		if err := applyToBalance(tx, txn.AccountID, txn.Direction, newAmount); err != nil {
			return err
		}

		txn.Amount = newAmount
		if date != nil {
			txn.Date = *date
		}
		switch {
		case clearCategory:
			txn.CategoryID = nil
		case categoryID != nil:
			txn.CategoryID = categoryID
		}
		if memo != nil {
			txn.Memo = *memo
		}
		if splits != nil {
			if err := tx.Where("transaction_id = ?", txn.ID).Delete(&models.TransactionSplit{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			txn.Splits = nil
			for _, sp := range splits {
				txn.Splits = append(txn.Splits, models.TransactionSplit{TransactionID: txn.ID, CategoryID: sp.CategoryID, Amount: sp.Amount})
			}
		}
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(txn).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect.
// Deleting a transfer reverses both sides.
func (s *transactionService) DeleteTransaction(transactionID uint) error {
	txn, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		switch txn.Direction {
		case models.DirectionTransfer:
			if err := applyToBalance(tx, txn.AccountID, models.DirectionInflow, txn.Amount); err != nil {
				return err
			}
			if txn.ToAccountID != nil {
				if err := applyToBalance(tx, *txn.ToAccountID, models.DirectionOutflow, txn.Amount); err != nil {
					return err
				}
			}
		case models.DirectionOutflow:
			if err := applyToBalance(tx, txn.AccountID, models.DirectionInflow, txn.Amount); err != nil {
				return err
			}
		default:
			if err := applyToBalance(tx, txn.AccountID, models.DirectionOutflow, txn.Amount); err != nil {
				return err
			}
		}

		if err := tx.Where("transaction_id = ?", txn.ID).Delete(&models.TransactionSplit{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(txn).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
