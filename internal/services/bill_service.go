package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
)

// billService handles bill business logic.
type billService struct {
	db *gorm.DB
}

// NewBillService creates a new BillServicer.
func NewBillService(db *gorm.DB) BillServicer {
	return &billService{db: db}
}

// CreateBill creates a bill linked to a category.
func (s *billService) CreateBill(name string, amount int64, cadence models.Cadence, nextDue time.Time, categoryID uint, flexible, autopay bool) (*models.Bill, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bill name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bill amount must be positive")
	}

	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	bill := &models.Bill{
		Name:       name,
		Amount:     amount,
		Cadence:    cadence,
		NextDue:    nextDue,
		CategoryID: categoryID,
		Flexible:   flexible,
		Autopay:    autopay,
	}
	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// GetBills returns all bills ordered by due date.
func (s *billService) GetBills() ([]models.Bill, error) {
	var bills []models.Bill
	if err := s.db.Order("next_due").Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

// GetBillByID returns one bill.
func (s *billService) GetBillByID(billID uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}

// UpdateBill applies partial updates to a bill.
func (s *billService) UpdateBill(billID uint, name *string, amount *int64, nextDue *time.Time, flexible, autopay *bool) (*models.Bill, error) {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bill name is required")
		}
		bill.Name = *name
	}
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bill amount must be positive")
		}
		bill.Amount = *amount
	}
	if nextDue != nil {
		bill.NextDue = *nextDue
	}
	if flexible != nil {
		bill.Flexible = *flexible
	}
	if autopay != nil {
		bill.Autopay = *autopay
	}

	if err := s.db.Save(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// DeleteBill removes a bill.
func (s *billService) DeleteBill(billID uint) error {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(bill).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func upcoming(bill models.Bill, asOf time.Time) UpcomingBill {
	days := int(bill.NextDue.Sub(asOf).Hours() / 24)
	return UpcomingBill{
		Bill:    bill,
		DueDate: bill.NextDue,
		DueIn:   days,
		Month:   engine.MonthOf(bill.NextDue),
	}
}

// GetDueSoon lists bills due within the window, soonest first. One-off bills
// already paid (due date in the past) show up under GetOverdue instead.
func (s *billService) GetDueSoon(withinDays int, asOf time.Time) ([]UpcomingBill, error) {
	if withinDays <= 0 {
		withinDays = 7
	}
	horizon := asOf.AddDate(0, 0, withinDays)

	var bills []models.Bill
	if err := s.db.Where("next_due >= ? AND next_due <= ?", asOf, horizon).Order("next_due").Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out := make([]UpcomingBill, 0, len(bills))
	for _, b := range bills {
		out = append(out, upcoming(b, asOf))
	}
	return out, nil
}

// GetOverdue lists bills whose due date has passed without being marked paid.
func (s *billService) GetOverdue(asOf time.Time) ([]UpcomingBill, error) {
	var bills []models.Bill
	if err := s.db.Where("next_due < ?", asOf).Order("next_due").Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out := make([]UpcomingBill, 0, len(bills))
	for _, b := range bills {
		out = append(out, upcoming(b, asOf))
	}
	return out, nil
}

// MarkPaid advances the bill's due date by one cadence period. A one-off
// bill is deleted instead, since it never recurs.
func (s *billService) MarkPaid(billID uint, asOf time.Time) (*models.Bill, error) {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return nil, err
	}

	if bill.Cadence == models.CadenceOnce {
		if err := s.db.Delete(bill).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return bill, nil
	}

	// Catch up past occurrences so a bill paid late does not stay overdue.
	next := engine.NextOccurrence(bill.NextDue, bill.Cadence)
	for !next.After(asOf) {
		next = engine.NextOccurrence(next, bill.Cadence)
	}
	bill.NextDue = next

	if err := s.db.Save(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// RecordTrailingAverage recomputes a flexible bill's trailing average from
// actual spending in its category over the given number of months.
func (s *billService) RecordTrailingAverage(billID uint, months int, asOf time.Time) (*models.Bill, error) {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return nil, err
	}
	if !bill.Flexible {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "only flexible bills track a trailing average")
	}
	if months <= 0 {
		months = 3
	}

	cutoff := asOf.AddDate(0, -months, 0)
	var total int64
	err = s.db.Model(&models.Transaction{}).
		Where("category_id = ? AND direction = ? AND date > ? AND date <= ?", bill.CategoryID, models.DirectionOutflow, cutoff, asOf).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	average := total / int64(months)
	bill.TrailingAverage = &average
	if err := s.db.Save(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}
