package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/services"
)

// --- mock debt service ---

type mockDebtService struct {
	createDebtFn     func(name string, balance int64, apr float64, minimum int64, promoAPR *float64, promoEnds *models.Month) (*models.Debt, error)
	getDebtsFn       func() ([]models.Debt, error)
	getDebtByIDFn    func(debtID uint) (*models.Debt, error)
	updateDebtFn     func(debtID uint, name *string, balance *int64, apr *float64, minimum *int64) (*models.Debt, error)
	deleteDebtFn     func(debtID uint) error
	simulatePayoffFn func(opts engine.PayoffOptions) (*engine.PayoffSchedule, error)
	compareFn        func(opts engine.PayoffOptions) (*services.PayoffComparison, error)
}

func (m *mockDebtService) CreateDebt(name string, balance int64, apr float64, minimum int64, promoAPR *float64, promoEnds *models.Month) (*models.Debt, error) {
	if m.createDebtFn != nil {
		return m.createDebtFn(name, balance, apr, minimum, promoAPR, promoEnds)
	}
	return &models.Debt{}, nil
}

func (m *mockDebtService) GetDebts() ([]models.Debt, error) {
	if m.getDebtsFn != nil {
		return m.getDebtsFn()
	}
	return []models.Debt{}, nil
}

func (m *mockDebtService) GetDebtByID(debtID uint) (*models.Debt, error) {
	if m.getDebtByIDFn != nil {
		return m.getDebtByIDFn(debtID)
	}
	return &models.Debt{}, nil
}

func (m *mockDebtService) UpdateDebt(debtID uint, name *string, balance *int64, apr *float64, minimum *int64) (*models.Debt, error) {
	if m.updateDebtFn != nil {
		return m.updateDebtFn(debtID, name, balance, apr, minimum)
	}
	return &models.Debt{}, nil
}

func (m *mockDebtService) DeleteDebt(debtID uint) error {
	if m.deleteDebtFn != nil {
		return m.deleteDebtFn(debtID)
	}
	return nil
}

func (m *mockDebtService) SimulatePayoff(opts engine.PayoffOptions) (*engine.PayoffSchedule, error) {
	if m.simulatePayoffFn != nil {
		return m.simulatePayoffFn(opts)
	}
	return &engine.PayoffSchedule{}, nil
}

func (m *mockDebtService) ComparePayoffMethods(opts engine.PayoffOptions) (*services.PayoffComparison, error) {
	if m.compareFn != nil {
		return m.compareFn(opts)
	}
	return &services.PayoffComparison{}, nil
}

var _ services.DebtServicer = (*mockDebtService)(nil)

func setupDebtRouter(handler *DebtHandler) *gin.Engine {
	r := gin.New()
	r.POST("/debts", handler.CreateDebt)
	r.GET("/debts", handler.GetDebts)
	r.POST("/debts/simulate", handler.SimulatePayoff)
	r.POST("/debts/compare", handler.ComparePayoffMethods)
	return r
}

func TestDebtHandler_CreateDebt(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		debtSvc := &mockDebtService{
			createDebtFn: func(name string, balance int64, apr float64, minimum int64, _ *float64, _ *models.Month) (*models.Debt, error) {
				return &models.Debt{Name: name, Balance: balance, APR: apr, MinimumPayment: minimum}, nil
			},
		}
		handler := NewDebtHandler(debtSvc)
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts",
			`{"name":"Visa","balance":180000,"apr":21.9,"minimum_payment":5000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		debt := result["debt"].(map[string]interface{})
		if debt["name"] != "Visa" {
			t.Errorf("expected Visa, got %v", debt["name"])
		}
	})

	t.Run("returns 400 on missing balance", func(t *testing.T) {
		handler := NewDebtHandler(&mockDebtService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts", `{"name":"Visa","apr":21.9,"minimum_payment":5000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed promo month", func(t *testing.T) {
		handler := NewDebtHandler(&mockDebtService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts",
			`{"name":"Visa","balance":180000,"apr":21.9,"minimum_payment":5000,"promo_apr":0,"promo_ends_month":"June 2025"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDebtHandler_SimulatePayoff(t *testing.T) {
	t.Run("returns 200 with schedule", func(t *testing.T) {
		debtSvc := &mockDebtService{
			simulatePayoffFn: func(opts engine.PayoffOptions) (*engine.PayoffSchedule, error) {
				if opts.Method != engine.PayoffSnowball {
					t.Errorf("expected snowball, got %s", opts.Method)
				}
				return &engine.PayoffSchedule{Method: opts.Method, MonthsToDebtFree: 14, TotalInterestPaid: 21500}, nil
			},
		}
		handler := NewDebtHandler(debtSvc)
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts/simulate",
			`{"method":"snowball","extra_per_month":20000,"start_month":"2024-07"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		schedule := result["schedule"].(map[string]interface{})
		if schedule["months_to_debt_free"] != float64(14) {
			t.Errorf("expected 14 months, got %v", schedule["months_to_debt_free"])
		}
	})

	t.Run("returns 400 on unknown method", func(t *testing.T) {
		handler := NewDebtHandler(&mockDebtService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts/simulate",
			`{"method":"highest_first","start_month":"2024-07"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing start month", func(t *testing.T) {
		handler := NewDebtHandler(&mockDebtService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts/simulate", `{"method":"avalanche"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("propagates non-convergence error", func(t *testing.T) {
		debtSvc := &mockDebtService{
			simulatePayoffFn: func(engine.PayoffOptions) (*engine.PayoffSchedule, error) {
				return nil, apperrors.ErrPayoffNotConverging
			},
		}
		handler := NewDebtHandler(debtSvc)
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts/simulate",
			`{"method":"avalanche","start_month":"2024-07"}`)

		if rec.Code != apperrors.ErrPayoffNotConverging.StatusCode {
			t.Fatalf("expected %d, got %d", apperrors.ErrPayoffNotConverging.StatusCode, rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrPayoffNotConverging.Code)
	})
}

func TestDebtHandler_ComparePayoffMethods(t *testing.T) {
	t.Run("returns both schedules", func(t *testing.T) {
		debtSvc := &mockDebtService{
			compareFn: func(engine.PayoffOptions) (*services.PayoffComparison, error) {
				return &services.PayoffComparison{
					Avalanche: &engine.PayoffSchedule{Method: engine.PayoffAvalanche, TotalInterestPaid: 18000},
					Snowball:  &engine.PayoffSchedule{Method: engine.PayoffSnowball, TotalInterestPaid: 21000},
				}, nil
			},
		}
		handler := NewDebtHandler(debtSvc)
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts/compare",
			`{"extra_per_month":10000,"start_month":"2024-07"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		comparison := result["comparison"].(map[string]interface{})
		if comparison["avalanche"] == nil || comparison["snowball"] == nil {
			t.Errorf("expected both schedules, got %v", comparison)
		}
	})
}
