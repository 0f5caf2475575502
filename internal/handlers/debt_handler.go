package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/services"
)

// DebtHandler handles debt tracking and payoff planning requests.
type DebtHandler struct {
	debtService services.DebtServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// CreateDebtRequest represents the request payload for creating a debt.
type CreateDebtRequest struct {
	Name           string        `json:"name" binding:"required,min=1,max=100"`
	Balance        int64         `json:"balance" binding:"required,gt=0"`
	APR            float64       `json:"apr" binding:"min=0,max=100"`
	MinimumPayment int64         `json:"minimum_payment" binding:"required,gt=0"`
	PromoAPR       *float64      `json:"promo_apr" binding:"omitempty,min=0,max=100"`
	PromoEndsMonth *models.Month `json:"promo_ends_month" binding:"omitempty,month_key"`
}

// UpdateDebtRequest represents the request payload for updating a debt.
type UpdateDebtRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Balance        *int64   `json:"balance" binding:"omitempty,min=0"`
	APR            *float64 `json:"apr" binding:"omitempty,min=0,max=100"`
	MinimumPayment *int64   `json:"minimum_payment" binding:"omitempty,gt=0"`
}

// LumpSumRequest is a one-time extra payment in a simulation payload.
type LumpSumRequest struct {
	Month  models.Month `json:"month" binding:"required,month_key"`
	Amount int64        `json:"amount" binding:"required,gt=0"`
}

// SimulatePayoffRequest represents the request payload for a payoff simulation.
type SimulatePayoffRequest struct {
	Method           engine.PayoffMethod `json:"method" binding:"required,payoff_method"`
	ExtraPerMonth    int64               `json:"extra_per_month" binding:"min=0"`
	LumpSum          *LumpSumRequest     `json:"lump_sum"`
	RoundUpToNearest int64               `json:"round_up_to_nearest" binding:"min=0"`
	KeepMinimums     bool                `json:"keep_minimums"`
	StartMonth       models.Month        `json:"start_month" binding:"required,month_key"`
}

// ComparePayoffRequest represents the request payload for comparing both methods.
type ComparePayoffRequest struct {
	ExtraPerMonth    int64           `json:"extra_per_month" binding:"min=0"`
	LumpSum          *LumpSumRequest `json:"lump_sum"`
	RoundUpToNearest int64           `json:"round_up_to_nearest" binding:"min=0"`
	KeepMinimums     bool            `json:"keep_minimums"`
	StartMonth       models.Month    `json:"start_month" binding:"required,month_key"`
}

func toLumpSum(req *LumpSumRequest) *engine.LumpSum {
	if req == nil {
		return nil
	}
	return &engine.LumpSum{Month: req.Month, Amount: req.Amount}
}

// CreateDebt handles the creation of a new debt.
// @Summary     Create a debt
// @Description Track a new debt with its APR and minimum payment
// @Tags        debts
// @Accept      json
// @Produce     json
// @Param       request body CreateDebtRequest true "Debt details"
// @Success     201 {object} models.Debt "Debt created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.CreateDebt(
		req.Name, req.Balance, req.APR, req.MinimumPayment, req.PromoAPR, req.PromoEndsMonth,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"debt": debt})
}

// GetDebts handles listing all debts.
// @Summary     Get debts
// @Description Get all tracked debts
// @Tags        debts
// @Produce     json
// @Success     200 {array} models.Debt "Debts"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [get]
func (h *DebtHandler) GetDebts(c *gin.Context) {
	debts, err := h.debtService.GetDebts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debts": debts})
}

// GetDebtByID handles retrieving a single debt.
// @Summary     Get a debt
// @Description Get a debt by its ID
// @Tags        debts
// @Produce     json
// @Param       id path int true "Debt ID"
// @Success     200 {object} models.Debt "Debt"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [get]
func (h *DebtHandler) GetDebtByID(c *gin.Context) {
	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.GetDebtByID(debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// UpdateDebt handles updating a debt.
// @Summary     Update a debt
// @Description Update fields of an existing debt
// @Tags        debts
// @Accept      json
// @Produce     json
// @Param       id      path int               true "Debt ID"
// @Param       request body UpdateDebtRequest true "Fields to update"
// @Success     200 {object} models.Debt "Debt updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [put]
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.UpdateDebt(debtID, req.Name, req.Balance, req.APR, req.MinimumPayment)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// DeleteDebt handles deleting a debt.
// @Summary     Delete a debt
// @Description Remove a debt from tracking
// @Tags        debts
// @Produce     json
// @Param       id path int true "Debt ID"
// @Success     200 {object} MessageResponse "Debt deleted"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.debtService.DeleteDebt(debtID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Debt deleted successfully"})
}

// SimulatePayoff handles running a payoff simulation.
// @Summary     Simulate payoff
// @Description Simulate an avalanche or snowball payoff schedule for all open debts
// @Tags        debts
// @Accept      json
// @Produce     json
// @Param       request body SimulatePayoffRequest true "Simulation options"
// @Success     200 {object} engine.PayoffSchedule "Payoff schedule"
// @Failure     400 {object} ErrorResponse "Invalid options"
// @Failure     404 {object} ErrorResponse "No open debts"
// @Failure     422 {object} ErrorResponse "Plan does not converge"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/simulate [post]
func (h *DebtHandler) SimulatePayoff(c *gin.Context) {
	var req SimulatePayoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	schedule, err := h.debtService.SimulatePayoff(engine.PayoffOptions{
		Method:           req.Method,
		ExtraPerMonth:    req.ExtraPerMonth,
		LumpSum:          toLumpSum(req.LumpSum),
		RoundUpToNearest: req.RoundUpToNearest,
		KeepMinimums:     req.KeepMinimums,
		StartMonth:       req.StartMonth,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// ComparePayoffMethods handles comparing avalanche and snowball side by side.
// @Summary     Compare payoff methods
// @Description Run both payoff methods with the same options and return both schedules
// @Tags        debts
// @Accept      json
// @Produce     json
// @Param       request body ComparePayoffRequest true "Simulation options"
// @Success     200 {object} services.PayoffComparison "Both schedules"
// @Failure     400 {object} ErrorResponse "Invalid options"
// @Failure     404 {object} ErrorResponse "No open debts"
// @Failure     422 {object} ErrorResponse "Plan does not converge"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/compare [post]
func (h *DebtHandler) ComparePayoffMethods(c *gin.Context) {
	var req ComparePayoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	comparison, err := h.debtService.ComparePayoffMethods(engine.PayoffOptions{
		ExtraPerMonth:    req.ExtraPerMonth,
		LumpSum:          toLumpSum(req.LumpSum),
		RoundUpToNearest: req.RoundUpToNearest,
		KeepMinimums:     req.KeepMinimums,
		StartMonth:       req.StartMonth,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": comparison})
}
