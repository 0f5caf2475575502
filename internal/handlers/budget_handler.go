package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/services"
)

// BudgetHandler handles assignment and derived monthly figure requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// AssignRequest represents the request payload for assigning funds to a category.
type AssignRequest struct {
	CategoryID uint         `json:"category_id" binding:"required"`
	Month      models.Month `json:"month" binding:"required,month_key"`
	Amount     int64        `json:"amount" binding:"min=0"`
}

// Assign handles setting the assigned amount for a category in a month.
// @Summary     Assign funds
// @Description Set the amount assigned to a category for a month. Reassigning replaces the previous amount; zero withdraws the assignment.
// @Tags        budget
// @Accept      json
// @Produce     json
// @Param       request body AssignRequest true "Assignment details"
// @Success     200 {object} models.BudgetEntry "Assignment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category archived"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/assign [post]
func (h *BudgetHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.budgetService.Assign(req.CategoryID, req.Month, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// GetMonthSummary handles the derived summary for a month.
// @Summary     Get month summary
// @Description Get To Allocate and per-category ledgers for a month
// @Tags        budget
// @Produce     json
// @Param       month path string true "Month (YYYY-MM)"
// @Success     200 {object} engine.MonthSummary "Month summary"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/{month} [get]
func (h *BudgetHandler) GetMonthSummary(c *gin.Context) {
	month := c.Param("month")

	summary, err := h.budgetService.GetMonthSummary(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetCategoryLedger handles the derived ledger for one category in a month.
// @Summary     Get category ledger
// @Description Get assigned, activity, carryover, and available for a category in a month
// @Tags        budget
// @Produce     json
// @Param       id    path int    true "Category ID"
// @Param       month path string true "Month (YYYY-MM)"
// @Success     200 {object} engine.CategoryLedger "Category ledger"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/{month}/categories/{id} [get]
func (h *BudgetHandler) GetCategoryLedger(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	month := c.Param("month")

	ledger, err := h.budgetService.GetCategoryLedger(categoryID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ledger": ledger})
}

// GetGroupRollup handles the derived rollup for one group in a month.
// @Summary     Get group rollup
// @Description Get aggregated totals and funding shortfall for a group in a month
// @Tags        budget
// @Produce     json
// @Param       id    path int    true "Group ID"
// @Param       month path string true "Month (YYYY-MM)"
// @Success     200 {object} engine.GroupRollup "Group rollup"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/{month}/groups/{id} [get]
func (h *BudgetHandler) GetGroupRollup(c *gin.Context) {
	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	month := c.Param("month")

	rollup, err := h.budgetService.GetGroupRollup(groupID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rollup": rollup})
}
