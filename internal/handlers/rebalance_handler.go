package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/services"
)

// RebalanceHandler handles overspend rebalancing requests.
type RebalanceHandler struct {
	rebalanceService services.RebalanceServicer
}

// NewRebalanceHandler creates a new RebalanceHandler.
func NewRebalanceHandler(rebalanceService services.RebalanceServicer) *RebalanceHandler {
	return &RebalanceHandler{rebalanceService: rebalanceService}
}

// MoveRequest is one reassignment move in an apply payload.
type MoveRequest struct {
	FromCategoryID uint  `json:"from_category_id" binding:"required"`
	ToCategoryID   uint  `json:"to_category_id" binding:"required"`
	Amount         int64 `json:"amount" binding:"required,gt=0"`
}

// ApplyRebalanceRequest represents the request payload for applying moves.
type ApplyRebalanceRequest struct {
	Month models.Month  `json:"month" binding:"required,month_key"`
	Moves []MoveRequest `json:"moves" binding:"required,min=1,dive"`
}

// Suggest handles proposing moves to cover a month's overspends.
// @Summary     Suggest rebalance moves
// @Description Propose moving assigned funds from flexible categories to cover overspends
// @Tags        rebalance
// @Produce     json
// @Param       month path  string true  "Month (YYYY-MM)"
// @Param       as_of query string false "Reference date (YYYY-MM-DD, default today)"
// @Success     200 {object} engine.RebalancePlan "Proposed moves"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Nothing to rebalance"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rebalance/{month}/suggest [get]
func (h *RebalanceHandler) Suggest(c *gin.Context) {
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.rebalanceService.Suggest(c.Param("month"), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// Apply handles committing a set of moves as a reversible reassignment.
// @Summary     Apply rebalance moves
// @Description Shift assigned amounts between categories and record the reassignment
// @Tags        rebalance
// @Accept      json
// @Produce     json
// @Param       request body ApplyRebalanceRequest true "Moves to apply"
// @Success     201 {object} models.Reassignment "Reassignment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rebalance/apply [post]
func (h *RebalanceHandler) Apply(c *gin.Context) {
	var req ApplyRebalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	moves := make([]engine.Move, len(req.Moves))
	for i, m := range req.Moves {
		moves[i] = engine.Move{
			FromCategoryID: m.FromCategoryID,
			ToCategoryID:   m.ToCategoryID,
			Amount:         m.Amount,
		}
	}

	reassignment, err := h.rebalanceService.Apply(req.Month, moves)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reassignment": reassignment})
}

// Reverse handles undoing a previously applied reassignment.
// @Summary     Reverse a reassignment
// @Description Apply the inverse moves of an earlier reassignment
// @Tags        rebalance
// @Produce     json
// @Param       id path int true "Reassignment ID"
// @Success     200 {object} models.Reassignment "Reassignment reversed"
// @Failure     404 {object} ErrorResponse "Reassignment not found"
// @Failure     409 {object} ErrorResponse "Already reversed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rebalance/reassignments/{id}/reverse [post]
func (h *RebalanceHandler) Reverse(c *gin.Context) {
	reassignmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	reassignment, err := h.rebalanceService.Reverse(reassignmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reassignment": reassignment})
}

// GetReassignments handles listing recorded reassignments.
// @Summary     Get reassignments
// @Description Get recorded reassignments, optionally filtered by month
// @Tags        rebalance
// @Produce     json
// @Param       month query string false "Filter by month (YYYY-MM)"
// @Success     200 {array} models.Reassignment "Reassignments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rebalance/reassignments [get]
func (h *RebalanceHandler) GetReassignments(c *gin.Context) {
	var month *models.Month
	if v := c.Query("month"); v != "" {
		m := models.Month(v)
		month = &m
	}

	reassignments, err := h.rebalanceService.GetReassignments(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reassignments": reassignments})
}
