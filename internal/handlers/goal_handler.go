package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name           string        `json:"name" binding:"required,min=1,max=100"`
	Target         int64         `json:"target" binding:"required,gt=0"`
	TargetMonth    *models.Month `json:"target_month" binding:"omitempty,month_key"`
	Priority       int           `json:"priority" binding:"required,min=1,max=5"`
	PlannedMonthly int64         `json:"planned_monthly" binding:"min=0"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
type UpdateGoalRequest struct {
	Name           *string       `json:"name" binding:"omitempty,min=1,max=100"`
	Target         *int64        `json:"target" binding:"omitempty,gt=0"`
	TargetMonth    *models.Month `json:"target_month" binding:"omitempty,month_key"`
	Priority       *int          `json:"priority" binding:"omitempty,min=1,max=5"`
	PlannedMonthly *int64        `json:"planned_monthly" binding:"omitempty,min=0"`
}

// SetGoalStatusRequest represents the request payload for a status transition.
type SetGoalStatusRequest struct {
	Status models.GoalStatus `json:"status" binding:"required,goal_status"`
}

// ContributeRequest represents the request payload for a goal contribution.
type ContributeRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Note   string `json:"note" binding:"max=500"`
}

// CreateGoal handles the creation of a new savings goal.
// @Summary     Create a goal
// @Description Create a new savings goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(req.Name, req.Target, req.TargetMonth, req.Priority, req.PlannedMonthly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles listing goals, optionally filtered by status.
// @Summary     Get goals
// @Description Get all goals, optionally filtered by status
// @Tags        goals
// @Produce     json
// @Param       status query string false "Filter by status (ACTIVE/PAUSED/COMPLETED/ARCHIVED)"
// @Success     200 {array} models.Goal "Goals"
// @Failure     400 {object} ErrorResponse "Invalid status"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	var status *models.GoalStatus
	if v := c.Query("status"); v != "" {
		s := models.GoalStatus(v)
		switch s {
		case models.GoalStatusActive, models.GoalStatusPaused,
			models.GoalStatusCompleted, models.GoalStatusArchived:
			status = &s
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status, must be ACTIVE, PAUSED, COMPLETED, or ARCHIVED"))
			return
		}
	}

	goals, err := h.goalService.GetGoals(status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoalByID handles retrieving a single goal.
// @Summary     Get a goal
// @Description Get a goal by its ID, including contributions
// @Tags        goals
// @Produce     json
// @Param       id path int true "Goal ID"
// @Success     200 {object} models.Goal "Goal"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal handles updating a goal.
// @Summary     Update a goal
// @Description Update fields of an existing goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path int               true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to update"
// @Success     200 {object} models.Goal "Goal updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(goalID, req.Name, req.Target, req.TargetMonth, req.Priority, req.PlannedMonthly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a goal.
// @Summary     Delete a goal
// @Description Remove a goal and its contribution history
// @Tags        goals
// @Produce     json
// @Param       id path int true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(goalID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

// SetGoalStatus handles a goal status transition.
// @Summary     Set goal status
// @Description Transition a goal between ACTIVE, PAUSED, COMPLETED, and ARCHIVED
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Goal ID"
// @Param       request body SetGoalStatusRequest true "Target status"
// @Success     200 {object} models.Goal "Goal updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Transition not allowed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/status [post]
func (h *GoalHandler) SetGoalStatus(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetGoalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.SetGoalStatus(goalID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Contribute handles recording a contribution toward a goal.
// @Summary     Contribute to a goal
// @Description Record a contribution; negative amounts correct earlier entries
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path int               true "Goal ID"
// @Param       request body ContributeRequest true "Contribution details"
// @Success     201 {object} models.GoalContribution "Contribution recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Goal not active"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/contributions [post]
func (h *GoalHandler) Contribute(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseFlexibleTime(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contribution, err := h.goalService.Contribute(goalID, req.Amount, date, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contribution": contribution})
}

// GetProgress handles the derived progress report for a goal.
// @Summary     Get goal progress
// @Description Get saved, remaining, pace, and projected finish for a goal
// @Tags        goals
// @Produce     json
// @Param       id    path  int    true  "Goal ID"
// @Param       as_of query string false "Reference date (YYYY-MM-DD, default today)"
// @Success     200 {object} services.GoalProgress "Goal progress"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/progress [get]
func (h *GoalHandler) GetProgress(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.goalService.GetProgress(goalID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
