package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/services"
)

// ScenarioHandler handles what-if scenario requests.
type ScenarioHandler struct {
	scenarioService services.ScenarioServicer
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(scenarioService services.ScenarioServicer) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// AdjustmentRequest is one adjustment in a scenario payload. A nil category
// targets income instead of a spending category.
type AdjustmentRequest struct {
	CategoryID *uint                 `json:"category_id"`
	Type       models.AdjustmentType `json:"type" binding:"required,adjustment_type"`
	Percent    float64               `json:"percent"`
	Amount     int64                 `json:"amount"`
	StartMonth *models.Month         `json:"start_month" binding:"omitempty,month_key"`
	EndMonth   *models.Month         `json:"end_month" binding:"omitempty,month_key"`
}

// CreateScenarioRequest represents the request payload for creating a scenario.
type CreateScenarioRequest struct {
	Name        string              `json:"name" binding:"required,min=1,max=100"`
	Adjustments []AdjustmentRequest `json:"adjustments" binding:"omitempty,dive"`
	Shocks      []string            `json:"shocks"`
}

// CompareScenariosRequest represents the request payload for comparing scenarios.
type CompareScenariosRequest struct {
	ScenarioIDs []uint `json:"scenario_ids" binding:"required,min=1"`
	Mode        string `json:"mode" binding:"omitempty,forecast_mode"`
	Months      int    `json:"months" binding:"min=0"`
}

// ApplyScenarioRequest represents the request payload for applying a scenario
// to the real plan.
type ApplyScenarioRequest struct {
	FromMonth models.Month `json:"from_month" binding:"required,month_key"`
	Confirm   bool         `json:"confirm"`
}

func toAdjustmentInputs(adjustments []AdjustmentRequest) []services.AdjustmentInput {
	if len(adjustments) == 0 {
		return nil
	}
	inputs := make([]services.AdjustmentInput, len(adjustments))
	for i, a := range adjustments {
		inputs[i] = services.AdjustmentInput{
			CategoryID: a.CategoryID,
			Type:       a.Type,
			Percent:    a.Percent,
			Amount:     a.Amount,
			StartMonth: a.StartMonth,
			EndMonth:   a.EndMonth,
		}
	}
	return inputs
}

// CreateScenario handles the creation of a new scenario.
// @Summary     Create a scenario
// @Description Create a what-if scenario from adjustments and shock templates
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Param       request body CreateScenarioRequest true "Scenario details"
// @Success     201 {object} models.Scenario "Scenario created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category or shock not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios [post]
func (h *ScenarioHandler) CreateScenario(c *gin.Context) {
	var req CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scenario, err := h.scenarioService.CreateScenario(req.Name, toAdjustmentInputs(req.Adjustments), req.Shocks)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"scenario": scenario})
}

// GetScenarios handles listing all scenarios.
// @Summary     Get scenarios
// @Description Get all saved scenarios
// @Tags        scenarios
// @Produce     json
// @Success     200 {array} models.Scenario "Scenarios"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios [get]
func (h *ScenarioHandler) GetScenarios(c *gin.Context) {
	scenarios, err := h.scenarioService.GetScenarios()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

// GetScenarioByID handles retrieving a single scenario.
// @Summary     Get a scenario
// @Description Get a scenario by its ID, including adjustments and shocks
// @Tags        scenarios
// @Produce     json
// @Param       id path int true "Scenario ID"
// @Success     200 {object} models.Scenario "Scenario"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id} [get]
func (h *ScenarioHandler) GetScenarioByID(c *gin.Context) {
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenario, err := h.scenarioService.GetScenarioByID(scenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenario": scenario})
}

// DeleteScenario handles deleting a scenario.
// @Summary     Delete a scenario
// @Description Delete a scenario with its adjustments and shocks
// @Tags        scenarios
// @Produce     json
// @Param       id path int true "Scenario ID"
// @Success     200 {object} MessageResponse "Scenario deleted"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id} [delete]
func (h *ScenarioHandler) DeleteScenario(c *gin.Context) {
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.scenarioService.DeleteScenario(scenarioID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Scenario deleted successfully"})
}

// GetShockTemplates handles listing the built-in shock templates.
// @Summary     Get shock templates
// @Description Get the built-in shock templates scenarios can reference by name
// @Tags        scenarios
// @Produce     json
// @Success     200 {array} engine.ShockTemplate "Shock templates"
// @Router      /scenarios/shocks [get]
func (h *ScenarioHandler) GetShockTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shocks": h.scenarioService.GetShockTemplates()})
}

// ForecastScenario handles projecting cash flow under a scenario.
// @Summary     Forecast a scenario
// @Description Project cash flow with the scenario's adjustments and shocks applied
// @Tags        scenarios
// @Produce     json
// @Param       id     path  int    true  "Scenario ID"
// @Param       mode   query string false "Forecast mode (planned_only/planned_plus_average)"
// @Param       months query int    false "Horizon in months"
// @Param       as_of  query string false "Reference date (YYYY-MM-DD, default today)"
// @Success     200 {object} engine.AdjustedForecast "Adjusted forecast"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id}/forecast [get]
func (h *ScenarioHandler) ForecastScenario(c *gin.Context) {
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months, err := parseForecastMonths(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	forecast, err := h.scenarioService.ForecastScenario(scenarioID, engine.ForecastMode(c.Query("mode")), months, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}

// CompareScenarios handles running several scenarios against the baseline.
// @Summary     Compare scenarios
// @Description Run several scenarios over the same horizon and compare against the baseline
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Param       request body CompareScenariosRequest true "Scenarios and horizon"
// @Success     200 {object} engine.ScenarioComparison "Comparison"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/compare [post]
func (h *ScenarioHandler) CompareScenarios(c *gin.Context) {
	var req CompareScenariosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	comparison, err := h.scenarioService.CompareScenarios(req.ScenarioIDs, engine.ForecastMode(req.Mode), req.Months, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": comparison})
}

// ApplyToPlan handles writing a scenario's category adjustments into the plan.
// @Summary     Apply a scenario to the plan
// @Description Write the scenario's category adjustments into future budget entries. Requires confirm.
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Scenario ID"
// @Param       request body ApplyScenarioRequest true "Target month and confirmation"
// @Success     200 {array} models.BudgetEntry "Updated entries"
// @Failure     400 {object} ErrorResponse "Invalid input or not confirmed"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id}/apply [post]
func (h *ScenarioHandler) ApplyToPlan(c *gin.Context) {
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ApplyScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.scenarioService.ApplyToPlan(scenarioID, req.FromMonth, req.Confirm, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
