package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zerosum/internal/engine"
	apperrors "zerosum/internal/errors"
	"zerosum/internal/services"
)

// ForecastHandler handles runway and cash-flow projection requests.
type ForecastHandler struct {
	forecastService services.ForecastServicer
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecastService services.ForecastServicer) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

func parseForecastMonths(c *gin.Context) (int, error) {
	v := c.Query("months")
	if v == "" {
		return 0, nil
	}
	months, err := strconv.Atoi(v)
	if err != nil || months < 1 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid months")
	}
	return months, nil
}

// GetRunway handles the savings runway report.
// @Summary     Get savings runway
// @Description Report how many months liquid cash sustains the current burn rate
// @Tags        forecast
// @Produce     json
// @Param       mode  query string false "Forecast mode (planned_only/planned_plus_average, default planned_only)"
// @Param       as_of query string false "Reference date (YYYY-MM-DD, default today)"
// @Success     200 {object} engine.SavingsRunway "Runway report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forecast/runway [get]
func (h *ForecastHandler) GetRunway(c *gin.Context) {
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	runway, err := h.forecastService.GetRunway(engine.ForecastMode(c.Query("mode")), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"runway": runway})
}

// GetProjection handles the month-by-month cash-flow projection.
// @Summary     Get cash-flow projection
// @Description Project income, outflows, and ending cash for the coming months
// @Tags        forecast
// @Produce     json
// @Param       mode   query string false "Forecast mode (planned_only/planned_plus_average, default planned_only)"
// @Param       months query int    false "Horizon in months (default from config, max 120)"
// @Param       as_of  query string false "Reference date (YYYY-MM-DD, default today)"
// @Success     200 {object} engine.CashFlowForecast "Cash-flow projection"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forecast/projection [get]
func (h *ForecastHandler) GetProjection(c *gin.Context) {
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

	forecast, err := h.forecastService.GetProjection(engine.ForecastMode(c.Query("mode")), months, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}
