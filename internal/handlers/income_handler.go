package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/services"
)

// IncomeHandler handles planned income source requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// CreateIncomeSourceRequest represents the request payload for creating an income source.
type CreateIncomeSourceRequest struct {
	Name    string         `json:"name" binding:"required,min=1,max=100"`
	Amount  int64          `json:"amount" binding:"required,gt=0"`
	Cadence models.Cadence `json:"cadence" binding:"required,cadence"`
}

// UpdateIncomeSourceRequest represents the request payload for updating an income source.
type UpdateIncomeSourceRequest struct {
	Name    *string         `json:"name" binding:"omitempty,min=1,max=100"`
	Amount  *int64          `json:"amount" binding:"omitempty,gt=0"`
	Cadence *models.Cadence `json:"cadence" binding:"omitempty,cadence"`
}

// CreateIncomeSource handles the creation of a new income source.
// @Summary     Create an income source
// @Description Create a recurring planned income source
// @Tags        income
// @Accept      json
// @Produce     json
// @Param       request body CreateIncomeSourceRequest true "Income source details"
// @Success     201 {object} models.IncomeSource "Income source created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-sources [post]
func (h *IncomeHandler) CreateIncomeSource(c *gin.Context) {
	var req CreateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.incomeService.CreateIncomeSource(req.Name, req.Amount, req.Cadence)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"income_source": source})
}

// GetIncomeSources handles listing all income sources.
// @Summary     Get income sources
// @Description Get all planned income sources
// @Tags        income
// @Produce     json
// @Success     200 {array} models.IncomeSource "Income sources"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-sources [get]
func (h *IncomeHandler) GetIncomeSources(c *gin.Context) {
	sources, err := h.incomeService.GetIncomeSources()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_sources": sources})
}

// UpdateIncomeSource handles updating an income source.
// @Summary     Update an income source
// @Description Update fields of an existing income source
// @Tags        income
// @Accept      json
// @Produce     json
// @Param       id      path int                       true "Income source ID"
// @Param       request body UpdateIncomeSourceRequest true "Fields to update"
// @Success     200 {object} models.IncomeSource "Income source updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Income source not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-sources/{id} [put]
func (h *IncomeHandler) UpdateIncomeSource(c *gin.Context) {
	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.incomeService.UpdateIncomeSource(sourceID, req.Name, req.Amount, req.Cadence)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_source": source})
}

// DeleteIncomeSource handles deleting an income source.
// @Summary     Delete an income source
// @Description Remove a planned income source
// @Tags        income
// @Produce     json
// @Param       id path int true "Income source ID"
// @Success     200 {object} MessageResponse "Income source deleted"
// @Failure     404 {object} ErrorResponse "Income source not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-sources/{id} [delete]
func (h *IncomeHandler) DeleteIncomeSource(c *gin.Context) {
	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncomeSource(sourceID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Income source deleted successfully"})
}
