package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/services"
)

// BillHandler handles recurring bill requests.
type BillHandler struct {
	billService services.BillServicer
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService services.BillServicer) *BillHandler {
	return &BillHandler{billService: billService}
}

// CreateBillRequest represents the request payload for creating a bill.
type CreateBillRequest struct {
	Name       string         `json:"name" binding:"required,min=1,max=100"`
	Amount     int64          `json:"amount" binding:"required,gt=0"`
	Cadence    models.Cadence `json:"cadence" binding:"required,cadence"`
	NextDue    string         `json:"next_due" binding:"required"`
	CategoryID uint           `json:"category_id" binding:"required"`
	Flexible   bool           `json:"flexible"`
	Autopay    bool           `json:"autopay"`
}

// UpdateBillRequest represents the request payload for updating a bill.
type UpdateBillRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Amount   *int64  `json:"amount" binding:"omitempty,gt=0"`
	NextDue  *string `json:"next_due"`
	Flexible *bool   `json:"flexible"`
	Autopay  *bool   `json:"autopay"`
}

// TrailingAverageRequest represents the request payload for recording a
// trailing average on a flexible bill.
type TrailingAverageRequest struct {
	Months int `json:"months" binding:"required,min=1,max=24"`
}

// CreateBill handles the creation of a new bill.
// @Summary     Create a bill
// @Description Create a recurring bill tied to a category
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       request body CreateBillRequest true "Bill details"
// @Success     201 {object} models.Bill "Bill created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	nextDue, err := parseFlexibleTime(req.NextDue)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.CreateBill(
		req.Name, req.Amount, req.Cadence, nextDue, req.CategoryID, req.Flexible, req.Autopay,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

// GetBills handles listing all bills.
// @Summary     Get bills
// @Description Get all recurring bills
// @Tags        bills
// @Produce     json
// @Success     200 {array} models.Bill "Bills"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [get]
func (h *BillHandler) GetBills(c *gin.Context) {
	bills, err := h.billService.GetBills()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// GetBillByID handles retrieving a single bill.
// @Summary     Get a bill
// @Description Get a bill by its ID
// @Tags        bills
// @Produce     json
// @Param       id path int true "Bill ID"
// @Success     200 {object} models.Bill "Bill"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [get]
func (h *BillHandler) GetBillByID(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.GetBillByID(billID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// UpdateBill handles updating a bill.
// @Summary     Update a bill
// @Description Update fields of an existing bill
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       id      path int               true "Bill ID"
// @Param       request body UpdateBillRequest true "Fields to update"
// @Success     200 {object} models.Bill "Bill updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [put]
func (h *BillHandler) UpdateBill(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var nextDue *time.Time
	if req.NextDue != nil {
		parsed, parseErr := parseFlexibleTime(*req.NextDue)
		if parseErr != nil {
			respondWithError(c, parseErr)
			return
		}
		nextDue = &parsed
	}

	bill, err := h.billService.UpdateBill(billID, req.Name, req.Amount, nextDue, req.Flexible, req.Autopay)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// DeleteBill handles deleting a bill.
// @Summary     Delete a bill
// @Description Delete a recurring bill
// @Tags        bills
// @Produce     json
// @Param       id path int true "Bill ID"
// @Success     200 {object} MessageResponse "Bill deleted"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.DeleteBill(billID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}

// GetDueSoon handles listing bills due within a window.
// @Summary     Get bills due soon
// @Description Get bills due within the given number of days
// @Tags        bills
// @Produce     json
// @Param       within_days query int    false "Window in days (default 7)"
// @Param       as_of       query string false "Reference date (YYYY-MM-DD, default today)"
// @Success     200 {array} services.UpcomingBill "Upcoming bills"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/due-soon [get]
func (h *BillHandler) GetDueSoon(c *gin.Context) {
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	withinDays := 0
	if v := c.Query("within_days"); v != "" {
		days, parseErr := strconv.Atoi(v)
		if parseErr != nil || days < 1 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid within_days"))
			return
		}
		withinDays = days
	}

	bills, err := h.billService.GetDueSoon(withinDays, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// GetOverdue handles listing bills past their due date.
// @Summary     Get overdue bills
// @Description Get bills whose due date has passed without being marked paid
// @Tags        bills
// @Produce     json
// @Param       as_of query string false "Reference date (YYYY-MM-DD, default today)"
// @Success     200 {array} services.UpcomingBill "Overdue bills"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/overdue [get]
func (h *BillHandler) GetOverdue(c *gin.Context) {
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bills, err := h.billService.GetOverdue(asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// MarkPaid handles advancing a bill to its next occurrence.
// @Summary     Mark a bill paid
// @Description Advance the bill's due date past the reference date; one-off bills are removed
// @Tags        bills
// @Produce     json
// @Param       id    path  int    true  "Bill ID"
// @Param       as_of query string false "Payment date (YYYY-MM-DD, default today)"
// @Success     200 {object} models.Bill "Bill advanced"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/paid [post]
func (h *BillHandler) MarkPaid(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.MarkPaid(billID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// RecordTrailingAverage handles refreshing a flexible bill's amount from history.
// @Summary     Record trailing average
// @Description Set a flexible bill's amount to its category's trailing spending average
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       id      path int                    true "Bill ID"
// @Param       request body TrailingAverageRequest true "Averaging window"
// @Success     200 {object} models.Bill "Bill updated"
// @Failure     400 {object} ErrorResponse "Invalid input or bill not flexible"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/trailing-average [post]
func (h *BillHandler) RecordTrailingAverage(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TrailingAverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.RecordTrailingAverage(billID, req.Months, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}
