// Package errors provides custom error types for the zerosum API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Category and group errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryArchived = &AppError{Code: "CATEGORY_ARCHIVED", Message: "Category is archived", StatusCode: http.StatusConflict}
	ErrCategoryInUse    = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is referenced by budget entries or transactions", StatusCode: http.StatusConflict}
	ErrGroupNotFound    = &AppError{Code: "GROUP_NOT_FOUND", Message: "Group not found", StatusCode: http.StatusNotFound}
	ErrGroupNotEmpty    = &AppError{Code: "GROUP_NOT_EMPTY", Message: "Group still contains categories", StatusCode: http.StatusConflict}
)

// Budget errors.
var (
	ErrNegativeAssignment = &AppError{Code: "NEGATIVE_ASSIGNMENT", Message: "Assigned amount cannot be negative", StatusCode: http.StatusBadRequest}
	ErrInvalidMonth       = &AppError{Code: "INVALID_MONTH", Message: "Month must be in YYYY-MM format", StatusCode: http.StatusBadRequest}
)

// Account and transaction errors.
var (
	ErrAccountNotFound     = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrSplitMismatch       = &AppError{Code: "SPLIT_MISMATCH", Message: "Split allocations must sum to the transaction amount", StatusCode: http.StatusBadRequest}
	ErrSameAccountTransfer = &AppError{Code: "SAME_ACCOUNT_TRANSFER", Message: "Cannot transfer to the same account", StatusCode: http.StatusBadRequest}
)

// Bill errors.
var (
	ErrBillNotFound = &AppError{Code: "BILL_NOT_FOUND", Message: "Bill not found", StatusCode: http.StatusNotFound}
)

// Debt errors.
var (
	ErrDebtNotFound         = &AppError{Code: "DEBT_NOT_FOUND", Message: "Debt not found", StatusCode: http.StatusNotFound}
	ErrPayoffNotConverging  = &AppError{Code: "PAYOFF_NOT_CONVERGING", Message: "Minimum payments never retire the principal", StatusCode: http.StatusUnprocessableEntity}
	ErrNoDebtsToSimulate    = &AppError{Code: "NO_DEBTS", Message: "No open debts to simulate", StatusCode: http.StatusBadRequest}
	ErrInvalidPayoffOptions = &AppError{Code: "INVALID_PAYOFF_OPTIONS", Message: "Invalid payoff simulation options", StatusCode: http.StatusBadRequest}
)

// Goal errors.
var (
	ErrGoalNotFound      = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrGoalNotActive     = &AppError{Code: "GOAL_NOT_ACTIVE", Message: "Goal is not accepting contributions", StatusCode: http.StatusConflict}
	ErrInvalidGoalStatus = &AppError{Code: "INVALID_GOAL_STATUS", Message: "Invalid goal status transition", StatusCode: http.StatusBadRequest}
)

// Income source errors.
var (
	ErrIncomeSourceNotFound = &AppError{Code: "INCOME_SOURCE_NOT_FOUND", Message: "Income source not found", StatusCode: http.StatusNotFound}
)

// Rebalance errors.
var (
	ErrReassignmentNotFound = &AppError{Code: "REASSIGNMENT_NOT_FOUND", Message: "Reassignment not found", StatusCode: http.StatusNotFound}
	ErrAlreadyReversed      = &AppError{Code: "ALREADY_REVERSED", Message: "Reassignment has already been reversed", StatusCode: http.StatusConflict}
	ErrNothingToRebalance   = &AppError{Code: "NOTHING_TO_REBALANCE", Message: "No overspent categories this month", StatusCode: http.StatusBadRequest}
)

// Scenario errors.
var (
	ErrScenarioNotFound  = &AppError{Code: "SCENARIO_NOT_FOUND", Message: "Scenario not found", StatusCode: http.StatusNotFound}
	ErrInvalidAdjustment = &AppError{Code: "INVALID_ADJUSTMENT", Message: "Adjustment window start must precede its end", StatusCode: http.StatusBadRequest}
	ErrUnknownShock      = &AppError{Code: "UNKNOWN_SHOCK", Message: "Unknown global shock template", StatusCode: http.StatusBadRequest}
	ErrApplyNotConfirmed = &AppError{Code: "APPLY_NOT_CONFIRMED", Message: "Applying a scenario rewrites future budgets; set confirm=true", StatusCode: http.StatusBadRequest}
)
