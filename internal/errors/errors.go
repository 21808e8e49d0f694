// Package errors provides custom error types for the Outlay API.
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

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrUserLocked         = &AppError{Code: "USER_LOCKED", Message: "User is temporarily locked", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Account errors.
var (
	ErrAccountNotFound = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
)

// Expense & income errors.
var (
	ErrExpenseNotFound    = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrIncomeNotFound     = &AppError{Code: "INCOME_NOT_FOUND", Message: "Income not found", StatusCode: http.StatusNotFound}
	ErrInvalidRecurrence  = &AppError{Code: "INVALID_RECURRENCE", Message: "Unsupported recurrence unit", StatusCode: http.StatusBadRequest}
	ErrNegativeRecurrence = &AppError{Code: "NEGATIVE_RECURRENCE", Message: "Number of recurrences must be zero or positive", StatusCode: http.StatusBadRequest}
	ErrInvalidCategory    = &AppError{Code: "INVALID_CATEGORY", Message: "Unsupported expense category", StatusCode: http.StatusBadRequest}
	ErrInvalidMonth       = &AppError{Code: "INVALID_MONTH", Message: "Month must be an integer between 1 and 12", StatusCode: http.StatusBadRequest}
	ErrInvalidYear        = &AppError{Code: "INVALID_YEAR", Message: "Year must be an integer between 1 and 9999", StatusCode: http.StatusBadRequest}
	ErrInvalidDate        = &AppError{Code: "INVALID_DATE", Message: "Date must be RFC3339, YYYY-MM-DD HH:MM:SS, or YYYY-MM-DD", StatusCode: http.StatusBadRequest}
)

// Payment errors.
var (
	ErrPaymentNotFound = &AppError{Code: "PAYMENT_NOT_FOUND", Message: "Payment not found", StatusCode: http.StatusNotFound}
)

// Amount modifier errors.
var (
	ErrModifierNotFound = &AppError{Code: "MODIFIER_NOT_FOUND", Message: "Amount modifier not found", StatusCode: http.StatusNotFound}
	ErrModifierTarget   = &AppError{Code: "MODIFIER_TARGET", Message: "Amount modifier must reference exactly one income or expense", StatusCode: http.StatusBadRequest}
	ErrInvalidModifier  = &AppError{Code: "INVALID_MODIFIER", Message: "Unsupported percent modifier", StatusCode: http.StatusBadRequest}
)
