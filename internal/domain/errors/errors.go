// Package errors defines the application error taxonomy. Every failure the core
// can produce is a distinguishable variant; callers branch on the variant instead
// of matching error strings.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code for the delivery layer that hosts the core
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Is matches by business error code, so variants cloned through WithDetails
// still compare equal to their predefined sentinel.
func (e *BaseError) Is(target error) bool {
	var base *BaseError
	if errors.As(target, &base) {
		return e.errorCode == base.errorCode
	}

	return false
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors: malformed input rejected before any state is touched.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrQuantityInvalid = NewBaseError(
		http.StatusBadRequest,
		"QUANTITY_INVALID",
		"quantity must be positive",
		"",
	)

	ErrAmountInvalid = NewBaseError(
		http.StatusBadRequest,
		"AMOUNT_INVALID",
		"amount must be positive",
		"",
	)

	// State errors: a lifecycle transition or lock guard was violated.
	ErrStateTransition = NewBaseError(
		http.StatusConflict,
		"STATE_VIOLATION",
		"campaign state does not permit this operation",
		"",
	)

	ErrItemsLocked = NewBaseError(
		http.StatusConflict,
		"ITEMS_LOCKED",
		"items are locked once the first pirate joins",
		"",
	)

	ErrCampaignClosed = NewBaseError(
		http.StatusConflict,
		"CAMPAIGN_CLOSED",
		"campaign is completed or cancelled",
		"",
	)

	// Stock errors: the assignment would exceed the item's target quantity.
	ErrStockExceeded = NewBaseError(
		http.StatusConflict,
		"STOCK_EXCEEDED",
		"assignment would exceed the item target quantity",
		"",
	)

	// Conflict errors: alias collisions and overpayment.
	ErrAliasTaken = NewBaseError(
		http.StatusConflict,
		"ALIAS_CONFLICT",
		"alias already in use within this campaign",
		"",
	)

	ErrOverpayment = NewBaseError(
		http.StatusConflict,
		"OVERPAYMENT",
		"payment would exceed the assignment total cost",
		"",
	)

	// Integrity errors: ciphertext failed authentication. Fatal for the decrypt
	// call; the codec never returns garbled plaintext instead.
	ErrIntegrityViolation = NewBaseError(
		http.StatusUnprocessableEntity,
		"INTEGRITY_VIOLATION",
		"ciphertext failed authentication",
		"",
	)

	// Not-found errors.
	ErrCampaignNotFound = NewBaseError(
		http.StatusNotFound,
		"CAMPAIGN_NOT_FOUND",
		"campaign not found",
		"",
	)

	ErrPirateNotFound = NewBaseError(
		http.StatusNotFound,
		"PIRATE_NOT_FOUND",
		"pirate not found",
		"",
	)

	ErrItemNotFound = NewBaseError(
		http.StatusNotFound,
		"ITEM_NOT_FOUND",
		"item not found",
		"",
	)

	ErrAssignmentNotFound = NewBaseError(
		http.StatusNotFound,
		"ASSIGNMENT_NOT_FOUND",
		"assignment not found",
		"",
	)

	// Key store errors: the per-owner salt could not be read or written. The
	// key manager never falls back to a default key.
	ErrKeyStoreUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"KEYSTORE_UNAVAILABLE",
		"owner key store is unavailable",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
