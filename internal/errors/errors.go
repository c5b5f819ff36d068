package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("User not found")
	// ErrSectorNotFound is returned when a sector is not found.
	ErrSectorNotFound = errors.New("Sector not found")
	// ErrAssetNotFound is returned when an asset is not found.
	ErrAssetNotFound = errors.New("Asset not found")
	// ErrPortfolioNotFound is returned when a portfolio is not found.
	ErrPortfolioNotFound = errors.New("Portfolio not found")
	// ErrPositionNotFound is returned when a position is not found.
	ErrPositionNotFound = errors.New("Position not found")
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("Transaction not found")
	// ErrWatchlistNotFound is returned when a watchlist item is not found.
	ErrWatchlistNotFound = errors.New("Watchlist item not found")
	// ErrAlertNotFound is returned when an alert is not found.
	ErrAlertNotFound = errors.New("Alert not found")
	// ErrScenarioNotFound is returned when a scenario result is not found.
	ErrScenarioNotFound = errors.New("Scenario not found")
	// ErrAuditEventNotFound is returned when an audit event is not found.
	ErrAuditEventNotFound = errors.New("Audit event not found")

	// ErrPositionExists is returned when a portfolio already holds a position in the asset.
	ErrPositionExists = errors.New("Position already exists for this portfolio and asset")
	// ErrNoValidFields is returned when an update body carries no updatable field.
	ErrNoValidFields = errors.New("No valid fields to update")
)

var notFound = []error{
	ErrUserNotFound,
	ErrSectorNotFound,
	ErrAssetNotFound,
	ErrPortfolioNotFound,
	ErrPositionNotFound,
	ErrTransactionNotFound,
	ErrWatchlistNotFound,
	ErrAlertNotFound,
	ErrScenarioNotFound,
	ErrAuditEventNotFound,
}

// ValidationError reports malformed or missing client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// MissingField reports the first required field absent from a request body.
func MissingField(field string) *ValidationError {
	return NewValidationError("Missing required field: %s", field)
}

// InvalidField reports a field whose value could not be decoded.
func InvalidField(field string) *ValidationError {
	return NewValidationError("Invalid value for field: %s", field)
}

// ErrorResponse represents the failure envelope shared by every endpoint.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success:    false,
		Error:      e.Message,
		StatusCode: e.StatusCode,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Anything outside the domain taxonomy is a storage failure and keeps its raw message.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &verr):
		return NewHTTPError(http.StatusBadRequest, verr.Message)
	case errors.Is(err, ErrPositionExists), errors.Is(err, ErrNoValidFields):
		return NewHTTPError(http.StatusBadRequest, rootMessage(err))
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return NewHTTPError(http.StatusNotFound, target.Error())
		}
	}
	return NewHTTPError(http.StatusInternalServerError, err.Error())
}

func rootMessage(err error) string {
	for _, target := range []error{ErrPositionExists, ErrNoValidFields} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
