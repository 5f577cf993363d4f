package errors

import "fmt"

// ErrorCode represents a PromptPocket error code.
type ErrorCode string

const (
	ErrUnauthenticated ErrorCode = "UNAUTHENTICATED" // 401
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"       // 404
	ErrService         ErrorCode = "SERVICE"         // non-success from the remote API
	ErrDelivery        ErrorCode = "DELIVERY"        // page message delivery failed
	ErrInternal        ErrorCode = "INTERNAL"        // 500
)

// PocketError represents a structured error with code, status, and details.
type PocketError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *PocketError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnauthenticated creates a 401 error for a missing or rejected token.
func NewUnauthenticated(msg string) *PocketError {
	if msg == "" {
		msg = "not connected; an API key is required"
	}
	return &PocketError{
		Code:    ErrUnauthenticated,
		Status:  401,
		Message: msg,
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *PocketError {
	return &PocketError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing record or receiver.
func NewNotFound(identifier string) *PocketError {
	return &PocketError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewService creates an error for a non-success response from the remote
// prompt service. The message is the server's, or a generic fallback when
// the body carried none.
func NewService(status int, msg string) *PocketError {
	if msg == "" {
		msg = fmt.Sprintf("HTTP error %d", status)
	}
	return &PocketError{
		Code:    ErrService,
		Status:  status,
		Message: msg,
		Details: map[string]any{"http_status": status},
	}
}

// NewDelivery creates an error for a failed page message delivery.
// Delivery errors are logged, never surfaced to the user.
func NewDelivery(page string, err error) *PocketError {
	msg := fmt.Sprintf("could not deliver to page %q", page)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &PocketError{
		Code:    ErrDelivery,
		Status:  502,
		Message: msg,
		Details: map[string]any{"page": page},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *PocketError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &PocketError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a PocketError with the given code.
func Is(err error, code ErrorCode) bool {
	if pErr, ok := err.(*PocketError); ok {
		return pErr.Code == code
	}
	return false
}
