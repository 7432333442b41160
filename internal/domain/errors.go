package domain

import (
	"fmt"
	"net/http"
)

// ErrorKind tags report failures. Validation kinds short-circuit before any
// gateway call; KindAggregation covers gateway and computation faults.
type ErrorKind string

const (
	KindMissingPartner    ErrorKind = "missing_partner"
	KindMissingDateRange  ErrorKind = "missing_date_range"
	KindInvalidDateFormat ErrorKind = "invalid_date_format"
	KindInvalidDateRange  ErrorKind = "invalid_date_range"
	KindInvalidStatus     ErrorKind = "invalid_status"
	KindAggregation       ErrorKind = "aggregation"
)

// Error is the single failure shape the engine surfaces. Status is the
// HTTP-style code the presentation layer should use; cause (if any) is kept
// for logging only and never shown to the caller.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Validation builds a 400-class failure.
func Validation(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Status: http.StatusBadRequest, Message: msg}
}

// Aggregation wraps a gateway or computation fault as a 500-class failure,
// preserving the cause for logs behind a generic message.
func Aggregation(msg string, cause error) *Error {
	return &Error{Kind: KindAggregation, Status: http.StatusInternalServerError, Message: msg, cause: cause}
}
