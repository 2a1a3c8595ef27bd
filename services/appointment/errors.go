package appointment

import (
	"context"
	"errors"
	"fmt"
)

// Stable error codes; handlers map each one to a distinct HTTP status so
// callers can branch programmatically.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeInPast              = "IN_PAST"
	CodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	CodeSlotTaken           = "SLOT_TAKEN"
	CodeNotAuthorized       = "NOT_AUTHORIZED"
	CodeTerminalState       = "TERMINAL_STATE"
	CodeInvalidTimeFormat   = "INVALID_TIME_FORMAT"
	CodeOutOfRangeTime      = "OUT_OF_RANGE_TIME"
	CodeStoreError          = "STORE_ERROR"
	CodeStoreUnavailable    = "STORE_UNAVAILABLE"
	CodeLedgerInconsistency = "LEDGER_INCONSISTENCY"
)

// Error is the typed failure returned by the booking engine.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a typed engine error.
func NewError(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the engine error code, or "" for foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// storeFailure classifies a collaborator failure. Timed-out store calls are
// reported as unavailable so callers can retry.
func storeFailure(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(CodeStoreUnavailable, "store timed out: %v", err)
	}
	return NewError(CodeStoreError, "store operation failed: %v", err)
}
