// Package errors provides error codes and wrapping helpers shared across the
// verification core. Services return CoreError values; the dispatcher boundary
// maps codes to user-facing alert keys, everything else logs and moves on.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error for boundary handling.
type Code string

const (
	// CodeNotFound means the referenced verification does not exist.
	CodeNotFound Code = "not_found"
	// CodeTargetMismatch means the caller is not the verification's target user.
	CodeTargetMismatch Code = "target_mismatch"
	// CodeAlreadyProcessed means the verification already left the waiting state.
	CodeAlreadyProcessed Code = "already_processed"
	// CodeBadPayload means the callback payload failed to parse; never retried.
	CodeBadPayload Code = "bad_payload"
	// CodeUnsupported marks an unimplemented operation (e.g. killing method).
	CodeUnsupported Code = "unsupported"
	// CodePersistence means a record-store update was rejected.
	CodePersistence Code = "persistence"
	// CodeTransport means a platform API call failed; handled inside delivery.
	CodeTransport Code = "transport"
	// CodeInternal covers anything uncategorized.
	CodeInternal Code = "internal"
)

// CoreError carries a code alongside the message so boundaries can branch on
// classification without string matching.
type CoreError struct {
	Code    Code
	Message string
	Err     error
}

func (e *CoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CoreError) Unwrap() error { return e.Err }

// New constructs a CoreError with no underlying cause.
func New(code Code, message string) error {
	return &CoreError{Code: code, Message: message}
}

// Newf constructs a CoreError with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &CoreError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. A nil err yields nil
// so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &CoreError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CodeInternal
}

// Is reports whether the error chain carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsValidation reports whether the error is safe to show the user as a
// translated message (versus a generic alert).
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case CodeNotFound, CodeTargetMismatch, CodeAlreadyProcessed:
		return true
	}
	return false
}
