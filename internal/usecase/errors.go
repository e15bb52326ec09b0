package usecase

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrorRejectedModel       ErrorCode = "REJECTED_MODEL"
	ErrorMissingCredential   ErrorCode = "MISSING_CREDENTIAL"
	ErrorUnsupportedProvider ErrorCode = "UNSUPPORTED_PROVIDER"
	ErrorEmptyResponse       ErrorCode = "EMPTY_RESPONSE"
	ErrorUnhandled           ErrorCode = "UNHANDLED_FAILURE"
)

// Error is the typed failure returned by the chat service and dispatcher.
// Message is the text shown to callers; Reason is a stable machine-readable tag.
type Error struct {
	Code    ErrorCode
	Reason  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason, message string, err error) *Error {
	return &Error{Code: code, Reason: reason, Message: message, Err: err}
}

// dispatchError builds an error whose message carries the "Error: " prefix
// callers of the dispatcher have always received.
func dispatchError(code ErrorCode, reason, detail string, err error) *Error {
	return newError(code, reason, "Error: "+detail, err)
}

// Text renders a dispatch outcome as the single string callers of the legacy
// contract expect: the response on success, the error message otherwise.
func Text(response string, err error) string {
	if err == nil {
		return response
	}
	var ucErr *Error
	if errors.As(err, &ucErr) && ucErr.Message != "" {
		return ucErr.Message
	}
	return "Error: processing request: " + err.Error()
}

// CodeOf returns the error code carried by err, or ErrorUnhandled for foreign errors.
func CodeOf(err error) ErrorCode {
	var ucErr *Error
	if errors.As(err, &ucErr) {
		return ucErr.Code
	}
	return ErrorUnhandled
}
