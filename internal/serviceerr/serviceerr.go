package serviceerr

import "fmt"

// Code is the machine-readable error class returned across the service boundary.
type Code string

const (
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodePermissionDenied  Code = "PERMISSION_DENIED"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeConflict          Code = "CONFLICT"
	CodeInternal          Code = "INTERNAL"
)

// Error is a structured, caller-recoverable service error. Handlers map Status
// straight onto the HTTP response; Message is safe to show to the user.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"` // HTTP status hint
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying error so logs and errors.Is can reach it.
func (e *Error) Unwrap() error {
	return e.cause
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message, Status: 401}
}

func PermissionDenied(message string) *Error {
	return &Error{Code: CodePermissionDenied, Message: message, Status: 403}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message, Status: 404}
}

func InvalidTransition(message string) *Error {
	return &Error{Code: CodeInvalidTransition, Message: message, Status: 422}
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Status: 400}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message, Status: 409}
}

// Internal wraps an unexpected persistence failure. The original error is kept
// for logs only; the user sees a generic retry message.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "Có lỗi hệ thống, vui lòng thử lại sau", Status: 500, cause: err}
}

// As unwraps err into *Error if it is one.
func As(err error) (*Error, bool) {
	se, ok := err.(*Error)
	return se, ok
}
