package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// API error codes, mirroring what clients already key on.
const (
	CodeInvalidBody        = "invalid_body"
	CodeInvalidFields      = "invalid_fields"
	CodeInvalidStatus      = "invalid_status"
	CodeInvalidDate        = "invalid_date"
	CodeNoUpdates          = "no_updates"
	CodeCourseNotFound     = "course_not_found"
	CodeLectureNotFound    = "lecture_not_found"
	CodeAssignmentNotFound = "assignment_not_found"
	CodeUserNotFound       = "user_not_found"
	CodeNotEnrolled        = "not_enrolled"
	CodeAlreadyEnrolled    = "already_enrolled"
	CodeEmailExists        = "email_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthorized       = "unauthorized"
	CodeServerError        = "server_error"
)

// Error is the one error type services hand to the HTTP layer. Status is
// the HTTP status to respond with; Fields carries per-field validation
// reasons when Code is invalid_fields.
type Error struct {
	Code    string
	Message string
	Status  int
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusNotFound}
}

func Conflict(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusConflict}
}

func Invalid(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusBadRequest}
}

func InvalidFields(message string, fields map[string]string) *Error {
	return &Error{Code: CodeInvalidFields, Message: message, Status: http.StatusBadRequest, Fields: fields}
}

func Unauthorized(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusUnauthorized}
}

// Internal wraps a store or infrastructure failure. The wrapped error is
// for server-side logs only; the message clients see stays generic.
func Internal(message string, err error) *Error {
	return &Error{Code: CodeServerError, Message: message, Status: http.StatusInternalServerError, Err: err}
}

// From normalizes any error into an *Error, wrapping unknown errors as
// generic server errors.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("internal server error", err)
}
