package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure so handlers can pick the right HTTP status.
type Code string

const (
	CodeNotFound        Code = "NOT_FOUND"
	CodeInvalid         Code = "INVALID"
	CodeConflict        Code = "CONFLICT"
	CodeForbidden       Code = "FORBIDDEN"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeInternal        Code = "INTERNAL"
)

type codedError struct {
	code Code
	msg  string
	err  error
}

func (e *codedError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *codedError) Unwrap() error { return e.err }
func (e *codedError) Code() Code    { return e.code }

func New(code Code, msg string) error {
	return &codedError{code: code, msg: msg}
}

func Newf(code Code, format string, args ...any) error {
	return &codedError{code: code, msg: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, msg string, err error) error {
	return &codedError{code: code, msg: msg, err: err}
}

// CodeOf extracts the code from an error chain. Uncoded errors are Internal.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return CodeInternal
}

func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalid:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
