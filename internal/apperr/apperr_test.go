package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bikebay/server/internal/apperr"
)

func TestCodeOf(t *testing.T) {
	if got := apperr.CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %q, want empty", got)
	}
	if got := apperr.CodeOf(errors.New("plain")); got != apperr.CodeInternal {
		t.Errorf("uncoded error = %q, want Internal", got)
	}
	err := apperr.New(apperr.CodeNotFound, "missing")
	if got := apperr.CodeOf(err); got != apperr.CodeNotFound {
		t.Errorf("got %q, want NotFound", got)
	}

	// The code survives wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("outer context: %w", err)
	if got := apperr.CodeOf(wrapped); got != apperr.CodeNotFound {
		t.Errorf("wrapped: got %q, want NotFound", got)
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Wrap(apperr.CodeInternal, "failed to reach database", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	if err.Error() != "failed to reach database: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code apperr.Code
		want int
	}{
		{apperr.CodeNotFound, http.StatusNotFound},
		{apperr.CodeInvalid, http.StatusBadRequest},
		{apperr.CodeConflict, http.StatusConflict},
		{apperr.CodeForbidden, http.StatusForbidden},
		{apperr.CodeUnauthenticated, http.StatusUnauthorized},
		{apperr.CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		err := apperr.New(tc.code, "x")
		if got := apperr.HTTPStatus(err); got != tc.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tc.code, got, tc.want)
		}
	}
	if got := apperr.HTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("uncoded error status = %d, want 500", got)
	}
}
