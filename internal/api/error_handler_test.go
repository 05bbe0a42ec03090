package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/unimag/portal/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: title is required", domain.ErrInvalidInput), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrSubmissionNotFound, http.StatusNotFound},
		{domain.ErrFacultyNotFound, http.StatusNotFound},
		{domain.ErrSettingsNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrEmptyComment, http.StatusUnprocessableEntity},
		{domain.ErrTermsNotAccepted, http.StatusUnprocessableEntity},
		{domain.ErrDeadlinePassed, http.StatusUnprocessableEntity},
		{domain.ErrMissingFile, http.StatusUnprocessableEntity},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{domain.ErrUnsupportedFileType, http.StatusUnsupportedMediaType},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		code, msg := handleError(t, tc.err)
		if code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, code)
		}
		if msg == "" {
			t.Errorf("%v: empty error message", tc.err)
		}
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, msg := handleError(t, echo.NewHTTPError(http.StatusForbidden, "forbidden"))
	if code != http.StatusForbidden || msg != "forbidden" {
		t.Errorf("expected 403 forbidden, got %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque500(t *testing.T) {
	code, msg := handleError(t, errors.New("mongo: connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", code)
	}
	// Internal causes must not leak to clients.
	if msg != "internal server error" {
		t.Errorf("expected generic message, got %q", msg)
	}
}
