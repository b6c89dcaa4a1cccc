package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecowash/ecowash-backend/internal/repository"
	"github.com/ecowash/ecowash-backend/internal/service"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.JSONSerializer = StrictJSONSerializer{}
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = HTTPErrorHandler
	return e
}

func TestBind(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"ok", `{"vehicleType":"suv","service":"complet","date":"2025-06-01","time":"10:00","address":"12 rue X"}`, http.StatusOK, ""},
		{"unknown status field", `{"vehicleType":"suv","service":"complet","date":"2025-06-01","time":"10:00","address":"12 rue X","status":"approved"}`, http.StatusBadRequest, "Champ non permis : status"},
		{"bad enum", `{"vehicleType":"bus","service":"complet","date":"2025-06-01","time":"10:00","address":"12 rue X"}`, http.StatusBadRequest, "Champ invalide : vehicleType"},
		{"missing address", `{"vehicleType":"suv","service":"complet","date":"2025-06-01","time":"10:00"}`, http.StatusBadRequest, "Champ invalide : address"},
		{"wrong type", `{"vehicleType":"suv","service":"complet","date":"2025-06-01","time":10,"address":"x"}`, http.StatusBadRequest, "Champ invalide : time"},
		{"malformed", `{`, http.StatusBadRequest, "Corps de requête invalide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var got createReservationReq
			err := bind(c, &got)
			if tt.status == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Empty(t, rec.Body.String())
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.status, he.Code)
			assert.Equal(t, tt.msg, he.Message)
			assert.False(t, c.Response().Committed, "nothing is written before the handler returns")
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestBind_HandlerStopsOnInvalidBody(t *testing.T) {
	e := newEcho()
	reached := false
	e.POST("/api/reservations", func(c echo.Context) error {
		var req createReservationReq
		if err := bind(c, &req); err != nil {
			return err
		}
		reached = true
		return c.JSON(http.StatusCreated, req)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(
		`{"vehicleType":"suv","service":"complet","date":"2025-06-01","time":"10:00","address":"x","status":"approved"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "exactly one JSON document: %s", rec.Body.String())
	assert.Equal(t, "Champ non permis : status", out["message"])
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"http error", echo.NewHTTPError(http.StatusBadRequest, "Champ invalide : email"), http.StatusBadRequest, "Champ invalide : email"},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"non-string message", echo.NewHTTPError(http.StatusConflict, 42), http.StatusConflict, http.StatusText(http.StatusConflict)},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Erreur serveur"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			HTTPErrorHandler(tt.err, c)
			assert.Equal(t, tt.status, rec.Code)
			var out map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.Equal(t, tt.msg, out["message"])
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-06-01", "2025-06-01T00:00:00Z", "2025-06-01T15:30:00Z", " 2025-06-01 "} {
		got, err := parseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}
	_, err := parseDate("01/06/2025")
	assert.Error(t, err)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", repository.ErrNotFound), http.StatusNotFound},
		{service.ErrForbidden, http.StatusUnauthorized},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrEmailTaken, http.StatusBadRequest},
		{service.ErrReviewExists, http.StatusBadRequest},
		{repository.ErrDuplicate, http.StatusBadRequest},
		{service.ErrInvalidStatus, http.StatusBadRequest},
		{service.ErrReasonRequired, http.StatusBadRequest},
		{fmt.Errorf("%w: pending -> completed", service.ErrIllegalTransition), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("list: %w", context.DeadlineExceeded), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		e := newEcho()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, respondError(c, tt.err, "absent"))
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		assert.Contains(t, rec.Body.String(), `"message"`)
	}
}

func TestHealth(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	require.NoError(t, Health(e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)))
	assert.Equal(t, "ok", rec.Body.String())
}
