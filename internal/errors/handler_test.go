package errors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankmetrics/internal/infrastructure"
)

var errWidgetMissing = errors.New("widget missing")

func newTestHandler(buf *bytes.Buffer) *ErrorHandler {
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewErrorHandler(logger, Mapping{Target: errWidgetMissing, Response: ErrMetricNotFound})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantLevel  string
	}{
		{
			name:       "mapped sentinel",
			err:        fmt.Errorf("lookup: %w", errWidgetMissing),
			wantStatus: http.StatusNotFound,
			wantError:  "Metric not found",
			wantLevel:  "WARN",
		},
		{
			name:       "api error passes through",
			err:        InvalidParameter("banks"),
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid banks parameter",
			wantLevel:  "WARN",
		},
		{
			name:       "deadline exceeded",
			err:        fmt.Errorf("query: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantError:  "Request timed out",
			wantLevel:  "ERROR",
		},
		{
			name:       "unknown error is hidden",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Something went wrong!",
			wantLevel:  "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			h := newTestHandler(&logs)

			req := httptest.NewRequest(http.MethodGet, "/api/data/x", nil)
			req = req.WithContext(infrastructure.WithRequestID(req.Context(), "req-42"))
			rec := httptest.NewRecorder()

			h.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.wantError, body["error"])
			assert.Equal(t, "req-42", body["trace_id"])
			assert.NotContains(t, rec.Body.String(), "disk on fire")

			assert.Contains(t, logs.String(), `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, logs.String(), tt.err.Error())
		})
	}
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	var logs bytes.Buffer
	h := newTestHandler(&logs)
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, logs.String())
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	var logs bytes.Buffer
	h := newTestHandler(&logs)
	rec := httptest.NewRecorder()

	h.HandlePanic(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil), "boom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something went wrong!", decodeBody(t, rec)["error"])
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "boom")
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	var logs bytes.Buffer
	h := newTestHandler(&logs)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rec)["error"])

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPost, "/api/metrics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeBody(t, rec)["code"])
}
