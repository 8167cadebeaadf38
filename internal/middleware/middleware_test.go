package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankmetrics/internal/config"
	apperrors "bankmetrics/internal/errors"
	"bankmetrics/internal/infrastructure"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetReqID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagated from client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "client-id")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "client-id", seen)
		assert.Equal(t, "client-id", rec.Header().Get(RequestIDHeader))
	})
}

func TestStructuredLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"success", http.StatusOK, "INFO"},
		{"client error", http.StatusNotFound, "WARN"},
		{"server error", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			h := RequestID(StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/summary?x=1", nil))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), buf.String())
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, "/api/summary", entry["path"])
			assert.Equal(t, "x=1", entry["query"])
			assert.NotEmpty(t, entry["request_id"])
		})
	}
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := RequestID(Recoverer(apperrors.NewErrorHandler(logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("secret failure detail")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Something went wrong!", body["error"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), body["trace_id"])
	assert.NotContains(t, rec.Body.String(), "secret failure detail")
	assert.Contains(t, buf.String(), "secret failure detail")
	assert.Contains(t, buf.String(), `"msg":"panic recovered"`)
	assert.Contains(t, buf.String(), `"path":"/api/data"`)
}

func TestRecoverer_RepanicsAbortHandler(t *testing.T) {
	h := Recoverer(apperrors.NewErrorHandler(discardLogger()))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, discardLogger())
	h := rl.Handler(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "1", rec.Header().Get("Retry-After"))
			assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestTimeout(t *testing.T) {
	t.Run("deadline reached before write", func(t *testing.T) {
		h := Timeout(10*time.Millisecond, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
		assert.Contains(t, rec.Body.String(), "REQUEST_TIMEOUT")
	})

	t.Run("handler within deadline", func(t *testing.T) {
		var deadline time.Time
		h := Timeout(time.Second, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deadline, _ = r.Context().Deadline()
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, deadline.IsZero())
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		cfg        CORSConfig
		method     string
		origin     string
		preflight  bool
		wantOrigin string
		wantStatus int
	}{
		{
			name:       "wildcard",
			cfg:        CORSConfig{AllowedOrigins: []string{"*"}},
			method:     http.MethodGet,
			origin:     "http://dashboard.example",
			wantOrigin: "*",
			wantStatus: http.StatusOK,
		},
		{
			name:       "listed origin echoed",
			cfg:        CORSConfig{AllowedOrigins: []string{"http://dashboard.example"}},
			method:     http.MethodGet,
			origin:     "http://dashboard.example",
			wantOrigin: "http://dashboard.example",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unlisted origin",
			cfg:        CORSConfig{AllowedOrigins: []string{"http://dashboard.example"}},
			method:     http.MethodGet,
			origin:     "http://evil.example",
			wantOrigin: "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "preflight",
			cfg:        CORSConfig{AllowedOrigins: []string{"*"}, Logger: discardLogger()},
			method:     http.MethodOptions,
			origin:     "http://dashboard.example",
			preflight:  true,
			wantOrigin: "*",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CORS(tt.cfg)(okHandler())
			req := httptest.NewRequest(tt.method, "/api/metrics", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, HEAD, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestGetRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", GetRealIP(req))

	req.Header.Set("X-Real-IP", "192.0.2.7")
	assert.Equal(t, "192.0.2.7", GetRealIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", GetRealIP(req))
}

func TestOTelMiddleware_RecordsRoute(t *testing.T) {
	otelCfg := infrastructure.NewOTelConfig(config.TelemetryConfig{
		ServiceName:    "test",
		TraceExporter:  config.TraceExporterNone,
		MetricExporter: config.MetricExporterPrometheus,
	})
	providers, err := infrastructure.InitializeOTel(otelCfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = providers.Shutdown(context.Background()) })

	otelMW, err := NewOTelMiddleware(providers, nil)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(otelMW.Handler)
	r.Get("/api/trends/{metric}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/trends/revenue", nil))

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `route="/api/trends/{metric}"`)
	assert.Contains(t, rec.Body.String(), "http_request_duration_seconds")
}
