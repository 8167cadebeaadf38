package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"

	"bankmetrics/internal/infrastructure"
)

// Mapping translates errors matching Target (per errors.Is) into Response
type Mapping struct {
	Target   error
	Response *APIError
}

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger   *slog.Logger
	mappings []Mapping
}

// NewErrorHandler creates a new error handler. Mappings are tried in order.
func NewErrorHandler(logger *slog.Logger, mappings ...Mapping) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger:   logger.With(slog.String("component", "error_handler")),
		mappings: mappings,
	}
}

// HandleError converts any error to an APIError and responds. Client errors
// are logged at warn level, everything else at error level. Causes of 5xx
// responses are logged but never returned to the client.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	ctx := r.Context()
	apiErr := h.ErrorToAPIError(err).WithTraceID(infrastructure.GetTraceID(ctx))

	level := slog.LevelError
	if apiErr.StatusCode < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, "request failed",
		slog.String("error", err.Error()),
		slog.Int("status", apiErr.StatusCode),
		slog.String("request_id", infrastructure.GetRequestID(ctx)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)

	render.Render(w, r, apiErr)
}

// ErrorToAPIError maps err to the response sent to the client
func (h *ErrorHandler) ErrorToAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	for _, m := range h.mappings {
		if errors.Is(err, m.Target) {
			return m.Response
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrRequestTimeout
	}

	return ErrInternalServer
}

// HandlePanic logs a recovered panic and responds with the generic 500 body
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered any) {
	ctx := r.Context()

	h.logger.ErrorContext(ctx, "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", infrastructure.GetRequestID(ctx)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	WriteError(w, ErrInternalServer.WithTraceID(infrastructure.GetTraceID(ctx)))
}

// NotFound responds to unknown routes
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "route not found",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	render.Render(w, r, ErrRouteNotFound.WithTraceID(infrastructure.GetTraceID(r.Context())))
}

// MethodNotAllowed responds to a known route requested with the wrong method
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, ErrMethodNotAllowed.WithTraceID(infrastructure.GetTraceID(r.Context())))
}
