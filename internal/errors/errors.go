package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the JSON error body returned by every endpoint:
//
//	{"error":"Metric not found","code":"METRIC_NOT_FOUND","trace_id":"..."}
type APIError struct {
	Message    string `json:"error"`
	ErrorCode  string `json:"code,omitempty"`
	TraceID    string `json:"trace_id,omitempty"`
	StatusCode int    `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// WithTraceID returns a copy of e carrying traceID. Predefined errors are
// shared, so they are never modified in place.
func (e *APIError) WithTraceID(traceID string) *APIError {
	c := *e
	c.TraceID = traceID
	return &c
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Predefined error types
var (
	// 400 Bad Request
	ErrInvalidParameter = New(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")

	// 404 Not Found
	ErrMetricNotFound = New(http.StatusNotFound, "METRIC_NOT_FOUND", "Metric not found")
	ErrBankNotFound   = New(http.StatusNotFound, "BANK_NOT_FOUND", "Bank not found")
	ErrRouteNotFound  = New(http.StatusNotFound, "ROUTE_NOT_FOUND", "Route not found")

	// 405 Method Not Allowed
	ErrMethodNotAllowed = New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Something went wrong!")

	// 503 Service Unavailable
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")

	// 504 Gateway Timeout
	ErrRequestTimeout = New(http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "Request timed out")
)

// InvalidParameter creates a 400 error naming the offending parameter
func InvalidParameter(name string) *APIError {
	return New(http.StatusBadRequest, "INVALID_PARAMETER", fmt.Sprintf("Invalid %s parameter", name))
}

// WriteError writes an error response without going through chi/render.
// Middleware that runs outside a route uses it.
func WriteError(w http.ResponseWriter, err *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(err)
}
