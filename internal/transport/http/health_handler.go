package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "bankmetrics/internal/errors"
	"bankmetrics/internal/infrastructure"
	"bankmetrics/internal/services"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	service *services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.HealthService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// RegisterRoutes registers the health probes and /api/version on r. It must
// run before the /api subrouter is mounted.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/ready", h.ReadinessCheck)
		r.Get("/live", h.LivenessCheck)
	})
	r.Get("/api/version", h.Version)
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.HealthCheck(r.Context()))
}

// ReadinessCheck handles GET /health/ready
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := h.service.ReadinessCheck(ctx)
	if status.Status != services.StatusReady {
		h.logger.WarnContext(ctx, "readiness probe failed", slog.Int("metrics", status.Metrics))
		render.Render(w, r, apierrors.ErrServiceUnavailable.WithTraceID(infrastructure.GetTraceID(ctx)))
		return
	}
	render.JSON(w, r, status)
}

// LivenessCheck handles GET /health/live
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.LivenessCheck(r.Context()))
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Version())
}
