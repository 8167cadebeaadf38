package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "bankmetrics/internal/errors"
	"bankmetrics/internal/infrastructure"
	"bankmetrics/internal/services"
)

// XLSXContentType is the media type of exported workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrorMappings translates service errors into API responses
func ErrorMappings() []apierrors.Mapping {
	return []apierrors.Mapping{
		{Target: services.ErrMetricNotFound, Response: apierrors.ErrMetricNotFound},
		{Target: services.ErrBankNotFound, Response: apierrors.ErrBankNotFound},
		{Target: services.ErrInvalidFilter, Response: apierrors.InvalidParameter("banks")},
	}
}

// MetricsHandler serves the bank metrics query API
type MetricsHandler struct {
	service      MetricsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(service MetricsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *MetricsHandler {
	return &MetricsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "metrics_handler")),
		errorHandler: errorHandler,
	}
}

// RegisterRoutes registers the /api routes on r
func (h *MetricsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/metrics", h.ListMetrics)
		r.Get("/data", h.GetAllData)
		r.Get("/data/{metric}", h.GetMetric)
		r.Get("/bank/{bankName}", h.GetBank)
		r.Get("/compare/{metric}", h.CompareBanks)
		r.Get("/trends/{metric}", h.GetTrends)
		r.Get("/summary", h.GetSummary)
		r.Get("/export", h.Export)
	})
}

// ListMetrics handles GET /api/metrics
func (h *MetricsHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.ListMetrics(r.Context()))
}

// GetAllData handles GET /api/data
func (h *MetricsHandler) GetAllData(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.GetAllData(r.Context()))
}

// GetMetric handles GET /api/data/{metric}
func (h *MetricsHandler) GetMetric(w http.ResponseWriter, r *http.Request) {
	metric, err := h.service.GetMetric(r.Context(), chi.URLParam(r, "metric"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, metric)
}

// GetBank handles GET /api/bank/{bankName}
func (h *MetricsHandler) GetBank(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "bankName")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	profile, err := h.service.GetBank(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, profile)
}

// CompareBanks handles GET /api/compare/{metric}?banks=a,b
// Empty terms are dropped, so banks=chase, filters on "chase" alone rather
// than matching every bank; a value with no terms at all is a 400.
func (h *MetricsHandler) CompareBanks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	terms, err := services.ParseBankFilter(r.URL.Query().Get("banks"))
	if err != nil {
		h.logger.DebugContext(ctx, "rejected bank filter",
			slog.String("banks", r.URL.Query().Get("banks")),
			slog.String("request_id", infrastructure.GetRequestID(ctx)))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	metric, err := h.service.CompareBanks(ctx, chi.URLParam(r, "metric"), terms)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, metric)
}

// GetTrends handles GET /api/trends/{metric}
func (h *MetricsHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetTrends(r.Context(), chi.URLParam(r, "metric"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// GetSummary handles GET /api/summary
func (h *MetricsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.GetSummary(r.Context()))
}

// Export handles GET /api/export, streaming an .xlsx workbook
func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	metricID := r.URL.Query().Get("metric")

	data, err := h.service.ExportWorkbook(ctx, metricID)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := "bank-metrics.xlsx"
	if metricID != "" {
		filename = fmt.Sprintf("bank-metrics-%s.xlsx", metricID)
	}

	h.logger.InfoContext(ctx, "workbook exported",
		slog.String("metric", metricID),
		slog.Int("bytes", len(data)),
		slog.String("request_id", infrastructure.GetRequestID(ctx)))

	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
