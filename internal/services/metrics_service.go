package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bankmetrics/internal/analytics"
	"bankmetrics/internal/dataset"
	"bankmetrics/pkg/contracts/domain"
)

const tracerName = "bankmetrics/services"

// Query outcomes reported to a QueryRecorder.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// QueryRecorder receives one event per query operation.
type QueryRecorder interface {
	RecordQuery(ctx context.Context, operation, outcome string)
}

// MetricsService answers read-only queries over an immutable dataset.
// It holds no mutable state and is safe for concurrent use.
type MetricsService struct {
	dataset  *domain.Dataset
	logger   *slog.Logger
	recorder QueryRecorder
	tracer   trace.Tracer
}

// MetricsServiceOption configures a MetricsService.
type MetricsServiceOption func(*MetricsService)

// WithQueryRecorder reports every query to r.
func WithQueryRecorder(r QueryRecorder) MetricsServiceOption {
	return func(s *MetricsService) {
		s.recorder = r
	}
}

// NewMetricsService creates a service over ds. The dataset is copied, so later
// changes by the caller are not observed.
func NewMetricsService(ds *domain.Dataset, logger *slog.Logger, opts ...MetricsServiceOption) *MetricsService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &MetricsService{
		dataset: ds.Clone(),
		logger:  logger.With(slog.String("component", "metrics_service")),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("MetricsService initialized",
		slog.Int("metrics", s.dataset.Len()),
		slog.Any("metric_ids", s.dataset.IDs()))
	return s
}

// ListMetrics returns the id, title and bank count of every metric.
func (s *MetricsService) ListMetrics(ctx context.Context) []domain.MetricIndexEntry {
	_, done := s.begin(ctx, "ListMetrics")
	defer done(nil)

	entries := s.dataset.Entries()
	index := make([]domain.MetricIndexEntry, 0, len(entries))
	for _, e := range entries {
		index = append(index, domain.MetricIndexEntry{
			ID:        e.ID,
			Title:     e.Metric.Title,
			BankCount: len(e.Metric.Banks),
		})
	}
	return index
}

// GetAllData returns a copy of the full dataset.
func (s *MetricsService) GetAllData(ctx context.Context) *domain.Dataset {
	_, done := s.begin(ctx, "GetAllData")
	defer done(nil)

	return s.dataset.Clone()
}

// GetMetric returns one metric.
func (s *MetricsService) GetMetric(ctx context.Context, metricID string) (m domain.Metric, err error) {
	_, done := s.begin(ctx, "GetMetric", attribute.String("metric.id", metricID))
	defer func() { done(err) }()

	return s.lookup(metricID)
}

// GetBank returns every metric's series for the named bank. Names match
// exactly, ignoring case.
func (s *MetricsService) GetBank(ctx context.Context, bankName string) (p domain.BankProfile, err error) {
	_, done := s.begin(ctx, "GetBank", attribute.String("bank.name", bankName))
	defer func() { done(err) }()

	profile := domain.BankProfile{BankName: bankName}
	for _, e := range s.dataset.Entries() {
		for _, b := range e.Metric.Banks {
			if strings.EqualFold(b.Name, bankName) {
				profile.Metrics.Set(e.ID, domain.BankMetric{
					Title: e.Metric.Title,
					Years: e.Metric.Years,
					Data:  b,
				})
				break
			}
		}
	}
	if profile.Metrics.Len() == 0 {
		return domain.BankProfile{}, fmt.Errorf("%w: %q", ErrBankNotFound, bankName)
	}
	return profile, nil
}

// CompareBanks returns the metric restricted to banks whose name contains
// any of terms, ignoring case. Dataset order is kept. With no terms the
// metric is returned unchanged.
func (s *MetricsService) CompareBanks(ctx context.Context, metricID string, terms []string) (m domain.Metric, err error) {
	_, done := s.begin(ctx, "CompareBanks",
		attribute.String("metric.id", metricID),
		attribute.StringSlice("filter.terms", terms))
	defer func() { done(err) }()

	metric, err := s.lookup(metricID)
	if err != nil {
		return domain.Metric{}, err
	}
	if len(terms) == 0 {
		return metric, nil
	}

	lowered := make([]string, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(t)
	}

	banks := make([]domain.BankSeries, 0, len(metric.Banks))
	for _, b := range metric.Banks {
		name := strings.ToLower(b.Name)
		for _, t := range lowered {
			if strings.Contains(name, t) {
				banks = append(banks, b)
				break
			}
		}
	}
	metric.Banks = banks
	return metric, nil
}

// GetTrends computes growth statistics for every bank of a metric, highest
// total growth first. Banks with undefined total growth sort last.
func (s *MetricsService) GetTrends(ctx context.Context, metricID string) (r domain.TrendReport, err error) {
	_, done := s.begin(ctx, "GetTrends", attribute.String("metric.id", metricID))
	defer func() { done(err) }()

	metric, err := s.lookup(metricID)
	if err != nil {
		return domain.TrendReport{}, err
	}

	trends := make([]domain.TrendRecord, 0, len(metric.Banks))
	for _, b := range metric.Banks {
		trends = append(trends, trendFor(b))
	}
	sort.SliceStable(trends, func(i, j int) bool {
		a, b := trends[i].TotalGrowth, trends[j].TotalGrowth
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})

	return domain.TrendReport{Metric: metric.Title, Trends: trends}, nil
}

func trendFor(b domain.BankSeries) domain.TrendRecord {
	rates := analytics.YoYGrowthRates(b.Values)
	rec := domain.TrendRecord{
		Name:             b.Name,
		TotalGrowth:      analytics.TotalGrowth(b.Values),
		AverageYoYGrowth: analytics.AverageRate(rates),
		YoYGrowthRates:   rates,
		CurrentValue:     b.LastValue(),
		Trend:            b.Trend,
	}
	if rec.Trend == "" {
		switch {
		case rec.TotalGrowth == nil:
			rec.Trend = domain.TrendIndeterminate
		case *rec.TotalGrowth > 0:
			rec.Trend = domain.TrendGrowing
		default:
			rec.Trend = domain.TrendDeclining
		}
	}
	return rec
}

// GetSummary aggregates the latest year of every metric.
func (s *MetricsService) GetSummary(ctx context.Context) domain.Summary {
	_, done := s.begin(ctx, "GetSummary")
	defer done(nil)

	return summarize(s.dataset)
}

func summarize(ds *domain.Dataset) domain.Summary {
	var summary domain.Summary
	for _, e := range ds.Entries() {
		current := make([]float64, 0, len(e.Metric.Banks))
		for _, b := range e.Metric.Banks {
			current = append(current, b.LastValue())
		}

		var top string
		if i := analytics.MaxIndex(current); i >= 0 {
			top = e.Metric.Banks[i].Name
		}
		lo, hi := analytics.Extremes(current)

		summary.Set(e.ID, domain.MetricSummary{
			Title:               e.Metric.Title,
			TotalBanks:          len(e.Metric.Banks),
			AverageCurrentValue: analytics.FormatFixed(analytics.Mean(current), 2),
			TopPerformer:        top,
			Range: domain.ValueRange{
				Min: analytics.FormatFixed(lo, 2),
				Max: analytics.FormatFixed(hi, 2),
			},
		})
	}
	return summary
}

// ExportWorkbook renders the dataset, or a single metric when metricID is
// set, as an .xlsx workbook with a trailing summary sheet.
func (s *MetricsService) ExportWorkbook(ctx context.Context, metricID string) (data []byte, err error) {
	_, done := s.begin(ctx, "ExportWorkbook", attribute.String("metric.id", metricID))
	defer func() { done(err) }()

	ds := s.dataset
	if metricID != "" {
		metric, err := s.lookup(metricID)
		if err != nil {
			return nil, err
		}
		if ds, err = domain.NewDataset(domain.MetricEntry{ID: metricID, Metric: metric}); err != nil {
			return nil, err
		}
	}

	summary := summarize(ds)
	f, err := dataset.EncodeWorkbook(ds, &summary)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Ready reports whether the service has data to serve.
func (s *MetricsService) Ready() bool {
	return s.dataset.Len() > 0
}

// MetricCount returns the number of metrics served.
func (s *MetricsService) MetricCount() int {
	return s.dataset.Len()
}

// ParseBankFilter splits a comma-separated filter into trimmed, non-empty
// terms. An empty input means no filter and yields nil. Input consisting only
// of separators or blanks is rejected. An empty term would be a substring of
// every name, so dropping it keeps "chase," from selecting all banks.
func ParseBankFilter(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var terms []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: %q contains no bank names", ErrInvalidFilter, raw)
	}
	return terms, nil
}

func (s *MetricsService) lookup(metricID string) (domain.Metric, error) {
	m, ok := s.dataset.Lookup(metricID)
	if !ok {
		return domain.Metric{}, fmt.Errorf("%w: %q", ErrMetricNotFound, metricID)
	}
	return m, nil
}

// begin opens a span for operation and returns a completion func that closes
// it, logs failures and reports the outcome.
func (s *MetricsService) begin(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "metrics."+operation, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		defer span.End()

		outcome := outcomeOf(err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.DebugContext(ctx, "query rejected",
				slog.String("operation", operation),
				slog.String("outcome", outcome),
				slog.String("error", err.Error()))
		}
		if s.recorder != nil {
			s.recorder.RecordQuery(ctx, operation, outcome)
		}
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case IsNotFound(err):
		return OutcomeNotFound
	case IsInvalid(err):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
