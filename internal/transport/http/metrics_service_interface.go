package http

import (
	"context"

	"bankmetrics/pkg/contracts/domain"
)

// MetricsServiceInterface defines the read operations served over HTTP
type MetricsServiceInterface interface {
	ListMetrics(ctx context.Context) []domain.MetricIndexEntry
	GetAllData(ctx context.Context) *domain.Dataset
	GetMetric(ctx context.Context, metricID string) (domain.Metric, error)
	GetBank(ctx context.Context, bankName string) (domain.BankProfile, error)
	CompareBanks(ctx context.Context, metricID string, terms []string) (domain.Metric, error)
	GetTrends(ctx context.Context, metricID string) (domain.TrendReport, error)
	GetSummary(ctx context.Context) domain.Summary
	ExportWorkbook(ctx context.Context, metricID string) ([]byte, error)
}
