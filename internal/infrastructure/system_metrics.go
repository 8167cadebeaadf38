package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"bankmetrics/pkg/contracts"
)

// DatasetGauge reports how many metrics are being served
type DatasetGauge interface {
	MetricCount() int
}

// SystemMetrics exposes process level gauges observed on every collection
type SystemMetrics struct {
	registration metric.Registration
}

// NewSystemMetrics registers app_info, app_uptime_seconds and
// dataset_metrics_loaded. dataset may be nil.
func NewSystemMetrics(meter metric.Meter, startTime time.Time, dataset DatasetGauge) (*SystemMetrics, error) {
	appInfo, err := meter.Int64ObservableGauge(
		"app_info",
		metric.WithDescription("Build information, always 1"),
	)
	if err != nil {
		return nil, err
	}

	uptime, err := meter.Float64ObservableGauge(
		"app_uptime_seconds",
		metric.WithDescription("Process uptime in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	loaded, err := meter.Int64ObservableGauge(
		"dataset_metrics_loaded",
		metric.WithDescription("Number of metrics in the served dataset"),
	)
	if err != nil {
		return nil, err
	}

	info := metric.WithAttributes(
		attribute.String("version", contracts.Version),
		attribute.String("api_version", contracts.APIVersion),
	)

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(appInfo, 1, info)
		o.ObserveFloat64(uptime, time.Since(startTime).Seconds())
		if dataset != nil {
			o.ObserveInt64(loaded, int64(dataset.MetricCount()))
		}
		return nil
	}, appInfo, uptime, loaded)
	if err != nil {
		return nil, err
	}

	return &SystemMetrics{registration: reg}, nil
}

// Close stops observing
func (sm *SystemMetrics) Close() error {
	if sm == nil || sm.registration == nil {
		return nil
	}
	return sm.registration.Unregister()
}
