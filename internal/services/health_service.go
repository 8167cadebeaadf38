package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"bankmetrics/pkg/contracts"
)

// TimestampFormat renders health timestamps as ISO-8601 UTC with milliseconds.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Health status values
const (
	StatusOK       = "OK"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusAlive    = "alive"
)

// DatasetProbe reports whether query data is available.
type DatasetProbe interface {
	Ready() bool
	MetricCount() int
}

// HealthService provides health check functionality
type HealthService struct {
	probe     DatasetProbe
	startTime time.Time
	now       func() time.Time
	logger    *slog.Logger
}

// HealthStatus represents the basic health response
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadinessStatus reports whether the service can answer queries
type ReadinessStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Metrics   int    `json:"metrics"`
}

// LivenessStatus reports process level information
type LivenessStatus struct {
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	GoVersion     string  `json:"go_version"`
	Goroutines    int     `json:"goroutines"`
}

// NewHealthService creates a new health service
func NewHealthService(probe DatasetProbe, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", contracts.Version))

	return &HealthService{
		probe:     probe,
		startTime: time.Now(),
		now:       time.Now,
		logger:    logger,
	}
}

func (hs *HealthService) timestamp() string {
	return hs.now().UTC().Format(TimestampFormat)
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusOK,
		Timestamp: hs.timestamp(),
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed",
		slog.String("status", status.Status))

	return status
}

// ReadinessCheck returns readiness status. The service is ready once a
// non-empty dataset is loaded.
func (hs *HealthService) ReadinessCheck(ctx context.Context) ReadinessStatus {
	status := ReadinessStatus{
		Status:    StatusReady,
		Timestamp: hs.timestamp(),
	}
	if hs.probe == nil || !hs.probe.Ready() {
		status.Status = StatusNotReady
		hs.logger.WarnContext(ctx, "ReadinessCheck: no dataset loaded")
		return status
	}
	status.Metrics = hs.probe.MetricCount()
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) LivenessStatus {
	return LivenessStatus{
		Status:        StatusAlive,
		Timestamp:     hs.timestamp(),
		UptimeSeconds: time.Since(hs.startTime).Seconds(),
		GoVersion:     runtime.Version(),
		Goroutines:    runtime.NumGoroutine(),
	}
}

// Version returns version information
func (hs *HealthService) Version() contracts.VersionInfo {
	return contracts.GetVersionInfo()
}
