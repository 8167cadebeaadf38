package config

import "time"

// Application constants
const (
	// AppName identifies the service in logs and telemetry
	AppName = "bankmetrics"

	// EnvPrefix namespaces every environment variable
	EnvPrefix = "BANKMETRICS"

	// DefaultPort matches the historical PORT fallback
	DefaultPort = 3000

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	DefaultRequestTimeout = 30 * time.Second

	DefaultLogFile = "logs/bankmetrics.log"
)

// Telemetry exporters
const (
	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"

	MetricExporterNone       = "none"
	MetricExporterPrometheus = "prometheus"
)
