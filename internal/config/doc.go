// Package config provides configuration management for the bank metrics API.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// Variables follow the pattern BANKMETRICS_<SECTION>_<FIELD>:
//
//	BANKMETRICS_SERVER_PORT=3000
//	BANKMETRICS_LOGGING_LEVEL=debug
//	BANKMETRICS_DATASET_FILE=data/metrics.xlsx
//	BANKMETRICS_SECURITY_RATE_LIMIT_RPS=50
//	BANKMETRICS_TELEMETRY_TRACE_EXPORTER=stdout
//
// The bare PORT variable is honored when BANKMETRICS_SERVER_PORT is unset.
//
// # Configuration File
//
// The file named by BANKMETRICS_CONFIG_FILE is read when set; otherwise
// config.yaml and configs/config.yaml are tried. Unknown keys are rejected.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
