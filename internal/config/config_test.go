package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3000, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, 1048576, cfg.Server.MaxHeaderBytes)

				assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.EnableCORS)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, 100.0, cfg.Security.RateLimit.RPS)
				assert.Equal(t, 50, cfg.Security.RateLimit.Burst)

				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)

				assert.Empty(t, cfg.Dataset.File)
				assert.Equal(t, TraceExporterNone, cfg.Telemetry.TraceExporter)
				assert.Equal(t, MetricExporterPrometheus, cfg.Telemetry.MetricExporter)
				assert.Equal(t, ":3000", cfg.Addr())
			},
		},
		{
			name: "prefixed env overrides defaults",
			env: map[string]string{
				"BANKMETRICS_SERVER_PORT":              "9090",
				"BANKMETRICS_SERVER_READ_TIMEOUT":      "5s",
				"BANKMETRICS_LOGGING_LEVEL":            "debug",
				"BANKMETRICS_SECURITY_ALLOWED_ORIGINS": "http://a.example,http://b.example",
				"BANKMETRICS_SECURITY_RATE_LIMIT_RPS":  "12.5",
				"BANKMETRICS_DATASET_FILE":             "data/metrics.xlsx",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, 12.5, cfg.Security.RateLimit.RPS)
				assert.Equal(t, "data/metrics.xlsx", cfg.Dataset.File)
			},
		},
		{
			name: "bare PORT is honored",
			env:  map[string]string{"PORT": "8081"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8081, cfg.Server.Port)
			},
		},
		{
			name: "prefixed port wins over bare PORT",
			env:  map[string]string{"PORT": "8081", "BANKMETRICS_SERVER_PORT": "8082"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8082, cfg.Server.Port)
			},
		},
		{
			name: "file values overlay defaults",
			file: `
server:
  port: 4000
  write_timeout: 20s
dataset:
  file: metrics.yaml
telemetry:
  trace_exporter: stdout
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4000, cfg.Server.Port)
				assert.Equal(t, 20*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "metrics.yaml", cfg.Dataset.File)
				assert.Equal(t, TraceExporterStdout, cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "env wins over file",
			file: "server:\n  port: 4000\n",
			env:  map[string]string{"BANKMETRICS_SERVER_PORT": "5000"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5000, cfg.Server.Port)
			},
		},
		{
			name:    "unknown file key",
			file:    "server:\n  prot: 4000\n",
			wantErr: "failed to load config from file",
		},
		{
			name:    "malformed env value",
			env:     map[string]string{"BANKMETRICS_SERVER_PORT": "not-a-number"},
			wantErr: "failed to load config from env",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"BANKMETRICS_SERVER_PORT": "70000"},
			wantErr: "invalid server port",
		},
		{
			name:    "non positive timeout",
			env:     map[string]string{"BANKMETRICS_SERVER_WRITE_TIMEOUT": "0s"},
			wantErr: "write timeout must be positive",
		},
		{
			name:    "unsupported dataset extension",
			env:     map[string]string{"BANKMETRICS_DATASET_FILE": "metrics.csv"},
			wantErr: `unsupported dataset file "metrics.csv": expected one of .yaml, .yml, .xlsx`,
		},
		{
			name:    "unknown trace exporter",
			env:     map[string]string{"BANKMETRICS_TELEMETRY_TRACE_EXPORTER": "jaeger"},
			wantErr: "unknown trace exporter",
		},
		{
			name:    "rate limit without burst",
			env:     map[string]string{"BANKMETRICS_SECURITY_RATE_LIMIT_BURST": "0"},
			wantErr: "rate limit rps and burst must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Keep ambient variables out of the result.
			t.Setenv("PORT", "")
			os.Unsetenv("PORT")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var path string
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 4321\n")
	t.Setenv("BANKMETRICS_CONFIG_FILE", path)
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4321, cfg.Server.Port)
}

func TestValidate_NormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "syslog"
	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)

	cfg = Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""
	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
}

func TestValidate_CORSOrigins(t *testing.T) {
	cfg := Default()
	cfg.Security.AllowedOrigins = nil
	assert.ErrorContains(t, cfg.validate(), "allowed origin")

	cfg.Security.EnableCORS = false
	assert.NoError(t, cfg.validate())
}
