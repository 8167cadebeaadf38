// Package shared holds helpers used across packages.
//
// testutil captures slog output so tests can assert on log records:
//
//	logger, logs := testutil.NewTestLogger(t)
//	svc := services.NewMetricsService(ds, logger)
//	...
//	testutil.AssertLogged(t, logs, slog.LevelWarn, "request failed", nil)
package shared
