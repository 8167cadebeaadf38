// Package services implements the query layer of the bank metrics API.
// It keeps HTTP handlers free of business rules: handlers decode requests,
// services answer them.
//
// # Architecture
//
// Services follow these principles:
//
//  1. Interface-driven design for testability
//  2. Context propagation for cancellation and tracing
//  3. Dependency injection: the dataset and logger are passed in, never global
//
// # Available Services
//
//   - MetricsService: metric and bank lookups, comparisons, trends, summary and workbook export
//   - HealthService: liveness, readiness and version information
//
// # Error Handling
//
// Services return sentinel errors wrapped with context:
//
//   - ErrMetricNotFound for an unknown metric id
//   - ErrBankNotFound when no metric contains the bank
//   - ErrInvalidFilter for a bank filter without usable names
//
// Callers match them with errors.Is, or with IsNotFound and IsInvalid.
//
// # Concurrency
//
// MetricsService holds an immutable copy of its dataset and hands out deep
// copies, so a single instance is shared by all request goroutines without
// locking.
package services
