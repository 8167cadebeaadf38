// Package http binds the bank metrics services to chi routes.
//
// Handlers stay thin: they read path and query parameters, call a service
// and render the result with go-chi/render. Service errors go through an
// errors.ErrorHandler configured with ErrorMappings, so sentinel errors such
// as services.ErrMetricNotFound become {"error": "..."} bodies with the
// matching status code.
//
// Routes:
//
//	GET /api/metrics              metric index
//	GET /api/data                 full dataset
//	GET /api/data/{metric}        one metric
//	GET /api/bank/{bankName}      one bank across metrics
//	GET /api/compare/{metric}     metric filtered by ?banks=a,b
//	GET /api/trends/{metric}      growth statistics
//	GET /api/summary              latest-year summary per metric
//	GET /api/export               .xlsx workbook, optionally ?metric=id
//	GET /api/version              build information
//	GET /health, /health/ready, /health/live
package http
