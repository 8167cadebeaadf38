package services

import "errors"

// Metrics service errors
var (
	// ErrMetricNotFound is returned for an unknown metric identifier.
	ErrMetricNotFound = errors.New("metric not found")

	// ErrBankNotFound is returned when a bank name matches no metric.
	ErrBankNotFound = errors.New("bank not found")

	// ErrInvalidFilter is returned for a bank filter with no usable terms.
	ErrInvalidFilter = errors.New("invalid bank filter")
)

// IsNotFound reports whether err means the requested metric or bank does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMetricNotFound) || errors.Is(err, ErrBankNotFound)
}

// IsInvalid reports whether err was caused by malformed query input.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidFilter)
}
