// Package analytics holds the pure numeric routines behind the trend and
// summary endpoints. Nothing here allocates shared state; every function is
// safe for concurrent use.
package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// PercentChange returns (curr-prev)/prev*100. ok is false when the change is
// undefined: a zero base, or a non-finite operand or result.
func PercentChange(prev, curr float64) (pct float64, ok bool) {
	if prev == 0 || !finite(prev) || !finite(curr) {
		return 0, false
	}
	pct = (curr - prev) / prev * 100
	if !finite(pct) {
		return 0, false
	}
	return pct, true
}

// Round rounds v to the given number of decimal places, half away from zero.
// Rounding works on the exact binary value of v, not its shortest decimal
// form, so 15.45 (stored as 15.4499...) rounds to 15.4.
func Round(v float64, places int32) float64 {
	if !finite(v) {
		return v
	}
	f, _ := fixed(v, places).Float64()
	return f
}

// FormatFixed renders v with exactly the given number of decimal places,
// rounding the same way as Round.
func FormatFixed(v float64, places int32) string {
	if !finite(v) {
		return "NaN"
	}
	return fixed(v, places).StringFixed(places)
}

func fixed(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloatWithExponent(v, -places)
}

// TotalGrowth is the rounded percentage change from the first to the last
// value, or nil when undefined.
func TotalGrowth(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	pct, ok := PercentChange(values[0], values[len(values)-1])
	if !ok {
		return nil
	}
	return ptr(Round(pct, 1))
}

// YoYGrowthRates returns the rounded period-over-period changes, one per
// consecutive pair. Undefined periods are nil.
func YoYGrowthRates(values []float64) []*float64 {
	if len(values) < 2 {
		return []*float64{}
	}
	rates := make([]*float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		pct, ok := PercentChange(values[i-1], values[i])
		if !ok {
			rates = append(rates, nil)
			continue
		}
		rates = append(rates, ptr(Round(pct, 1)))
	}
	return rates
}

// AverageRate averages the defined rates and rounds the mean to one decimal.
// The inputs are expected to be rounded already; summing left to right keeps
// the result identical to averaging the published per-period figures.
func AverageRate(rates []*float64) *float64 {
	sum, n := 0.0, 0
	for _, r := range rates {
		if r == nil {
			continue
		}
		sum += *r
		n++
	}
	if n == 0 {
		return nil
	}
	return ptr(Round(sum/float64(n), 1))
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// MaxIndex returns the index of the largest value. The first occurrence wins
// ties; -1 is returned for no values.
func MaxIndex(values []float64) int {
	idx := -1
	for i, v := range values {
		if idx < 0 || v > values[idx] {
			idx = i
		}
	}
	return idx
}

// Extremes returns the smallest and largest values.
func Extremes(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func ptr(v float64) *float64 {
	return &v
}
