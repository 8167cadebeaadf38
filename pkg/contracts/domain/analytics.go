package domain

import "encoding/json"

// Trend labels derived when a series carries no annotation of its own.
const (
	TrendGrowing       = "Growing"
	TrendDeclining     = "Declining"
	TrendIndeterminate = "Indeterminate"
)

// MetricIndexEntry is the lightweight listing of one metric.
type MetricIndexEntry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	BankCount int    `json:"bankCount"`
}

// BankMetric is one metric's view of a single bank.
type BankMetric struct {
	Title string     `json:"title"`
	Years []string   `json:"years"`
	Data  BankSeries `json:"data"`
}

// BankProfile collects a bank's series across every metric it appears in.
type BankProfile struct {
	BankName string                 `json:"bankName"`
	Metrics  OrderedMap[BankMetric] `json:"metrics"`
}

// TrendRecord holds the derived growth statistics of one bank series.
// Growth values are percentages rounded to one decimal place; nil means the
// growth is undefined because its base value is zero.
type TrendRecord struct {
	Name             string     `json:"name"`
	TotalGrowth      *float64   `json:"totalGrowth"`
	AverageYoYGrowth *float64   `json:"averageYoYGrowth"`
	YoYGrowthRates   []*float64 `json:"yoyGrowthRates"`
	CurrentValue     float64    `json:"currentValue"`
	Trend            string     `json:"trend"`
}

// TrendReport lists trend records for one metric, highest total growth first.
type TrendReport struct {
	Metric string        `json:"metric"`
	Trends []TrendRecord `json:"trends"`
}

// ValueRange is the spread of current values, formatted to two decimals.
type ValueRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// MetricSummary aggregates the most recent year of one metric.
type MetricSummary struct {
	Title               string     `json:"title"`
	TotalBanks          int        `json:"totalBanks"`
	AverageCurrentValue string     `json:"averageCurrentValue"`
	TopPerformer        string     `json:"topPerformer"`
	Range               ValueRange `json:"range"`
}

// Summary maps metric ids to their summaries in dataset order.
type Summary = OrderedMap[MetricSummary]

// OrderedMap is a string-keyed map that remembers insertion order and
// encodes to a JSON object in that order.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Set inserts or replaces key. Replacing keeps the original position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (m OrderedMap[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m OrderedMap[V]) Len() int {
	return len(m.keys)
}

// MarshalJSON implements json.Marshaler.
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(m.keys), func(i int) (string, any) {
		return m.keys[i], m.values[m.keys[i]]
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	*m = OrderedMap[V]{}
	return unmarshalOrdered(data, func(key string, raw json.RawMessage) error {
		var v V
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		m.Set(key, v)
		return nil
	})
}
