package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BankSeries is one bank's observations for a single metric, positionally
// aligned with the owning Metric's Years. At most one of Growth and Trend is
// set: Growth carries a precomputed percentage string ("+108.6%"), Trend a
// qualitative label ("Stable").
type BankSeries struct {
	Name   string    `json:"name" yaml:"name" validate:"required"`
	Values []float64 `json:"values" yaml:"values" validate:"required,min=1"`
	Growth string    `json:"growth,omitempty" yaml:"growth,omitempty" validate:"excluded_with=Trend"`
	Trend  string    `json:"trend,omitempty" yaml:"trend,omitempty"`
}

// Metric is one category of financial data tracked across years and banks.
type Metric struct {
	Title string       `json:"title" yaml:"title" validate:"required"`
	Years []string     `json:"years" yaml:"years" validate:"required,min=1,dive,required"`
	Banks []BankSeries `json:"banks" yaml:"banks" validate:"required,min=1,dive"`
}

// Clone returns a deep copy of the metric.
func (m Metric) Clone() Metric {
	out := Metric{
		Title: m.Title,
		Years: append([]string(nil), m.Years...),
		Banks: make([]BankSeries, len(m.Banks)),
	}
	for i, b := range m.Banks {
		out.Banks[i] = b.Clone()
	}
	return out
}

// Clone returns a deep copy of the series.
func (b BankSeries) Clone() BankSeries {
	b.Values = append([]float64(nil), b.Values...)
	return b
}

// LastValue returns the most recent observation, or 0 for an empty series.
func (b BankSeries) LastValue() float64 {
	if len(b.Values) == 0 {
		return 0
	}
	return b.Values[len(b.Values)-1]
}

// MetricEntry pairs a metric with its stable identifier.
type MetricEntry struct {
	ID     string `json:"id" yaml:"id" validate:"required"`
	Metric Metric `json:"metric" yaml:",inline"`
}

// Dataset is the ordered, immutable set of metrics served by the API.
// Accessors return copies, so a Dataset can be shared between goroutines
// without synchronization.
type Dataset struct {
	entries []MetricEntry
	index   map[string]int
}

// NewDataset builds a dataset from entries in the given order. Identifiers
// must be unique.
func NewDataset(entries ...MetricEntry) (*Dataset, error) {
	ds := &Dataset{
		entries: make([]MetricEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := ds.index[e.ID]; dup {
			return nil, fmt.Errorf("duplicate metric id %q", e.ID)
		}
		ds.index[e.ID] = len(ds.entries)
		ds.entries = append(ds.entries, MetricEntry{ID: e.ID, Metric: e.Metric.Clone()})
	}
	return ds, nil
}

// Len returns the number of metrics.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// IDs returns metric identifiers in dataset order.
func (d *Dataset) IDs() []string {
	ids := make([]string, 0, d.Len())
	for _, e := range d.entries {
		ids = append(ids, e.ID)
	}
	return ids
}

// Lookup returns a copy of the metric with the given id.
func (d *Dataset) Lookup(id string) (Metric, bool) {
	if d == nil {
		return Metric{}, false
	}
	i, ok := d.index[id]
	if !ok {
		return Metric{}, false
	}
	return d.entries[i].Metric.Clone(), true
}

// Entries returns copies of all entries in dataset order.
func (d *Dataset) Entries() []MetricEntry {
	out := make([]MetricEntry, 0, d.Len())
	for _, e := range d.entries {
		out = append(out, MetricEntry{ID: e.ID, Metric: e.Metric.Clone()})
	}
	return out
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	ds, _ := NewDataset(d.Entries()...)
	return ds
}

// MarshalJSON encodes the dataset as a JSON object keyed by metric id,
// preserving dataset order.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return marshalOrdered(len(d.entries), func(i int) (string, any) {
		return d.entries[i].ID, d.entries[i].Metric
	})
}

// UnmarshalJSON decodes an object keyed by metric id, keeping key order.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var entries []MetricEntry
	err := unmarshalOrdered(data, func(key string, raw json.RawMessage) error {
		var m Metric
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("metric %q: %w", key, err)
		}
		entries = append(entries, MetricEntry{ID: key, Metric: m})
		return nil
	})
	if err != nil {
		return err
	}
	ds, err := NewDataset(entries...)
	if err != nil {
		return err
	}
	*d = *ds
	return nil
}

func marshalOrdered(n int, at func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		key, value := at(i)
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalOrdered(data []byte, visit func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := visit(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
