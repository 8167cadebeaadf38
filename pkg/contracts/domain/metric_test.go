package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []MetricEntry {
	return []MetricEntry{
		{ID: "zeta", Metric: Metric{
			Title: "Zeta",
			Years: []string{"2023", "2024"},
			Banks: []BankSeries{{Name: "Alpha Bank", Values: []float64{1, 2}, Growth: "+100.0%"}},
		}},
		{ID: "alpha", Metric: Metric{
			Title: "Alpha",
			Years: []string{"2023", "2024"},
			Banks: []BankSeries{{Name: "Alpha Bank", Values: []float64{3, 4}, Trend: "Stable"}},
		}},
	}
}

func TestNewDataset(t *testing.T) {
	ds, err := NewDataset(testEntries()...)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"zeta", "alpha"}, ds.IDs())

	m, ok := ds.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, "Alpha", m.Title)

	_, ok = ds.Lookup("beta")
	assert.False(t, ok)

	entries := testEntries()
	_, err = NewDataset(entries[0], entries[0])
	assert.ErrorContains(t, err, `duplicate metric id "zeta"`)
}

func TestDataset_NilSafe(t *testing.T) {
	var ds *Dataset

	assert.Equal(t, 0, ds.Len())
	_, ok := ds.Lookup("zeta")
	assert.False(t, ok)

	data, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDataset_CopiesDoNotAlias(t *testing.T) {
	entries := testEntries()
	ds, err := NewDataset(entries...)
	require.NoError(t, err)

	entries[0].Metric.Banks[0].Values[0] = 99

	m, _ := ds.Lookup("zeta")
	assert.Equal(t, 1.0, m.Banks[0].Values[0])

	m.Banks[0].Values[0] = 42
	m.Years[0] = "1999"
	again, _ := ds.Lookup("zeta")
	assert.Equal(t, 1.0, again.Banks[0].Values[0])
	assert.Equal(t, "2023", again.Years[0])

	clone := ds.Clone()
	assert.Equal(t, ds.Entries(), clone.Entries())
}

func TestDataset_JSONKeepsOrder(t *testing.T) {
	ds, err := NewDataset(testEntries()...)
	require.NoError(t, err)

	data, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.Equal(t,
		`{"zeta":{"title":"Zeta","years":["2023","2024"],"banks":[{"name":"Alpha Bank","values":[1,2],"growth":"+100.0%"}]},`+
			`"alpha":{"title":"Alpha","years":["2023","2024"],"banks":[{"name":"Alpha Bank","values":[3,4],"trend":"Stable"}]}}`,
		string(data))

	var decoded Dataset
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ds.IDs(), decoded.IDs())

	assert.Error(t, json.Unmarshal([]byte(`[]`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"a":{"title":1}}`), &decoded))
}

func TestOrderedMap(t *testing.T) {
	var m OrderedMap[int]
	assert.Equal(t, 0, m.Len())

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	data, err = json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"b":3,"a":2}`, string(data))

	var decoded OrderedMap[int]
	require.NoError(t, json.Unmarshal([]byte(`{"z":1,"y":2}`), &decoded))
	assert.Equal(t, []string{"z", "y"}, decoded.Keys())
}

func TestBankSeries_LastValue(t *testing.T) {
	assert.Equal(t, 0.0, BankSeries{}.LastValue())
	assert.Equal(t, 4.0, BankSeries{Values: []float64{3, 4}}.LastValue())
}
