package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name   string
		prev   float64
		curr   float64
		want   float64
		wantOK bool
	}{
		{name: "doubling", prev: 50, curr: 100, want: 100, wantOK: true},
		{name: "halving", prev: 100, curr: 50, want: -50, wantOK: true},
		{name: "flat", prev: 1.9, curr: 1.9, want: 0, wantOK: true},
		{name: "zero base", prev: 0, curr: 10, wantOK: false},
		{name: "zero to zero", prev: 0, curr: 0, wantOK: false},
		{name: "nan operand", prev: math.NaN(), curr: 1, wantOK: false},
		{name: "overflowing result", prev: 1e-320, curr: 1e308, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PercentChange(tt.prev, tt.curr)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestRoundAndFormat(t *testing.T) {
	assert.Equal(t, 108.6, Round(108.62865947611711, 1))
	assert.Equal(t, 129.9, Round(129.8788694481830, 1))
	assert.Equal(t, -3.3, Round(-3.278688524590164, 1))
	assert.Equal(t, 0.0, Round(0.04, 1))

	assert.Equal(t, "0.70", FormatFixed(0.7, 2))
	assert.Equal(t, "4.00", FormatFixed(4, 2))
	assert.Equal(t, "2.46", FormatFixed(12.3/5, 2))
	assert.Equal(t, "787.90", FormatFixed(787.9, 2))
}

func TestRoundAndFormat_BinaryMidpoints(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		places int32
		want   float64
		text   string
	}{
		{"stored below midpoint", 15.45, 1, 15.4, "15.4"},
		{"average of rounded periods", (78.8 + -14.1 + -3.6 + 2.3) / 4, 1, 15.8, "15.8"},
		{"two places below midpoint", 1.005, 2, 1.0, "1.00"},
		{"negative below midpoint", -1.005, 2, -1.0, "-1.00"},
		{"exact midpoint", 0.125, 2, 0.13, "0.13"},
		{"exact negative midpoint", -2.5, 0, -3, "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round(tt.v, tt.places))
			assert.Equal(t, tt.text, FormatFixed(tt.v, tt.places))
		})
	}
}

func TestTotalGrowth(t *testing.T) {
	got := TotalGrowth([]float64{129.8, 127.2, 154.8, 239.4, 270.8})
	require.NotNil(t, got)
	assert.Equal(t, 108.6, *got)

	got = TotalGrowth([]float64{6.1, 7.6, 5.5, 5.1, 5.9})
	require.NotNil(t, got)
	assert.Equal(t, -3.3, *got)

	assert.Nil(t, TotalGrowth([]float64{0, 1, 2}))
	assert.Nil(t, TotalGrowth([]float64{42}))
	assert.Nil(t, TotalGrowth(nil))
}

func TestYoYGrowthRates(t *testing.T) {
	rates := YoYGrowthRates([]float64{129.8, 127.2, 154.8, 239.4, 270.8})
	require.Len(t, rates, 4)
	want := []float64{-2.0, 21.7, 54.7, 13.1}
	for i, w := range want {
		require.NotNil(t, rates[i])
		assert.Equal(t, w, *rates[i], "period %d", i+1)
	}

	rates = YoYGrowthRates([]float64{5, 0, 0})
	require.Len(t, rates, 2)
	require.NotNil(t, rates[0])
	assert.Equal(t, -100.0, *rates[0])
	assert.Nil(t, rates[1])

	assert.Empty(t, YoYGrowthRates([]float64{1}))
}

func TestAverageRate(t *testing.T) {
	ten, minusFifty, hundred := 10.0, -50.0, 100.0

	avg := AverageRate([]*float64{&hundred, &minusFifty})
	require.NotNil(t, avg)
	assert.Equal(t, 25.0, *avg)

	avg = AverageRate([]*float64{nil, &ten})
	require.NotNil(t, avg)
	assert.Equal(t, 10.0, *avg, "undefined periods are skipped")

	avg = AverageRate(YoYGrowthRates([]float64{72.3, 78.5, 83.4, 115.3, 125.4}))
	require.NotNil(t, avg)
	assert.Equal(t, 15.4, *avg)

	assert.Nil(t, AverageRate([]*float64{nil, nil}))
	assert.Nil(t, AverageRate(nil))
}

func TestAggregates(t *testing.T) {
	values := []float64{4.0, 3.3, 1.9, 2.4, 0.7}

	assert.InDelta(t, 2.46, Mean(values), 1e-9)
	assert.Equal(t, 0.0, Mean(nil))

	assert.Equal(t, 0, MaxIndex(values))
	assert.Equal(t, 1, MaxIndex([]float64{1, 5, 5}), "first maximum wins")
	assert.Equal(t, -1, MaxIndex(nil))

	lo, hi := Extremes(values)
	assert.Equal(t, 0.7, lo)
	assert.Equal(t, 4.0, hi)
}
