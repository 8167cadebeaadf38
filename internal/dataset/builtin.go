package dataset

import "bankmetrics/pkg/contracts/domain"

// Metric identifiers of the built-in dataset, in publication order.
const (
	MetricRevenue     = "revenue"
	MetricNetIncome   = "netIncome"
	MetricTotalAssets = "totalAssets"
	MetricROE         = "roe"
	MetricMarketCap   = "marketCap"
)

var reportingYears = []string{"2020", "2021", "2022", "2023", "2024"}

// Builtin returns a fresh copy of the hand-authored dataset covering five
// US banks over fiscal years 2020 to 2024.
func Builtin() *domain.Dataset {
	ds, err := domain.NewDataset(
		domain.MetricEntry{ID: MetricRevenue, Metric: domain.Metric{
			Title: "Revenue Trends (in Billions USD)",
			Years: reportingYears,
			Banks: []domain.BankSeries{
				{Name: "JPMorgan Chase", Values: []float64{129.8, 127.2, 154.8, 239.4, 270.8}, Growth: "+108.6%"},
				{Name: "Bank of America", Values: []float64{85.5, 89.1, 89.1, 93.5, 94.2}, Growth: "+10.2%"},
				{Name: "Wells Fargo", Values: []float64{72.3, 78.5, 83.4, 115.3, 125.4}, Growth: "+73.4%"},
				{Name: "Citigroup", Values: []float64{74.3, 79.9, 101.1, 156.8, 170.8}, Growth: "+129.8%"},
				{Name: "U.S. Bank", Values: []float64{23.0, 23.7, 27.4, 40.6, 42.7}, Growth: "+85.7%"},
			},
		}},
		domain.MetricEntry{ID: MetricNetIncome, Metric: domain.Metric{
			Title: "Net Income Trends (in Billions USD)",
			Years: reportingYears,
			Banks: []domain.BankSeries{
				{Name: "JPMorgan Chase", Values: []float64{29.1, 48.3, 35.9, 47.8, 58.5}, Growth: "+101.0%"},
				{Name: "Bank of America", Values: []float64{17.9, 32.0, 27.5, 26.5, 27.1}, Growth: "+51.4%"},
				{Name: "Wells Fargo", Values: []float64{3.0, 21.5, 13.2, 15.9, 19.7}, Growth: "+556.7%"},
				{Name: "Citigroup", Values: []float64{11.1, 20.8, 13.7, 7.9, 11.5}, Growth: "+3.6%"},
				{Name: "U.S. Bank", Values: []float64{6.1, 7.6, 5.5, 5.1, 5.9}, Growth: "-3.3%"},
			},
		}},
		domain.MetricEntry{ID: MetricTotalAssets, Metric: domain.Metric{
			Title: "Total Assets Trends (in Trillions USD)",
			Years: reportingYears,
			Banks: []domain.BankSeries{
				{Name: "JPMorgan Chase", Values: []float64{3.2, 3.7, 3.7, 3.9, 4.0}, Growth: "+25.0%"},
				{Name: "Bank of America", Values: []float64{2.8, 3.2, 3.1, 3.2, 3.3}, Growth: "+17.9%"},
				{Name: "Wells Fargo", Values: []float64{1.9, 1.9, 1.9, 1.9, 1.9}, Growth: "0.0%"},
				{Name: "Citigroup", Values: []float64{2.3, 2.3, 2.4, 2.4, 2.4}, Growth: "+4.3%"},
				{Name: "U.S. Bank", Values: []float64{0.6, 0.7, 0.7, 0.7, 0.7}, Growth: "+16.7%"},
			},
		}},
		domain.MetricEntry{ID: MetricROE, Metric: domain.Metric{
			Title: "Return on Equity (ROE) Trends (%)",
			Years: reportingYears,
			Banks: []domain.BankSeries{
				{Name: "JPMorgan Chase", Values: []float64{9.7, 18.3, 13.2, 17.8, 22.0}, Trend: "Strengthening"},
				{Name: "Bank of America", Values: []float64{6.6, 12.4, 10.8, 10.2, 10.8}, Trend: "Stable"},
				{Name: "Wells Fargo", Values: []float64{1.4, 10.8, 6.8, 8.3, 10.3}, Trend: "Recovering"},
				{Name: "Citigroup", Values: []float64{5.1, 9.8, 6.4, 3.7, 5.4}, Trend: "Volatile"},
				{Name: "U.S. Bank", Values: []float64{11.8, 14.2, 10.2, 9.4, 10.8}, Trend: "Stable"},
			},
		}},
		domain.MetricEntry{ID: MetricMarketCap, Metric: domain.Metric{
			Title: "Market Capitalization Trends (in Billions USD)",
			Years: reportingYears,
			Banks: []domain.BankSeries{
				{Name: "JPMorgan Chase", Values: []float64{381.5, 507.8, 420.7, 491.8, 787.9}, Growth: "+106.5%"},
				{Name: "Bank of America", Values: []float64{267.4, 375.8, 315.2, 298.5, 356.7}, Growth: "+33.4%"},
				{Name: "Wells Fargo", Values: []float64{120.3, 195.4, 156.8, 161.2, 209.8}, Growth: "+74.4%"},
				{Name: "Citigroup", Values: []float64{125.8, 148.9, 95.7, 93.2, 123.4}, Growth: "-1.9%"},
				{Name: "U.S. Bank", Values: []float64{66.2, 75.3, 58.9, 58.1, 72.8}, Growth: "+10.0%"},
			},
		}},
	)
	if err != nil {
		// The literal above has unique ids.
		panic(err)
	}
	return ds
}
