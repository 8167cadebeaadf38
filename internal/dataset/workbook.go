package dataset

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"bankmetrics/pkg/contracts/domain"
)

// Workbook layout, one sheet per metric named after its id:
//
//	row 1: "Title" | <title>
//	row 2: "Bank"  | <year> ... | "Growth" | "Trend"
//	row 3+: <bank> | <value> ... | <growth> | <trend>
//
// A sheet named SummarySheet is ignored on read.
const (
	SummarySheet = "Summary"

	titleLabel  = "Title"
	bankLabel   = "Bank"
	growthLabel = "Growth"
	trendLabel  = "Trend"
)

// DecodeWorkbook reads a dataset from an .xlsx stream.
func DecodeWorkbook(r io.Reader) (*domain.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var entries []domain.MetricEntry
	for _, sheet := range f.GetSheetList() {
		if sheet == SummarySheet {
			continue
		}
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		metric, err := parseMetricSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		entries = append(entries, domain.MetricEntry{ID: sheet, Metric: metric})
	}
	return domain.NewDataset(entries...)
}

func parseMetricSheet(rows [][]string) (domain.Metric, error) {
	var m domain.Metric
	if len(rows) < 2 {
		return m, fmt.Errorf("expected title and header rows, got %d rows", len(rows))
	}
	if len(rows[0]) < 2 || rows[0][0] != titleLabel {
		return m, fmt.Errorf("row 1: expected %q label followed by the title", titleLabel)
	}
	m.Title = strings.TrimSpace(rows[0][1])

	header := rows[1]
	if len(header) < 2 || header[0] != bankLabel {
		return m, fmt.Errorf("row 2: expected %q header", bankLabel)
	}
	growthCol, trendCol := -1, -1
	for col := 1; col < len(header); col++ {
		switch header[col] {
		case growthLabel:
			growthCol = col
		case trendLabel:
			trendCol = col
		default:
			if growthCol >= 0 || trendCol >= 0 {
				return m, fmt.Errorf("row 2: year column %q after annotation columns", header[col])
			}
			m.Years = append(m.Years, strings.TrimSpace(header[col]))
		}
	}

	m.Banks = make([]domain.BankSeries, 0, len(rows)-2)
	for i, row := range rows[2:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		bank := domain.BankSeries{Name: strings.TrimSpace(row[0])}
		for col := 1; col <= len(m.Years); col++ {
			if col >= len(row) || row[col] == "" {
				return m, fmt.Errorf("row %d: missing value for %s", i+3, m.Years[col-1])
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				return m, fmt.Errorf("row %d: %w", i+3, err)
			}
			bank.Values = append(bank.Values, v)
		}
		bank.Growth = cellAt(row, growthCol)
		bank.Trend = cellAt(row, trendCol)
		m.Banks = append(m.Banks, bank)
	}
	return m, nil
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// EncodeWorkbook renders ds in the layout DecodeWorkbook reads. When summary
// is non-nil a SummarySheet is appended after the metric sheets. The caller
// closes the returned file; on error it is already closed.
func EncodeWorkbook(ds *domain.Dataset, summary *domain.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fillWorkbook(f, ds, summary); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fillWorkbook(f *excelize.File, ds *domain.Dataset, summary *domain.Summary) error {
	defaultSheet := f.GetSheetName(0)

	for i, entry := range ds.Entries() {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, entry.ID); err != nil {
				return fmt.Errorf("sheet %q: %w", entry.ID, err)
			}
		} else if _, err := f.NewSheet(entry.ID); err != nil {
			return fmt.Errorf("sheet %q: %w", entry.ID, err)
		}
		if err := writeMetricSheet(f, entry.ID, entry.Metric); err != nil {
			return fmt.Errorf("sheet %q: %w", entry.ID, err)
		}
	}

	if summary != nil {
		if _, err := f.NewSheet(SummarySheet); err != nil {
			return err
		}
		if err := writeSummarySheet(f, *summary); err != nil {
			return fmt.Errorf("sheet %q: %w", SummarySheet, err)
		}
	}

	f.SetActiveSheet(0)
	return nil
}

func writeMetricSheet(f *excelize.File, sheet string, m domain.Metric) error {
	header := []any{bankLabel}
	for _, y := range m.Years {
		header = append(header, y)
	}
	header = append(header, growthLabel, trendLabel)

	rows := [][]any{{titleLabel, m.Title}, header}
	for _, b := range m.Banks {
		row := []any{b.Name}
		for _, v := range b.Values {
			row = append(row, v)
		}
		row = append(row, b.Growth, b.Trend)
		rows = append(rows, row)
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 20)
}

func writeSummarySheet(f *excelize.File, summary domain.Summary) error {
	rows := [][]any{{"Metric", "Title", "Banks", "Average Current Value", "Top Performer", "Min", "Max"}}
	for _, id := range summary.Keys() {
		s, _ := summary.Get(id)
		rows = append(rows, []any{id, s.Title, s.TotalBanks, s.AverageCurrentValue, s.TopPerformer, s.Range.Min, s.Range.Max})
	}
	if err := writeRows(f, SummarySheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "B", "B", 45)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
