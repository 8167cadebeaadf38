// Command metrics-report prints growth trends and the latest-year summary of
// a bank metrics dataset, or exports it as an .xlsx workbook.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"bankmetrics/internal/dataset"
	"bankmetrics/internal/infrastructure"
	"bankmetrics/internal/services"
	"bankmetrics/pkg/contracts"
	"bankmetrics/pkg/contracts/domain"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "metrics-report:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("metrics-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	datasetFile := fs.String("dataset", "", "dataset file (.yaml, .yml or .xlsx); built-in data when empty")
	metricID := fs.String("metric", dataset.MetricRevenue, "metric id to report on; empty exports every metric")
	exportFile := fs.String("export", "", "write an .xlsx workbook to this path instead of printing")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	logger := infrastructure.NewLogger(*logLevel, stderr)
	ctx := context.Background()

	ds, err := dataset.Load(*datasetFile)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	svc := services.NewMetricsService(ds, logger)

	if *exportFile != "" {
		data, err := svc.ExportWorkbook(ctx, *metricID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*exportFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", *exportFile, len(data))
		return nil
	}

	if *metricID == "" {
		return errors.New("-metric is required unless -export is set")
	}

	report, err := svc.GetTrends(ctx, *metricID)
	if err != nil {
		return err
	}
	summary, _ := svc.GetSummary(ctx).Get(*metricID)

	return printReport(stdout, report, summary)
}

func printReport(w io.Writer, report domain.TrendReport, summary domain.MetricSummary) error {
	fmt.Fprintln(w, report.Metric)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "BANK\tCURRENT\tTOTAL GROWTH\tAVG YOY\tTREND\t")
	for _, t := range report.Trends {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\t%s\t\n",
			t.Name, t.CurrentValue, percent(t.TotalGrowth), percent(t.AverageYoYGrowth), t.Trend)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Banks: %d  Average: %s  Range: %s to %s  Top performer: %s\n",
		summary.TotalBanks, summary.AverageCurrentValue, summary.Range.Min, summary.Range.Max, summary.TopPerformer)
	return nil
}

func percent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", *v)
}
