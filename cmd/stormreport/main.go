// Command stormreport runs the storm impact analysis over a NOAA storm
// events CSV (optionally .gz or .bz2 compressed) and writes the chart report
// plus an audit metrics snapshot to the output directory.
//
// Usage:
//
//	stormreport <dataset.csv[.gz|.bz2]>
//
// All tuning happens through environment variables; see internal/config.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/storm-impact-report/internal/config"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/pipeline"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: stormreport <dataset.csv[.gz|.bz2]>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if err := run(os.Args[1], cfg, logger); err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, cfg *config.Config, logger *slog.Logger) error {
	metrics := observability.NewMetrics()
	p := pipeline.New(logger, metrics, cfg.AllowedExponents, cfg.WindowStart)

	result, err := p.Run(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	reportPath := filepath.Join(cfg.OutputDir, "storm_impact_report.html")
	if err := writeReport(reportPath, cfg, result); err != nil {
		return err
	}
	logger.Info("report written", "path", reportPath)

	metricsPath := filepath.Join(cfg.OutputDir, "storm_impact_report.prom")
	if err := writeMetrics(metricsPath, metrics); err != nil {
		return err
	}
	logger.Info("audit metrics written", "path", metricsPath,
		"rows_loaded", result.RowsLoaded,
		"rows_dropped", result.RowsDropped,
		"dates_unparsed", result.DatesUnparsed,
		"rows_in_window", result.RowsInWindow,
	)

	return nil
}

func writeReport(path string, cfg *config.Config, result *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	renderer := report.New(cfg.OutlierFatalities, cfg.OutlierInjuries)
	if err := renderer.Render(f, result); err != nil {
		return err
	}
	return f.Close()
}

func writeMetrics(path string, metrics *observability.Metrics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer f.Close()

	if err := metrics.WriteSnapshot(f); err != nil {
		return err
	}
	return f.Close()
}
