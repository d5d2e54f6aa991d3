package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"darkpoolcli/internal/config"
	"darkpoolcli/internal/exporter"
	"darkpoolcli/internal/infrastructure"
	"darkpoolcli/internal/scan"
	"darkpoolcli/pkg/contracts/domain"
)

func main() {
	fileD1 := flag.String("d1", "", "path to the Day 1 snapshot CSV (requires -d2)")
	fileD2 := flag.String("d2", "", "path to the Day 2 snapshot CSV (requires -d1)")
	dir := flag.String("dir", "", "directory of dated snapshots (YYYY-MM-DD.csv), scanned as consecutive pairs")
	out := flag.String("out", "", "optional output CSV path for the activity report")
	workers := flag.Int("workers", 0, "concurrent pairs in directory mode (0 = use config)")
	flag.Parse()

	if err := run(*fileD1, *fileD2, *dir, *out, *workers); err != nil {
		slog.Error("Scan failed", "error", err)
		os.Exit(1)
	}
}

func run(fileD1, fileD2, dir, out string, workers int) error {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	if workers <= 0 {
		workers = cfg.Scan.Workers
	}

	mode, err := invocationMode(fileD1, fileD2, dir)
	if err != nil {
		flag.Usage()
		return err
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())
	scanner := scan.New(logger, workers)

	logger.Info("Starting dark pool scan",
		slog.String("mode", mode),
		slog.String("trace_id", infrastructure.GetTraceID(ctx)))

	var reports []*domain.PairReport
	switch mode {
	case "pair":
		report, err := scanner.Pair(ctx, fileD1, fileD2)
		if err != nil {
			return err
		}
		reports = []*domain.PairReport{report}
	case "dir":
		reports, err = scanner.Directory(ctx, dir)
		if err != nil {
			return err
		}
	}

	flagged := 0
	for _, report := range reports {
		flagged += len(report.Results)
	}

	if out != "" {
		if err := exporter.WriteActivityReport(out, reports); err != nil {
			return err
		}
		logger.Info("Activity report written",
			slog.String("path", out),
			slog.Int("flagged_contracts", flagged))
	} else {
		printReports(reports)
	}

	fmt.Printf("Scan complete: %d pair(s), %d flagged contract(s)\n", len(reports), flagged)
	return nil
}

// invocationMode validates the flag combination: either an explicit
// file pair or a directory, never both.
func invocationMode(fileD1, fileD2, dir string) (string, error) {
	switch {
	case dir != "" && (fileD1 != "" || fileD2 != ""):
		return "", fmt.Errorf("-dir cannot be combined with -d1/-d2")
	case dir != "":
		return "dir", nil
	case fileD1 != "" && fileD2 != "":
		return "pair", nil
	case fileD1 != "" || fileD2 != "":
		return "", fmt.Errorf("-d1 and -d2 must be given together")
	default:
		return "", fmt.Errorf("either -dir or -d1/-d2 is required")
	}
}

func printReports(reports []*domain.PairReport) {
	for _, report := range reports {
		if len(report.Results) == 0 {
			fmt.Printf("No dark pool activity: %s vs %s\n", report.SourceDay1, report.SourceDay2)
			continue
		}
		fmt.Printf("Dark pool activity: %s vs %s\n", report.SourceDay1, report.SourceDay2)
		fmt.Printf("  %-32s %12s %12s %12s %12s\n",
			"ContractID", "Vol_D1", "OI_D1", "OI_D2", "Activity")
		for _, r := range report.Results {
			fmt.Printf("  %-32s %12d %12d %12d %12d\n",
				r.ContractID, r.VolumeDay1, r.OpenInterestDay1, r.OpenInterestDay2, r.DarkPoolActivity)
		}
	}
}
