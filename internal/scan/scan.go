// Package scan composes the loader, day reducer and detector into the
// per-pair pipeline and drives it across directories of dated
// snapshots.
package scan

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"darkpoolcli/internal/dataprocessing"
	"darkpoolcli/internal/files"
	"darkpoolcli/internal/infrastructure"
	"darkpoolcli/pkg/contracts/domain"
)

// Scanner runs the dark pool comparison pipeline.
type Scanner struct {
	logger  *slog.Logger
	workers int
}

// New creates a Scanner. workers bounds directory-mode concurrency and
// must be >= 1.
func New(logger *slog.Logger, workers int) *Scanner {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if workers < 1 {
		workers = 1
	}
	return &Scanner{logger: infrastructure.WithComponent(logger, "scan"), workers: workers}
}

// Pair runs the pipeline for one explicit Day1/Day2 file pair:
// load both snapshots, reduce Day 1 to last occurrences and Day 2 to
// first occurrences, then detect. An empty result list is a valid,
// successful outcome.
func (s *Scanner) Pair(ctx context.Context, pathD1, pathD2 string) (*domain.PairReport, error) {
	logger := s.logger
	if traceID := infrastructure.GetTraceID(ctx); traceID != "" {
		logger = logger.With("trace_id", traceID)
	}

	logger.Info("Processing snapshot pair",
		slog.String("day1", pathD1),
		slog.String("day2", pathD2))

	tableD1, err := dataprocessing.Load(pathD1)
	if err != nil {
		return nil, fmt.Errorf("day 1 snapshot: %w", err)
	}
	tableD2, err := dataprocessing.Load(pathD2)
	if err != nil {
		return nil, fmt.Errorf("day 2 snapshot: %w", err)
	}

	day1, err := dataprocessing.Reduce(tableD1, dataprocessing.PolicyLast)
	if err != nil {
		return nil, fmt.Errorf("day 1 snapshot: %w", err)
	}
	day2, err := dataprocessing.Reduce(tableD2, dataprocessing.PolicyFirst)
	if err != nil {
		return nil, fmt.Errorf("day 2 snapshot: %w", err)
	}

	results := dataprocessing.Detect(day1, day2)

	logger.Info("Pair processed",
		slog.String("day1", pathD1),
		slog.String("day2", pathD2),
		slog.Int("contracts_day1", len(day1)),
		slog.Int("contracts_day2", len(day2)),
		slog.Int("flagged", len(results)))

	return &domain.PairReport{
		SourceDay1: pathD1,
		SourceDay2: pathD2,
		DateDay1:   tableD1.Date,
		DateDay2:   tableD2.Date,
		Results:    results,
	}, nil
}

// Directory discovers the dated snapshots in dir and runs the pipeline
// over every consecutive pair. Pairs share no state, so they are
// processed concurrently up to the configured worker bound; reports
// come back in pair order regardless of completion order. Any failing
// pair fails the whole scan.
func (s *Scanner) Directory(ctx context.Context, dir string) ([]*domain.PairReport, error) {
	snapshots, err := files.FindSnapshots(dir)
	if err != nil {
		return nil, err
	}
	pairs, err := files.ConsecutivePairs(snapshots)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Scanning directory",
		slog.String("dir", dir),
		slog.Int("snapshots", len(snapshots)),
		slog.Int("pairs", len(pairs)),
		slog.Int("workers", s.workers))

	reports := make([]*domain.PairReport, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			report, err := s.Pair(ctx, pair.Day1.Path, pair.Day2.Path)
			if err != nil {
				return fmt.Errorf("pair %s/%s: %w", pair.Day1.Name, pair.Day2.Name, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}
