package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	apperrors "darkpoolcli/internal/errors"
)

// snapshotRe matches dated snapshot file names like "2025-06-12.csv".
// Excel snapshots with the same naming scheme are accepted as well.
var snapshotRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\.(csv|xlsx)$`)

const snapshotDateLayout = "2006-01-02"

// Snapshot is a discovered daily snapshot file.
type Snapshot struct {
	Path string
	Name string
	Date time.Time
}

// SnapshotPair is a consecutive Day1/Day2 snapshot pair.
type SnapshotPair struct {
	Day1 Snapshot
	Day2 Snapshot
}

// SnapshotDate extracts the trading date from a snapshot file name.
// The second return value is false when the name does not follow the
// dated naming scheme.
func SnapshotDate(path string) (time.Time, bool) {
	m := snapshotRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return time.Time{}, false
	}
	date, err := time.Parse(snapshotDateLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// FindSnapshots lists the dated snapshot files in dir, sorted ascending
// by date. Files that do not match the naming scheme are skipped with a
// warning; they never fail the discovery.
func FindSnapshots(dir string) ([]Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var snapshots []Snapshot
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		date, ok := SnapshotDate(name)
		if !ok {
			slog.Warn("Skipping file that does not match the snapshot naming scheme",
				slog.String("dir", dir),
				slog.String("filename", name))
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Path: filepath.Join(dir, name),
			Name: name,
			Date: date,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date.Before(snapshots[j].Date)
	})

	return snapshots, nil
}

// ConsecutivePairs emits each adjacent pair of snapshots in date order.
// Adjacency is by file order, not by calendar: a missing trading day
// does not break the pairing.
func ConsecutivePairs(snapshots []Snapshot) ([]SnapshotPair, error) {
	if len(snapshots) < 2 {
		return nil, apperrors.NewPairingError(
			fmt.Sprintf("need at least two dated snapshot files, found %d", len(snapshots)))
	}

	pairs := make([]SnapshotPair, 0, len(snapshots)-1)
	for i := 0; i < len(snapshots)-1; i++ {
		d1, d2 := snapshots[i], snapshots[i+1]
		if gap := d2.Date.Sub(d1.Date); gap > 24*time.Hour {
			slog.Debug("Pairing snapshots across a calendar gap",
				slog.String("day1", d1.Name),
				slog.String("day2", d2.Name))
		}
		pairs = append(pairs, SnapshotPair{Day1: d1, Day2: d2})
	}
	return pairs, nil
}
