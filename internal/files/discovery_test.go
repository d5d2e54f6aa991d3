package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "darkpoolcli/internal/errors"
)

func writeFiles(t *testing.T, dir string, names []string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644))
	}
}

func TestSnapshotDate(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expectOK bool
		expected string
	}{
		{"csv snapshot", "data/2025-06-12.csv", true, "2025-06-12"},
		{"xlsx snapshot", "2025-06-13.xlsx", true, "2025-06-13"},
		{"wrong extension", "2025-06-12.txt", false, ""},
		{"not a date", "notes.csv", false, ""},
		{"impossible date", "2025-13-40.csv", false, ""},
		{"extra prefix", "isx_2025-06-12.csv", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, ok := SnapshotDate(tt.path)
			assert.Equal(t, tt.expectOK, ok)
			if tt.expectOK {
				assert.Equal(t, tt.expected, date.Format("2006-01-02"))
			}
		})
	}
}

func TestFindSnapshots(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, []string{
		"2025-06-13.csv",
		"2025-06-12.csv",
		"2025-06-16.xlsx",
		"readme.txt",
		"2025_06_14.csv", // wrong separator, skipped
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2025-06-15.csv"), 0755)) // directory, skipped

	snapshots, err := FindSnapshots(dir)
	require.NoError(t, err)

	require.Len(t, snapshots, 3)
	assert.Equal(t, "2025-06-12.csv", snapshots[0].Name)
	assert.Equal(t, "2025-06-13.csv", snapshots[1].Name)
	assert.Equal(t, "2025-06-16.xlsx", snapshots[2].Name)
	assert.Equal(t, filepath.Join(dir, "2025-06-12.csv"), snapshots[0].Path)
}

func TestFindSnapshots_MissingDirectory(t *testing.T) {
	_, err := FindSnapshots(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestConsecutivePairs(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	snapshots := []Snapshot{
		{Name: "2025-06-12.csv", Date: day("2025-06-12")},
		{Name: "2025-06-13.csv", Date: day("2025-06-13")},
		{Name: "2025-06-16.csv", Date: day("2025-06-16")}, // weekend gap
	}

	pairs, err := ConsecutivePairs(snapshots)
	require.NoError(t, err)

	require.Len(t, pairs, 2)
	assert.Equal(t, "2025-06-12.csv", pairs[0].Day1.Name)
	assert.Equal(t, "2025-06-13.csv", pairs[0].Day2.Name)
	// Adjacent files pair regardless of the calendar gap
	assert.Equal(t, "2025-06-13.csv", pairs[1].Day1.Name)
	assert.Equal(t, "2025-06-16.csv", pairs[1].Day2.Name)
}

func TestConsecutivePairs_TooFewFiles(t *testing.T) {
	_, err := ConsecutivePairs([]Snapshot{{Name: "2025-06-12.csv"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypePairing))

	_, err = ConsecutivePairs(nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypePairing))
}
