package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriter_WriteCSV(t *testing.T) {
	writer := NewCSVWriter()

	tests := []struct {
		name     string
		options  WriteOptions
		validate func(t *testing.T, content string)
	}{
		{
			name: "basic write with headers",
			options: WriteOptions{
				Headers: []string{"ContractID", "Volume"},
				Records: [][]string{
					{"AAPL|20250620|235.00P", "150"},
					{"MSFT|20250620|400.00C", "50"},
				},
			},
			validate: func(t *testing.T, content string) {
				lines := strings.Split(strings.TrimSpace(content), "\n")
				require.Len(t, lines, 3)
				assert.Equal(t, "ContractID,Volume", lines[0])
				assert.Equal(t, "AAPL|20250620|235.00P,150", lines[1])
			},
		},
		{
			name: "BOM prefix",
			options: WriteOptions{
				Headers:   []string{"ContractID"},
				Records:   [][]string{{"X"}},
				BOMPrefix: true,
			},
			validate: func(t *testing.T, content string) {
				assert.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"))
			},
		},
		{
			name: "headers only",
			options: WriteOptions{
				Headers: []string{"ContractID", "Volume"},
			},
			validate: func(t *testing.T, content string) {
				assert.Equal(t, "ContractID,Volume", strings.TrimSpace(content))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "reports", "out.csv")
			require.NoError(t, writer.WriteCSV(path, tt.options))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.validate(t, string(content))
		})
	}
}

func TestCSVWriter_AppendToCSV(t *testing.T) {
	writer := NewCSVWriter()
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, writer.WriteCSV(path, WriteOptions{
		Headers: []string{"ContractID", "Volume"},
		Records: [][]string{{"X", "1"}},
	}))
	require.NoError(t, writer.AppendToCSV(path, [][]string{{"Y", "2"}}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Y,2", lines[2])
}

func TestCSVWriter_CreatesDirectories(t *testing.T) {
	writer := NewCSVWriter()
	path := filepath.Join(t.TempDir(), "a", "b", "c", "out.csv")

	require.NoError(t, writer.WriteCSV(path, WriteOptions{Headers: []string{"H"}}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
