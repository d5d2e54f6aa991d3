package dataprocessing

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "darkpoolcli/internal/errors"
	"darkpoolcli/internal/files"
	"darkpoolcli/pkg/contracts/domain"
)

// Canonical column names after header normalization.
const (
	ColContractID   = "ContractID"
	ColVolume       = "Volume"
	ColOpenInterest = "OpenInterest"
	ColTime         = "Time"
)

// headerAliases maps cleaned, lower-cased header cells to canonical
// column names. Cleaning strips double quotes and surrounding
// whitespace, so `"Open Int"` and `Open Int` land on the same alias.
// The first column is always ContractID regardless of its raw header;
// vendor exports carry `Symbol,Symbol,Price~` there.
var headerAliases = map[string]string{
	"volume":        ColVolume,
	"open int":      ColOpenInterest,
	"open interest": ColOpenInterest,
	"time":          ColTime,
}

// Load reads a daily snapshot file into a DailyTable, preserving file
// row order. CSV is the native format; xlsx snapshots with the same
// column layout are accepted too. The returned table keeps Volume and
// OpenInterest raw; they are parsed during reduction.
func Load(path string) (*domain.DailyTable, error) {
	var header []string
	var records [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		header, records, err = readXLSX(path)
	default:
		header, records, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	columns, err := mapColumns(path, header)
	if err != nil {
		return nil, err
	}

	table := &domain.DailyTable{Source: path}
	if date, ok := files.SnapshotDate(path); ok {
		table.Date = date
	}

	for i, record := range records {
		if isBlank(record) {
			continue
		}
		row := domain.TransactionRow{
			ContractID:   strings.TrimSpace(record[0]),
			Volume:       cell(record, columns[ColVolume]),
			OpenInterest: cell(record, columns[ColOpenInterest]),
			Index:        i,
		}
		if timeIdx, ok := columns[ColTime]; ok {
			row.Time = cell(record, timeIdx)
		}
		table.Rows = append(table.Rows, row)
	}

	slog.Debug("Loaded snapshot",
		slog.String("file", path),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

// readCSV reads the header and data records of a CSV snapshot. The
// file handle is released before returning.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewLoadError(path, "cannot open snapshot file", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, apperrors.NewLoadError(path, "snapshot file is empty", nil)
	}
	if err != nil {
		return nil, nil, apperrors.NewLoadError(path, "cannot read snapshot header", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, apperrors.NewLoadError(path, "cannot read snapshot rows", err)
	}
	return header, records, nil
}

// readXLSX reads the header and data rows from the first sheet of an
// Excel snapshot.
func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, apperrors.NewLoadError(path, "cannot open snapshot file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, apperrors.NewLoadError(path, "snapshot file is empty", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, apperrors.NewLoadError(path, "cannot read snapshot rows", err)
	}
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, nil, apperrors.NewLoadError(path, "snapshot file is empty", nil)
	}

	return rows[0], rows[1:], nil
}

// mapColumns resolves the canonical column positions from a raw header
// row. The first column is ContractID by position; the rest are matched
// through the alias table. Volume and OpenInterest are required.
func mapColumns(path string, header []string) (map[string]int, error) {
	if len(header) == 0 {
		return nil, apperrors.NewLoadError(path, "snapshot file is empty", nil)
	}

	columns := map[string]int{ColContractID: 0}
	for j, raw := range header {
		if j == 0 {
			continue
		}
		name, ok := headerAliases[cleanHeader(raw)]
		if !ok {
			continue
		}
		if _, dup := columns[name]; dup {
			continue
		}
		columns[name] = j
	}

	for _, required := range []string{ColVolume, ColOpenInterest} {
		if _, ok := columns[required]; !ok {
			return nil, apperrors.NewMissingColumnError(path, required)
		}
	}
	return columns, nil
}

// cleanHeader strips double quotes and surrounding whitespace and
// lower-cases the cell for alias matching.
func cleanHeader(raw string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, `"`, "")))
}

// cell returns the field at idx, tolerating short rows.
func cell(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
