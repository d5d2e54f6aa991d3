package exporter

import (
	"strconv"
	"time"

	apperrors "darkpoolcli/internal/errors"
	"darkpoolcli/pkg/contracts/domain"
)

// ActivityHeaders is the column set of the dark pool activity report.
var ActivityHeaders = []string{
	"Date_Day1",
	"Date_Day2",
	"ContractID",
	"Volume_Day1",
	"OpenInterest_Day1",
	"OpenInterest_Day2",
	"DarkPoolActivity",
}

// ActivityRecords flattens pair reports into CSV records in report
// order. Date columns are empty when the snapshot file names carried no
// date.
func ActivityRecords(reports []*domain.PairReport) [][]string {
	var records [][]string
	for _, report := range reports {
		if report == nil {
			continue
		}
		d1 := formatDate(report.DateDay1)
		d2 := formatDate(report.DateDay2)
		for _, r := range report.Results {
			records = append(records, []string{
				d1,
				d2,
				r.ContractID,
				strconv.FormatInt(r.VolumeDay1, 10),
				strconv.FormatInt(r.OpenInterestDay1, 10),
				strconv.FormatInt(r.OpenInterestDay2, 10),
				strconv.FormatInt(r.DarkPoolActivity, 10),
			})
		}
	}
	return records
}

// WriteActivityReport writes the flagged contracts of the given pair
// reports to a CSV file.
func WriteActivityReport(filePath string, reports []*domain.PairReport) error {
	if err := NewCSVWriter().WriteSimpleCSV(filePath, ActivityHeaders, ActivityRecords(reports)); err != nil {
		return apperrors.NewExportError("failed to write activity report", err).WithContext("file", filePath)
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
