package domain

import "time"

// TransactionRow is one options transaction exactly as it appears in a
// daily snapshot file. Volume and OpenInterest are carried as raw
// strings at this layer; numeric parsing happens when a row is actually
// selected during day reduction. Index is the zero-based position of
// the row among the file's data rows, which is what "first" and "last"
// occurrence are defined against.
type TransactionRow struct {
	ContractID   string `json:"contract_id"`
	Volume       string `json:"volume"`
	OpenInterest string `json:"open_interest"`
	Time         string `json:"time,omitempty"`
	Index        int    `json:"index"`
}

// DailyTable holds one trading day's transactions in file order.
type DailyTable struct {
	Source string           `json:"source"`
	Date   time.Time        `json:"date"`
	Rows   []TransactionRow `json:"rows"`
}

// ContractDay is the single representative record kept for one contract
// on one day after reduction.
type ContractDay struct {
	ContractID   string `json:"contract_id"`
	Volume       int64  `json:"volume"`
	OpenInterest int64  `json:"open_interest"`
}

// ReducedDay maps each contract identifier to its representative record.
type ReducedDay map[string]ContractDay

// ActivityResult is one contract flagged for potential dark pool
// activity across a consecutive-day pair.
type ActivityResult struct {
	ContractID       string `json:"contract_id"`
	VolumeDay1       int64  `json:"volume_day1"`
	OpenInterestDay1 int64  `json:"open_interest_day1"`
	OpenInterestDay2 int64  `json:"open_interest_day2"`
	DarkPoolActivity int64  `json:"dark_pool_activity"`
}

// PairReport collects the flagged contracts for one Day1/Day2 pair,
// tagged with the snapshot dates when the file names carry them.
type PairReport struct {
	SourceDay1 string           `json:"source_day1"`
	SourceDay2 string           `json:"source_day2"`
	DateDay1   time.Time        `json:"date_day1"`
	DateDay2   time.Time        `json:"date_day2"`
	Results    []ActivityResult `json:"results"`
}
