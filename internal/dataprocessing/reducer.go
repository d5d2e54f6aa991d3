package dataprocessing

import (
	"strconv"
	"strings"

	apperrors "darkpoolcli/internal/errors"
	"darkpoolcli/pkg/contracts/domain"
)

// ReducePolicy selects which occurrence of a contract's transactions
// represents the day.
type ReducePolicy int

const (
	// PolicyLast keeps the last row per contract in file order. This is
	// the Day 1 semantics: the final reported state of the day.
	PolicyLast ReducePolicy = iota
	// PolicyFirst keeps the first row per contract in file order. This
	// is the Day 2 semantics: the opening state of the next day.
	PolicyFirst
)

func (p ReducePolicy) String() string {
	if p == PolicyFirst {
		return "first"
	}
	return "last"
}

// Reduce collapses a daily table to one record per contract according
// to the policy. File order is authoritative; the advisory Time field
// is never consulted. Numeric fields are parsed only for the rows the
// policy actually selects, so a malformed value in a row that is
// overwritten or ignored does not fail the day.
func Reduce(table *domain.DailyTable, policy ReducePolicy) (domain.ReducedDay, error) {
	kept := make(map[string]domain.TransactionRow)
	for _, row := range table.Rows {
		if row.ContractID == "" {
			continue
		}
		if policy == PolicyFirst {
			if _, seen := kept[row.ContractID]; seen {
				continue
			}
		}
		kept[row.ContractID] = row
	}

	reduced := make(domain.ReducedDay, len(kept))
	for id, row := range kept {
		volume, err := parseCount(row.Volume)
		if err != nil {
			return nil, apperrors.NewFormatError(table.Source, row.Index, ColVolume, row.Volume)
		}
		openInterest, err := parseCount(row.OpenInterest)
		if err != nil {
			return nil, apperrors.NewFormatError(table.Source, row.Index, ColOpenInterest, row.OpenInterest)
		}
		reduced[id] = domain.ContractDay{
			ContractID:   id,
			Volume:       volume,
			OpenInterest: openInterest,
		}
	}
	return reduced, nil
}

// parseCount parses a volume or open-interest figure, tolerating
// thousands separators and surrounding whitespace.
func parseCount(raw string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return strconv.ParseInt(cleaned, 10, 64)
}
