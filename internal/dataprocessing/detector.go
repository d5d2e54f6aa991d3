package dataprocessing

import (
	"sort"

	"darkpoolcli/pkg/contracts/domain"
)

// Detect joins the two reduced days on contract identifier and scores
// each contract present in both:
//
//	DarkPoolActivity = Volume_Day1 + OpenInterest_Day1 - OpenInterest_Day2
//
// Only strictly positive scores are reported. Results are sorted
// ascending by contract identifier so repeated runs over the same
// inputs produce identical output. Empty inputs yield an empty result,
// never an error.
func Detect(day1, day2 domain.ReducedDay) []domain.ActivityResult {
	if len(day1) == 0 || len(day2) == 0 {
		return nil
	}

	var results []domain.ActivityResult
	for id, d1 := range day1 {
		d2, ok := day2[id]
		if !ok {
			continue
		}
		activity := d1.Volume + d1.OpenInterest - d2.OpenInterest
		if activity <= 0 {
			continue
		}
		results = append(results, domain.ActivityResult{
			ContractID:       id,
			VolumeDay1:       d1.Volume,
			OpenInterestDay1: d1.OpenInterest,
			OpenInterestDay2: d2.OpenInterest,
			DarkPoolActivity: activity,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ContractID < results[j].ContractID
	})
	return results
}
