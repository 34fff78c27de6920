package usecase

import (
	"sort"

	"github.com/secmon-lab/kevtrend/pkg/domain/model"
	"github.com/secmon-lab/kevtrend/pkg/domain/types"
)

// Aggregate filters records by the selection and counts survivors per
// calendar month of DateAdded. The result is ascending by month and
// omits months with no matching record; no filter matching anything
// yields an empty series. It never mutates its inputs and is safe to
// call concurrently over a shared record slice.
func Aggregate(records []model.Record, selection model.Selection) model.Series {
	counts := make(map[types.Month]int)
	for i := range records {
		if selection.Match(&records[i]) {
			counts[types.MonthOf(records[i].DateAdded)]++
		}
	}

	if len(counts) == 0 {
		return model.Series{}
	}

	series := make(model.Series, 0, len(counts))
	for month, count := range counts {
		series = append(series, model.MonthlyCount{Month: month, Count: count})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month.Before(series[j].Month)
	})
	return series
}
