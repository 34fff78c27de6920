package model

import "github.com/secmon-lab/kevtrend/pkg/domain/types"

// MonthlyCount is one point of the aggregated time series
type MonthlyCount struct {
	Month types.Month `json:"month"`
	Count int         `json:"count"`
}

// Series is a monthly count series, ascending by month. Months without
// matching records are omitted, not zero-filled.
type Series []MonthlyCount

// Total sums the counts over all months
func (s Series) Total() int {
	total := 0
	for _, p := range s {
		total += p.Count
	}
	return total
}

// IsEmpty reports whether no month matched
func (s Series) IsEmpty() bool {
	return len(s) == 0
}
