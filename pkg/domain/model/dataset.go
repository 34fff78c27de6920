package model

import (
	"sort"
	"time"

	"github.com/secmon-lab/kevtrend/pkg/domain/types"
)

// FilterOptions are the distinct filter values present in a dataset,
// derived once at load time for the UI dropdowns.
type FilterOptions struct {
	Years   []int    `json:"years"`
	Vendors []string `json:"vendors"`
	CWEs    []string `json:"cwes"`
}

// Dataset is one immutable snapshot of the catalog. Construct it with
// NewDataset and do not modify the record slice afterwards; queries from
// any number of goroutines may share a snapshot.
type Dataset struct {
	id       types.SnapshotID
	loadedAt time.Time
	records  []Record
	options  FilterOptions
}

// NewDataset builds a snapshot over already-cleaned records (dates
// parsed, ransomware field normalized) and derives its filter options
func NewDataset(records []Record) *Dataset {
	return &Dataset{
		id:       types.NewSnapshotID(),
		loadedAt: time.Now().UTC(),
		records:  records,
		options:  deriveOptions(records),
	}
}

// ID returns the snapshot identifier
func (d *Dataset) ID() types.SnapshotID {
	return d.id
}

// LoadedAt returns when the snapshot was built
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the record slice. Callers must treat it as read-only.
func (d *Dataset) Records() []Record {
	return d.records
}

// Options returns the derived filter options
func (d *Dataset) Options() FilterOptions {
	return d.options
}

func deriveOptions(records []Record) FilterOptions {
	yearSet := map[int]struct{}{}
	vendorSet := map[string]struct{}{}
	cweSet := map[string]struct{}{}

	for i := range records {
		r := &records[i]
		yearSet[r.DateAdded.Year()] = struct{}{}
		if r.VendorProject != "" {
			vendorSet[r.VendorProject] = struct{}{}
		}
		for _, token := range r.CWETokens() {
			cweSet[token] = struct{}{}
		}
	}

	opts := FilterOptions{
		Years:   make([]int, 0, len(yearSet)),
		Vendors: make([]string, 0, len(vendorSet)),
		CWEs:    make([]string, 0, len(cweSet)),
	}
	for y := range yearSet {
		opts.Years = append(opts.Years, y)
	}
	for v := range vendorSet {
		opts.Vendors = append(opts.Vendors, v)
	}
	for c := range cweSet {
		opts.CWEs = append(opts.CWEs, c)
	}

	sort.Ints(opts.Years)
	sort.Strings(opts.Vendors)
	sort.Strings(opts.CWEs)
	return opts
}
