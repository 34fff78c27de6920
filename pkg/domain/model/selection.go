package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kevtrend/pkg/domain/types"
)

// Selection is one filter query. Every field is an optional restriction:
// an empty set means no restriction on that axis, and the zero value of
// Ransomware is treated as RansomwareAll.
type Selection struct {
	Years      []int                `json:"years,omitempty" yaml:"years,omitempty"`
	Vendors    []string             `json:"vendors,omitempty" yaml:"vendors,omitempty"`
	CWEs       []string             `json:"cwes,omitempty" yaml:"cwes,omitempty"`
	Ransomware types.RansomwareMode `json:"ransomware,omitempty" yaml:"ransomware,omitempty"`
}

// Validate checks the selection fields
func (s *Selection) Validate() error {
	if s.Ransomware != "" && !s.Ransomware.IsValid() {
		return goerr.New("invalid ransomware mode", goerr.V("mode", s.Ransomware))
	}
	for _, y := range s.Years {
		if y < 1 {
			return goerr.New("invalid year", goerr.V("year", y))
		}
	}
	return nil
}

// IsZero reports whether the selection restricts nothing
func (s *Selection) IsZero() bool {
	return len(s.Years) == 0 && len(s.Vendors) == 0 && len(s.CWEs) == 0 &&
		(s.Ransomware == "" || s.Ransomware == types.RansomwareAll)
}

// Match reports whether a record satisfies every active restriction.
// Filters combine with AND across axes; within the CWE axis one matching
// fragment suffices.
func (s *Selection) Match(r *Record) bool {
	if len(s.Years) > 0 && !containsInt(s.Years, r.DateAdded.Year()) {
		return false
	}
	if len(s.Vendors) > 0 && !containsString(s.Vendors, r.VendorProject) {
		return false
	}
	if len(s.CWEs) > 0 && !s.matchCWE(r) {
		return false
	}
	switch s.Ransomware {
	case types.RansomwareKnown:
		return r.RansomwareKnown()
	case types.RansomwareUnknown:
		return !r.RansomwareKnown()
	default:
		return true
	}
}

// matchCWE matches requested fragments as substrings of the raw unsplit
// CWEs text, so "CWE-7" matches a record listing "CWE-79". Intentionally
// looser than token equality; tightening it would change observable
// results for existing queries.
func (s *Selection) matchCWE(r *Record) bool {
	for _, fragment := range s.CWEs {
		if fragment != "" && strings.Contains(r.CWEs, fragment) {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
