package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// SnapshotID identifies one loaded dataset snapshot
type SnapshotID string

// String returns the string representation
func (id SnapshotID) String() string {
	return string(id)
}

// NewSnapshotID creates a new SnapshotID
func NewSnapshotID() SnapshotID {
	return SnapshotID(uuid.New().String())
}

// Month is a calendar year-month
type Month struct {
	year  int
	month time.Month
}

// NewMonth creates a Month from a year and month pair
func NewMonth(year int, month time.Month) Month {
	return Month{year: year, month: month}
}

// MonthOf truncates t to its calendar year-month
func MonthOf(t time.Time) Month {
	return Month{year: t.Year(), month: t.Month()}
}

// ParseMonth parses a "2006-01" style month string
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, goerr.Wrap(err, "invalid month", goerr.V("month", s))
	}
	return MonthOf(t), nil
}

// Year returns the calendar year
func (m Month) Year() int {
	return m.year
}

// Month returns the month within the year
func (m Month) Month() time.Month {
	return m.month
}

// Time returns the first instant of the month in UTC
func (m Month) Time() time.Time {
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
}

// Compare orders months chronologically (-1, 0, +1)
func (m Month) Compare(other Month) int {
	switch {
	case m.year != other.year:
		if m.year < other.year {
			return -1
		}
		return 1
	case m.month != other.month:
		if m.month < other.month {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Before reports whether m is chronologically before other
func (m Month) Before(other Month) bool {
	return m.Compare(other) < 0
}

// String returns the "2006-01" representation
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.year, int(m.month))
}

// MarshalJSON encodes the month as a "2006-01" string
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes a "2006-01" string month
func (m *Month) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return goerr.New("month must be a JSON string", goerr.V("data", string(data)))
	}
	parsed, err := ParseMonth(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// RansomwareMode selects how the ransomware-association filter applies
type RansomwareMode string

const (
	// RansomwareAll applies no ransomware restriction
	RansomwareAll RansomwareMode = "all"
	// RansomwareKnown keeps records with confirmed ransomware campaign use
	RansomwareKnown RansomwareMode = "known"
	// RansomwareUnknown keeps records without confirmed ransomware campaign use
	RansomwareUnknown RansomwareMode = "unknown"
)

// ParseRansomwareMode parses a mode string. An empty string means no
// restriction.
func ParseRansomwareMode(s string) (RansomwareMode, error) {
	switch s {
	case "", "all", "All", "ALL":
		return RansomwareAll, nil
	case "known", "Known", "KNOWN":
		return RansomwareKnown, nil
	case "unknown", "Unknown", "UNKNOWN":
		return RansomwareUnknown, nil
	default:
		return "", goerr.New("invalid ransomware mode", goerr.V("mode", s))
	}
}

// IsValid returns true if the mode is one of the defined values
func (m RansomwareMode) IsValid() bool {
	switch m {
	case RansomwareAll, RansomwareKnown, RansomwareUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation
func (m RansomwareMode) String() string {
	return string(m)
}
