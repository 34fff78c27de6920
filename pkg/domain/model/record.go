package model

import (
	"strings"
	"time"
)

// Record is one entry of the known-exploited-vulnerabilities catalog.
// CWEs keeps the raw comma-separated text as published; filter matching
// runs against the unsplit text.
type Record struct {
	CVEID                      string
	VendorProject              string
	Product                    string
	VulnerabilityName          string
	DateAdded                  time.Time
	ShortDescription           string
	RequiredAction             string
	DueDate                    string
	KnownRansomwareCampaignUse string
	Notes                      string
	CWEs                       string
}

// ransomwareKnownValue is the canonical catalog value marking confirmed
// ransomware campaign use. Anything else, including empty, means not known.
const ransomwareKnownValue = "known"

// NormalizeRansomwareUse canonicalizes the raw catalog field for matching
func NormalizeRansomwareUse(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// RansomwareKnown reports whether the record has confirmed ransomware
// campaign use. Expects KnownRansomwareCampaignUse to be normalized.
func (r *Record) RansomwareKnown() bool {
	return r.KnownRansomwareCampaignUse == ransomwareKnownValue
}

// CWETokens splits the raw CWEs text into trimmed identifiers
func (r *Record) CWETokens() []string {
	if r.CWEs == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(r.CWEs, ",") {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
