package model

import (
	"time"
	"unicode/utf16"
)

// NewInfoThreshold is the summary length above which a result is worth
// surfacing.
const NewInfoThreshold = 100

const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type SearchResult struct {
	SearchTerm string `json:"searchTerm"`
	Summary    string `json:"summary"`
	Timestamp  string `json:"timestamp"`
	HasNewInfo bool   `json:"hasNewInfo"`
}

func NewSearchResult(term, summary string, at time.Time) SearchResult {
	return SearchResult{
		SearchTerm: term,
		Summary:    summary,
		Timestamp:  at.UTC().Format(TimestampLayout),
		HasNewInfo: HasNewInfo(summary),
	}
}

// HasNewInfo measures the summary in UTF-16 code units, the unit browsers
// use for string length, so an emoji counts as two.
func HasNewInfo(summary string) bool {
	return utf16Len(summary) > NewInfoThreshold
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Time parses Timestamp, falling back to the zero time.
func (r SearchResult) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
