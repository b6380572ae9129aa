package model

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestHasNewInfo(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		want    bool
	}{
		{name: "empty", summary: "", want: false},
		{name: "exactly threshold", summary: strings.Repeat("a", 100), want: false},
		{name: "one over threshold", summary: strings.Repeat("a", 101), want: true},
		{name: "accented letters count once", summary: strings.Repeat("é", 100), want: false},
		{name: "emoji counts twice", summary: strings.Repeat("a", 99) + "🪨", want: true},
		{name: "fifty emoji reach the threshold", summary: strings.Repeat("🪨", 50), want: false},
		{name: "fifty one emoji pass it", summary: strings.Repeat("🪨", 51), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasNewInfo(tt.summary))
		})
	}
}

func TestNewSearchResult(t *testing.T) {
	at := time.Date(2025, 8, 17, 9, 0, 0, 0, time.FixedZone("ADT", -3*60*60))
	r := NewSearchResult("Donkin mine buyer", "No news.", at)

	assert.Equal(t, "2025-08-17T12:00:00.000Z", r.Timestamp)
	assert.Equal(t, false, r.HasNewInfo)
	assert.Equal(t, at.UTC(), r.Time())
}
