package tracker

import (
	"hash/fnv"
	"unicode/utf8"

	"donkinwatch/internal/model"
)

const (
	summaryPreviewLen = 200
	// Ids stay below 2^53 so browsers decode them without loss.
	maxSafeID = 1<<53 - 1
)

// ItemFromResult maps a search result to a news item. The id is derived from
// the term and summary, so the same answer found twice is one item.
func ItemFromResult(r model.SearchResult) model.NewsItem {
	h := fnv.New64a()
	h.Write([]byte(r.SearchTerm))
	h.Write([]byte{0})
	h.Write([]byte(r.Summary))

	id := int64(h.Sum64() & maxSafeID)
	if id == 0 {
		id = 1
	}

	ts := r.Time()
	var millis int64
	if !ts.IsZero() {
		millis = ts.UnixMilli()
	}

	return model.NewsItem{
		ID:        id,
		Title:     r.SearchTerm,
		Summary:   Truncate(r.Summary, summaryPreviewLen),
		Content:   r.Summary,
		Category:  model.SearchResultsCategory,
		Timestamp: millis,
		Sources:   []model.Source{},
	}
}

// Truncate cuts s to n runes and marks the cut with an ellipsis.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
