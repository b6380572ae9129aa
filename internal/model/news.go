package model

import "time"

const SearchResultsCategory = "Search Results"

type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NewsItem is immutable once stored. Whether it is new to the reader is
// derived from the seen set, never stored on the item.
type NewsItem struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Timestamp int64    `json:"timestamp"`
	Sources   []Source `json:"sources"`
}

func (n NewsItem) Time() time.Time {
	return time.UnixMilli(n.Timestamp).UTC()
}
