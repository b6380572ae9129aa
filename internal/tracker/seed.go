package tracker

import (
	"time"

	"donkinwatch/internal/model"
)

func ms(raw string) int64 {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(err)
	}
	return t.UnixMilli()
}

// SeedItems is what a first run shows before any search has happened.
func SeedItems() []model.NewsItem {
	return []model.NewsItem{
		{
			ID:        1,
			Title:     "International Mining Consortium Shows Interest in Donkin",
			Summary:   "A major international mining consortium has reportedly expressed preliminary interest in acquiring the Donkin coal mine, according to sources close to the negotiations.",
			Category:  "Investor News",
			Timestamp: ms("2025-08-17T09:00:00Z"),
			Sources: []model.Source{
				{Name: "CBC Nova Scotia", URL: "https://cbc.ca/news/example"},
				{Name: "SaltWire Network", URL: "https://saltwire.com/example"},
			},
			Content: "Full detailed content about the international mining consortium's interest in the Donkin coal mine, covering the potential acquisition, the parties involved, financial implications, and impact on local communities.",
		},
		{
			ID:        2,
			Title:     "Morien Resources Quarterly Update",
			Summary:   "Morien Resources releases Q3 financial results with specific focus on Donkin mine royalties and operational updates.",
			Category:  "Financial Reports",
			Timestamp: ms("2025-08-16T14:30:00Z"),
			Sources: []model.Source{
				{Name: "Mining Weekly", URL: "https://miningweekly.com/example"},
				{Name: "Financial Post", URL: "https://financialpost.com/example"},
			},
			Content: "Quarterly report from Morien Resources with particular attention to revenues from Donkin mine royalties, market analysis, future projections, and commentary from company executives.",
		},
		{
			ID:        3,
			Title:     "Local Community Responds to Sale Rumors",
			Summary:   "Cape Breton community leaders share concerns and hopes regarding potential changes in Donkin mine ownership.",
			Category:  "Operations Updates",
			Timestamp: ms("2025-08-15T11:15:00Z"),
			Sources: []model.Source{
				{Name: "Cape Breton Post", URL: "https://capebretonpost.com/example"},
			},
			Content: "Local perspectives on the potential sale of Donkin mine from community leaders, workers, local politicians, and residents on jobs, the environment, and the mine's future under new ownership.",
		},
	}
}
