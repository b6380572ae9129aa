package handler

type SearchRequest struct {
	SearchTerms []string `json:"searchTerms" binding:"required"`
}

type SourceResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type NewsItemResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Summary     string           `json:"summary"`
	Content     string           `json:"content"`
	Category    string           `json:"category"`
	Timestamp   int64            `json:"timestamp"`
	PublishedAt string           `json:"published_at"`
	Sources     []SourceResponse `json:"sources"`
	IsNew       bool             `json:"isNew"`
}

type FeedResponse struct {
	Items  []NewsItemResponse `json:"items"`
	Total  int                `json:"total"`
	Unseen int                `json:"unseen"`
}

type NewsSearchResponse struct {
	Query   string             `json:"query"`
	Prompt  bool               `json:"prompt"`
	Message string             `json:"message,omitempty"`
	Items   []NewsItemResponse `json:"items"`
}

type SeenResponse struct {
	ID     int64 `json:"id"`
	Unseen int   `json:"unseen"`
}

type RefreshResponse struct {
	Refreshed bool   `json:"refreshed"`
	Added     int    `json:"added"`
	Results   int    `json:"results"`
	Failures  int    `json:"failures"`
	Timestamp string `json:"timestamp,omitempty"`
}

type SettingsPayload struct {
	Email             string `json:"email"`
	Frequency         string `json:"frequency"`
	Theme             string `json:"theme"`
	PushNotifications bool   `json:"pushNotifications"`
}

type CronResponse struct {
	Success    bool   `json:"success"`
	HasUpdates bool   `json:"hasUpdates"`
	Timestamp  string `json:"timestamp"`
}

type DailyCheckResult struct {
	SearchTerm string `json:"searchTerm"`
	Summary    string `json:"summary"`
}

type DailyCheckResponse struct {
	Success    bool               `json:"success"`
	HasUpdates bool               `json:"hasUpdates"`
	NewsCount  int                `json:"newsCount"`
	Timestamp  string             `json:"timestamp"`
	Results    []DailyCheckResult `json:"results"`
}

type FailureResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
