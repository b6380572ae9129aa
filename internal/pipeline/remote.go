package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"donkinwatch/internal/model"
)

// RemoteRunner runs the search on another deployment through its
// POST /api/search endpoint.
type RemoteRunner struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteRunner(baseURL string) *RemoteRunner {
	return &RemoteRunner{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

type searchRequest struct {
	SearchTerms []string `json:"searchTerms"`
}

type searchResponse struct {
	Results []model.SearchResult `json:"results"`
}

func (r *RemoteRunner) Run(ctx context.Context, terms []string) (*Outcome, error) {
	body, err := json.Marshal(searchRequest{SearchTerms: terms})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search API failed: %d", resp.StatusCode)
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("search decode: %w", err)
	}

	if raw.Results == nil {
		raw.Results = []model.SearchResult{}
	}

	return &Outcome{Results: raw.Results}, nil
}
