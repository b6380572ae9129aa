package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestRemoteRunner(t *testing.T) {
	var gotTerms []string
	var gotPath, gotMethod string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		var body searchRequest
		json.NewDecoder(r.Body).Decode(&body)
		gotTerms = body.SearchTerms

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"searchTerm":"Donkin mine buyer","summary":"A buyer emerged.","timestamp":"2025-08-17T09:00:00.000Z","hasNewInfo":false}]}`))
	}))
	defer srv.Close()

	runner := NewRemoteRunner(srv.URL)
	out, err := runner.Run(context.Background(), []string{"Donkin mine buyer"})

	assert.Equal(t, nil, err)
	assert.Equal(t, "/api/search", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, []string{"Donkin mine buyer"}, gotTerms)
	assert.Equal(t, 1, len(out.Results))
	assert.Equal(t, "A buyer emerged.", out.Results[0].Summary)
}

func TestRemoteRunnerHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Search failed"}`))
	}))
	defer srv.Close()

	out, err := NewRemoteRunner(srv.URL).Run(context.Background(), []string{"A"})

	assert.Equal(t, (*Outcome)(nil), out)
	assert.Equal(t, "search API failed: 500", err.Error())
}
