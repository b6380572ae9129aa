package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/openai/openai-go/option"
)

type capturedRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newCompletionServer(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			json.NewDecoder(r.Body).Decode(captured)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAISearch(t *testing.T) {
	var req capturedRequest
	srv := newCompletionServer(t, http.StatusOK, `{
		"id": "cmpl-1",
		"object": "chat.completion",
		"created": 1755421200,
		"model": "sonar",
		"choices": [{
			"index": 0,
			"finish_reason": "stop",
			"message": {"role": "assistant", "content": "Kameron Collieries confirmed talks with a buyer."}
		}]
	}`, &req)

	client := NewOpenAIClient("test-key", "sonar", option.WithBaseURL(srv.URL))

	summary, err := client.Search(context.Background(), "Donkin mine buyer")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Kameron Collieries confirmed talks with a buyer.", summary)
	assert.Equal(t, "sonar", req.Model)
	assert.Equal(t, 500, req.MaxTokens)
	assert.Equal(t, 0.2, req.Temperature)
	assert.Equal(t, 2, len(req.Messages))
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, systemPrompt, req.Messages[0].Content)
	assert.Equal(t, true, strings.Contains(req.Messages[1].Content, `"Donkin mine buyer"`))
	assert.Equal(t, true, strings.Contains(req.Messages[1].Content, "past 24 hours"))
}

func TestOpenAISearchNoChoices(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, `{"id": "cmpl-2", "object": "chat.completion", "choices": []}`, nil)

	client := NewOpenAIClient("test-key", "sonar", option.WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), "Donkin mine investor")
	assert.Equal(t, true, errors.Is(err, ErrNoChoices))
}

func TestOpenAISearchHTTPError(t *testing.T) {
	srv := newCompletionServer(t, http.StatusUnauthorized, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`, nil)

	client := NewOpenAIClient("bad-key", "sonar", option.WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), "Donkin mine investor")
	assert.NotEqual(t, nil, err)
	assert.Equal(t, false, errors.Is(err, ErrNoChoices))
	assert.Equal(t, true, errors.Is(err, ErrUpstreamStatus))
}

func TestOpenAISearchTransportError(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, `{}`, nil)
	url := srv.URL
	srv.Close()

	client := NewOpenAIClient("test-key", "sonar", option.WithBaseURL(url))

	_, err := client.Search(context.Background(), "Donkin mine investor")
	assert.NotEqual(t, nil, err)
	assert.Equal(t, false, errors.Is(err, ErrUpstreamStatus))
}

func TestUserPromptEmbedsTerm(t *testing.T) {
	got := userPrompt("Morien Resources Donkin")
	want := `Find the latest news about "Morien Resources Donkin" from the past 24 hours. Focus on new developments, sales updates, or investor activity.`
	assert.Equal(t, want, got)
}

func TestUserPromptKeepsTermVerbatim(t *testing.T) {
	got := userPrompt(`Donkin "mine" C:\sale`)
	want := `Find the latest news about "Donkin "mine" C:\sale" from the past 24 hours. Focus on new developments, sales updates, or investor activity.`
	assert.Equal(t, want, got)
}
