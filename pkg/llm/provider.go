package llm

import (
	"fmt"

	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go/option"
)

// NewSearchClient picks the client for provider. baseURL overrides the
// provider's default endpoint when set.
func NewSearchClient(provider, apiKey, model, baseURL string) (SearchClient, error) {
	switch provider {
	case "perplexity":
		if baseURL == "" {
			return NewPerplexityClient(apiKey, model), nil
		}
		if model == "" {
			model = PerplexityModel
		}
		return NewOpenAIClient(apiKey, model, option.WithBaseURL(baseURL)), nil
	case "openai":
		if baseURL == "" {
			return NewOpenAIClient(apiKey, model), nil
		}
		return NewOpenAIClient(apiKey, model, option.WithBaseURL(baseURL)), nil
	case "anthropic":
		if baseURL == "" {
			return NewAnthropicClient(apiKey, model), nil
		}
		return NewAnthropicClient(apiKey, model, anthropicoption.WithBaseURL(baseURL)), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", provider)
	}
}
