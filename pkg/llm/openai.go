package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	PerplexityBaseURL = "https://api.perplexity.ai"
	PerplexityModel   = "sonar"
)

// OpenAIClient talks to any OpenAI-compatible chat completion API. Pointed
// at Perplexity it performs online search.
type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewPerplexityClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = PerplexityModel
	}
	return NewOpenAIClient(apiKey, model, option.WithBaseURL(PerplexityBaseURL))
}

func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) *OpenAIClient {
	if model == "" {
		model = "gpt-4o-mini"
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModel(model),
	}
}

func (c *OpenAIClient) Search(ctx context.Context, term string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(term)),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	})

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return "", fmt.Errorf("openai API error: %w %d: %w", ErrUpstreamStatus, apiErr.StatusCode, err)
	}
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}
