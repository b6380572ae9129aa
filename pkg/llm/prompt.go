package llm

import "fmt"

const (
	maxTokens   = 500
	temperature = 0.2
)

const systemPrompt = "You are a news researcher. Search for the latest news and provide a concise summary."

func userPrompt(term string) string {
	return fmt.Sprintf("Find the latest news about \"%s\" from the past 24 hours. Focus on new developments, sales updates, or investor activity.", term)
}
