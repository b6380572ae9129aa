package llm

import (
	"context"
	"errors"
)

// ErrNoChoices means the provider answered but gave nothing usable.
var ErrNoChoices = errors.New("no choices in response")

// ErrUpstreamStatus wraps a non-2xx answer from the provider.
var ErrUpstreamStatus = errors.New("provider returned an error status")

type SearchClient interface {
	Search(ctx context.Context, term string) (string, error)
}
