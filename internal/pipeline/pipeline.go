package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"donkinwatch/internal/metrics"
	"donkinwatch/internal/model"
	"donkinwatch/pkg/llm"
)

// FailurePolicy decides what a hard search failure does to the rest of a run.
// Empty responses are always skipped silently.
type FailurePolicy int

const (
	// SkipOnError records the failure and moves on to the next term.
	SkipOnError FailurePolicy = iota
	// AbortOnError stops the run at the first hard failure.
	AbortOnError
)

func ParsePolicy(raw string) FailurePolicy {
	if raw == "abort" {
		return AbortOnError
	}
	return SkipOnError
}

type Failure struct {
	SearchTerm string
	Err        error
}

type Outcome struct {
	Results  []model.SearchResult
	Failures []Failure
}

// Runner searches a list of terms.
type Runner interface {
	Run(ctx context.Context, terms []string) (*Outcome, error)
}

type Pipeline struct {
	client llm.SearchClient
	delay  time.Duration
	policy FailurePolicy
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
}

func New(client llm.SearchClient, delay time.Duration, policy FailurePolicy) *Pipeline {
	return &Pipeline{
		client: client,
		delay:  delay,
		policy: policy,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Run queries each term in order, one at a time, pausing between calls.
// Results keep the order of their terms.
func (p *Pipeline) Run(ctx context.Context, terms []string) (*Outcome, error) {
	out := &Outcome{Results: []model.SearchResult{}}

	for i, term := range terms {
		if i > 0 {
			if err := p.sleep(ctx, p.delay); err != nil {
				return nil, err
			}
		}

		summary, err := p.client.Search(ctx, term)
		switch {
		case err == nil:
			metrics.SearchCalls.WithLabelValues("ok").Inc()
			out.Results = append(out.Results, model.NewSearchResult(term, summary, p.now()))
		case errors.Is(err, llm.ErrNoChoices):
			metrics.SearchCalls.WithLabelValues("empty").Inc()
			slog.Debug("search returned no choices, skipping term", "term", term)
		default:
			metrics.SearchCalls.WithLabelValues("error").Inc()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if p.policy == AbortOnError {
				// An error status carries no choices, so it skips like an
				// empty answer. Transport failures abort.
				if errors.Is(err, llm.ErrUpstreamStatus) {
					slog.Warn("search returned error status, skipping term", "term", term, "error", err)
					continue
				}
				return nil, fmt.Errorf("search %q: %w", term, err)
			}
			slog.Warn("search failed, continuing with next term", "term", term, "error", err)
			out.Failures = append(out.Failures, Failure{SearchTerm: term, Err: err})
		}
	}

	return out, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
