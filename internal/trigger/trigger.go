package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"donkinwatch/internal/metrics"
	"donkinwatch/internal/model"
	"donkinwatch/internal/pipeline"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var ErrRunInProgress = errors.New("a search run is already in progress")

type Notifier interface {
	Notify(ctx context.Context, results []model.SearchResult) error
}

// Ingester receives every result of a run so readers see it as news.
type Ingester interface {
	IngestResults(ctx context.Context, results []model.SearchResult) int
}

type Report struct {
	RunID        string
	HasUpdates   bool
	NewsCount    int
	TotalResults int
	Updates      []model.SearchResult
	Failures     []pipeline.Failure
	Notified     bool
	Ingested     int
	Timestamp    time.Time
}

type Service struct {
	runner   pipeline.Runner
	terms    []string
	locker   Locker
	notifier Notifier
	ingester Ingester
	now      func() time.Time
}

type Option func(*Service)

// WithNotifier enables digest emails. Without it runs only report.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithIngester(i Ingester) Option {
	return func(s *Service) { s.ingester = i }
}

func WithLocker(l Locker) Option {
	return func(s *Service) { s.locker = l }
}

func NewService(runner pipeline.Runner, terms []string, opts ...Option) *Service {
	s := &Service{
		runner: runner,
		terms:  terms,
		locker: &LocalLocker{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run searches every configured term once and notifies when any result
// carries new information.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID)

	ok, err := s.locker.Acquire(ctx, runID)
	if err != nil {
		metrics.TriggerRuns.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		metrics.TriggerRuns.WithLabelValues("busy").Inc()
		return nil, ErrRunInProgress
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), runID); err != nil {
			log.Warn("error releasing run lock", "error", err)
		}
	}()

	log.Info("search run started", "terms", len(s.terms))

	outcome, err := s.runner.Run(ctx, s.terms)
	if err != nil {
		metrics.TriggerRuns.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("search: %w", err)
	}

	updates := lo.Filter(outcome.Results, func(r model.SearchResult, _ int) bool {
		return r.HasNewInfo
	})

	report := &Report{
		RunID:        runID,
		HasUpdates:   len(updates) > 0,
		NewsCount:    len(updates),
		TotalResults: len(outcome.Results),
		Updates:      updates,
		Failures:     outcome.Failures,
		Timestamp:    s.now(),
	}

	log.Info("search run finished", "results", report.TotalResults, "with_new_info", report.NewsCount, "failures", len(report.Failures))

	if s.ingester != nil {
		report.Ingested = s.ingester.IngestResults(ctx, outcome.Results)
	}

	switch {
	case !report.HasUpdates:
	case s.notifier == nil:
		metrics.Notifications.WithLabelValues("skipped").Inc()
		log.Info("mail transport not configured, skipping notification")
	default:
		if err := s.notifier.Notify(ctx, updates); err != nil {
			metrics.Notifications.WithLabelValues("failed").Inc()
			metrics.TriggerRuns.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("notify: %w", err)
		}
		metrics.Notifications.WithLabelValues("sent").Inc()
		report.Notified = true
		log.Info("email notification sent", "updates", report.NewsCount)
	}

	if report.HasUpdates {
		metrics.TriggerRuns.WithLabelValues("updates").Inc()
	} else {
		metrics.TriggerRuns.WithLabelValues("no_updates").Inc()
	}

	return report, nil
}
