package tracker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"donkinwatch/internal/model"
	"donkinwatch/internal/pipeline"
	"donkinwatch/internal/repository"

	"github.com/go-playground/assert/v2"
)

type stubRunner struct {
	outcome *pipeline.Outcome
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (s *stubRunner) Run(ctx context.Context, terms []string) (*pipeline.Outcome, error) {
	s.calls++
	if s.started != nil {
		close(s.started)
		s.started = nil
	}
	if s.release != nil {
		<-s.release
	}
	return s.outcome, s.err
}

var refreshTerms = []string{"Donkin mine buyer"}

func result(term, summary string) model.SearchResult {
	return model.NewSearchResult(term, summary, time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC))
}

func newTestTracker(runner pipeline.Runner) (*Tracker, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	tr := New(store, runner, refreshTerms, 5*time.Minute)
	tr.Start(context.Background())
	return tr, store
}

func TestStartSeedsOnFirstRun(t *testing.T) {
	tr, _ := newTestTracker(&stubRunner{})

	feed := tr.Feed()
	assert.Equal(t, 3, feed.Total)
	assert.Equal(t, 3, feed.Unseen)
	assert.Equal(t, int64(1), feed.Items[0].ID)
	assert.Equal(t, true, feed.Items[0].IsNew)
	assert.Equal(t, model.DefaultSettings(), tr.Settings())
}

func TestOpenMarksSeen(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(&stubRunner{})

	item, err := tr.Open(ctx, 2)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Morien Resources Quarterly Update", item.Title)

	feed := tr.Feed()
	assert.Equal(t, 2, feed.Unseen)
	for _, v := range feed.Items {
		assert.Equal(t, v.ID != 2, v.IsNew)
	}

	_, err = tr.Open(ctx, 404)
	assert.Equal(t, ErrNotFound, err)
}

func TestFeedCountsMatchItemsUnderConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(&stubRunner{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			r := result("Donkin mine buyer", strings.Repeat("x", i+1))
			tr.IngestResults(ctx, []model.SearchResult{r})
			tr.MarkSeen(ctx, ItemFromResult(r).ID)
		}
	}()

	for i := 0; i < 200; i++ {
		feed := tr.Feed()
		fresh := 0
		for _, v := range feed.Items {
			if v.IsNew {
				fresh++
			}
		}
		assert.Equal(t, len(feed.Items), feed.Total)
		assert.Equal(t, fresh, feed.Unseen)
	}
	wg.Wait()
}

func TestMarkSeenUnknownID(t *testing.T) {
	tr, _ := newTestTracker(&stubRunner{})
	assert.Equal(t, 3, tr.MarkSeen(context.Background(), 999))
}

func TestSearchPromptAndEmptyStates(t *testing.T) {
	tr, _ := newTestTracker(&stubRunner{})

	prompt := tr.Search("   ")
	assert.Equal(t, true, prompt.Prompt)
	assert.Equal(t, false, prompt.Empty())
	assert.Equal(t, 0, len(prompt.Items))

	none := tr.Search("lithium")
	assert.Equal(t, false, none.Prompt)
	assert.Equal(t, true, none.Empty())

	hits := tr.Search("MORIEN")
	assert.Equal(t, 1, len(hits.Items))
	assert.Equal(t, int64(2), hits.Items[0].ID)
}

func TestRefreshIngestsResults(t *testing.T) {
	ctx := context.Background()
	runner := &stubRunner{outcome: &pipeline.Outcome{Results: []model.SearchResult{
		result("Donkin mine buyer", "A buyer emerged."),
	}}}
	tr, store := newTestTracker(runner)
	tr.now = func() time.Time { return time.Date(2025, 8, 18, 12, 5, 0, 0, time.UTC) }

	res, err := tr.Refresh(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 4, tr.Feed().Total)
	assert.Equal(t, "Donkin mine buyer", tr.Feed().Items[0].Title)

	raw, ok, _ := store.Load(ctx, repository.LastRefreshKey)
	assert.Equal(t, true, ok)
	assert.Equal(t, "1755518700000", raw)

	res, err = tr.Refresh(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 4, tr.Feed().Total)
}

func TestRefreshRejectsOverlap(t *testing.T) {
	runner := &stubRunner{
		outcome: &pipeline.Outcome{Results: []model.SearchResult{}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	started := runner.started
	tr, _ := newTestTracker(runner)

	done := make(chan error, 1)
	go func() {
		_, err := tr.Refresh(context.Background())
		done <- err
	}()
	<-started

	_, err := tr.Refresh(context.Background())
	assert.Equal(t, ErrRefreshInProgress, err)

	res, err := tr.RefreshIfStale(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, (*RefreshResult)(nil), res)

	close(runner.release)
	assert.Equal(t, nil, <-done)
	assert.Equal(t, 1, runner.calls)
}

func TestRefreshIfStale(t *testing.T) {
	ctx := context.Background()
	runner := &stubRunner{outcome: &pipeline.Outcome{Results: []model.SearchResult{}}}
	tr, _ := newTestTracker(runner)

	now := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }

	res, err := tr.RefreshIfStale(ctx)
	assert.Equal(t, nil, err)
	assert.NotEqual(t, (*RefreshResult)(nil), res)
	assert.Equal(t, 1, runner.calls)

	now = now.Add(4 * time.Minute)
	res, _ = tr.RefreshIfStale(ctx)
	assert.Equal(t, (*RefreshResult)(nil), res)
	assert.Equal(t, 1, runner.calls)

	now = now.Add(2 * time.Minute)
	tr.RefreshIfStale(ctx)
	assert.Equal(t, 2, runner.calls)
}

func TestLastRefreshSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	runner := &stubRunner{outcome: &pipeline.Outcome{Results: []model.SearchResult{}}}
	tr, store := newTestTracker(runner)
	refreshedAt := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return refreshedAt }
	tr.Refresh(ctx)

	restarted := New(store, runner, refreshTerms, 5*time.Minute)
	restarted.Start(ctx)
	assert.Equal(t, refreshedAt.UnixMilli(), restarted.LastRefresh().UnixMilli())
}

func TestRefreshFailure(t *testing.T) {
	tr, _ := newTestTracker(&stubRunner{err: errors.New("search API failed: 500")})

	_, err := tr.Refresh(context.Background())
	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, tr.LastRefresh().IsZero())
	assert.Equal(t, 3, tr.Feed().Total)
}

func TestClearArchive(t *testing.T) {
	ctx := context.Background()
	tr, store := newTestTracker(&stubRunner{})
	tr.Open(ctx, 1)

	tr.ClearArchive(ctx)

	feed := tr.Feed()
	assert.Equal(t, 0, feed.Total)
	assert.Equal(t, 0, feed.Unseen)

	raw, _, _ := store.Load(ctx, repository.SeenKey)
	assert.Equal(t, "[]", raw)
}

func TestSaveSettingsValidates(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(&stubRunner{})

	err := tr.SaveSettings(ctx, model.Settings{Email: "broken@", Frequency: model.FrequencyDaily, Theme: model.ThemeAuto})
	assert.Equal(t, model.ErrInvalidEmail, err)
	assert.Equal(t, model.DefaultSettings(), tr.Settings())
}

func TestItemFromResult(t *testing.T) {
	long := strings.Repeat("ab", 150)
	r := result("Donkin mine buyer", long)

	item := ItemFromResult(r)
	again := ItemFromResult(r)
	other := ItemFromResult(result("Donkin mine investor", long))

	assert.Equal(t, item.ID, again.ID)
	assert.NotEqual(t, item.ID, other.ID)
	assert.Equal(t, true, item.ID > 0 && item.ID <= maxSafeID)
	assert.Equal(t, "Donkin mine buyer", item.Title)
	assert.Equal(t, long, item.Content)
	assert.Equal(t, 203, len(item.Summary))
	assert.Equal(t, model.SearchResultsCategory, item.Category)
	assert.Equal(t, time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC).UnixMilli(), item.Timestamp)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "ééé...", Truncate("éééé", 3))
}
