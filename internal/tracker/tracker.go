package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"donkinwatch/internal/model"
	"donkinwatch/internal/pipeline"
	"donkinwatch/internal/repository"

	"github.com/samber/lo"
)

var (
	ErrRefreshInProgress = errors.New("refresh already in progress")
	ErrNotFound          = errors.New("news item not found")
)

type NewsView struct {
	model.NewsItem
	IsNew bool `json:"isNew"`
}

type Feed struct {
	Items  []NewsView
	Total  int
	Unseen int
}

// SearchView separates "nothing typed yet" from "typed but no match".
type SearchView struct {
	Query  string
	Prompt bool
	Items  []NewsView
}

func (v SearchView) Empty() bool {
	return !v.Prompt && len(v.Items) == 0
}

type RefreshResult struct {
	Added     int
	Results   int
	Failures  int
	Refreshed time.Time
}

// Tracker owns the reader-facing state: news, seen ids and settings.
type Tracker struct {
	news       *repository.NewsRepository
	settings   *repository.SettingsRepository
	store      repository.KVStore
	runner     pipeline.Runner
	terms      []string
	minRefresh time.Duration
	now        func() time.Time

	refreshing  atomic.Bool
	mu          sync.Mutex
	lastRefresh time.Time
}

func New(store repository.KVStore, runner pipeline.Runner, terms []string, minRefresh time.Duration) *Tracker {
	return &Tracker{
		news:       repository.NewNewsRepository(store),
		settings:   repository.NewSettingsRepository(store),
		store:      store,
		runner:     runner,
		terms:      terms,
		minRefresh: minRefresh,
		now:        time.Now,
	}
}

// Start loads persisted state, seeding the news list on first run.
func (t *Tracker) Start(ctx context.Context) {
	t.news.LoadOrSeed(ctx, SeedItems())
	t.settings.Load(ctx)

	raw, ok, err := t.store.Load(ctx, repository.LastRefreshKey)
	if err != nil {
		slog.Warn("error loading last refresh time", "error", err)
		return
	}
	if !ok {
		return
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("corrupt last refresh time", "value", raw, "error", err)
		return
	}

	t.mu.Lock()
	t.lastRefresh = time.UnixMilli(millis)
	t.mu.Unlock()
}

func (t *Tracker) Feed() Feed {
	items, seen := t.news.ListWithSeen()

	feed := Feed{Items: make([]NewsView, len(items)), Total: len(items)}
	for i, item := range items {
		feed.Items[i] = NewsView{NewsItem: item, IsNew: !seen[i]}
		if !seen[i] {
			feed.Unseen++
		}
	}
	return feed
}

// Open returns the item and marks it as seen.
func (t *Tracker) Open(ctx context.Context, id int64) (NewsView, error) {
	item, ok := t.news.Get(id)
	if !ok {
		return NewsView{}, ErrNotFound
	}
	t.news.MarkSeen(ctx, id)
	return NewsView{NewsItem: item}, nil
}

func (t *Tracker) MarkSeen(ctx context.Context, id int64) int {
	t.news.MarkSeen(ctx, id)
	return t.news.UnseenCount()
}

func (t *Tracker) ClearArchive(ctx context.Context) {
	t.news.ClearAll(ctx)
}

func (t *Tracker) Search(query string) SearchView {
	if strings.TrimSpace(query) == "" {
		return SearchView{Query: query, Prompt: true, Items: []NewsView{}}
	}
	return SearchView{Query: query, Items: t.views(t.news.Search(query))}
}

func (t *Tracker) Settings() model.Settings {
	return t.settings.Get()
}

func (t *Tracker) SaveSettings(ctx context.Context, s model.Settings) error {
	return t.settings.Save(ctx, s)
}

func (t *Tracker) LastRefresh() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRefresh
}

// IngestResults adds search results to the news list and returns how many
// were new.
func (t *Tracker) IngestResults(ctx context.Context, results []model.SearchResult) int {
	items := lo.Map(results, func(r model.SearchResult, _ int) model.NewsItem {
		return ItemFromResult(r)
	})
	return t.news.Ingest(ctx, items)
}

// Refresh runs a search for the configured terms and ingests the results.
// Only one refresh runs at a time; overlapping calls get
// ErrRefreshInProgress.
func (t *Tracker) Refresh(ctx context.Context) (*RefreshResult, error) {
	if !t.refreshing.CompareAndSwap(false, true) {
		return nil, ErrRefreshInProgress
	}
	defer t.refreshing.Store(false)

	outcome, err := t.runner.Run(ctx, t.terms)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	now := t.now()
	res := &RefreshResult{
		Added:     t.IngestResults(ctx, outcome.Results),
		Results:   len(outcome.Results),
		Failures:  len(outcome.Failures),
		Refreshed: now,
	}

	t.mu.Lock()
	t.lastRefresh = now
	t.mu.Unlock()

	if err := t.store.Save(ctx, repository.LastRefreshKey, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		slog.Warn("error saving last refresh time", "error", err)
	}

	slog.Info("news refreshed", "added", res.Added, "results", res.Results, "failures", res.Failures)
	return res, nil
}

// RefreshIfStale refreshes only when the last refresh is older than the
// minimum interval. It returns nil, nil when nothing was done.
func (t *Tracker) RefreshIfStale(ctx context.Context) (*RefreshResult, error) {
	last := t.LastRefresh()
	if !last.IsZero() && t.now().Sub(last) <= t.minRefresh {
		return nil, nil
	}
	if t.refreshing.Load() {
		return nil, nil
	}
	return t.Refresh(ctx)
}

func (t *Tracker) views(items []model.NewsItem) []NewsView {
	out := make([]NewsView, len(items))
	for i, item := range items {
		out[i] = NewsView{NewsItem: item, IsNew: !t.news.IsSeen(item.ID)}
	}
	return out
}
