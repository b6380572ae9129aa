package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"donkinwatch/internal/metrics"
	"donkinwatch/internal/model"
)

// NewsRepository keeps news items in insertion order together with the set
// of ids the reader has opened. Every mutation writes through to the store;
// a failed write is logged and the in-memory state stays authoritative.
type NewsRepository struct {
	// persistMu orders snapshot and save across writers so an older
	// snapshot never lands after a newer one. Taken before mu.
	persistMu sync.Mutex
	mu        sync.RWMutex
	store     KVStore
	items     []model.NewsItem
	index     map[int64]int
	seen      map[int64]struct{}
}

func NewNewsRepository(store KVStore) *NewsRepository {
	return &NewsRepository{
		store: store,
		index: make(map[int64]int),
		seen:  make(map[int64]struct{}),
	}
}

// Load replaces the in-memory state with the persisted records. Missing or
// corrupt records load as empty.
func (r *NewsRepository) Load(ctx context.Context) {
	var items []model.NewsItem
	if !loadJSON(ctx, r.store, NewsKey, &items) {
		items = nil
	}

	var seenIDs []int64
	if !loadJSON(ctx, r.store, SeenKey, &seenIDs) {
		seenIDs = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make([]model.NewsItem, 0, len(items))
	r.index = make(map[int64]int, len(items))
	for _, item := range items {
		if _, dup := r.index[item.ID]; dup {
			continue
		}
		r.index[item.ID] = len(r.items)
		r.items = append(r.items, item)
	}

	r.seen = make(map[int64]struct{}, len(seenIDs))
	for _, id := range seenIDs {
		r.seen[id] = struct{}{}
	}
}

// LoadOrSeed loads persisted state and, when no items exist, stores seed.
func (r *NewsRepository) LoadOrSeed(ctx context.Context, seed []model.NewsItem) {
	r.Load(ctx)

	if r.Len() > 0 {
		return
	}

	added := r.Ingest(ctx, seed)
	slog.Info("seeded news repository", "count", added)
}

func (r *NewsRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// List returns all items, newest first. Items with equal timestamps keep
// their insertion order.
func (r *NewsRepository) List() []model.NewsItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedByRecency(r.items)
}

// ListWithSeen is List plus, per item, whether it has been seen, read
// under one lock.
func (r *NewsRepository) ListWithSeen() ([]model.NewsItem, []bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := sortedByRecency(r.items)
	seen := make([]bool, len(items))
	for i, item := range items {
		_, seen[i] = r.seen[item.ID]
	}
	return items, seen
}

func (r *NewsRepository) Get(id int64) (model.NewsItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return model.NewsItem{}, false
	}
	return r.items[i], true
}

// Ingest adds the items whose id is not yet present and returns how many
// were added. Existing items are never replaced.
func (r *NewsRepository) Ingest(ctx context.Context, items []model.NewsItem) int {
	if len(items) == 0 {
		return 0
	}

	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	r.mu.Lock()
	added := 0
	for _, item := range items {
		if _, exists := r.index[item.ID]; exists {
			continue
		}
		item.Sources = slices.Clone(item.Sources)
		r.index[item.ID] = len(r.items)
		r.items = append(r.items, item)
		added++
	}
	snapshot := slices.Clone(r.items)
	r.mu.Unlock()

	if added > 0 {
		saveJSON(ctx, r.store, NewsKey, snapshot)
	}
	return added
}

// MarkSeen records id as opened. The id does not need to match a stored item.
func (r *NewsRepository) MarkSeen(ctx context.Context, id int64) {
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	r.mu.Lock()
	if _, ok := r.seen[id]; ok {
		r.mu.Unlock()
		return
	}
	r.seen[id] = struct{}{}
	ids := r.seenIDsLocked()
	r.mu.Unlock()

	saveJSON(ctx, r.store, SeenKey, ids)
}

func (r *NewsRepository) IsSeen(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.seen[id]
	return ok
}

func (r *NewsRepository) SeenIDs() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seenIDsLocked()
}

func (r *NewsRepository) UnseenCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if _, ok := r.seen[item.ID]; !ok {
			count++
		}
	}
	return count
}

// ClearAll empties both the items and the seen set.
func (r *NewsRepository) ClearAll(ctx context.Context) {
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	r.mu.Lock()
	r.items = nil
	r.index = make(map[int64]int)
	r.seen = make(map[int64]struct{})
	r.mu.Unlock()

	saveJSON(ctx, r.store, NewsKey, []model.NewsItem{})
	saveJSON(ctx, r.store, SeenKey, []int64{})
}

// Search matches query case-insensitively against title, summary, content
// and category. A blank query matches everything.
func (r *NewsRepository) Search(query string) []model.NewsItem {
	q := strings.ToLower(strings.TrimSpace(query))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if q == "" {
		return sortedByRecency(r.items)
	}

	var matches []model.NewsItem
	for _, item := range r.items {
		if matchesQuery(item, q) {
			matches = append(matches, item)
		}
	}
	return sortedByRecency(matches)
}

func (r *NewsRepository) seenIDsLocked() []int64 {
	ids := make([]int64, 0, len(r.seen))
	for id := range r.seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func matchesQuery(item model.NewsItem, q string) bool {
	return strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.Summary), q) ||
		strings.Contains(strings.ToLower(item.Content), q) ||
		strings.Contains(strings.ToLower(item.Category), q)
}

func sortedByRecency(items []model.NewsItem) []model.NewsItem {
	out := slices.Clone(items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	if out == nil {
		out = []model.NewsItem{}
	}
	return out
}

func loadJSON(ctx context.Context, store KVStore, key string, dst any) bool {
	raw, ok, err := store.Load(ctx, key)
	if err != nil {
		slog.Warn("error loading record, using empty value", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Warn("corrupt record, using empty value", "key", key, "error", err)
		return false
	}
	return true
}

func saveJSON(ctx context.Context, store KVStore, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("error encoding record", "key", key, "error", err)
		metrics.StoreSaveFailures.WithLabelValues(key).Inc()
		return
	}

	if err := store.Save(ctx, key, string(data)); err != nil {
		slog.Warn("error saving record", "key", key, "error", err)
		metrics.StoreSaveFailures.WithLabelValues(key).Inc()
	}
}
