package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"donkinwatch/internal/model"
)

type SettingsRepository struct {
	mu       sync.RWMutex
	store    KVStore
	settings model.Settings
}

func NewSettingsRepository(store KVStore) *SettingsRepository {
	return &SettingsRepository{store: store, settings: model.DefaultSettings()}
}

// Load reads the stored settings over the defaults. A stored record that is
// missing fields keeps the defaults for them; an unreadable one is ignored.
func (r *SettingsRepository) Load(ctx context.Context) model.Settings {
	settings := model.DefaultSettings()

	raw, ok, err := r.store.Load(ctx, SettingsKey)
	switch {
	case err != nil:
		slog.Warn("error loading settings, using defaults", "error", err)
	case ok:
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			slog.Warn("corrupt settings record, using defaults", "error", err)
			settings = model.DefaultSettings()
		} else if err := settings.Validate(); err != nil {
			slog.Warn("stored settings are invalid, using defaults", "error", err)
			settings = model.DefaultSettings()
		}
	}

	r.mu.Lock()
	r.settings = settings
	r.mu.Unlock()

	return settings
}

func (r *SettingsRepository) Get() model.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

// Save validates and replaces the whole settings record. Invalid settings
// leave the current record untouched.
func (r *SettingsRepository) Save(ctx context.Context, settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	r.settings = settings
	r.mu.Unlock()

	saveJSON(ctx, r.store, SettingsKey, settings)
	return nil
}
