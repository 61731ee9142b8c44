// Package prefs holds the display preference. Exactly one theme is active
// at any time; the renderer reads it on every view.
package prefs

import (
	"context"
	"errors"
	"sync"

	"github.com/fitbite/fitbite-bot/internal/logger"
	"github.com/fitbite/fitbite-bot/internal/storage"
)

// Theme is the binary display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Store persists the theme under its own key.
type Store struct {
	store storage.Store
	key   string

	mu    sync.RWMutex
	theme Theme
}

// New creates a store defaulting to light.
func New(store storage.Store, key string) *Store {
	return &Store{
		store: store,
		key:   key,
		theme: ThemeLight,
	}
}

// Load restores the persisted theme. Anything unrecognized falls back to
// light without rewriting the stored value.
func (s *Store) Load(ctx context.Context) {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to load theme preference", "error", err)
		}
		return
	}

	if t := Theme(raw); t == ThemeLight || t == ThemeDark {
		s.mu.Lock()
		s.theme = t
		s.mu.Unlock()
	}
}

// Current returns the active theme.
func (s *Store) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Toggle flips the theme and persists the new value.
func (s *Store) Toggle(ctx context.Context) Theme {
	s.mu.Lock()
	if s.theme == ThemeLight {
		s.theme = ThemeDark
	} else {
		s.theme = ThemeLight
	}
	theme := s.theme
	s.mu.Unlock()

	if err := s.store.Set(ctx, s.key, string(theme)); err != nil {
		logger.Warn("Failed to persist theme preference", "error", err)
	}
	return theme
}
