// Package mealcache holds the meal items a user has added today. The cache
// is valid only for the calendar day it was created on: a persisted record
// from an earlier day is discarded on load.
package mealcache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/fitbite/fitbite-bot/internal/domain"
	"github.com/fitbite/fitbite-bot/internal/logger"
	"github.com/fitbite/fitbite-bot/internal/storage"
	"github.com/fitbite/fitbite-bot/internal/utils"
)

// record is the persisted shape: the items plus the day they were added.
// An empty cache is never persisted, so "no record" and "empty meal" are
// deliberately the same thing and the expiry check stays a single compare.
type record struct {
	Items []domain.MealItem `json:"items"`
	Date  string            `json:"date"`
}

// Cache is an ordered sequence of meal items with day-scoped persistence.
type Cache struct {
	store storage.Store
	key   string
	now   func() time.Time
	onAdd func(domain.MealItem)

	mu    sync.RWMutex
	items []domain.MealItem
}

// Option configures a Cache.
type Option func(*Cache)

// WithNotify registers a callback invoked after every successful Add.
func WithNotify(fn func(domain.MealItem)) Option {
	return func(c *Cache) { c.onAdd = fn }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates an empty cache persisted under key.
func New(store storage.Store, key string, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		key:   key,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load restores today's persisted meal, if any. A record from another day
// is stale: it is dropped and the persisted copy removed, with no error
// surfaced to the user.
func (c *Cache) Load(ctx context.Context) {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to load meal cache", "error", err)
		}
		return
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		logger.Warn("Discarding unreadable meal cache record", "error", err)
		c.deleteRecord(ctx)
		return
	}

	if rec.Date != utils.DayKey(c.now()) {
		c.deleteRecord(ctx)
		return
	}

	c.mu.Lock()
	c.items = rec.Items
	c.mu.Unlock()
}

// Add appends the item, persists and notifies the observer.
func (c *Cache) Add(ctx context.Context, item domain.MealItem) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()

	c.persist(ctx)
	if c.onAdd != nil {
		c.onAdd(item)
	}
}

// RemoveAt removes the item at index. Out-of-range indexes are a no-op.
func (c *Cache) RemoveAt(ctx context.Context, index int) {
	c.mu.Lock()
	if index < 0 || index >= len(c.items) {
		c.mu.Unlock()
		return
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	c.mu.Unlock()

	c.persist(ctx)
}

// Clear empties the meal.
func (c *Cache) Clear(ctx context.Context) {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()

	c.persist(ctx)
}

// Items returns a copy of the current sequence in insertion order.
func (c *Cache) Items() []domain.MealItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]domain.MealItem, len(c.items))
	copy(items, c.items)
	return items
}

// Len returns the number of items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Totals sums calories and macros over the current sequence. Recomputed on
// every call from the items themselves, so it can never drift from them.
func (c *Cache) Totals() domain.MealTotals {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var t domain.MealTotals
	for _, item := range c.items {
		t.Calories += item.Calories
		t.Protein += item.Protein
		t.Carbs += item.Carbs
		t.Fat += item.Fat
	}
	return t
}

// persist writes the current sequence with today's day key, or removes the
// record entirely when the sequence is empty.
func (c *Cache) persist(ctx context.Context) {
	c.mu.RLock()
	items := make([]domain.MealItem, len(c.items))
	copy(items, c.items)
	c.mu.RUnlock()

	if len(items) == 0 {
		c.deleteRecord(ctx)
		return
	}

	data, err := json.Marshal(record{Items: items, Date: utils.DayKey(c.now())})
	if err != nil {
		logger.Error("Failed to encode meal cache", "error", err)
		return
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		logger.Warn("Failed to persist meal cache", "error", err)
	}
}

func (c *Cache) deleteRecord(ctx context.Context) {
	if err := c.store.Delete(ctx, c.key); err != nil {
		logger.Warn("Failed to remove meal cache record", "error", err)
	}
}
