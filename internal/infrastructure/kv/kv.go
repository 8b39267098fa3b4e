// Package kv defines the durable key-value storage the storefront session
// keeps its token set and cart partitions in.
package kv

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ChangeEvent is delivered when another session context changes a key
type ChangeEvent struct {
	Key      string `json:"key"`
	NewValue string `json:"new_value"`
	Deleted  bool   `json:"deleted"`
}

// Store is a string key-value store shared between session contexts.
//
// OnChange only reports writes made by other session contexts sharing the
// same storage, never the caller's own writes. Callbacks run on the
// notifying goroutine and must not block.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	OnChange(key string, fn func(ChangeEvent)) (unsubscribe func())
	Close() error
}

type subscription struct {
	origin string
	key    string
	fn     func(ChangeEvent)
}

// Hub fans change events out to the subscribers of every session context
// except the one that made the change.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]subscription
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[string]subscription)}
}

// Subscribe registers fn for changes to key made by origins other than origin
func (h *Hub) Subscribe(origin, key string, fn func(ChangeEvent)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()
	h.subs[id] = subscription{origin: origin, key: key, fn: fn}

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
		})
	}
}

// Publish delivers ev to every matching subscriber not owned by origin
func (h *Hub) Publish(origin string, ev ChangeEvent) {
	h.mu.RLock()
	targets := make([]func(ChangeEvent), 0, len(h.subs))
	for _, sub := range h.subs {
		if sub.origin != origin && sub.key == ev.Key {
			targets = append(targets, sub.fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range targets {
		fn(ev)
	}
}

// Len returns the number of live subscriptions
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// NewOrigin returns a fresh session context identifier
func NewOrigin() string {
	return uuid.NewString()
}
