package kv

import (
	"context"
	"sync"
)

type memoryData struct {
	mu     sync.RWMutex
	values map[string]string
}

// Memory is an in-process Store. Sessions created with Link share values
// and see each other's changes, the way browser tabs share local storage.
type Memory struct {
	data   *memoryData
	hub    *Hub
	origin string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		data:   &memoryData{values: make(map[string]string)},
		hub:    NewHub(),
		origin: NewOrigin(),
	}
}

// Link returns another session context over the same storage
func (m *Memory) Link() *Memory {
	return &Memory{
		data:   m.data,
		hub:    m.hub,
		origin: NewOrigin(),
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()
	value, ok := m.data.values[key]
	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.data.mu.Lock()
	m.data.values[key] = value
	m.data.mu.Unlock()

	m.hub.Publish(m.origin, ChangeEvent{Key: key, NewValue: value})
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.data.mu.Lock()
	_, existed := m.data.values[key]
	delete(m.data.values, key)
	m.data.mu.Unlock()

	if existed {
		m.hub.Publish(m.origin, ChangeEvent{Key: key, Deleted: true})
	}
	return nil
}

func (m *Memory) OnChange(key string, fn func(ChangeEvent)) func() {
	return m.hub.Subscribe(m.origin, key, fn)
}

func (m *Memory) Close() error {
	return nil
}
