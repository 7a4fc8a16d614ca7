package cache

import (
	"bytes"
	"context"
	"sync"
	"time"
)

type memEntry struct {
	value  []byte
	expiry time.Time
}

// Memory is a process-local store. Values are copied in and out so callers
// can never mutate what is cached.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	data, _, ok := m.GetWithExpiry(ctx, key)
	return data, ok
}

func (m *Memory) GetWithExpiry(_ context.Context, key string) ([]byte, time.Time, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, time.Time{}, false
	}
	if !m.now().Before(e.expiry) {
		m.evict(key)
		return nil, time.Time{}, false
	}
	return bytes.Clone(e.value), e.expiry, true
}

// evict drops key only if it is still expired; a Set may have replaced it
// since the read lock was released.
func (m *Memory) evict(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok && !m.now().Before(e.expiry) {
		delete(m.entries, key)
	}
}

func (m *Memory) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memEntry{value: bytes.Clone(data), expiry: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memEntry)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
