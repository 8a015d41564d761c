package cache

import (
	"context"
	"sync"
	"time"

	"github.com/samber/mo"
)

// entry is a single cached value and its absolute expiry.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is the in-process Store. Entries are only removed lazily, when a read finds them expired.
// Each process has its own copy, so it fits single-instance deployments.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     Clock
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore. A nil clock means time.Now.
func NewMemoryStore(now Clock) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get returns the value for key only while now < expiresAt.
func (m *MemoryStore) Get(_ context.Context, key string) (mo.Option[[]byte], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return mo.None[[]byte](), nil
	}
	if !m.now().Before(e.expiresAt) {
		// 期限切れのエントリは読み取り時に削除する
		delete(m.entries, key)
		return mo.None[[]byte](), nil
	}
	return mo.Some(e.value), nil
}

// Set stores val under key, replacing any previous entry.
func (m *MemoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{value: val, expiresAt: m.now().Add(ttl)}
	return nil
}

// Len reports how many entries are held, including expired ones not read since they expired.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
