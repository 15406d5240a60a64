package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore is an in-process Store used when Redis is not configured or
// not reachable. Entries expire after the TTL given at construction; the
// per-call ttl of Set is capped by it.
type MemoryStore struct {
	entries *expirable.LRU[string, memoryEntry]
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore returns a MemoryStore holding at most size entries.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: expirable.NewLRU[string, memoryEntry](size, nil, ttl),
	}
}

func (m *MemoryStore) Close() error {
	m.entries.Purge()
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, ok := m.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.entries.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.entries.Add(key, entry)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.entries.Remove(key)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.entries.Purge()
	return nil
}

// Len returns the number of live entries.
func (m *MemoryStore) Len() int {
	return m.entries.Len()
}
