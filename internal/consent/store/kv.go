package store

import (
	"sync"
	"time"

	"consentgate/internal/sentinel"
)

// KV is the opaque single-slot persistence surface the consent store writes
// through. The cookie adapter implements it for real traffic; MemoryKV backs
// tests and headless use.
//
// Error Contract:
// - Read returns sentinel.ErrNotFound when no value exists for the key
// - Other methods return nil on success or wrapped errors on failure
type KV interface {
	Write(key, value string, ttlDays int) error
	Read(key string) (string, error)
	Erase(key string) error
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryKV stores values in memory with day-granular expiry.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryKV constructs an empty in-memory key-value store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryKV) Write(key, value string, ttlDays int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memoryEntry{value: value}
	if ttlDays > 0 {
		entry.expiresAt = m.now().Add(time.Duration(ttlDays) * 24 * time.Hour)
	}
	m.entries[key] = entry
	return nil
}

func (m *MemoryKV) Read(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	if !entry.expiresAt.IsZero() && entry.expiresAt.Before(m.now()) {
		return "", sentinel.ErrNotFound
	}
	return entry.value, nil
}

func (m *MemoryKV) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
