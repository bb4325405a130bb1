package storage

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Storage. A positive quota caps the total bytes of
// keys plus values, mirroring the fixed budget browsers give local storage.
type Memory struct {
	mu       sync.RWMutex
	items    map[string]string
	quota    int
	disabled bool
}

// NewMemory returns an empty store. quota <= 0 means unlimited.
func NewMemory(quota int) *Memory {
	return &Memory{
		items: make(map[string]string),
		quota: quota,
	}
}

func (m *Memory) GetItem(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.disabled {
		return "", ErrUnavailable
	}
	value, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *Memory) SetItem(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disabled {
		return ErrUnavailable
	}
	if m.quota > 0 {
		used := m.usedLocked() - m.sizeLocked(key) + len(key) + len(value)
		if used > m.quota {
			return fmt.Errorf("writing %q (%d bytes, quota %d): %w", key, len(value), m.quota, ErrQuotaExceeded)
		}
	}
	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disabled {
		return ErrUnavailable
	}
	delete(m.items, key)
	return nil
}

// Ping reports ErrUnavailable while the store is disabled.
func (m *Memory) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.disabled {
		return ErrUnavailable
	}
	return nil
}

// Disable makes every subsequent call fail with ErrUnavailable.
func (m *Memory) Disable() {
	m.mu.Lock()
	m.disabled = true
	m.mu.Unlock()
}

// Enable reverses Disable. Stored items are kept.
func (m *Memory) Enable() {
	m.mu.Lock()
	m.disabled = false
	m.mu.Unlock()
}

func (m *Memory) usedLocked() int {
	total := 0
	for k, v := range m.items {
		total += len(k) + len(v)
	}
	return total
}

func (m *Memory) sizeLocked(key string) int {
	value, ok := m.items[key]
	if !ok {
		return 0
	}
	return len(key) + len(value)
}
