package profile

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable is returned by backends that cannot reach their storage.
var ErrUnavailable = errors.New("profile storage unavailable")

// Backend is a string key/value store.
type Backend interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes all given keys. Missing keys are not an error.
	Remove(ctx context.Context, keys ...string) error
}

// MemoryBackend keeps values in a map. Safe for concurrent use.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates an empty MemoryBackend, optionally seeded.
func NewMemoryBackend(seed map[string]string) *MemoryBackend {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemoryBackend{values: values}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryBackend) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Unavailable is a Backend whose storage is disabled. Every call fails
// with ErrUnavailable.
type Unavailable struct {
	// Cause is wrapped into every returned error when set.
	Cause error
}

var _ Backend = Unavailable{}

func (u Unavailable) err() error {
	if u.Cause == nil {
		return ErrUnavailable
	}
	return errors.Join(ErrUnavailable, u.Cause)
}

func (u Unavailable) Get(context.Context, string) (string, bool, error) { return "", false, u.err() }
func (u Unavailable) Set(context.Context, string, string) error         { return u.err() }
func (u Unavailable) Remove(context.Context, ...string) error           { return u.err() }
