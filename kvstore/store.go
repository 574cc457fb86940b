package kvstore

import (
	"context"
	"errors"
	"os"
	"slices"
	"strings"
	"sync"
)

// ErrNotFound is returned when a key does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
var ErrNotFound = os.ErrNotExist

// ErrStopScan may be returned by a Scan callback to end the scan early
// without error.
var ErrStopScan = errors.New("stop scan")

// Store is a namespaced key-value store.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value of key in ns, or ErrNotFound.
	Get(ctx context.Context, ns, key string) ([]byte, error)
	// Put writes key in ns, replacing any previous value.
	Put(ctx context.Context, ns, key string, value []byte) error
	// Delete removes key from ns. Deleting a missing key is not an error.
	Delete(ctx context.Context, ns, key string) error
	// Scan calls fn for every key in ns that starts with prefix.
	Scan(ctx context.Context, ns, prefix string, fn func(key string, value []byte) error) error
}

// MemoryStore is an in-memory Store implementation.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, ns, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[ns][key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryStore) Put(_ context.Context, ns, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.data[ns]
	if !ok {
		bucket = make(map[string][]byte)
		m.data[ns] = bucket
	}
	bucket[key] = slices.Clone(value)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, ns, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[ns], key)
	return nil
}

// Scan visits matching keys in sorted order on a snapshot of ns.
func (m *MemoryStore) Scan(ctx context.Context, ns, prefix string, fn func(key string, value []byte) error) error {
	m.mu.RLock()
	keys := make([]string, 0, len(m.data[ns]))
	values := make(map[string][]byte, len(m.data[ns]))
	for k, v := range m.data[ns] {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
			values[k] = slices.Clone(v)
		}
	}
	m.mu.RUnlock()

	slices.Sort(keys)
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(k, values[k]); err != nil {
			if errors.Is(err, ErrStopScan) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Len returns the number of keys in ns.
func (m *MemoryStore) Len(ns string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[ns])
}
