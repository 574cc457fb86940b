package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/flatfa/index"
)

// IndexStore persists an index for one source file in a Store.
type IndexStore struct {
	store Store
	ns    string
	now   func() time.Time
}

// NewIndexStore returns the index store of source.
func NewIndexStore(store Store, source string) (*IndexStore, error) {
	ns, err := Namespace(source)
	if err != nil {
		return nil, err
	}
	return &IndexStore{store: store, ns: ns, now: time.Now}, nil
}

// Namespace returns the namespace the index lives in.
func (s *IndexStore) Namespace() string { return s.ns }

// ModTime returns the commit time of the stored index.
// ok is false when no committed index exists.
func (s *IndexStore) ModTime(ctx context.Context) (time.Time, bool, error) {
	v, err := s.store.Get(ctx, s.ns, CommitKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	t, err := DecodeTime(v)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// Load reads every header entry of the namespace.
func (s *IndexStore) Load(ctx context.Context) (index.Index, error) {
	idx := index.Index{}
	err := s.store.Scan(ctx, s.ns, IndexPrefix, func(key string, value []byte) error {
		header, ok := HeaderFromKey(key)
		if !ok {
			return nil
		}
		span, err := DecodeSpan(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		idx[header] = span
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Save writes every entry and then the commit marker. A crash before the
// marker is written leaves the namespace uncommitted, hence stale.
func (s *IndexStore) Save(ctx context.Context, idx index.Index) error {
	for _, header := range idx.Keys() {
		if err := s.store.Put(ctx, s.ns, HeaderKey(header), EncodeSpan(idx[header])); err != nil {
			return fmt.Errorf("put %s: %w", header, err)
		}
	}
	return s.store.Put(ctx, s.ns, CommitKey, EncodeTime(s.now()))
}

// Remove deletes the commit marker first, then every header entry.
func (s *IndexStore) Remove(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.ns, CommitKey); err != nil {
		return err
	}

	var keys []string
	err := s.store.Scan(ctx, s.ns, IndexPrefix, func(key string, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.store.Delete(ctx, s.ns, key); err != nil {
			return err
		}
	}
	return nil
}

// String returns the namespace.
func (s *IndexStore) String() string { return s.ns }
