package backend

import (
	"context"
	"fmt"

	"github.com/hupe1980/flatfa/index"
	"github.com/hupe1980/flatfa/kvstore"
)

type kvBackend struct {
	store kvstore.Store
}

// KV returns a backend that keeps the index in store and memory-maps the
// flattened data locally. A nil store yields ErrBackendUnavailable from
// Prepare.
func KV(store kvstore.Store) Backend { return kvBackend{store: store} }

func (kvBackend) Name() string { return "kv" }

func (b kvBackend) Prepare(ctx context.Context, src Source) (index.Index, View, error) {
	if b.store == nil {
		return nil, nil, fmt.Errorf("%w: kv backend has no store", ErrBackendUnavailable)
	}
	store, err := kvstore.NewIndexStore(b.store, src.Path)
	if err != nil {
		return nil, nil, err
	}
	return prepareFlat(ctx, src, store, openMmap)
}
