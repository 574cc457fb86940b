package backend

import (
	"context"

	"github.com/hupe1980/flatfa/index"
	"github.com/hupe1980/flatfa/internal/mmap"
)

type mmapBackend struct{}

// Mmap returns a backend that memory-maps the store and serves zero-copy
// slices of it. It is the default backend.
func Mmap() Backend { return mmapBackend{} }

func (mmapBackend) Name() string { return "mmap" }

func (mmapBackend) Prepare(ctx context.Context, src Source) (index.Index, View, error) {
	store := index.NewFileStore(src.fs(), src.Path)
	store.Codec, store.Compression = src.Codec, src.Compression
	return prepareFlat(ctx, src, store, openMmap)
}

type mmapView struct {
	m *mmap.Mapping
}

func openMmap(_ Source, path string) (View, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	if err := m.Advise(mmap.AccessRandom); err != nil {
		_ = m.Close()
		return nil, err
	}
	return &mmapView{m: m}, nil
}

func (v *mmapView) Fetch(start, stop uint64) ([]byte, error) {
	if v.m.Closed() {
		return nil, ErrClosed
	}
	if b := v.m.Slice(start, stop); b != nil {
		return b, nil
	}
	return []byte{}, nil
}

func (v *mmapView) Size() uint64 { return uint64(v.m.Size()) }

func (v *mmapView) Close() error { return v.m.Close() }
