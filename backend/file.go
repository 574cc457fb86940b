package backend

import (
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"

	"github.com/hupe1980/flatfa/index"
	"github.com/hupe1980/flatfa/internal/fs"
)

type fileBackend struct{}

// File returns a backend that reads the store with one ReadAt per fetch.
func File() Backend { return fileBackend{} }

func (fileBackend) Name() string { return "file" }

func (fileBackend) Prepare(ctx context.Context, src Source) (index.Index, View, error) {
	store := index.NewFileStore(src.fs(), src.Path)
	store.Codec, store.Compression = src.Codec, src.Compression
	return prepareFlat(ctx, src, store, openFile)
}

type fileView struct {
	f      fs.File
	size   uint64
	closed atomic.Bool
}

func openFile(src Source, path string) (View, error) {
	f, err := src.fs().OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileView{f: f, size: uint64(info.Size())}, nil
}

func (v *fileView) Fetch(start, stop uint64) ([]byte, error) {
	if v.closed.Load() {
		return nil, ErrClosed
	}
	start, stop = clamp(start, stop, v.size)
	if start == stop {
		return []byte{}, nil
	}

	buf := make([]byte, stop-start)
	n, err := v.f.ReadAt(buf, int64(start))
	if err != nil && !(errors.Is(err, io.EOF) && n == len(buf)) {
		return nil, err
	}
	return buf[:n], nil
}

func (v *fileView) Size() uint64 { return v.size }

func (v *fileView) Close() error {
	if v.closed.Swap(true) {
		return nil
	}
	return v.f.Close()
}
