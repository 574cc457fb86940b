package backend

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/hupe1980/flatfa/index"
	"github.com/hupe1980/flatfa/internal/flatten"
)

type memoryBackend struct{}

// Memory returns a backend that reads the whole source into memory and
// writes nothing to disk. Every Prepare is a rebuild. Flatten in place is
// ignored.
func Memory() Backend { return memoryBackend{} }

func (memoryBackend) Name() string { return "memory" }

func (memoryBackend) Prepare(ctx context.Context, src Source) (index.Index, View, error) {
	if _, err := src.fs().Stat(src.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src.Path)
		}
		return nil, nil, err
	}

	src.rebuilding("memory backend")

	var buf bytes.Buffer
	idx, err := flatten.Write(ctx, &buf, src.Records, false)
	if err != nil {
		return nil, nil, err
	}
	return idx, &memoryView{data: buf.Bytes()}, nil
}

type memoryView struct {
	data   []byte
	closed atomic.Bool
}

func (v *memoryView) Fetch(start, stop uint64) ([]byte, error) {
	if v.closed.Load() {
		return nil, ErrClosed
	}
	start, stop = clamp(start, stop, uint64(len(v.data)))
	if start == stop {
		return []byte{}, nil
	}
	return v.data[start:stop:stop], nil
}

func (v *memoryView) Size() uint64 { return uint64(len(v.data)) }

func (v *memoryView) Close() error {
	v.closed.Store(true)
	return nil
}
