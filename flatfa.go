package flatfa

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/flatfa/backend"
	"github.com/hupe1980/flatfa/fasta"
	"github.com/hupe1980/flatfa/index"
)

// Fasta is an open, indexed FASTA source.
//
// Records are created on first access and cached for the lifetime of the
// handle. Close releases the cache and the backend view.
type Fasta struct {
	path    string
	backend string
	idx     index.Index
	view    backend.View
	metrics MetricsCollector
	logger  *Logger

	mu      sync.Mutex
	records map[string]*Record
	closed  bool
}

// Open indexes the FASTA file at path, reusing the sidecars of an earlier
// Open when they are still current.
func Open(ctx context.Context, path string, optFns ...Option) (*Fasta, error) {
	o := applyOptions(optFns)
	logger := o.logger.WithSource(path).WithBackend(o.backend.Name())

	start := time.Now()
	reused := true
	src := backend.Source{
		Path:           path,
		Records:        fasta.FileRecords(path, o.keyFn),
		FlattenInPlace: o.flattenInPlace,
		FS:             o.fs,
		Codec:          o.codec,
		Compression:    o.compression,
		OnRebuild: func(reason string) {
			reused = false
			logger.LogRebuild(ctx, reason)
		},
	}

	idx, view, err := o.backend.Prepare(ctx, src)
	d := time.Since(start)
	o.metricsCollector.RecordOpen(reused, d, err)
	logger.LogOpen(ctx, len(idx), reused, d, err)
	if err != nil {
		return nil, err
	}

	return &Fasta{
		path:    path,
		backend: o.backend.Name(),
		idx:     idx,
		view:    view,
		metrics: o.metricsCollector,
		logger:  logger,
		records: make(map[string]*Record, len(idx)),
	}, nil
}

// Flatten rewrites the FASTA file at path in place so that later opens
// read the source directly instead of a separate store sidecar.
func Flatten(ctx context.Context, path string, optFns ...Option) error {
	f, err := Open(ctx, path, append(optFns, WithFlattenInPlace())...)
	if err != nil {
		return err
	}
	return f.Close()
}

// Path returns the source path.
func (f *Fasta) Path() string { return f.path }

// Backend returns the name of the backend serving the handle.
func (f *Fasta) Backend() string { return f.backend }

// Get returns the record of header.
func (f *Fasta) Get(header string) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrClosed
	}
	if rec, ok := f.records[header]; ok {
		return rec, nil
	}
	span, ok := f.idx[header]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, header)
	}
	rec := &Record{f: f, header: header, start: span.Start, stop: span.Stop}
	f.records[header] = rec
	return rec, nil
}

// Keys returns the indexed headers in sorted order.
func (f *Fasta) Keys() []string { return f.idx.Keys() }

// Len returns the number of sequences.
func (f *Fasta) Len() int { return len(f.idx) }

// Contains reports whether header is indexed.
func (f *Fasta) Contains(header string) bool {
	_, ok := f.idx[header]
	return ok
}

// Index returns a copy of the offset index.
func (f *Fasta) Index() index.Index { return maps.Clone(f.idx) }

// Extract yields the records of headers in the given order. With exclude
// set it yields every indexed header not listed, in sorted order.
// Iteration stops after the first error.
func (f *Fasta) Extract(headers []string, exclude bool) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		names := headers
		if exclude {
			skip := make(map[string]struct{}, len(headers))
			for _, h := range headers {
				skip[h] = struct{}{}
			}
			names = slices.DeleteFunc(f.Keys(), func(h string) bool {
				_, ok := skip[h]
				return ok
			})
		}
		for _, h := range names {
			rec, err := f.Get(h)
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the record cache and the backend view. It is idempotent.
func (f *Fasta) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	f.records = nil
	return f.view.Close()
}

func (f *Fasta) fetch(start, stop uint64) ([]byte, error) {
	t := time.Now()
	b, err := f.view.Fetch(start, stop)
	f.metrics.RecordFetch(len(b), time.Since(t), err)
	return b, err
}
