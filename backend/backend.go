package backend

import (
	"context"
	"errors"
	"iter"

	"github.com/hupe1980/flatfa/codec"
	"github.com/hupe1980/flatfa/fasta"
	"github.com/hupe1980/flatfa/index"
	"github.com/hupe1980/flatfa/internal/fs"
)

var (
	// ErrSourceNotFound is returned when the FASTA source does not exist.
	ErrSourceNotFound = errors.New("fasta source not found")
	// ErrBackendUnavailable is returned by a backend whose dependency is missing.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrClosed is returned by a View after Close.
	ErrClosed = errors.New("view closed")
)

// Source describes the FASTA file a backend prepares.
type Source struct {
	Path string
	// Records streams the source's records. It is consumed at most once,
	// and only when the cached sidecars cannot be reused.
	Records        iter.Seq2[fasta.Record, error]
	FlattenInPlace bool

	// FS defaults to fs.Default.
	FS fs.FileSystem
	// Codec and Compression configure newly written index sidecars.
	Codec       codec.Codec
	Compression index.Compression
	// OnRebuild, when set, is called with the reason before sidecars are rebuilt.
	OnRebuild func(reason string)
}

func (s Source) fs() fs.FileSystem {
	if s.FS == nil {
		return fs.Default
	}
	return s.FS
}

func (s Source) rebuilding(reason string) {
	if s.OnRebuild != nil {
		s.OnRebuild(reason)
	}
}

// View serves byte ranges of a prepared store.
type View interface {
	// Fetch returns bytes [start, stop) clamped to [0, Size()).
	Fetch(start, stop uint64) ([]byte, error)
	// Size returns the store size in bytes.
	Size() uint64
	Close() error
}

// Backend prepares a source for random access.
type Backend interface {
	Name() string
	Prepare(ctx context.Context, src Source) (index.Index, View, error)
}

func clamp(start, stop, size uint64) (uint64, uint64) {
	if stop > size {
		stop = size
	}
	if start > stop {
		start = stop
	}
	return start, stop
}
