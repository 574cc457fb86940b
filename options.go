package flatfa

import (
	"log/slog"

	"github.com/hupe1980/flatfa/backend"
	"github.com/hupe1980/flatfa/codec"
	"github.com/hupe1980/flatfa/fasta"
	"github.com/hupe1980/flatfa/index"
	"github.com/hupe1980/flatfa/internal/fs"
)

type options struct {
	backend          backend.Backend
	flattenInPlace   bool
	keyFn            fasta.KeyFunc
	fs               fs.FileSystem
	codec            codec.Codec
	compression      index.Compression
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Open.
type Option func(*options)

// WithBackend selects the storage backend. The default is backend.Mmap().
//
// Example:
//
//	f, err := flatfa.Open(ctx, "genome.fasta", flatfa.WithBackend(backend.File()))
func WithBackend(b backend.Backend) Option {
	return func(o *options) {
		if b != nil {
			o.backend = b
		}
	}
}

// WithFlattenInPlace rewrites the source as a flattened FASTA file instead
// of writing a separate store sidecar. The source is replaced atomically.
// The memory backend ignores this option.
func WithFlattenInPlace() Option {
	return func(o *options) {
		o.flattenInPlace = true
	}
}

// WithKeyFunc transforms every header before it is indexed, e.g.
// fasta.FirstField to key records by their identifier only.
// Uniqueness is checked on the transformed header.
func WithKeyFunc(fn fasta.KeyFunc) Option {
	return func(o *options) {
		o.keyFn = fn
	}
}

// WithFileSystem replaces the filesystem used for sidecar I/O: stat calls,
// index and store writes, placeholder checks and the reads of the file
// backend. The source is always parsed through the os package, and the mmap
// and kv backends map the store with os as well.
//
// The fs.FileSystem type lives in an internal package, so the option is a
// test hook for fault injection within this module.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithCodec configures the codec used to encode a rebuilt index sidecar.
// Existing sidecars are decoded with the codec named in their header.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the compression of a rebuilt index sidecar.
func WithCompression(c index.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &flatfa.BasicMetricsCollector{}
//	f, _ := flatfa.Open(ctx, "genome.fasta", flatfa.WithMetricsCollector(metrics))
//	// ... use f ...
//	stats := metrics.GetStats()
//	fmt.Printf("Fetches: %d, Avg latency: %dns\n", stats.FetchCount, stats.FetchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := flatfa.NewJSONLogger(slog.LevelInfo)
//	f, _ := flatfa.Open(ctx, "genome.fasta", flatfa.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		backend:          backend.Mmap(),
		fs:               fs.Default,
		codec:            codec.Default,
		compression:      index.CompressionZstd,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
