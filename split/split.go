package split

import (
	"context"
	"errors"
	"os"

	"github.com/hupe1980/flatfa"
	"github.com/hupe1980/flatfa/fasta"
	"github.com/hupe1980/flatfa/internal/fs"
)

type options struct {
	fs     fs.FileSystem
	logger *flatfa.Logger
}

// Option configures a split.
type Option func(*options)

// WithFileSystem replaces the filesystem the output files are created on.
// Reading the source goes through the opened *flatfa.Fasta instead. The
// fs.FileSystem type lives in an internal package, so the option is a test
// hook for fault injection within this module.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithLogger configures structured logging of the split outcome.
func WithLogger(logger *flatfa.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = flatfa.NoopLogger()
		}
		o.logger = logger
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		fs:     fs.Default,
		logger: flatfa.NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// ByHeader writes every sequence of f to its own file named by
// HeaderName(template, f.Path(), header). It returns the file names in
// header order.
func ByHeader(ctx context.Context, f *flatfa.Fasta, template string, optFns ...Option) ([]string, error) {
	o := applyOptions(optFns)

	keys := f.Keys()
	names := make([]string, 0, len(keys))
	err := func() error {
		for _, h := range keys {
			if err := ctx.Err(); err != nil {
				return err
			}
			seq, err := sequence(f, h)
			if err != nil {
				return err
			}
			name := HeaderName(template, f.Path(), h)
			out, err := create(o.fs, []string{name})
			if err != nil {
				return err
			}
			err = out.write(0, h, seq)
			if cerr := out.close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			names = append(names, name)
		}
		return nil
	}()

	o.logger.LogSplit(ctx, "header", len(names), len(names), err)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Windows cuts every sequence of f into windows of k bases overlapping by
// overlap and deals them round-robin over the files in names. Window
// headers are KmerHeader(parent, start).
func Windows(ctx context.Context, f *flatfa.Fasta, names []string, k, overlap int, optFns ...Option) error {
	o := applyOptions(optFns)
	if len(names) == 0 {
		return ErrInvalidCount
	}
	if _, err := flatfa.AsKmers(nil, k, overlap); err != nil {
		return err
	}

	written := 0
	err := func() (err error) {
		out, err := create(o.fs, names)
		if err != nil {
			return err
		}
		defer out.closeInto(&err)

		for _, h := range f.Keys() {
			if err := ctx.Err(); err != nil {
				return err
			}
			seq, err := sequence(f, h)
			if err != nil {
				return err
			}
			kmers, err := flatfa.AsKmers(seq, k, overlap)
			if err != nil {
				return err
			}
			for start, kmer := range kmers {
				if err := out.write(written%len(names), KmerHeader(h, start), kmer); err != nil {
					return err
				}
				written++
			}
		}
		return nil
	}()

	o.logger.LogSplit(ctx, "windows", len(names), written, err)
	return err
}

// Balance distributes the sequences of f over the files in names as laid
// out by Plan.
func Balance(ctx context.Context, f *flatfa.Fasta, names []string, optFns ...Option) error {
	o := applyOptions(optFns)

	keys := f.Keys()
	items := make([]Item, 0, len(keys))
	for _, h := range keys {
		rec, err := f.Get(h)
		if err != nil {
			return err
		}
		items = append(items, Item{Header: h, Len: uint64(rec.Len())})
	}

	written := 0
	err := func() (err error) {
		bins, err := Plan(items, len(names))
		if err != nil {
			return err
		}
		out, err := create(o.fs, names)
		if err != nil {
			return err
		}
		defer out.closeInto(&err)

		for i, bin := range bins {
			for _, it := range bin {
				if err := ctx.Err(); err != nil {
					return err
				}
				seq, err := sequence(f, it.Header)
				if err != nil {
					return err
				}
				if err := out.write(i, it.Header, seq); err != nil {
					return err
				}
				written++
			}
		}
		return nil
	}()

	o.logger.LogSplit(ctx, "balance", len(names), written, err)
	return err
}

func sequence(f *flatfa.Fasta, header string) ([]byte, error) {
	rec, err := f.Get(header)
	if err != nil {
		return nil, err
	}
	return rec.Bytes()
}

type outputs struct {
	files   []fs.File
	writers []*fasta.Writer
}

func create(fsys fs.FileSystem, names []string) (*outputs, error) {
	out := &outputs{}
	for _, name := range names {
		file, err := fsys.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			_ = out.close()
			return nil, err
		}
		out.files = append(out.files, file)
		out.writers = append(out.writers, fasta.NewWriter(file))
	}
	return out, nil
}

func (o *outputs) write(i int, header string, seq []byte) error {
	return o.writers[i].Write(header, seq)
}

func (o *outputs) close() error {
	var errs []error
	for i, file := range o.files {
		if err := o.writers[i].Flush(); err != nil {
			errs = append(errs, err)
		}
		if err := file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (o *outputs) closeInto(err *error) {
	if cerr := o.close(); *err == nil {
		*err = cerr
	}
}
