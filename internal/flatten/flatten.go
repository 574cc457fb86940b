package flatten

import (
	"bytes"
	"context"
	"io"
	"iter"
	"os"
	"time"

	"github.com/hupe1980/flatfa/fasta"
	"github.com/hupe1980/flatfa/index"
	"github.com/hupe1980/flatfa/internal/fs"
)

// Magic is the placeholder content of the store sidecar after an in place
// flatten.
const Magic = "@flattened@"

// StoreExt is the store sidecar suffix appended to the source path.
const StoreExt = ".flat"

// countingWriter tracks the write offset.
type countingWriter struct {
	w io.Writer
	n uint64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += uint64(n)
	return n, err
}

// Write streams records to w and returns the index of their sequence bytes.
// In place mode emits ">header\n" before each sequence, preceded by '\n' for
// every record but the first. A duplicate header aborts with
// *index.DuplicateHeaderError before anything of that record is written.
func Write(ctx context.Context, w io.Writer, records iter.Seq2[fasta.Record, error], inPlace bool) (index.Index, error) {
	cw := &countingWriter{w: w}
	idx := index.Index{}

	i := 0
	for rec, err := range records {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := cw.n
		prefix := ""
		if inPlace {
			prefix = ">" + rec.Header + "\n"
			if i > 0 {
				prefix = "\n" + prefix
			}
			start += uint64(len(prefix))
		}
		if err := idx.Add(rec.Header, index.Span{Start: start, Stop: start + uint64(len(rec.Seq))}); err != nil {
			return nil, err
		}

		if _, err := io.WriteString(cw, prefix); err != nil {
			return nil, err
		}
		if _, err := cw.Write(rec.Seq); err != nil {
			return nil, err
		}
		i++
	}
	return idx, nil
}

// Build flattens records into dest atomically. dest is the store sidecar,
// or the source itself in place mode.
func Build(ctx context.Context, fsys fs.FileSystem, dest string, records iter.Seq2[fasta.Record, error], inPlace bool) (index.Index, error) {
	var idx index.Index
	err := fs.WriteAtomic(fsys, dest, func(w io.Writer) error {
		var err error
		idx, err = Write(ctx, w, records, inPlace)
		return err
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// WritePlaceholder marks source+StoreExt as standing in for the source.
func WritePlaceholder(fsys fs.FileSystem, source string) error {
	f, err := fsys.OpenFile(source+StoreExt, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, Magic); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// IsPlaceholder reports whether the store sidecar at path holds Magic.
// A missing sidecar is not a placeholder.
func IsPlaceholder(fsys fs.FileSystem, path string) (bool, error) {
	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	buf := make([]byte, len(Magic)+1)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return n == len(Magic) && bytes.Equal(buf[:n], []byte(Magic)), nil
}

// ModTimer reports when an index store was last written. ok is false when
// the store holds no index.
type ModTimer interface {
	ModTime(ctx context.Context) (t time.Time, ok bool, err error)
}

// IsCurrent reports whether the index and the store sidecar are both at
// least as new as the source.
func IsCurrent(ctx context.Context, fsys fs.FileSystem, source string, idx ModTimer) (bool, error) {
	src, err := fsys.Stat(source)
	if err != nil {
		return false, err
	}

	idxTime, ok, err := idx.ModTime(ctx)
	if err != nil {
		return false, err
	}
	if !ok || idxTime.Before(src.ModTime()) {
		return false, nil
	}

	store, err := fsys.Stat(source + StoreExt)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !store.ModTime().Before(src.ModTime()), nil
}
