package fasta

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Compression identifies the framing detected on a source stream.
type Compression string

const (
	None Compression = "none"
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
	LZ4  Compression = "lz4"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// OpenSource opens the FASTA file at path, decompressing it if needed.
func OpenSource(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, _, err := NewReader(fh)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	if mrc, ok := r.(*multiReadCloser); ok {
		mrc.closers = append(mrc.closers, fh)
		return mrc, nil
	}
	return &multiReadCloser{Reader: r, closers: []io.Closer{fh}}, nil
}

// Detect reports the compression of r by peeking at its first bytes.
func Detect(r *bufio.Reader) Compression {
	sig, _ := r.Peek(4)
	switch {
	case bytes.HasPrefix(sig, gzipMagic):
		return Gzip
	case bytes.HasPrefix(sig, zstdMagic):
		return Zstd
	case bytes.HasPrefix(sig, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// NewReader wraps r with the decompressor its magic number calls for.
// The returned closer releases decoder resources only; it does not close r.
func NewReader(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)

	switch c := Detect(br); c {
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr}}, c, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, c, err
		}
		return &multiReadCloser{Reader: zr, closers: []io.Closer{closerFunc(func() error {
			zr.Close()
			return nil
		})}}, c, nil
	case LZ4:
		return &multiReadCloser{Reader: lz4.NewReader(br)}, c, nil
	default:
		return &multiReadCloser{Reader: br}, c, nil
	}
}
