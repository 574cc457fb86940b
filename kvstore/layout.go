package kvstore

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/flatfa/index"
	"github.com/zeebo/xxh3"
)

const (
	// IndexPrefix prefixes one key per indexed header.
	IndexPrefix = "idx/"
	// CommitKey holds the build time of the stored index.
	CommitKey = "meta/commit"
)

// Namespace derives the namespace of a source file from its absolute path.
func Namespace(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%016x", filepath.Base(abs), xxh3.HashString(abs)), nil
}

// HeaderKey returns the key of header.
func HeaderKey(header string) string { return IndexPrefix + header }

// HeaderFromKey strips IndexPrefix from key.
func HeaderFromKey(key string) (string, bool) {
	return strings.CutPrefix(key, IndexPrefix)
}

// EncodeSpan encodes s as 16 big-endian bytes.
func EncodeSpan(s index.Span) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], s.Start)
	binary.BigEndian.PutUint64(buf[8:16], s.Stop)
	return buf
}

// DecodeSpan decodes a value written by EncodeSpan.
func DecodeSpan(b []byte) (index.Span, error) {
	if len(b) != 16 {
		return index.Span{}, fmt.Errorf("%w: span value has %d bytes", index.ErrCorrupt, len(b))
	}
	s := index.Span{
		Start: binary.BigEndian.Uint64(b[0:8]),
		Stop:  binary.BigEndian.Uint64(b[8:16]),
	}
	if s.Start > s.Stop {
		return index.Span{}, fmt.Errorf("%w: span start %d > stop %d", index.ErrCorrupt, s.Start, s.Stop)
	}
	return s, nil
}

// EncodeTime encodes t as 8 big-endian bytes of unix nanoseconds.
func EncodeTime(t time.Time) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(t.UnixNano()))
	return buf
}

// DecodeTime decodes a value written by EncodeTime.
func DecodeTime(b []byte) (time.Time, error) {
	if len(b) != 8 {
		return time.Time{}, fmt.Errorf("%w: commit value has %d bytes", index.ErrCorrupt, len(b))
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(b))), nil
}
