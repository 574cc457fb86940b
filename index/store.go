package index

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/hupe1980/flatfa/codec"
	"github.com/hupe1980/flatfa/internal/fs"
)

// Ext is the index sidecar suffix appended to the source path.
const Ext = ".gdx"

// FileStore persists an Index as a sidecar file next to its source.
type FileStore struct {
	FS          fs.FileSystem
	Path        string
	Codec       codec.Codec
	Compression Compression
}

// NewFileStore returns a store for source+Ext.
func NewFileStore(fsys fs.FileSystem, source string) *FileStore {
	if fsys == nil {
		fsys = fs.Default
	}
	return &FileStore{FS: fsys, Path: source + Ext}
}

// ModTime returns the sidecar's filesystem modification time.
// ok is false when the sidecar does not exist.
func (s *FileStore) ModTime(_ context.Context) (time.Time, bool, error) {
	info, err := s.FS.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return info.ModTime(), true, nil
}

// Load reads and decodes the sidecar.
func (s *FileStore) Load(_ context.Context) (Index, error) {
	f, err := s.FS.OpenFile(s.Path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Save atomically replaces the sidecar with idx.
func (s *FileStore) Save(_ context.Context, idx Index) error {
	return fs.WriteAtomic(s.FS, s.Path, func(w io.Writer) error {
		return Encode(w, idx, s.Codec, s.Compression)
	})
}

// Remove deletes the sidecar. A missing sidecar is not an error.
func (s *FileStore) Remove(_ context.Context) error {
	if err := s.FS.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// String returns the sidecar path.
func (s *FileStore) String() string { return s.Path }
