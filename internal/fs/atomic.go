package fs

import (
	"bufio"
	"io"
	"os"
)

// TempSuffix is appended to a destination path to name its in-progress file.
const TempSuffix = ".tmp"

// WriteAtomic writes dest by streaming into dest+TempSuffix, syncing, and
// renaming over dest. On any failure the temporary is removed and dest is
// left untouched.
func WriteAtomic(fsys FileSystem, dest string, write func(w io.Writer) error) error {
	tmpPath := dest + TempSuffix
	tmp, err := fsys.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(tmp, 64*1024)
	if err := write(bw); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpPath)
		return err
	}
	if err := fsys.Rename(tmpPath, dest); err != nil {
		_ = fsys.Remove(tmpPath)
		return err
	}
	return nil
}
