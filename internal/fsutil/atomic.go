// Package fsutil places files so that readers never observe a partial write
// or a window where the final mode and ownership are not yet applied.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFileAtomic copies src to dst through a mode 0600 temp file in dst's
// directory.
// prepare, if non-nil, runs on the closed temp file before the mode is
// applied; chown clears set-id bits, so ownership changes belong there.
// The temp file is then chmod'ed to perm and renamed over dst.
func CopyFileAtomic(src, dst string, perm os.FileMode, prepare func(tmpPath string) error) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	dir, name := filepath.Split(dst)
	if dir == "" {
		dir = "."
	}

	// Random suffix: a temp file left by an interrupted copy never blocks the next one.
	f, err := os.CreateTemp(dir, ".tmp-"+name+"-*")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	defer os.Remove(tmpPath) // clean up on error

	if _, err := io.Copy(f, in); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if prepare != nil {
		if err := prepare(tmpPath); err != nil {
			return fmt.Errorf("prepare %s: %w", tmpPath, err)
		}
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, dst)
}
