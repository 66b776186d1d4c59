package render

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// writeFileAtomic writes to a temporary file beside path and renames it into
// place once write succeeds, so path is either complete or untouched.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &OutputWriteError{Path: path, Err: err}
	}

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &OutputWriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { // #nosec G302 - Output files need standard read permissions
		_ = os.Remove(tmpName)
		return &OutputWriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &OutputWriteError{Path: path, Err: err}
	}
	return nil
}
