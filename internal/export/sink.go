package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrWriteOutput is returned when the output file cannot be written.
var ErrWriteOutput = errors.New("failed to write output")

// WriteFileAtomic writes data to path through a temporary file in the same
// directory followed by a rename. On failure the temporary file is removed
// and any existing file at path is left untouched.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	// CreateTemp uses 0600; match os.WriteFile's usual mode.
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
