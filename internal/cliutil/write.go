// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/oasfilter/internal/pathutil"
)

// OwnerReadWrite is the file permission mode for filtered output files,
// which may carry sensitive API data.
const OwnerReadWrite os.FileMode = 0o600

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteFile writes data to path through a temporary file in the same
// directory, then renames it into place, so readers never observe a
// partially written document. The path is sanitized first. It returns the
// absolute path written.
func WriteFile(path string, data []byte) (string, error) {
	abs, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), "."+filepath.Base(abs)+".*")
	if err != nil {
		return "", fmt.Errorf("cliutil: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("cliutil: write %s: %w", abs, err)
	}
	if err := tmp.Chmod(OwnerReadWrite); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("cliutil: chmod %s: %w", abs, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("cliutil: close %s: %w", abs, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		cleanup()
		return "", fmt.Errorf("cliutil: rename into %s: %w", abs, err)
	}
	return abs, nil
}
