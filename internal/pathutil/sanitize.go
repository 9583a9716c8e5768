package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Output path rejections, matchable with errors.Is.
var (
	ErrSymlinkOutput = errors.New("refusing to write to symlink")
	ErrDirOutput     = errors.New("output path is a directory")
)

// SanitizeOutputPath cleans path, makes it absolute and checks that a file
// can be written there: an existing entry must be a regular file, never a
// symlink or a directory, and a new file needs an existing parent.
func SanitizeOutputPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("pathutil: empty output path")
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: resolve %s: %w", path, err)
	}

	info, err := os.Lstat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		if _, err := os.Stat(filepath.Dir(abs)); err != nil {
			return "", fmt.Errorf("pathutil: output directory: %w", err)
		}
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("pathutil: stat %s: %w", abs, err)
	}

	switch mode := info.Mode(); {
	case mode&fs.ModeSymlink != 0:
		return "", fmt.Errorf("pathutil: %w: %s", ErrSymlinkOutput, abs)
	case mode.IsDir():
		return "", fmt.Errorf("pathutil: %w: %s", ErrDirOutput, abs)
	}
	return abs, nil
}
