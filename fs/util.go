package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// GetAbs returns an absolute representation of path.
// Absolute paths are returned cleaned but otherwise unchanged.
func GetAbs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("fs: abs %q: %w", path, err)
	}
	return abs, nil
}

// IsEmptyDir reports whether dir exists in fsys and has no entries.
// A regular file is reported as non-empty. A missing dir returns an error
// satisfying errors.Is(err, os.ErrNotExist).
func IsEmptyDir(fsys Filesystem, dir string) (bool, error) {
	info, err := fsys.Stat(dir)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

// IsSymlink reports whether name is a symbolic link in fsys.
// A missing path reports false without error.
func IsSymlink(fsys Filesystem, name string) (bool, error) {
	info, err := fsys.Lstat(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}
