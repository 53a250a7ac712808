// Package fs defines the filesystem abstraction used by gitspace.
//
// Every component that touches the disk (config codec, repository fetcher,
// symlink projector, cleanup) goes through Filesystem so that the whole sync
// engine can run against an in-memory filesystem in tests and against the
// operating system in production. The only implementation lives in fs/billy.
package fs

import (
	"io"
	"os"
	"path/filepath"
)

// File is an open file handle returned by Filesystem.
type File interface {
	io.ReadWriteCloser
	io.ReaderAt
	io.Seeker
	Name() string
	Stat() (os.FileInfo, error)
}

// Filesystem is the native filesystem abstraction.
// Paths are interpreted by the implementation; the OS-backed implementation
// resolves relative paths against the process working directory.
type Filesystem interface {
	Create(name string) (File, error)
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error

	Stat(name string) (os.FileInfo, error)
	// Lstat is like Stat but does not follow a trailing symlink.
	Lstat(name string) (os.FileInfo, error)
	Exists(path string) (bool, error)

	ReadDir(name string) ([]os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	Walk(root string, fn filepath.WalkFunc) error
	TempDir(dir, pattern string) (string, error)

	Rename(oldname, newname string) error
	Remove(name string) error
	// RemoveAll removes path and any children. A missing path is not an error.
	RemoveAll(path string) error

	// Symlink creates link pointing at target.
	Symlink(target, link string) error
	Readlink(link string) (string, error)
}
