package billy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	parentfs "github.com/Capswan/cli-gitspace/fs"
)

// FS implements the Filesystem interface using go-billy.
type FS struct {
	fs billy.Filesystem
}

var _ parentfs.Filesystem = (*FS)(nil)

// opErr decorates err with the operation and path. The underlying error
// stays reachable through errors.Is, so os.ErrNotExist checks keep working.
func opErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("billy: %s %q: %w", op, path, err)
}

// Create implements Filesystem.Create.
//
//nolint:ireturn // fs.Filesystem returns File.
func (b *FS) Create(name string) (parentfs.File, error) {
	f, err := b.fs.Create(name)
	if err != nil {
		return nil, opErr("create", name, err)
	}
	return &File{file: f, fs: b}, nil
}

// Open implements Filesystem.Open.
//
//nolint:ireturn // fs.Filesystem returns File.
func (b *FS) Open(name string) (parentfs.File, error) {
	f, err := b.fs.Open(name)
	if err != nil {
		return nil, opErr("open", name, err)
	}
	return &File{file: f, fs: b}, nil
}

// OpenFile implements Filesystem.OpenFile.
//
//nolint:ireturn // fs.Filesystem returns File.
func (b *FS) OpenFile(name string, flag int, perm os.FileMode) (parentfs.File, error) {
	f, err := b.fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, opErr("openfile", name, err)
	}
	return &File{file: f, fs: b}, nil
}

// ReadFile implements Filesystem.ReadFile.
func (b *FS) ReadFile(name string) ([]byte, error) {
	data, err := util.ReadFile(b.fs, name)
	return data, opErr("readfile", name, err)
}

// WriteFile implements Filesystem.WriteFile.
func (b *FS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return opErr("writefile", name, util.WriteFile(b.fs, name, data, perm))
}

// Stat implements Filesystem.Stat.
func (b *FS) Stat(name string) (os.FileInfo, error) {
	info, err := b.fs.Stat(name)
	return info, opErr("stat", name, err)
}

// Lstat implements Filesystem.Lstat.
func (b *FS) Lstat(name string) (os.FileInfo, error) {
	info, err := b.fs.Lstat(name)
	return info, opErr("lstat", name, err)
}

// Exists implements Filesystem.Exists.
func (b *FS) Exists(path string) (bool, error) {
	_, err := b.fs.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, opErr("stat", path, err)
	}
}

// ReadDir implements Filesystem.ReadDir.
func (b *FS) ReadDir(name string) ([]os.FileInfo, error) {
	list, err := b.fs.ReadDir(name)
	return list, opErr("readdir", name, err)
}

// MkdirAll implements Filesystem.MkdirAll.
func (b *FS) MkdirAll(path string, perm os.FileMode) error {
	return opErr("mkdirall", path, b.fs.MkdirAll(path, perm))
}

// Walk implements Filesystem.Walk.
func (b *FS) Walk(root string, walkFn filepath.WalkFunc) error {
	return opErr("walk", root, util.Walk(b.fs, root, walkFn))
}

// TempDir implements Filesystem.TempDir.
func (b *FS) TempDir(dir, prefix string) (string, error) {
	name, err := util.TempDir(b.fs, dir, prefix)
	if err != nil {
		return "", fmt.Errorf("billy: tempdir dir=%q prefix=%q: %w", dir, prefix, err)
	}
	return name, nil
}

// Rename implements Filesystem.Rename.
func (b *FS) Rename(oldname, newname string) error {
	return opErr("rename", oldname+" -> "+newname, b.fs.Rename(oldname, newname))
}

// Remove implements Filesystem.Remove.
func (b *FS) Remove(name string) error {
	return opErr("remove", name, b.fs.Remove(name))
}

// RemoveAll implements Filesystem.RemoveAll.
// Symlinks are removed, never followed.
func (b *FS) RemoveAll(path string) error {
	return opErr("removeall", path, util.RemoveAll(b.fs, path))
}

// Symlink implements Filesystem.Symlink.
func (b *FS) Symlink(target, link string) error {
	return opErr("symlink", link, b.fs.Symlink(target, link))
}

// Readlink implements Filesystem.Readlink.
func (b *FS) Readlink(link string) (string, error) {
	target, err := b.fs.Readlink(link)
	return target, opErr("readlink", link, err)
}

// Raw returns the underlying go-billy filesystem.
//
//nolint:ireturn // returning interface here is intentional to expose the adapter target.
func (b *FS) Raw() billy.Filesystem {
	return b.fs
}

// NewFS creates a new FS using the given go-billy filesystem.
func NewFS(fsys billy.Filesystem) *FS {
	return &FS{fs: fsys}
}

// NewInMemoryFS creates a new in-memory filesystem.
func NewInMemoryFS() *FS {
	return &FS{fs: memfs.New()}
}

// NewOSFS creates a new OS filesystem rooted at path.
// Every path handed to it is resolved inside path.
func NewOSFS(path string) *FS {
	return &FS{fs: osfs.New(path)}
}
