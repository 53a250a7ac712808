// Package fsbridge hands go-git the billy filesystems behind gitspace's
// fs.Filesystem, so repositories are read and written through the same
// abstraction as everything else.
package fsbridge

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/Capswan/cli-gitspace/fs"
	fsb "github.com/Capswan/cli-gitspace/fs/billy"
)

// minCacheSize replaces a non-positive object cache size.
const minCacheSize = 100

// Layout is the on-disk shape of a non-bare repository.
type Layout struct {
	// Storage holds objects and refs under {workdir}/.git.
	Storage *filesystem.Storage
	// Worktree is the checkout rooted at workdir.
	Worktree billy.Filesystem
}

// Open scopes fsys to workdir and builds the go-git storage under .git with
// an LRU object cache of cacheSize bytes. fsys must come from fs/billy.
// Nothing is created on disk until go-git writes.
func Open(fsys fs.Filesystem, workdir string, cacheSize int) (Layout, error) {
	bfs, ok := fsys.(*fsb.FS)
	if !ok {
		return Layout{}, fmt.Errorf("git needs a filesystem from fs/billy, got %T", fsys)
	}

	worktree, err := bfs.Raw().Chroot(workdir)
	if err != nil {
		return Layout{}, fmt.Errorf("scope filesystem to %q: %w", workdir, err)
	}

	dotGit, err := worktree.Chroot(".git")
	if err != nil {
		return Layout{}, fmt.Errorf("scope filesystem to %q: %w", workdir+"/.git", err)
	}

	if cacheSize <= 0 {
		cacheSize = minCacheSize
	}
	objects := cache.NewObjectLRU(cache.FileSize(cacheSize))

	return Layout{
		Storage:  filesystem.NewStorage(dotGit, objects),
		Worktree: worktree,
	}, nil
}
