package workspace

import (
	"context"

	"github.com/Capswan/cli-gitspace/fs"
	"github.com/Capswan/cli-gitspace/git"
)

// CloneRequest describes one clone.
type CloneRequest struct {
	// URL is the remote, e.g. git@github.com:acme/widgets.
	URL string
	// Destination is the worktree directory. It exists and is empty.
	Destination string
	// Auth resolves credentials for URL. Nil leaves go-git's defaults.
	Auth git.AuthProvider
	// Depth requests a shallow clone when positive.
	Depth int
}

// Cloner performs a clone into an existing, empty directory.
type Cloner interface {
	Clone(ctx context.Context, req CloneRequest) error
}

// GitCloner clones with go-git through a Filesystem.
type GitCloner struct {
	fs fs.Filesystem
}

// NewGitCloner returns a Cloner writing into fsys.
func NewGitCloner(fsys fs.Filesystem) *GitCloner {
	return &GitCloner{fs: fsys}
}

// Clone implements Cloner.
func (c *GitCloner) Clone(ctx context.Context, req CloneRequest) error {
	_, err := git.Clone(ctx, req.URL, &git.Options{
		FS:           c.fs,
		Workdir:      req.Destination,
		Auth:         req.Auth,
		ShallowDepth: req.Depth,
	})
	return err
}
