package workspace

import (
	"context"
	"path/filepath"

	"github.com/Capswan/cli-gitspace/config"
	"github.com/Capswan/cli-gitspace/errors"
	"github.com/Capswan/cli-gitspace/fs"
	"github.com/Capswan/cli-gitspace/git"
)

// RepositoryState is what Inspect found for one configured repository.
type RepositoryState struct {
	Repository config.Repository
	Path       string
	// Present is true when Path is a non-empty directory.
	Present bool
	// Branch and Head are read from the clone when it is a git repository.
	Branch string
	Head   string
	// RemoteURL is the first URL of the origin remote, if any.
	RemoteURL string
	// Err is set when a present directory could not be read as a repository.
	Err error
}

// Inspect reports the state of every configured repository in the store,
// in config order. It never touches the network.
func Inspect(ctx context.Context, fsys fs.Filesystem, cfg *config.Config, opts ...Option) ([]RepositoryState, error) {
	options := newOptions(opts)
	store := options.resolver.Resolve(cfg, RoleRepositoryStore)
	if err := checkStore(fsys, store); err != nil {
		return nil, err
	}

	states := make([]RepositoryState, 0, len(cfg.Repositories))
	for _, repo := range cfg.Repositories {
		if err := ctx.Err(); err != nil {
			return states, errors.Wrap(err, errors.CodeCanceled, "status canceled")
		}
		states = append(states, inspect(ctx, fsys, repo, filepath.Join(store, repo.Project)))
	}
	return states, nil
}

func inspect(ctx context.Context, fsys fs.Filesystem, repo config.Repository, dest string) RepositoryState {
	state := RepositoryState{Repository: repo, Path: dest}

	empty, err := fs.IsEmptyDir(fsys, dest)
	if err != nil || empty {
		return state
	}
	state.Present = true

	r, err := git.Open(ctx, &git.Options{FS: fsys, Workdir: dest})
	if err != nil {
		state.Err = err
		return state
	}
	if url, err := r.RemoteURL(""); err == nil {
		state.RemoteURL = url
	}

	if state.Head, err = r.Head(ctx); err != nil {
		state.Err = err
		return state
	}
	if branch, err := r.CurrentBranch(ctx); err == nil {
		state.Branch = branch
	}
	return state
}
