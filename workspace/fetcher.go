package workspace

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/Capswan/cli-gitspace/config"
	"github.com/Capswan/cli-gitspace/errors"
	"github.com/Capswan/cli-gitspace/fs"
	"github.com/Capswan/cli-gitspace/git"
)

// ReasonAlreadyPresent is the skip reason for populated destinations.
const ReasonAlreadyPresent = "already present"

// Fetcher clones single repositories into a repository store.
//
// A destination that already contains entries is skipped without any
// network access. Existing clones are never updated.
type Fetcher struct {
	fs     fs.Filesystem
	ssh    config.SSH
	cloner Cloner
	auth   git.AuthProvider
	depth  int
	opts   *options
}

// NewFetcher returns a Fetcher building remote URLs from remote.
// Without WithCloner it clones with go-git into fsys.
func NewFetcher(fsys fs.Filesystem, remote config.SSH, opts ...Option) *Fetcher {
	o := newOptions(opts)
	return newFetcher(fsys, remote, o)
}

func newFetcher(fsys fs.Filesystem, remote config.SSH, o *options) *Fetcher {
	f := &Fetcher{
		fs:     fsys,
		ssh:    remote,
		cloner: o.cloner,
		depth:  o.depth,
		opts:   o,
	}
	if f.cloner == nil {
		f.cloner = NewGitCloner(fsys)
	}
	if o.credentials != nil {
		f.auth = git.CredentialAuth(o.credentials)
	}
	return f
}

// Fetch clones repo into {storeRoot}/{project} unless that directory
// already has entries.
//
// The store root must exist. When the clone fails, whatever it wrote is
// removed again, so a later run does not mistake it for a finished clone:
// a destination created by this call is deleted, and a pre-existing empty
// one is left empty.
func (f *Fetcher) Fetch(ctx context.Context, repo config.Repository, storeRoot string) Outcome {
	start := time.Now()
	outcome := f.fetch(ctx, repo, storeRoot)
	outcome.Duration = time.Since(start)
	f.log(ctx, outcome)
	return outcome
}

func (f *Fetcher) fetch(ctx context.Context, repo config.Repository, storeRoot string) Outcome {
	dest := filepath.Join(storeRoot, repo.Project)
	errCtx := map[string]interface{}{"repository": repo.String(), "destination": dest}

	if err := ctx.Err(); err != nil {
		return failed(repo, dest, classifyCloneError(err, errCtx))
	}

	if err := checkStore(f.fs, storeRoot); err != nil {
		return failed(repo, dest, err)
	}

	info, err := f.fs.Stat(dest)
	existed := err == nil
	switch {
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return failed(repo, dest, errors.FromFilesystem(err, "failed to inspect destination", dest))
	case existed && !info.IsDir():
		return failed(repo, dest, errors.NewWithContext(errors.CodeConflict,
			"destination is occupied by a file", errCtx))
	case existed:
		empty, err := fs.IsEmptyDir(f.fs, dest)
		if err != nil {
			return failed(repo, dest, errors.FromFilesystem(err, "failed to inspect destination", dest))
		}
		if !empty {
			return skipped(repo, dest, ReasonAlreadyPresent)
		}
	}

	if err := f.fs.MkdirAll(dest, 0o755); err != nil {
		return failed(repo, dest, errors.FromFilesystem(err, "failed to create destination", dest))
	}

	url := f.ssh.RemoteURL(repo)
	f.opts.logger.DebugContext(ctx, "cloning repository",
		"repository", repo.String(),
		"url", url,
		"destination", dest,
	)

	err = f.cloner.Clone(ctx, CloneRequest{
		URL:         url,
		Destination: dest,
		Auth:        f.auth,
		Depth:       f.depth,
	})
	if err != nil {
		if rmErr := f.discard(dest, existed); rmErr != nil {
			f.opts.logger.WarnContext(ctx, "failed to clean destination after failed clone",
				"destination", dest,
				"error", rmErr,
			)
		}
		return failed(repo, dest, classifyCloneError(err, errCtx))
	}

	return cloned(repo, dest)
}

// discard removes what a failed clone wrote. A destination created for the
// attempt is removed; one that existed (and was empty) is emptied again.
// go-git initializes .git before it contacts the remote, so a failed clone
// usually leaves entries behind.
func (f *Fetcher) discard(dest string, existed bool) error {
	if !existed {
		return f.fs.RemoveAll(dest)
	}

	entries, err := f.fs.ReadDir(dest)
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range entries {
		if err := f.fs.RemoveAll(filepath.Join(dest, e.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fetcher) log(ctx context.Context, o Outcome) {
	attrs := []any{
		"repository", o.Repository.String(),
		"destination", o.Destination,
		"status", o.Status.String(),
		"duration", o.Duration,
	}

	switch o.Status {
	case StatusFailed:
		f.opts.logger.ErrorContext(ctx, "repository failed", append(attrs, "error", o.Err)...)
	case StatusSkipped:
		f.opts.logger.InfoContext(ctx, "repository skipped", append(attrs, "reason", o.Reason)...)
	default:
		f.opts.logger.InfoContext(ctx, "repository cloned", attrs...)
	}
}

// checkStore returns a CodeNotInitialized error unless storeRoot is an existing directory.
func checkStore(fsys fs.Filesystem, storeRoot string) error {
	info, err := fsys.Stat(storeRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.WrapWithContext(err, errors.CodeNotInitialized,
				"repository store does not exist, run gitspace init",
				map[string]interface{}{"path": storeRoot})
		}
		return errors.FromFilesystem(err, "failed to inspect repository store", storeRoot)
	}
	if !info.IsDir() {
		return errors.NewWithContext(errors.CodeNotInitialized, "repository store is not a directory",
			map[string]interface{}{"path": storeRoot})
	}
	return nil
}
