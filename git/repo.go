package git

import (
	"context"
	"errors"

	"github.com/go-git/go-git/v5/plumbing"
)

// Head returns the commit hash HEAD points at.
func (r *Repo) Head(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", WrapError(err, "context cancelled")
	}

	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", WrapError(ErrResolveFailed, "repository has no commits")
		}
		return "", WrapError(err, "failed to get HEAD reference")
	}
	return head.Hash().String(), nil
}

// CurrentBranch returns the short name of the checked out branch.
// A detached HEAD yields ErrResolveFailed.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", WrapError(err, "context cancelled")
	}

	head, err := r.repo.Head()
	if err != nil {
		return "", WrapError(err, "failed to get HEAD reference")
	}

	if !head.Name().IsBranch() {
		return "", WrapError(ErrResolveFailed, "HEAD is detached")
	}

	return head.Name().Short(), nil
}

// RemoteURL returns the first URL configured for the named remote.
// An empty name means DefaultRemoteName.
func (r *Repo) RemoteURL(name string) (string, error) {
	if name == "" {
		name = DefaultRemoteName
	}

	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", WrapErrorf(ErrResolveFailed, "remote %q", name)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", WrapErrorf(ErrResolveFailed, "remote %q has no URL", name)
	}
	return urls[0], nil
}
