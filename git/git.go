// Package git provides a high-level Go wrapper for the go-git operations gitspace needs.
// It exposes clone and inspection operations while operating exclusively through the
// project's native filesystem abstraction.
package git

import (
	"context"
	"errors"

	gobilly "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/Capswan/cli-gitspace/fs"
	"github.com/Capswan/cli-gitspace/git/internal/fsbridge"
)

const (
	// DefaultStorerCacheSize is the default size for the LRU object cache.
	DefaultStorerCacheSize = 1000

	// DefaultWorkdir is the default worktree directory name.
	DefaultWorkdir = "."

	// DefaultRemoteName is the remote name created by Clone.
	DefaultRemoteName = "origin"
)

// Options configures repository discovery/creation and performance.
type Options struct {
	// FS is the REQUIRED native filesystem root (OS or in-memory).
	// All repository state lives within this filesystem.
	FS fs.Filesystem

	// Workdir is the path within FS for the worktree root.
	// Defaults to "." (current directory in FS).
	Workdir string

	// StorerCacheSize sets the LRU objects cache entries.
	// Defaults to DefaultStorerCacheSize.
	StorerCacheSize int

	// Auth is an optional provider that resolves per-URL AuthMethod.
	// If nil, go-git falls back to its own defaults (SSH agent for ssh URLs).
	Auth AuthProvider

	// ShallowDepth sets the depth for shallow clones.
	// If 0, full clones are performed.
	ShallowDepth int
}

// Validate checks that the Options are properly configured.
func (o *Options) Validate() error {
	if o.FS == nil {
		return WrapError(ErrInvalidOptions, "FS is required")
	}

	if o.StorerCacheSize < 0 {
		return WrapError(ErrInvalidOptions, "StorerCacheSize cannot be negative")
	}

	if o.ShallowDepth < 0 {
		return WrapError(ErrInvalidOptions, "ShallowDepth cannot be negative")
	}

	return nil
}

// applyDefaults sets default values for any unset fields in Options.
func (o *Options) applyDefaults() {
	if o.Workdir == "" {
		o.Workdir = DefaultWorkdir
	}

	if o.StorerCacheSize == 0 {
		o.StorerCacheSize = DefaultStorerCacheSize
	}
}

// storage builds the go-git object storage and worktree filesystem for
// a non-bare repository rooted at opts.Workdir.
func storage(opts *Options) (*filesystem.Storage, gobilly.Filesystem, error) {
	layout, err := fsbridge.Open(opts.FS, opts.Workdir, opts.StorerCacheSize)
	if err != nil {
		return nil, nil, WrapError(err, "failed to prepare repository storage")
	}
	return layout.Storage, layout.Worktree, nil
}

// Open opens an existing non-bare repository at opts.Workdir.
func Open(ctx context.Context, opts *Options) (*Repo, error) {
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}
	if err := ctx.Err(); err != nil {
		return nil, WrapError(err, "context cancelled")
	}

	opts.applyDefaults()

	st, worktreeFS, err := storage(opts)
	if err != nil {
		return nil, err
	}

	repo, err := git.Open(st, worktreeFS)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, WrapErrorf(ErrNotRepository, "open %s", opts.Workdir)
		}
		return nil, WrapError(err, "failed to open repository")
	}

	return newRepo(repo, opts)
}

// Clone creates a new repository at opts.Workdir by cloning from remoteURL.
//
// The remoteURL may use any transport go-git understands; gitspace uses
// scp-like SSH URLs (git@host:namespace/project). Authentication is
// resolved through opts.Auth. Transport failures are classified into
// ErrAuthRequired, ErrAuthFailed, ErrRemoteNotFound and ErrNetwork.
//
// Context timeout/cancellation is honored during the transfer.
func Clone(ctx context.Context, remoteURL string, opts *Options) (*Repo, error) {
	if remoteURL == "" {
		return nil, WrapError(ErrInvalidOptions, "remote URL cannot be empty")
	}

	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	opts.applyDefaults()

	st, worktreeFS, err := storage(opts)
	if err != nil {
		return nil, err
	}

	cloneOpts := &git.CloneOptions{
		URL:          remoteURL,
		RemoteName:   DefaultRemoteName,
		Depth:        opts.ShallowDepth,
		SingleBranch: opts.ShallowDepth > 0,
	}

	if opts.Auth != nil {
		authMethod, authErr := opts.Auth.Method(remoteURL)
		if authErr != nil {
			return nil, WrapErrorf(ErrAuthRequired, "resolve credentials for %s: %v", remoteURL, authErr)
		}
		cloneOpts.Auth = authMethod
	}

	repo, err := git.CloneContext(ctx, st, worktreeFS, cloneOpts)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	return newRepo(repo, opts)
}

func newRepo(repo *git.Repository, opts *Options) (*Repo, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, WrapError(err, "failed to get worktree")
	}

	return &Repo{
		repo:     repo,
		worktree: worktree,
		fs:       opts.FS,
		options:  *opts,
	}, nil
}

// AuthProvider resolves authentication methods for git operations.
// Implementations should handle different URL schemes and credential sources.
type AuthProvider interface {
	// Method returns the appropriate transport.AuthMethod for the given remote URL.
	// Returns nil if no authentication is needed/available for this URL.
	// Returns an error if authentication cannot be resolved for the URL.
	Method(remoteURL string) (transport.AuthMethod, error)
}

// CredentialProvider resolves a credential for a remote username.
// The username is the one embedded in the remote URI (typically "git").
type CredentialProvider interface {
	Credential(username string) (transport.AuthMethod, error)
}

// Repo represents a cloned or opened git repository.
// It wraps a go-git Repository and Worktree.
type Repo struct {
	repo     *git.Repository
	worktree *git.Worktree
	fs       fs.Filesystem
	options  Options
}
