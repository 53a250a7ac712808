package workspace

import (
	"log/slog"
	"time"

	"github.com/Capswan/cli-gitspace/git"
)

// options holds the settings shared by the workspace components.
type options struct {
	logger      *slog.Logger
	cloner      Cloner
	credentials git.CredentialProvider
	resolver    PathResolver
	depth       int
	concurrency int
	timeout     time.Duration
	linkTarget  string
	force       bool
}

// Option configures a workspace component.
type Option func(*options)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithCloner replaces the go-git backed cloner.
func WithCloner(c Cloner) Option {
	return func(opts *options) {
		opts.cloner = c
	}
}

// WithCredentials sets the credential provider used for clones. Without it
// the orchestrator loads the resolved identity file.
func WithCredentials(cp git.CredentialProvider) Option {
	return func(opts *options) {
		opts.credentials = cp
	}
}

// WithResolver sets path overrides.
func WithResolver(r PathResolver) Option {
	return func(opts *options) {
		opts.resolver = r
	}
}

// WithDepth requests shallow clones of the given depth. Zero means full history.
func WithDepth(depth int) Option {
	return func(opts *options) {
		opts.depth = depth
	}
}

// WithConcurrency bounds the number of parallel clones. It takes precedence
// over sync.concurrency in the config; values below 1 defer to it.
func WithConcurrency(n int) Option {
	return func(opts *options) {
		opts.concurrency = n
	}
}

// WithTimeout bounds a whole sync run. It takes precedence over
// sync.timeout in the config; zero defers to it.
func WithTimeout(d time.Duration) Option {
	return func(opts *options) {
		opts.timeout = d
	}
}

// WithProjection makes Sync project symlinks into dir after cloning, and
// tells Cleaner where the symlinks live.
func WithProjection(dir string) Option {
	return func(opts *options) {
		opts.linkTarget = dir
	}
}

// WithForce lets Init overwrite an existing config document.
func WithForce(force bool) Option {
	return func(opts *options) {
		opts.force = force
	}
}

func defaultOptions() *options {
	return &options{}
}

func applyOptions(opts *options, list []Option) *options {
	for _, option := range list {
		option(opts)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}
	return opts
}

func newOptions(list []Option) *options {
	return applyOptions(defaultOptions(), list)
}
