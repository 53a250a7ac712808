package workspace

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Capswan/cli-gitspace/config"
	"github.com/Capswan/cli-gitspace/errors"
	"github.com/Capswan/cli-gitspace/fs"
	"github.com/Capswan/cli-gitspace/git"
)

// Orchestrator runs sync over every configured repository.
type Orchestrator struct {
	fs   fs.Filesystem
	opts []Option
}

// NewOrchestrator returns an Orchestrator operating on fsys. The options
// apply to every Sync call.
func NewOrchestrator(fsys fs.Filesystem, opts ...Option) *Orchestrator {
	return &Orchestrator{fs: fsys, opts: opts}
}

// Sync fetches every repository in cfg and returns one Outcome per
// repository, in config order.
//
// A repository failure is recorded in its Outcome and does not affect the
// others. The returned error is reserved for failures whose code is
// errors.ErrorCode.Fatal: an invalid config or a missing repository store.
// Found up front, they return before any repository is touched. A store
// that disappears mid-run stops the run instead: pending repositories fail
// as canceled and the partial Report comes back with the error.
//
// Up to the configured concurrency repositories are fetched at once.
// The run timeout, when set, bounds the whole run including in-flight clones.
// The effective identity file is the resolver override, else
// ssh.identityFile.
func (o *Orchestrator) Sync(ctx context.Context, cfg *config.Config, opts ...Option) (Report, error) {
	start := time.Now()
	options := newOptions(append(append([]Option{}, o.opts...), opts...))
	logger := options.logger

	if cfg == nil {
		return Report{}, errors.New(errors.CodeInvalidConfig, "configuration is nil")
	}
	if err := config.Validate(cfg); err != nil {
		return Report{}, err
	}

	store := options.resolver.Resolve(cfg, RoleRepositoryStore)
	if err := checkStore(o.fs, store); err != nil {
		return Report{}, err
	}

	if options.credentials == nil {
		key := defaultCredentials(cfg, options.resolver)
		options.credentials = key
		logger.DebugContext(ctx, "using identity file", "path", key.KeyPath(), "host", cfg.SSH.HostName)
	}

	timeout := options.timeout
	if timeout <= 0 {
		timeout = cfg.Sync.Timeout.Std()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	workers := poolSize(len(cfg.Repositories), options.concurrency, cfg.Sync.Concurrency)
	logger.InfoContext(ctx, "sync started",
		"repositories", len(cfg.Repositories),
		"store", store,
		"workers", workers,
	)

	fetcher := newFetcher(o.fs, cfg.SSH, options)
	outcomes := make([]Outcome, len(cfg.Repositories))

	g, runCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, repo := range cfg.Repositories {
		g.Go(func() error {
			outcome := fetcher.Fetch(runCtx, repo, store)
			outcomes[i] = outcome
			if outcome.Status == StatusFailed && errors.CodeOf(outcome.Err).Fatal() {
				return outcome.Err
			}
			return nil
		})
	}
	fatal := g.Wait()

	report := Report{Outcomes: outcomes}
	if fatal != nil {
		report.Duration = time.Since(start)
		logger.ErrorContext(ctx, "sync aborted", "error", fatal, "duration", report.Duration)
		return report, fatal
	}

	if options.linkTarget != "" {
		projector := &Projector{fs: o.fs, opts: options}
		report.Links = projector.Project(cfg.Repositories, store, options.linkTarget)
	}

	report.Duration = time.Since(start)
	logger.InfoContext(ctx, "sync finished",
		"cloned", report.Count(StatusCloned),
		"skipped", report.Count(StatusSkipped),
		"failed", report.Count(StatusFailed),
		"duration", report.Duration,
	)

	return report, nil
}

// defaultCredentials loads the resolved identity file and offers it only to
// the configured host, as the configured user.
func defaultCredentials(cfg *config.Config, resolver PathResolver) *git.SSHKeyAuth {
	opts := []git.SSHKeyOption{
		git.WithSSHUser(cfg.SSH.User),
		git.WithAllowedHosts(cfg.SSH.HostName),
	}
	if cfg.SSH.KnownHosts != "" {
		opts = append(opts, git.WithKnownHosts(resolver.expand(cfg.SSH.KnownHosts)))
	}
	return git.NewSSHKeyAuth(resolver.Resolve(cfg, RoleCredential), opts...)
}

// poolSize picks the worker count: the first positive limit, capped at n,
// and at least one.
func poolSize(n int, limits ...int) int {
	size := 1
	for _, l := range limits {
		if l > 0 {
			size = l
			break
		}
	}
	if size > n {
		size = n
	}
	if size < 1 {
		size = 1
	}
	return size
}
