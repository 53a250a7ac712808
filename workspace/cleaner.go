package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/Capswan/cli-gitspace/config"
	"github.com/Capswan/cli-gitspace/errors"
	"github.com/Capswan/cli-gitspace/fs"
)

// Resource is something Cleaner can delete. The identity file is never one.
type Resource int

const (
	// ResourceSpace is the whole space directory.
	ResourceSpace Resource = iota
	// ResourceConfig is the config document.
	ResourceConfig
	// ResourceRepositories is the repository store and every clone in it.
	ResourceRepositories
	// ResourceSymlinks is the set of project links in a target directory.
	ResourceSymlinks
)

func (r Resource) String() string {
	switch r {
	case ResourceSpace:
		return "space"
	case ResourceConfig:
		return "config"
	case ResourceRepositories:
		return "repositories"
	case ResourceSymlinks:
		return "symlinks"
	default:
		return fmt.Sprintf("Resource(%d)", int(r))
	}
}

// Resources lists every cleanable resource.
func Resources() []Resource {
	return []Resource{ResourceSpace, ResourceConfig, ResourceRepositories, ResourceSymlinks}
}

// ParseResource parses the names printed by Resource.String.
func ParseResource(s string) (Resource, error) {
	for _, r := range Resources() {
		if strings.EqualFold(s, r.String()) {
			return r, nil
		}
	}
	return 0, errors.Newf(errors.CodeInvalidInput,
		"unknown clean target %q (want space, config, repositories or symlinks)", s)
}

// CleanResult describes what one Clean call did.
type CleanResult struct {
	Resource Resource
	// Path is the removed path, or the projection directory for symlinks.
	Path string
	// Missing is true when there was nothing to remove.
	Missing bool
	// Removed counts deleted symlinks for ResourceSymlinks.
	Removed int
}

// Cleaner removes gitspace-managed resources of one config.
type Cleaner struct {
	fs        fs.Filesystem
	cfg       *config.Config
	projector *Projector
	opts      *options
}

// NewCleaner returns a Cleaner for cfg. Use WithProjection to say where
// symlinks were projected, and WithResolver for path overrides.
func NewCleaner(fsys fs.Filesystem, cfg *config.Config, opts ...Option) *Cleaner {
	o := newOptions(opts)
	return &Cleaner{
		fs:        fsys,
		cfg:       cfg,
		projector: &Projector{fs: fsys, opts: o},
		opts:      o,
	}
}

// Clean removes resource. A resource that does not exist is reported
// through CleanResult.Missing and is not an error. Removal failures are
// returned as filesystem errors.
//
// Clean must not run concurrently with a sync against the same space.
func (c *Cleaner) Clean(ctx context.Context, resource Resource) (CleanResult, error) {
	result := CleanResult{Resource: resource}
	if err := ctx.Err(); err != nil {
		return result, errors.Wrap(err, errors.CodeCanceled, "clean canceled")
	}

	if resource == ResourceSymlinks {
		return c.cleanSymlinks(ctx, result)
	}

	switch resource {
	case ResourceSpace:
		result.Path = c.opts.resolver.Resolve(c.cfg, RoleSpace)
	case ResourceConfig:
		result.Path = c.opts.resolver.Resolve(c.cfg, RoleConfig)
	case ResourceRepositories:
		result.Path = c.opts.resolver.Resolve(c.cfg, RoleRepositoryStore)
	default:
		return result, errors.Newf(errors.CodeInvalidInput, "unknown clean target %s", resource)
	}

	if err := guardRemoval(result.Path); err != nil {
		return result, err
	}

	info, err := c.fs.Lstat(result.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		result.Missing = true
		c.opts.logger.InfoContext(ctx, "nothing to clean", "target", resource.String(), "path", result.Path)
		return result, nil
	case err != nil:
		return result, errors.FromFilesystem(err, "failed to inspect "+resource.String(), result.Path)
	}

	if info.IsDir() {
		err = c.fs.RemoveAll(result.Path)
	} else {
		err = c.fs.Remove(result.Path)
	}
	if err != nil {
		return result, errors.FromFilesystem(err, "failed to remove "+resource.String(), result.Path)
	}

	c.opts.logger.InfoContext(ctx, "cleaned", "target", resource.String(), "path", result.Path)
	return result, nil
}

func (c *Cleaner) cleanSymlinks(ctx context.Context, result CleanResult) (CleanResult, error) {
	result.Path = c.opts.linkTarget
	if result.Path == "" {
		result.Path = "."
	}

	n, err := c.projector.Remove(c.cfg.Projects(), result.Path)
	result.Removed = n
	result.Missing = n == 0 && err == nil
	if err != nil {
		return result, err
	}

	c.opts.logger.InfoContext(ctx, "cleaned", "target", ResourceSymlinks.String(), "path", result.Path, "removed", n)
	return result, nil
}

// guardRemoval rejects "/", "." and the home directory.
func guardRemoval(path string) error {
	clean := filepath.Clean(path)
	if clean == "." || clean == string(filepath.Separator) || clean == filepath.Clean(xdg.Home) {
		return errors.NewWithContext(errors.CodeForbidden, "refusing to remove path",
			map[string]interface{}{"path": path})
	}
	return nil
}
