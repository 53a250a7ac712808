package workspace

import (
	"context"

	"github.com/Capswan/cli-gitspace/config"
	"github.com/Capswan/cli-gitspace/errors"
	"github.com/Capswan/cli-gitspace/fs"
)

// InitResult describes what Init did.
type InitResult struct {
	ConfigPath string
	StorePath  string
	// ConfigWritten is false when an existing document was kept.
	ConfigWritten bool
}

// Init creates the space: it writes cfg as the config document and creates
// an empty repository store.
//
// An existing config document is left byte-for-byte untouched unless
// WithForce(true) is given, so running Init twice is a no-op the second time.
// The store is then created from the existing document, which must load.
func Init(ctx context.Context, fsys fs.Filesystem, cfg *config.Config, opts ...Option) (InitResult, error) {
	options := newOptions(opts)
	if err := ctx.Err(); err != nil {
		return InitResult{}, errors.Wrap(err, errors.CodeCanceled, "init canceled")
	}

	result := InitResult{
		ConfigPath: options.resolver.Resolve(cfg, RoleConfig),
		StorePath:  options.resolver.Resolve(cfg, RoleRepositoryStore),
	}

	exists, err := config.Exists(fsys, result.ConfigPath)
	if err != nil {
		return result, err
	}

	if !exists || options.force {
		if err := config.Save(fsys, result.ConfigPath, cfg); err != nil {
			return result, err
		}
		result.ConfigWritten = true
		options.logger.InfoContext(ctx, "wrote configuration", "path", result.ConfigPath)
	} else {
		existing, err := config.Load(fsys, result.ConfigPath)
		if err != nil {
			return result, err
		}
		result.StorePath = options.resolver.Resolve(existing, RoleRepositoryStore)
		options.logger.InfoContext(ctx, "configuration already exists, keeping it", "path", result.ConfigPath)
	}

	if err := fsys.MkdirAll(result.StorePath, 0o755); err != nil {
		return result, errors.FromFilesystem(err, "failed to create repository store", result.StorePath)
	}

	return result, nil
}
