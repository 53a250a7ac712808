package workspace

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Capswan/cli-gitspace/config"
	"github.com/Capswan/cli-gitspace/errors"
	"github.com/Capswan/cli-gitspace/fs"
)

// SymlinkEntry is one projected link: Destination points at Source.
type SymlinkEntry struct {
	// Source is the clone inside the repository store.
	Source string
	// Destination is the link inside the projection directory.
	Destination string
	// Err is set when this entry could not be projected.
	Err error
}

// Projector maintains project symlinks in a directory outside the space.
type Projector struct {
	fs   fs.Filesystem
	opts *options
}

// NewProjector returns a Projector operating on fsys.
func NewProjector(fsys fs.Filesystem, opts ...Option) *Projector {
	return &Projector{fs: fsys, opts: newOptions(opts)}
}

// Project links {targetDir}/{project} to {storeRoot}/{project} for every
// repository and returns one entry per repository, in order.
//
// Link sources are absolute; a relative storeRoot is resolved against the
// process working directory. An existing link with the right source is
// left as is. Anything else occupying a link name is reported on that
// entry and never replaced. Repositories missing from the store are
// reported and not linked.
func (p *Projector) Project(repos []config.Repository, storeRoot, targetDir string) []SymlinkEntry {
	ctx := context.Background()
	entries := make([]SymlinkEntry, len(repos))

	root, err := fs.GetAbs(storeRoot)
	if err != nil {
		for i, r := range repos {
			entries[i] = SymlinkEntry{
				Source:      filepath.Join(storeRoot, r.Project),
				Destination: filepath.Join(targetDir, r.Project),
				Err:         errors.Wrap(err, errors.CodeFilesystem, "failed to resolve repository store"),
			}
		}
		return entries
	}

	mkdirErr := p.fs.MkdirAll(targetDir, 0o755)

	for i, r := range repos {
		entry := SymlinkEntry{
			Source:      filepath.Join(root, r.Project),
			Destination: filepath.Join(targetDir, r.Project),
		}
		if mkdirErr != nil {
			entry.Err = errors.FromFilesystem(mkdirErr, "failed to create projection directory", targetDir)
		} else {
			entry.Err = p.link(entry.Source, entry.Destination)
		}

		if entry.Err != nil {
			p.opts.logger.WarnContext(ctx, "symlink not projected",
				"repository", r.String(),
				"destination", entry.Destination,
				"error", entry.Err,
			)
		} else {
			p.opts.logger.DebugContext(ctx, "symlink projected",
				"repository", r.String(),
				"destination", entry.Destination,
			)
		}
		entries[i] = entry
	}

	return entries
}

func (p *Projector) link(source, dest string) error {
	errCtx := map[string]interface{}{"source": source, "destination": dest}

	if _, err := p.fs.Stat(source); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.NewWithContext(errors.CodeNotFound, "repository is not in the store", errCtx)
		}
		return errors.FromFilesystem(err, "failed to inspect repository", source)
	}

	info, err := p.fs.Lstat(dest)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := p.fs.Symlink(source, dest); err != nil {
			return errors.FromFilesystem(err, "failed to create symlink", dest)
		}
		return nil
	case err != nil:
		return errors.FromFilesystem(err, "failed to inspect link destination", dest)
	case info.Mode()&os.ModeSymlink == 0:
		return errors.NewWithContext(errors.CodeConflict, "link destination is occupied", errCtx)
	}

	current, err := p.fs.Readlink(dest)
	if err != nil {
		return errors.FromFilesystem(err, "failed to read symlink", dest)
	}
	if !filepath.IsAbs(current) {
		current = filepath.Join(filepath.Dir(dest), current)
	}
	if filepath.Clean(current) != source {
		errCtx["current"] = current
		return errors.NewWithContext(errors.CodeConflict, "symlink points elsewhere", errCtx)
	}
	return nil
}

// Remove deletes the symlinks in targetDir named after one of projects
// (see config.Config.Projects) and returns how many were removed. Entries
// that are not symlinks, or carry other names, are left alone. A missing
// targetDir removes nothing.
func (p *Projector) Remove(projects []string, targetDir string) (int, error) {
	ctx := context.Background()
	seen := make(map[string]bool, len(projects))
	removed := 0
	var errs []error

	for _, project := range projects {
		if seen[project] {
			continue
		}
		seen[project] = true

		name := filepath.Join(targetDir, project)
		ok, err := fs.IsSymlink(p.fs, name)
		if err != nil {
			errs = append(errs, errors.FromFilesystem(err, "failed to inspect symlink", name))
			continue
		}
		if !ok {
			continue
		}

		if err := p.fs.Remove(name); err != nil {
			errs = append(errs, errors.FromFilesystem(err, "failed to remove symlink", name))
			continue
		}
		removed++
		p.opts.logger.DebugContext(ctx, "symlink removed", "destination", name)
	}

	return removed, errors.Join(errs...)
}
