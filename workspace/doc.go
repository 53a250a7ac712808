// Package workspace is the gitspace synchronization engine.
//
// Given a config.Config it materializes a space directory holding one clone
// per configured repository, projects convenience symlinks into a caller
// chosen directory, and removes managed resources on request.
//
// The pieces compose bottom-up:
//
//   - PathResolver maps a config and a Role to a concrete path.
//   - Fetcher clones one repository, or skips it when its directory is
//     already populated. Existing clones are never pulled or updated.
//   - Projector creates and removes the project symlinks.
//   - Cleaner deletes the space, the config document, the repository store,
//     or the project symlinks.
//   - Orchestrator runs the Fetcher over every repository with a bounded
//     worker pool and returns one Outcome per repository, in config order.
//
// A failed repository never stops the others. Configuration problems and a
// missing repository store abort the run before any repository is touched.
//
// Cleaner must not run while a sync is in flight against the same space.
// Nothing enforces this.
package workspace
