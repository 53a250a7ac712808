// Package fstest provides a conformance test suite for validating
// fs.Filesystem implementations.
//
// The suite exercises the contract the sync engine relies on: plain
// read/write, directory management, recursive removal, and symlinks that
// are never followed when removed.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T) (fs.Filesystem, string) {
//	        return myprovider.New(), "/"
//	    })
//	}
package fstest

import (
	"path/filepath"
	"testing"

	"github.com/Capswan/cli-gitspace/fs"
)

// NewFunc returns a fresh, empty filesystem and the root directory under
// which the suite may create entries.
type NewFunc func(t *testing.T) (fs.Filesystem, string)

// TestSuite runs all conformance tests against a filesystem.
func TestSuite(t *testing.T, newFS NewFunc) {
	TestSuiteWithSkip(t, newFS, nil)
}

// TestSuiteWithSkip runs the conformance tests, skipping the named groups
// (e.g. "Symlink") for providers with documented differences.
func TestSuiteWithSkip(t *testing.T, newFS NewFunc, skipTests []string) {
	groups := []struct {
		name string
		run  func(t *testing.T, filesystem fs.Filesystem, root string)
	}{
		{name: "ReadWrite", run: TestReadWrite},
		{name: "Manage", run: TestManage},
		{name: "Symlink", run: TestSymlink},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			for _, skip := range skipTests {
				if skip == g.name {
					t.Skip("Skipped by provider configuration")
				}
			}
			filesystem, root := newFS(t)
			g.run(t, filesystem, root)
		})
	}
}

func join(root string, elem ...string) string {
	return filepath.Join(append([]string{root}, elem...)...)
}
