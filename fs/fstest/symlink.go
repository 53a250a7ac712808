package fstest

import (
	"os"
	"testing"

	"github.com/Capswan/cli-gitspace/fs"
)

// TestSymlink tests Symlink, Lstat and Readlink, and that removing a link
// leaves its target intact.
func TestSymlink(t *testing.T, filesystem fs.Filesystem, root string) {
	target := join(root, "store", "project")
	link := join(root, "work", "project")

	if err := filesystem.WriteFile(join(target, "README.md"), []byte("readme"), 0o644); err != nil {
		t.Fatalf("WriteFile: got error %v, want nil", err)
	}
	if err := filesystem.MkdirAll(join(root, "work"), 0o755); err != nil {
		t.Fatalf("MkdirAll: got error %v, want nil", err)
	}
	if err := filesystem.Symlink(target, link); err != nil {
		t.Fatalf("Symlink(%q, %q): got error %v, want nil", target, link, err)
	}

	info, err := filesystem.Lstat(link)
	if err != nil {
		t.Fatalf("Lstat(%q): got error %v, want nil", link, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("Lstat(%q): mode %v, want symlink", link, info.Mode())
	}

	got, err := filesystem.Readlink(link)
	if err != nil {
		t.Fatalf("Readlink(%q): got error %v, want nil", link, err)
	}
	if got != target {
		t.Errorf("Readlink(%q) = %q, want %q", link, got, target)
	}

	if err := filesystem.Symlink(target, link); err == nil {
		t.Errorf("Symlink over existing link: got nil error, want error")
	}

	if err := filesystem.Remove(link); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", link, err)
	}
	if ok, _ := filesystem.Exists(join(target, "README.md")); !ok {
		t.Errorf("removing the link deleted the target")
	}
}
