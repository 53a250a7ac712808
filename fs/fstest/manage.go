package fstest

import (
	"os"
	"testing"

	"github.com/Capswan/cli-gitspace/fs"
)

// TestManage tests MkdirAll, ReadDir, Walk, Rename, Remove and RemoveAll.
func TestManage(t *testing.T, filesystem fs.Filesystem, root string) {
	t.Run("MkdirAllReadDir", func(t *testing.T) {
		dir := join(root, "a", "b", "c")
		if err := filesystem.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll(%q): got error %v, want nil", dir, err)
		}
		if err := filesystem.WriteFile(join(dir, "one.txt"), []byte("1"), 0o644); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}

		entries, err := filesystem.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir(%q): got error %v, want nil", dir, err)
		}
		if len(entries) != 1 || entries[0].Name() != "one.txt" {
			t.Errorf("ReadDir(%q) = %v, want [one.txt]", dir, names(entries))
		}

		var seen int
		err = filesystem.Walk(join(root, "a"), func(string, os.FileInfo, error) error {
			seen++
			return nil
		})
		if err != nil {
			t.Fatalf("Walk: got error %v, want nil", err)
		}
		if seen < 4 {
			t.Errorf("Walk saw %d entries, want >= 4", seen)
		}
	})

	t.Run("Rename", func(t *testing.T) {
		from, to := join(root, "from.txt"), join(root, "to.txt")
		if err := filesystem.WriteFile(from, []byte("moved"), 0o644); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		if err := filesystem.Rename(from, to); err != nil {
			t.Fatalf("Rename: got error %v, want nil", err)
		}
		if ok, _ := filesystem.Exists(from); ok {
			t.Errorf("Exists(%q) = true after rename", from)
		}
		if ok, _ := filesystem.Exists(to); !ok {
			t.Errorf("Exists(%q) = false after rename", to)
		}
	})

	t.Run("RemoveAll", func(t *testing.T) {
		dir := join(root, "tree")
		if err := filesystem.WriteFile(join(dir, "x", "y.txt"), []byte("y"), 0o644); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		if err := filesystem.RemoveAll(dir); err != nil {
			t.Fatalf("RemoveAll(%q): got error %v, want nil", dir, err)
		}
		if ok, _ := filesystem.Exists(dir); ok {
			t.Errorf("Exists(%q) = true after RemoveAll", dir)
		}
		if err := filesystem.RemoveAll(dir); err != nil {
			t.Errorf("RemoveAll(missing): got error %v, want nil", err)
		}
	})

	t.Run("TempDir", func(t *testing.T) {
		td, err := filesystem.TempDir(root, "pref-")
		if err != nil {
			t.Fatalf("TempDir: got error %v, want nil", err)
		}
		if td == "" {
			t.Fatal("TempDir returned empty path")
		}
		if err := filesystem.Remove(td); err != nil {
			t.Errorf("Remove(%q): got error %v, want nil", td, err)
		}
	})
}

func names(infos []os.FileInfo) []string {
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Name())
	}
	return out
}
