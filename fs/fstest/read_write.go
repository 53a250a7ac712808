package fstest

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/Capswan/cli-gitspace/fs"
)

// TestReadWrite tests Create, WriteFile, ReadFile, Open, Stat and Exists.
func TestReadWrite(t *testing.T, filesystem fs.Filesystem, root string) {
	t.Run("CreateAndRead", func(t *testing.T) {
		p := join(root, "created.txt")
		want := []byte("created content")

		f, err := filesystem.Create(p)
		if err != nil {
			t.Fatalf("Create(%q): got error %v, want nil", p, err)
		}
		if _, err := f.Write(want); err != nil {
			_ = f.Close()
			t.Fatalf("Write(): got error %v, want nil", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}

		r, err := filesystem.Open(p)
		if err != nil {
			t.Fatalf("Open(%q): got error %v, want nil", p, err)
		}
		defer func() { _ = r.Close() }()

		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("ReadAll(): got error %v, want nil", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("read %q, want %q", got, want)
		}
	})

	t.Run("WriteFileReadFile", func(t *testing.T) {
		p := join(root, "nested", "dir", "file.json")
		want := []byte(`{"ok":true}`)

		if err := filesystem.WriteFile(p, want, 0o644); err != nil {
			t.Fatalf("WriteFile(%q): got error %v, want nil", p, err)
		}
		got, err := filesystem.ReadFile(p)
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", p, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("ReadFile(%q) = %q, want %q", p, got, want)
		}

		info, err := filesystem.Stat(p)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", p, err)
		}
		if info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = true, want false", p)
		}
	})

	t.Run("Exists", func(t *testing.T) {
		p := join(root, "exists.txt")
		if err := filesystem.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): got error %v, want nil", p, err)
		}

		ok, err := filesystem.Exists(p)
		if err != nil || !ok {
			t.Errorf("Exists(%q) = %v, %v; want true, nil", p, ok, err)
		}

		missing := join(root, "missing.txt")
		ok, err = filesystem.Exists(missing)
		if err != nil || ok {
			t.Errorf("Exists(%q) = %v, %v; want false, nil", missing, ok, err)
		}
	})

	t.Run("ReadMissing", func(t *testing.T) {
		_, err := filesystem.ReadFile(join(root, "nope.txt"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ReadFile(missing): got %v, want os.ErrNotExist", err)
		}
	})
}
