package billy

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// nativeOS hands paths to the operating system unchanged, so relative paths
// follow the process working directory. Chroot narrows it to a real
// osfs rooted at the given directory, which is what go-git works inside.
type nativeOS struct {
	osfs.ChrootOS
}

//nolint:ireturn // signature fixed by billy.Chroot.
func (n *nativeOS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

func (n *nativeOS) Root() string {
	return string(filepath.Separator)
}

// NewBaseOSFS returns an FS over the operating system's own namespace.
// The gitspace CLI runs against it.
func NewBaseOSFS() *FS {
	return &FS{fs: &nativeOS{}}
}
