package workspace

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Capswan/cli-gitspace/config"
	"github.com/Capswan/cli-gitspace/fs"
	billyfs "github.com/Capswan/cli-gitspace/fs/billy"
)

// fakeCloner records clone requests and writes a README into the
// destination instead of talking to a remote.
type fakeCloner struct {
	fs fs.Filesystem

	mu       sync.Mutex
	requests []CloneRequest

	// errs maps a URL to the error its clone returns.
	errs map[string]error
	// partial makes failing clones write a file before failing.
	partial bool
	// delay is slept before each clone, honoring ctx.
	delay time.Duration
	// block makes clones wait for ctx to end.
	block bool
	// after runs once a clone has finished, successful or not.
	after func(CloneRequest)

	active    int
	maxActive int
}

func newFakeCloner(fsys fs.Filesystem) *fakeCloner {
	return &fakeCloner{fs: fsys, errs: map[string]error{}}
}

func (c *fakeCloner) Clone(ctx context.Context, req CloneRequest) error {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.active++
	if c.active > c.maxActive {
		c.maxActive = c.active
	}
	err := c.errs[req.URL]
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.active--
		c.mu.Unlock()
		if c.after != nil {
			c.after(req)
		}
	}()

	if c.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err != nil {
		if c.partial {
			_ = c.fs.WriteFile(filepath.Join(req.Destination, ".git-partial"), []byte("x"), 0o644)
		}
		return err
	}
	return c.fs.WriteFile(filepath.Join(req.Destination, "README.md"), []byte("# "+req.URL+"\n"), 0o644)
}

func (c *fakeCloner) urls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.requests))
	for _, r := range c.requests {
		out = append(out, r.URL)
	}
	return out
}

// testConfig returns a valid config rooted at /space with the given projects
// under the "acme" namespace.
func testConfig(projects ...string) *config.Config {
	cfg := config.Default()
	cfg.Paths.Space = "/space"
	cfg.SSH.IdentityFile = "/keys/id_rsa"
	cfg.Repositories = nil
	for _, p := range projects {
		cfg.Repositories = append(cfg.Repositories, config.Repository{Namespace: "acme", Project: p})
	}
	return cfg
}

// newSpace returns an in-memory filesystem with an initialized store for cfg.
func newSpace(t *testing.T, cfg *config.Config) *billyfs.FS {
	t.Helper()
	fsys := billyfs.NewInMemoryFS()
	require.NoError(t, fsys.MkdirAll(Resolve(cfg, RoleRepositoryStore), 0o755))
	return fsys
}

// bufferLogger returns a JSON logger writing into a buffer.
func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
