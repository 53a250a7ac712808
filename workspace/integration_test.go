package workspace

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Capswan/cli-gitspace/config"
	gsfs "github.com/Capswan/cli-gitspace/fs"
	billyfs "github.com/Capswan/cli-gitspace/fs/billy"
)

// localRemotes redirects SSH URLs to on-disk repositories.
type localRemotes struct {
	origins map[string]string
	next    Cloner
}

func (l localRemotes) Clone(ctx context.Context, req CloneRequest) error {
	if origin, ok := l.origins[req.URL]; ok {
		req.URL = origin
		req.Auth = nil
	}
	return l.next.Clone(ctx, req)
}

func newOrigin(t *testing.T) (string, string) {
	t.Helper()
	if _, err := exec.LookPath("git-upload-pack"); err != nil {
		t.Skip("git-upload-pack not available for local file transport")
	}

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# widgets\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	hash, err := wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, hash.String()
}

func TestInitSyncScenario(t *testing.T) {
	ctx := context.Background()
	origin, hash := newOrigin(t)
	t.Chdir(t.TempDir())

	cfg := config.Default()
	cfg.Paths.Space = ".space"
	cfg.SSH.IdentityFile = "/nonexistent/id_rsa"
	cfg.Repositories = []config.Repository{{Namespace: "acme", Project: "widgets"}}

	fsys := billyfs.NewBaseOSFS()

	_, err := Init(ctx, fsys, cfg)
	require.NoError(t, err)

	loaded, err := config.Load(fsys, ".space/config.json")
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("config did not round-trip (-want +got):\n%s", diff)
	}

	cloner := localRemotes{
		origins: map[string]string{"git@github.com:acme/widgets": origin},
		next:    NewGitCloner(fsys),
	}
	orch := NewOrchestrator(fsys, WithCloner(cloner))

	report, err := orch.Sync(ctx, loaded)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)
	require.Equal(t, StatusCloned, report.Outcomes[0].Status, "err: %v", report.Outcomes[0].Err)

	dest := filepath.Join(".space", "repositories", "widgets")
	empty, err := gsfs.IsEmptyDir(fsys, dest)
	require.NoError(t, err)
	assert.False(t, empty)
	assert.FileExists(t, filepath.Join(dest, "README.md"))

	states, err := Inspect(ctx, fsys, loaded)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.True(t, states[0].Present)
	assert.NoError(t, states[0].Err)
	assert.Equal(t, hash, states[0].Head)
	assert.Equal(t, "master", states[0].Branch)
	assert.Equal(t, origin, states[0].RemoteURL)

	again, err := orch.Sync(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, again.Outcomes[0].Status)
}

func TestSync_UnreachableRemoteLeavesNoDirectory(t *testing.T) {
	ctx := context.Background()
	t.Chdir(t.TempDir())

	cfg := config.Default()
	cfg.Paths.Space = ".space"
	cfg.Repositories = []config.Repository{{Namespace: "acme", Project: "ghost"}}
	fsys := billyfs.NewBaseOSFS()
	_, err := Init(ctx, fsys, cfg)
	require.NoError(t, err)

	cloner := localRemotes{
		origins: map[string]string{"git@github.com:acme/ghost": filepath.Join(t.TempDir(), "does-not-exist")},
		next:    NewGitCloner(fsys),
	}
	report, err := NewOrchestrator(fsys, WithCloner(cloner)).Sync(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, report.Outcomes[0].Status)

	assert.NoDirExists(t, filepath.Join(".space", "repositories", "ghost"))
}
