package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billyfs "github.com/Capswan/cli-gitspace/fs/billy"
)

// newOrigin creates an on-disk repository with a single commit and returns
// its directory and the commit hash.
func newOrigin(t *testing.T) (string, string) {
	t.Helper()

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

func requireUploadPack(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git-upload-pack"); err != nil {
		t.Skip("git-upload-pack not available for local file transport")
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"valid", Options{FS: billyfs.NewInMemoryFS()}, false},
		{"shallow", Options{FS: billyfs.NewInMemoryFS(), ShallowDepth: 1}, false},
		{"missing FS", Options{}, true},
		{"negative cache", Options{FS: billyfs.NewInMemoryFS(), StorerCacheSize: -1}, true},
		{"negative depth", Options{FS: billyfs.NewInMemoryFS(), ShallowDepth: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptions_ApplyDefaults(t *testing.T) {
	opts := Options{FS: billyfs.NewInMemoryFS()}
	opts.applyDefaults()

	assert.Equal(t, DefaultWorkdir, opts.Workdir)
	assert.Equal(t, DefaultStorerCacheSize, opts.StorerCacheSize)

	custom := Options{FS: billyfs.NewInMemoryFS(), Workdir: "src", StorerCacheSize: 10}
	custom.applyDefaults()
	assert.Equal(t, "src", custom.Workdir)
	assert.Equal(t, 10, custom.StorerCacheSize)
}

func TestClone_InvalidArguments(t *testing.T) {
	ctx := context.Background()

	_, err := Clone(ctx, "", &Options{FS: billyfs.NewInMemoryFS()})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = Clone(ctx, "git@github.com:acme/widgets", &Options{})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestClone_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dest := filepath.Join(t.TempDir(), "widgets")
	_, err := Clone(ctx, filepath.Join(t.TempDir(), "missing"), &Options{
		FS:      billyfs.NewBaseOSFS(),
		Workdir: dest,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClone_AuthResolutionFailure(t *testing.T) {
	_, err := Clone(context.Background(), "git@github.com:acme/widgets", &Options{
		FS:      billyfs.NewInMemoryFS(),
		Workdir: "widgets",
		Auth:    NewSSHKeyAuth(filepath.Join(t.TempDir(), "absent_key")),
	})
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestClone_LocalRemote(t *testing.T) {
	requireUploadPack(t)

	origin, hash := newOrigin(t)
	dest := filepath.Join(t.TempDir(), "acme", "widgets")

	repo, err := Clone(context.Background(), origin, &Options{
		FS:      billyfs.NewBaseOSFS(),
		Workdir: dest,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# widgets\n", string(data))

	head, err := repo.Head(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hash, head)

	url, err := repo.RemoteURL("")
	require.NoError(t, err)
	assert.Equal(t, origin, url)

	assert.DirExists(t, filepath.Join(dest, ".git"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	origin, hash := newOrigin(t)

	plain, err := gogit.PlainOpen(origin)
	require.NoError(t, err)
	_, err = plain.CreateRemote(&config.RemoteConfig{
		Name: DefaultRemoteName,
		URLs: []string{"git@github.com:acme/widgets"},
	})
	require.NoError(t, err)

	repo, err := Open(ctx, &Options{FS: billyfs.NewOSFS(origin)})
	require.NoError(t, err)

	head, err := repo.Head(ctx)
	require.NoError(t, err)
	assert.Equal(t, hash, head)

	branch, err := repo.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "master", branch)

	url, err := repo.RemoteURL(DefaultRemoteName)
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/widgets", url)

	_, err = repo.RemoteURL("upstream")
	assert.ErrorIs(t, err, ErrResolveFailed)
}

func TestOpen_NotRepository(t *testing.T) {
	_, err := Open(context.Background(), &Options{FS: billyfs.NewOSFS(t.TempDir())})
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestOpen_EmptyRepository(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	repo, err := Open(ctx, &Options{FS: billyfs.NewOSFS(dir)})
	require.NoError(t, err)

	_, err = repo.Head(ctx)
	assert.ErrorIs(t, err, ErrResolveFailed)
}

func TestOpen_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, &Options{FS: billyfs.NewInMemoryFS()})
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingCredentials struct {
	users []string
}

func (r *recordingCredentials) Credential(username string) (transport.AuthMethod, error) {
	r.users = append(r.users, username)
	return nil, nil
}

func TestCredentialAuth(t *testing.T) {
	rec := &recordingCredentials{}
	ap := CredentialAuth(rec)

	_, err := ap.Method("git@github.com:acme/widgets")
	require.NoError(t, err)
	_, err = ap.Method("ssh://deploy@example.com/acme/widgets.git")
	require.NoError(t, err)

	assert.Equal(t, []string{"git", "deploy"}, rec.users)

	key := NewSSHKeyAuth("/key")
	assert.Same(t, key, CredentialAuth(key))
	assert.Equal(t, "/key", key.KeyPath())
}
