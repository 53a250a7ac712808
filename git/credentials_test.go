package git

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

func writeTestKey(t *testing.T) string {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := gossh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path
}

func TestNewSSHKeyAuth_Options(t *testing.T) {
	keyPath := writeTestKey(t)
	auth := NewSSHKeyAuth(keyPath, WithSSHUser("deploy"), WithAllowedHosts("github.com", "*.corp.example"))

	tests := []struct {
		name     string
		url      string
		wantUser string
		wantNil  bool
	}{
		{name: "URL without user uses configured user", url: "ssh://github.com/acme/widgets.git", wantUser: "deploy"},
		{name: "URL user wins", url: "git@github.com:acme/widgets", wantUser: "git"},
		{name: "wildcard host", url: "ssh://git.corp.example/acme/widgets.git", wantUser: "deploy"},
		{name: "other host gets no auth", url: "git@gitlab.com:acme/widgets", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, err := auth.Method(tt.url)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, method)
				return
			}
			keys, ok := method.(*ssh.PublicKeys)
			require.True(t, ok, "got %T", method)
			assert.Equal(t, tt.wantUser, keys.User)
		})
	}

	assert.Equal(t, keyPath, auth.KeyPath())
}

func TestNewSSHKeyAuth_KnownHosts(t *testing.T) {
	keyPath := writeTestKey(t)
	auth := NewSSHKeyAuth(keyPath, WithKnownHosts(filepath.Join(t.TempDir(), "absent")))

	_, err := auth.Credential("git")
	assert.ErrorContains(t, err, "known_hosts")
}
