package auth

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultUsername is used when neither the remote URL nor the provider names a user.
const DefaultUsername = "git"

// SSHAuthProvider provides SSH public-key authentication for git operations.
// Passphrase-protected keys are not supported.
type SSHAuthProvider struct {
	// PrivateKeyPath is the path to the SSH private key file.
	PrivateKeyPath string

	// Username is used when the remote URL carries no user.
	Username string

	// KnownHostsPath is a known_hosts file used to verify host keys.
	// When empty, go-git's default known_hosts lookup applies.
	KnownHostsPath string

	// AllowedHosts restricts authentication to specific host patterns.
	// If empty, authentication is allowed for all SSH URLs.
	AllowedHosts []string

	once        sync.Once
	knownHosts  gossh.HostKeyCallback
	knownHostsE error
}

// NewSSHKeyProvider creates an SSH provider using a private key file.
func NewSSHKeyProvider(keyPath string) *SSHAuthProvider {
	return &SSHAuthProvider{
		PrivateKeyPath: keyPath,
		Username:       DefaultUsername,
	}
}

// Method returns the authentication method for the given remote URL.
// The username embedded in the URL wins over the provider's Username.
// Returns nil if the URL's host is not in AllowedHosts.
//
//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (p *SSHAuthProvider) Method(remoteURL string) (transport.AuthMethod, error) {
	endpoint, err := transport.NewEndpoint(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if endpoint.Protocol != "ssh" {
		return nil, fmt.Errorf("SSH auth provider only supports SSH URLs, got %s", endpoint.Protocol)
	}

	if len(p.AllowedHosts) > 0 && !p.isHostAllowed(endpoint.Host) {
		return nil, nil
	}

	return p.Credential(endpoint.User)
}

// Credential builds public-key auth for username.
// An empty username falls back to the provider's Username, then "git".
//
//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (p *SSHAuthProvider) Credential(username string) (transport.AuthMethod, error) {
	if username == "" {
		username = p.Username
	}
	if username == "" {
		username = DefaultUsername
	}

	if p.PrivateKeyPath == "" {
		return nil, fmt.Errorf("no SSH private key configured")
	}
	if _, err := os.Stat(p.PrivateKeyPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("SSH private key file does not exist: %s", p.PrivateKeyPath)
	}
	auth, err := ssh.NewPublicKeysFromFile(username, p.PrivateKeyPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key from file: %w", err)
	}

	callback, err := p.hostKeyCallback()
	if err != nil {
		return nil, err
	}
	if callback != nil {
		auth.HostKeyCallback = callback
	}
	return auth, nil
}

// hostKeyCallback returns the callback built once from KnownHostsPath, or nil.
func (p *SSHAuthProvider) hostKeyCallback() (gossh.HostKeyCallback, error) {
	if p.KnownHostsPath == "" {
		return nil, nil
	}

	p.once.Do(func() {
		p.knownHosts, p.knownHostsE = knownhosts.New(p.KnownHostsPath)
	})
	if p.knownHostsE != nil {
		return nil, fmt.Errorf("failed to load known_hosts %s: %w", p.KnownHostsPath, p.knownHostsE)
	}
	return p.knownHosts, nil
}

// isHostAllowed checks if the given host matches any of the allowed host patterns.
func (p *SSHAuthProvider) isHostAllowed(host string) bool {
	for _, pattern := range p.AllowedHosts {
		if matchesPattern(host, pattern) {
			return true
		}
	}
	return false
}
