package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/Capswan/cli-gitspace/git/internal/auth"
)

// SSHKeyOption configures an SSHKeyAuth.
type SSHKeyOption func(*auth.SSHAuthProvider)

// WithKnownHosts verifies remote host keys against a known_hosts file.
func WithKnownHosts(path string) SSHKeyOption {
	return func(p *auth.SSHAuthProvider) {
		p.KnownHostsPath = path
	}
}

// WithAllowedHosts limits the hosts credentials are offered to. Patterns may
// carry one wildcard label, as in "*.example.com". Other hosts get no auth.
func WithAllowedHosts(hosts ...string) SSHKeyOption {
	return func(p *auth.SSHAuthProvider) {
		p.AllowedHosts = hosts
	}
}

// WithSSHUser sets the username used when the remote URL names none.
func WithSSHUser(user string) SSHKeyOption {
	return func(p *auth.SSHAuthProvider) {
		p.Username = user
	}
}

// SSHKeyAuth authenticates with an unencrypted private key file.
// It satisfies both AuthProvider and CredentialProvider.
type SSHKeyAuth struct {
	provider *auth.SSHAuthProvider
}

// NewSSHKeyAuth returns key-file credentials for keyPath.
// The key is read lazily, on each Credential call.
func NewSSHKeyAuth(keyPath string, opts ...SSHKeyOption) *SSHKeyAuth {
	p := auth.NewSSHKeyProvider(keyPath)
	for _, opt := range opts {
		opt(p)
	}
	return &SSHKeyAuth{provider: p}
}

// KeyPath returns the private key file in use.
func (a *SSHKeyAuth) KeyPath() string {
	return a.provider.PrivateKeyPath
}

// Method implements AuthProvider.
//
//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (a *SSHKeyAuth) Method(remoteURL string) (transport.AuthMethod, error) {
	return a.provider.Method(remoteURL)
}

// Credential implements CredentialProvider.
//
//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (a *SSHKeyAuth) Credential(username string) (transport.AuthMethod, error) {
	return a.provider.Credential(username)
}

// CredentialAuth adapts a CredentialProvider to an AuthProvider by passing
// it the username embedded in each remote URL.
func CredentialAuth(cp CredentialProvider) AuthProvider {
	if ap, ok := cp.(AuthProvider); ok {
		return ap
	}
	return credentialAuth{cp}
}

type credentialAuth struct {
	cp CredentialProvider
}

//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (c credentialAuth) Method(remoteURL string) (transport.AuthMethod, error) {
	endpoint, err := transport.NewEndpoint(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	return c.cp.Credential(endpoint.User)
}

var (
	_ AuthProvider       = (*SSHKeyAuth)(nil)
	_ CredentialProvider = (*SSHKeyAuth)(nil)
)
