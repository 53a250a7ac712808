package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/Capswan/cli-gitspace/config"
)

// Role names a path managed by gitspace.
type Role int

const (
	// RoleSpace is the space root.
	RoleSpace Role = iota
	// RoleConfig is the config document inside the space.
	RoleConfig
	// RoleRepositoryStore is the directory holding one clone per repository.
	RoleRepositoryStore
	// RoleCredential is the SSH identity file. It may live outside the space.
	RoleCredential
)

func (r Role) String() string {
	switch r {
	case RoleSpace:
		return "space"
	case RoleConfig:
		return "config"
	case RoleRepositoryStore:
		return "repositories"
	case RoleCredential:
		return "credential"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// PathResolver resolves managed paths. Non-empty fields override the
// corresponding config values.
type PathResolver struct {
	// Space overrides paths.space.
	Space string

	// ConfigFile overrides the config document location as a whole.
	ConfigFile string

	// IdentityFile overrides ssh.identityFile.
	IdentityFile string

	// Home is used to expand a leading "~". Defaults to the user's home.
	Home string
}

// Resolve returns the path for role. It performs no I/O.
//
// Config and RepositoryStore results are prefixed by the Space result,
// except for a ConfigFile override, which is returned as given.
//
// The credential path is returned as configured with a leading "~"
// expanded. It falls back to config.DefaultIdentityFile when unset.
func (r PathResolver) Resolve(cfg *config.Config, role Role) string {
	space := filepath.Clean(r.expand(firstNonEmpty(r.Space, cfg.Paths.Space)))

	switch role {
	case RoleSpace:
		return space
	case RoleConfig:
		if r.ConfigFile != "" {
			return r.expand(r.ConfigFile)
		}
		return filepath.Join(space, cfg.Paths.Config)
	case RoleRepositoryStore:
		return filepath.Join(space, cfg.Paths.Repositories)
	case RoleCredential:
		identity := firstNonEmpty(r.IdentityFile, cfg.SSH.IdentityFile, config.DefaultIdentityFile)
		return r.expand(identity)
	default:
		return ""
	}
}

// Resolve resolves role with no overrides.
func Resolve(cfg *config.Config, role Role) string {
	return PathResolver{}.Resolve(cfg, role)
}

func (r PathResolver) expand(p string) string {
	home := r.Home
	if home == "" {
		home = xdg.Home
	}

	switch {
	case p == "~":
		return home
	case strings.HasPrefix(p, "~/"):
		return filepath.Join(home, p[2:])
	default:
		return p
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
