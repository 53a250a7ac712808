package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/Capswan/cli-gitspace/errors"
)

// SchemaVersion is the current document schema version.
const SchemaVersion = "1.0.0"

// IsCompatible reports whether a document version satisfies ^SchemaVersion.
// An unparsable version is an error.
func IsCompatible(version string) (bool, error) {
	constraint, err := semver.NewConstraint("^" + SchemaVersion)
	if err != nil {
		return false, fmt.Errorf("invalid schema version: %w", err)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("invalid document version %q: %w", version, err)
	}

	return constraint.Check(v), nil
}

// Migrate brings cfg up to SchemaVersion in place and reports whether it
// changed anything.
//
// Unversioned documents predate schema versioning. They share the current
// field layout, so migration stamps the version and fills empty path and
// SSH fields with defaults. Versioned documents are only checked for
// compatibility.
func Migrate(cfg *Config) (bool, error) {
	if cfg == nil {
		return false, errors.New(errors.CodeInvalidInput, "configuration is nil")
	}

	if cfg.Version != "" {
		ok, err := IsCompatible(cfg.Version)
		if err != nil {
			return false, errors.WrapWithContext(err, errors.CodeSchemaFailed,
				"unreadable configuration version", map[string]interface{}{"version": cfg.Version})
		}
		if !ok {
			return false, errors.NewWithContext(errors.CodeSchemaFailed,
				"unsupported configuration version",
				map[string]interface{}{"version": cfg.Version, "supported": "^" + SchemaVersion})
		}
		return false, nil
	}

	cfg.Version = SchemaVersion
	fillDefault(&cfg.Paths.Config, DefaultConfigFile)
	fillDefault(&cfg.Paths.Repositories, DefaultRepositories)
	fillDefault(&cfg.SSH.HostName, DefaultSSHHostName)
	fillDefault(&cfg.SSH.User, DefaultSSHUser)
	fillDefault(&cfg.SSH.IdentityFile, DefaultIdentityFile)
	return true, nil
}

func fillDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
