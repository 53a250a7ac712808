package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Capswan/cli-gitspace/errors"
)

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		version string
		want    bool
		wantErr bool
	}{
		{"1.0.0", true, false},
		{"1.0.7", true, false},
		{"1.3.0", true, false},
		{"0.9.0", false, false},
		{"2.0.0", false, false},
		{"not-a-version", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, err := IsCompatible(tt.version)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMigrate(t *testing.T) {
	t.Run("legacy document is stamped and filled", func(t *testing.T) {
		cfg := &Config{
			Paths:        Paths{Space: ".space"},
			SSH:          SSH{Host: "github"},
			Repositories: []Repository{{Namespace: "acme", Project: "widgets"}},
		}

		migrated, err := Migrate(cfg)
		require.NoError(t, err)
		assert.True(t, migrated)

		assert.Equal(t, SchemaVersion, cfg.Version)
		assert.Equal(t, DefaultConfigFile, cfg.Paths.Config)
		assert.Equal(t, DefaultRepositories, cfg.Paths.Repositories)
		assert.Equal(t, DefaultSSHHostName, cfg.SSH.HostName)
		assert.Equal(t, DefaultSSHUser, cfg.SSH.User)
		assert.Equal(t, DefaultIdentityFile, cfg.SSH.IdentityFile)
		assert.Equal(t, ".space", cfg.Paths.Space)
	})

	t.Run("current document untouched", func(t *testing.T) {
		cfg := Default()
		cfg.SSH.User = ""

		migrated, err := Migrate(cfg)
		require.NoError(t, err)
		assert.False(t, migrated)
		assert.Empty(t, cfg.SSH.User)
	})

	t.Run("incompatible version", func(t *testing.T) {
		_, err := Migrate(&Config{Version: "2.1.0"})
		assert.Equal(t, errors.CodeSchemaFailed, errors.CodeOf(err))
		assert.ErrorContains(t, err, "supported=^1.0.0")
	})

	t.Run("unparsable version", func(t *testing.T) {
		_, err := Migrate(&Config{Version: "one"})
		assert.Equal(t, errors.CodeSchemaFailed, errors.CodeOf(err))
		assert.ErrorContains(t, err, "unreadable configuration version")
	})

	t.Run("nil", func(t *testing.T) {
		_, err := Migrate(nil)
		assert.Equal(t, errors.CodeInvalidInput, errors.CodeOf(err))
	})
}
