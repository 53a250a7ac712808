package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/Capswan/cli-gitspace/errors"
	"github.com/Capswan/cli-gitspace/fs"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file name: .yaml and .yml are YAML,
// anything else is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a document. JSON input may contain comments and trailing commas.
func Decode(data []byte, format Format) (*Config, error) {
	cfg := &Config{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	return cfg, nil
}

// Encode renders cfg with two-space indentation and a trailing newline.
func Encode(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Load reads, migrates, and validates the document at path.
// Every failure is a CodeInvalidConfig error carrying the path; a missing
// file still matches os.ErrNotExist.
func Load(fsys fs.Filesystem, path string) (*Config, error) {
	ctx := map[string]interface{}{"path": path}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to read configuration", ctx)
	}

	cfg, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to parse configuration", ctx)
	}

	if _, err := Migrate(cfg); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to migrate configuration", ctx)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "invalid configuration", ctx)
	}

	return cfg, nil
}

// Save validates cfg and writes it to path, creating parent directories.
// An existing file is replaced.
func Save(fsys fs.Filesystem, path string, cfg *Config) error {
	ctx := map[string]interface{}{"path": path}

	if err := Validate(cfg); err != nil {
		return errors.WrapWithContext(err, errors.CodeInvalidConfig, "refusing to save invalid configuration", ctx)
	}

	data, err := Encode(cfg, FormatFor(path))
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeInternal, "failed to encode configuration", ctx)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return errors.FromFilesystem(err, "failed to create configuration directory", dir)
		}
	}

	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return errors.FromFilesystem(err, "failed to write configuration", path)
	}
	return nil
}

// Exists reports whether a document is present at path.
func Exists(fsys fs.Filesystem, path string) (bool, error) {
	ok, err := fsys.Exists(path)
	if err != nil {
		return false, errors.FromFilesystem(err, "failed to stat configuration", path)
	}
	return ok, nil
}
