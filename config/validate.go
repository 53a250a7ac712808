package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Capswan/cli-gitspace/errors"
)

// Validate checks the structural invariants of cfg and reports every
// violation in a single CodeInvalidConfig error.
//
//   - paths.space is non-empty.
//   - paths.config and paths.repositories are non-empty, relative, stay
//     inside the space, and differ from each other.
//   - ssh.hostName is set.
//   - every repository has a namespace and a project; neither is absolute
//     nor contains "..", and the project is a single path element.
//   - project names are unique, since each one names a directory in the store.
//   - sync.concurrency and sync.timeout are not negative.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.CodeInvalidInput, "configuration is nil")
	}

	var problems []string

	if strings.TrimSpace(cfg.Paths.Space) == "" {
		problems = append(problems, "paths.space must not be empty")
	}
	if msg := checkNested("paths.config", cfg.Paths.Config); msg != "" {
		problems = append(problems, msg)
	}
	if msg := checkNested("paths.repositories", cfg.Paths.Repositories); msg != "" {
		problems = append(problems, msg)
	}
	if cfg.Paths.Config != "" && filepath.Clean(cfg.Paths.Config) == filepath.Clean(cfg.Paths.Repositories) {
		problems = append(problems, "paths.config and paths.repositories must differ")
	}

	if strings.TrimSpace(cfg.SSH.HostName) == "" {
		problems = append(problems, "ssh.hostName must not be empty")
	}

	seen := make(map[string]int, len(cfg.Repositories))
	for i, r := range cfg.Repositories {
		problems = append(problems, checkRepository(i, r)...)
		if first, dup := seen[r.Project]; dup && r.Project != "" {
			problems = append(problems,
				fmt.Sprintf("repositories[%d]: project %q duplicates repositories[%d]", i, r.Project, first))
			continue
		}
		seen[r.Project] = i
	}

	if cfg.Sync.Concurrency < 0 {
		problems = append(problems, "sync.concurrency must not be negative")
	}
	if cfg.Sync.Timeout < 0 {
		problems = append(problems, "sync.timeout must not be negative")
	}

	if len(problems) > 0 {
		return errors.New(
			errors.CodeInvalidConfig,
			fmt.Sprintf("configuration validation failed: %s", strings.Join(problems, "; ")),
		)
	}
	return nil
}

// checkNested validates a path that must live inside the space.
func checkNested(field, p string) string {
	switch {
	case p == "":
		return field + " must not be empty"
	case filepath.IsAbs(p):
		return fmt.Sprintf("%s must be relative to the space, got %q", field, p)
	case !filepath.IsLocal(p) || filepath.Clean(p) == ".":
		return fmt.Sprintf("%s must stay inside the space, got %q", field, p)
	}
	return ""
}

func checkRepository(i int, r Repository) []string {
	var problems []string
	prefix := fmt.Sprintf("repositories[%d]", i)

	switch {
	case r.Namespace == "":
		problems = append(problems, prefix+": namespace must not be empty")
	case filepath.IsAbs(r.Namespace) || !filepath.IsLocal(r.Namespace) || hasDotDot(r.Namespace):
		problems = append(problems, fmt.Sprintf("%s: invalid namespace %q", prefix, r.Namespace))
	}

	switch {
	case r.Project == "":
		problems = append(problems, prefix+": project must not be empty")
	case r.Project == "." || r.Project == ".." || strings.ContainsAny(r.Project, `/\`):
		problems = append(problems, fmt.Sprintf("%s: invalid project %q", prefix, r.Project))
	}

	return problems
}

func hasDotDot(p string) bool {
	for _, seg := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return true
		}
	}
	return false
}
