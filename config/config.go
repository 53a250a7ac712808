// Package config defines the gitspace workspace document and reads and
// writes it through the fs.Filesystem abstraction.
//
// A document lists the repositories that make up a space and the SSH
// settings used to clone them:
//
//	{
//	  "version": "1.0.0",
//	  "paths": { "space": ".space", "config": "config.json", "repositories": "repositories" },
//	  "ssh": { "host": "github", "hostName": "github.com", "user": "git", "identityFile": "~/.ssh/id_rsa" },
//	  "repositories": [ { "namespace": "acme", "project": "widgets" } ],
//	  "sync": { "enabled": true, "cron": "30 0 * * *" }
//	}
//
// JSON documents may contain comments and trailing commas. Files ending in
// .yaml or .yml are read and written as YAML with the same field names.
// Documents without a version are treated as legacy and migrated on load.
package config

import "fmt"

// Default values for a fresh workspace document.
const (
	DefaultSpace        = ".space"
	DefaultConfigFile   = "config.json"
	DefaultRepositories = "repositories"
	DefaultSSHHost      = "github"
	DefaultSSHHostName  = "github.com"
	DefaultSSHUser      = "git"
	DefaultIdentityFile = "~/.ssh/id_rsa"
	DefaultCron         = "30 0 * * *"
)

// Config is the workspace document.
type Config struct {
	Version      string       `json:"version" yaml:"version"`
	Paths        Paths        `json:"paths" yaml:"paths"`
	SSH          SSH          `json:"ssh" yaml:"ssh"`
	Repositories []Repository `json:"repositories" yaml:"repositories"`
	Sync         Sync         `json:"sync" yaml:"sync"`
}

// Paths locates the space and the managed entries inside it.
// Config and Repositories are relative to Space.
type Paths struct {
	Space        string `json:"space" yaml:"space"`
	Config       string `json:"config" yaml:"config"`
	Repositories string `json:"repositories" yaml:"repositories"`
}

// SSH mirrors the fields of an ~/.ssh/config host entry.
type SSH struct {
	Host         string `json:"host" yaml:"host"`
	HostName     string `json:"hostName" yaml:"hostName"`
	User         string `json:"user" yaml:"user"`
	IdentityFile string `json:"identityFile" yaml:"identityFile"`
	KnownHosts   string `json:"knownHosts,omitempty" yaml:"knownHosts,omitempty"`
}

// Repository names one remote repository.
type Repository struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Project   string `json:"project" yaml:"project"`
}

// String returns "namespace/project".
func (r Repository) String() string {
	return r.Namespace + "/" + r.Project
}

// Sync holds scheduling and execution settings for sync runs.
// Cron is stored for external schedulers; gitspace itself does not schedule.
type Sync struct {
	Enabled     bool     `json:"enabled" yaml:"enabled"`
	Cron        string   `json:"cron" yaml:"cron"`
	Concurrency int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Timeout     Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// RemoteURL returns the scp-like SSH URL for r: user@hostName:namespace/project.
func (c *Config) RemoteURL(r Repository) string {
	return c.SSH.RemoteURL(r)
}

// RemoteURL returns the scp-like SSH URL for r on this host.
// An empty User means DefaultSSHUser.
func (s SSH) RemoteURL(r Repository) string {
	user := s.User
	if user == "" {
		user = DefaultSSHUser
	}
	return fmt.Sprintf("%s@%s:%s/%s", user, s.HostName, r.Namespace, r.Project)
}

// Projects returns the project names of all configured repositories, in order.
func (c *Config) Projects() []string {
	names := make([]string, 0, len(c.Repositories))
	for _, r := range c.Repositories {
		names = append(names, r.Project)
	}
	return names
}

// Default returns a new document populated with default values.
// Each call returns a fresh value.
func Default() *Config {
	return &Config{
		Version: SchemaVersion,
		Paths: Paths{
			Space:        DefaultSpace,
			Config:       DefaultConfigFile,
			Repositories: DefaultRepositories,
		},
		SSH: SSH{
			Host:         DefaultSSHHost,
			HostName:     DefaultSSHHostName,
			User:         DefaultSSHUser,
			IdentityFile: DefaultIdentityFile,
		},
		Repositories: []Repository{
			{Namespace: "capswan", Project: "cli-gitspace"},
			{Namespace: "capswan", Project: "cli-ftr"},
		},
		Sync: Sync{
			Enabled: true,
			Cron:    DefaultCron,
		},
	}
}
