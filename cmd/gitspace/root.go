package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Capswan/cli-gitspace/config"
	"github.com/Capswan/cli-gitspace/fs"
	billyfs "github.com/Capswan/cli-gitspace/fs/billy"
	"github.com/Capswan/cli-gitspace/workspace"
)

// version is set at build time via -ldflags.
var version = "dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	space      string
	configFile string
	sshKey     string
	logLevel   string
	logFormat  string
}

// app is the state built once per invocation and handed to subcommands.
type app struct {
	flags  globalFlags
	fs     fs.Filesystem
	logger *slog.Logger
}

// resolver turns the global flags into path overrides.
func (a *app) resolver() workspace.PathResolver {
	return workspace.PathResolver{
		Space:        a.flags.space,
		ConfigFile:   a.flags.configFile,
		IdentityFile: a.flags.sshKey,
	}
}

// configPath locates the config document before it is read: --config-file,
// else {space}/config.json with the space from --space or the default.
func (a *app) configPath() string {
	return a.resolver().Resolve(config.Default(), workspace.RoleConfig)
}

// loadConfig reads the workspace document.
func (a *app) loadConfig() (*config.Config, error) {
	return config.Load(a.fs, a.configPath())
}

// loadConfigOrDefault is loadConfig, except that a missing document yields
// the defaults so resources can still be located.
func (a *app) loadConfigOrDefault() (*config.Config, error) {
	exists, err := config.Exists(a.fs, a.configPath())
	if err != nil {
		return nil, err
	}
	if !exists {
		a.logger.Debug("no configuration found, using defaults", "path", a.configPath())
		return config.Default(), nil
	}
	return a.loadConfig()
}

// options returns the workspace options common to all commands.
func (a *app) options() []workspace.Option {
	return []workspace.Option{
		workspace.WithLogger(a.logger),
		workspace.WithResolver(a.resolver()),
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{fs: billyfs.NewBaseOSFS()}

	rootCmd := &cobra.Command{
		Use:   "gitspace",
		Short: "Keep a space of git clones in step with a repository list",
		Long: "gitspace materializes a space directory holding one clone per configured\n" +
			"repository, projects convenience symlinks, and cleans managed resources.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(stderr, a.flags.logLevel, a.flags.logFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	f := rootCmd.PersistentFlags()
	f.StringVar(&a.flags.space, "space", "", "Space directory (overrides paths.space)")
	f.StringVar(&a.flags.configFile, "config-file", "", "Config document path (default {space}/config.json)")
	f.StringVar(&a.flags.sshKey, "ssh-key", "", "SSH private key (overrides ssh.identityFile)")
	f.StringVar(&a.flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	f.StringVar(&a.flags.logFormat, "log-format", "text", "Log format: text, json")

	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newSyncCmd(a))
	rootCmd.AddCommand(newCleanCmd(a))
	rootCmd.AddCommand(newSymlinkCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))

	return rootCmd
}
