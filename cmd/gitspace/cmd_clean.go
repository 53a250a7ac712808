package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Capswan/cli-gitspace/workspace"
)

func newCleanCmd(a *app) *cobra.Command {
	var flags struct {
		target    string
		targetDir string
	}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove a managed resource",
		Long: "clean deletes one managed resource: the whole space, the config\n" +
			"document, the repository store, or the project symlinks in --target-dir.\n" +
			"A resource that does not exist is not an error. Do not run clean while a\n" +
			"sync is running against the same space.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resource, err := workspace.ParseResource(flags.target)
			if err != nil {
				return err
			}

			cfg, err := a.loadConfigOrDefault()
			if err != nil {
				return err
			}

			opts := a.options()
			if resource == workspace.ResourceSymlinks {
				dir, err := targetDir(flags.targetDir)
				if err != nil {
					return err
				}
				opts = append(opts, workspace.WithProjection(dir))
			}

			res, err := workspace.NewCleaner(a.fs, cfg, opts...).Clean(cmd.Context(), resource)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case res.Missing:
				fmt.Fprintf(out, "Nothing to clean: %s %s does not exist\n", res.Resource, res.Path)
			case resource == workspace.ResourceSymlinks:
				fmt.Fprintf(out, "Removed %d symlinks from %s\n", res.Removed, res.Path)
			default:
				fmt.Fprintf(out, "Removed %s %s\n", res.Resource, res.Path)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.target, "target", workspace.ResourceSpace.String(),
		"What to remove: space, config, repositories, symlinks")
	f.StringVar(&flags.targetDir, "target-dir", "", "Directory holding the symlinks (default current directory)")

	return cmd
}
