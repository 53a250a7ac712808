package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Capswan/cli-gitspace/workspace"
)

func newSymlinkCmd(a *app) *cobra.Command {
	var flags struct {
		remove    bool
		targetDir string
	}

	cmd := &cobra.Command{
		Use:   "symlink",
		Short: "Link every cloned repository into a directory",
		Long: "symlink creates {target-dir}/{project} links pointing into the repository\n" +
			"store. Existing files are never replaced. With --remove, only symlinks\n" +
			"named after configured projects are deleted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			dir, err := targetDir(flags.targetDir)
			if err != nil {
				return err
			}

			projector := workspace.NewProjector(a.fs, a.options()...)
			out := cmd.OutOrStdout()

			if flags.remove {
				n, err := projector.Remove(cfg.Projects(), dir)
				fmt.Fprintf(out, "Removed %d symlinks from %s\n", n, dir)
				return err
			}

			store := a.resolver().Resolve(cfg, workspace.RoleRepositoryStore)
			entries := projector.Project(cfg.Repositories, store, dir)
			printLinks(out, entries)

			failed := 0
			for _, e := range entries {
				if e.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d symlinks could not be created", failed, len(entries))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.remove, "remove", false, "Remove project symlinks instead of creating them")
	f.StringVar(&flags.targetDir, "target-dir", "", "Directory for the symlinks (default current directory)")

	return cmd
}
