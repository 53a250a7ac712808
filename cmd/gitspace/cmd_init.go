package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Capswan/cli-gitspace/config"
	"github.com/Capswan/cli-gitspace/workspace"
)

func newInitCmd(a *app) *cobra.Command {
	var flags struct {
		force bool
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config and create an empty repository store",
		Long: "init writes a default config document and creates the repository store.\n" +
			"An existing config document is kept as is unless --force is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if a.flags.space != "" {
				cfg.Paths.Space = a.flags.space
			}
			if a.flags.sshKey != "" {
				cfg.SSH.IdentityFile = a.flags.sshKey
			}

			opts := append(a.options(), workspace.WithForce(flags.force))
			res, err := workspace.Init(cmd.Context(), a.fs, cfg, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.ConfigWritten {
				fmt.Fprintf(out, "Wrote %s\n", res.ConfigPath)
			} else {
				fmt.Fprintf(out, "Kept existing %s (use --force to overwrite)\n", res.ConfigPath)
			}
			fmt.Fprintf(out, "Repository store: %s\n", res.StorePath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing config document")
	return cmd
}
