package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Capswan/cli-gitspace/workspace"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which configured repositories are in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			states, err := workspace.Inspect(cmd.Context(), a.fs, cfg, a.options()...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			present := 0
			for _, s := range states {
				switch {
				case !s.Present:
					fmt.Fprintf(out, "missing  %s\n", s.Repository)
				case s.Err != nil:
					present++
					fmt.Fprintf(out, "present  %s (%v)\n", s.Repository, s.Err)
				default:
					present++
					fmt.Fprintf(out, "present  %s %s@%s", s.Repository, s.Branch, shortHash(s.Head))
					if s.RemoteURL != "" {
						fmt.Fprintf(out, " (%s)", s.RemoteURL)
					}
					fmt.Fprintln(out)
				}
			}
			fmt.Fprintf(out, "\n%d of %d repositories present\n", present, len(states))
			return nil
		},
	}
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
