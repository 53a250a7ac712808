package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Capswan/cli-gitspace/workspace"
)

func newSyncCmd(a *app) *cobra.Command {
	var flags struct {
		concurrency int
		timeout     time.Duration
		depth       int
		strict      bool
		link        bool
		targetDir   string
	}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Clone every configured repository that is not yet in the store",
		Long: "sync clones each configured repository into the repository store.\n" +
			"Repositories whose directory already has content are skipped; they are\n" +
			"never pulled. A failing repository does not stop the others. sync exits\n" +
			"non-zero on such failures only with --strict. A missing repository store\n" +
			"aborts the run.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			opts := append(a.options(),
				workspace.WithConcurrency(flags.concurrency),
				workspace.WithTimeout(flags.timeout),
				workspace.WithDepth(flags.depth),
			)
			if flags.link {
				dir, err := targetDir(flags.targetDir)
				if err != nil {
					return err
				}
				opts = append(opts, workspace.WithProjection(dir))
			}

			report, err := workspace.NewOrchestrator(a.fs).Sync(cmd.Context(), cfg, opts...)
			if len(report.Outcomes) > 0 {
				printReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}

			if failed := report.Count(workspace.StatusFailed); failed > 0 {
				if flags.strict {
					return fmt.Errorf("%d of %d repositories failed", failed, len(report.Outcomes))
				}
				a.logger.Warn("some repositories failed", "failed", failed, "total", len(report.Outcomes))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.concurrency, "concurrency", 0, "Parallel clones (default sync.concurrency, else 1)")
	f.DurationVar(&flags.timeout, "timeout", 0, "Abort the whole run after this long (default sync.timeout)")
	f.IntVar(&flags.depth, "depth", 0, "Shallow clone depth (0 clones full history)")
	f.BoolVar(&flags.strict, "strict", false, "Exit non-zero when any repository fails")
	f.BoolVar(&flags.link, "link", false, "Project symlinks after syncing")
	f.StringVar(&flags.targetDir, "target-dir", "", "Directory for --link symlinks (default current directory)")

	return cmd
}

func printReport(w io.Writer, report workspace.Report) {
	for _, o := range report.Outcomes {
		switch o.Status {
		case workspace.StatusFailed:
			fmt.Fprintf(w, "%-8s %s: %v\n", o.Status, o.Repository, o.Err)
		case workspace.StatusSkipped:
			fmt.Fprintf(w, "%-8s %s (%s)\n", o.Status, o.Repository, o.Reason)
		default:
			fmt.Fprintf(w, "%-8s %s -> %s (%s)\n", o.Status, o.Repository, o.Destination, o.Duration.Round(time.Millisecond))
		}
	}
	printLinks(w, report.Links)

	fmt.Fprintf(w, "\n%d cloned, %d skipped, %d failed in %s\n",
		report.Count(workspace.StatusCloned),
		report.Count(workspace.StatusSkipped),
		report.Count(workspace.StatusFailed),
		report.Duration.Round(time.Millisecond),
	)
}

func printLinks(w io.Writer, links []workspace.SymlinkEntry) {
	for _, l := range links {
		if l.Err != nil {
			fmt.Fprintf(w, "link     %s: %v\n", l.Destination, l.Err)
			continue
		}
		fmt.Fprintf(w, "link     %s -> %s\n", l.Destination, l.Source)
	}
}

// targetDir returns dir, or the working directory when dir is empty.
func targetDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return wd, nil
}
