package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/jsonpad/internal/check"
)

func newCheckCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] path...",
		Short: "Validate JSON files and report the first error in each",
		Long: `Check validates every file concurrently. Directories are searched for
*.json files. Invalid files are reported as path:line:column: message and make
the command exit with status 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runCheck,
	}
	cmd.Flags().IntP("jobs", "j", 0, "files to check at once (0 = number of CPUs)")
	cmd.Flags().BoolP("quiet", "q", false, "only report failures")
	return cmd
}

func (c *cli) runCheck(cmd *cobra.Command, args []string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	quiet, _ := cmd.Flags().GetBool("quiet")

	paths, err := check.Expand(args)
	if err != nil {
		return err
	}
	opts := c.checkOptions()
	opts.Jobs = jobs
	results, err := check.Files(cmd.Context(), paths, opts)
	if err != nil {
		return err
	}

	p := paletteFor(cmd)
	w := cmd.OutOrStdout()
	for _, r := range results {
		switch {
		case r.Err == nil && r.Empty:
			if !quiet {
				fmt.Fprintf(w, "%s: %s\n", r.Path, p.dim.Sprint("empty"))
			}
		case r.Err == nil && r.Valid:
			if !quiet {
				fmt.Fprintf(w, "%s: %s\n", r.Path, p.ok.Sprint("ok"))
			}
		default:
			fmt.Fprintln(w, p.diagnostic(r))
		}
	}

	if n := check.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(results))
	}
	return nil
}
