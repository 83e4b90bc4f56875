package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/labeldoc"
	"github.com/fwojciec/labeldoc/pipeline"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	progress := func(e pipeline.ProgressEvent) {
		if e.Type == pipeline.ProgressRootFinished {
			fmt.Fprintf(deps.Stderr, "%s: %d documents\n", e.Root.Name, e.Total)
		}
	}

	report, err := deps.Pipeline.Run(deps.Ctx, deps.Config.Roots, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
		return err
	}

	for _, root := range report.Roots {
		if err := printResultSet(deps.Stdout, root.Results); err != nil {
			return err
		}
	}

	for _, f := range report.Failures {
		fmt.Fprintln(deps.Stderr, formatFailure(f))
	}

	if err := deps.Writer.WriteReport(deps.Ctx, report); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
		return err
	}

	if deps.Runs != nil {
		run, err := deps.Runs.CreateRun(deps.Ctx, report)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Recorded run %s\n", run.ID)
	}

	fmt.Fprintln(deps.Stderr, labeldoc.FormatSummary(report.Summary))
	return nil
}

// printResultSet writes the banner followed by rs as JSON.
func printResultSet(w io.Writer, rs labeldoc.ResultSet) error {
	out, err := labeldoc.FormatResultSet(rs)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	fmt.Fprintf(w, "%s%s\n", labeldoc.Banner, out)
	return nil
}

func formatFailure(f labeldoc.Failure) string {
	if f.Label != "" {
		return fmt.Sprintf("skip %s (%s): %s: %s", f.Path, f.Label, f.Kind, f.Message)
	}
	return fmt.Sprintf("skip %s: %s: %s", f.Path, f.Kind, f.Message)
}
