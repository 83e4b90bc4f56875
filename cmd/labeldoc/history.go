package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/labeldoc"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, labeldoc.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'labeldoc run --db <path>' to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d documents  %d resolved  %d failed\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Documents, r.Resolved, r.Failed)
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
		return err
	}

	filter := labeldoc.EntryFilter{RunID: &run.ID}
	if c.Root != "" {
		filter.Root = &c.Root
	}
	entries, err := deps.Runs.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
		return err
	}

	if c.Changed {
		prev, err := previousRun(deps, run.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
			return err
		}
		if prev != nil {
			filter.RunID = &prev.ID
			before, err := deps.Runs.FindEntries(deps.Ctx, filter)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
				return err
			}
			entries = changedEntries(entries, before)
			fmt.Fprintf(deps.Stderr, "%d entries changed since run %s\n", len(entries), prev.ID)
		}
	}

	// Entries are ordered by root, so each root forms one contiguous group.
	var (
		current string
		rs      labeldoc.ResultSet
	)
	for _, e := range entries {
		if rs != nil && e.Root != current {
			if err := printResultSet(deps.Stdout, rs); err != nil {
				return err
			}
			rs = nil
		}
		if rs == nil {
			current = e.Root
			rs = labeldoc.ResultSet{}
		}
		rs.Add(e.Path, e.Label, e.Text)
	}
	if rs != nil {
		if err := printResultSet(deps.Stdout, rs); err != nil {
			return err
		}
	}

	if c.Failures {
		failures, err := deps.Runs.FindFailures(deps.Ctx, run.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
			return err
		}
		for _, f := range failures {
			fmt.Fprintln(deps.Stdout, formatFailure(*f))
		}
	}

	fmt.Fprintf(deps.Stderr, "Run %s: %d roots, %d documents, %d labelled, %d resolved, %d failed\n",
		run.ID, run.Roots, run.Documents, run.Labelled, run.Resolved, run.Failed)
	return nil
}

// previousRun returns the run recorded just before id, or nil if id is the
// oldest run.
func previousRun(deps *Dependencies, id string) (*labeldoc.Run, error) {
	runs, err := deps.Runs.FindRuns(deps.Ctx, labeldoc.RunFilter{})
	if err != nil {
		return nil, err
	}
	for i, r := range runs {
		if r.ID == id {
			if i+1 < len(runs) {
				return runs[i+1], nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

// changedEntries returns the entries whose text hash differs from the entry
// recorded for the same root, path and label in before, or that have no
// such entry.
func changedEntries(entries, before []*labeldoc.Entry) []*labeldoc.Entry {
	type key struct {
		root, path string
		label      labeldoc.Label
	}
	hashes := make(map[key]string, len(before))
	for _, e := range before {
		hashes[key{e.Root, e.Path, e.Label}] = e.TextHash
	}

	var out []*labeldoc.Entry
	for _, e := range entries {
		if h, ok := hashes[key{e.Root, e.Path, e.Label}]; ok && h == e.TextHash {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return labeldoc.Errorf(labeldoc.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
