package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/labeldoc"
	main "github.com/fwojciec/labeldoc/cmd/labeldoc"
	"github.com/fwojciec/labeldoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with counts", func(t *testing.T) {
		t.Parallel()

		var gotFilter labeldoc.RunFilter
		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter labeldoc.RunFilter) ([]*labeldoc.Run, error) {
				gotFilter = filter
				return []*labeldoc.Run{
					{
						ID:        "run-2",
						StartedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
						Documents: 12,
						Resolved:  10,
						Failed:    1,
					},
					{
						ID:        "run-1",
						StartedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
						Documents: 3,
						Resolved:  2,
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		err := (&main.HistoryCmd{Limit: 5}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Contains(t, stdout.String(), "run-2  2026-03-02T09:00:00Z  12 documents  10 resolved  1 failed")
		assert.Contains(t, stdout.String(), "run-1")
	})

	t.Run("shows hint when no runs exist", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs: &mock.RunService{
				FindRunsFn: func(_ context.Context, _ labeldoc.RunFilter) ([]*labeldoc.Run, error) {
					return []*labeldoc.Run{}, nil
				},
			},
		}

		err := (&main.HistoryCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs recorded")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	runs := func(entries []*labeldoc.Entry) *mock.RunService {
		return &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*labeldoc.Run, error) {
				if id != "run-1" {
					return nil, labeldoc.Errorf(labeldoc.ENOTFOUND, "run not found")
				}
				return &labeldoc.Run{ID: "run-1", Roots: 2, Documents: 3, Labelled: 3, Resolved: 2, Failed: 1}, nil
			},
			FindEntriesFn: func(_ context.Context, filter labeldoc.EntryFilter) ([]*labeldoc.Entry, error) {
				var out []*labeldoc.Entry
				for _, e := range entries {
					if filter.Root != nil && e.Root != *filter.Root {
						continue
					}
					out = append(out, e)
				}
				return out, nil
			},
			FindFailuresFn: func(_ context.Context, _ string) ([]*labeldoc.Failure, error) {
				return []*labeldoc.Failure{
					{Kind: labeldoc.FailureLookupMiss, Root: "rsmGCX", Path: "/gcx/B.xml", Label: "@GCX0099", Message: "label @GCX0099 not found"},
				}, nil
			},
		}
	}

	entries := []*labeldoc.Entry{
		{RunID: "run-1", Root: "Platform", Path: "/platform/P.xml", Label: "@SYS1", Text: "System"},
		{RunID: "run-1", Root: "rsmGCX", Path: "/gcx/A.xml", Label: "@GCX0010", Text: "Text"},
		{RunID: "run-1", Root: "rsmGCX", Path: "/gcx/B.xml", Label: "@GCX0099", Text: ""},
	}

	t.Run("prints one result set per root", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runs:   runs(entries),
		}

		err := (&main.ShowCmd{ID: "run-1"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, labeldoc.Banner+`{
    "/platform/P.xml": {
        "@SYS1": "System"
    }
}
`+labeldoc.Banner+`{
    "/gcx/A.xml": {
        "@GCX0010": "Text"
    },
    "/gcx/B.xml": {
        "@GCX0099": ""
    }
}
`, stdout.String())
		assert.Contains(t, stderr.String(), "Run run-1: 2 roots, 3 documents, 3 labelled, 2 resolved, 1 failed")
	})

	t.Run("filters by root and lists failures", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs(entries),
		}

		err := (&main.ShowCmd{ID: "run-1", Root: "rsmGCX", Failures: true}).Run(deps)

		require.NoError(t, err)
		assert.NotContains(t, stdout.String(), "@SYS1")
		assert.Contains(t, stdout.String(), "@GCX0010")
		assert.Contains(t, stdout.String(), "skip /gcx/B.xml (@GCX0099): lookup_miss: label @GCX0099 not found")
	})

	t.Run("shows only entries changed since previous run", func(t *testing.T) {
		t.Parallel()

		current := []*labeldoc.Entry{
			{RunID: "run-2", Root: "rsmGCX", Path: "/gcx/A.xml", Label: "@GCX0010", Text: "Text", TextHash: "aaaa"},
			{RunID: "run-2", Root: "rsmGCX", Path: "/gcx/B.xml", Label: "@GCX0011", Text: "Reworded", TextHash: "cccc"},
			{RunID: "run-2", Root: "rsmGCX", Path: "/gcx/C.xml", Label: "@GCX0012", Text: "New", TextHash: "dddd"},
		}
		previous := []*labeldoc.Entry{
			{RunID: "run-1", Root: "rsmGCX", Path: "/gcx/A.xml", Label: "@GCX0010", Text: "Text", TextHash: "aaaa"},
			{RunID: "run-1", Root: "rsmGCX", Path: "/gcx/B.xml", Label: "@GCX0011", Text: "Original", TextHash: "bbbb"},
		}
		svc := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*labeldoc.Run, error) {
				return &labeldoc.Run{ID: id}, nil
			},
			FindRunsFn: func(_ context.Context, _ labeldoc.RunFilter) ([]*labeldoc.Run, error) {
				return []*labeldoc.Run{{ID: "run-3"}, {ID: "run-2"}, {ID: "run-1"}}, nil
			},
			FindEntriesFn: func(_ context.Context, filter labeldoc.EntryFilter) ([]*labeldoc.Entry, error) {
				if *filter.RunID == "run-1" {
					return previous, nil
				}
				return current, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runs:   svc,
		}

		err := (&main.ShowCmd{ID: "run-2", Changed: true}).Run(deps)

		require.NoError(t, err)
		assert.NotContains(t, stdout.String(), "/gcx/A.xml")
		assert.Contains(t, stdout.String(), `"@GCX0011": "Reworded"`)
		assert.Contains(t, stdout.String(), `"@GCX0012": "New"`)
		assert.Contains(t, stderr.String(), "2 entries changed since run run-1")
	})

	t.Run("shows all entries of oldest run as changed", func(t *testing.T) {
		t.Parallel()

		svc := runs(entries)
		svc.FindRunsFn = func(_ context.Context, _ labeldoc.RunFilter) ([]*labeldoc.Run, error) {
			return []*labeldoc.Run{{ID: "run-1"}}, nil
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   svc,
		}

		err := (&main.ShowCmd{ID: "run-1", Changed: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "@SYS1")
		assert.Contains(t, stdout.String(), "@GCX0099")
	})

	t.Run("returns error for unknown run", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs:   runs(entries),
		}

		err := (&main.ShowCmd{ID: "nope"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, labeldoc.ENOTFOUND, labeldoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "run not found")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes run when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs: &mock.RunService{
				DeleteRunFn: func(_ context.Context, id string) error {
					deletedID = id
					return nil
				},
			},
		}

		err := (&main.DeleteCmd{ID: "run-1", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "run-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted run run-1")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs:   &mock.RunService{},
		}

		err := (&main.DeleteCmd{ID: "run-1"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, labeldoc.EINVALID, labeldoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})
}
