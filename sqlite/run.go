package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/labeldoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ labeldoc.RunService = (*RunService)(nil)

// RunService implements labeldoc.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// hashText computes xxHash of text and returns it as 16 hex digits.
func hashText(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// CreateRun records a completed report with its entries and failures.
func (s *RunService) CreateRun(ctx context.Context, report *labeldoc.Report) (*labeldoc.Run, error) {
	if report == nil {
		return nil, labeldoc.Errorf(labeldoc.EINVALID, "report required")
	}

	run := &labeldoc.Run{
		ID:         uuid.New().String(),
		StartedAt:  report.StartedAt.UTC().Truncate(time.Second),
		FinishedAt: report.FinishedAt.UTC().Truncate(time.Second),
		Roots:      len(report.Roots),
		Documents:  report.Summary.Documents,
		Labelled:   report.Summary.Labelled,
		Resolved:   report.Summary.Resolved,
		Failed:     report.Summary.Failed(),
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, roots, documents, labelled, resolved, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.Format(time.RFC3339), run.FinishedAt.Format(time.RFC3339),
		run.Roots, run.Documents, run.Labelled, run.Resolved, run.Failed); err != nil {
		return nil, err
	}

	seen := make(map[[2]string]struct{})
	for _, root := range report.Roots {
		if err := insertEntries(ctx, tx, run.ID, root, seen); err != nil {
			return nil, err
		}
	}

	for i, f := range report.Failures {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO failures (run_id, position, kind, root, path, label, message)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, string(f.Kind), f.Root, f.Path, string(f.Label), f.Message); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return run, nil
}

// insertEntries records the entries of one root. A path already recorded
// under the same root name by an earlier root of the run is a conflict.
func insertEntries(ctx context.Context, tx *sql.Tx, runID string, root labeldoc.RootResult, seen map[[2]string]struct{}) error {
	paths := make([]string, 0, len(root.Results))
	for path := range root.Results {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		key := [2]string{root.Root.Name, path}
		if _, ok := seen[key]; ok {
			return labeldoc.Errorf(labeldoc.ECONFLICT, "root %q records %s twice", root.Root.Name, path)
		}
		seen[key] = struct{}{}

		for label, text := range root.Results[path] {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO entries (run_id, root, path, label, text, text_hash)
				VALUES (?, ?, ?, ?, ?, ?)
			`, runID, root.Root.Name, path, string(label), text, hashText(text)); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*labeldoc.Run, error) {
	runs, err := s.FindRuns(ctx, labeldoc.RunFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, labeldoc.Errorf(labeldoc.ENOTFOUND, "run not found")
	}
	return runs[0], nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter labeldoc.RunFilter) ([]*labeldoc.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, started_at, finished_at, roots, documents, labelled, resolved, failed FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*labeldoc.Run
	for rows.Next() {
		var run labeldoc.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.Roots, &run.Documents,
			&run.Labelled, &run.Resolved, &run.Failed); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// FindEntries retrieves entries matching the filter, ordered by root and path.
func (s *RunService) FindEntries(ctx context.Context, filter labeldoc.EntryFilter) ([]*labeldoc.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT run_id, root, path, label, text, text_hash FROM entries WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Root != nil {
		query.WriteString(" AND root = ?")
		args = append(args, *filter.Root)
	}
	if filter.Label != nil {
		query.WriteString(" AND label = ?")
		args = append(args, string(*filter.Label))
	}

	query.WriteString(" ORDER BY root ASC, path ASC")
	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*labeldoc.Entry
	for rows.Next() {
		var e labeldoc.Entry
		var label string
		if err := rows.Scan(&e.RunID, &e.Root, &e.Path, &label, &e.Text, &e.TextHash); err != nil {
			return nil, err
		}
		e.Label = labeldoc.Label(label)
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// FindFailures retrieves the failures recorded for a run in the order they
// occurred.
func (s *RunService) FindFailures(ctx context.Context, runID string) ([]*labeldoc.Failure, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, root, path, label, message
		FROM failures
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []*labeldoc.Failure
	for rows.Next() {
		var f labeldoc.Failure
		var kind, label string
		if err := rows.Scan(&kind, &f.Root, &f.Path, &label, &f.Message); err != nil {
			return nil, err
		}
		f.Kind = labeldoc.FailureKind(kind)
		f.Label = labeldoc.Label(label)
		failures = append(failures, &f)
	}

	return failures, rows.Err()
}

// DeleteRun permanently removes a run with its entries and failures.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return labeldoc.Errorf(labeldoc.ENOTFOUND, "run not found")
	}

	return nil
}

// parseTime parses an RFC3339 column value.
func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// paginate appends LIMIT and OFFSET clauses for positive values. SQLite
// only accepts OFFSET after a LIMIT, so an offset alone uses LIMIT -1.
func paginate(query *strings.Builder, args *[]any, limit, offset int) {
	if limit <= 0 && offset <= 0 {
		return
	}
	if limit <= 0 {
		limit = -1
	}
	query.WriteString(" LIMIT ?")
	*args = append(*args, limit)
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
