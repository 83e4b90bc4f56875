// Package pipeline resolves the developer documentation of source roots.
// It coordinates document scanning, reference extraction, and label
// resolution, isolating per-document and per-label failures.
package pipeline

import (
	"context"
	"time"

	"github.com/fwojciec/labeldoc"
)

// Pipeline composes a Scanner, Extractor, and Resolver over source roots.
type Pipeline struct {
	Scanner   labeldoc.Scanner
	Extractor labeldoc.Extractor
	Resolver  labeldoc.Resolver
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Root      labeldoc.SourceRoot
	Path      string
	Completed int
	Total     int
	Failure   *labeldoc.Failure
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressRootStarted ProgressType = iota
	ProgressDocument
	ProgressRootFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run processes roots sequentially and returns one result per root, in
// order, together with every failure encountered. Failures never stop the
// run; only context cancellation does.
func (p *Pipeline) Run(ctx context.Context, roots []labeldoc.SourceRoot, progress ProgressFunc) (*labeldoc.Report, error) {
	report := &labeldoc.Report{
		StartedAt: time.Now().UTC(),
		Roots:     make([]labeldoc.RootResult, 0, len(roots)),
		Summary: labeldoc.Summary{
			Roots:    len(roots),
			Failures: make(map[labeldoc.FailureKind]int),
		},
	}

	for _, root := range roots {
		result, err := p.runRoot(ctx, root, report, progress)
		if err != nil {
			return nil, err
		}
		report.Roots = append(report.Roots, result)
	}

	report.FinishedAt = time.Now().UTC()
	return report, nil
}

// runRoot builds the result set of a single root. It returns an error only
// when ctx is done.
func (p *Pipeline) runRoot(ctx context.Context, root labeldoc.SourceRoot, report *labeldoc.Report, progress ProgressFunc) (labeldoc.RootResult, error) {
	result := labeldoc.RootResult{Root: root, Results: labeldoc.ResultSet{}}

	paths, err := p.Scanner.Scan(ctx, root.Path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		report.AddFailure(labeldoc.Failure{
			Kind:    labeldoc.FailureScan,
			Root:    root.Name,
			Path:    root.Path,
			Message: errorText(err),
		})
		return result, nil
	}

	report.Summary.Documents += len(paths)
	notify(progress, ProgressEvent{Type: ProgressRootStarted, Root: root, Total: len(paths)})

	for i, path := range paths {
		failure, err := p.processDocument(ctx, root, path, result.Results, report)
		if err != nil {
			return result, err
		}
		if failure != nil {
			report.AddFailure(*failure)
		}
		notify(progress, ProgressEvent{
			Type:      ProgressDocument,
			Root:      root,
			Path:      path,
			Completed: i + 1,
			Total:     len(paths),
			Failure:   failure,
		})
	}

	notify(progress, ProgressEvent{
		Type:      ProgressRootFinished,
		Root:      root,
		Completed: len(paths),
		Total:     len(paths),
	})
	return result, nil
}

// processDocument extracts and resolves the label of one document into rs.
// It returns the failure to record, if any. The error is non-nil only when
// ctx is done.
func (p *Pipeline) processDocument(ctx context.Context, root labeldoc.SourceRoot, path string, rs labeldoc.ResultSet, report *labeldoc.Report) (*labeldoc.Failure, error) {
	ref, err := p.Extractor.Extract(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return &labeldoc.Failure{
			Kind:    labeldoc.FailureParse,
			Root:    root.Name,
			Path:    path,
			Message: errorText(err),
		}, nil
	}

	// Documents without a label, including an empty element, are dropped.
	if ref == nil || ref.Label == "" {
		return nil, nil
	}
	report.Summary.Labelled++

	text, err := p.Resolver.Resolve(ctx, ref.Label)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		rs.Add(path, ref.Label, "")
		return &labeldoc.Failure{
			Kind:    labeldoc.FailureKindOf(err),
			Root:    root.Name,
			Path:    path,
			Label:   ref.Label,
			Message: errorText(err),
		}, nil
	}

	report.Summary.Resolved++
	rs.Add(path, ref.Label, text)
	return nil, nil
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

// errorText returns the message of application errors and the full text
// of any other error.
func errorText(err error) string {
	if labeldoc.ErrorCode(err) == labeldoc.EINTERNAL {
		return err.Error()
	}
	return labeldoc.ErrorMessage(err)
}
