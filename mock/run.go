package mock

import (
	"context"

	"github.com/fwojciec/labeldoc"
)

var _ labeldoc.RunService = (*RunService)(nil)

// RunService is a mock implementation of labeldoc.RunService.
type RunService struct {
	CreateRunFn    func(ctx context.Context, report *labeldoc.Report) (*labeldoc.Run, error)
	FindRunByIDFn  func(ctx context.Context, id string) (*labeldoc.Run, error)
	FindRunsFn     func(ctx context.Context, filter labeldoc.RunFilter) ([]*labeldoc.Run, error)
	FindEntriesFn  func(ctx context.Context, filter labeldoc.EntryFilter) ([]*labeldoc.Entry, error)
	FindFailuresFn func(ctx context.Context, runID string) ([]*labeldoc.Failure, error)
	DeleteRunFn    func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, report *labeldoc.Report) (*labeldoc.Run, error) {
	return s.CreateRunFn(ctx, report)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*labeldoc.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter labeldoc.RunFilter) ([]*labeldoc.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindEntries(ctx context.Context, filter labeldoc.EntryFilter) ([]*labeldoc.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *RunService) FindFailures(ctx context.Context, runID string) ([]*labeldoc.Failure, error) {
	return s.FindFailuresFn(ctx, runID)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
