package mock

import (
	"context"

	"github.com/fwojciec/labeldoc"
)

var _ labeldoc.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of labeldoc.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, report *labeldoc.Report) error
}

func (w *ReportWriter) WriteReport(ctx context.Context, report *labeldoc.Report) error {
	return w.WriteReportFn(ctx, report)
}
