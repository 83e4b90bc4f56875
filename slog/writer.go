package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/labeldoc"
)

// Ensure LoggingReportWriter implements labeldoc.ReportWriter.
var _ labeldoc.ReportWriter = (*LoggingReportWriter)(nil)

// LoggingReportWriter wraps a ReportWriter with logging.
type LoggingReportWriter struct {
	next   labeldoc.ReportWriter
	name   string
	logger *slog.Logger
}

// NewLoggingReportWriter creates a new LoggingReportWriter. The name
// identifies the destination in log records.
func NewLoggingReportWriter(next labeldoc.ReportWriter, name string, logger *slog.Logger) *LoggingReportWriter {
	return &LoggingReportWriter{next: next, name: name, logger: logger}
}

// WriteReport delegates to the wrapped writer and logs the operation.
func (w *LoggingReportWriter) WriteReport(ctx context.Context, report *labeldoc.Report) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write report",
			"destination", w.name,
			"roots", len(report.Roots),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteReport(ctx, report)
}
