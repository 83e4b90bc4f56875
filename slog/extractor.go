package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/labeldoc"
)

// Ensure LoggingExtractor implements labeldoc.Extractor.
var _ labeldoc.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging. Failures are
// logged as warnings.
type LoggingExtractor struct {
	next   labeldoc.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next labeldoc.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, path string) (ref *labeldoc.DocumentReference, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Warn("extract",
				"path", path,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		var label labeldoc.Label
		if ref != nil {
			label = ref.Label
		}
		e.logger.Debug("extract",
			"path", path,
			"label", label,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(ctx, path)
}
