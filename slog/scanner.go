// Package slog provides logging decorators for labeldoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/labeldoc"
)

// Ensure LoggingScanner implements labeldoc.Scanner.
var _ labeldoc.Scanner = (*LoggingScanner)(nil)

// LoggingScanner wraps a Scanner with logging.
type LoggingScanner struct {
	next   labeldoc.Scanner
	logger *slog.Logger
}

// NewLoggingScanner creates a new LoggingScanner.
func NewLoggingScanner(next labeldoc.Scanner, logger *slog.Logger) *LoggingScanner {
	return &LoggingScanner{next: next, logger: logger}
}

// Scan delegates to the wrapped scanner and logs the operation.
func (s *LoggingScanner) Scan(ctx context.Context, root string) (paths []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("scan",
			"root", root,
			"count", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scan(ctx, root)
}
