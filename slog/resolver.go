package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/labeldoc"
)

// Ensure LoggingResolver implements labeldoc.Resolver.
var _ labeldoc.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with logging.
type LoggingResolver struct {
	next   labeldoc.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next labeldoc.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the operation.
// Lookup misses and missing catalogs are logged as warnings.
func (r *LoggingResolver) Resolve(ctx context.Context, label labeldoc.Label) (text string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			r.logger.Warn("resolve",
				"label", label,
				"code", labeldoc.ErrorCode(err),
				"duration", time.Since(begin),
				"err", labeldoc.ErrorMessage(err),
			)
			return
		}
		r.logger.Debug("resolve",
			"label", label,
			"bytes", len(text),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.Resolve(ctx, label)
}
