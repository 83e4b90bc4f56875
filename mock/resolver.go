package mock

import (
	"context"

	"github.com/fwojciec/labeldoc"
)

var _ labeldoc.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of labeldoc.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, label labeldoc.Label) (string, error)
}

func (r *Resolver) Resolve(ctx context.Context, label labeldoc.Label) (string, error) {
	return r.ResolveFn(ctx, label)
}
