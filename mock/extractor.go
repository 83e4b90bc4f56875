package mock

import (
	"context"

	"github.com/fwojciec/labeldoc"
)

var _ labeldoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of labeldoc.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, path string) (*labeldoc.DocumentReference, error)
}

func (e *Extractor) Extract(ctx context.Context, path string) (*labeldoc.DocumentReference, error) {
	return e.ExtractFn(ctx, path)
}
