package mock

import (
	"context"

	"github.com/fwojciec/labeldoc"
)

var _ labeldoc.Scanner = (*Scanner)(nil)

// Scanner is a mock implementation of labeldoc.Scanner.
type Scanner struct {
	ScanFn func(ctx context.Context, root string) ([]string, error)
}

func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	return s.ScanFn(ctx, root)
}
