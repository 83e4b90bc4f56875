// Package fs provides filesystem-backed implementations of the labeldoc
// scanner, catalog reader, and report writer.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/labeldoc"
)

// DefaultExtension is the file name suffix of structured documents.
const DefaultExtension = ".xml"

// Ensure Scanner implements labeldoc.Scanner at compile time.
var _ labeldoc.Scanner = (*Scanner)(nil)

// Scanner walks a directory tree collecting structured documents.
type Scanner struct {
	ext string
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithExtension sets the file name suffix to collect.
// Defaults to DefaultExtension. Matching is case-sensitive.
func WithExtension(ext string) ScannerOption {
	return func(s *Scanner) {
		s.ext = ext
	}
}

// NewScanner creates a new Scanner.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{ext: DefaultExtension}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns the path of every regular file under root whose name ends
// with the configured extension. Symlinks to regular files are included;
// symlinked directories are not followed.
//
// A missing root yields an empty slice. Unreadable subdirectories are
// skipped. An unreadable root returns an error.
func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	paths := []string{}

	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root && !errors.Is(err, iofs.ErrNotExist) {
				return err
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), s.ext) {
			return nil
		}
		if isRegular(path, d) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func isRegular(path string, d iofs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&iofs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
