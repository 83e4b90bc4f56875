package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/labeldoc"
)

// OutputMode selects how a report is persisted.
type OutputMode string

// OutputMode constants.
const (
	// OutputDocument writes the whole run as one JSON document, replacing
	// the output file atomically.
	OutputDocument OutputMode = "document"

	// OutputAppend appends each root's result set to the output file as a
	// separate JSON value. Successive values are concatenated without a
	// separator, so the file as a whole is not valid JSON.
	OutputAppend OutputMode = "append"
)

// ParseOutputMode returns the OutputMode named by s.
// An empty string selects OutputDocument.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(s) {
	case "", OutputDocument:
		return OutputDocument, nil
	case OutputAppend:
		return OutputAppend, nil
	}
	return "", labeldoc.Errorf(labeldoc.EINVALID, "unknown output mode %q", s)
}

// Ensure ReportWriter implements labeldoc.ReportWriter at compile time.
var _ labeldoc.ReportWriter = (*ReportWriter)(nil)

// ReportWriter persists reports to a file.
type ReportWriter struct {
	path string
	mode OutputMode
}

// NewReportWriter creates a new ReportWriter writing to path.
func NewReportWriter(path string, mode OutputMode) *ReportWriter {
	return &ReportWriter{path: path, mode: mode}
}

// Path returns the output file path.
func (w *ReportWriter) Path() string {
	return w.path
}

// WriteReport persists report according to the configured mode.
func (w *ReportWriter) WriteReport(ctx context.Context, report *labeldoc.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.mode == OutputAppend {
		return w.appendRoots(ctx, report)
	}
	return w.writeDocument(report)
}

func (w *ReportWriter) appendRoots(ctx context.Context, report *labeldoc.Report) error {
	for _, root := range report.Roots {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, err := labeldoc.FormatResultSet(root.Results)
		if err != nil {
			return err
		}
		if err := appendFile(w.path, text); err != nil {
			return err
		}
	}
	return nil
}

func appendFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return f.Close()
}

func (w *ReportWriter) writeDocument(report *labeldoc.Report) error {
	text, err := labeldoc.FormatReport(report)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text+"\n"), 0644); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	// Atomically replace the previous output
	if err := os.Rename(tmp, w.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
