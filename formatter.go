package labeldoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Banner precedes each root's results on the console.
const Banner = "DEVELOPER DOCUMENTATION\n-----------------------\n"

// FormatResultSet renders a result set as indented JSON with sorted keys.
// Non-ASCII and HTML characters are written as-is. The output carries no
// trailing newline, so appended sets concatenate exactly.
func FormatResultSet(rs ResultSet) (string, error) {
	if rs == nil {
		rs = ResultSet{}
	}
	return marshalIndent(rs)
}

// FormatReport renders a whole report as a single JSON document.
func FormatReport(r *Report) (string, error) {
	out := *r
	if out.Roots == nil {
		out.Roots = []RootResult{}
	}
	roots := make([]RootResult, len(out.Roots))
	for i, root := range out.Roots {
		if root.Results == nil {
			root.Results = ResultSet{}
		}
		roots[i] = root
	}
	out.Roots = roots
	if out.Failures == nil {
		out.Failures = []Failure{}
	}
	if out.Summary.Failures == nil {
		out.Summary.Failures = map[FailureKind]int{}
	}
	return marshalIndent(out)
}

// FormatSummary renders a one-line description of a run followed by the
// failure counts by kind, in kind order.
func FormatSummary(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d roots, %d documents, %d labelled, %d resolved, %d failed",
		s.Roots, s.Documents, s.Labelled, s.Resolved, s.Failed())

	kinds := make([]string, 0, len(s.Failures))
	for k, n := range s.Failures {
		if n > 0 {
			kinds = append(kinds, string(k))
		}
	}
	sort.Strings(kinds)
	if len(kinds) > 0 {
		parts := make([]string, len(kinds))
		for i, k := range kinds {
			parts[i] = fmt.Sprintf("%s=%d", k, s.Failures[FailureKind(k)])
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}
	return b.String()
}

func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encoding JSON: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
