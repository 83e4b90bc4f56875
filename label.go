package labeldoc

import (
	"strings"
	"unicode"
)

// Label is a label identifier referencing externalized display text,
// e.g. "@GCX0010" or "@DMF:StagingDeveloperDocumentation".
type Label string

// Namespace returns the run of letters following the leading "@", which
// selects the catalog to consult. Returns "" if the label has no "@" prefix.
func (l Label) Namespace() string {
	s, ok := strings.CutPrefix(string(l), "@")
	if !ok {
		return ""
	}
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		return s
	}
	return s[:end]
}

// Key returns the catalog lookup key. Labels addressed by file name and
// label name ("@DMF:Name") drop everything up to and including the first
// colon; other labels are looked up as-is.
func (l Label) Key() string {
	if _, after, found := strings.Cut(string(l), ":"); found {
		return after
	}
	return string(l)
}

// String returns the label as written in the source document.
func (l Label) String() string {
	return string(l)
}
