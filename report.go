package labeldoc

import (
	"context"
	"time"
)

// ResultSet maps a document path to the label it references and the
// label's resolved text. Unresolved labels map to the empty string.
type ResultSet map[string]map[Label]string

// Add records label and its text for the document at path. A document holds
// at most one label, so a later call replaces an earlier one.
func (rs ResultSet) Add(path string, label Label, text string) {
	rs[path] = map[Label]string{label: text}
}

// Len returns the number of documents in the set.
func (rs ResultSet) Len() int {
	return len(rs)
}

// RootResult holds the resolved documentation of one source root.
type RootResult struct {
	Root    SourceRoot `json:"root"`
	Results ResultSet  `json:"documentation"`
}

// FailureKind classifies a per-item failure recorded during a run.
type FailureKind string

// FailureKind constants.
const (
	FailureScan            FailureKind = "scan"
	FailureParse           FailureKind = "parse"
	FailureCatalogNotFound FailureKind = "catalog_not_found"
	FailureLookupMiss      FailureKind = "lookup_miss"
)

// FailureKindOf maps an error returned by a Resolver or Extractor to the
// failure it represents.
func FailureKindOf(err error) FailureKind {
	switch ErrorCode(err) {
	case ENOCATALOG:
		return FailureCatalogNotFound
	case ENOTFOUND:
		return FailureLookupMiss
	default:
		return FailureParse
	}
}

// Failure describes a document or label that could not be processed.
// Failures never abort a run.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Root    string      `json:"root"`
	Path    string      `json:"path,omitempty"`
	Label   Label       `json:"label,omitempty"`
	Message string      `json:"message"`
}

// Summary counts what a run processed.
type Summary struct {
	Roots     int                 `json:"roots"`
	Documents int                 `json:"documents"`
	Labelled  int                 `json:"labelled"`
	Resolved  int                 `json:"resolved"`
	Failures  map[FailureKind]int `json:"failures"`
}

// Failed returns the total number of failures across all kinds.
func (s Summary) Failed() int {
	var n int
	for _, c := range s.Failures {
		n += c
	}
	return n
}

// Report is the outcome of one run over all configured roots.
type Report struct {
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Roots      []RootResult `json:"roots"`
	Failures   []Failure    `json:"failures"`
	Summary    Summary      `json:"summary"`
}

// AddFailure records f and updates the summary counters.
func (r *Report) AddFailure(f Failure) {
	r.Failures = append(r.Failures, f)
	if r.Summary.Failures == nil {
		r.Summary.Failures = make(map[FailureKind]int)
	}
	r.Summary.Failures[f.Kind]++
}

// ReportWriter persists a completed report.
type ReportWriter interface {
	WriteReport(ctx context.Context, report *Report) error
}
