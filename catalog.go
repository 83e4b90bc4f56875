package labeldoc

import "context"

// MatchMode selects how catalog lines are matched against a lookup key.
type MatchMode string

// MatchMode constants.
const (
	// MatchLegacy takes the first line containing the key anywhere in it and
	// keeps the line terminator on the returned text. A key that is a
	// substring of another key can match the wrong line.
	MatchLegacy MatchMode = "legacy"

	// MatchStrict requires the text before "=" to equal the key and trims
	// the line terminator.
	MatchStrict MatchMode = "strict"
)

// ParseMatchMode returns the MatchMode named by s.
// An empty string selects MatchLegacy.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case "", MatchLegacy:
		return MatchLegacy, nil
	case MatchStrict:
		return MatchStrict, nil
	}
	return "", Errorf(EINVALID, "unknown match mode %q", s)
}

// CatalogRoutes maps a label namespace (e.g. "GCX") to the path of its
// catalog file for the configured locale.
type CatalogRoutes map[string]string

// Validate returns an error if any route is incomplete.
func (r CatalogRoutes) Validate() error {
	for ns, path := range r {
		if ns == "" {
			return Errorf(EINVALID, "catalog namespace required")
		}
		if path == "" {
			return Errorf(EINVALID, "catalog path required for namespace %q", ns)
		}
	}
	return nil
}

// Resolver resolves labels to display text.
type Resolver interface {
	// Resolve returns the display text for label.
	// Returns ENOCATALOG if no catalog is available for the label's
	// namespace and ENOTFOUND if the catalog has no entry for it.
	Resolve(ctx context.Context, label Label) (string, error)
}
