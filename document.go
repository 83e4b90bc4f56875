package labeldoc

import "context"

// SourceRoot is a directory holding the structured documents of one package.
type SourceRoot struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// DocumentReference pairs a structured document with the documentation
// label it carries.
type DocumentReference struct {
	Path  string `json:"path"`
	Label Label  `json:"label"`
}

// Scanner enumerates structured documents beneath a root directory.
type Scanner interface {
	// Scan returns the paths of all structured documents under root.
	// Order follows filesystem traversal and is not guaranteed.
	// A root that does not exist yields an empty result and no error.
	Scan(ctx context.Context, root string) ([]string, error)
}

// Extractor reads the documentation reference embedded in a document.
type Extractor interface {
	// Extract parses the document at path and returns its
	// DeveloperDocumentation reference. Returns nil if the document has no
	// such element. Returns EMALFORMED if the document cannot be parsed.
	Extract(ctx context.Context, path string) (*DocumentReference, error)
}
