// Package labeldoc extracts developer documentation references from a tree
// of structured object definitions, resolves each reference through a
// locale-specific label catalog, and reports the resolved text per file.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., etree/, sqlite/, fs/).
package labeldoc
