// Package etree implements labeldoc.Extractor on top of github.com/beevik/etree.
package etree

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/labeldoc"
)

// DefaultElement is the child of the document root that holds the
// developer documentation label.
const DefaultElement = "DeveloperDocumentation"

var (
	utf8BOM     = []byte{0xEF, 0xBB, 0xBF}
	errNoRoot   = errors.New("no root element")
	errTrailing = errors.New("junk after document element")
)

// Ensure Extractor implements labeldoc.Extractor at compile time.
var _ labeldoc.Extractor = (*Extractor)(nil)

// Extractor reads the documentation label from structured object
// definitions.
type Extractor struct {
	element string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithElement sets the name of the element holding the label.
// Defaults to DefaultElement.
func WithElement(name string) Option {
	return func(e *Extractor) {
		e.element = name
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{element: DefaultElement}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the document at path and returns the text of the first
// documentation element directly below the root. The text is returned
// verbatim and may be empty. Returns nil if there is no such element.
func (e *Extractor) Extract(ctx context.Context, path string) (*labeldoc.DocumentReference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := parse(f)
	if err != nil {
		return nil, labeldoc.Errorf(labeldoc.EMALFORMED, "parsing %s: %v", path, err)
	}

	el := root.SelectElement(e.element)
	if el == nil {
		return nil, nil
	}

	return &labeldoc.DocumentReference{
		Path:  path,
		Label: labeldoc.Label(el.Text()),
	}, nil
}

// parse reads an XML document and returns its root element. A leading
// UTF-8 byte order mark is skipped. Content after the root element other
// than whitespace, comments and processing instructions is rejected.
func parse(r io.Reader) (*etree.Element, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(br); err != nil {
		return nil, err
	}

	root := doc.Root()
	if root == nil {
		return nil, errNoRoot
	}

	// A well-formed document has exactly one element at the top level and
	// nothing but whitespace around it.
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if t != root {
				return nil, errTrailing
			}
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return nil, errTrailing
			}
		}
	}
	return root, nil
}
