package fs

import (
	"bufio"
	"context"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fwojciec/labeldoc"
	"github.com/fwojciec/labeldoc/bloom"
)

// catalogFalsePositiveRate sizes the strict-mode key filter.
const catalogFalsePositiveRate = 0.01

const bom = "\uFEFF"

// Ensure CatalogService implements labeldoc.Resolver at compile time.
var _ labeldoc.Resolver = (*CatalogService)(nil)

// CatalogService resolves labels against flat "identifier=text" label
// files. Each catalog is read at most once; contents (or the failure to
// read them) are cached for the lifetime of the service.
type CatalogService struct {
	routes labeldoc.CatalogRoutes
	mode   labeldoc.MatchMode

	mu    sync.Mutex
	cache map[string]*catalog
}

// catalog holds the lines of one label file.
type catalog struct {
	path  string
	lines []string
	keys  *bloom.Filter
	err   error
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithMatchMode sets the line matching policy.
// Defaults to labeldoc.MatchLegacy.
func WithMatchMode(mode labeldoc.MatchMode) CatalogOption {
	return func(s *CatalogService) {
		s.mode = mode
	}
}

// NewCatalogService creates a new CatalogService routing namespaces to
// catalog files through routes.
func NewCatalogService(routes labeldoc.CatalogRoutes, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		routes: routes,
		mode:   labeldoc.MatchLegacy,
		cache:  make(map[string]*catalog),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the text of label from the catalog of its namespace.
//
// In legacy mode the first line containing the lookup key wins and the
// text keeps its line terminator. In strict mode the line's key must equal
// the lookup key, ignoring a leading "@" on either side.
func (s *CatalogService) Resolve(ctx context.Context, label labeldoc.Label) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, ok := s.Route(label)
	if !ok {
		return "", labeldoc.Errorf(labeldoc.ENOCATALOG, "no catalog for namespace of %s", label)
	}

	cat := s.load(path)
	if cat.err != nil {
		return "", labeldoc.Errorf(labeldoc.ENOCATALOG, "catalog for %s: %v", label, cat.err)
	}

	key := label.Key()
	var text string
	var found bool
	if s.mode == labeldoc.MatchStrict {
		text, found = cat.lookupStrict(key)
	} else {
		text, found = cat.lookupLegacy(key)
	}
	if !found {
		return "", labeldoc.Errorf(labeldoc.ENOTFOUND, "label %s not found in %s", label, path)
	}
	return text, nil
}

// Route returns the catalog path for the namespace of label. An exact
// namespace match is preferred; otherwise the longest configured namespace
// that starts the label's namespace is used.
func (s *CatalogService) Route(label labeldoc.Label) (string, bool) {
	ns := label.Namespace()
	if ns == "" {
		return "", false
	}
	if path, ok := s.routes[ns]; ok {
		return path, true
	}

	candidates := make([]string, 0, len(s.routes))
	for configured := range s.routes {
		if configured != "" && strings.HasPrefix(ns, configured) {
			candidates = append(candidates, configured)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})
	return s.routes[candidates[0]], true
}

// load returns the cached catalog at path, reading it on first use.
func (s *CatalogService) load(path string) *catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cat, ok := s.cache[path]; ok {
		return cat
	}

	cat := &catalog{path: path}
	cat.lines, cat.err = readLines(path)
	if cat.err == nil && s.mode == labeldoc.MatchStrict {
		cat.keys = bloom.NewFilter(uint(len(cat.lines)), catalogFalsePositiveRate)
		for _, line := range cat.lines {
			if key, _, ok := splitLine(line); ok {
				cat.keys.Add(normalizeKey(key))
			}
		}
	}
	s.cache[path] = cat
	return cat
}

func (c *catalog) lookupLegacy(key string) (string, bool) {
	for _, line := range c.lines {
		if !strings.Contains(line, key) {
			continue
		}
		if _, text, ok := splitLine(line); ok {
			return text, true
		}
	}
	return "", false
}

func (c *catalog) lookupStrict(key string) (string, bool) {
	want := normalizeKey(key)
	if !c.keys.Test(want) {
		return "", false
	}
	for _, line := range c.lines {
		k, text, ok := splitLine(line)
		if ok && normalizeKey(k) == want {
			return strings.TrimRight(text, "\r\n"), true
		}
	}
	return "", false
}

// splitLine splits a catalog line at its first "=".
func splitLine(line string) (key, text string, ok bool) {
	return strings.Cut(line, "=")
}

func normalizeKey(key string) string {
	key = strings.TrimPrefix(key, bom)
	return strings.TrimPrefix(key, "@")
}

// readLines reads the file at path and returns its lines with their
// terminators. CRLF terminators are normalized to LF.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if strings.HasSuffix(line, "\r\n") {
				line = line[:len(line)-2] + "\n"
			}
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
