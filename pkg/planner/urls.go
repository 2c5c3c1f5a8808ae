package planner

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// URLSet records the URLs already planned in one generation run.
// Each run owns its own set; nothing is shared between runs.
type URLSet struct {
	mu   sync.Mutex
	seen map[string]string
}

// NewURLSet returns an empty set.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]string)}
}

// Claim reserves url for owner. It returns a *DuplicateURLError naming the
// first owner when url was already claimed.
func (s *URLSet) Claim(url, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if first, ok := s.seen[url]; ok {
		return &DuplicateURLError{URL: url, Owner: owner, FirstOwner: first}
	}
	s.seen[url] = owner
	return nil
}

// Has reports whether url has been claimed.
func (s *URLSet) Has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[url]
	return ok
}

// Len returns the number of claimed URLs.
func (s *URLSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// DuplicateURLError reports a page whose URL was already planned.
// The later page is dropped.
type DuplicateURLError struct {
	URL        string
	Owner      string
	FirstOwner string
}

// Error returns a formatted error message
func (e *DuplicateURLError) Error() string {
	return fmt.Sprintf("duplicate page URL %s: %s dropped, already planned for %s", e.URL, e.Owner, e.FirstOwner)
}

// HomeURL is the category home of pkg under root.
func HomeURL(root, pkg string) string {
	return join(root, segment(pkg), "")
}

// CategoryURL is the page listing the members of a category label.
func CategoryURL(root, pkg, label string) string {
	return join(root, segment(pkg), segment(label))
}

// SymbolURL is the page of a declaration, namespace or member by its
// qualified name.
func SymbolURL(root, pkg, fullName string) string {
	return join(root, segment(pkg), "~", fullName)
}

// ModuleURL is the page of a module documentation node.
func ModuleURL(root, pkg, name string) string {
	return join(root, segment(pkg), segment(name))
}

// join builds an absolute URL path from a root and segments.
func join(root string, segments ...string) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(strings.Trim(root, "/"))
	for _, s := range segments {
		if b.Len() > 1 {
			b.WriteString("/")
		}
		b.WriteString(s)
	}
	return b.String()
}

// segment lower-cases a label and escapes it as one path segment, so
// "File System" becomes "file%20system".
func segment(label string) string {
	return url.PathEscape(strings.ToLower(strings.TrimSpace(label)))
}
