package site

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/maypok86/otter"
	"github.com/simonhull/firebird-suite/heron/pkg/planner"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// linkCodePattern matches {@linkcode Target} and {@linkcode Target | label}.
var linkCodePattern = regexp.MustCompile(`\{@linkcode\s+([^\s|}]+)(?:\s*\|\s*([^}]*?))?\s*\}`)

// LinkCode rewrites {@linkcode X} references into links to X's page in the
// package rooted at root/pkg.
func LinkCode(text, root, pkg string) string {
	if !strings.Contains(text, "{@linkcode") {
		return text
	}
	return linkCodePattern.ReplaceAllStringFunc(text, func(m string) string {
		parts := linkCodePattern.FindStringSubmatch(m)
		target, label := parts[1], strings.TrimSpace(parts[2])
		if label == "" {
			label = target
		}
		return fmt.Sprintf(`<a href="%s"><code>%s</code></a>`,
			template.HTMLEscapeString(planner.SymbolURL(root, pkg, target)),
			template.HTMLEscapeString(label))
	})
}

// Markdown converts documentation bodies to HTML. Results are memoised,
// since merged symbols and member listings render the same text repeatedly.
type Markdown struct {
	md    goldmark.Markdown
	cache otter.Cache[string, template.HTML]
}

// NewMarkdown creates a converter whose cache holds up to capacity entries.
func NewMarkdown(capacity int) (*Markdown, error) {
	if capacity <= 0 {
		capacity = 1024
	}
	cache, err := otter.MustBuilder[string, template.HTML](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("creating markdown cache: %w", err)
	}

	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.Strikethrough,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(), // doc bodies carry inline HTML, including linkcode output
			),
		),
		cache: cache,
	}, nil
}

// Render converts a markdown body to HTML. Empty input renders to "".
func (m *Markdown) Render(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	if out, ok := m.cache.Get(source); ok {
		return out, nil
	}

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("parsing markdown: %w", err)
	}

	out := template.HTML(buf.String())
	m.cache.Set(source, out)
	return out, nil
}

// Close releases the cache.
func (m *Markdown) Close() {
	m.cache.Close()
}

// Summary returns the first paragraph of a markdown body as plain text,
// for member listings.
func Summary(doc string) string {
	doc = strings.TrimSpace(doc)
	if i := strings.Index(doc, "\n\n"); i >= 0 {
		doc = doc[:i]
	}
	doc = linkCodePattern.ReplaceAllString(doc, "$1")
	return strings.Join(strings.Fields(doc), " ")
}
