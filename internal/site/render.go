// Package site renders page plans to HTML and writes them as a static site.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/simonhull/firebird-suite/heron/pkg/planner"
	"github.com/simonhull/firebird-suite/heron/pkg/signature"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateFor maps a page kind to its content template.
var templateFor = map[planner.PageKind]string{
	planner.PageCategoryHome: "home",
	planner.PageCategory:     "category",
	planner.PageNamespace:    "namespace",
	planner.PageClass:        "class",
	planner.PageInterface:    "class",
	planner.PageEnum:         "enum",
	planner.PageFunction:     "symbol",
	planner.PageVariable:     "symbol",
	planner.PageTypeAlias:    "symbol",
	planner.PageProperty:     "symbol",
	planner.PageModule:       "symbol",
}

// Renderer handles template parsing and rendering with caching
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with the built-in page templates
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: template.FuncMap{
			"tokens": Tokens,
			"lower":  strings.ToLower,
		},
		cache: make(map[string]*template.Template),
	}
}

// Render executes the layout with the content template for page.Kind.
func (r *Renderer) Render(page *Page) ([]byte, error) {
	name, ok := templateFor[page.Kind]
	if !ok {
		return nil, fmt.Errorf("no template for page kind %q", page.Kind)
	}

	tmpl, err := r.load(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", name, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) load(name string) (*template.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.cache[name]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	tmpl, err := template.New(name).Funcs(r.funcMap).ParseFS(templateFS,
		"templates/layout.html",
		"templates/partials.html",
		"templates/"+name+".html",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[name] = tmpl
	r.mu.Unlock()
	return tmpl, nil
}

// ClearCache clears the template cache (useful for testing)
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

// Tokens renders signature tokens as styled spans, turning line-break hints
// into <br/> with an indent for the parameter lines.
func Tokens(tokens []signature.Token) template.HTML {
	var b strings.Builder
	for _, t := range tokens {
		if t.Hint == signature.HintBreakBefore {
			b.WriteString("<br/>")
		}
		fmt.Fprintf(&b, `<span class="tok-%s">%s</span>`, t.Role, template.HTMLEscapeString(t.Text))
		if t.Hint == signature.HintBreakAfter {
			b.WriteString("<br/>&nbsp;&nbsp;")
		}
	}
	return template.HTML(b.String())
}
