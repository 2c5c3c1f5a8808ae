package site

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/simonhull/firebird-suite/heron/pkg/logger"
	"github.com/simonhull/firebird-suite/heron/pkg/pipeline"
	"github.com/simonhull/firebird-suite/heron/pkg/planner"
)

// ManifestFile lists every written page, relative to the output directory.
const ManifestFile = "pages.json"

// ManifestEntry describes one written page.
type ManifestEntry struct {
	URL     string           `json:"url"`
	Title   string           `json:"title"`
	Kind    planner.PageKind `json:"kind"`
	Package string           `json:"package"`
}

// Builder renders plans to HTML.
type Builder struct {
	renderer *Renderer
	md       *Markdown
}

// NewBuilder creates a builder with the embedded templates.
func NewBuilder() (*Builder, error) {
	md, err := NewMarkdown(4096)
	if err != nil {
		return nil, err
	}
	return &Builder{renderer: NewRenderer(), md: md}, nil
}

// View builds the template data for plan.
func (b *Builder) View(plan planner.PagePlan, rc *pipeline.RunContext) (*Page, error) {
	v := &viewBuilder{md: b.md, plan: plan, rc: rc}
	return v.build()
}

// Build renders plan to a complete HTML document.
func (b *Builder) Build(plan planner.PagePlan, rc *pipeline.RunContext) ([]byte, error) {
	page, err := b.View(plan, rc)
	if err != nil {
		return nil, err
	}
	return b.renderer.Render(page)
}

// Close releases the markdown cache.
func (b *Builder) Close() {
	b.md.Close()
}

// Writer stages rendered pages under an output directory and writes them
// all at once on Commit.
type Writer struct {
	out      string
	builder  *Builder
	log      logger.Logger
	tx       *Transaction
	mu       sync.Mutex
	manifest []ManifestEntry
}

// NewWriter creates a writer for out.
func NewWriter(out string, builder *Builder, log logger.Logger) *Writer {
	if log == nil {
		log = logger.NewSilentLogger()
	}
	return &Writer{out: out, builder: builder, log: log, tx: NewTransaction()}
}

// Sink renders plan and stages it. It has the pipeline.Sink signature.
func (w *Writer) Sink(plan planner.PagePlan, rc *pipeline.RunContext) error {
	html, err := w.builder.Build(plan, rc)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.tx.AddFile(PagePath(w.out, plan.URL), html, 0644)
	w.manifest = append(w.manifest, ManifestEntry{
		URL:     plan.URL,
		Title:   plan.Title,
		Kind:    plan.Kind,
		Package: plan.Package,
	})
	w.log.Debug("Rendered page", logger.F("url", plan.URL))
	return nil
}

// Manifest returns the entries staged so far.
func (w *Writer) Manifest() []ManifestEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]ManifestEntry(nil), w.manifest...)
}

// Commit writes the staged pages and the manifest.
func (w *Writer) Commit() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.MarshalIndent(w.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	w.tx.AddFile(filepath.Join(w.out, ManifestFile), data, 0644)

	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("writing site: %w", err)
	}
	w.log.Info("Wrote site", logger.F("pages", len(w.manifest)), logger.F("output", w.out))
	return nil
}

// PagePath maps a page URL to its index.html under out. Escaped segments
// are decoded, as a file server decodes request paths, and the result is
// cleaned so it can never point outside out.
func PagePath(out, pageURL string) string {
	if decoded, err := url.PathUnescape(pageURL); err == nil {
		pageURL = decoded
	}
	clean := strings.TrimPrefix(path.Clean("/"+pageURL), "/")
	return filepath.Join(out, filepath.FromSlash(clean), "index.html")
}
