// Package planner decides which pages a package's reference documentation
// needs and at which URL each one lives.
package planner

import (
	"iter"
	"strings"

	"github.com/simonhull/firebird-suite/heron/pkg/categories"
	"github.com/simonhull/firebird-suite/heron/pkg/diag"
	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
	"github.com/simonhull/firebird-suite/heron/pkg/logger"
	"github.com/simonhull/firebird-suite/heron/pkg/symbols"
)

// PageKind identifies the template a page is rendered with.
type PageKind string

const (
	PageCategoryHome PageKind = "category-home"
	PageCategory     PageKind = "category"
	PageModule       PageKind = "module"
	PageNamespace    PageKind = "namespace"
	PageClass        PageKind = "class"
	PageInterface    PageKind = "interface"
	PageFunction     PageKind = "function"
	PageTypeAlias    PageKind = "typeAlias"
	PageVariable     PageKind = "variable"
	PageEnum         PageKind = "enum"
	PageProperty     PageKind = "property"
)

// PagePlan is one page to render.
type PagePlan struct {
	URL      string                   `json:"url"`
	Title    string                   `json:"title"`
	Kind     PageKind                 `json:"kind"`
	Package  string                   `json:"package"`
	Symbol   *symbols.QualifiedSymbol `json:"-"`
	Category string                   `json:"category,omitempty"`
	// Member is set on property pages; Symbol is then the owning class.
	Member *docnode.Property `json:"-"`
}

// Package is the planner's input for one package.
type Package struct {
	Name string
	// Forest is the unflattened declaration tree. It supplies namespace pages
	// and the walk order; it may be nil.
	Forest []docnode.Node
	// Symbols is the merged symbol table.
	Symbols    []symbols.QualifiedSymbol
	Categories *categories.Index
}

// Option configures a Planner.
type Option func(*Planner)

// WithMemberPages plans one page per class property in addition to the
// class page itself.
func WithMemberPages(enabled bool) Option {
	return func(p *Planner) {
		p.memberPages = enabled
	}
}

// Planner maps packages to page plans. A Planner belongs to one run.
type Planner struct {
	urls        *URLSet
	diags       *diag.Collector
	log         logger.Logger
	memberPages bool
}

// New creates a planner that claims URLs in urls and reports dropped pages to diags.
func New(urls *URLSet, diags *diag.Collector, log logger.Logger, opts ...Option) *Planner {
	if log == nil {
		log = logger.NewSilentLogger()
	}
	if urls == nil {
		urls = NewURLSet()
	}
	if diags == nil {
		diags = diag.NewCollector(log)
	}
	p := &Planner{urls: urls, diags: diags, log: log}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan lazily yields the pages of pkg under root: the category home, one page
// per category label, then the declarations in forest order. Pages whose URL
// was already planned in this run are dropped and reported.
func (p *Planner) Plan(pkg Package, root string) iter.Seq[PagePlan] {
	return func(yield func(PagePlan) bool) {
		w := &walker{
			planner: p,
			pkg:     pkg,
			root:    root,
			yield:   yield,
			byName:  make(map[string][]int),
			emitted: make([]bool, len(pkg.Symbols)),
		}
		for i := range pkg.Symbols {
			name := pkg.Symbols[i].FullName
			w.byName[name] = append(w.byName[name], i)
		}
		w.run()
	}
}

type walker struct {
	planner *Planner
	pkg     Package
	root    string
	yield   func(PagePlan) bool

	byName  map[string][]int
	emitted []bool
	stopped bool
}

func (w *walker) run() {
	if !w.emit(PagePlan{
		URL:   HomeURL(w.root, w.pkg.Name),
		Title: w.pkg.Name,
		Kind:  PageCategoryHome,
	}, w.pkg.Name) {
		return
	}

	for _, label := range w.pkg.Categories.Labels() {
		if !w.emit(PagePlan{
			URL:      CategoryURL(w.root, w.pkg.Name, label),
			Title:    label,
			Kind:     PageCategory,
			Category: label,
		}, "category "+label) {
			return
		}
	}

	w.walk(w.pkg.Forest, "")

	// Symbols the forest did not reach, e.g. when no forest was supplied.
	for i := range w.pkg.Symbols {
		if w.stopped {
			return
		}
		if !w.emitted[i] {
			w.emitted[i] = true
			w.symbol(&w.pkg.Symbols[i])
		}
	}
}

func (w *walker) walk(nodes []docnode.Node, ns string) {
	for i := range nodes {
		if w.stopped {
			return
		}
		node := &nodes[i]
		if strings.TrimSpace(node.Name) == "" {
			continue
		}
		full := symbols.Qualify(ns, node.Name)

		if node.Kind == docnode.KindNamespace {
			sym := &symbols.QualifiedSymbol{Node: *node, Namespace: ns, FullName: full}
			if !w.emit(PagePlan{
				URL:    SymbolURL(w.root, w.pkg.Name, full),
				Title:  full,
				Kind:   PageNamespace,
				Symbol: sym,
			}, full) {
				return
			}
			w.walk(node.Children(), full)
			continue
		}

		for _, idx := range w.byName[full] {
			if w.emitted[idx] {
				continue
			}
			w.emitted[idx] = true
			w.symbol(&w.pkg.Symbols[idx])
			if w.stopped {
				return
			}
		}
	}
}

// symbol dispatches one merged symbol to its per-kind URL rule.
func (w *walker) symbol(sym *symbols.QualifiedSymbol) {
	var kind PageKind
	switch sym.Kind {
	case docnode.KindClass:
		kind = PageClass
	case docnode.KindInterface:
		kind = PageInterface
	case docnode.KindFunction:
		kind = PageFunction
	case docnode.KindTypeAlias:
		kind = PageTypeAlias
	case docnode.KindVariable:
		kind = PageVariable
	case docnode.KindEnum:
		kind = PageEnum
	case docnode.KindNamespace:
		kind = PageNamespace
	case docnode.KindModuleDoc:
		w.emit(PagePlan{
			URL:    ModuleURL(w.root, w.pkg.Name, sym.Name),
			Title:  sym.Name,
			Kind:   PageModule,
			Symbol: sym,
		}, sym.FullName)
		return
	default:
		w.planner.log.Debug("No page for declaration",
			logger.F("package", w.pkg.Name),
			logger.F("symbol", sym.FullName),
			logger.F("kind", string(sym.Kind)))
		return
	}

	if !w.emit(PagePlan{
		URL:    SymbolURL(w.root, w.pkg.Name, sym.FullName),
		Title:  sym.FullName,
		Kind:   kind,
		Symbol: sym,
	}, sym.FullName) {
		return
	}

	if kind == PageClass && w.planner.memberPages && sym.ClassDef != nil {
		w.members(sym)
	}
}

// members plans property pages: Class.prototype.name for instance
// properties and Class.name for static ones.
func (w *walker) members(class *symbols.QualifiedSymbol) {
	for i := range class.ClassDef.Properties {
		prop := &class.ClassDef.Properties[i]
		if prop.Name == "" {
			continue
		}
		name := class.FullName + ".prototype." + prop.Name
		if prop.IsStatic {
			name = class.FullName + "." + prop.Name
		}
		if !w.emit(PagePlan{
			URL:    SymbolURL(w.root, w.pkg.Name, name),
			Title:  name,
			Kind:   PageProperty,
			Symbol: class,
			Member: prop,
		}, name) {
			return
		}
	}
}

// emit claims the plan's URL and hands it to the consumer. It returns false
// once the consumer stops; a duplicate URL is reported and skipped.
func (w *walker) emit(plan PagePlan, owner string) bool {
	if w.stopped {
		return false
	}
	if err := w.planner.urls.Claim(plan.URL, owner); err != nil {
		w.planner.diags.Report(w.pkg.Name, err)
		return true
	}
	plan.Package = w.pkg.Name
	if !w.yield(plan) {
		w.stopped = true
		return false
	}
	return true
}
