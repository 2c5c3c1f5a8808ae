package site

import (
	"fmt"
	"html/template"

	"github.com/simonhull/firebird-suite/heron/pkg/categories"
	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
	"github.com/simonhull/firebird-suite/heron/pkg/pipeline"
	"github.com/simonhull/firebird-suite/heron/pkg/planner"
	"github.com/simonhull/firebird-suite/heron/pkg/signature"
	"github.com/simonhull/firebird-suite/heron/pkg/symbols"
)

// Page is the data every template receives.
type Page struct {
	Title   string
	Kind    planner.PageKind
	Package string
	Home    string // URL of the package's category home
	Crumbs  []Link

	Doc        template.HTML
	Unstable   bool
	Deprecated *Notice

	// Signature is the declaration line of functions, variables, type
	// aliases and properties.
	Signature  []signature.Token
	Extends    []Link
	Implements [][]signature.Token

	Constructors     []Member
	Properties       []Member
	StaticProperties []Member
	Methods          []Member
	StaticMethods    []Member
	EnumMembers      []Member

	// Groups lists linked symbols: namespace members, category members or
	// the package's top level.
	Groups     []Group
	Categories []Link
}

// Link is a labelled URL with an optional one-line description.
type Link struct {
	Name    string
	URL     string
	Summary string
}

// Notice is a rendered deprecation message.
type Notice struct {
	Message template.HTML
}

// Member is one documented member of a class, interface or enum.
type Member struct {
	Name       string
	Anchor     string
	Tokens     []signature.Token
	Doc        template.HTML
	Unstable   bool
	Deprecated bool
	Optional   bool
}

// Group is a titled list of links.
type Group struct {
	Title string
	Links []Link
}

var groupTitles = map[docnode.Kind]string{
	docnode.KindClass:     "Classes",
	docnode.KindFunction:  "Functions",
	docnode.KindInterface: "Interfaces",
	docnode.KindTypeAlias: "Type Aliases",
	docnode.KindVariable:  "Variables",
	docnode.KindEnum:      "Enums",
	docnode.KindNamespace: "Namespaces",
	categories.KindOther:  "Other",
}

// groupOrder is the display order of kinds in a listing.
var groupOrder = []docnode.Kind{
	docnode.KindClass,
	docnode.KindFunction,
	docnode.KindInterface,
	docnode.KindTypeAlias,
	docnode.KindVariable,
	docnode.KindEnum,
	docnode.KindNamespace,
	categories.KindOther,
}

// viewBuilder turns a plan into a Page.
type viewBuilder struct {
	md   *Markdown
	plan planner.PagePlan
	rc   *pipeline.RunContext
}

func (b *viewBuilder) root() string {
	if b.rc == nil {
		return ""
	}
	return b.rc.Root
}

func (b *viewBuilder) html(doc string) (template.HTML, error) {
	return b.md.Render(LinkCode(doc, b.root(), b.plan.Package))
}

func (b *viewBuilder) build() (*Page, error) {
	p := &Page{
		Title:   b.plan.Title,
		Kind:    b.plan.Kind,
		Package: b.plan.Package,
		Home:    planner.HomeURL(b.root(), b.plan.Package),
	}

	switch b.plan.Kind {
	case planner.PageCategoryHome:
		return p, b.home(p)
	case planner.PageCategory:
		return p, b.category(p)
	}

	sym := b.plan.Symbol
	if sym == nil {
		return nil, fmt.Errorf("page %s has no symbol", b.plan.URL)
	}
	b.crumbs(p, sym.FullName)

	if b.plan.Kind == planner.PageProperty && b.plan.Member != nil {
		return p, b.property(p, b.plan.Member)
	}

	if err := b.common(p, sym.JSDoc, sym.Doc()); err != nil {
		return nil, err
	}

	switch b.plan.Kind {
	case planner.PageClass:
		return p, b.class(p, sym)
	case planner.PageInterface:
		return p, b.iface(p, sym)
	case planner.PageFunction:
		p.Signature = signature.RenderCallable(signature.FromFunction(sym.Name, sym.FunctionDef))
	case planner.PageVariable:
		p.Signature = declaration(sym.Name, variableType(sym))
	case planner.PageTypeAlias:
		if sym.TypeAliasDef != nil {
			p.Signature = aliasLine(sym.Name, sym.TypeAliasDef.TsType)
		}
	case planner.PageEnum:
		return p, b.enum(p, sym)
	case planner.PageNamespace:
		p.Groups = b.listing(sym.FullName)
	}
	return p, nil
}

func (b *viewBuilder) common(p *Page, jsdoc *docnode.JSDoc, doc string) error {
	html, err := b.html(doc)
	if err != nil {
		return err
	}
	p.Doc = html
	p.Unstable = jsdoc.IsExperimental()
	if msg, ok := jsdoc.Deprecated(); ok {
		note, err := b.html(msg)
		if err != nil {
			return err
		}
		p.Deprecated = &Notice{Message: note}
	}
	return nil
}

func (b *viewBuilder) crumbs(p *Page, fullName string) {
	p.Crumbs = append(p.Crumbs, Link{Name: b.plan.Package, URL: p.Home})
	if b.rc == nil || b.rc.Tree == nil {
		return
	}
	for _, e := range b.rc.Tree.Ancestors(fullName) {
		p.Crumbs = append(p.Crumbs, Link{
			Name: e.Name,
			URL:  planner.SymbolURL(b.root(), b.plan.Package, e.FullName),
		})
	}
}

func (b *viewBuilder) home(p *Page) error {
	if b.rc == nil {
		return nil
	}
	for _, label := range b.rc.Categories.Labels() {
		p.Categories = append(p.Categories, Link{
			Name:    label,
			URL:     planner.CategoryURL(b.root(), b.plan.Package, label),
			Summary: b.rc.Categories.Description(label),
		})
	}
	p.Groups = b.listing("")
	return nil
}

func (b *viewBuilder) category(p *Page) error {
	p.Crumbs = []Link{{Name: b.plan.Package, URL: p.Home}}
	if b.rc == nil {
		return nil
	}
	desc, err := b.html(b.rc.Categories.Description(b.plan.Category))
	if err != nil {
		return err
	}
	p.Doc = desc

	for _, g := range b.rc.Categories.Members(b.plan.Category) {
		group := Group{Title: groupTitles[g.Kind]}
		for i := range g.Symbols {
			s := &g.Symbols[i]
			group.Links = append(group.Links, Link{
				Name:    s.FullName,
				URL:     planner.SymbolURL(b.root(), b.plan.Package, s.FullName),
				Summary: Summary(s.Doc()),
			})
		}
		p.Groups = append(p.Groups, group)
	}
	return nil
}

// listing groups the direct members of a namespace ("" for the package
// top level) by kind.
func (b *viewBuilder) listing(fullName string) []Group {
	if b.rc == nil || b.rc.Tree == nil {
		return nil
	}

	summaries := make(map[string]string)
	if b.rc.Package != nil {
		for i := range b.rc.Package.Symbols {
			s := &b.rc.Package.Symbols[i]
			summaries[s.FullName] = Summary(s.Doc())
		}
	}

	byKind := make(map[docnode.Kind][]Link)
	for _, e := range b.rc.Tree.Children(fullName) {
		if e.Kind == docnode.KindImport || e.Kind == docnode.KindModuleDoc || !e.Kind.Known() {
			continue
		}
		kind := e.Kind
		if _, ok := groupTitles[kind]; !ok {
			kind = categories.KindOther
		}
		byKind[kind] = append(byKind[kind], Link{
			Name:    e.Name,
			URL:     planner.SymbolURL(b.root(), b.plan.Package, e.FullName),
			Summary: summaries[e.FullName],
		})
	}

	var groups []Group
	for _, k := range groupOrder {
		if links := byKind[k]; len(links) > 0 {
			groups = append(groups, Group{Title: groupTitles[k], Links: links})
		}
	}
	return groups
}

func (b *viewBuilder) class(p *Page, sym *symbols.QualifiedSymbol) error {
	def := sym.ClassDef
	if def == nil {
		return nil
	}

	if def.Extends != "" {
		p.Extends = append(p.Extends, Link{Name: def.Extends, URL: b.localURL(def.Extends)})
	}
	for i := range def.Implements {
		p.Implements = append(p.Implements, signature.RenderType(&def.Implements[i]))
	}

	for i := range def.Constructors {
		c := &def.Constructors[i]
		doc, err := b.html(c.JSDoc.Body())
		if err != nil {
			return err
		}
		p.Constructors = append(p.Constructors, Member{
			Name:   "constructor",
			Anchor: fmt.Sprintf("constructor_%d", i),
			Tokens: signature.RenderCallable(signature.FromConstructor(c)),
			Doc:    doc,
		})
	}

	for i := range def.Properties {
		m, err := b.propertyMember(&def.Properties[i])
		if err != nil {
			return err
		}
		if def.Properties[i].IsStatic {
			p.StaticProperties = append(p.StaticProperties, m)
		} else {
			p.Properties = append(p.Properties, m)
		}
	}

	for i := range def.Methods {
		m, err := b.methodMember(&def.Methods[i])
		if err != nil {
			return err
		}
		if def.Methods[i].IsStatic {
			p.StaticMethods = append(p.StaticMethods, m)
		} else {
			p.Methods = append(p.Methods, m)
		}
	}
	return nil
}

func (b *viewBuilder) iface(p *Page, sym *symbols.QualifiedSymbol) error {
	def := sym.InterfaceDef
	if def == nil {
		return nil
	}
	for i := range def.Extends {
		p.Implements = append(p.Implements, signature.RenderType(&def.Extends[i]))
	}
	for i := range def.Properties {
		m, err := b.propertyMember(&def.Properties[i])
		if err != nil {
			return err
		}
		p.Properties = append(p.Properties, m)
	}
	for i := range def.Methods {
		m, err := b.methodMember(&def.Methods[i])
		if err != nil {
			return err
		}
		p.Methods = append(p.Methods, m)
	}
	return nil
}

func (b *viewBuilder) enum(p *Page, sym *symbols.QualifiedSymbol) error {
	if sym.EnumDef == nil {
		return nil
	}
	for _, em := range sym.EnumDef.Members {
		doc, err := b.html(em.JSDoc.Body())
		if err != nil {
			return err
		}
		tokens := []signature.Token{{Text: em.Name, Role: signature.RoleName}}
		if em.Init != nil {
			tokens = append(tokens, signature.Token{Text: " = ", Role: signature.RolePunctuation})
			tokens = append(tokens, signature.RenderType(em.Init)...)
		}
		p.EnumMembers = append(p.EnumMembers, Member{Name: em.Name, Anchor: em.Name, Tokens: tokens, Doc: doc})
	}
	return nil
}

func (b *viewBuilder) property(p *Page, prop *docnode.Property) error {
	if err := b.common(p, prop.JSDoc, prop.Doc()); err != nil {
		return err
	}
	p.Signature = signature.RenderProperty(prop)
	return nil
}

func (b *viewBuilder) propertyMember(prop *docnode.Property) (Member, error) {
	doc, err := b.html(prop.Doc())
	if err != nil {
		return Member{}, err
	}
	_, deprecated := prop.JSDoc.Deprecated()
	return Member{
		Name:       prop.Name,
		Anchor:     anchor(prop.IsStatic, prop.Name),
		Tokens:     signature.RenderProperty(prop),
		Doc:        doc,
		Unstable:   prop.JSDoc.IsExperimental(),
		Deprecated: deprecated,
		Optional:   prop.Optional,
	}, nil
}

func (b *viewBuilder) methodMember(m *docnode.Method) (Member, error) {
	doc, err := b.html(m.Doc())
	if err != nil {
		return Member{}, err
	}
	_, deprecated := m.JSDoc.Deprecated()
	return Member{
		Name:       m.Name,
		Anchor:     anchor(m.IsStatic, m.Name),
		Tokens:     signature.RenderCallable(signature.FromMethod(m)),
		Doc:        doc,
		Unstable:   m.JSDoc.IsExperimental(),
		Deprecated: deprecated,
		Optional:   m.Optional,
	}, nil
}

// localURL links a type name to its page when the package declares it.
func (b *viewBuilder) localURL(name string) string {
	if b.rc == nil || b.rc.Package == nil {
		return ""
	}
	syms := b.rc.Package.Symbols
	for j := range syms {
		if syms[j].FullName == name || syms[j].Name == name {
			return planner.SymbolURL(b.root(), b.plan.Package, syms[j].FullName)
		}
	}
	return ""
}

func anchor(static bool, name string) string {
	if static {
		return "static_" + name
	}
	return "prototype_" + name
}

func variableType(sym *symbols.QualifiedSymbol) *docnode.TypeDef {
	if sym.VariableDef == nil {
		return nil
	}
	return sym.VariableDef.TsType
}

// declaration renders "name: type".
func declaration(name string, t *docnode.TypeDef) []signature.Token {
	tokens := []signature.Token{{Text: name, Role: signature.RoleName}}
	if t != nil {
		tokens = append(tokens, signature.Token{Text: ": ", Role: signature.RolePunctuation})
		tokens = append(tokens, signature.RenderType(t)...)
	}
	return tokens
}

// aliasLine renders "type name = type".
func aliasLine(name string, t *docnode.TypeDef) []signature.Token {
	tokens := []signature.Token{
		{Text: "type ", Role: signature.RoleModifier},
		{Text: name, Role: signature.RoleName},
	}
	if t != nil {
		tokens = append(tokens, signature.Token{Text: " = ", Role: signature.RolePunctuation})
		tokens = append(tokens, signature.RenderType(t)...)
	}
	return tokens
}
