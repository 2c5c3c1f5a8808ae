package planner

import (
	"errors"
	"testing"

	"github.com/simonhull/firebird-suite/heron/pkg/categories"
	"github.com/simonhull/firebird-suite/heron/pkg/diag"
	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
	"github.com/simonhull/firebird-suite/heron/pkg/logger"
	"github.com/simonhull/firebird-suite/heron/pkg/signature"
	"github.com/simonhull/firebird-suite/heron/pkg/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanner(opts ...Option) (*Planner, *diag.Collector) {
	diags := diag.NewCollector(nil)
	return New(NewURLSet(), diags, logger.NewSilentLogger(), opts...), diags
}

func collect(p *Planner, pkg Package, root string) []PagePlan {
	var plans []PagePlan
	for plan := range p.Plan(pkg, root) {
		plans = append(plans, plan)
	}
	return plans
}

func urls(plans []PagePlan) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i] = p.URL
	}
	return out
}

// prepare runs the same steps a generation run does before planning.
func prepare(name string, forest []docnode.Node, descriptions map[string]string) Package {
	flat, _ := symbols.Flatten(forest, "")
	merged := symbols.Merge(flat)
	return Package{
		Name:       name,
		Forest:     forest,
		Symbols:    merged,
		Categories: categories.Build(merged, descriptions),
	}
}

func demoForest() []docnode.Node {
	circle := docnode.Node{
		Name:  "Circle",
		Kind:  docnode.KindClass,
		JSDoc: &docnode.JSDoc{Tags: []docnode.Tag{{Kind: docnode.TagCategory, Doc: "Geometry"}}},
		ClassDef: &docnode.ClassDef{
			Methods: []docnode.Method{{
				Name: "area",
				Kind: "method",
				FunctionDef: docnode.FunctionDef{
					ReturnType: &docnode.TypeDef{Kind: docnode.TypeKeyword, Repr: "number", Keyword: "number"},
				},
			}},
		},
	}
	return []docnode.Node{{
		Name:         "Shapes",
		Kind:         docnode.KindNamespace,
		NamespaceDef: &docnode.NamespaceDef{Elements: []docnode.Node{circle}},
	}}
}

func TestPlan_EndToEndDemo(t *testing.T) {
	p, diags := newPlanner()
	pkg := prepare("demo", demoForest(), map[string]string{"Geometry": "Shapes and their properties."})

	plans := collect(p, pkg, "/api")
	assert.Equal(t, []string{
		"/api/demo/",
		"/api/demo/geometry",
		"/api/demo/~/Shapes",
		"/api/demo/~/Shapes.Circle",
	}, urls(plans))
	assert.Zero(t, diags.Len())

	assert.Equal(t, PageCategoryHome, plans[0].Kind)
	assert.Equal(t, PageCategory, plans[1].Kind)
	assert.Equal(t, "Geometry", plans[1].Category)
	assert.Equal(t, "Shapes and their properties.", pkg.Categories.Description(plans[1].Category))

	circle := plans[3]
	assert.Equal(t, PageClass, circle.Kind)
	assert.Equal(t, "demo", circle.Package)
	require.NotNil(t, circle.Symbol)
	require.NotNil(t, circle.Symbol.ClassDef)
	require.Len(t, circle.Symbol.ClassDef.Methods, 1)

	area := signature.RenderCallable(signature.FromMethod(&circle.Symbol.ClassDef.Methods[0]))
	assert.Equal(t, "area(): number", signature.Text(area))
}

func TestPlan_RootVariants(t *testing.T) {
	tests := []struct {
		root string
		want string
	}{
		{"/api", "/api/demo/"},
		{"/api/", "/api/demo/"},
		{"api", "/api/demo/"},
		{"", "/demo/"},
		{"/", "/demo/"},
	}
	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			p, _ := newPlanner()
			plans := collect(p, Package{Name: "Demo"}, tt.root)
			require.Len(t, plans, 1)
			assert.Equal(t, tt.want, plans[0].URL)
		})
	}
}

func TestPlan_URLCollision(t *testing.T) {
	// Two same-named exports that were never merged.
	a := symbols.QualifiedSymbol{Node: docnode.Node{Name: "open", Kind: docnode.KindFunction}, FullName: "open"}
	b := symbols.QualifiedSymbol{Node: docnode.Node{Name: "open", Kind: docnode.KindVariable}, FullName: "open"}

	p, diags := newPlanner()
	plans := collect(p, Package{Name: "fs", Symbols: []symbols.QualifiedSymbol{a, b}}, "/api")

	count := 0
	for _, plan := range plans {
		if plan.URL == "/api/fs/~/open" {
			count++
			assert.Equal(t, PageFunction, plan.Kind)
		}
	}
	assert.Equal(t, 1, count)

	require.Equal(t, 1, diags.Len())
	var dup *DuplicateURLError
	require.True(t, errors.As(diags.Diagnostics()[0], &dup))
	assert.Equal(t, "/api/fs/~/open", dup.URL)
}

func TestPlan_CollisionAcrossPackagesInOneRun(t *testing.T) {
	p, diags := newPlanner()

	first := collect(p, Package{Name: "Demo"}, "/api")
	second := collect(p, Package{Name: "demo"}, "/api")

	assert.Len(t, first, 1)
	assert.Empty(t, second)
	assert.Equal(t, 1, diags.Len())
}

func TestPlan_SeparateRunsDoNotInterfere(t *testing.T) {
	p1, _ := newPlanner()
	p2, diags := newPlanner()

	collect(p1, Package{Name: "demo"}, "/api")
	plans := collect(p2, Package{Name: "demo"}, "/api")

	assert.Len(t, plans, 1)
	assert.Zero(t, diags.Len())
}

func TestPlan_MergedSymbolPlannedOnce(t *testing.T) {
	forest := []docnode.Node{
		{Name: "Foo", Kind: docnode.KindInterface, JSDoc: &docnode.JSDoc{Doc: "iface"}},
		{Name: "Foo", Kind: docnode.KindClass, JSDoc: &docnode.JSDoc{Doc: "class"}},
	}

	p, diags := newPlanner()
	plans := collect(p, prepare("demo", forest, nil), "/api")

	assert.Equal(t, []string{"/api/demo/", "/api/demo/~/Foo"}, urls(plans))
	assert.Equal(t, PageClass, plans[1].Kind)
	assert.Equal(t, "iface\n\nclass", plans[1].Symbol.Doc())
	assert.Zero(t, diags.Len())
}

func TestPlan_KindDispatch(t *testing.T) {
	forest := []docnode.Node{
		{Name: "Runtime", Kind: docnode.KindModuleDoc},
		{Name: "read", Kind: docnode.KindFunction},
		{Name: "Reader", Kind: docnode.KindInterface},
		{Name: "Mode", Kind: docnode.KindEnum},
		{Name: "Handler", Kind: docnode.KindTypeAlias},
		{Name: "version", Kind: docnode.KindVariable},
		{Name: "dep", Kind: docnode.KindImport},
		{Name: "weird", Kind: docnode.Kind("decorator")},
	}

	p, diags := newPlanner()
	plans := collect(p, prepare("demo", forest, nil), "/api")

	assert.Equal(t, []string{
		"/api/demo/",
		"/api/demo/runtime",
		"/api/demo/~/read",
		"/api/demo/~/Reader",
		"/api/demo/~/Mode",
		"/api/demo/~/Handler",
		"/api/demo/~/version",
	}, urls(plans))
	assert.Equal(t, PageModule, plans[1].Kind)
	assert.Zero(t, diags.Len())
}

func TestPlan_NestedNamespaces(t *testing.T) {
	forest := []docnode.Node{{
		Name: "A",
		Kind: docnode.KindNamespace,
		NamespaceDef: &docnode.NamespaceDef{Elements: []docnode.Node{
			{Name: "B", Kind: docnode.KindNamespace, NamespaceDef: &docnode.NamespaceDef{Elements: []docnode.Node{
				{Name: "x", Kind: docnode.KindFunction},
			}}},
			{Name: "y", Kind: docnode.KindVariable},
		}},
	}}

	p, _ := newPlanner()
	plans := collect(p, prepare("demo", forest, nil), "")

	assert.Equal(t, []string{"/demo/", "/demo/~/A", "/demo/~/A.B", "/demo/~/A.B.x", "/demo/~/A.y"}, urls(plans))
	assert.Equal(t, PageNamespace, plans[2].Kind)
	assert.Equal(t, "A", plans[2].Symbol.Namespace)
}

func TestPlan_MemberPages(t *testing.T) {
	forest := []docnode.Node{{
		Name: "Circle",
		Kind: docnode.KindClass,
		ClassDef: &docnode.ClassDef{Properties: []docnode.Property{
			{Name: "radius"},
			{Name: "UNIT", IsStatic: true},
		}},
	}}

	p, _ := newPlanner(WithMemberPages(true))
	plans := collect(p, prepare("demo", forest, nil), "/api")

	assert.Equal(t, []string{
		"/api/demo/",
		"/api/demo/~/Circle",
		"/api/demo/~/Circle.prototype.radius",
		"/api/demo/~/Circle.UNIT",
	}, urls(plans))
	assert.Equal(t, PageProperty, plans[2].Kind)
	assert.Equal(t, "radius", plans[2].Member.Name)
	assert.Equal(t, "Circle", plans[2].Symbol.FullName)

	p2, _ := newPlanner()
	assert.Len(t, collect(p2, prepare("demo", forest, nil), "/api"), 2)
}

func TestPlan_IsLazy(t *testing.T) {
	var forest []docnode.Node
	for _, name := range []string{"a", "b", "c", "d"} {
		forest = append(forest, docnode.Node{Name: name, Kind: docnode.KindFunction})
	}

	urlSet := NewURLSet()
	p := New(urlSet, nil, nil)

	var seen []string
	for plan := range p.Plan(prepare("demo", forest, nil), "/api") {
		seen = append(seen, plan.URL)
		// Later pages are not planned before earlier ones are consumed.
		assert.Equal(t, len(seen), urlSet.Len())
		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"/api/demo/", "/api/demo/~/a"}, seen)
	assert.Equal(t, 2, urlSet.Len())
}

func TestPlan_SymbolsWithoutForest(t *testing.T) {
	syms, _ := symbols.Flatten([]docnode.Node{
		{Name: "x", Kind: docnode.KindFunction},
		{Name: "y", Kind: docnode.KindClass},
	}, "Deno")

	p, _ := newPlanner()
	plans := collect(p, Package{Name: "deno", Symbols: syms}, "/api")

	assert.Equal(t, []string{"/api/deno/", "/api/deno/~/Deno.x", "/api/deno/~/Deno.y"}, urls(plans))
}

func TestCategorySlug(t *testing.T) {
	p, _ := newPlanner()
	sym := symbols.QualifiedSymbol{FullName: "readFile"}
	sym.Name = "readFile"
	sym.Kind = docnode.KindFunction
	sym.JSDoc = &docnode.JSDoc{Tags: []docnode.Tag{{Kind: docnode.TagCategory, Doc: "File System"}}}
	syms := []symbols.QualifiedSymbol{sym}

	plans := collect(p, Package{Name: "fs", Symbols: syms, Categories: categories.Build(syms, nil)}, "/api")
	assert.Equal(t, "/api/fs/file%20system", plans[1].URL)
	assert.Equal(t, "File System", plans[1].Title)
}

func TestCategoryURL(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Networking", "/api/deno/networking"},
		{"File System", "/api/deno/file%20system"},
		{"I/O", "/api/deno/i%2Fo"},
		{"Émoji", "/api/deno/%C3%A9moji"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryURL("/api", "Deno", tt.label))
		})
	}
}
