package symbols

import (
	"errors"
	"testing"

	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(name string, kind docnode.Kind, doc string) docnode.Node {
	n := docnode.Node{Name: name, Kind: kind}
	if doc != "" {
		n.JSDoc = &docnode.JSDoc{Doc: doc}
	}
	return n
}

func namespace(name string, elements ...docnode.Node) docnode.Node {
	return docnode.Node{
		Name:         name,
		Kind:         docnode.KindNamespace,
		NamespaceDef: &docnode.NamespaceDef{Elements: elements},
	}
}

func fullNames(syms []QualifiedSymbol) []string {
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.FullName
	}
	return names
}

func TestFlatten_NestedNamespaces(t *testing.T) {
	forest := []docnode.Node{
		namespace("A", namespace("B", node("x", docnode.KindFunction, ""))),
	}

	syms, errs := Flatten(forest, "")
	require.Empty(t, errs)
	require.Len(t, syms, 1)

	assert.Equal(t, "A.B.x", syms[0].FullName)
	assert.Equal(t, "A.B", syms[0].Namespace)
	assert.Equal(t, "x", syms[0].Name)
}

func TestFlatten_OrderIsDepthFirst(t *testing.T) {
	forest := []docnode.Node{
		node("first", docnode.KindVariable, ""),
		namespace("N",
			node("inner1", docnode.KindFunction, ""),
			namespace("M", node("deep", docnode.KindClass, "")),
			node("inner2", docnode.KindFunction, ""),
		),
		node("last", docnode.KindInterface, ""),
	}

	syms, errs := Flatten(forest, "")
	require.Empty(t, errs)
	assert.Equal(t, []string{"first", "N.inner1", "N.M.deep", "N.inner2", "last"}, fullNames(syms))
}

func TestFlatten_AncestorPath(t *testing.T) {
	syms, _ := Flatten([]docnode.Node{node("x", docnode.KindFunction, "")}, "Deno")
	require.Len(t, syms, 1)
	assert.Equal(t, "Deno.x", syms[0].FullName)
	assert.Equal(t, "Deno", syms[0].Namespace)
}

func TestFlatten_AlreadyFlatIsUnchanged(t *testing.T) {
	flat := []docnode.Node{
		node("a", docnode.KindFunction, "doc a"),
		node("b", docnode.KindClass, ""),
	}

	first, errs := Flatten(flat, "")
	require.Empty(t, errs)

	second, errs := Flatten(Nodes(first), "")
	require.Empty(t, errs)

	assert.Equal(t, first, second)
	for _, s := range second {
		assert.Empty(t, s.Namespace)
		assert.Equal(t, s.Name, s.FullName)
	}
}

func TestFlatten_DoesNotMutateInput(t *testing.T) {
	forest := []docnode.Node{namespace("N", node("x", docnode.KindFunction, "orig"))}

	syms, _ := Flatten(forest, "")
	syms[0].JSDoc.Doc = "changed"

	assert.Equal(t, "orig", forest[0].Children()[0].Doc())
}

func TestFlatten_MalformedNodesAreSkipped(t *testing.T) {
	forest := []docnode.Node{
		node("ok", docnode.KindFunction, ""),
		{Kind: docnode.KindClass, Location: docnode.Location{Filename: "lib.d.ts", Line: 12}},
		namespace("N", docnode.Node{Kind: docnode.KindVariable}, node("fine", docnode.KindVariable, "")),
	}

	syms, errs := Flatten(forest, "")
	assert.Equal(t, []string{"ok", "N.fine"}, fullNames(syms))
	require.Len(t, errs, 2)

	var malformed *MalformedSymbolError
	require.True(t, errors.As(errs[0], &malformed))
	assert.Equal(t, docnode.KindClass, malformed.Kind)
	assert.Contains(t, malformed.Error(), "lib.d.ts:12")

	require.True(t, errors.As(errs[1], &malformed))
	assert.Equal(t, "N", malformed.Namespace)
}

func TestNamespaces(t *testing.T) {
	forest := []docnode.Node{
		namespace("A", namespace("B", node("x", docnode.KindFunction, ""))),
		node("y", docnode.KindFunction, ""),
	}

	ns := Namespaces(forest)
	assert.Equal(t, []string{"A", "A.B"}, fullNames(ns))
	assert.Equal(t, "A", ns[1].Namespace)
}

func TestMerge_SingleSourceUnchanged(t *testing.T) {
	syms, _ := Flatten([]docnode.Node{
		node("a", docnode.KindFunction, "doc"),
		node("b", docnode.KindClass, ""),
		namespace("N", node("c", docnode.KindVariable, "")),
	}, "")

	assert.Equal(t, syms, Merge(syms))
}

func TestMerge_ClassOutranksInterface(t *testing.T) {
	class := QualifiedSymbol{Node: node("Foo", docnode.KindClass, "The class."), FullName: "Foo"}
	iface := QualifiedSymbol{Node: node("Foo", docnode.KindInterface, "The static side."), FullName: "Foo"}

	merged := Merge([]QualifiedSymbol{class}, []QualifiedSymbol{iface})
	require.Len(t, merged, 1)

	assert.Equal(t, docnode.KindClass, merged[0].Kind)
	assert.Equal(t, "The class.\n\nThe static side.", merged[0].Doc())
}

func TestMerge_PriorityIndependentOfOrder(t *testing.T) {
	iface := QualifiedSymbol{Node: node("Foo", docnode.KindInterface, "iface"), FullName: "Foo"}
	fn := QualifiedSymbol{Node: node("Foo", docnode.KindFunction, ""), FullName: "Foo"}
	class := QualifiedSymbol{Node: node("Foo", docnode.KindClass, "class"), FullName: "Foo"}

	merged := Merge([]QualifiedSymbol{iface, fn, class})
	require.Len(t, merged, 1)
	assert.Equal(t, docnode.KindClass, merged[0].Kind)
	assert.Equal(t, "iface\n\nclass", merged[0].Doc())
}

func TestMerge_FirstSeenWinsAmongEqualKinds(t *testing.T) {
	first := QualifiedSymbol{Node: node("open", docnode.KindFunction, ""), FullName: "open"}
	first.Location.Filename = "fs.d.ts"
	second := QualifiedSymbol{Node: node("open", docnode.KindVariable, "later doc"), FullName: "open"}

	merged := Merge([]QualifiedSymbol{first}, []QualifiedSymbol{second})
	require.Len(t, merged, 1)
	assert.Equal(t, docnode.KindFunction, merged[0].Kind)
	assert.Equal(t, "fs.d.ts", merged[0].Location.Filename)
	assert.Equal(t, "later doc", merged[0].Doc())
}

func TestMerge_StableOrderAndUniqueNames(t *testing.T) {
	a := []QualifiedSymbol{
		{Node: node("x", docnode.KindFunction, ""), FullName: "x"},
		{Node: node("y", docnode.KindFunction, ""), FullName: "y"},
	}
	b := []QualifiedSymbol{
		{Node: node("z", docnode.KindFunction, ""), FullName: "z"},
		{Node: node("x", docnode.KindClass, ""), FullName: "x"},
	}

	merged := Merge(a, b)
	assert.Equal(t, []string{"x", "y", "z"}, fullNames(merged))
	assert.Equal(t, docnode.KindClass, merged[0].Kind)
}

func TestMerge_UnionsCategoryTags(t *testing.T) {
	class := QualifiedSymbol{Node: node("Foo", docnode.KindClass, ""), FullName: "Foo"}
	iface := QualifiedSymbol{Node: node("Foo", docnode.KindInterface, ""), FullName: "Foo"}
	iface.JSDoc = &docnode.JSDoc{Tags: []docnode.Tag{{Kind: docnode.TagCategory, Doc: "Network"}}}

	merged := Merge([]QualifiedSymbol{class, iface})
	require.Len(t, merged, 1)
	assert.True(t, merged[0].JSDoc.InCategory("network"))
	assert.Nil(t, class.JSDoc, "inputs must not be modified")
}

func TestBuildTree(t *testing.T) {
	forest := []docnode.Node{
		namespace("Shapes",
			node("Square", docnode.KindClass, ""),
			node("Circle", docnode.KindClass, ""),
			namespace("Solid", node("Cube", docnode.KindClass, "")),
		),
		node("area", docnode.KindFunction, ""),
		node("area", docnode.KindVariable, ""),
	}

	tree, err := BuildTree("demo", forest)
	require.NoError(t, err)

	assert.Equal(t, 6, tree.Len())

	var names []string
	for _, e := range tree.Children("Shapes") {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Circle", "Solid", "Square"}, names)

	top := tree.Children("")
	require.Len(t, top, 2)
	assert.Equal(t, "Shapes", top[0].Name)

	ancestors := tree.Ancestors("Shapes.Solid.Cube")
	require.Len(t, ancestors, 2)
	assert.Equal(t, "Shapes", ancestors[0].FullName)
	assert.Equal(t, "Shapes.Solid", ancestors[1].FullName)

	assert.Empty(t, tree.Ancestors("area"))
}

func TestBuildTree_KindFollowsMergePriority(t *testing.T) {
	tests := []struct {
		name  string
		first docnode.Kind
		then  docnode.Kind
		want  docnode.Kind
	}{
		{"interface then class", docnode.KindInterface, docnode.KindClass, docnode.KindClass},
		{"class then interface", docnode.KindClass, docnode.KindInterface, docnode.KindClass},
		{"variable then interface", docnode.KindVariable, docnode.KindInterface, docnode.KindInterface},
		{"equal priority keeps first", docnode.KindFunction, docnode.KindVariable, docnode.KindFunction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := []docnode.Node{node("Foo", tt.first, ""), node("Foo", tt.then, "")}

			flat, errs := Flatten(forest, "")
			require.Empty(t, errs)
			merged := Merge(flat)
			require.Len(t, merged, 1)

			tree, err := BuildTree("demo", forest)
			require.NoError(t, err)
			top := tree.Children("")
			require.Len(t, top, 1)

			assert.Equal(t, tt.want, top[0].Kind)
			assert.Equal(t, merged[0].Kind, top[0].Kind)
		})
	}
}
