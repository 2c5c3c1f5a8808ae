package symbols

import (
	"strings"

	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
)

// Flatten walks a declaration forest depth first and returns every
// non-namespace declaration with its qualified name. Namespaces are not
// emitted themselves; their elements take the namespace path as prefix.
//
// Input nodes are never modified. Nodes without a name are reported as
// *MalformedSymbolError and skipped (with their subtree, for namespaces).
func Flatten(nodes []docnode.Node, ancestor string) ([]QualifiedSymbol, []error) {
	var (
		out  = make([]QualifiedSymbol, 0, len(nodes))
		errs []error
	)
	flatten(nodes, ancestor, &out, &errs)
	return out, errs
}

func flatten(nodes []docnode.Node, ns string, out *[]QualifiedSymbol, errs *[]error) {
	for i := range nodes {
		node := &nodes[i]

		if strings.TrimSpace(node.Name) == "" {
			*errs = append(*errs, &MalformedSymbolError{
				Kind:      node.Kind,
				Namespace: ns,
				Location:  node.Location,
			})
			continue
		}

		if node.Kind == docnode.KindNamespace {
			flatten(node.Children(), Qualify(ns, node.Name), out, errs)
			continue
		}

		*out = append(*out, QualifiedSymbol{
			Node:      node.Clone(),
			Namespace: ns,
			FullName:  Qualify(ns, node.Name),
		})
	}
}

// Namespaces lists the namespace declarations of a forest, outermost first,
// annotated the same way Flatten annotates leaves.
func Namespaces(nodes []docnode.Node) []QualifiedSymbol {
	var out []QualifiedSymbol
	var walk func([]docnode.Node, string)
	walk = func(nodes []docnode.Node, ns string) {
		for i := range nodes {
			node := &nodes[i]
			if node.Kind != docnode.KindNamespace || strings.TrimSpace(node.Name) == "" {
				continue
			}
			full := Qualify(ns, node.Name)
			out = append(out, QualifiedSymbol{Node: node.Clone(), Namespace: ns, FullName: full})
			walk(node.Children(), full)
		}
	}
	walk(nodes, "")
	return out
}
