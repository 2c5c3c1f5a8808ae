package symbols

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
)

// Entry is a vertex of the containment tree.
type Entry struct {
	FullName string // "" for the package root
	Name     string
	Kind     docnode.Kind
}

// Tree is the containment graph of one package: root -> namespaces -> declarations.
// Symbols that collided on FullName share a single vertex.
type Tree struct {
	g graph.Graph[string, Entry]
}

// BuildTree builds the containment graph for a declaration forest.
// Malformed (unnamed) nodes are left out, as Flatten leaves them out.
func BuildTree(pkg string, forest []docnode.Node) (*Tree, error) {
	g := graph.New(func(e Entry) string { return e.FullName }, graph.Directed())
	kinds := canonicalKinds(forest, "", make(map[string]docnode.Kind))

	if err := g.AddVertex(Entry{Name: pkg}); err != nil {
		return nil, fmt.Errorf("adding package root: %w", err)
	}

	var add func(nodes []docnode.Node, parent string) error
	add = func(nodes []docnode.Node, parent string) error {
		for i := range nodes {
			node := &nodes[i]
			if node.Name == "" {
				continue
			}

			full := Qualify(parent, node.Name)
			err := g.AddVertex(Entry{FullName: full, Name: node.Name, Kind: kinds[full]})
			if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
				return fmt.Errorf("adding %s: %w", full, err)
			}

			err = g.AddEdge(parent, full)
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return fmt.Errorf("linking %s: %w", full, err)
			}

			if node.Kind == docnode.KindNamespace {
				if err := add(node.Children(), full); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := add(forest, ""); err != nil {
		return nil, err
	}
	return &Tree{g: g}, nil
}

// canonicalKinds resolves the kind of every FullName the way Merge does:
// the highest priority kind wins and ties keep the first one seen.
func canonicalKinds(nodes []docnode.Node, parent string, kinds map[string]docnode.Kind) map[string]docnode.Kind {
	for i := range nodes {
		node := &nodes[i]
		if node.Name == "" {
			continue
		}
		full := Qualify(parent, node.Name)
		if prev, ok := kinds[full]; !ok || kindPriority(node.Kind) > kindPriority(prev) {
			kinds[full] = node.Kind
		}
		if node.Kind == docnode.KindNamespace {
			canonicalKinds(node.Children(), full, kinds)
		}
	}
	return kinds
}

// Children returns the direct members of fullName ("" for the package root),
// sorted by name.
func (t *Tree) Children(fullName string) []Entry {
	adjacency, err := t.g.AdjacencyMap()
	if err != nil {
		return nil
	}

	var out []Entry
	for child := range adjacency[fullName] {
		if e, err := t.g.Vertex(child); err == nil {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Ancestors returns the namespaces enclosing fullName, outermost first.
// The package root is not included.
func (t *Tree) Ancestors(fullName string) []Entry {
	predecessors, err := t.g.PredecessorMap()
	if err != nil {
		return nil
	}

	var chain []Entry
	current := fullName
	for {
		var parent string
		found := false
		for p := range predecessors[current] {
			parent, found = p, true
			break
		}
		if !found || parent == "" {
			break
		}
		e, err := t.g.Vertex(parent)
		if err != nil {
			break
		}
		chain = append([]Entry{e}, chain...)
		current = parent
	}
	return chain
}

// Len returns the number of declarations in the tree, excluding the root.
func (t *Tree) Len() int {
	n, err := t.g.Order()
	if err != nil || n == 0 {
		return 0
	}
	return n - 1
}
