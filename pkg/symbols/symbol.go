// Package symbols turns a forest of documentation nodes into a flat, addressable
// symbol table: namespaces are flattened into dotted names and symbols that
// collide on their qualified name are merged into one canonical entry.
package symbols

import (
	"fmt"

	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
)

// QualifiedSymbol is a declaration annotated with its position in the namespace tree.
type QualifiedSymbol struct {
	docnode.Node

	// Namespace is the dot-joined ancestor path, "" at top level.
	Namespace string
	// FullName is Namespace + "." + Name, or Name at top level.
	FullName string
}

// Qualify joins an ancestor path and a name.
func Qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// Nodes strips the annotations, returning the underlying declarations.
func Nodes(syms []QualifiedSymbol) []docnode.Node {
	nodes := make([]docnode.Node, len(syms))
	for i := range syms {
		nodes[i] = syms[i].Node
	}
	return nodes
}

// MalformedSymbolError reports a declaration that lacks its identity fields.
// The node is skipped; its siblings are unaffected.
type MalformedSymbolError struct {
	Kind      docnode.Kind
	Namespace string
	Location  docnode.Location
}

// Error returns a formatted error message
func (e *MalformedSymbolError) Error() string {
	where := e.Location.Filename
	if where == "" {
		where = "unknown location"
	} else if e.Location.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Location.Line)
	}

	if e.Namespace != "" {
		return fmt.Sprintf("malformed %s declaration in namespace %s at %s: missing name", e.Kind, e.Namespace, where)
	}
	return fmt.Sprintf("malformed %s declaration at %s: missing name", e.Kind, where)
}
