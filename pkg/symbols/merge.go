package symbols

import (
	"strings"

	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
)

// Merge combines flattened symbols from several inputs of one package into a
// table with exactly one symbol per FullName.
//
// Colliding symbols resolve to the member of highest kind priority
// (class, then interface, then anything else). Among equal priorities the
// first one seen wins. The canonical symbol receives every member's
// non-empty documentation, in input order, separated by a blank line, and
// the union of their tags.
//
// Output order is the order in which each FullName was first encountered.
func Merge(sources ...[]QualifiedSymbol) []QualifiedSymbol {
	index := make(map[string]int)
	var groups [][]QualifiedSymbol

	for _, src := range sources {
		for _, sym := range src {
			if i, ok := index[sym.FullName]; ok {
				groups[i] = append(groups[i], sym)
				continue
			}
			index[sym.FullName] = len(groups)
			groups = append(groups, []QualifiedSymbol{sym})
		}
	}

	out := make([]QualifiedSymbol, 0, len(groups))
	for _, group := range groups {
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		out = append(out, resolve(group))
	}
	return out
}

// kindPriority ranks kinds for collision resolution; higher wins.
func kindPriority(k docnode.Kind) int {
	switch k {
	case docnode.KindClass:
		return 2
	case docnode.KindInterface:
		return 1
	default:
		return 0
	}
}

func resolve(group []QualifiedSymbol) QualifiedSymbol {
	best := 0
	for i := 1; i < len(group); i++ {
		if kindPriority(group[i].Kind) > kindPriority(group[best].Kind) {
			best = i
		}
	}

	canonical := group[best]
	canonical.Node = canonical.Node.Clone()

	var docs []string
	var tags []docnode.Tag
	seen := make(map[docnode.Tag]bool)
	for i := range group {
		if doc := group[i].Doc(); strings.TrimSpace(doc) != "" {
			docs = append(docs, doc)
		}
		for _, tag := range group[i].Tags() {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}

	if len(docs) == 0 && len(tags) == 0 {
		return canonical
	}
	if canonical.JSDoc == nil {
		canonical.JSDoc = &docnode.JSDoc{}
	}
	canonical.JSDoc.Doc = strings.Join(docs, "\n\n")
	canonical.JSDoc.Tags = tags
	return canonical
}
