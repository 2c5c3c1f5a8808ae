// Package categories groups symbols by their author-assigned category tags.
package categories

import (
	"sort"
	"strings"

	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
	"github.com/simonhull/firebird-suite/heron/pkg/symbols"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// kindOrder is the display order of member groups on a category page.
// Kinds not listed here are grouped last under "other".
var kindOrder = []docnode.Kind{
	docnode.KindClass,
	docnode.KindFunction,
	docnode.KindInterface,
	docnode.KindTypeAlias,
	docnode.KindVariable,
	docnode.KindEnum,
	docnode.KindNamespace,
}

// KindOther labels the group of members whose kind has no group of its own.
const KindOther docnode.Kind = "other"

// Index is the set of category labels found in one package's symbols.
type Index struct {
	labels       []string
	descriptions map[string]string
	folded       map[string]string // lower-cased key to description
	symbols      []symbols.QualifiedSymbol
}

// Group is one kind partition of a category's members.
type Group struct {
	Kind    docnode.Kind
	Symbols []symbols.QualifiedSymbol
}

// Build scans every symbol's category tags and records the distinct labels.
// Labels compare case-sensitively here; membership is case-insensitive.
// A label absent from descriptions gets an empty description.
func Build(syms []symbols.QualifiedSymbol, descriptions map[string]string) *Index {
	seen := make(map[string]bool)
	var labels []string
	for i := range syms {
		for _, label := range syms[i].JSDoc.Categories() {
			if label == "" || seen[label] {
				continue
			}
			seen[label] = true
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)

	keys := make([]string, 0, len(descriptions))
	for k := range descriptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Keys that fold to the same label resolve to the first in byte order.
	desc := make(map[string]string, len(keys))
	folded := make(map[string]string, len(keys))
	for _, k := range keys {
		desc[k] = descriptions[k]
		if _, ok := folded[strings.ToLower(k)]; !ok {
			folded[strings.ToLower(k)] = descriptions[k]
		}
	}

	return &Index{labels: labels, descriptions: desc, folded: folded, symbols: syms}
}

// Labels returns the sorted distinct labels.
func (ix *Index) Labels() []string {
	if ix == nil {
		return nil
	}
	return append([]string(nil), ix.labels...)
}

// Len returns the number of labels.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.labels)
}

// Description returns the description for label. An exact key wins over a
// key that differs only in case; a missing description is "".
func (ix *Index) Description(label string) string {
	if ix == nil {
		return ""
	}
	if d, ok := ix.descriptions[label]; ok {
		return d
	}
	return ix.folded[strings.ToLower(label)]
}

// Matches reports whether sym carries a category tag equal to label,
// ignoring case.
func Matches(sym *symbols.QualifiedSymbol, label string) bool {
	return sym.JSDoc.InCategory(label)
}

// Members returns the symbols in label, partitioned by kind in display
// order and sorted by name within each group. Empty groups are omitted.
func (ix *Index) Members(label string) []Group {
	if ix == nil {
		return nil
	}

	buckets := make(map[docnode.Kind][]symbols.QualifiedSymbol)
	for i := range ix.symbols {
		sym := &ix.symbols[i]
		if !Matches(sym, label) {
			continue
		}
		k := groupKind(sym.Kind)
		buckets[k] = append(buckets[k], *sym)
	}

	c := collate.New(language.English)
	var groups []Group
	for _, k := range append(kindOrder, KindOther) {
		members := buckets[k]
		if len(members) == 0 {
			continue
		}
		SortByName(c, members)
		groups = append(groups, Group{Kind: k, Symbols: members})
	}
	return groups
}

// SortByName orders symbols by name with locale-aware collation, breaking
// ties by byte order so the result is fully deterministic.
func SortByName(c *collate.Collator, syms []symbols.QualifiedSymbol) {
	if c == nil {
		c = collate.New(language.English)
	}
	sort.SliceStable(syms, func(i, j int) bool {
		if r := c.CompareString(syms[i].Name, syms[j].Name); r != 0 {
			return r < 0
		}
		return syms[i].Name < syms[j].Name
	})
}

func groupKind(k docnode.Kind) docnode.Kind {
	for _, known := range kindOrder {
		if k == known {
			return k
		}
	}
	return KindOther
}
