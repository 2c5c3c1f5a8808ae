package docnode

import "strings"

// TagKind identifies a documentation tag.
type TagKind string

const (
	TagCategory     TagKind = "category"
	TagExperimental TagKind = "experimental"
	TagDeprecated   TagKind = "deprecated"
	TagParam        TagKind = "param"
	TagReturn       TagKind = "return"
	TagExample      TagKind = "example"
	TagSee          TagKind = "see"
	TagTags         TagKind = "tags"
)

// Tag is one documentation tag: its kind plus free text (and a name for @param).
type Tag struct {
	Kind TagKind `json:"kind"`
	Doc  string  `json:"doc,omitempty"`
	Name string  `json:"name,omitempty"`
}

// JSDoc is a documentation comment: a markdown body and ordered tags.
type JSDoc struct {
	Doc  string `json:"doc,omitempty"`
	Tags []Tag  `json:"tags,omitempty"`
}

// Clone returns a deep copy; a nil receiver clones to nil.
func (j *JSDoc) Clone() *JSDoc {
	if j == nil {
		return nil
	}
	c := &JSDoc{Doc: j.Doc}
	if j.Tags != nil {
		c.Tags = append([]Tag(nil), j.Tags...)
	}
	return c
}

// Body returns the documentation text; a nil receiver has none.
func (j *JSDoc) Body() string {
	if j == nil {
		return ""
	}
	return j.Doc
}

// Categories returns the labels of every category tag, in order.
func (j *JSDoc) Categories() []string {
	if j == nil {
		return nil
	}
	var labels []string
	for _, t := range j.Tags {
		if t.Kind == TagCategory {
			labels = append(labels, strings.TrimSpace(t.Doc))
		}
	}
	return labels
}

// InCategory reports whether a category tag matches label, ignoring case.
func (j *JSDoc) InCategory(label string) bool {
	want := strings.ToLower(label)
	for _, c := range j.Categories() {
		if strings.ToLower(c) == want {
			return true
		}
	}
	return false
}

// HasTag reports whether any tag has the given kind.
func (j *JSDoc) HasTag(kind TagKind) bool {
	if j == nil {
		return false
	}
	for _, t := range j.Tags {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

// IsExperimental reports whether the declaration is marked unstable.
func (j *JSDoc) IsExperimental() bool {
	return j.HasTag(TagExperimental)
}

// Deprecated returns the deprecation note and whether the tag is present.
func (j *JSDoc) Deprecated() (string, bool) {
	if j == nil {
		return "", false
	}
	for _, t := range j.Tags {
		if t.Kind == TagDeprecated {
			return t.Doc, true
		}
	}
	return "", false
}
