package docnode

// TypeKind identifies the variant of a TypeDef.
type TypeKind string

const (
	TypeReference     TypeKind = "reference"
	TypeRefKind       TypeKind = "typeRef" // extractor spelling of reference
	TypeKeyword       TypeKind = "keyword"
	TypeArray         TypeKind = "array"
	TypeUnion         TypeKind = "union"
	TypeIntersection  TypeKind = "intersection"
	TypeParenthesized TypeKind = "parenthesized"
	TypeLiteral       TypeKind = "literal"
	TypeTypeLiteral   TypeKind = "typeLiteral"
	TypeOther         TypeKind = "other"
)

// TypeDef is a (possibly nested) type descriptor. Repr is the extractor's
// display string and is the fallback for any variant a consumer does not know.
type TypeDef struct {
	Repr          string          `json:"repr"`
	Kind          TypeKind        `json:"kind,omitempty"`
	Keyword       string          `json:"keyword,omitempty"`
	TypeRef       *TypeRef        `json:"typeRef,omitempty"`
	Array         *TypeDef        `json:"array,omitempty"`
	Union         []TypeDef       `json:"union,omitempty"`
	Intersection  []TypeDef       `json:"intersection,omitempty"`
	Parenthesized *TypeDef        `json:"parenthesized,omitempty"`
	Literal       *LiteralDef     `json:"literal,omitempty"`
	TypeLiteral   *TypeLiteralDef `json:"typeLiteral,omitempty"`
}

// Form returns the normalised kind: typeRef is reported as reference.
func (t *TypeDef) Form() TypeKind {
	if t.Kind == TypeRefKind {
		return TypeReference
	}
	return t.Kind
}

// TypeArgs returns the type arguments of a reference, nil otherwise.
func (t *TypeDef) TypeArgs() []TypeDef {
	if t.TypeRef == nil {
		return nil
	}
	return t.TypeRef.TypeParams
}

// Display is the text used when a descriptor is rendered without structure.
// It never returns "" for a descriptor that has a kind.
func (t *TypeDef) Display() string {
	switch {
	case t.Repr != "":
		return t.Repr
	case t.Literal != nil && t.Literal.Kind != "":
		return t.Literal.Kind
	case t.Keyword != "":
		return t.Keyword
	case t.TypeRef != nil && t.TypeRef.TypeName != "":
		return t.TypeRef.TypeName
	default:
		return string(t.Kind)
	}
}

// TypeRef names a referenced type and its type arguments.
type TypeRef struct {
	TypeName   string    `json:"typeName"`
	TypeParams []TypeDef `json:"typeParams,omitempty"`
}

// LiteralDef describes a literal type such as "foo", 42 or true.
type LiteralDef struct {
	Kind    string   `json:"kind"` // string, number, boolean, bigInt, template
	String  *string  `json:"string,omitempty"`
	Number  *float64 `json:"number,omitempty"`
	Boolean *bool    `json:"boolean,omitempty"`
}

// TypeLiteralDef is an inline object type.
type TypeLiteralDef struct {
	Properties []LiteralProperty `json:"properties"`
}

// LiteralProperty is a property of an inline object type.
type LiteralProperty struct {
	Name     string   `json:"name"`
	TsType   *TypeDef `json:"tsType,omitempty"`
	Optional bool     `json:"optional"`
	Readonly bool     `json:"readonly"`
}

// ParamKind identifies the shape of a parameter.
type ParamKind string

const (
	ParamIdentifier ParamKind = "identifier"
	ParamRest       ParamKind = "rest"
	ParamArray      ParamKind = "array"
	ParamObject     ParamKind = "object"
	ParamAssign     ParamKind = "assign"
)

// Param is a function parameter. Rest parameters wrap their binding in Arg,
// assignment (defaulted) parameters wrap theirs in Left.
type Param struct {
	Kind     ParamKind `json:"kind"`
	Name     string    `json:"name,omitempty"`
	Optional bool      `json:"optional"`
	TsType   *TypeDef  `json:"tsType,omitempty"`
	Arg      *Param    `json:"arg,omitempty"`
	Left     *Param    `json:"left,omitempty"`
}
