// Package docnode models the documentation nodes produced by an API documentation
// extractor: exported declarations, their type descriptors and JSDoc-style comments.
//
// Nodes are read-only once decoded. Every consumer that needs to annotate or
// change a node works on its own copy.
package docnode

// Kind identifies the declaration variant a Node carries.
type Kind string

const (
	KindModuleDoc Kind = "moduleDoc"
	KindNamespace Kind = "namespace"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindFunction  Kind = "function"
	KindVariable  Kind = "variable"
	KindTypeAlias Kind = "typeAlias"
	KindEnum      Kind = "enum"
	KindImport    Kind = "import"
)

// Known reports whether k is one of the declaration kinds this package understands.
func (k Kind) Known() bool {
	switch k {
	case KindModuleDoc, KindNamespace, KindClass, KindInterface, KindFunction,
		KindVariable, KindTypeAlias, KindEnum, KindImport:
		return true
	default:
		return false
	}
}

// Location is the source position a declaration was extracted from.
type Location struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
}

// Node is one exported declaration. Exactly one of the *Def payloads is set,
// matching Kind; unknown kinds carry no payload.
type Node struct {
	Name     string   `json:"name"`
	Kind     Kind     `json:"kind"`
	Location Location `json:"location"`
	JSDoc    *JSDoc   `json:"jsDoc,omitempty"`

	ClassDef     *ClassDef     `json:"classDef,omitempty"`
	InterfaceDef *InterfaceDef `json:"interfaceDef,omitempty"`
	FunctionDef  *FunctionDef  `json:"functionDef,omitempty"`
	VariableDef  *VariableDef  `json:"variableDef,omitempty"`
	TypeAliasDef *TypeAliasDef `json:"typeAliasDef,omitempty"`
	EnumDef      *EnumDef      `json:"enumDef,omitempty"`
	NamespaceDef *NamespaceDef `json:"namespaceDef,omitempty"`
}

// Doc returns the free-text documentation body, or "".
func (n *Node) Doc() string {
	if n.JSDoc == nil {
		return ""
	}
	return n.JSDoc.Doc
}

// Tags returns the documentation tags in source order.
func (n *Node) Tags() []Tag {
	if n.JSDoc == nil {
		return nil
	}
	return n.JSDoc.Tags
}

// Children returns the elements of a namespace node, nil for every other kind.
func (n *Node) Children() []Node {
	if n.Kind != KindNamespace || n.NamespaceDef == nil {
		return nil
	}
	return n.NamespaceDef.Elements
}

// Clone returns a copy of n whose JSDoc can be modified without touching n.
// Payloads are shared; they are never modified after decoding.
func (n Node) Clone() Node {
	n.JSDoc = n.JSDoc.Clone()
	return n
}

// ClassDef is the payload of a class declaration.
type ClassDef struct {
	IsAbstract   bool          `json:"isAbstract"`
	Extends      string        `json:"extends,omitempty"`
	Implements   []TypeDef     `json:"implements,omitempty"`
	Constructors []Constructor `json:"constructors,omitempty"`
	Properties   []Property    `json:"properties,omitempty"`
	Methods      []Method      `json:"methods,omitempty"`
}

// InterfaceDef is the payload of an interface declaration.
type InterfaceDef struct {
	Extends    []TypeDef  `json:"extends,omitempty"`
	Properties []Property `json:"properties,omitempty"`
	Methods    []Method   `json:"methods,omitempty"`
}

// Constructor is a class constructor.
type Constructor struct {
	Name          string  `json:"name"`
	Accessibility string  `json:"accessibility,omitempty"`
	Params        []Param `json:"params,omitempty"`
	JSDoc         *JSDoc  `json:"jsDoc,omitempty"`
}

// Property is a class or interface property.
type Property struct {
	Name          string   `json:"name"`
	TsType        *TypeDef `json:"tsType,omitempty"`
	Readonly      bool     `json:"readonly"`
	Optional      bool     `json:"optional"`
	IsStatic      bool     `json:"isStatic"`
	IsAbstract    bool     `json:"isAbstract"`
	IsOverride    bool     `json:"isOverride"`
	Accessibility string   `json:"accessibility,omitempty"`
	JSDoc         *JSDoc   `json:"jsDoc,omitempty"`
}

// Doc returns the property's documentation body.
func (p *Property) Doc() string {
	if p.JSDoc == nil {
		return ""
	}
	return p.JSDoc.Doc
}

// Method is a class or interface method. Interface methods list their
// parameters inline; decoding folds them into FunctionDef.
type Method struct {
	Name          string      `json:"name"`
	Kind          string      `json:"kind,omitempty"` // method, getter, setter
	Optional      bool        `json:"optional"`
	IsStatic      bool        `json:"isStatic"`
	IsAbstract    bool        `json:"isAbstract"`
	IsOverride    bool        `json:"isOverride"`
	Accessibility string      `json:"accessibility,omitempty"`
	FunctionDef   FunctionDef `json:"functionDef"`
	JSDoc         *JSDoc      `json:"jsDoc,omitempty"`
}

// Doc returns the method's documentation body.
func (m *Method) Doc() string {
	if m.JSDoc == nil {
		return ""
	}
	return m.JSDoc.Doc
}

// FunctionDef describes a callable: parameters and optional return type.
type FunctionDef struct {
	DefName     string   `json:"defName,omitempty"`
	Params      []Param  `json:"params"`
	ReturnType  *TypeDef `json:"returnType,omitempty"`
	IsAsync     bool     `json:"isAsync"`
	IsGenerator bool     `json:"isGenerator"`
}

// VariableDef is the payload of a variable declaration.
type VariableDef struct {
	TsType *TypeDef `json:"tsType,omitempty"`
	Kind   string   `json:"kind,omitempty"` // const, let, var
}

// TypeAliasDef is the payload of a type alias declaration.
type TypeAliasDef struct {
	TsType *TypeDef `json:"tsType,omitempty"`
}

// EnumDef is the payload of an enum declaration.
type EnumDef struct {
	Members []EnumMember `json:"members"`
}

// EnumMember is a single enum member.
type EnumMember struct {
	Name  string   `json:"name"`
	Init  *TypeDef `json:"init,omitempty"`
	JSDoc *JSDoc   `json:"jsDoc,omitempty"`
}

// NamespaceDef holds the declarations nested inside a namespace.
type NamespaceDef struct {
	Elements []Node `json:"elements"`
}
