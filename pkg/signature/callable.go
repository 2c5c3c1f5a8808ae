package signature

import "github.com/simonhull/firebird-suite/heron/pkg/docnode"

// Callable is everything needed to render a function-like signature.
type Callable struct {
	Name          string
	Accessibility string // public, protected, private or ""
	IsStatic      bool
	IsAbstract    bool
	IsOverride    bool
	Optional      bool
	Params        []docnode.Param
	ReturnType    *docnode.TypeDef
}

// FromMethod builds a Callable from a class or interface method.
// The function's own name wins over the member name when present.
func FromMethod(m *docnode.Method) Callable {
	name := m.FunctionDef.DefName
	if name == "" {
		name = m.Name
	}
	return Callable{
		Name:          name,
		Accessibility: m.Accessibility,
		IsStatic:      m.IsStatic,
		IsAbstract:    m.IsAbstract,
		IsOverride:    m.IsOverride,
		Optional:      m.Optional,
		Params:        m.FunctionDef.Params,
		ReturnType:    m.FunctionDef.ReturnType,
	}
}

// FromFunction builds a Callable from a top-level function declaration.
func FromFunction(name string, fn *docnode.FunctionDef) Callable {
	if fn == nil {
		return Callable{Name: name}
	}
	return Callable{Name: name, Params: fn.Params, ReturnType: fn.ReturnType}
}

// FromConstructor builds a Callable for a class constructor.
func FromConstructor(c *docnode.Constructor) Callable {
	name := c.Name
	if name == "" {
		name = "constructor"
	}
	return Callable{Name: name, Accessibility: c.Accessibility, Params: c.Params}
}

// RenderCallable renders
//
//	[accessibility ][static ][abstract ][override ]name(params)[: returnType]
//
// With more than one parameter, the opening parenthesis and every separator
// carry HintBreakAfter and the closing parenthesis carries HintBreakBefore.
func RenderCallable(c Callable) []Token {
	var out []Token

	if c.Accessibility != "" {
		out = append(out, tok(c.Accessibility+" ", RoleModifier))
	}
	if c.IsStatic {
		out = append(out, tok("static ", RoleModifier))
	}
	if c.IsAbstract {
		out = append(out, tok("abstract ", RoleModifier))
	}
	if c.IsOverride {
		out = append(out, tok("override ", RoleModifier))
	}

	out = append(out, tok(c.Name, RoleName))
	if c.Optional {
		out = append(out, tok("?", RolePunctuation))
	}

	multiline := len(c.Params) > 1
	open := tok("(", RolePunctuation)
	if multiline {
		open.Hint = HintBreakAfter
	}
	out = append(out, open)

	for i := range c.Params {
		if i > 0 {
			sep := tok(", ", RoleSeparator)
			if multiline {
				sep.Hint = HintBreakAfter
			}
			out = append(out, sep)
		}
		out = appendParam(out, &c.Params[i])
	}

	closing := tok(")", RolePunctuation)
	if multiline {
		closing.Hint = HintBreakBefore
	}
	out = append(out, closing)

	if c.ReturnType != nil {
		out = append(out, tok(": ", RolePunctuation))
		out = appendType(out, c.ReturnType)
	}
	return out
}

// RenderParam renders a single parameter.
func RenderParam(p *docnode.Param) []Token {
	if p == nil {
		return nil
	}
	return appendParam(nil, p)
}

func appendParam(out []Token, p *docnode.Param) []Token {
	switch p.Kind {
	case docnode.ParamRest:
		out = append(out, tok("...", RolePunctuation))
		if p.Arg == nil {
			return append(out, tok(p.Name, RoleIdentifier))
		}
		arg := *p.Arg
		if arg.TsType == nil {
			arg.TsType = p.TsType
		}
		return appendParam(out, &arg)

	case docnode.ParamArray:
		return appendBinding(out, "[]", p)

	case docnode.ParamObject:
		return appendBinding(out, "{}", p)

	case docnode.ParamAssign:
		if p.Left != nil {
			return appendParam(out, p.Left)
		}
		return appendBinding(out, p.Name, p)

	default:
		return appendBinding(out, p.Name, p)
	}
}

func appendBinding(out []Token, name string, p *docnode.Param) []Token {
	out = append(out, tok(name, RoleIdentifier))
	if p.Optional {
		out = append(out, tok("?", RolePunctuation))
	}
	if p.TsType != nil {
		out = append(out, tok(": ", RolePunctuation))
		out = appendType(out, p.TsType)
	}
	return out
}

// RenderProperty renders [static ][readonly ]name[?]: type.
func RenderProperty(p *docnode.Property) []Token {
	var out []Token
	if p.IsStatic {
		out = append(out, tok("static ", RoleModifier))
	}
	if p.Readonly {
		out = append(out, tok("readonly ", RoleModifier))
	}
	out = append(out, tok(p.Name, RoleName))
	if p.Optional {
		out = append(out, tok("?", RolePunctuation))
	}
	if p.TsType != nil {
		out = append(out, tok(": ", RolePunctuation))
		out = appendType(out, p.TsType)
	}
	return out
}
