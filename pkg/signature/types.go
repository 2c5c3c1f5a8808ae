package signature

import "github.com/simonhull/firebird-suite/heron/pkg/docnode"

// RenderType renders a type descriptor. A nil descriptor renders nothing.
func RenderType(t *docnode.TypeDef) []Token {
	if t == nil {
		return nil
	}
	return appendType(nil, t)
}

func appendType(out []Token, t *docnode.TypeDef) []Token {
	switch t.Form() {
	case docnode.TypeReference:
		out = append(out, tok(t.Display(), RoleType))
		if args := t.TypeArgs(); len(args) > 0 {
			out = append(out, tok("<", RolePunctuation))
			out = appendJoined(out, args, ", ")
			out = append(out, tok(">", RolePunctuation))
		}

	case docnode.TypeArray:
		if t.Array == nil {
			return append(out, tok(t.Display(), RoleType))
		}
		out = appendType(out, t.Array)
		out = append(out, tok("[]", RolePunctuation))

	case docnode.TypeUnion:
		if len(t.Union) == 0 {
			return append(out, tok(t.Display(), RoleType))
		}
		out = appendJoined(out, t.Union, " | ")

	case docnode.TypeIntersection:
		if len(t.Intersection) == 0 {
			return append(out, tok(t.Display(), RoleType))
		}
		out = appendJoined(out, t.Intersection, " & ")

	case docnode.TypeParenthesized:
		if t.Parenthesized == nil {
			return append(out, tok(t.Display(), RoleType))
		}
		out = append(out, tok("(", RolePunctuation))
		out = appendType(out, t.Parenthesized)
		out = append(out, tok(")", RolePunctuation))

	case docnode.TypeTypeLiteral:
		if t.TypeLiteral == nil {
			return append(out, tok(t.Display(), RoleType))
		}
		out = append(out, tok("{ ", RolePunctuation))
		for _, p := range t.TypeLiteral.Properties {
			out = append(out, tok(p.Name, RoleIdentifier))
			if p.Optional {
				out = append(out, tok("?", RolePunctuation))
			}
			if p.TsType != nil {
				out = append(out, tok(": ", RolePunctuation))
				out = appendType(out, p.TsType)
			}
			out = append(out, tok("; ", RoleSeparator))
		}
		out = append(out, tok("}", RolePunctuation))

	default:
		// keyword, literal, other and anything newer
		out = append(out, tok(t.Display(), RoleType))
	}
	return out
}

func appendJoined(out []Token, types []docnode.TypeDef, sep string) []Token {
	for i := range types {
		if i > 0 {
			out = append(out, tok(sep, RoleSeparator))
		}
		out = appendType(out, &types[i])
	}
	return out
}
