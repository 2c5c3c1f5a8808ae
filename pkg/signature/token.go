// Package signature renders type descriptors and callable declarations into
// display tokens. Rendering is pure and never fails: descriptors of a kind
// the renderer does not know fall back to their display text.
package signature

import "strings"

// Role tells a display layer how to style a token. It is never parsed back.
type Role string

const (
	RoleName        Role = "name"
	RoleIdentifier  Role = "identifier"
	RoleModifier    Role = "modifier"
	RolePunctuation Role = "punctuation"
	RoleType        Role = "type"
	RoleSeparator   Role = "separator"
)

// Hint is a line-break suggestion for long signatures.
type Hint uint8

const (
	HintNone Hint = iota
	HintBreakBefore
	HintBreakAfter
)

// Token is one styled fragment of a rendered signature.
type Token struct {
	Text string `json:"text"`
	Role Role   `json:"role"`
	Hint Hint   `json:"hint,omitempty"`
}

// Text concatenates token texts, ignoring hints.
func Text(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

func tok(text string, role Role) Token {
	return Token{Text: text, Role: role}
}
