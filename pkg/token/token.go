// Package token defines the token types and source positions for keikaku.
package token

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int

//nolint:revive // brace names are intentionally ALL_CAPS like the other token types
const (
	// Special tokens
	EOF TokenType = iota

	OPENING_BRACE // (
	CLOSING_BRACE // )
	IDENT         // +, def, foo
	NUMBER        // 42, -7, also malformed text such as 1-2
)

var tokenNames = map[TokenType]string{
	EOF:           "EOF",
	OPENING_BRACE: "OpeningBrace",
	CLOSING_BRACE: "ClosingBrace",
	IDENT:         "Identifier",
	NUMBER:        "Number",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Token represents a lexical token. Positions travel alongside it as a Span.
type Token struct {
	Type    TokenType
	Literal string
}

// String renders the token the way diagnostics and dumps show it,
// e.g. OpeningBrace or Number("12").
func (t Token) String() string {
	switch t.Type {
	case IDENT, NUMBER:
		return t.Type.String() + "(\"" + t.Literal + "\")"
	default:
		return t.Type.String()
	}
}
