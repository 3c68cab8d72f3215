package parser

import (
	"iter"
	"strings"
	"unicode"

	"github.com/leapstack-labs/keikaku/pkg/token"
)

// Lexer lazily tokenizes a Source. It never fails: malformed numeric text
// is returned as a NUMBER token and rejected by the parser.
type Lexer struct {
	src *Source
}

// TokenSpan pairs a token with the span it was read from.
type TokenSpan struct {
	Token token.Token
	Span  token.Span
}

// NewLexer creates a new Lexer over src.
func NewLexer(src *Source) *Lexer {
	return &Lexer{src: src}
}

// NewStringLexer creates a new Lexer for the given input.
func NewStringLexer(name, input string) *Lexer {
	return NewLexer(NewStringSource(name, input))
}

// Tokenize returns every token of input.
func Tokenize(name, input string) []TokenSpan {
	var out []TokenSpan
	for tok, span := range NewStringLexer(name, input).Tokens() {
		out = append(out, TokenSpan{Token: tok, Span: span})
	}
	return out
}

// Err returns the underlying read error, if the source failed.
func (l *Lexer) Err() error {
	return l.src.Err()
}

// Tokens returns the remaining tokens as an iterator. The sequence is
// single-use: it drains the lexer.
func (l *Lexer) Tokens() iter.Seq2[token.Token, token.Span] {
	return func(yield func(token.Token, token.Span) bool) {
		for {
			tok, span, ok := l.Next()
			if !ok || !yield(tok, span) {
				return
			}
		}
	}
}

// Next returns the next token and its span. At end of input it returns an
// EOF token and false.
func (l *Lexer) Next() (token.Token, token.Span, bool) {
	l.discardWhile(unicode.IsSpace)

	start := l.src.CurrentPos()
	ch, ok := l.src.Next()
	if !ok {
		return token.Token{Type: token.EOF}, start.To(start), false
	}

	// One rune of lookahead decides between a negative number and an identifier.
	next, hasNext := l.src.Peek()

	var tok token.Token
	switch {
	case ch == '(':
		tok = token.Token{Type: token.OPENING_BRACE, Literal: "("}
	case ch == ')':
		tok = token.Token{Type: token.CLOSING_BRACE, Literal: ")"}
	case ch == '-' && hasNext && isDigit(next):
		tok = token.Token{Type: token.NUMBER, Literal: l.readAtom(ch)}
	case isDigit(ch):
		tok = token.Token{Type: token.NUMBER, Literal: l.readAtom(ch)}
	default:
		tok = token.Token{Type: token.IDENT, Literal: l.readAtom(ch)}
	}

	return tok, start.To(l.src.PreviousPos()), true
}

// discardWhile skips runes matching predicate.
func (l *Lexer) discardWhile(predicate func(rune) bool) {
	for {
		ch, ok := l.src.Peek()
		if !ok || !predicate(ch) {
			return
		}
		l.src.Next()
	}
}

// readAtom reads the rest of an identifier or number starting with first.
func (l *Lexer) readAtom(first rune) string {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		ch, ok := l.src.Peek()
		if !ok || !isAtomChar(ch) {
			return sb.String()
		}
		l.src.Next()
		sb.WriteRune(ch)
	}
}

func isAtomChar(ch rune) bool {
	return ch != '(' && ch != ')' && !unicode.IsSpace(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
