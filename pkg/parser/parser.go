// Package parser reads keikaku source into span-annotated s-expressions.
//
// # Usage
//
//	exprs, err := parser.Parse("main.kk", "(def x 5) (+ x 1)")
//	if err != nil {
//	    // err is a *parser.ParseError
//	}
//
// # Grammar
//
// The parser is recursive descent with one token of lookahead:
//
//	program → expr*
//	expr    → INTEGER | IDENT | '(' expr* ')'
//
// The identifiers `def` and `lambda` become *Def and *Lambda nodes. The first
// error aborts the parse; there is no recovery.
package parser

import (
	"fmt"
	"io"

	"github.com/leapstack-labs/keikaku/pkg/num"
	"github.com/leapstack-labs/keikaku/pkg/token"
)

// Keywords promoted to dedicated nodes.
const (
	KeywordDef    = "def"
	KeywordLambda = "lambda"
)

// DefaultMaxNesting is the deepest list nesting accepted by default.
const DefaultMaxNesting = 10000

// Parser parses a token stream into expressions.
type Parser struct {
	lexer *Lexer
	token token.Token // current token
	span  token.Span  // span of the current token
	more  bool        // false once the lexer is exhausted

	depth      int // lists currently open
	maxNesting int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxNesting sets the nesting limit. Values below 1 are ignored.
func WithMaxNesting(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxNesting = n
		}
	}
}

// NewParser creates a new parser reading from lexer.
func NewParser(lexer *Lexer, opts ...Option) *Parser {
	p := &Parser{lexer: lexer, maxNesting: DefaultMaxNesting}
	for _, opt := range opts {
		opt(p)
	}
	p.nextToken()
	return p
}

// Parse parses a whole program held in memory.
func Parse(name, input string, opts ...Option) ([]Expr, error) {
	return NewParser(NewStringLexer(name, input), opts...).ParseProgram()
}

// ParseReader reads r to the end and parses it. The reader is fully consumed
// before parsing starts.
func ParseReader(name string, r io.Reader, opts ...Option) ([]Expr, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return Parse(name, string(data), opts...)
}

// ParseProgram parses expressions until the input is exhausted. The program
// is an implicit sequence; it is not wrapped in an outer list.
func (p *Parser) ParseProgram() ([]Expr, error) {
	exprs := []Expr{}
	for p.more {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	if err := p.lexer.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return exprs, nil
}

// ParseExpr parses exactly one expression.
func (p *Parser) ParseExpr() (Expr, error) {
	return p.parseExpr()
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token, p.span, p.more = p.lexer.Next()
}

func (p *Parser) parseExpr() (Expr, error) {
	if !p.more {
		return nil, &ParseError{Kind: UnexpectedEndOfInput, Span: p.span}
	}

	tok, span := p.token, p.span
	p.nextToken()

	switch tok.Type {
	case token.OPENING_BRACE:
		return p.parseList(span)
	case token.CLOSING_BRACE:
		return nil, &ParseError{Kind: MismatchedClosingBrace, Span: span}
	case token.NUMBER:
		return parseInt(tok.Literal, span)
	default:
		return parseIdent(tok.Literal, span), nil
	}
}

// parseList parses list items after the opening brace at open.
func (p *Parser) parseList(open token.Span) (Expr, error) {
	if p.depth >= p.maxNesting {
		return nil, &ParseError{
			Kind:   NestingTooDeep,
			Span:   open,
			Detail: fmt.Sprintf("limit is %d", p.maxNesting),
		}
	}
	p.depth++
	defer func() { p.depth-- }()

	list := &List{Items: []Expr{}}
	for p.more && p.token.Type != token.CLOSING_BRACE {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}

	if !p.more {
		return nil, &ParseError{Kind: UnexpectedEndOfInput, Span: open}
	}

	// consume the closing brace
	list.Span = open.Cover(p.span)
	p.nextToken()
	return list, nil
}

func parseIdent(name string, span token.Span) Expr {
	switch name {
	case KeywordDef:
		return &Def{NodeInfo{Span: span}}
	case KeywordLambda:
		return &Lambda{NodeInfo{Span: span}}
	default:
		return &Symbol{NodeInfo: NodeInfo{Span: span}, Name: name}
	}
}

func parseInt(text string, span token.Span) (Expr, error) {
	v, err := num.Parse(text)
	if err != nil {
		return nil, &ParseError{
			Kind:   InvalidNumberFormat,
			Span:   span,
			Detail: fmt.Sprintf("%q: %v", text, err),
			Cause:  err,
		}
	}
	return &Int{NodeInfo: NodeInfo{Span: span}, Value: v}, nil
}
