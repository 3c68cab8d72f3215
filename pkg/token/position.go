package token

import "fmt"

// Position represents a location in the source code.
type Position struct {
	Line   int // 0-based line number
	Column int // 0-based column number
}

// Advance returns the position after consuming ch.
func (p Position) Advance(ch rune) Position {
	if ch == '\n' {
		return Position{Line: p.Line + 1, Column: 0}
	}
	return Position{Line: p.Line, Column: p.Column + 1}
}

// To returns the span from p to other.
func (p Position) To(other Position) Span {
	return Span{From: p, To: other}
}

// String renders the position as line:column with a 1-based line.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column)
}

// Span represents a range in source code.
// Spans are used for diagnostics only and never affect evaluation.
type Span struct {
	From Position
	To   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.From, s.To)
}

// Cover returns the smallest span that contains both s and other.
func (s Span) Cover(other Span) Span {
	out := s
	if other.From.Before(out.From) {
		out.From = other.From
	}
	if out.To.Before(other.To) {
		out.To = other.To
	}
	return out
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}
