// Package diag renders span-carrying errors as source snippets with a caret
// line under the offending text.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/keikaku/pkg/token"
)

// Located is an error that points at a source span.
// Both *parser.ParseError and *eval.Error implement it.
type Located interface {
	error
	GetSpan() token.Span
	Label() string
}

// Format renders err against src. Errors without a span are returned as
// their plain message.
func Format(src, name string, err error) string {
	if err == nil {
		return ""
	}
	var loc Located
	if !errors.As(err, &loc) {
		return err.Error()
	}
	span := loc.GetSpan()
	msg := strings.TrimSuffix(loc.Error(), " at "+span.String())
	return Snippet(src, name, span, loc.Label(), msg)
}

// Snippet builds a header line, the offending line with one line of context
// on each side, and a caret marker under the span. A span that crosses lines
// is marked from its start to the end of the first line. Out-of-range
// positions are clamped to the source.
func Snippet(src, name string, span token.Span, label, msg string) string {
	lines := strings.Split(src, "\n")
	line := clamp(span.From.Line, 0, len(lines)-1)
	text := []rune(lines[line])
	from := clamp(span.From.Column, 0, len(text))

	to := from
	if span.To.Line == span.From.Line && span.To.Column > from {
		to = span.To.Column
	} else if span.To.Line > span.From.Line {
		to = len(text) - 1
	}
	to = clamp(to, from, max(len(text)-1, from))

	var b strings.Builder
	pos := token.Position{Line: line, Column: from}
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %s: %s\n\n", label, name, pos, msg)
	} else {
		fmt.Fprintf(&b, "%s at %s: %s\n\n", label, pos, msg)
	}

	if line > 0 {
		fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	fmt.Fprintf(&b, "     | %s%s\n", padding(text[:from]), strings.Repeat("^", to-from+1))
	if line+1 < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+2, lines[line+1])
	}
	return b.String()
}

// padding mirrors prefix with spaces, keeping tabs so the caret lines up.
func padding(prefix []rune) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
