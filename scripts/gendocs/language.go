package main

import (
	"fmt"

	"github.com/leapstack-labs/keikaku/pkg/eval"
	"github.com/leapstack-labs/keikaku/pkg/parser"
)

// renderLanguage documents the forms, built-in operators and error kinds.
// Operators are read from a fresh environment so the page lists exactly
// what programs can call.
func renderLanguage() []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("Language Reference", "Syntax, built-in operators and errors of keikaku")
	w.GeneratedMarker()

	w.Header(1, "Language Reference")
	w.Paragraph("A program is a sequence of expressions. An expression is a 128-bit signed integer, a symbol, or a parenthesized list. Evaluation stops at the first error.")
	w.CodeBlock("lisp", `(def square (lambda (n) (* n n)))
(square 12)        ; 144
(- 10 1 2)         ; 7
(/ 120 4 1 1)      ; 20`)

	w.Header(2, "Special Forms")
	w.Table([]string{"Form", "Meaning"}, [][]string{
		{InlineCode("(def name value)"), "Binds name in the current scope and yields ()"},
		{InlineCode("(lambda (params...) body...)"), "Creates a function; calls see their parameters and global definitions"},
		{InlineCode("()"), "The empty list, printed as ()"},
	})

	w.Header(2, "Operators")
	env := eval.NewEnv()
	var rows [][]string
	for _, name := range eval.Primitives() {
		obj, _ := env.Lookup(name)
		doc := ""
		if op, ok := obj.(*eval.PrimitiveOp); ok {
			doc = op.Doc
		}
		rows = append(rows, []string{InlineCode(name), doc})
	}
	w.Table([]string{"Name", "Usage"}, rows)

	w.Header(2, "Errors")
	w.Paragraph("Every error points at a source span and is printed with the offending line.")
	rows = rows[:0]
	for _, k := range parser.ParseErrorKinds() {
		rows = append(rows, []string{InlineCode(k.String()), "parse", k.Sentinel().Error()})
	}
	for _, k := range eval.ErrorKinds() {
		rows = append(rows, []string{InlineCode(k.String()), "evaluation", k.Sentinel().Error()})
	}
	w.Table([]string{"Kind", "Stage", "Message"}, rows)

	w.Paragraph(fmt.Sprintf("Lists may nest %d deep by default; evaluation depth is limited by `max_depth` (default %d).",
		parser.DefaultMaxNesting, eval.DefaultMaxDepth))
	return w.Bytes()
}
