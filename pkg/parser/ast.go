package parser

import (
	"math/big"
	"strings"

	"github.com/leapstack-labs/keikaku/pkg/token"
)

// Expr represents a parsed s-expression. The set of node types is closed:
// *Def, *Lambda, *Int, *Symbol and *List.
type Expr interface {
	GetSpan() token.Span
	String() string
	exprNode()
}

// NodeInfo provides common fields for all AST nodes.
type NodeInfo struct {
	Span token.Span
}

// GetSpan returns the node's source span.
func (n *NodeInfo) GetSpan() token.Span {
	return n.Span
}

// Def is the `def` keyword.
type Def struct {
	NodeInfo
}

// Lambda is the `lambda` keyword.
type Lambda struct {
	NodeInfo
}

// Int is an integer literal in signed 128-bit range.
type Int struct {
	NodeInfo
	Value *big.Int
}

// Symbol is any other identifier.
type Symbol struct {
	NodeInfo
	Name string
}

// List is a parenthesized sequence. `()` is an empty List; there is no
// separate nil node.
type List struct {
	NodeInfo
	Items []Expr
}

func (*Def) exprNode()    {}
func (*Lambda) exprNode() {}
func (*Int) exprNode()    {}
func (*Symbol) exprNode() {}
func (*List) exprNode()   {}

func (*Def) String() string    { return "def" }
func (*Lambda) String() string { return "lambda" }
func (n *Int) String() string  { return n.Value.String() }
func (n *Symbol) String() string {
	return n.Name
}

func (n *List) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, item := range n.Items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(item.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Len returns the number of items in the list.
func (n *List) Len() int {
	return len(n.Items)
}

// ---------- Structured dump ----------

// Node is a serializable view of an Expr used for JSON and YAML output.
type Node struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Span  string `json:"span" yaml:"span"`
	Items []Node `json:"items,omitempty" yaml:"items,omitempty"`
}

// Dump converts a parsed program into its serializable form.
func Dump(exprs []Expr) []Node {
	out := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, DumpExpr(e))
	}
	return out
}

// DumpExpr converts a single expression into its serializable form.
func DumpExpr(e Expr) Node {
	n := Node{Span: e.GetSpan().String()}
	switch e := e.(type) {
	case *Def:
		n.Kind = "def"
	case *Lambda:
		n.Kind = "lambda"
	case *Int:
		n.Kind = "int"
		n.Value = e.Value.String()
	case *Symbol:
		n.Kind = "symbol"
		n.Value = e.Name
	case *List:
		n.Kind = "list"
		for _, item := range e.Items {
			n.Items = append(n.Items, DumpExpr(item))
		}
	}
	return n
}

// Depth returns the list nesting depth of e; atoms have depth 0.
func Depth(e Expr) int {
	l, ok := e.(*List)
	if !ok {
		return 0
	}
	deepest := 0
	for _, item := range l.Items {
		if d := Depth(item); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
