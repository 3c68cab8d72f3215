package eval

import (
	"math/big"
	"strings"

	"github.com/leapstack-labs/keikaku/pkg/parser"
	"github.com/leapstack-labs/keikaku/pkg/token"
)

// Object is a runtime value: Int, *Lambda, Nil or *PrimitiveOp.
type Object interface {
	String() string
	TypeName() string
	objectNode()
}

// Int is an integer in signed 128-bit range. The underlying big.Int is
// shared and must never be mutated.
type Int struct {
	Value *big.Int
}

// NewInt returns an Int holding v.
func NewInt(v int64) Int {
	return Int{Value: big.NewInt(v)}
}

// Nil is the value of `()` and of every binding form.
type Nil struct{}

// Lambda is a user function: ordered parameter names and body expressions.
// It captures no environment.
type Lambda struct {
	Params []string
	Body   []parser.Expr
}

// Arg is an evaluated argument together with the span it came from.
type Arg struct {
	Value Object
	Span  token.Span
}

// Primitive implements a built-in operator. call is the span of the whole
// call expression.
type Primitive func(call token.Span, args []Arg) (Object, error)

// PrimitiveOp is a reference to a fixed built-in operator.
type PrimitiveOp struct {
	Name string
	Doc  string // one-line usage summary
	Fn   Primitive
}

func (Int) objectNode()          {}
func (Nil) objectNode()          {}
func (*Lambda) objectNode()      {}
func (*PrimitiveOp) objectNode() {}

func (i Int) String() string { return i.Value.String() }
func (Nil) String() string   { return "()" }

func (l *Lambda) String() string {
	return "#lambda(" + strings.Join(l.Params, " ") + ")#"
}

func (p *PrimitiveOp) String() string {
	return "#primop:" + p.Name + "#"
}

func (Int) TypeName() string          { return "int" }
func (Nil) TypeName() string          { return "nil" }
func (*Lambda) TypeName() string      { return "lambda" }
func (*PrimitiveOp) TypeName() string { return "primop" }

// IsNil reports whether o is the Nil value.
func IsNil(o Object) bool {
	_, ok := o.(Nil)
	return ok
}
