package eval

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/keikaku/pkg/token"
)

// Sentinel errors for errors.Is checks against an *Error.
var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrEmptyDef         = errors.New("empty def")
	ErrNotAFunction     = errors.New("not a function")
	ErrInvalidType      = errors.New("unexpected argument type")
	ErrUnknownDef       = errors.New("undefined symbol")
	ErrWrongArity       = errors.New("wrong arity")
	ErrIllegalForm      = errors.New("illegal form")
	ErrRecursionTooDeep = errors.New("recursion too deep")
	ErrOverflow         = errors.New("integer overflow")
)

// ErrorKind classifies an evaluation error.
type ErrorKind int

// Evaluation error kinds.
const (
	DivisionByZero ErrorKind = iota + 1
	EmptyDef
	NotAFunction
	InvalidType
	UnknownDef
	WrongArity
	IllegalForm
	RecursionTooDeep
	Overflow
)

var kindNames = map[ErrorKind]string{
	DivisionByZero:   "DivisionByZero",
	EmptyDef:         "EmptyDef",
	NotAFunction:     "NotAFunction",
	InvalidType:      "InvalidType",
	UnknownDef:       "UnknownDef",
	WrongArity:       "WrongArity",
	IllegalForm:      "IllegalForm",
	RecursionTooDeep: "RecursionTooDeep",
	Overflow:         "Overflow",
}

var kindSentinels = map[ErrorKind]error{
	DivisionByZero:   ErrDivisionByZero,
	EmptyDef:         ErrEmptyDef,
	NotAFunction:     ErrNotAFunction,
	InvalidType:      ErrInvalidType,
	UnknownDef:       ErrUnknownDef,
	WrongArity:       ErrWrongArity,
	IllegalForm:      ErrIllegalForm,
	RecursionTooDeep: ErrRecursionTooDeep,
	Overflow:         ErrOverflow,
}

// ErrorKinds returns every evaluation error kind in declaration order.
func ErrorKinds() []ErrorKind {
	kinds := make([]ErrorKind, 0, len(kindNames))
	for k := DivisionByZero; k <= Overflow; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Sentinel returns the error matched by errors.Is for this kind.
func (k ErrorKind) Sentinel() error {
	return kindSentinels[k]
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "EvalError"
}

// Error is an evaluation failure located at a source span.
type Error struct {
	Kind   ErrorKind
	Span   token.Span
	Symbol string // set for NotAFunction and UnknownDef
	Detail string
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case NotAFunction:
		msg = fmt.Sprintf("`%s` is not a function", e.Symbol)
	case UnknownDef:
		msg = fmt.Sprintf("undefined symbol `%s`", e.Symbol)
	default:
		msg = e.Unwrap().Error()
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("%s at %s", msg, e.Span)
}

// Unwrap returns the kind sentinel.
func (e *Error) Unwrap() error {
	if s := e.Kind.Sentinel(); s != nil {
		return s
	}
	return errors.New("evaluation error")
}

// GetSpan returns the span the error points at.
func (e *Error) GetSpan() token.Span {
	return e.Span
}

// Label returns the error kind name used in diagnostics.
func (e *Error) Label() string {
	return e.Kind.String()
}

func newError(kind ErrorKind, span token.Span) *Error {
	return &Error{Kind: kind, Span: span}
}

func errorf(kind ErrorKind, span token.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: span, Detail: fmt.Sprintf(format, args...)}
}

func invalidType(arg Arg) *Error {
	return errorf(InvalidType, arg.Span, "expected int, got %s", arg.Value.TypeName())
}
