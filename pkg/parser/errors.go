package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/keikaku/pkg/token"
)

// Sentinel errors for errors.Is checks against a *ParseError.
var (
	ErrMismatchedClosingBrace = errors.New("mismatched closing brace")
	ErrUnexpectedEndOfInput   = errors.New("unexpected end of input")
	ErrInvalidNumberFormat    = errors.New("invalid number format")
	ErrNestingTooDeep         = errors.New("nesting too deep")
)

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

// Parse error kinds.
const (
	MismatchedClosingBrace ParseErrorKind = iota + 1
	UnexpectedEndOfInput
	InvalidNumberFormat
	NestingTooDeep
)

// ParseErrorKinds returns every parse error kind in declaration order.
func ParseErrorKinds() []ParseErrorKind {
	return []ParseErrorKind{MismatchedClosingBrace, UnexpectedEndOfInput, InvalidNumberFormat, NestingTooDeep}
}

// Sentinel returns the error matched by errors.Is for this kind.
func (k ParseErrorKind) Sentinel() error {
	switch k {
	case MismatchedClosingBrace:
		return ErrMismatchedClosingBrace
	case UnexpectedEndOfInput:
		return ErrUnexpectedEndOfInput
	case InvalidNumberFormat:
		return ErrInvalidNumberFormat
	case NestingTooDeep:
		return ErrNestingTooDeep
	default:
		return nil
	}
}

func (k ParseErrorKind) String() string {
	switch k {
	case MismatchedClosingBrace:
		return "MismatchedClosingBrace"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case InvalidNumberFormat:
		return "InvalidNumberFormat"
	case NestingTooDeep:
		return "NestingTooDeep"
	default:
		return "ParseError"
	}
}

// ParseError represents a parsing error with position information.
type ParseError struct {
	Kind   ParseErrorKind
	Span   token.Span
	Detail string // set for InvalidNumberFormat and NestingTooDeep
	Cause  error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case InvalidNumberFormat:
		return fmt.Sprintf("invalid number format: %s at %s", e.Detail, e.Span)
	case NestingTooDeep:
		return fmt.Sprintf("nesting too deep: %s at %s", e.Detail, e.Span)
	case UnexpectedEndOfInput:
		return fmt.Sprintf("unexpected end of input (opened at %s)", e.Span.From)
	default:
		return fmt.Sprintf("%s at %s", e.Kind.Sentinel(), e.Span)
	}
}

// Unwrap exposes the kind sentinel and, for number errors, the cause.
func (e *ParseError) Unwrap() []error {
	errs := []error{e.Kind.Sentinel()}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// GetSpan returns the span the error points at.
func (e *ParseError) GetSpan() token.Span {
	return e.Span
}

// Label returns the error kind name used in diagnostics.
func (e *ParseError) Label() string {
	return e.Kind.String()
}
