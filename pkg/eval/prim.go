package eval

import (
	"math/big"

	"github.com/leapstack-labs/keikaku/pkg/num"
	"github.com/leapstack-labs/keikaku/pkg/token"
)

// primitives are bound in every root environment.
var primitives = []*PrimitiveOp{
	{Name: "+", Doc: "(+ a b ...) sums its arguments; (+) is 0", Fn: Add},
	{Name: "-", Doc: "(- a) negates a; (- a b ...) subtracts the sum of b ... from a", Fn: Sub},
	{Name: "*", Doc: "(* a b ...) multiplies its arguments; (*) is 1", Fn: Mul},
	{Name: "/", Doc: "(/ a b ...) divides a by the sum of b ..., truncating toward zero", Fn: Div},
}

// Primitives returns the names of the built-in operators.
func Primitives() []string {
	names := make([]string, 0, len(primitives))
	for _, p := range primitives {
		names = append(names, p.Name)
	}
	return names
}

// Add returns the sum of its arguments; 0 with none.
func Add(call token.Span, args []Arg) (Object, error) {
	acc := new(big.Int)
	for _, arg := range args {
		n, ok := arg.Value.(Int)
		if !ok {
			return nil, invalidType(arg)
		}
		acc.Add(acc, n.Value)
	}
	return checked(call, acc)
}

// Mul returns the product of its arguments; 1 with none.
func Mul(call token.Span, args []Arg) (Object, error) {
	acc := big.NewInt(1)
	for _, arg := range args {
		n, ok := arg.Value.(Int)
		if !ok {
			return nil, invalidType(arg)
		}
		acc.Mul(acc, n.Value)
	}
	return checked(call, acc)
}

// Sub negates a single argument, or subtracts the sum of the remaining
// arguments from the first. A non-integer first argument counts as 0 when
// there is more than one argument.
func Sub(call token.Span, args []Arg) (Object, error) {
	switch len(args) {
	case 0:
		return nil, errorf(WrongArity, call, "expected at least 1 argument, got 0")
	case 1:
		n, ok := args[0].Value.(Int)
		if !ok {
			return nil, invalidType(args[0])
		}
		return checked(call, new(big.Int).Neg(n.Value))
	}

	rest := new(big.Int)
	for _, arg := range args[1:] {
		n, ok := arg.Value.(Int)
		if !ok {
			return nil, invalidType(arg)
		}
		rest.Add(rest, n.Value)
	}

	acc := new(big.Int)
	if n, ok := args[0].Value.(Int); ok {
		acc.Set(n.Value)
	}
	return checked(call, acc.Sub(acc, rest))
}

// Div divides the first argument by the sum of the remaining arguments,
// truncating toward zero. Any zero divisor, or divisors summing to zero,
// is a DivisionByZero.
func Div(call token.Span, args []Arg) (Object, error) {
	if len(args) == 0 {
		return nil, errorf(WrongArity, call, "expected at least 2 arguments, got 0")
	}
	numerator, ok := args[0].Value.(Int)
	if !ok {
		return nil, invalidType(args[0])
	}
	if len(args) == 1 {
		return nil, errorf(WrongArity, call, "expected at least 2 arguments, got 1")
	}

	denom := new(big.Int)
	for _, arg := range args[1:] {
		n, ok := arg.Value.(Int)
		if ok && n.Value.Sign() == 0 {
			return nil, newError(DivisionByZero, arg.Span)
		}
		if !ok {
			return nil, invalidType(arg)
		}
		denom.Add(denom, n.Value)
	}
	if denom.Sign() == 0 {
		return nil, newError(DivisionByZero, call)
	}

	return checked(call, new(big.Int).Quo(numerator.Value, denom))
}

// checked wraps v as an Int, or reports Overflow at the call span when v is
// outside the 128-bit range. Intermediate values are unbounded; only the
// result is checked.
func checked(call token.Span, v *big.Int) (Object, error) {
	if !num.Fits(v) {
		return nil, newError(Overflow, call)
	}
	return Int{Value: v}, nil
}
