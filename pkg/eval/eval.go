// Package eval evaluates parsed keikaku expressions.
//
// An Evaluator owns a root environment seeded with the primitive operators
// `+ - * /`. Definitions made with `def` persist in that environment across
// calls, so one Evaluator is one interpreter session:
//
//	ev := eval.New(nil)
//	exprs, _ := parser.Parse("repl", "(def x 5) (+ x 1)")
//	results, err := ev.EvalAll(exprs) // results[1] is 6
//
// Lambdas capture no environment. Each application runs in a fresh child of
// the session root, so a body sees its parameters and the globals only.
package eval

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/keikaku/pkg/parser"
	"github.com/leapstack-labs/keikaku/pkg/token"
)

// DefaultMaxDepth is the default limit on nested evaluation.
const DefaultMaxDepth = 10000

// Evaluator evaluates expressions against a session environment.
// It is not safe for concurrent use.
type Evaluator struct {
	env      *Env
	logger   *slog.Logger
	maxDepth int
	depth    int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxDepth limits evaluation nesting. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(ev *Evaluator) {
		if n > 0 {
			ev.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for debug tracing of bindings and calls.
func WithLogger(logger *slog.Logger) Option {
	return func(ev *Evaluator) {
		if logger != nil {
			ev.logger = logger
		}
	}
}

// New creates an Evaluator over env. A nil env gets a fresh root environment.
func New(env *Env, opts ...Option) *Evaluator {
	if env == nil {
		env = NewEnv()
	}
	ev := &Evaluator{
		env:      env,
		logger:   slog.New(slog.DiscardHandler),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Env returns the session environment.
func (ev *Evaluator) Env() *Env {
	return ev.env
}

// MaxDepth returns the configured nesting limit.
func (ev *Evaluator) MaxDepth() int {
	return ev.maxDepth
}

// Eval evaluates a single expression in the session environment.
func (ev *Evaluator) Eval(expr parser.Expr) (Object, error) {
	return ev.eval(expr, ev.env)
}

// EvalAll evaluates a program in order and returns one result per
// expression. It stops at the first error; bindings made before the failing
// expression are kept.
func (ev *Evaluator) EvalAll(exprs []parser.Expr) ([]Object, error) {
	results := make([]Object, 0, len(exprs))
	for _, expr := range exprs {
		obj, err := ev.Eval(expr)
		if err != nil {
			return results, err
		}
		results = append(results, obj)
	}
	return results, nil
}

func (ev *Evaluator) eval(expr parser.Expr, env *Env) (Object, error) {
	if ev.depth >= ev.maxDepth {
		return nil, errorf(RecursionTooDeep, expr.GetSpan(), "limit is %d", ev.maxDepth)
	}
	ev.depth++
	defer func() { ev.depth-- }()

	switch e := expr.(type) {
	case *parser.Int:
		return Int{Value: e.Value}, nil
	case *parser.Symbol:
		obj, ok := env.Lookup(e.Name)
		if !ok {
			return nil, &Error{Kind: UnknownDef, Span: e.Span, Symbol: e.Name}
		}
		return obj, nil
	case *parser.Def:
		return nil, newError(EmptyDef, e.Span)
	case *parser.Lambda:
		return nil, errorf(IllegalForm, e.Span, "lambda outside of a lambda form")
	case *parser.List:
		return ev.evalList(e, env)
	default:
		return nil, errorf(IllegalForm, expr.GetSpan(), "unexpected %T", expr)
	}
}

func (ev *Evaluator) evalList(list *parser.List, env *Env) (Object, error) {
	if list.Len() == 0 {
		return Nil{}, nil
	}

	switch head := list.Items[0].(type) {
	case *parser.Def:
		return ev.evalDef(list, env)
	case *parser.Lambda:
		return evalLambda(list)
	case *parser.Symbol:
		return ev.evalCall(head, list, env)
	default:
		return nil, errorf(IllegalForm, head.GetSpan(), "expression in call position is not a symbol")
	}
}

// evalDef handles (def name value).
func (ev *Evaluator) evalDef(list *parser.List, env *Env) (Object, error) {
	if list.Len() == 1 {
		return nil, newError(EmptyDef, list.Items[0].GetSpan())
	}
	name, ok := list.Items[1].(*parser.Symbol)
	if !ok || list.Len() != 3 {
		return nil, errorf(IllegalForm, list.Span, "malformed def, expected (def name value)")
	}

	value, err := ev.eval(list.Items[2], env)
	if err != nil {
		return nil, err
	}
	ev.logger.Debug("defined symbol", "name", name.Name, "value", value.String())
	return env.Define(name.Name, value), nil
}

// evalLambda handles (lambda (params...) body...).
func evalLambda(list *parser.List) (Object, error) {
	if list.Len() < 2 {
		return nil, errorf(IllegalForm, list.Span, "lambda expects a parameter list")
	}
	paramList, ok := list.Items[1].(*parser.List)
	if !ok {
		return nil, errorf(IllegalForm, list.Items[1].GetSpan(), "lambda parameters must be a list")
	}

	params := make([]string, 0, paramList.Len())
	seen := make(map[string]struct{}, paramList.Len())
	for _, item := range paramList.Items {
		sym, ok := item.(*parser.Symbol)
		if !ok {
			return nil, errorf(IllegalForm, item.GetSpan(), "parameter %s is not a symbol", item)
		}
		if _, dup := seen[sym.Name]; dup {
			return nil, errorf(IllegalForm, sym.Span, "duplicate parameter %s", sym.Name)
		}
		seen[sym.Name] = struct{}{}
		params = append(params, sym.Name)
	}

	return &Lambda{Params: params, Body: list.Items[2:]}, nil
}

// evalCall handles (symbol args...).
func (ev *Evaluator) evalCall(head *parser.Symbol, list *parser.List, env *Env) (Object, error) {
	fn, ok := env.Lookup(head.Name)
	if !ok {
		return nil, &Error{Kind: UnknownDef, Span: head.Span, Symbol: head.Name}
	}

	switch f := fn.(type) {
	case *PrimitiveOp:
		args, err := ev.evalArgs(list.Items[1:], env)
		if err != nil {
			return nil, err
		}
		return f.Fn(list.Span, args)
	case *Lambda:
		args, err := ev.evalArgs(list.Items[1:], env)
		if err != nil {
			return nil, err
		}
		return ev.apply(f, list.Span, args)
	default:
		return nil, &Error{Kind: NotAFunction, Span: head.Span, Symbol: head.Name}
	}
}

func (ev *Evaluator) evalArgs(exprs []parser.Expr, env *Env) ([]Arg, error) {
	args := make([]Arg, 0, len(exprs))
	for _, expr := range exprs {
		obj, err := ev.eval(expr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, Arg{Value: obj, Span: expr.GetSpan()})
	}
	return args, nil
}

// apply runs fn in a child of the session root. The result is the value of
// the last body expression, or Nil for an empty body.
func (ev *Evaluator) apply(fn *Lambda, call token.Span, args []Arg) (Object, error) {
	if len(args) != len(fn.Params) {
		return nil, errorf(WrongArity, call, "expected %d %s, got %d",
			len(fn.Params), plural(len(fn.Params), "argument"), len(args))
	}

	scope := ev.env.Child()
	for i, param := range fn.Params {
		scope.Define(param, args[i].Value)
	}
	ev.logger.Debug("applying lambda", "params", fn.Params, "span", call.String())

	var result Object = Nil{}
	for _, expr := range fn.Body {
		obj, err := ev.eval(expr, scope)
		if err != nil {
			return nil, err
		}
		result = obj
	}
	return result, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return fmt.Sprintf("%ss", word)
}
