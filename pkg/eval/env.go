package eval

import "sort"

// Env is one scope in a chain of scopes. The root scope holds the session's
// global bindings; child scopes hold lambda parameters.
type Env struct {
	vars   map[string]Object
	parent *Env
}

// NewEnv creates a root scope with the primitive operators bound.
func NewEnv() *Env {
	env := newScope(nil)
	for _, p := range primitives {
		env.vars[p.Name] = p
	}
	return env
}

func newScope(parent *Env) *Env {
	return &Env{
		vars:   make(map[string]Object),
		parent: parent,
	}
}

// Child creates a new child scope whose parent is this environment.
func (e *Env) Child() *Env {
	return newScope(e)
}

// Parent returns the enclosing scope, or nil for the root.
func (e *Env) Parent() *Env {
	return e.parent
}

// Lookup finds name in this scope or the nearest enclosing one.
func (e *Env) Lookup(name string) (Object, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds name in this scope, overwriting any previous binding here.
// It returns Nil.
func (e *Env) Define(name string, value Object) Object {
	e.vars[name] = value
	return Nil{}
}

// Names returns every name visible from this scope, sorted.
func (e *Env) Names() []string {
	seen := make(map[string]struct{})
	for scope := e; scope != nil; scope = scope.parent {
		for name := range scope.vars {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
