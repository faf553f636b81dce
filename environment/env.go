package env

// Env is one scope in the chain. Scopes are shared by pointer: blocks and
// calls push children, and a function value keeps its defining scope alive
// for as long as the function itself is reachable.
type Env struct {
	outer *Env

	values map[string]any
}

func New() *Env {
	return &Env{values: make(map[string]any), outer: nil}
}

func NewChild(outer *Env) *Env {
	return &Env{values: make(map[string]any), outer: outer}
}

func (e *Env) Outer() *Env {
	return e.outer
}

// Define binds name in this scope only, replacing any previous binding here.
func (e *Env) Define(name string, value any) {
	e.values[name] = value
}

// Assign updates the nearest existing binding of name and reports whether
// one was found. It never creates a binding.
func (e *Env) Assign(name string, value any) bool {
	for scope := e; scope != nil; scope = scope.outer {
		if _, ok := scope.values[name]; ok {
			scope.values[name] = value
			return true
		}
	}

	return false
}

func (e *Env) Get(name string) (any, bool) {
	for scope := e; scope != nil; scope = scope.outer {
		if val, ok := scope.values[name]; ok {
			return val, true
		}
	}

	return nil, false
}
