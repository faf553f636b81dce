package eval

import (
	"fmt"

	env "github.com/havrydotdev/loxwalk/environment"
	"github.com/havrydotdev/loxwalk/token"
)

type Callable interface {
	Arity() int
	Call(e *Evaluator, args []any) (any, error)
	fmt.Stringer
}

// Native describes a host function: a fixed arity and a transform from
// the argument list to a value.
type Native struct {
	Arity int
	Fn    func(args []any) any
}

func (n Native) fun(name string) *NativeFun {
	return &NativeFun{name: name, arity: n.Arity, fn: n.Fn}
}

type NativeFun struct {
	name  string
	arity int
	fn    func(args []any) any
}

type Function struct {
	name    token.Token
	params  []token.Token
	body    []StmtEvaluator
	closure *env.Env
}

func (c *NativeFun) Arity() int {
	return c.arity
}

func (c *NativeFun) Call(e *Evaluator, args []any) (any, error) {
	return c.fn(args), nil
}

func (c *NativeFun) String() string {
	return "<native fn>"
}

func (f *Function) Arity() int {
	return len(f.params)
}

// Call binds the arguments in a fresh scope whose parent is the scope the
// function was declared in, not the caller's.
func (f *Function) Call(e *Evaluator, args []any) (any, error) {
	environment := env.NewChild(f.closure)
	for i, param := range f.params {
		environment.Define(param.Lexeme, args[i])
	}

	res, err := e.executeBlock(f.body, environment)
	if err != nil {
		return nil, err
	}

	if val, ok := res.Returned(); ok {
		return val, nil
	}

	return nil, nil
}

func (f *Function) String() string {
	return "<fn " + f.name.Lexeme + ">"
}
