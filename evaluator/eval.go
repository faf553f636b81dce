package eval

import (
	"errors"
	"fmt"
	"io"
	"os"

	env "github.com/havrydotdev/loxwalk/environment"
	interp "github.com/havrydotdev/loxwalk/interpreter"
	"github.com/havrydotdev/loxwalk/loxerr"
	"github.com/havrydotdev/loxwalk/token"
	"github.com/havrydotdev/loxwalk/tracer"
)

const defaultMaxCallDepth = 10000

var (
	ErrNilValue = errors.New("internal error: exp/stmt is nil, cannot invoke")
)

// Completion is what running a statement produces: either it completed
// normally or a return statement fired and carries a value up to the
// nearest call.
type Completion struct {
	returned bool
	value    any
}

var completed = Completion{}

func (c Completion) Returned() (any, bool) {
	return c.value, c.returned
}

type ExpEvaluator interface {
	Eval() (any, error)
}

type StmtEvaluator interface {
	Eval() (Completion, error)
}

type expEvalFunc func() (any, error)
type stmtEvalFunc func() (Completion, error)

func (fn expEvalFunc) Eval() (any, error) {
	return fn()
}

func (fn stmtEvalFunc) Eval() (Completion, error) {
	return fn()
}

type Option func(*Evaluator)

// WithOutput redirects print statements. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) {
		e.out = w
	}
}

// WithNatives adds host functions to the global scope next to clock.
func WithNatives(natives map[string]Native) Option {
	return func(e *Evaluator) {
		for name, n := range natives {
			e.globals.Define(name, n.fun(name))
		}
	}
}

// WithMaxCallDepth bounds nested calls; exceeding it is a runtime error
// instead of exhausting the Go stack.
func WithMaxCallDepth(depth int) Option {
	return func(e *Evaluator) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

type Evaluator struct {
	globals     *env.Env
	environment *env.Env

	out      io.Writer
	depth    int
	maxDepth int
}

var _ interp.Alg[ExpEvaluator, StmtEvaluator] = (*Evaluator)(nil)

func New(opts ...Option) *Evaluator {
	globals := newGlobals()

	e := &Evaluator{
		environment: globals,
		globals:     globals,
		out:         os.Stdout,
		maxDepth:    defaultMaxCallDepth,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Evaluator) Globals() *env.Env {
	return e.globals
}

// Execute runs one top-level statement.
func (e *Evaluator) Execute(stmt StmtEvaluator) error {
	_, err := stmt.Eval()
	return err
}

// Run executes statements in order and stops at the first runtime error.
func (e *Evaluator) Run(stmts []StmtEvaluator) error {
	for _, stmt := range stmts {
		if err := e.Execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (e *Evaluator) Print(keyword token.Token, expr ExpEvaluator) StmtEvaluator {
	return stmtEvalFunc(func() (Completion, error) {
		val, err := expr.Eval()
		if err != nil {
			return completed, err
		}

		if _, err := fmt.Fprintln(e.out, Stringify(val)); err != nil {
			return completed, fmt.Errorf("print on line %d: %w", keyword.Line, err)
		}

		return completed, nil
	})
}

func (e *Evaluator) Return(keyword token.Token, value ExpEvaluator) StmtEvaluator {
	return stmtEvalFunc(func() (Completion, error) {
		var val any
		if value != nil {
			var err error
			val, err = value.Eval()
			if err != nil {
				return completed, err
			}
		}

		return Completion{returned: true, value: val}, nil
	})
}

func (e *Evaluator) Function(name token.Token, params []token.Token, body []StmtEvaluator) StmtEvaluator {
	return stmtEvalFunc(func() (Completion, error) {
		e.environment.Define(name.Lexeme, &Function{name, params, body, e.environment})
		return completed, nil
	})
}

func (e *Evaluator) Call(callee ExpEvaluator, paren token.Token, args []ExpEvaluator) ExpEvaluator {
	return expEvalFunc(func() (any, error) {
		callee, err := callee.Eval()
		if err != nil {
			return nil, err
		}

		fun, ok := callee.(Callable)
		if !ok {
			return nil, loxerr.NewRuntime(paren, loxerr.ErrNotCallable, "can only call functions.")
		}

		arguments := make([]any, 0, len(args))
		for _, arg := range args {
			argValue, err := arg.Eval()
			if err != nil {
				return nil, err
			}

			arguments = append(arguments, argValue)
		}

		if len(arguments) != fun.Arity() {
			return nil, loxerr.NewRuntime(paren, loxerr.ErrArityMismatch,
				"expected %d arguments but got %d.", fun.Arity(), len(arguments))
		}

		if e.depth >= e.maxDepth {
			return nil, loxerr.NewRuntime(paren, loxerr.ErrStackOverflow, "stack overflow.")
		}

		e.depth++
		defer func() { e.depth-- }()

		tracer.Interpreter().Debugf("line %d: call %s with %d args, depth %d", paren.Line, fun, len(arguments), e.depth)

		return fun.Call(e, arguments)
	})
}

func (e *Evaluator) While(cond ExpEvaluator, body StmtEvaluator) StmtEvaluator {
	return stmtEvalFunc(func() (Completion, error) {
		for {
			c, err := cond.Eval()
			if err != nil {
				return completed, err
			}

			if !isTruthy(c) {
				break
			}

			res, err := body.Eval()
			if err != nil || res.returned {
				return res, err
			}
		}

		return completed, nil
	})
}

func (e *Evaluator) Logical(op token.Token, left, right ExpEvaluator) ExpEvaluator {
	return expEvalFunc(func() (any, error) {
		l, err := left.Eval()
		if err != nil {
			return nil, err
		}

		if op.Kind == token.Or {
			if isTruthy(l) {
				return l, nil
			}
		} else {
			if !isTruthy(l) {
				return l, nil
			}
		}

		return right.Eval()
	})
}

func (e *Evaluator) If(cond ExpEvaluator, then StmtEvaluator, _else StmtEvaluator) StmtEvaluator {
	return stmtEvalFunc(func() (Completion, error) {
		condRes, err := cond.Eval()
		if err != nil {
			return completed, err
		}

		if isTruthy(condRes) {
			return then.Eval()
		} else if _else != nil {
			return _else.Eval()
		}

		return completed, nil
	})
}

func (e *Evaluator) Block(stmts []StmtEvaluator) StmtEvaluator {
	return stmtEvalFunc(func() (Completion, error) {
		return e.executeBlock(stmts, env.NewChild(e.environment))
	})
}

// executeBlock runs stmts with environment as the current scope and
// restores the previous scope however the block is left.
func (e *Evaluator) executeBlock(stmts []StmtEvaluator, environment *env.Env) (Completion, error) {
	prev := e.environment
	e.environment = environment
	defer func() { e.environment = prev }()

	for _, stmt := range stmts {
		res, err := stmt.Eval()
		if err != nil || res.returned {
			return res, err
		}
	}

	return completed, nil
}

func (e *Evaluator) Assign(name token.Token, value ExpEvaluator) ExpEvaluator {
	return expEvalFunc(func() (any, error) {
		val, err := value.Eval()
		if err != nil {
			return nil, err
		}

		if !e.environment.Assign(name.Lexeme, val) {
			return nil, undefined(name)
		}

		return val, nil
	})
}

func (e *Evaluator) Variable(name token.Token) ExpEvaluator {
	return expEvalFunc(func() (any, error) {
		val, ok := e.environment.Get(name.Lexeme)
		if !ok {
			return nil, undefined(name)
		}

		return val, nil
	})
}

func (e *Evaluator) Var(name token.Token, init ExpEvaluator) StmtEvaluator {
	return stmtEvalFunc(func() (Completion, error) {
		var value any
		if init != nil {
			var err error
			value, err = init.Eval()
			if err != nil {
				return completed, err
			}
		}

		e.environment.Define(name.Lexeme, value)

		return completed, nil
	})
}

func (*Evaluator) ExprStatement(expr ExpEvaluator) StmtEvaluator {
	return stmtEvalFunc(func() (Completion, error) {
		_, err := expr.Eval()
		return completed, err
	})
}

func (*Evaluator) Literal(value any) ExpEvaluator {
	return expEvalFunc(func() (any, error) {
		return value, nil
	})
}

func (*Evaluator) Grouping(expr ExpEvaluator) ExpEvaluator {
	return expEvalFunc(func() (any, error) {
		return expr.Eval()
	})
}

func (*Evaluator) Unary(op token.Token, right ExpEvaluator) ExpEvaluator {
	return expEvalFunc(func() (any, error) {
		r, err := right.Eval()
		if err != nil {
			return nil, err
		}

		switch op.Kind {
		case token.Minus:
			n, ok := r.(float64)
			if !ok {
				return nil, loxerr.NewRuntime(op, loxerr.ErrOperandType, "operand must be a number.")
			}

			return -n, nil
		case token.Bang:
			return !isTruthy(r), nil
		}

		return nil, fmt.Errorf("unexpected unary operator %s", op.Lexeme)
	})
}

func (*Evaluator) Binary(op token.Token, left, right ExpEvaluator) ExpEvaluator {
	return expEvalFunc(func() (any, error) {
		l, err := left.Eval()
		if err != nil {
			return nil, err
		}

		r, err := right.Eval()
		if err != nil {
			return nil, err
		}

		switch op.Kind {
		case token.EqualEqual:
			return isEqual(l, r), nil
		case token.BangEqual:
			return !isEqual(l, r), nil
		case token.Plus:
			return add(op, l, r)
		}

		lnum, rnum, err := checkNums(op, l, r)
		if err != nil {
			return nil, err
		}

		switch op.Kind {
		case token.Greater:
			return lnum > rnum, nil
		case token.GreaterEqual:
			return lnum >= rnum, nil
		case token.Less:
			return lnum < rnum, nil
		case token.LessEqual:
			return lnum <= rnum, nil
		case token.Minus:
			return lnum - rnum, nil
		case token.Slash:
			return lnum / rnum, nil
		case token.Star:
			return lnum * rnum, nil
		}

		return nil, fmt.Errorf("unexpected binary operator %s", op.Lexeme)
	})
}

func (*Evaluator) NilExpr() ExpEvaluator {
	return expEvalFunc(func() (any, error) {
		return nil, ErrNilValue
	})
}

func (*Evaluator) NilStmt() StmtEvaluator {
	return stmtEvalFunc(func() (Completion, error) {
		return completed, ErrNilValue
	})
}
