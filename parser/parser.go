package parser

import (
	"slices"

	interp "github.com/havrydotdev/loxwalk/interpreter"
	"github.com/havrydotdev/loxwalk/loxerr"
	"github.com/havrydotdev/loxwalk/token"
	"github.com/havrydotdev/loxwalk/tracer"
)

const maxArgs = 255

type Parser[E any, S any] struct {
	current uint
	errors  []error
	tokens  []token.Token
	alg     interp.Alg[E, S]

	// braces counts the '{' consumed so far minus the '}'.
	braces int
	// bodies holds the brace depth at which each enclosing function body
	// opened. A body whose parse failed stays here until recovery skips
	// past its closing brace.
	bodies []int
}

// New expects tokens as produced by the scanner, terminated by token.Eof.
func New[E any, S any](tokens []token.Token, alg interp.Alg[E, S]) *Parser[E, S] {
	return &Parser[E, S]{tokens: tokens, alg: alg, current: 0}
}

// Parse returns the declarations that parsed cleanly together with one
// error per declaration that did not.
func (p *Parser[E, S]) Parse() ([]S, []error) {
	var stmts []S
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}

		stmts = append(stmts, stmt)
	}

	return stmts, p.errors
}

func (p *Parser[E, S]) declaration() (S, error) {
	switch {
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser[E, S]) function(kind string) (S, error) {
	name, err := p.consume(token.Identifier, "expected %s name.", kind)
	if err != nil {
		return p.alg.NilStmt(), err
	}

	_, err = p.consume(token.LeftParen, "expected '(' after %s name.", kind)
	if err != nil {
		return p.alg.NilStmt(), err
	}

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				return p.alg.NilStmt(), p.errorAt(p.peek(), "can't have more than %d parameters.", maxArgs)
			}

			paramName, err := p.consume(token.Identifier, "expected parameter name.")
			if err != nil {
				return p.alg.NilStmt(), err
			}

			params = append(params, paramName)

			if !p.match(token.Comma) {
				break
			}
		}
	}

	_, err = p.consume(token.RightParen, "expected ')' after parameters.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	_, err = p.consume(token.LeftBrace, "expected '{' before %s body.", kind)
	if err != nil {
		return p.alg.NilStmt(), err
	}

	p.bodies = append(p.bodies, p.braces)
	body, err := p.blockStmts()
	if err != nil {
		return p.alg.NilStmt(), err
	}

	return p.alg.Function(name, params, body), nil
}

func (p *Parser[E, S]) varDeclaration() (S, error) {
	name, err := p.consume(token.Identifier, "expected variable name.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	var init E
	if p.match(token.Equal) {
		init, err = p.expression()
		if err != nil {
			return p.alg.NilStmt(), err
		}
	}

	_, err = p.consume(token.Semicolon, "expected ';' after variable declaration.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	return p.alg.Var(name, init), nil
}

func (p *Parser[E, S]) statement() (S, error) {
	switch {
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.LeftBrace):
		return p.block()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser[E, S]) printStatement() (S, error) {
	keyword := p.previous()

	value, err := p.expression()
	if err != nil {
		return p.alg.NilStmt(), err
	}

	_, err = p.consume(token.Semicolon, "expected ';' after value.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	return p.alg.Print(keyword, value), nil
}

func (p *Parser[E, S]) returnStatement() (S, error) {
	keyword := p.previous()
	if !p.inFunction() {
		return p.alg.NilStmt(), p.errorAt(keyword, "can't return from top-level code.")
	}

	var value E
	var err error
	if !p.check(token.Semicolon) {
		value, err = p.expression()
		if err != nil {
			return p.alg.NilStmt(), err
		}
	}

	_, err = p.consume(token.Semicolon, "expected ';' after return value.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	return p.alg.Return(keyword, value), nil
}

// forStatement desugars
//
//	for (init; cond; incr) body
//
// into
//
//	{ init; while (cond) { body; incr; } }
func (p *Parser[E, S]) forStatement() (S, error) {
	_, err := p.consume(token.LeftParen, "expected '(' after 'for'.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	var outer []S
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Var):
		init, err := p.varDeclaration()
		if err != nil {
			return p.alg.NilStmt(), err
		}

		outer = append(outer, init)
	default:
		init, err := p.expressionStatement()
		if err != nil {
			return p.alg.NilStmt(), err
		}

		outer = append(outer, init)
	}

	cond := p.alg.Literal(true)
	if !p.check(token.Semicolon) {
		cond, err = p.expression()
		if err != nil {
			return p.alg.NilStmt(), err
		}
	}

	_, err = p.consume(token.Semicolon, "expected ';' after loop condition.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	var incr E
	hasIncr := !p.check(token.RightParen)
	if hasIncr {
		incr, err = p.expression()
		if err != nil {
			return p.alg.NilStmt(), err
		}
	}

	_, err = p.consume(token.RightParen, "expected ')' after for clauses.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	body, err := p.statement()
	if err != nil {
		return p.alg.NilStmt(), err
	}

	if hasIncr {
		body = p.alg.Block([]S{body, p.alg.ExprStatement(incr)})
	}

	body = p.alg.While(cond, body)
	if len(outer) == 0 {
		return body, nil
	}

	return p.alg.Block(append(outer, body)), nil
}

func (p *Parser[E, S]) whileStatement() (S, error) {
	_, err := p.consume(token.LeftParen, "expected '(' after 'while'.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	cond, err := p.expression()
	if err != nil {
		return p.alg.NilStmt(), err
	}

	_, err = p.consume(token.RightParen, "expected ')' after condition.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	body, err := p.statement()
	if err != nil {
		return p.alg.NilStmt(), err
	}

	return p.alg.While(cond, body), nil
}

func (p *Parser[E, S]) ifStatement() (S, error) {
	_, err := p.consume(token.LeftParen, "expected '(' after 'if'.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	cond, err := p.expression()
	if err != nil {
		return p.alg.NilStmt(), err
	}

	_, err = p.consume(token.RightParen, "expected ')' after if condition.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	then, err := p.statement()
	if err != nil {
		return p.alg.NilStmt(), err
	}

	var _else S
	if p.match(token.Else) {
		_else, err = p.statement()
		if err != nil {
			return p.alg.NilStmt(), err
		}
	}

	return p.alg.If(cond, then, _else), nil
}

// blockStmts parses declarations up to and including the closing brace.
func (p *Parser[E, S]) blockStmts() ([]S, error) {
	var stmts []S
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	_, err := p.consume(token.RightBrace, "expected '}' after block.")
	if err != nil {
		return nil, err
	}

	return stmts, nil
}

func (p *Parser[E, S]) block() (S, error) {
	stmts, err := p.blockStmts()
	if err != nil {
		return p.alg.NilStmt(), err
	}

	return p.alg.Block(stmts), nil
}

func (p *Parser[E, S]) expressionStatement() (S, error) {
	expr, err := p.expression()
	if err != nil {
		return p.alg.NilStmt(), err
	}

	_, err = p.consume(token.Semicolon, "expected ';' after expression.")
	if err != nil {
		return p.alg.NilStmt(), err
	}

	return p.alg.ExprStatement(expr), nil
}

func (p *Parser[E, S]) expression() (E, error) {
	return p.assignment()
}

// The algebra hides the shape of E, so a valid target is recognised
// by its tokens instead: a bare variable is exactly one identifier.
func (p *Parser[E, S]) assignment() (E, error) {
	start := p.current

	expr, err := p.or()
	if err != nil {
		return p.alg.NilExpr(), err
	}

	if p.match(token.Equal) {
		equals := p.previous()

		target := p.tokens[start]
		if p.current-start != 2 || target.Kind != token.Identifier {
			return p.alg.NilExpr(), p.errorAt(equals, "invalid assignment target.")
		}

		value, err := p.assignment()
		if err != nil {
			return p.alg.NilExpr(), err
		}

		return p.alg.Assign(target, value), nil
	}

	return expr, nil
}

func (p *Parser[E, S]) or() (E, error) {
	expr, err := p.and()
	if err != nil {
		return p.alg.NilExpr(), err
	}

	for p.match(token.Or) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return p.alg.NilExpr(), err
		}

		expr = p.alg.Logical(op, expr, right)
	}

	return expr, nil
}

func (p *Parser[E, S]) and() (E, error) {
	expr, err := p.equality()
	if err != nil {
		return p.alg.NilExpr(), err
	}

	for p.match(token.And) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return p.alg.NilExpr(), err
		}

		expr = p.alg.Logical(op, expr, right)
	}

	return expr, nil
}

func (p *Parser[E, S]) equality() (E, error) {
	expr, err := p.comparison()
	if err != nil {
		return p.alg.NilExpr(), err
	}

	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return p.alg.NilExpr(), err
		}

		expr = p.alg.Binary(op, expr, right)
	}

	return expr, nil
}

func (p *Parser[E, S]) comparison() (E, error) {
	expr, err := p.term()
	if err != nil {
		return p.alg.NilExpr(), err
	}

	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right, err := p.term()
		if err != nil {
			return p.alg.NilExpr(), err
		}

		expr = p.alg.Binary(op, expr, right)
	}

	return expr, nil
}

func (p *Parser[E, S]) term() (E, error) {
	expr, err := p.factor()
	if err != nil {
		return p.alg.NilExpr(), err
	}

	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return p.alg.NilExpr(), err
		}

		expr = p.alg.Binary(op, expr, right)
	}

	return expr, nil
}

func (p *Parser[E, S]) factor() (E, error) {
	expr, err := p.unary()
	if err != nil {
		return p.alg.NilExpr(), err
	}

	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return p.alg.NilExpr(), err
		}

		expr = p.alg.Binary(op, expr, right)
	}

	return expr, nil
}

func (p *Parser[E, S]) unary() (E, error) {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return p.alg.NilExpr(), err
		}

		return p.alg.Unary(op, right), nil
	}

	return p.call()
}

func (p *Parser[E, S]) call() (E, error) {
	expr, err := p.primary()
	if err != nil {
		return p.alg.NilExpr(), err
	}

	for p.match(token.LeftParen) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return p.alg.NilExpr(), err
		}
	}

	return expr, nil
}

func (p *Parser[E, S]) finishCall(callee E) (E, error) {
	var args []E

	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				return p.alg.NilExpr(), p.errorAt(p.peek(), "can't have more than %d arguments.", maxArgs)
			}

			expr, err := p.expression()
			if err != nil {
				return p.alg.NilExpr(), err
			}

			args = append(args, expr)

			if !p.match(token.Comma) {
				break
			}
		}
	}

	paren, err := p.consume(token.RightParen, "expected ')' after arguments.")
	if err != nil {
		return p.alg.NilExpr(), err
	}

	return p.alg.Call(callee, paren, args), nil
}

func (p *Parser[E, S]) primary() (E, error) {
	switch {
	case p.match(token.Identifier):
		return p.alg.Variable(p.previous()), nil
	case p.match(token.False):
		return p.alg.Literal(false), nil
	case p.match(token.True):
		return p.alg.Literal(true), nil
	case p.match(token.Nil):
		return p.alg.Literal(nil), nil
	case p.match(token.Number, token.String):
		return p.alg.Literal(p.previous().Literal), nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return p.alg.NilExpr(), err
		}

		_, err = p.consume(token.RightParen, "expected ')' after expression.")
		if err != nil {
			return p.alg.NilExpr(), err
		}

		return p.alg.Grouping(expr), nil
	}

	return p.alg.NilExpr(), p.errorAt(p.peek(), "expected expression.")
}

// synchronize method moves cursor
// to the next statement
func (p *Parser[E, S]) synchronize() {
	from := p.peek()
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			break
		}

		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			tracer.Syntax().Debugf("synchronized from line %d to %q on line %d", from.Line, p.peek().Lexeme, p.peek().Line)
			return
		}

		p.advance()
	}

	tracer.Syntax().Debugf("synchronized from line %d to line %d", from.Line, p.peek().Line)
}

func (p *Parser[E, S]) inFunction() bool {
	for len(p.bodies) > 0 && p.bodies[len(p.bodies)-1] > p.braces {
		p.bodies = p.bodies[:len(p.bodies)-1]
	}

	return len(p.bodies) > 0
}

func (p *Parser[E, S]) errorAt(tok token.Token, format string, args ...any) error {
	return loxerr.NewParse(tok, format, args...)
}

func (p *Parser[E, S]) consume(kind token.Kind, format string, args ...any) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}

	return token.Token{}, p.errorAt(p.peek(), format, args...)
}

func (p *Parser[E, S]) match(kinds ...token.Kind) bool {
	if slices.ContainsFunc(kinds, p.check) {
		p.advance()
		return true
	}

	return false
}

func (p *Parser[E, S]) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *Parser[E, S]) advance() token.Token {
	if !p.isAtEnd() {
		switch p.peek().Kind {
		case token.LeftBrace:
			p.braces++
		case token.RightBrace:
			p.braces--
		}

		p.current++
	}

	return p.previous()
}

func (p *Parser[E, S]) isAtEnd() bool {
	return p.peek().Kind == token.Eof
}

func (p *Parser[E, S]) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser[E, S]) previous() token.Token {
	return p.tokens[p.current-1]
}
