package interp

import "github.com/havrydotdev/loxwalk/token"

// Visitor pattern doesn't really work in golang
// so we have to use object algebras
// https://www.cs.utexas.edu/%7Ewcook/Drafts/2012/ecoop2012.pdf
//
// E is for expression, S is for statement. Optional children
// (a missing var initializer, else branch or return value) are
// passed as the zero value of E or S.
type Alg[E any, S any] interface {
	Grouping(expr E) E
	Literal(value any) E
	Variable(name token.Token) E
	Unary(op token.Token, right E) E
	Assign(name token.Token, value E) E
	Binary(op token.Token, left, right E) E
	Logical(op token.Token, left, right E) E
	Call(callee E, paren token.Token, args []E) E

	Block(stmts []S) S
	Print(keyword token.Token, expr E) S
	While(cond E, body S) S
	ExprStatement(expr E) S
	If(cond E, then S, _else S) S
	Var(name token.Token, init E) S
	Return(keyword token.Token, value E) S
	Function(name token.Token, params []token.Token, body []S) S

	NilExpr() E
	NilStmt() S
}
