// Package printer renders parsed programs as parenthesised prefix forms,
// which makes desugaring and precedence visible at a glance.
package printer

import (
	"strconv"
	"strings"

	interp "github.com/havrydotdev/loxwalk/interpreter"
	"github.com/havrydotdev/loxwalk/token"
)

// Printer implements interp.Alg[string, string].
type Printer struct{}

var _ interp.Alg[string, string] = Printer{}

func New() interp.Alg[string, string] {
	return Printer{}
}

func parenthesize(name string, parts ...string) string {
	b := strings.Builder{}

	b.WriteByte('(')
	b.WriteString(name)
	for _, part := range parts {
		b.WriteByte(' ')
		b.WriteString(part)
	}

	b.WriteByte(')')

	return b.String()
}

func (Printer) Grouping(expr string) string {
	return parenthesize("group", expr)
}

func (Printer) Literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	}

	return "?"
}

func (Printer) Variable(name token.Token) string {
	return name.Lexeme
}

func (Printer) Unary(op token.Token, right string) string {
	return parenthesize(op.Lexeme, right)
}

func (Printer) Assign(name token.Token, value string) string {
	return parenthesize("=", name.Lexeme, value)
}

func (Printer) Binary(op token.Token, left, right string) string {
	return parenthesize(op.Lexeme, left, right)
}

func (Printer) Logical(op token.Token, left, right string) string {
	return parenthesize(op.Lexeme, left, right)
}

func (Printer) Call(callee string, paren token.Token, args []string) string {
	return parenthesize("call", append([]string{callee}, args...)...)
}

func (Printer) Block(stmts []string) string {
	return parenthesize("block", stmts...)
}

func (Printer) Print(keyword token.Token, expr string) string {
	return parenthesize("print", expr)
}

func (Printer) While(cond string, body string) string {
	return parenthesize("while", cond, body)
}

func (Printer) ExprStatement(expr string) string {
	return parenthesize(";", expr)
}

func (Printer) If(cond string, then string, _else string) string {
	if _else == "" {
		return parenthesize("if", cond, then)
	}

	return parenthesize("if-else", cond, then, _else)
}

func (Printer) Var(name token.Token, init string) string {
	if init == "" {
		return parenthesize("var", name.Lexeme)
	}

	return parenthesize("var", name.Lexeme, init)
}

func (Printer) Return(keyword token.Token, value string) string {
	if value == "" {
		return parenthesize("return")
	}

	return parenthesize("return", value)
}

func (Printer) Function(name token.Token, params []token.Token, body []string) string {
	names := make([]string, 0, len(params))
	for _, param := range params {
		names = append(names, param.Lexeme)
	}

	return parenthesize("fun", name.Lexeme, "("+strings.Join(names, " ")+")", parenthesize("block", body...))
}

func (Printer) NilExpr() string {
	return "<error>"
}

func (Printer) NilStmt() string {
	return "<error>"
}
