// Package loxerr holds the structured diagnostics produced by the scanner,
// the parser and the evaluator. Nothing in the core prints them; hosts
// receive them as plain errors and decide how to render them.
package loxerr

import (
	"errors"
	"fmt"

	"github.com/havrydotdev/loxwalk/token"
)

type Kind uint8

const (
	Lexical Kind = iota
	Parse
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Parse:
		return "parse"
	case Runtime:
		return "runtime"
	}

	return "unknown"
}

var (
	ErrLexical           = errors.New("lexical error")
	ErrSyntax            = errors.New("syntax error")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrArityMismatch     = errors.New("arity mismatch")
	ErrNotCallable       = errors.New("not callable")
	ErrOperandType       = errors.New("invalid operand type")
	ErrStackOverflow     = errors.New("stack overflow")
)

type Error struct {
	Kind    Kind
	Line    int
	Lexeme  string
	AtEnd   bool
	Message string

	// Err is one of the sentinel errors above.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.AtEnd:
		return fmt.Sprintf("[line %d] Error at end: %s", e.Line, e.Message)
	case e.Lexeme != "":
		return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
	default:
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewLexical(line int, format string, args ...any) *Error {
	return &Error{
		Kind:    Lexical,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrLexical,
	}
}

func NewParse(tok token.Token, format string, args ...any) *Error {
	return &Error{
		Kind:    Parse,
		Line:    tok.Line,
		Lexeme:  tok.Lexeme,
		AtEnd:   tok.Kind == token.Eof,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrSyntax,
	}
}

func NewRuntime(tok token.Token, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    Runtime,
		Line:    tok.Line,
		Lexeme:  tok.Lexeme,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// IsKind reports whether err carries a diagnostic of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
