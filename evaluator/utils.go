package eval

import (
	"strconv"

	"github.com/havrydotdev/loxwalk/loxerr"
	"github.com/havrydotdev/loxwalk/token"
)

func isTruthy(value any) bool {
	if value == nil {
		return false
	}

	val, ok := value.(bool)
	if ok {
		return val
	}

	return true
}

// isEqual only compares numbers with numbers, strings with strings and
// nil with nil. Every other pair, booleans included, is unequal.
func isEqual(left, right any) bool {
	switch l := left.(type) {
	case nil:
		return right == nil
	case float64:
		r, ok := right.(float64)
		return ok && l == r
	case string:
		r, ok := right.(string)
		return ok && l == r
	}

	return false
}

func add(op token.Token, left, right any) (any, error) {
	switch l := left.(type) {
	case float64:
		if r, ok := right.(float64); ok {
			return l + r, nil
		}
	case string:
		if r, ok := right.(string); ok {
			return l + r, nil
		}
	}

	return nil, loxerr.NewRuntime(op, loxerr.ErrOperandType, "operands must be two numbers or two strings.")
}

func checkNums(op token.Token, left, right any) (float64, float64, error) {
	l, okl := left.(float64)
	r, okr := right.(float64)
	if !okl || !okr {
		return 0, 0, loxerr.NewRuntime(op, loxerr.ErrOperandType, "operands must be numbers.")
	}

	return l, r, nil
}

func undefined(name token.Token) error {
	return loxerr.NewRuntime(name, loxerr.ErrUndefinedVariable, "undefined variable '%s'.", name.Lexeme)
}

// Stringify renders a runtime value the way print shows it.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case Callable:
		return v.String()
	}

	return "<unknown>"
}
