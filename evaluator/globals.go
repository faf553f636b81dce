package eval

import (
	"time"

	env "github.com/havrydotdev/loxwalk/environment"
)

// clock returns milliseconds since the Unix epoch.
func newClock() *NativeFun {
	return Native{
		Arity: 0,
		Fn: func(args []any) any {
			return float64(time.Now().UnixMilli())
		},
	}.fun("clock")
}

func newGlobals() *env.Env {
	global := env.New()
	global.Define("clock", newClock())

	return global
}
