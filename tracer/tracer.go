// Package tracer exposes the two trace channels used by the interpreter.
// Both are schuko global tracers. They do nothing until the host calls
// SetLevel or Install.
package tracer

import (
	"strings"
	"sync"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

var (
	once    sync.Once
	install sync.Once
)

// setup guards against a schuko build that leaves the globals unset.
// Otherwise they start out as no-op tracers and stay that way until
// SetLevel is called.
func setup() {
	once.Do(func() {
		if gtrace.SyntaxTracer == nil {
			gtrace.SyntaxTracer = gologadapter.New()
		}

		if gtrace.InterpreterTracer == nil {
			gtrace.InterpreterTracer = gologadapter.New()
		}
	})
}

// Install routes both channels to go-log adapters writing to stderr.
// It replaces whatever tracers were in place, no-op ones included.
func Install() {
	install.Do(func() {
		gtrace.SyntaxTracer = gologadapter.New()
		gtrace.InterpreterTracer = gologadapter.New()
	})
}

// Syntax traces the scanner and the parser.
func Syntax() tracing.Trace {
	setup()
	return gtrace.SyntaxTracer
}

// Interpreter traces statement execution and calls.
func Interpreter() tracing.Trace {
	setup()
	return gtrace.InterpreterTracer
}

// SetLevel installs the go-log channels and applies one of "error",
// "info" or "debug" to both. Anything else selects "error".
func SetLevel(level string) {
	Install()

	l := parseLevel(level)
	Syntax().SetTraceLevel(l)
	Interpreter().SetTraceLevel(l)
}

func parseLevel(level string) tracing.TraceLevel {
	switch strings.ToLower(level) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	default:
		return tracing.LevelError
	}
}
