package tracer

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

func TestSetLevel(t *testing.T) {
	SetLevel("debug")
	defer SetLevel("error")

	if got := Syntax().GetTraceLevel(); got != tracing.LevelDebug {
		t.Errorf("syntax level = %v, want debug", got)
	}

	if got := Interpreter().GetTraceLevel(); got != tracing.LevelDebug {
		t.Errorf("interpreter level = %v, want debug", got)
	}
}

func TestSetLevelReachesGlobalTracers(t *testing.T) {
	SetLevel("info")
	defer SetLevel("error")

	if got := gtrace.SyntaxTracer.GetTraceLevel(); got != tracing.LevelInfo {
		t.Errorf("gtrace.SyntaxTracer level = %v, want info", got)
	}

	if got := gtrace.InterpreterTracer.GetTraceLevel(); got != tracing.LevelInfo {
		t.Errorf("gtrace.InterpreterTracer level = %v, want info", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]tracing.TraceLevel{
		"debug": tracing.LevelDebug,
		"INFO":  tracing.LevelInfo,
		"error": tracing.LevelError,
		"loud":  tracing.LevelError,
		"":      tracing.LevelError,
	}

	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
