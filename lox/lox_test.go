package lox

import (
	"bytes"
	_ "embed"
	"errors"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	eval "github.com/havrydotdev/loxwalk/evaluator"
	"github.com/havrydotdev/loxwalk/loxerr"
)

//go:embed testdata/fib_recur.lox
var fibRecur []byte

type script struct {
	Name    string `yaml:"name"`
	Source  string `yaml:"source"`
	Output  string `yaml:"output"`
	Error   string `yaml:"error"`
	Isolate bool   `yaml:"isolate"`
}

var sentinels = map[string]error{
	"lexical":            loxerr.ErrLexical,
	"syntax":             loxerr.ErrSyntax,
	"undefined_variable": loxerr.ErrUndefinedVariable,
	"arity_mismatch":     loxerr.ErrArityMismatch,
	"not_callable":       loxerr.ErrNotCallable,
	"operand_type":       loxerr.ErrOperandType,
	"stack_overflow":     loxerr.ErrStackOverflow,
}

func loadScripts(t *testing.T) []script {
	t.Helper()

	file, err := os.Open("testdata/scripts.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var scripts []script
	if err := yaml.NewDecoder(file).Decode(&scripts); err != nil {
		t.Fatal(err)
	}

	return scripts
}

func TestScripts(t *testing.T) {
	for _, sc := range loadScripts(t) {
		t.Run(sc.Name, func(t *testing.T) {
			var out bytes.Buffer
			var reported []error

			session := New(
				WithIsolation(sc.Isolate),
				WithReporter(ReporterFunc(func(err error) { reported = append(reported, err) })),
				WithEvaluator(eval.WithOutput(&out), eval.WithMaxCallDepth(200)),
			)

			err := session.Run(sc.Source)

			if sc.Error == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else {
				want, ok := sentinels[sc.Error]
				if !ok {
					t.Fatalf("unknown error name %q", sc.Error)
				}

				if !errors.Is(err, want) {
					t.Fatalf("got %v, want %v", err, want)
				}

				found := false
				for _, r := range reported {
					found = found || errors.Is(r, want)
				}

				if !found {
					t.Errorf("%v was not reported: %v", want, reported)
				}
			}

			if out.String() != sc.Output {
				t.Errorf("got output %q, want %q", out.String(), sc.Output)
			}
		})
	}
}

func TestStaticErrorsAreAllReported(t *testing.T) {
	var reported []error
	session := New(WithReporter(ReporterFunc(func(err error) { reported = append(reported, err) })))

	err := session.Run("var a = @;\nprint ;\nvar b = 2")
	if !errors.Is(err, ErrStatic) {
		t.Fatalf("got %v, want ErrStatic", err)
	}

	var lexical, syntax int
	for _, r := range reported {
		switch {
		case loxerr.IsKind(r, loxerr.Lexical):
			lexical++
		case loxerr.IsKind(r, loxerr.Parse):
			syntax++
		}
	}

	if lexical != 1 || syntax != 3 {
		t.Errorf("got %d lexical and %d parse errors, want 1 and 3: %v", lexical, syntax, reported)
	}
}

func TestSessionKeepsGlobals(t *testing.T) {
	var out bytes.Buffer
	session := New(WithEvaluator(eval.WithOutput(&out)))

	for _, line := range []string{"var a = 1;", "fun inc() { a = a + 1; }", "inc();", "print a;"} {
		if err := session.Run(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}

	if out.String() != "2\n" {
		t.Errorf("got %q", out.String())
	}

	if _, ok := session.Evaluator().Globals().Get("inc"); !ok {
		t.Error("inc is not a global")
	}
}

func TestWriterReporter(t *testing.T) {
	var diag bytes.Buffer
	session := New(WithReporter(NewWriterReporter(&diag)))

	if err := session.Run("print y;"); err == nil {
		t.Fatal("expected an error")
	}

	if got := diag.String(); got != "[line 1] Error at 'y': undefined variable 'y'.\n" {
		t.Errorf("got %q", got)
	}
}

func TestDump(t *testing.T) {
	session := New()

	forms, err := session.Dump("var a = 1; for (;a < 3;) a = a + 1;")
	if err != nil {
		t.Fatal(err)
	}

	want := "(var a 1)\n(while (< a 3) (; (= a (+ a 1))))"
	if got := strings.Join(forms, "\n"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	if _, err := session.Dump("var;"); !errors.Is(err, ErrStatic) {
		t.Errorf("got %v, want ErrStatic", err)
	}
}

func TestFibRecursion(t *testing.T) {
	var out bytes.Buffer
	session := New(WithEvaluator(eval.WithOutput(&out)))

	if err := session.Run(string(fibRecur)); err != nil {
		t.Fatal(err)
	}

	want := "0\n1\n1\n2\n3\n5\n8\n13\n21\n34\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}
