package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/havrydotdev/loxwalk/config"
	eval "github.com/havrydotdev/loxwalk/evaluator"
	"github.com/havrydotdev/loxwalk/lox"
	"github.com/havrydotdev/loxwalk/tracer"
)

const (
	version = "0.1.0"

	exitUsage   = 64
	exitStatic  = 65
	exitRuntime = 70
	exitIO      = 74
)

type options struct {
	configPath string
	trace      string
	ast        bool
	isolate    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	fs := flag.NewFlagSet("loxwalk", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "loxwalk.yml", "path to the YAML config file")
	fs.StringVar(&opts.trace, "trace", "", "trace level: error, info or debug")
	fs.BoolVar(&opts.ast, "ast", false, "print the parsed program instead of running it")
	fs.BoolVar(&opts.isolate, "isolate", false, "keep running after a runtime error in a top-level statement")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "loxwalk %s\n\nUsage: loxwalk [flags] [script]\n\n", version)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if opts.trace != "" {
		cfg.Trace = opts.trace
	}

	cfg.IsolateStatements = cfg.IsolateStatements || opts.isolate

	tracer.SetLevel(cfg.Trace)

	session := lox.New(
		lox.WithReporter(lox.NewWriterReporter(stderr)),
		lox.WithIsolation(cfg.IsolateStatements),
		lox.WithEvaluator(eval.WithOutput(stdout), eval.WithMaxCallDepth(cfg.MaxCallDepth)),
	)

	if fs.NArg() == 1 {
		return runFile(session, fs.Arg(0), opts.ast, stdout, stderr)
	}

	return runPrompt(session, cfg, opts.ast, stdout, stderr)
}

func runFile(session *lox.Session, path string, ast bool, stdout, stderr io.Writer) int {
	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitIO
	}

	if ast {
		return dump(session, string(text), stdout)
	}

	return exitCode(session.Run(string(text)))
}

func dump(session *lox.Session, source string, stdout io.Writer) int {
	forms, err := session.Dump(source)
	for _, form := range forms {
		fmt.Fprintln(stdout, form)
	}

	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, lox.ErrStatic):
		return exitStatic
	default:
		return exitRuntime
	}
}

// prompter is the part of *liner.State the read-eval loop drives.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// historian is the part of *liner.State that persists history.
type historian interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

func runPrompt(session *lox.Session, cfg *config.Config, ast bool, stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)

	history := cfg.HistoryPath()
	loadHistory(ln, history)

	fmt.Fprintf(stdout, "loxwalk %s. Ctrl+C cancels input, Ctrl+D exits.\n", version)

	repl(ln, session, cfg.Prompt, ast, stdout, stderr)

	saveHistory(ln, history)

	return 0
}

// repl reads lines until EOF or a terminal error. Each non-blank line is
// run on the same session, so declarations persist between lines.
func repl(p prompter, session *lox.Session, prompt string, ast bool, stdout, stderr io.Writer) {
	for {
		line, err := p.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}

			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(stderr, err)
			}

			break
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		p.AppendHistory(line)

		// errors were already reported; the prompt keeps going
		if ast {
			dump(session, line, stdout)
		} else {
			_ = session.Run(line)
		}
	}

	fmt.Fprintln(stdout)
}

func loadHistory(h historian, path string) {
	if path == "" {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	if _, err := h.ReadHistory(f); err != nil {
		tracer.Interpreter().Infof("reading history %s: %v", path, err)
	}
}

func saveHistory(h historian, path string) {
	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		tracer.Interpreter().Infof("creating history %s: %v", path, err)
		return
	}
	defer f.Close()

	if _, err := h.WriteHistory(f); err != nil {
		tracer.Interpreter().Infof("writing history %s: %v", path, err)
	}
}
