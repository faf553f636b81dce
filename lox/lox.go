// Package lox ties the scanner, the parser and the evaluator together into
// a session that a host can feed whole scripts or single REPL lines.
package lox

import (
	"errors"
	"fmt"
	"io"

	eval "github.com/havrydotdev/loxwalk/evaluator"
	"github.com/havrydotdev/loxwalk/parser"
	"github.com/havrydotdev/loxwalk/printer"
	"github.com/havrydotdev/loxwalk/scanner"
	"github.com/havrydotdev/loxwalk/tracer"
)

// ErrStatic is returned when lexical or parse errors kept a source from
// running at all.
var ErrStatic = errors.New("static errors")

// Reporter is the diagnostic sink. Every lexical, parse and runtime error
// is handed to it exactly once.
type Reporter interface {
	Report(err error)
}

type ReporterFunc func(err error)

func (fn ReporterFunc) Report(err error) {
	fn(err)
}

// WriterReporter writes one diagnostic per line.
type WriterReporter struct {
	w io.Writer
}

func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

func (r *WriterReporter) Report(err error) {
	fmt.Fprintln(r.w, err)
}

type Option func(*Session)

func WithReporter(r Reporter) Option {
	return func(s *Session) {
		s.reporter = r
	}
}

// WithIsolation makes a runtime error end only the top-level statement it
// happened in; the following statements still run.
func WithIsolation(isolate bool) Option {
	return func(s *Session) {
		s.isolate = isolate
	}
}

// WithEvaluator passes options through to the evaluator.
func WithEvaluator(opts ...eval.Option) Option {
	return func(s *Session) {
		s.evalOpts = append(s.evalOpts, opts...)
	}
}

// Session keeps one evaluator, so globals survive between runs.
type Session struct {
	eval     *eval.Evaluator
	evalOpts []eval.Option
	reporter Reporter
	isolate  bool
}

func New(opts ...Option) *Session {
	s := &Session{reporter: ReporterFunc(func(error) {})}
	for _, opt := range opts {
		opt(s)
	}

	s.eval = eval.New(s.evalOpts...)

	return s
}

func (s *Session) Evaluator() *eval.Evaluator {
	return s.eval
}

// Run scans, parses and executes source. Nothing is executed when the
// source has lexical or parse errors; the result then wraps ErrStatic.
// Otherwise the result is the runtime error, if any.
func (s *Session) Run(source string) error {
	tokens, lexErrs := scanner.New(source).Scan()
	stmts, parseErrs := parser.New[eval.ExpEvaluator, eval.StmtEvaluator](tokens, s.eval).Parse()

	if err := s.static(lexErrs, parseErrs); err != nil {
		return err
	}

	tracer.Interpreter().Infof("running %d statements", len(stmts))

	if !s.isolate {
		if err := s.eval.Run(stmts); err != nil {
			s.reporter.Report(err)
			return err
		}

		return nil
	}

	var runtimeErrs []error
	for _, stmt := range stmts {
		if err := s.eval.Execute(stmt); err != nil {
			s.reporter.Report(err)
			runtimeErrs = append(runtimeErrs, err)
		}
	}

	return errors.Join(runtimeErrs...)
}

// Dump returns the parenthesised form of every declaration in source.
func (s *Session) Dump(source string) ([]string, error) {
	tokens, lexErrs := scanner.New(source).Scan()
	forms, parseErrs := parser.New(tokens, printer.New()).Parse()

	return forms, s.static(lexErrs, parseErrs)
}

// static reports every scan and parse error and folds them into one error
// that matches both ErrStatic and each individual cause.
func (s *Session) static(lexErrs, parseErrs []error) error {
	errs := append(lexErrs, parseErrs...)
	if len(errs) == 0 {
		return nil
	}

	for _, err := range errs {
		s.reporter.Report(err)
	}

	return fmt.Errorf("%w: %w", ErrStatic, errors.Join(errs...))
}
