package scanner

import (
	"strconv"
	"unicode/utf8"

	"github.com/havrydotdev/loxwalk/loxerr"
	"github.com/havrydotdev/loxwalk/token"
	"github.com/havrydotdev/loxwalk/tracer"
)

var singles = map[byte]token.Kind{
	'(': token.LeftParen,
	')': token.RightParen,
	'{': token.LeftBrace,
	'}': token.RightBrace,
	',': token.Comma,
	'.': token.Dot,
	'-': token.Minus,
	'+': token.Plus,
	';': token.Semicolon,
	'*': token.Star,
}

// operators that change meaning when followed by '='
var withEqual = map[byte]struct{ bare, equal token.Kind }{
	'!': {token.Bang, token.BangEqual},
	'=': {token.Equal, token.EqualEqual},
	'<': {token.Less, token.LessEqual},
	'>': {token.Greater, token.GreaterEqual},
}

// Scanner reads the source byte by byte. Only a character it cannot use
// is decoded as a whole rune, so the report names it correctly.
type Scanner struct {
	src  string
	toks []token.Token
	errs []error

	start int
	pos   int
	line  int
}

func New(source string) *Scanner {
	return &Scanner{src: source, line: 1}
}

// Scan never stops at the first bad character: every lexical error is
// collected and the returned tokens always end with token.Eof.
func (s *Scanner) Scan() ([]token.Token, []error) {
	for s.pos < len(s.src) {
		s.start = s.pos
		s.next()
	}

	s.toks = append(s.toks, token.New(token.Eof, "", nil, s.line))

	tracer.Syntax().Debugf("scanned %d tokens, %d errors", len(s.toks), len(s.errs))

	return s.toks, s.errs
}

func (s *Scanner) next() {
	c := s.src[s.pos]
	s.pos++

	if kind, ok := singles[c]; ok {
		s.emit(kind, nil)
		return
	}

	if op, ok := withEqual[c]; ok {
		if s.accept('=') {
			s.emit(op.equal, nil)
		} else {
			s.emit(op.bare, nil)
		}

		return
	}

	switch {
	case c == '/' && s.accept('/'):
		s.skipWhile(func(b byte) bool { return b != '\n' })
	case c == '/':
		s.emit(token.Slash, nil)
	case c == '\n':
		s.line++
	case c == ' ', c == '\t', c == '\r':
		// whitespace
	case c == '"':
		s.str()
	case isDigit(c):
		s.number()
	case isAlpha(c):
		s.word()
	default:
		r, size := utf8.DecodeRuneInString(s.src[s.start:])
		s.pos = s.start + size
		s.fail(loxerr.NewLexical(s.line, "unexpected character '%c'.", r))
	}
}

func (s *Scanner) word() {
	s.skipWhile(isAlphaNumeric)

	kind, ok := keywords[s.src[s.start:s.pos]]
	if !ok {
		kind = token.Identifier
	}

	s.emit(kind, nil)
}

func (s *Scanner) number() {
	s.skipWhile(isDigit)

	if s.at(0) == '.' && isDigit(s.at(1)) {
		s.pos++
		s.skipWhile(isDigit)
	}

	// digits with at most one inner dot always parse
	num, _ := strconv.ParseFloat(s.src[s.start:s.pos], 64)

	s.emit(token.Number, num)
}

// str scans a string literal. Strings may span lines; the token carries
// the line the literal ends on.
func (s *Scanner) str() {
	s.skipWhile(func(b byte) bool {
		if b == '\n' {
			s.line++
		}

		return b != '"'
	})

	if s.pos >= len(s.src) {
		s.fail(loxerr.NewLexical(s.line, "unterminated string."))
		return
	}

	s.pos++
	s.emit(token.String, s.src[s.start+1:s.pos-1])
}

func (s *Scanner) fail(err *loxerr.Error) {
	tracer.Syntax().Debugf("lexical error: %s", err.Message)
	s.errs = append(s.errs, err)
}

func (s *Scanner) emit(kind token.Kind, literal any) {
	s.toks = append(s.toks, token.New(kind, s.src[s.start:s.pos], literal, s.line))
}

func (s *Scanner) accept(want byte) bool {
	if s.at(0) != want {
		return false
	}

	s.pos++
	return true
}

func (s *Scanner) skipWhile(keep func(byte) bool) {
	for s.pos < len(s.src) && keep(s.src[s.pos]) {
		s.pos++
	}
}

// at returns the byte offset places past the cursor, or 0 past the end.
func (s *Scanner) at(offset int) byte {
	if s.pos+offset >= len(s.src) {
		return 0
	}

	return s.src[s.pos+offset]
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
