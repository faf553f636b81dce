package scanner

import (
	"errors"
	"testing"

	"github.com/havrydotdev/loxwalk/loxerr"
	"github.com/havrydotdev/loxwalk/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}

	return out
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestScanKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "arithmetic",
			input: "123 * 123",
			want:  []token.Kind{token.Number, token.Star, token.Number, token.Eof},
		},
		{
			name:  "two char operators",
			input: "! != = == < <= > >=",
			want: []token.Kind{
				token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
				token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.Eof,
			},
		},
		{
			name:  "punctuation",
			input: "(){},.-+;/*",
			want: []token.Kind{
				token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
				token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
				token.Slash, token.Star, token.Eof,
			},
		},
		{
			name:  "keywords and identifiers",
			input: "var orchid = nil or print_me; fun while return",
			want: []token.Kind{
				token.Var, token.Identifier, token.Equal, token.Nil, token.Or,
				token.Identifier, token.Semicolon, token.Fun, token.While, token.Return, token.Eof,
			},
		},
		{
			name:  "line comment",
			input: "1 // ignored ( \"\n2",
			want:  []token.Kind{token.Number, token.Number, token.Eof},
		},
		{
			name:  "no block comments",
			input: "/* */",
			want:  []token.Kind{token.Slash, token.Star, token.Star, token.Slash, token.Eof},
		},
		{
			name:  "trailing dot",
			input: "12.",
			want:  []token.Kind{token.Number, token.Dot, token.Eof},
		},
		{
			name:  "operators at end of input",
			input: "a >= b <",
			want:  []token.Kind{token.Identifier, token.GreaterEqual, token.Identifier, token.Less, token.Eof},
		},
		{
			name:  "comment at end of input",
			input: "x //",
			want:  []token.Kind{token.Identifier, token.Eof},
		},
		{
			name:  "empty",
			input: "",
			want:  []token.Kind{token.Eof},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := New(tt.input).Scan()
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}

			if got := kinds(tokens); !equalKinds(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanLiterals(t *testing.T) {
	tokens, errs := New(`3.25 "hello" 7`).Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if got := tokens[0].Literal; got != 3.25 {
		t.Errorf("number literal = %v, want 3.25", got)
	}

	if got := tokens[1].Literal; got != "hello" {
		t.Errorf("string literal = %v, want hello", got)
	}

	if got := tokens[1].Lexeme; got != `"hello"` {
		t.Errorf("string lexeme = %s, want \"hello\"", got)
	}

	if got := tokens[2].Literal; got != 7.0 {
		t.Errorf("number literal = %v, want 7", got)
	}
}

func TestScanLines(t *testing.T) {
	tokens, _ := New("a\n\"multi\nline\"\nb").Scan()

	want := []int{1, 3, 4, 4}
	for i, tok := range tokens {
		if tok.Line != want[i] {
			t.Errorf("token %d (%s) on line %d, want %d", i, tok.Lexeme, tok.Line, want[i])
		}
	}
}

func TestScanRecoversFromErrors(t *testing.T) {
	tokens, errs := New("var a = 1 @ 2 # 3;\n\"open").Scan()

	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), errs)
	}

	for _, err := range errs {
		if !errors.Is(err, loxerr.ErrLexical) {
			t.Errorf("error %v is not lexical", err)
		}
	}

	if got := errs[2].Error(); got != "[line 2] Error: unterminated string." {
		t.Errorf("unterminated string error = %q", got)
	}

	want := []token.Kind{
		token.Var, token.Identifier, token.Equal, token.Number,
		token.Number, token.Number, token.Semicolon, token.Eof,
	}
	if got := kinds(tokens); !equalKinds(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanUnicodeCharacterIsOneError(t *testing.T) {
	_, errs := New("é").Scan()

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}

	if got := errs[0].Error(); got != "[line 1] Error: unexpected character 'é'." {
		t.Errorf("got %q", got)
	}
}
