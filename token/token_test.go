package token

import "testing"

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		LeftParen:  "LeftParen",
		BangEqual:  "BangEqual",
		Identifier: "Identifier",
		While:      "While",
		Eof:        "Eof",
		Kind(200):  "Unknown",
	}

	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := New(Number, "12.5", 12.5, 3)

	want := "{Kind(Number), Literal(12.5), Lexeme(12.5), Line(3)}"
	if got := tok.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
