package lexer

import "testing"

func TestLexerStringLiteralVerbatim(t *testing.T) {
	toks := collectTokens(t, `"hello\nworld"`)
	if toks[0].Type != STRING {
		t.Fatalf("got %s, want STRING", toks[0].Type)
	}
	// No escape processing: the backslash-n stays two raw characters.
	if toks[0].Literal != `hello\nworld` {
		t.Errorf("got %q, want %q", toks[0].Literal, `hello\nworld`)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New(`"never closed`)
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected an unterminated string error")
	}
}

func TestLexerNumberLiteral(t *testing.T) {
	toks := collectTokens(t, "12345 0 9999999999")
	for i, want := range []string{"12345", "0", "9999999999"} {
		if toks[i].Type != NUMBER || toks[i].Literal != want {
			t.Errorf("token %d: got %s %q, want NUMBER %q", i, toks[i].Type, toks[i].Literal, want)
		}
	}
}

func TestLexerIdentifier(t *testing.T) {
	toks := collectTokens(t, "_foo foo_bar123 X")
	for i, want := range []string{"_foo", "foo_bar123", "X"} {
		if toks[i].Type != IDENT || toks[i].Literal != want {
			t.Errorf("token %d: got %s %q, want IDENT %q", i, toks[i].Type, toks[i].Literal, want)
		}
	}
}
