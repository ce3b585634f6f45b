package lexer

import "testing"

// TestLexerLongestMatch exercises the case the grammar calls out
// explicitly: multi-character operators must beat their single- and
// two-character prefixes.
func TestLexerLongestMatch(t *testing.T) {
	cases := []struct {
		input string
		want  []TokenType
	}{
		{"<<=", []TokenType{SHL_EQ, EOF}},
		{"<<", []TokenType{SHL, EOF}},
		{"<=", []TokenType{LE, EOF}},
		{"<", []TokenType{LT, EOF}},
		{"++", []TokenType{INC, EOF}},
		{"+=", []TokenType{PLUS_EQ, EOF}},
		{"+", []TokenType{PLUS, EOF}},
		{"==", []TokenType{EQ, EOF}},
		{"=", []TokenType{ASSIGN, EOF}},
		{"->", []TokenType{ARROW, EOF}},
		{">>=", []TokenType{SHR_EQ, EOF}},
		{"&&", []TokenType{ANDAND, EOF}},
		{"&=", []TokenType{AMP_EQ, EOF}},
		{"&", []TokenType{AMP, EOF}},
	}
	for _, c := range cases {
		toks := collectTokens(t, c.input)
		if len(toks) != len(c.want) {
			t.Fatalf("%q: got %d tokens, want %d: %+v", c.input, len(toks), len(c.want), toks)
		}
		for i, w := range c.want {
			if toks[i].Type != w {
				t.Errorf("%q token %d: got %s, want %s", c.input, i, toks[i].Type, w)
			}
		}
	}
}

func TestLexerAllPunctuators(t *testing.T) {
	src := "+ - * / % = & ~ ! ^ | == != < <= > >= *= /= %= += -= &= ^= |= << >> && || ++ -- <<= >>= -> ( ) { } [ ] ; , . ? :"
	toks := collectTokens(t, src)
	if toks[len(toks)-1].Type != EOF {
		t.Fatalf("last token is not EOF: %+v", toks[len(toks)-1])
	}
	for _, tok := range toks[:len(toks)-1] {
		if tok.Type == ILLEGAL {
			t.Errorf("unrecognized punctuator %q", tok.Literal)
		}
	}
}

func TestLexerKeywordsVsIdentifiers(t *testing.T) {
	toks := collectTokens(t, "int intx struct structure while whileLoop")
	want := []TokenType{INT_KW, IDENT, STRUCT_KW, IDENT, WHILE_KW, IDENT, EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}
