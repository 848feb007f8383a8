package lexer_test

import (
	"testing"

	"tint/internal/diag"
	"tint/internal/lexer"
	"tint/internal/source"
	"tint/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte(input))
	bag := diag.NewBag(100)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

type want struct {
	kind token.Kind
	text string
}

func expectTokens(t *testing.T, input string, expected []want) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if bag.HasErrors() {
		t.Fatalf("%q: unexpected diagnostics: %v", input, bag.Items())
	}
	if len(tokens) != len(expected)+1 {
		t.Fatalf("%q: got %d tokens, want %d: %v", input, len(tokens)-1, len(expected), tokens)
	}
	for i, w := range expected {
		if tokens[i].Kind != w.kind || tokens[i].Text != w.text {
			t.Errorf("%q: token %d = %s %q, want %s %q", input, i, tokens[i].Kind, tokens[i].Text, w.kind, w.text)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"123", token.IntLit},
		{"123i", token.IntLit},
		{"4000000000u", token.IntLit},
		{"0x7Fu", token.IntLit},
		{"0XFFi", token.IntLit},
		{"1.5", token.FloatLit},
		{".5", token.FloatLit},
		{"1.", token.FloatLit},
		{"1e3", token.FloatLit},
		{"1.e3", token.FloatLit},
		{"1.5e-3f", token.FloatLit},
		{"2h", token.FloatLit},
		{"1f", token.FloatLit},
		{"1.f", token.FloatLit},
		{"0x1.8p1", token.FloatLit},
		{"0x1p-2h", token.FloatLit},
		{"0x.8p0", token.FloatLit},
		{"0x1.8", token.FloatLit},
	}
	for _, tt := range tests {
		expectTokens(t, tt.input, []want{{tt.kind, tt.input}})
	}
}

func TestNumberFollowedByMember(t *testing.T) {
	expectTokens(t, "v.x", []want{
		{token.Ident, "v"}, {token.Dot, "."}, {token.Ident, "x"},
	})
	expectTokens(t, "1.x", []want{
		{token.IntLit, "1"}, {token.Dot, "."}, {token.Ident, "x"},
	})
}

func TestBadNumbers(t *testing.T) {
	for _, input := range []string{"01", "1.5u", "1e", "0x", "12abc", "0x1pz"} {
		lx, bag := makeTestLexer(input)
		tokens := collectAllTokens(lx)
		if tokens[0].Kind != token.Invalid {
			t.Errorf("%q: got %s, want invalid", input, tokens[0].Kind)
		}
		items := bag.Items()
		if len(items) != 1 || items[0].Code != diag.LexBadNumber {
			t.Errorf("%q: got diagnostics %v, want one LexBadNumber", input, items)
		}
	}
}

func TestOperators(t *testing.T) {
	expectTokens(t, "a >> b << c -> && || == != <= >= ~ ^ % @", []want{
		{token.Ident, "a"}, {token.Shr, ">>"}, {token.Ident, "b"}, {token.Shl, "<<"},
		{token.Ident, "c"}, {token.Arrow, "->"}, {token.AndAnd, "&&"}, {token.OrOr, "||"},
		{token.EqEq, "=="}, {token.BangEq, "!="}, {token.LtEq, "<="}, {token.GtEq, ">="},
		{token.Tilde, "~"}, {token.Caret, "^"}, {token.Percent, "%"}, {token.At, "@"},
	})
}

func TestKeywordsAndIdents(t *testing.T) {
	expectTokens(t, "const const_assert struct alias true false vec3f _x constant", []want{
		{token.KwConst, "const"}, {token.KwConstAssert, "const_assert"},
		{token.KwStruct, "struct"}, {token.KwAlias, "alias"},
		{token.KwTrue, "true"}, {token.KwFalse, "false"},
		{token.Ident, "vec3f"}, {token.Ident, "_x"}, {token.Ident, "constant"},
	})
}

func TestIdentifierNFC(t *testing.T) {
	// "e" followed by a combining acute accent composes to U+00E9.
	lx, bag := makeTestLexer("cafe\u0301")
	tok := lx.Next()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if tok.Kind != token.Ident || tok.Text != "caf\u00e9" {
		t.Fatalf("got %s %q, want ident %q", tok.Kind, tok.Text, "caf\u00e9")
	}
}

func TestTrivia(t *testing.T) {
	lx, bag := makeTestLexer("// line\n/* a /* nested */ b */ x")
	tok := lx.Next()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if tok.Kind != token.Ident || tok.Text != "x" {
		t.Fatalf("got %s %q, want ident x", tok.Kind, tok.Text)
	}
	kinds := []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline, token.TriviaBlockComment, token.TriviaSpace}
	if len(tok.Leading) != len(kinds) {
		t.Fatalf("got %d trivia, want %d", len(tok.Leading), len(kinds))
	}
	for i, k := range kinds {
		if tok.Leading[i].Kind != k {
			t.Errorf("trivia %d = %v, want %v", i, tok.Leading[i].Kind, k)
		}
	}
}

func TestUnterminatedComment(t *testing.T) {
	lx, bag := makeTestLexer("/* open /* inner */")
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("got %s, want EOF", tok.Kind)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexUnterminatedComment {
		t.Fatalf("got %v, want one LexUnterminatedComment", items)
	}
}

func TestUnknownChar(t *testing.T) {
	lx, bag := makeTestLexer("a $ b")
	tokens := collectAllTokens(lx)
	if len(tokens) != 4 || tokens[1].Kind != token.Invalid || tokens[2].Text != "b" {
		t.Fatalf("unexpected tokens %v", tokens)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexUnknownChar {
		t.Fatalf("got %v, want one LexUnknownChar", items)
	}
}

func TestPeek(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next after peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second = %q", n.Text)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("want EOF, got %s", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("EOF must repeat, got %s", n.Kind)
	}
}
