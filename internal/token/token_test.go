package token

import (
	"testing"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"const":        KwConst,
		"const_assert": KwConstAssert,
		"struct":       KwStruct,
		"alias":        KwAlias,
		"true":         KwTrue,
		"false":        KwFalse,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v, want %v", lexeme, got, ok, want)
		}
	}
	for _, s := range []string{"Const", "i32", "vec3", "let", "fn"} {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKindClasses(t *testing.T) {
	tok := func(k Kind) Token { return Token{Kind: k} }
	for _, k := range []Kind{IntLit, FloatLit, KwTrue, KwFalse} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be a literal", k)
		}
	}
	for _, k := range []Kind{Plus, Shr, Tilde, At, LBracket} {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	for _, k := range []Kind{KwConst, KwStruct, KwFalse} {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be a keyword", k)
		}
	}
	if tok(Ident).IsKeyword() || !tok(Ident).IsIdent() {
		t.Fatalf("identifier classification is wrong")
	}
	if Shr.String() != "'>>'" || EOF.String() != "end of file" {
		t.Fatalf("unexpected kind names %s, %s", Shr, EOF)
	}
}
