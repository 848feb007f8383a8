package parser

import (
	"testing"

	"tint/internal/ast"
	"tint/internal/diag"
	"tint/internal/lexer"
	"tint/internal/source"
)

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"a << 1 + 2", "(a << (1 + 2))"},
		{"a & b == c", "(a & (b == c))"},
		{"a || b && c", "(a || (b && c))"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"-a * ~b", "((-a) * (~b))"},
		{"!a.x", "(!a.x)"},
		{"m[1][0] + v.xy.x", "(m[1][0] + v.xy.x)"},
		{"a < b", "(a < b)"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			b, file := mustParse(t, "const x = "+tt.input+";")
			c, ok := b.Items.Const(file.Items[0])
			if !ok {
				t.Fatalf("expected const item")
			}
			if got := render(b, c.Value); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTemplatedCalls(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"vec3<f32>(1, 2, 3)", "vec3<f32>(1, 2, 3)"},
		{"vec3f(1.5)", "vec3f(1.5)"},
		{"array<vec2<f32>, 2>(vec2(1), vec2(2))", "array<vec2<f32>, 2>(vec2(1), vec2(2))"},
		{"array<i32, 1 + 2>()", "array<i32, (1 + 2)>()"},
		{"mat2x2<f32>(1, 2, 3, 4)", "mat2x2<f32>(1, 2, 3, 4)"},
		{"bitcast<u32>(1.0f)", "bitcast<u32>(1.0f)"},
		{"array(1, 2,)", "array(1, 2)"},
		{"clamp(x, 0, 1)", "clamp(x, 0, 1)"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			b, file := mustParse(t, "const x = "+tt.input+";")
			c, _ := b.Items.Const(file.Items[0])
			if got := render(b, c.Value); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNestedTemplateClose(t *testing.T) {
	b, file := mustParse(t, "alias M = vec2<vec2<f32>>;")
	a, ok := b.Items.Alias(file.Items[0])
	if !ok {
		t.Fatalf("expected alias")
	}
	if got := renderType(b, a.Target); got != "vec2<vec2<f32>>" {
		t.Fatalf("got %s", got)
	}
}

func TestDeclarations(t *testing.T) {
	src := `
struct S { a: i32, b: vec2<f32>, }
alias V = vec3<u32>;
const c: i32 = 1;
const_assert c == 1;
`
	b, file := mustParse(t, src)
	if len(file.Items) != 4 {
		t.Fatalf("got %d items", len(file.Items))
	}
	s, ok := b.Items.Struct(file.Items[0])
	if !ok || s.Name != "S" || len(s.Fields) != 2 || s.Fields[1].Name != "b" {
		t.Fatalf("struct mismatch: %+v", s)
	}
	if _, ok := b.Items.Alias(file.Items[1]); !ok {
		t.Fatalf("expected alias")
	}
	c, ok := b.Items.Const(file.Items[2])
	if !ok || c.Name != "c" || !c.Type.IsValid() {
		t.Fatalf("const mismatch: %+v", c)
	}
	if _, ok := b.Items.ConstAssert(file.Items[3]); !ok {
		t.Fatalf("expected const_assert")
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"const x = 1", diag.SynExpectSemicolon},
		{"const x = ;", diag.SynExpectExpression},
		{"const = 1;", diag.SynExpectIdentifier},
		{"const x = (1;", diag.SynUnclosedDelimiter},
		{"const x: = 1;", diag.SynExpectType},
		{"const x = array<i32>();", diag.SynBadArraySize},
		{"fn f() {}", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			_, _, bag := parseSource(t, tt.input)
			items := bag.Items()
			if len(items) == 0 || items[0].Code != tt.code {
				t.Fatalf("got %s, want %s", diagnosticsSummary(bag), tt.code.ID())
			}
		})
	}
}

func TestRecoveryContinuesWithNextDeclaration(t *testing.T) {
	b, file, bag := parseSource(t, "const a = ;\nconst b = 2;")
	if !bag.HasErrors() {
		t.Fatalf("expected an error")
	}
	if len(file.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(file.Items))
	}
	if c, _ := b.Items.Const(file.Items[0]); c.Name != "b" {
		t.Fatalf("recovered item = %s", c.Name)
	}
}

func TestParseExpr(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("expr", []byte("1 + 2 3")))
	bag := diag.NewBag(10)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	if _, ok := ParseExpr(lexer.New(file, lexer.Options{Reporter: rep}), b, Options{Reporter: rep}); ok {
		t.Fatalf("trailing tokens must fail")
	}
	if items := bag.Items(); len(items) != 1 || items[0].Code != diag.SynUnexpectedToken {
		t.Fatalf("got %s", diagnosticsSummary(bag))
	}
}
