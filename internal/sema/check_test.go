package sema

import (
	"fmt"
	"strings"
	"testing"

	"tint/internal/ast"
	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/eval"
	"tint/internal/lexer"
	"tint/internal/parser"
	"tint/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func checkSource(t *testing.T, input string, opts eval.Options) (Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.wgsl", []byte(input)))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("%q: parse failed: %s", input, diagnosticsSummary(bag))
	}
	return Check(b, res.File, Options{Reporter: rep, Eval: opts}), bag
}

func mustCheck(t *testing.T, input string) Result {
	t.Helper()
	res, bag := checkSource(t, input, eval.Options{})
	if bag.Len() != 0 {
		t.Fatalf("%q: unexpected diagnostics: %s", input, diagnosticsSummary(bag))
	}
	return res
}

// render prints the named declaration as "type = value".
func render(t *testing.T, res Result, name string) string {
	t.Helper()
	for _, d := range res.Decls {
		if d.Name != name {
			continue
		}
		if d.Value == nil {
			return "<failed>"
		}
		return res.Types.Name(d.Type) + " = " + constant.Format(res.Types, d.Value)
	}
	t.Fatalf("no declaration %q", name)
	return ""
}

func expectCode(t *testing.T, input string, code diag.Code) {
	t.Helper()
	_, bag := checkSource(t, input, eval.Options{})
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("%q: got %s, want %s", input, diagnosticsSummary(bag), code.ID())
}

func TestConstValues(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"const x = 1 + 2;", "abstract-int = 3"},
		{"const x = 1 + 2.5;", "abstract-float = 3.5"},
		{"const x: f32 = 1;", "f32 = 1.0f"},
		{"const x = 7u % 4u;", "u32 = 3u"},
		{"const x = 1i << 4u;", "i32 = 16i"},
		{"const x = 1 < 2;", "bool = true"},
		{"const x = !(1.5 == 1.5);", "bool = false"},
		{"const x = 0x10 | 1;", "abstract-int = 17"},
		{"const x = 0x1p4;", "abstract-float = 16.0"},
		{"const x = ~0u;", "u32 = 4294967295u"},
		{"const x = -(3i);", "i32 = -3i"},
		{"const x = i32(2.9);", "i32 = 2i"},
		{"const x = f32(true);", "f32 = 1.0f"},
		{"const x = bool(0u);", "bool = false"},
		{"const x = vec2<i32>(3);", "vec2<i32> = vec2<i32>(3i, 3i)"},
		{"const x = vec3(1, 2.0, 3);", "vec3<abstract-float> = vec3<abstract-float>(1.0, 2.0, 3.0)"},
		{"const x = vec3f(vec2(1, 2), 3);", "vec3<f32> = vec3<f32>(1.0f, 2.0f, 3.0f)"},
		{"const x = vec4<u32>();", "vec4<u32> = vec4<u32>(0u, 0u, 0u, 0u)"},
		{"const x = vec2(1i, 2i) * 3;", "vec2<i32> = vec2<i32>(3i, 6i)"},
		{"const x = vec2(1.0, 2.0).yx;", "vec2<abstract-float> = vec2<abstract-float>(2.0, 1.0)"},
		{"const x = vec4(1, 2, 3, 4).b;", "abstract-int = 3"},
		{"const x = vec3(1, 2, 3)[1];", "abstract-int = 2"},
		{"const x = array(1u, 2, 3)[2];", "u32 = 3u"},
		{"const x = array<f32, 2>(1, 2);", "array<f32, 2> = array<f32, 2>(1.0f, 2.0f)"},
		{"const x = max(1, 2.5);", "abstract-float = 2.5"},
		{"const x = clamp(5i, 0, 3);", "i32 = 3i"},
		{"const x = sqrt(16);", "abstract-float = 4.0"},
		{"const x = countOneBits(7);", "i32 = 3i"},
		{"const x = dot(vec2(1, 2), vec2(3, 4));", "abstract-int = 11"},
		{"const x = select(1, 2, true);", "abstract-int = 2"},
		{"const x = all(vec2(true, false));", "bool = false"},
		{"const x = mix(vec2(0.0), vec2(2.0), 0.5);", "vec2<abstract-float> = vec2<abstract-float>(1.0, 1.0)"},
		{"const x = frexp(8.0).exp;", "abstract-int = 4"},
		{"const x = bitcast<u32>(1.0f);", "u32 = 1065353216u"},
		{"const x = pack4xU8(vec4(1u, 2u, 3u, 4u));", "u32 = 67305985u"},
		{"const x = true || (1i / 0i == 0i);", "bool = true"},
		{"const x = false && (1i / 0i == 0i);", "bool = false"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			res := mustCheck(t, tt.input)
			if got := render(t, res, "x"); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMatrices(t *testing.T) {
	src := `
const m = mat2x2<f32>(1, 2, 3, 4);
const v = m * vec2(1.0, 1.0);
const tr = transpose(m)[0];
const d = determinant(m);
const inferred = mat2x2(vec2(1.0, 0.0), vec2(0.0, 1.0));
`
	res := mustCheck(t, src)
	want := map[string]string{
		"v":        "vec2<f32> = vec2<f32>(4.0f, 6.0f)",
		"tr":       "vec2<f32> = vec2<f32>(1.0f, 3.0f)",
		"d":        "f32 = -2.0f",
		"inferred": "mat2x2<abstract-float> = mat2x2<abstract-float>(vec2<abstract-float>(1.0, 0.0), vec2<abstract-float>(0.0, 1.0))",
	}
	for name, w := range want {
		if got := render(t, res, name); got != w {
			t.Errorf("%s: got %s, want %s", name, got, w)
		}
	}
}

func TestDeclarationOrderIndependent(t *testing.T) {
	src := `
const a = b * 2;
const b: u32 = c + 1;
const c = 3;
`
	res := mustCheck(t, src)
	if got := render(t, res, "a"); got != "u32 = 8u" {
		t.Fatalf("a: got %s", got)
	}
	if len(res.Decls) != 3 || res.Decls[0].Name != "a" {
		t.Fatalf("decls out of source order: %+v", res.Decls)
	}
}

func TestStructsAndAliases(t *testing.T) {
	src := `
alias V2 = vec2<f32>;
struct S { a: i32, b: V2, }
const s = S(1, V2(0.5));
const y = s.b.y;
const z = S(2, vec2(1.0)).a;
const_assert s.a == 1i;
`
	res := mustCheck(t, src)
	if got := render(t, res, "y"); got != "f32 = 0.5f" {
		t.Fatalf("y: got %s", got)
	}
	if got := render(t, res, "z"); got != "i32 = 2i" {
		t.Fatalf("z: got %s", got)
	}
	if got := render(t, res, "s"); got != "S = S(1i, vec2<f32>(0.5f, 0.5f))" {
		t.Fatalf("s: got %s", got)
	}
	if len(res.Structs) != 1 || res.Asserts != 1 {
		t.Fatalf("structs=%d asserts=%d", len(res.Structs), res.Asserts)
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"const x = y;", diag.SemaUnresolvedSymbol},
		{"const x = vec3;", diag.SemaUnresolvedSymbol},
		{"const x = foo(1);", diag.SemaUnresolvedSymbol},
		{"const x = 1;\nconst x = 2;", diag.SemaDuplicateSymbol},
		{"struct S { a: i32, a: u32, }", diag.SemaDuplicateSymbol},
		{"const x: u32 = 1i;", diag.SemaTypeMismatch},
		{"const x: i32 = 1.5;", diag.SemaTypeMismatch},
		{"const x = 1i + 1u;", diag.SemaInvalidBinaryOperands},
		{"const x = true + 1;", diag.SemaInvalidBinaryOperands},
		{"const x = -1u;", diag.SemaInvalidUnaryOperand},
		{"const x = !1;", diag.SemaInvalidUnaryOperand},
		{"const x = vec2(1, 2) + vec3(1, 2, 3);", diag.SemaInvalidBinaryOperands},
		{"const x = sqrt(1i);", diag.SemaNoOverload},
		{"const x = vec3<f32>(1, 2);", diag.SemaNoOverload},
		{"const x = cross(vec2(1.0), vec2(1.0));", diag.SemaNoOverload},
		{"const x = bitcast<u32>(1h);", diag.SemaNoOverload},
		{"const x = sqrt(1, 2);", diag.SemaWrongArgCount},
		{"const x = 1[0];", diag.SemaInvalidIndex},
		{"const x = vec2(1, 2)[1.0];", diag.SemaInvalidIndex},
		{"const x = vec2(1, 2).z;", diag.SemaInvalidMember},
		{"const x = vec4(1).xg;", diag.SemaInvalidMember},
		{"struct S { a: i32, }\nconst x = S(1).b;", diag.SemaInvalidMember},
		{"const x = array<i32, 0>();", diag.SynBadArraySize},
		{"const x: vec2<S> = 1;", diag.SemaUnknownType},
		{"const x: mat2x2<i32> = mat2x2<i32>();", diag.SemaTypeMismatch},
		{"const a = b;\nconst b = a;", diag.SemaDeclCycle},
		{"struct S { s: S, }", diag.SemaDeclCycle},
		{"const x = 2147483648i;", diag.ConstOverflow},
		{"const x = 2147483647i + 1i;", diag.ConstOverflow},
		{"const x = 1i / 0i;", diag.ConstDivByZero},
		{"const x = vec2(1, 2)[2];", diag.ConstIndexOutOfBounds},
		{"const_assert 1 > 2;", diag.ConstAssertFailed},
		{"const_assert 1;", diag.SemaTypeMismatch},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			expectCode(t, tt.input, tt.code)
		})
	}
}

func TestCycleReportedOnce(t *testing.T) {
	_, bag := checkSource(t, "const a = b;\nconst b = c;\nconst c = a;", eval.Options{})
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.SemaDeclCycle {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d cycle diagnostics: %s", count, diagnosticsSummary(bag))
	}
}

func TestFailedDeclKeepsGoing(t *testing.T) {
	res, bag := checkSource(t, "const a = 1i / 0i;\nconst b = 2;", eval.Options{})
	if !bag.HasErrors() {
		t.Fatalf("expected an error")
	}
	if got := render(t, res, "a"); got != "<failed>" {
		t.Fatalf("a: got %s", got)
	}
	if got := render(t, res, "b"); got != "abstract-int = 2" {
		t.Fatalf("b: got %s", got)
	}
}

func TestRuntimeSemanticsWarns(t *testing.T) {
	res, bag := checkSource(t, "const a = 1i / 0i;", eval.Options{RuntimeSemantics: true})
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("got %s", diagnosticsSummary(bag))
	}
	if got := render(t, res, "a"); got != "i32 = 1i" {
		t.Fatalf("a: got %s", got)
	}
}

func TestShortCircuitStillTypeChecks(t *testing.T) {
	expectCode(t, "const x = true || 1;", diag.SemaInvalidBinaryOperands)
}

func TestCheckExpr(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(10)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})

	declFile := fs.Get(fs.AddVirtual("decls.wgsl", []byte("const k = 4u;")))
	parsed := parser.ParseFile(lexer.New(declFile, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	exprFile := fs.Get(fs.AddVirtual("expr", []byte("k * 2")))
	expr, ok := parser.ParseExpr(lexer.New(exprFile, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if !ok {
		t.Fatalf("parse failed: %s", diagnosticsSummary(bag))
	}

	decl, ok := CheckExpr(b, parsed.File, expr, Options{Reporter: rep})
	if !ok || bag.Len() != 0 {
		t.Fatalf("check failed: %s", diagnosticsSummary(bag))
	}
	if got := constant.ScalarValue(decl.Value).String(); got != "8" {
		t.Fatalf("got %s", got)
	}
}

func TestEveryBuiltinHasRule(t *testing.T) {
	for _, name := range eval.BuiltinNames() {
		if _, ok := builtinRules[name]; !ok {
			t.Errorf("builtin %s has no overload rule", name)
		}
	}
	for name := range builtinRules {
		if _, ok := eval.Builtin(name); !ok {
			t.Errorf("rule %s has no builtin", name)
		}
	}
}
