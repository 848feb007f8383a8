package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tint/internal/diag"
)

func findDecl(t *testing.T, res *Result, name string) DeclResult {
	t.Helper()
	for _, d := range res.Decls {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("no declaration %q in %s", name, res.Path)
	return DeclResult{}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestEvalSourceValues(t *testing.T) {
	src := "const a = 1 + 2;\nconst b: f32 = a;\nconst c = vec2(a, 4i);\n"
	res := EvalSource(context.Background(), "values.wgsl", []byte(src), Options{})
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", res.Bag.Len())
	}
	if len(res.Decls) != 3 {
		t.Fatalf("got %d declarations, want 3", len(res.Decls))
	}
	tests := []struct {
		name, typ, value string
	}{
		{"a", "abstract-int", "3"},
		{"b", "f32", "3.0f"},
		{"c", "vec2<i32>", "vec2<i32>(3i, 4i)"},
	}
	for _, tt := range tests {
		d := findDecl(t, res, tt.name)
		if d.Type != tt.typ || d.Value != tt.value {
			t.Errorf("%s: got %s = %s, want %s = %s", tt.name, d.Type, d.Value, tt.typ, tt.value)
		}
	}
}

func TestEvalSourceDiagnostics(t *testing.T) {
	res := EvalSource(context.Background(), "bad.wgsl", []byte("const a = 1i / 0i;\nconst b = 2;\n"), Options{})
	if !hasCode(res.Bag, diag.ConstDivByZero) {
		t.Fatalf("expected %s", diag.ConstDivByZero.ID())
	}
	if d := findDecl(t, res, "a"); d.Value != "" {
		t.Fatalf("failed declaration rendered as %q", d.Value)
	}
	if d := findDecl(t, res, "b"); d.Value != "2" {
		t.Fatalf("b: got %q", d.Value)
	}
}

func TestWarningsAsErrors(t *testing.T) {
	src := []byte("const a = 1i / 0i;")
	res := EvalSource(context.Background(), "warn.wgsl", src, Options{RuntimeSemantics: true})
	if res.Bag.HasErrors() || !res.Bag.HasWarnings() {
		t.Fatalf("runtime semantics should only warn")
	}
	res = EvalSource(context.Background(), "warn.wgsl", src, Options{RuntimeSemantics: true, WarningsAsErrors: true})
	if !res.Bag.HasErrors() {
		t.Fatalf("warning was not promoted")
	}
}

func TestEnableTimings(t *testing.T) {
	res := EvalSource(context.Background(), "t.wgsl", []byte("const a = 1;"), Options{EnableTimings: true})
	if !hasCode(res.Bag, diag.ObsTimings) {
		t.Fatalf("no timings diagnostic")
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings {
			if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, `"phases"`) {
				t.Fatalf("unexpected timings note: %+v", d.Notes)
			}
		}
	}
	if len(res.Timing.Phases) == 0 {
		t.Fatalf("no phases recorded")
	}
}

func TestEvalFileMissing(t *testing.T) {
	if _, err := EvalFile(context.Background(), filepath.Join(t.TempDir(), "missing.wgsl"), Options{}); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestEvalExpr(t *testing.T) {
	res, err := EvalExpr(context.Background(), "max(1, 2.5) * 2.0", "", Options{})
	if err != nil {
		t.Fatal(err)
	}
	d := findDecl(t, res, "expr")
	if d.Type != "abstract-float" || d.Value != "5.0" {
		t.Fatalf("got %s = %s", d.Type, d.Value)
	}
}

func TestEvalExprWithDecls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decls.wgsl")
	if err := os.WriteFile(path, []byte("const k = 4u;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := EvalExpr(context.Background(), "k * 2", path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", res.Bag.Len())
	}
	if d := findDecl(t, res, "expr"); d.Value != "8u" {
		t.Fatalf("got %s", d.Value)
	}
}

func TestEvalExprUnresolved(t *testing.T) {
	res, err := EvalExpr(context.Background(), "nope + 1", "", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hasCode(res.Bag, diag.SemaUnresolvedSymbol) {
		t.Fatalf("expected %s", diag.SemaUnresolvedSymbol.ID())
	}
}
