package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"tint/internal/driver"
)

func evalSources(t *testing.T, sources ...string) []*driver.Result {
	t.Helper()
	var results []*driver.Result
	for i, src := range sources {
		name := string(rune('a'+i)) + ".wgsl"
		results = append(results, driver.EvalSource(context.Background(), name, []byte(src), driver.Options{}))
	}
	return results
}

func TestWriteDeclsSingleFile(t *testing.T) {
	results := evalSources(t, "const a = 1 + 2;\nconst b = 1i / 0i;\n")
	var buf bytes.Buffer
	if err := writeDecls(&buf, results, "pretty"); err != nil {
		t.Fatal(err)
	}
	want := "a: abstract-int = 3\nb: <error>\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteDeclsSeveralFiles(t *testing.T) {
	results := evalSources(t, "const a = 1u;", "const b = true;")

	var pretty bytes.Buffer
	if err := writeDecls(&pretty, results, "pretty"); err != nil {
		t.Fatal(err)
	}
	want := "a.wgsl:\n  a: u32 = 1u\n\nb.wgsl:\n  b: bool = true\n"
	if pretty.String() != want {
		t.Fatalf("pretty: got %q, want %q", pretty.String(), want)
	}

	var short bytes.Buffer
	if err := writeDecls(&short, results, "short"); err != nil {
		t.Fatal(err)
	}
	want = "a.wgsl: a: u32 = 1u\nb.wgsl: b: bool = true\n"
	if short.String() != want {
		t.Fatalf("short: got %q, want %q", short.String(), want)
	}
}

func TestWriteJSON(t *testing.T) {
	results := evalSources(t, "const a = 2.0f;\nconst b = 1i / 0i;\n")
	var buf bytes.Buffer
	if err := writeJSON(&buf, results, true); err != nil {
		t.Fatal(err)
	}
	var out outputJSON
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Errors != 1 || len(out.Files) != 1 {
		t.Fatalf("got %+v", out)
	}
	f := out.Files[0]
	if len(f.Decls) != 2 || f.Decls[0].Value != "2.0f" || f.Decls[1].Line != 2 {
		t.Fatalf("decls: %+v", f.Decls)
	}
	if len(f.Diagnostics) != 1 || f.Diagnostics[0].Code != "CST4002" {
		t.Fatalf("diagnostics: %+v", f.Diagnostics)
	}
}

func TestWriteDiagnosticsShort(t *testing.T) {
	results := evalSources(t, "const b = 1i / 0i;")
	var buf bytes.Buffer
	if err := writeDiagnostics(&buf, results, "short", false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "error CST4002 a.wgsl:1:11 ") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestSummary(t *testing.T) {
	if got := summary(1, 0, 2); got != "1 file checked: 0 errors, 2 warnings" {
		t.Fatalf("got %q", got)
	}
}
