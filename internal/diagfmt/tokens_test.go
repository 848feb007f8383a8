package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tint/internal/diag"
	"tint/internal/lexer"
	"tint/internal/source"
	"tint/internal/token"
)

func lexAll(t *testing.T, fs *source.FileSet, src string) []token.Token {
	t.Helper()
	file := fs.Get(fs.AddVirtual("t.wgsl", []byte(src)))
	lx := lexer.New(file, lexer.Options{Reporter: diag.NopReporter{}})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	toks := lexAll(t, fs, "// c\nconst a = 1u;")

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("got %d lines for %d tokens:\n%s", len(lines), len(toks), buf.String())
	}
	if !strings.Contains(lines[0], "at 2:1-2:6") || !strings.Contains(lines[0], "line_comment") {
		t.Fatalf("first token: %s", lines[0])
	}
	if !strings.Contains(buf.String(), `"1u"`) {
		t.Fatalf("literal text missing:\n%s", buf.String())
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	toks := lexAll(t, fs, "const a = 1;")

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(toks) || out[len(out)-1].Kind != token.EOF.String() {
		t.Fatalf("got %+v", out)
	}
}
