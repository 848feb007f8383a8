package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[eval]
runtime_semantics = true
jobs = 2

[output]
format = "JSON"

[cache]
enabled = true
dir = "cache"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Eval.RuntimeSemantics || cfg.Eval.Jobs != 2 {
		t.Fatalf("eval section: %+v", cfg.Eval)
	}
	if cfg.Eval.MaxDiagnostics != 100 {
		t.Fatalf("max_diagnostics default lost: %d", cfg.Eval.MaxDiagnostics)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color != "auto" {
		t.Fatalf("output section: %+v", cfg.Output)
	}
	if want := filepath.Join(dir, "cache"); cfg.Cache.Dir != want {
		t.Fatalf("cache dir = %q, want %q", cfg.Cache.Dir, want)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		content string
		want    error
	}{
		{"[output]\nformat = \"xml\"\n", ErrInvalidFormat},
		{"[output]\ncolor = \"sometimes\"\n", ErrInvalidColor},
		{"[eval]\nmax_diagnostics = -1\n", ErrInvalidLimit},
	}
	for _, tt := range tests {
		path := writeConfig(t, t.TempDir(), tt.content)
		if _, err := Load(path); !errors.Is(err, tt.want) {
			t.Errorf("%q: got %v, want %v", tt.content, err, tt.want)
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[eval]\nruntime = true\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "eval.runtime") {
		t.Fatalf("got %v", err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, ok, err := FindRoot(nested)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Fatalf("root = %q, want %q", got, want)
	}
}

func TestWriteDefaultLoadsBack(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefault(dir)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.Path = path
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
	if _, err := WriteDefault(dir); !errors.Is(err, ErrExists) {
		t.Fatalf("second write: %v", err)
	}
}
