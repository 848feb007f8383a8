package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"tint/internal/diag"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestListWGSLFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.wgsl":         "",
		"a.wgsl":         "",
		"sub/c.wgsl":     "",
		"notes.txt":      "",
		".hidden/d.wgsl": "",
	})
	files, err := ListWGSLFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.wgsl"),
		filepath.Join(dir, "b.wgsl"),
		filepath.Join(dir, "sub", "c.wgsl"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("got %v, want %v", files, want)
		}
	}
}

func TestEvalDirDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"e", "d", "c", "b", "a"} {
		files[name+".wgsl"] = "const " + name + " = 1 + 1;\n"
	}
	writeFiles(t, dir, files)

	sink := &recordingSink{}
	res, err := EvalDir(context.Background(), dir, Options{Jobs: 3, Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 5 {
		t.Fatalf("got %d results", len(res.Files))
	}
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		r := res.Files[i]
		if filepath.Base(r.Path) != name+".wgsl" {
			t.Fatalf("result %d is %s", i, r.Path)
		}
		if len(r.Decls) != 1 || r.Decls[0].Name != name || r.Decls[0].Value != "2" {
			t.Fatalf("%s: got %+v", name, r.Decls)
		}
	}

	done := 0
	for _, ev := range sink.events {
		if ev.File != "" && ev.Stage == StageCheck && ev.Status == StatusDone {
			done++
		}
	}
	if done != 5 {
		t.Fatalf("got %d done events, want 5", done)
	}
}

func TestEvalFilesLoadError(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"ok.wgsl": "const a = 1;"})
	paths := []string{filepath.Join(dir, "missing.wgsl"), filepath.Join(dir, "ok.wgsl")}

	res, err := EvalFiles(context.Background(), dir, paths, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hasCode(res.Files[0].Bag, diag.IOLoadFileError) {
		t.Fatalf("missing file was not reported")
	}
	if res.Files[1].Bag.Len() != 0 || len(res.Files[1].Decls) != 1 {
		t.Fatalf("ok.wgsl: unexpected result")
	}
}

func TestEvalDirCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.wgsl": "const a = 1;"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EvalDir(ctx, dir, Options{}); err == nil {
		t.Fatalf("expected a cancellation error")
	}
}

func TestEvalDirTestdata(t *testing.T) {
	res, err := EvalDir(context.Background(), filepath.Join("..", "..", "testdata"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 3 {
		t.Fatalf("got %d files", len(res.Files))
	}
	for _, r := range res.Files {
		wantErrors := filepath.Base(r.Path) == "errors.wgsl"
		if r.Bag.HasErrors() != wantErrors {
			t.Errorf("%s: HasErrors = %v", r.Path, r.Bag.HasErrors())
		}
	}
	if len(res.Timing.Phases) == 0 {
		t.Errorf("no merged timings")
	}
}
