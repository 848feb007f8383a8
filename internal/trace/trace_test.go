package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeExpr, false},
		{LevelDebug, ScopeExpr, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestRingKeepsNewest(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeExpr, name, "", 0)
	}
	got := r.Snapshot()
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "c" {
		t.Fatalf("snapshot = %+v", got)
	}
}

func TestSpanNesting(t *testing.T) {
	r := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), r)
	outer := Begin(FromContext(ctx), ScopePass, "check", CurrentSpan(ctx))
	ctx = WithSpan(ctx, outer)
	inner := Begin(FromContext(ctx), ScopeFile, "file:a.wgsl", CurrentSpan(ctx))
	inner.WithExtra("decls", "3").End("")
	outer.End("ok")

	evs := r.Snapshot()
	if len(evs) != 4 {
		t.Fatalf("got %d events", len(evs))
	}
	if evs[1].ParentID != outer.ID() || evs[2].Extra["decls"] != "3" {
		t.Fatalf("unexpected events %+v", evs)
	}
	// expression scope is filtered at detail level
	Point(r, ScopeExpr, "const:x", "", 0)
	if len(r.Snapshot()) != 4 {
		t.Fatalf("expr event must be filtered")
	}
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamTracer(&buf, LevelDebug, FormatText)
	Point(s, ScopeExpr, "const:x", "1i", 0)
	if out := buf.String(); !strings.Contains(out, "const:x (1i)") {
		t.Fatalf("output %q", out)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("got %v, %v", tr, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}
