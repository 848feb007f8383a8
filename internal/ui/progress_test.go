package ui

import (
	"strings"
	"testing"
	"time"

	"tint/internal/driver"
)

func TestApplyEventTracksFiles(t *testing.T) {
	files := []string{"/p/a.wgsl", "/p/b.wgsl"}
	m := NewProgressModel("check", "/p", files, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "/p/a.wgsl", Stage: driver.StageCheck, Status: driver.StatusWorking})
	if got := statusLabel(m.items[0].stage, m.items[0].status); got != "checking" {
		t.Fatalf("got %q", got)
	}
	m.applyEvent(driver.Event{File: "/p/a.wgsl", Stage: driver.StageCheck, Status: driver.StatusDone, Elapsed: time.Millisecond})
	m.applyEvent(driver.Event{File: "/p/b.wgsl", Stage: driver.StageCheck, Status: driver.StatusError})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent: got %v", got)
	}
	if m.summary != "2/2, 1 failed" {
		t.Fatalf("summary: got %q", m.summary)
	}

	view := m.View()
	if !strings.Contains(view, "a.wgsl") || strings.Contains(view, "/p/a.wgsl") {
		t.Fatalf("paths not shown relative to base:\n%s", view)
	}
}

func TestApplyEventIgnoresUnknownFile(t *testing.T) {
	m := NewProgressModel("check", "", []string{"a.wgsl"}, nil).(*progressModel)
	if cmd := m.applyEvent(driver.Event{File: "other.wgsl", Status: driver.StatusDone}); cmd != nil {
		t.Fatalf("unexpected command")
	}
	if m.items[0].status != driver.StatusQueued {
		t.Fatalf("status changed: %s", m.items[0].status)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
