package observ

import (
	"strings"
	"testing"
)

func TestReportAddMergesByName(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "check", DurationMS: 2}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "check", DurationMS: 4}, {Name: "cache", DurationMS: 1, Note: "hit"}}}
	a.Add(b)
	if a.TotalMS != 8 || len(a.Phases) != 3 {
		t.Fatalf("got %+v", a)
	}
	if a.Phases[1].DurationMS != 6 || a.Phases[2].Name != "cache" {
		t.Fatalf("phases: %+v", a.Phases)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	tm.End(idx, "items=3")
	tm.End(42, "ignored")
	out := tm.Summary()
	if !strings.Contains(out, "parse") || !strings.Contains(out, "// items=3") || !strings.Contains(out, "total") {
		t.Fatalf("summary:\n%s", out)
	}
}
