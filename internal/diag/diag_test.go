package diag

import (
	"testing"

	"tint/internal/source"
)

func TestReportBuilderAppendAndEmit(t *testing.T) {
	bag := NewBag(8)
	r := BagReporter{Bag: bag}

	b := ReportError(r, ConstOverflow, source.Span{}, "'1 + 2'")
	b.Append(" cannot be represented as ").Appendf("'%s'", "i32")
	b.WithNote(source.Span{Start: 1, End: 2}, "while evaluating")
	if bag.Len() != 0 {
		t.Fatalf("nothing must reach the bag before Emit")
	}
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Message != "'1 + 2' cannot be represented as 'i32'" {
		t.Errorf("unexpected message %q", d.Message)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "while evaluating" {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
	if !bag.HasErrors() {
		t.Errorf("expected HasErrors")
	}
}

func TestBagLimitAndMerge(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(New(SevWarning, ConstDomain, source.Span{}, "a")) {
		t.Fatalf("first add must succeed")
	}
	if bag.Add(New(SevWarning, ConstDomain, source.Span{}, "b")) {
		t.Fatalf("second add must be rejected")
	}
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("severity queries wrong")
	}

	other := NewBag(2)
	other.Add(NewError(ConstOverflow, source.Span{}, "c"))
	other.Add(NewError(ConstOverflow, source.Span{}, "d"))
	bag.Merge(other)
	if bag.Len() != 3 {
		t.Fatalf("merge must grow the bag, got %d", bag.Len())
	}
}

func TestBagSortDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(ConstOverflow, source.Span{Start: 5, End: 6}, "x"))
	bag.Add(New(SevWarning, ConstOverflow, source.Span{Start: 1, End: 2}, "y"))
	bag.Add(New(SevWarning, ConstOverflow, source.Span{Start: 1, End: 2}, "y"))
	bag.Sort()
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
	if bag.Items()[0].Message != "y" {
		t.Errorf("expected earliest span first, got %q", bag.Items()[0].Message)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for _i := 0; _i < 3; _i++ {
		r.Report(ConstDivByZero, SevError, source.Span{Start: 3, End: 4}, "integer division by zero is invalid", nil)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected duplicates to be dropped, got %d", bag.Len())
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.wgsl", []byte("const a = 1;\nconst b = a / 0;\n"))
	diags := []Diagnostic{
		NewError(ConstDivByZero, source.Span{File: id, Start: 23, End: 28}, "integer division by zero is invalid").
			WithNote(source.Span{File: id, Start: 6, End: 7}, "a declared here"),
		New(SevWarning, ConstOverflow, source.Span{File: id, Start: 0, End: 5}, "first\nline"),
	}
	want := "warning CST4001 mem.wgsl:1:1 first line\n" +
		"note CST4002 mem.wgsl:1:7 a declared here\n" +
		"error CST4002 mem.wgsl:2:11 integer division by zero is invalid"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		SynUnexpectedToken: "SYN2001",
		SemaNoOverload:     "SEM3004",
		ConstOverflow:      "CST4001",
		UnknownCode:        "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d: got %s, want %s", code, got, want)
		}
	}
}

func TestSeverityNames(t *testing.T) {
	cases := []struct {
		sev         Severity
		name, label string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
	}
	for _, tc := range cases {
		if tc.sev.String() != tc.name || tc.sev.Label() != tc.label {
			t.Errorf("severity %d = %q/%q, want %q/%q", tc.sev, tc.sev.String(), tc.sev.Label(), tc.name, tc.label)
		}
	}
}
