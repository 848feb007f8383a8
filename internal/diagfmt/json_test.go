package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"tint/internal/diag"
	"tint/internal/source"
)

func decodeOutput(t *testing.T, buf *bytes.Buffer) DiagnosticsOutput {
	t.Helper()
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	return output
}

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte("const x = 1i / 0i;\n"))

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}
	if err := JSON(&buf, divByZeroBag(t, fs, fileID), fs, opts); err != nil {
		t.Fatal(err)
	}
	output := decodeOutput(t, &buf)
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics", output.Count)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "CST4002" {
		t.Errorf("got %s %s", d.Severity, d.Code)
	}
	loc := d.Location
	if loc.File != "test.wgsl" || loc.StartByte != 10 || loc.EndByte != 17 {
		t.Errorf("unexpected location %+v", loc)
	}
	if loc.StartLine != 1 || loc.StartCol != 11 || loc.EndCol != 18 {
		t.Errorf("unexpected position %+v", loc)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "divisor is zero" {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
}

func TestJSONWithoutPositionsAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte("const x = 1i / 0i;\n"))

	var buf bytes.Buffer
	if err := JSON(&buf, divByZeroBag(t, fs, fileID), fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	d := decodeOutput(t, &buf).Diagnostics[0]
	if d.Location.StartLine != 0 || d.Location.StartCol != 0 {
		t.Errorf("positions included: %+v", d.Location)
	}
	if len(d.Notes) != 0 {
		t.Errorf("notes included: %+v", d.Notes)
	}
}

func TestJSONTimingsKeepNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.wgsl", nil)
	bag := diag.NewBag(1)
	span := source.Span{File: fileID}
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, span, "timings").WithNote(span, "{}"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if d := decodeOutput(t, &buf).Diagnostics[0]; len(d.Notes) != 1 {
		t.Fatalf("timings note dropped: %+v", d)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte("const a = 1;\nconst b = 2;\n"))
	bag := diag.NewBag(10)
	for i := uint32(0); i < 5; i++ {
		bag.Add(diag.New(diag.SevWarning, diag.SemaTypeMismatch, source.Span{File: fileID, Start: i, End: i + 1}, "w"))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 3}); err != nil {
		t.Fatal(err)
	}
	if got := decodeOutput(t, &buf).Count; got != 3 {
		t.Fatalf("got %d diagnostics, want 3", got)
	}
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(1), source.NewFileSet(), JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	output := decodeOutput(t, &buf)
	if output.Count != 0 || output.Diagnostics == nil {
		t.Fatalf("got %+v", output)
	}
}
