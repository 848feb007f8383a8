package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"tint/internal/diag"
	"tint/internal/source"
)

func divByZeroBag(t *testing.T, fs *source.FileSet, fileID source.FileID) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.ConstDivByZero, source.Span{File: fileID, Start: 10, End: 17}, "integer division by zero")
	bag.Add(d.WithNote(source.Span{File: fileID, Start: 15, End: 17}, "divisor is zero"))
	return bag
}

func TestPrettyExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte("const x = 1i / 0i;\n"))
	bag := divByZeroBag(t, fs, fileID)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"test.wgsl:1:11: ERROR CST4002: integer division by zero",
		"1 | const x = 1i / 0i;",
		"  |           ^~~~~~~",
		"note: test.wgsl:1:16: divisor is zero",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrettyHidesNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte("const x = 1i / 0i;\n"))
	var buf bytes.Buffer
	Pretty(&buf, divByZeroBag(t, fs, fileID), fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.Add("/home/user/project/src/test.wgsl", []byte("const x = 1i / 0i;\n"), 0)
	bag := divByZeroBag(t, fs, fileID)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.wgsl:1:11"},
		{"relative", PathModeRelative, "src/test.wgsl:1:11"},
		{"basename", PathModeBasename, "test.wgsl:1:11"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("expected %q, got:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestPrettyPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()
	long := "/very/long/absolute/path/to/some/nested/directory/file.wgsl"
	fileID := fs.AddVirtual(long, []byte("const x = 1i / 0i;\n"))
	var buf bytes.Buffer
	Pretty(&buf, divByZeroBag(t, fs, fileID), fs, PrettyOpts{PathMode: PathModeAuto})
	out := buf.String()
	if !strings.HasPrefix(out, "file.wgsl:1:11") {
		t.Fatalf("long absolute path not shortened:\n%s", out)
	}
}

func TestPrettyTimingsWithoutExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.wgsl", []byte("const a = 1;\n"))
	bag := diag.NewBag(2)
	span := source.Span{File: fileID}
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, span, "timings (file): total 1.00 ms").WithNote(span, `{"kind":"file"}`))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()
	if strings.Contains(out, "const a") {
		t.Fatalf("timings printed a source excerpt:\n%s", out)
	}
	if !strings.Contains(out, `note: {"kind":"file"}`) {
		t.Fatalf("timings payload missing:\n%s", out)
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte("const x = 1i / 0i;\n"))
	var buf bytes.Buffer
	if err := Short(&buf, divByZeroBag(t, fs, fileID), fs, false); err != nil {
		t.Fatal(err)
	}
	want := "error CST4002 test.wgsl:1:11 integer division by zero\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
