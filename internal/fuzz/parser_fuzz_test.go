package fuzztests

import (
	"context"
	"testing"
	"time"

	"tint/internal/ast"
	"tint/internal/diag"
	"tint/internal/driver"
	"tint/internal/lexer"
	"tint/internal/parser"
	"tint/internal/source"
)

// runTimeout bounds a single input; exceeding it indicates a loop in error
// recovery or in the evaluator.
const runTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.wgsl", input))
		reporter := diag.BagReporter{Bag: diag.NewBag(128)}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		_ = parser.ParseFile(lx, ast.NewBuilder(ast.Hints{}), parser.Options{Reporter: reporter, MaxErrors: 128})
	})
}

// FuzzEvalNoHang runs the whole pipeline, evaluation included.
func FuzzEvalNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("const a = b; const b = a;"))
	f.Add([]byte("const a = array<i32, 65536>();"))
	f.Add([]byte("const x = 1 << 63;"))
	f.Add([]byte("const v = vec4(vec2(1), vec2(2.0)).wzyx;"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = driver.EvalSource(context.Background(), "fuzz.wgsl", input, driver.Options{MaxDiagnostics: 128})
		}()

		select {
		case <-done:
		case <-time.After(runTimeout):
			t.Fatalf("evaluation took longer than %v\ninput (%d bytes): %q",
				runTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
