package fuzztests

import (
	"testing"

	"tint/internal/diag"
	"tint/internal/lexer"
	"tint/internal/source"
	"tint/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.wgsl", input))
		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		var last uint32
		for {
			tok := lx.Next()
			if tok.Span.Start < last || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %s has span %v after offset %d", tok.Kind, tok.Span, last)
			}
			last = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
		}
	})
}
