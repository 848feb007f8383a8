package lexer

import (
	"tint/internal/diag"
	"tint/internal/source"
)

type Options struct {
	// Reporter receives lexical errors. Nil drops them; lexing continues
	// either way.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
