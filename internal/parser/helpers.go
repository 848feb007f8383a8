package parser

import (
	"tint/internal/diag"
	"tint/internal/source"
	"tint/internal/token"
)

// advance consumes the next token and remembers its span.
func (p *Parser) advance() token.Token {
	var tok token.Token
	if p.split != nil {
		tok = *p.split
		p.split = nil
	} else {
		tok = p.lx.Next()
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// closeTemplate consumes a '>' that ends a template list. A '>>' is split so
// that its second half closes the enclosing list.
func (p *Parser) closeTemplate() (token.Token, bool) {
	if p.at(token.Gt) {
		return p.advance(), true
	}
	if p.split == nil && p.at(token.Shr) {
		tok := p.lx.Next()
		first := token.Token{Kind: token.Gt, Span: source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + 1}, Text: ">", Leading: tok.Leading}
		p.split = &token.Token{Kind: token.Gt, Span: source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End}, Text: ">"}
		p.lastSpan = first.Span
		return first, true
	}
	sp := p.diagnosticSpan()
	p.report(diag.SynUnclosedDelimiter, diag.SevError, sp, "expected '>' to close template list")
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// diagnosticSpan points past the last consumed token when the input ended.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports code.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.peek().Text}, false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}
