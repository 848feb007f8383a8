// Package parser builds the AST of a WGSL source made of struct, alias,
// const and const_assert declarations.
package parser

import (
	"slices"

	"tint/internal/ast"
	"tint/internal/diag"
	"tint/internal/lexer"
	"tint/internal/source"
	"tint/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state of one file.
type Parser struct {
	lx     *lexer.Lexer
	arenas *ast.Builder
	file   ast.FileID
	opts   Options
	// split holds the second half of a '>>' that closed a nested template
	// list.
	split    *token.Token
	lastSpan source.Span
}

func newParser(lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	return &Parser{
		lx:       lx,
		arenas:   arenas,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
}

// ParseFile parses every declaration of the file behind lx.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := newParser(lx, arenas, opts)
	p.file = arenas.NewFile(lx.EmptySpan())
	p.parseItems()
	return Result{File: p.file, Bag: bagOf(opts.Reporter)}
}

// ParseExpr parses a single expression that must span the whole input.
func ParseExpr(lx *lexer.Lexer, arenas *ast.Builder, opts Options) (ast.ExprID, bool) {
	p := newParser(lx, arenas, opts)
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.EOF) {
		p.err(diag.SynUnexpectedToken, "unexpected "+p.peek().Kind.String()+" after expression")
		return ast.NoExprID, false
	}
	return expr, true
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch br := r.(type) {
	case diag.BagReporter:
		return br.Bag
	case *diag.BagReporter:
		return br.Bag
	}
	return nil
}

func (p *Parser) peek() token.Token {
	if p.split != nil {
		return *p.split
	}
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) parseItems() {
	startSpan := p.peek().Span
	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		p.arenas.PushItem(p.file, itemID)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.peek().Span)
}

// parseItem picks the declaration parser from the leading keyword.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.peek().Kind {
	case token.KwConst:
		return p.parseConstItem()
	case token.KwConstAssert:
		return p.parseConstAssertItem()
	case token.KwStruct:
		return p.parseStructItem()
	case token.KwAlias:
		return p.parseAliasItem()
	case token.Semicolon:
		// stray ';' between declarations is allowed
		p.advance()
		return ast.NoItemID, false
	default:
		p.err(diag.SynUnexpectedToken, "expected declaration, got "+p.peek().Kind.String())
		return ast.NoItemID, false
	}
}

// resyncTop skips to the end of the broken declaration.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon, token.KwConst, token.KwConstAssert, token.KwStruct, token.KwAlias)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

func (p *Parser) parseIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+p.peek().Kind.String())
	return token.Token{}, false
}
