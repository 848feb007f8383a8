package parser

import (
	"tint/internal/ast"
	"tint/internal/diag"
	"tint/internal/token"
)

// parseConstItem parses `const name [: type] = expr;`.
func (p *Parser) parseConstItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	item := ast.ConstItem{Name: name.Text, NameSpan: name.Span}
	if p.at(token.Colon) {
		p.advance()
		if item.Type, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in const declaration"); !ok {
		return ast.NoItemID, false
	}
	if item.Value, ok = p.parseExpr(); !ok {
		return ast.NoItemID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after const declaration")
	if !ok {
		return ast.NoItemID, false
	}
	item.Span = kw.Span.Cover(semi.Span)
	return p.arenas.Items.NewConst(item), true
}

// parseConstAssertItem parses `const_assert expr;`.
func (p *Parser) parseConstAssertItem() (ast.ItemID, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoItemID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after const_assert")
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewConstAssert(ast.ConstAssertItem{Cond: cond, Span: kw.Span.Cover(semi.Span)}), true
}

// parseStructItem parses `struct Name { member: type, ... }`.
func (p *Parser) parseStructItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after struct name"); !ok {
		return ast.NoItemID, false
	}
	item := ast.StructItem{Name: name.Text, NameSpan: name.Span}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after member name"); !ok {
			return ast.NoItemID, false
		}
		ty, ok := p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
		item.Fields = append(item.Fields, ast.StructField{Name: field.Text, Type: ty, Span: field.Span.Cover(p.lastSpan)})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close struct "+name.Text)
	if !ok {
		return ast.NoItemID, false
	}
	item.Span = kw.Span.Cover(closeTok.Span)
	if p.at(token.Semicolon) {
		p.advance()
	}
	return p.arenas.Items.NewStruct(item), true
}

// parseAliasItem parses `alias Name = type;`.
func (p *Parser) parseAliasItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in alias declaration"); !ok {
		return ast.NoItemID, false
	}
	target, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after alias declaration")
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewAlias(ast.AliasItem{
		Name:     name.Text,
		NameSpan: name.Span,
		Target:   target,
		Span:     kw.Span.Cover(semi.Span),
	}), true
}
