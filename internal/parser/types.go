package parser

import (
	"strings"

	"tint/internal/ast"
	"tint/internal/diag"
	"tint/internal/token"
)

// isTemplateName reports the predeclared names that take a template list.
func isTemplateName(name string) bool {
	switch name {
	case "vec2", "vec3", "vec4", "array", "bitcast":
		return true
	}
	if rest, ok := strings.CutPrefix(name, "mat"); ok && len(rest) == 3 {
		return rest[0] >= '2' && rest[0] <= '4' && rest[1] == 'x' && rest[2] >= '2' && rest[2] <= '4'
	}
	return false
}

func (p *Parser) parseType() (ast.TypeID, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectType, "expected type, got "+p.peek().Kind.String())
	if !ok {
		return ast.NoTypeID, false
	}
	return p.parseTypeAfterName(nameTok)
}

// parseTypeAfterName parses the optional template list of an already
// consumed name. The second argument of array is its element count.
func (p *Parser) parseTypeAfterName(nameTok token.Token) (ast.TypeID, bool) {
	te := ast.TypeExpr{Name: nameTok.Text, NameSpan: nameTok.Span, Span: nameTok.Span}
	if !p.at(token.Lt) {
		return p.arenas.Types.New(te), true
	}
	p.advance()

	for first := true; ; first = false {
		if p.at(token.Gt) || p.at(token.Shr) {
			break
		}
		if !first {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' or '>' in template list"); !ok {
				return ast.NoTypeID, false
			}
			if p.at(token.Gt) || p.at(token.Shr) {
				break
			}
		}
		if te.Name == "array" && len(te.Args) == 1 {
			size, ok := p.parseBinaryExpr(precAdditive)
			if !ok {
				return ast.NoTypeID, false
			}
			te.Size = size
			continue
		}
		arg, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		te.Args = append(te.Args, arg)
	}

	closeTok, ok := p.closeTemplate()
	if !ok {
		return ast.NoTypeID, false
	}
	if len(te.Args) == 0 {
		p.report(diag.SynExpectType, diag.SevError, nameTok.Span.Cover(closeTok.Span), "empty template list for "+te.Name)
		return ast.NoTypeID, false
	}
	if te.Name == "array" && !te.Size.IsValid() {
		p.report(diag.SynBadArraySize, diag.SevError, nameTok.Span.Cover(closeTok.Span), "array element count is required")
		return ast.NoTypeID, false
	}
	te.Span = nameTok.Span.Cover(closeTok.Span)
	return p.arenas.Types.New(te), true
}
