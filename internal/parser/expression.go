package parser

import (
	"tint/internal/ast"
	"tint/internal/diag"
	"tint/internal/token"
)

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr is precedence climbing over binaryOps. All operators are
// left associative.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		prec, op := binaryOperator(p.peek().Kind)
		if prec < 0 || prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(sp, op, left, right)
	}
}

func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	if op, ok := unaryOperator(p.peek().Kind); ok {
		opTok := p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		sp := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewUnary(sp, op, operand), true
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr handles indexing and member access after a primary.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.peek().Kind {
		case token.LBracket:
			p.advance()
			idx, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after index")
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Get(expr).Span.Cover(closeTok.Span)
			expr = p.arenas.Exprs.NewIndex(sp, expr, idx)
		case token.Dot:
			p.advance()
			field, ok := p.parseIdent()
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Get(expr).Span.Cover(field.Span)
			expr = p.arenas.Exprs.NewMember(sp, expr, field.Text, field.Span)
		default:
			return expr, true
		}
	}
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitInt, tok.Text), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitFloat, tok.Text), true
	case token.KwTrue:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitTrue, tok.Text), true
	case token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitFalse, tok.Text), true
	case token.LParen:
		return p.parseGroupExpr()
	case token.Ident:
		return p.parseIdentOrCall()
	case token.Invalid:
		// already reported by the lexer
		p.advance()
		return ast.NoExprID, false
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+tok.Kind.String())
		return ast.NoExprID, false
	}
}

func (p *Parser) parseGroupExpr() (ast.ExprID, bool) {
	open := p.advance()
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewGroup(open.Span.Cover(closeTok.Span), inner), true
}

// parseIdentOrCall parses `name`, `name(args)` and `name<T, ...>(args)`.
// Only names that take template lists are followed by one, so `a < b` stays a
// comparison.
func (p *Parser) parseIdentOrCall() (ast.ExprID, bool) {
	nameTok := p.advance()
	if !p.atOr(token.LParen, token.Lt) || (p.at(token.Lt) && !isTemplateName(nameTok.Text)) {
		return p.arenas.Exprs.NewIdent(nameTok.Span, nameTok.Text), true
	}

	target, ok := p.parseTypeAfterName(nameTok)
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after "+nameTok.Text+" template list"); !ok {
		return ast.NoExprID, false
	}
	args, closeTok, ok := p.parseArgs()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(nameTok.Span.Cover(closeTok.Span), target, args), true
}

// parseArgs parses a comma separated list after '(' up to and including ')'.
// A trailing comma is allowed.
func (p *Parser) parseArgs() ([]ast.ExprID, token.Token, bool) {
	var args []ast.ExprID
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, token.Token{}, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after arguments")
	return args, closeTok, ok
}
