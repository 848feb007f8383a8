package lexer

import (
	"tint/internal/diag"
	"tint/internal/token"
)

// scanNumber scans WGSL numeric literals:
//
//	123  123i  123u  0x7Fu
//	1.5  .5  1.  1e3  1.5e-3f  2h  1f
//	0x1.8p1  0x1p-2h  0x.8p0
//
// The suffix stays in Text. "1.x" lexes as the integer 1 followed by a member
// access.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		return lx.scanHexNumber()
	}

	kind := token.IntLit
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && lx.fractionFollows() {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.cursor.EatAny("+-")
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "expected digit after exponent")
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	switch {
	case lx.cursor.EatAny("fh"):
		kind = token.FloatLit
	case kind == token.IntLit && lx.cursor.EatAny("iu"):
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if kind == token.IntLit && len(text) > 1 && text[0] == '0' && isDec(text[1]) {
		return lx.badNumber(start, "leading zeros are not allowed in integer literals")
	}
	if isIdentContinueByte(lx.cursor.Peek()) {
		return lx.badNumber(start, "invalid suffix on numeric literal")
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (lx *Lexer) scanHexNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // 0
	lx.cursor.Bump() // x

	kind := token.IntLit
	digits := 0
	for isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
		digits++
	}
	if lx.cursor.Peek() == '.' {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
	}
	if digits == 0 {
		return lx.badNumber(start, "expected hexadecimal digit")
	}
	if lx.cursor.Peek() == 'p' || lx.cursor.Peek() == 'P' {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.cursor.EatAny("+-")
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "expected digit after exponent")
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.cursor.EatAny("fh")
	} else if kind == token.IntLit {
		lx.cursor.EatAny("iu")
	}

	if isIdentContinueByte(lx.cursor.Peek()) {
		return lx.badNumber(start, "invalid suffix on numeric literal")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// badNumber reports a malformed literal, skipping the rest of it.
func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	for isIdentContinueByte(lx.cursor.Peek()) || lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// fractionFollows reports whether the '.' at the cursor continues a float
// literal rather than starting a member access.
func (lx *Lexer) fractionFollows() bool {
	b := lx.cursor.PeekAt(1)
	switch {
	case b == 'e' || b == 'E':
		n := lx.cursor.PeekAt(2)
		if n == '+' || n == '-' {
			n = lx.cursor.PeekAt(3)
		}
		return isDec(n)
	case b == 'f' || b == 'h':
		return !isIdentContinueByte(lx.cursor.PeekAt(2))
	}
	return !isIdentStartByte(b)
}
