package sema

import (
	"math"
	"strconv"
	"strings"

	"tint/internal/ast"
	"tint/internal/diag"
	"tint/internal/number"
	"tint/internal/source"
)

// literal types a literal from its suffix: none is abstract, i/u pick the
// 32-bit integers and f/h the concrete floats.
func (tc *typeChecker) literal(lit *ast.ExprLiteralData, span source.Span) (operand, bool) {
	var (
		n  number.Number
		ok bool
	)
	switch lit.Kind {
	case ast.ExprLitTrue:
		n, ok = number.Bool(true), true
	case ast.ExprLitFalse:
		n, ok = number.Bool(false), true
	case ast.ExprLitInt:
		n, ok = tc.intLiteral(lit.Value, span)
	case ast.ExprLitFloat:
		n, ok = tc.floatLiteral(lit.Value, span)
	}
	if !ok {
		return operand{}, false
	}
	v := tc.values.Number(n)
	return operand{ty: v.Type(), val: v}, true
}

func (tc *typeChecker) intLiteral(text string, span source.Span) (number.Number, bool) {
	kind := number.KindAbstractInt
	switch {
	case strings.HasSuffix(text, "i"):
		kind, text = number.KindI32, text[:len(text)-1]
	case strings.HasSuffix(text, "u"):
		kind, text = number.KindU32, text[:len(text)-1]
	}
	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil || v > math.MaxInt64 {
		tc.literalOverflow(text, kind, span)
		return nil, false
	}
	n, err := number.Convert(number.AInt(v), kind)
	if err != nil {
		tc.literalOverflow(text, kind, span)
		return nil, false
	}
	return n, true
}

func (tc *typeChecker) floatLiteral(text string, span source.Span) (number.Number, bool) {
	kind := number.KindAbstractFloat
	body := text
	hex := strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X")
	// hex digits include f, so a hex float only has a suffix after its exponent
	if !hex || strings.ContainsAny(text, "pP") {
		switch {
		case strings.HasSuffix(text, "f"):
			kind, body = number.KindF32, text[:len(text)-1]
		case strings.HasSuffix(text, "h"):
			kind, body = number.KindF16, text[:len(text)-1]
		}
	}
	if hex && !strings.ContainsAny(body, "pP") {
		body += "p0"
	}
	f, err := strconv.ParseFloat(body, 64)
	if err != nil {
		tc.literalOverflow(text, kind, span)
		return nil, false
	}
	n, err := number.Convert(number.AFloat(f), kind)
	if err != nil {
		tc.literalOverflow(text, kind, span)
		return nil, false
	}
	return n, true
}

func (tc *typeChecker) literalOverflow(text string, kind number.Kind, span source.Span) {
	tc.report(diag.ConstOverflow, span, "value %s cannot be represented as '%s'", text, kind)
}
