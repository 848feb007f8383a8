package parser

import (
	"tint/internal/ast"
	"tint/internal/token"
)

// Binary operator precedence; higher binds tighter.
const (
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precBitwiseOr      = 3 // |
	precBitwiseXor     = 4 // ^
	precBitwiseAnd     = 5 // &
	precRelational     = 6 // == != < <= > >=
	precShift          = 7 // << >>
	precAdditive       = 8 // + -
	precMultiplicative = 9 // * / %
)

var binaryOps = map[token.Kind]struct {
	prec int
	op   ast.ExprBinaryOp
}{
	token.OrOr:    {precLogicalOr, ast.ExprBinaryLogicalOr},
	token.AndAnd:  {precLogicalAnd, ast.ExprBinaryLogicalAnd},
	token.Pipe:    {precBitwiseOr, ast.ExprBinaryBitOr},
	token.Caret:   {precBitwiseXor, ast.ExprBinaryBitXor},
	token.Amp:     {precBitwiseAnd, ast.ExprBinaryBitAnd},
	token.EqEq:    {precRelational, ast.ExprBinaryEq},
	token.BangEq:  {precRelational, ast.ExprBinaryNotEq},
	token.Lt:      {precRelational, ast.ExprBinaryLess},
	token.LtEq:    {precRelational, ast.ExprBinaryLessEq},
	token.Gt:      {precRelational, ast.ExprBinaryGreater},
	token.GtEq:    {precRelational, ast.ExprBinaryGreaterEq},
	token.Shl:     {precShift, ast.ExprBinaryShiftLeft},
	token.Shr:     {precShift, ast.ExprBinaryShiftRight},
	token.Plus:    {precAdditive, ast.ExprBinaryAdd},
	token.Minus:   {precAdditive, ast.ExprBinarySub},
	token.Star:    {precMultiplicative, ast.ExprBinaryMul},
	token.Slash:   {precMultiplicative, ast.ExprBinaryDiv},
	token.Percent: {precMultiplicative, ast.ExprBinaryMod},
}

// binaryOperator returns the precedence and operator for kind, or -1.
func binaryOperator(kind token.Kind) (int, ast.ExprBinaryOp) {
	if o, ok := binaryOps[kind]; ok {
		return o.prec, o.op
	}
	return -1, 0
}

func unaryOperator(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.ExprUnaryMinus, true
	case token.Bang:
		return ast.ExprUnaryNot, true
	case token.Tilde:
		return ast.ExprUnaryComplement, true
	default:
		return 0, false
	}
}
