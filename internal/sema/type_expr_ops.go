package sema

import (
	"tint/internal/ast"
	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/eval"
	"tint/internal/number"
	"tint/internal/source"
	"tint/internal/types"
)

// overload is a resolved operator or builtin: the evaluator method, the
// types its arguments are materialized to and the result type.
type overload struct {
	method eval.Method
	params []types.TypeID
	result types.TypeID
}

var arithmeticMethods = map[ast.ExprBinaryOp]eval.Method{
	ast.ExprBinaryAdd: (*eval.Eval).OpPlus,
	ast.ExprBinarySub: (*eval.Eval).OpMinus,
	ast.ExprBinaryMul: (*eval.Eval).OpMultiply,
	ast.ExprBinaryDiv: (*eval.Eval).OpDivide,
	ast.ExprBinaryMod: (*eval.Eval).OpModulo,
}

var comparisonMethods = map[ast.ExprBinaryOp]eval.Method{
	ast.ExprBinaryEq:        (*eval.Eval).OpEqual,
	ast.ExprBinaryNotEq:     (*eval.Eval).OpNotEqual,
	ast.ExprBinaryLess:      (*eval.Eval).OpLessThan,
	ast.ExprBinaryLessEq:    (*eval.Eval).OpLessThanEqual,
	ast.ExprBinaryGreater:   (*eval.Eval).OpGreaterThan,
	ast.ExprBinaryGreaterEq: (*eval.Eval).OpGreaterThanEqual,
}

var bitwiseMethods = map[ast.ExprBinaryOp]eval.Method{
	ast.ExprBinaryBitAnd: (*eval.Eval).OpAnd,
	ast.ExprBinaryBitOr:  (*eval.Eval).OpOr,
	ast.ExprBinaryBitXor: (*eval.Eval).OpXor,
}

// apply runs m and wraps the result.
func (tc *typeChecker) apply(m eval.Method, ty types.TypeID, args []constant.Value, span source.Span) (operand, bool) {
	v, err := tc.evaluator().Call(m, ty, args, span)
	if err != nil || v == nil {
		return operand{}, false
	}
	return operand{ty: ty, val: v}, true
}

// invoke materializes args to the parameters of ov and applies it.
func (tc *typeChecker) invoke(ov overload, args []operand, spans []source.Span, span source.Span) (operand, bool) {
	vals := make([]constant.Value, len(args))
	for i, arg := range args {
		conv, ok := tc.materialize(arg, ov.params[i], spans[i])
		if !ok {
			return operand{}, false
		}
		vals[i] = conv.val
	}
	return tc.apply(ov.method, ov.result, vals, span)
}

func (tc *typeChecker) unaryExpr(data *ast.ExprUnaryData, span source.Span) (operand, bool) {
	op, ok := tc.expr(data.Operand)
	if !ok {
		return operand{}, false
	}
	var (
		set scalarSet
		m   eval.Method
	)
	switch data.Op {
	case ast.ExprUnaryMinus:
		set, m = setSigned, (*eval.Eval).UnaryMinus
	case ast.ExprUnaryNot:
		set, m = allowBool, (*eval.Eval).Not
	case ast.ExprUnaryComplement:
		set, m = setInt, (*eval.Eval).Complement
	}
	ty, ok := tc.unifyArgs([]types.TypeID{op.ty}, set, shapeScalarOrVector)
	if !ok {
		tc.report(diag.SemaInvalidUnaryOperand, span,
			"no matching overload for 'operator %s (%s)'", data.Op, tc.types.Name(op.ty))
		return operand{}, false
	}
	ov := overload{method: m, params: []types.TypeID{ty}, result: ty}
	return tc.invoke(ov, []operand{op}, []source.Span{tc.exprSpan(data.Operand)}, span)
}

func (tc *typeChecker) binaryExpr(data *ast.ExprBinaryData, span source.Span) (operand, bool) {
	if data.Op == ast.ExprBinaryLogicalAnd || data.Op == ast.ExprBinaryLogicalOr {
		return tc.logicalExpr(data, span)
	}
	l, okL := tc.expr(data.Left)
	r, okR := tc.expr(data.Right)
	if !okL || !okR {
		return operand{}, false
	}
	ov, ok := tc.binaryOverload(data.Op, l.ty, r.ty)
	if !ok {
		tc.report(diag.SemaInvalidBinaryOperands, span, "no matching overload for 'operator %s (%s, %s)'",
			data.Op, tc.types.Name(l.ty), tc.types.Name(r.ty))
		return operand{}, false
	}
	spans := []source.Span{tc.exprSpan(data.Left), tc.exprSpan(data.Right)}
	return tc.invoke(ov, []operand{l, r}, spans, span)
}

// logicalExpr evaluates && and ||. When the left operand decides the
// result, the right one is still type checked but its evaluation failures
// are not reported.
func (tc *typeChecker) logicalExpr(data *ast.ExprBinaryData, span source.Span) (operand, bool) {
	l, ok := tc.expr(data.Left)
	if !ok {
		return operand{}, false
	}
	boolTy := tc.types.Builtins().Bool
	short := false
	if l.ty == boolTy {
		b := bool(constant.ScalarValue(l.val).(number.Bool))
		short = b == (data.Op == ast.ExprBinaryLogicalOr)
	}
	if short {
		tc.skipping++
	}
	r, ok := tc.expr(data.Right)
	if short {
		tc.skipping--
	}
	if !ok {
		return operand{}, false
	}
	if l.ty != boolTy || r.ty != boolTy {
		tc.report(diag.SemaInvalidBinaryOperands, span, "no matching overload for 'operator %s (%s, %s)'",
			data.Op, tc.types.Name(l.ty), tc.types.Name(r.ty))
		return operand{}, false
	}
	if short {
		return l, true
	}
	m := (*eval.Eval).OpLogicalAnd
	if data.Op == ast.ExprBinaryLogicalOr {
		m = (*eval.Eval).OpLogicalOr
	}
	return tc.apply(m, boolTy, []constant.Value{l.val, r.val}, span)
}

func (tc *typeChecker) binaryOverload(op ast.ExprBinaryOp, l, r types.TypeID) (overload, bool) {
	if m, ok := arithmeticMethods[op]; ok {
		if tc.shapeOf(l) == shapeMatrix || tc.shapeOf(r) == shapeMatrix {
			return tc.matrixOverload(op, l, r)
		}
		return tc.arithmeticOverload(m, l, r)
	}
	if m, ok := comparisonMethods[op]; ok {
		set := setNumeric
		if op == ast.ExprBinaryEq || op == ast.ExprBinaryNotEq {
			set = setAny
		}
		t, ok := tc.unifyArgs([]types.TypeID{l, r}, set, shapeScalarOrVector)
		if !ok {
			return overload{}, false
		}
		return overload{m, []types.TypeID{t, t}, tc.types.WithScalar(t, tc.types.Builtins().Bool)}, true
	}
	if m, ok := bitwiseMethods[op]; ok {
		t, ok := tc.unifyArgs([]types.TypeID{l, r}, setIntBool, shapeScalarOrVector)
		if !ok {
			return overload{}, false
		}
		return overload{m, []types.TypeID{t, t}, t}, true
	}
	switch op {
	case ast.ExprBinaryShiftLeft:
		return tc.shiftOverload((*eval.Eval).OpShiftLeft, l, r)
	case ast.ExprBinaryShiftRight:
		return tc.shiftOverload((*eval.Eval).OpShiftRight, l, r)
	}
	return overload{}, false
}

// arithmeticOverload covers scalar and vector operands, including the mixed
// vector-scalar forms.
func (tc *typeChecker) arithmeticOverload(m eval.Method, l, r types.TypeID) (overload, bool) {
	ls, rs := tc.shapeOf(l), tc.shapeOf(r)
	if ls&shapeScalarOrVector == 0 || rs&shapeScalarOrVector == 0 {
		return overload{}, false
	}
	if ls == shapeVector && rs == shapeVector && tc.shapeKey(l) != tc.shapeKey(r) {
		return overload{}, false
	}
	s, ok := tc.commonElem([]types.TypeID{l, r}, setNumeric)
	if !ok {
		return overload{}, false
	}
	lt, rt := tc.types.WithScalar(l, s), tc.types.WithScalar(r, s)
	result := lt
	if rs == shapeVector {
		result = rt
	}
	return overload{m, []types.TypeID{lt, rt}, result}, true
}

func (tc *typeChecker) matrixDims(m types.TypeID) (cols, rows int) {
	column, cols := tc.types.Elements(m)
	_, rows = tc.types.Elements(column)
	return cols, rows
}

func (tc *typeChecker) matrixOverload(op ast.ExprBinaryOp, l, r types.TypeID) (overload, bool) {
	s, ok := tc.commonElem([]types.TypeID{l, r}, setFloat)
	if !ok {
		return overload{}, false
	}
	lt, rt := tc.types.WithScalar(l, s), tc.types.WithScalar(r, s)
	params := []types.TypeID{lt, rt}
	ls, rs := tc.shapeOf(l), tc.shapeOf(r)
	switch {
	case op == ast.ExprBinaryAdd && ls == rs && tc.shapeKey(l) == tc.shapeKey(r):
		return overload{(*eval.Eval).OpPlus, params, lt}, true
	case op == ast.ExprBinarySub && ls == rs && tc.shapeKey(l) == tc.shapeKey(r):
		return overload{(*eval.Eval).OpMinus, params, lt}, true
	case op != ast.ExprBinaryMul:
		return overload{}, false
	case ls == shapeMatrix && rs == shapeScalar:
		return overload{(*eval.Eval).OpMultiply, params, lt}, true
	case ls == shapeScalar && rs == shapeMatrix:
		return overload{(*eval.Eval).OpMultiply, params, rt}, true
	case ls == shapeMatrix && rs == shapeVector:
		cols, rows := tc.matrixDims(l)
		if _, n := tc.types.Elements(r); n != cols {
			return overload{}, false
		}
		return overload{(*eval.Eval).OpMultiplyMatVec, params, tc.types.Vec(s, rows)}, true
	case ls == shapeVector && rs == shapeMatrix:
		cols, rows := tc.matrixDims(r)
		if _, n := tc.types.Elements(l); n != rows {
			return overload{}, false
		}
		return overload{(*eval.Eval).OpMultiplyVecMat, params, tc.types.Vec(s, cols)}, true
	case ls == shapeMatrix && rs == shapeMatrix:
		lc, lr := tc.matrixDims(l)
		rc, rr := tc.matrixDims(r)
		if lc != rr {
			return overload{}, false
		}
		return overload{(*eval.Eval).OpMultiplyMatMat, params, tc.types.MatOf(s, rc, lr)}, true
	}
	return overload{}, false
}

// shiftOverload keeps the left operand's type; the shift amount is u32 of
// the same shape.
func (tc *typeChecker) shiftOverload(m eval.Method, l, r types.TypeID) (overload, bool) {
	lt, ok := tc.unifyArgs([]types.TypeID{l}, setInt, shapeScalarOrVector)
	if !ok {
		return overload{}, false
	}
	rt := tc.types.WithScalar(l, tc.types.Builtins().U32)
	if !tc.convertible(r, rt) {
		return overload{}, false
	}
	return overload{m, []types.TypeID{lt, rt}, lt}, true
}
