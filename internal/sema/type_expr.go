package sema

import (
	"strings"

	"tint/internal/ast"
	"tint/internal/diag"
	"tint/internal/eval"
	"tint/internal/source"
	"tint/internal/types"
)

func (tc *typeChecker) exprSpan(id ast.ExprID) source.Span {
	if node := tc.builder.Exprs.Get(id); node != nil {
		return node.Span
	}
	return source.Span{}
}

// expr types and evaluates an expression. A false result means a diagnostic
// has been reported.
func (tc *typeChecker) expr(id ast.ExprID) (operand, bool) {
	node := tc.builder.Exprs.Get(id)
	if node == nil {
		return operand{}, false
	}
	switch node.Kind {
	case ast.ExprIdent:
		data, _ := tc.builder.Exprs.Ident(id)
		return tc.identExpr(data.Name, node.Span)
	case ast.ExprLit:
		data, _ := tc.builder.Exprs.Literal(id)
		return tc.literal(data, node.Span)
	case ast.ExprGroup:
		data, _ := tc.builder.Exprs.Group(id)
		return tc.expr(data.Inner)
	case ast.ExprUnary:
		data, _ := tc.builder.Exprs.Unary(id)
		return tc.unaryExpr(data, node.Span)
	case ast.ExprBinary:
		data, _ := tc.builder.Exprs.Binary(id)
		return tc.binaryExpr(data, node.Span)
	case ast.ExprCall:
		data, _ := tc.builder.Exprs.Call(id)
		return tc.callExpr(data, node.Span)
	case ast.ExprIndex:
		data, _ := tc.builder.Exprs.Index(id)
		return tc.indexExpr(data, node.Span)
	case ast.ExprMember:
		data, _ := tc.builder.Exprs.Member(id)
		return tc.memberExpr(data)
	}
	return operand{}, false
}

func (tc *typeChecker) identExpr(name string, span source.Span) (operand, bool) {
	sym, ok := tc.symbols[name]
	if !ok {
		if tc.isPredeclared(name) {
			tc.report(diag.SemaUnresolvedSymbol, span, "'%s' cannot be used as a value", name)
		} else {
			tc.report(diag.SemaUnresolvedSymbol, span, "unresolved identifier '%s'", name)
		}
		return operand{}, false
	}
	if sym.kind != symConst {
		tc.report(diag.SemaUnresolvedSymbol, span, "type '%s' cannot be used as a value", name)
		return operand{}, false
	}
	return tc.constValue(sym)
}

// isPredeclared reports whether name is a predeclared type or function.
func (tc *typeChecker) isPredeclared(name string) bool {
	if _, ok := tc.scalarType(name); ok {
		return true
	}
	if _, ok := parseTypeName(name); ok {
		return true
	}
	if _, ok := eval.Builtin(name); ok {
		return true
	}
	return name == "bitcast"
}

func (tc *typeChecker) indexExpr(data *ast.ExprIndexData, span source.Span) (operand, bool) {
	target, okTarget := tc.expr(data.Target)
	idx, okIdx := tc.expr(data.Index)
	if !okTarget || !okIdx {
		return operand{}, false
	}
	switch tc.types.Kind(target.ty) {
	case types.KindVector, types.KindMatrix, types.KindArray:
	default:
		tc.report(diag.SemaInvalidIndex, tc.exprSpan(data.Target),
			"cannot index a value of type '%s'", tc.types.Name(target.ty))
		return operand{}, false
	}
	if !tc.types.IsScalar(idx.ty) || !tc.types.IsInteger(idx.ty) {
		tc.report(diag.SemaInvalidIndex, tc.exprSpan(data.Index),
			"index must be an integer, found '%s'", tc.types.Name(idx.ty))
		return operand{}, false
	}
	v, err := tc.evaluator().Index(target.val, idx.val, span)
	if err != nil {
		return operand{}, false
	}
	elem, _ := tc.types.Elements(target.ty)
	return operand{ty: elem, val: v}, true
}

func (tc *typeChecker) memberExpr(data *ast.ExprMemberData) (operand, bool) {
	target, ok := tc.expr(data.Target)
	if !ok {
		return operand{}, false
	}
	switch tc.types.Kind(target.ty) {
	case types.KindStruct:
		for i, m := range tc.types.Members(target.ty) {
			if m.Name != data.Field {
				continue
			}
			v, err := tc.evaluator().MemberAccess(target.val, i)
			if err != nil {
				return operand{}, false
			}
			return operand{ty: m.Type, val: v}, true
		}
	case types.KindVector:
		elem, width := tc.types.Elements(target.ty)
		indices, ok := swizzleIndices(data.Field, width)
		if !ok {
			tc.report(diag.SemaInvalidMember, data.FieldSpan,
				"invalid vector swizzle '%s' on '%s'", data.Field, tc.types.Name(target.ty))
			return operand{}, false
		}
		ty := elem
		if len(indices) > 1 {
			ty = tc.types.Vec(elem, len(indices))
		}
		v, err := tc.evaluator().Swizzle(ty, target.val, indices)
		if err != nil {
			return operand{}, false
		}
		return operand{ty: ty, val: v}, true
	}
	tc.report(diag.SemaInvalidMember, data.FieldSpan,
		"type '%s' has no member '%s'", tc.types.Name(target.ty), data.Field)
	return operand{}, false
}

// swizzleIndices decodes a swizzle of one to four components taken from a
// single set, xyzw or rgba.
func swizzleIndices(field string, width int) ([]int, bool) {
	if len(field) == 0 || len(field) > 4 {
		return nil, false
	}
	for _, set := range [...]string{"xyzw", "rgba"} {
		indices := make([]int, 0, len(field))
		for i := 0; i < len(field); i++ {
			idx := strings.IndexByte(set, field[i])
			if idx < 0 || idx >= width {
				break
			}
			indices = append(indices, idx)
		}
		if len(indices) == len(field) {
			return indices, true
		}
	}
	return nil, false
}
