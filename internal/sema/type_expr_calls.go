package sema

import (
	"strings"

	"tint/internal/ast"
	"tint/internal/diag"
	"tint/internal/eval"
	"tint/internal/number"
	"tint/internal/source"
	"tint/internal/types"
)

// callExpr handles type constructors, bitcast and builtin function calls.
func (tc *typeChecker) callExpr(data *ast.ExprCallData, span source.Span) (operand, bool) {
	te := tc.builder.Types.Get(data.Target)
	if te == nil {
		return operand{}, false
	}
	args, spans, ok := tc.callArgs(data.Args)
	if !ok {
		return operand{}, false
	}

	if sym, declared := tc.symbols[te.Name]; declared {
		if sym.kind == symConst {
			tc.report(diag.SemaUnresolvedSymbol, te.NameSpan, "'%s' is not callable", te.Name)
			return operand{}, false
		}
		ty, ok := tc.resolveType(data.Target)
		if !ok {
			return operand{}, false
		}
		return tc.construct(ty, args, spans, span)
	}
	if te.Name == "bitcast" {
		return tc.bitcast(te, args, spans, span)
	}
	if _, isScalar := tc.scalarType(te.Name); isScalar {
		ty, ok := tc.resolveType(data.Target)
		if !ok {
			return operand{}, false
		}
		return tc.construct(ty, args, spans, span)
	}
	if info, isType := parseTypeName(te.Name); isType {
		if te.Templated() || info.elem != number.KindInvalid {
			ty, ok := tc.resolveType(data.Target)
			if !ok {
				return operand{}, false
			}
			return tc.construct(ty, args, spans, span)
		}
		return tc.inferConstruct(te.Name, info, args, spans, span)
	}
	if m, isBuiltin := eval.Builtin(te.Name); isBuiltin {
		if te.Templated() {
			tc.report(diag.SemaNoOverload, te.Span, "builtin '%s' does not take template arguments", te.Name)
			return operand{}, false
		}
		return tc.builtinCall(te.Name, m, args, spans, span)
	}
	tc.report(diag.SemaUnresolvedSymbol, te.NameSpan, "unresolved function '%s'", te.Name)
	return operand{}, false
}

// callArgs evaluates every argument, so that all of their diagnostics are
// reported.
func (tc *typeChecker) callArgs(ids []ast.ExprID) ([]operand, []source.Span, bool) {
	args := make([]operand, len(ids))
	spans := make([]source.Span, len(ids))
	ok := true
	for i, id := range ids {
		var argOK bool
		args[i], argOK = tc.expr(id)
		spans[i] = tc.exprSpan(id)
		ok = ok && argOK
	}
	return args, spans, ok
}

func typesOf(args []operand) []types.TypeID {
	tys := make([]types.TypeID, len(args))
	for i, a := range args {
		tys[i] = a.ty
	}
	return tys
}

func (tc *typeChecker) reportNoCall(name string, args []operand, span source.Span) {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = tc.types.Name(a.ty)
	}
	tc.report(diag.SemaNoOverload, span, "no matching call to '%s(%s)'", name, strings.Join(names, ", "))
}

func (tc *typeChecker) builtinCall(name string, m eval.Method, args []operand, spans []source.Span, span source.Span) (operand, bool) {
	rule, ok := builtinRules[name]
	if !ok {
		panic("sema: no overload rule for builtin " + name)
	}
	if len(args) != rule.arity {
		tc.report(diag.SemaWrongArgCount, span, "'%s' expects %d arguments, got %d", name, rule.arity, len(args))
		return operand{}, false
	}
	tys := typesOf(args)
	params, result, ok := rule.resolve(tc, tys)
	for i := 0; ok && i < len(tys); i++ {
		ok = tc.convertible(tys[i], params[i])
	}
	if !ok {
		tc.reportNoCall(name, args, span)
		return operand{}, false
	}
	return tc.invoke(overload{method: m, params: params, result: result}, args, spans, span)
}

// bitcast reinterprets a 32-bit scalar or a vector with the same total width.
// Abstract arguments are materialized to i32 or f32 first.
func (tc *typeChecker) bitcast(te *ast.TypeExpr, args []operand, spans []source.Span, span source.Span) (operand, bool) {
	if len(te.Args) != 1 || te.Size.IsValid() {
		tc.report(diag.SemaUnknownType, te.Span, "bitcast requires a single template argument")
		return operand{}, false
	}
	ty, ok := tc.resolveType(te.Args[0])
	if !ok {
		return operand{}, false
	}
	if len(args) != 1 {
		tc.report(diag.SemaWrongArgCount, span, "'bitcast' expects 1 argument, got %d", len(args))
		return operand{}, false
	}
	b := tc.types.Builtins()
	from := args[0].ty
	switch tc.types.ScalarKind(from) {
	case number.KindAbstractInt:
		from = tc.types.WithScalar(from, b.I32)
	case number.KindAbstractFloat:
		from = tc.types.WithScalar(from, b.F32)
	}
	fromBits, okFrom := tc.bitcastWidth(from)
	toBits, okTo := tc.bitcastWidth(ty)
	if !okFrom || !okTo || fromBits != toBits {
		tc.report(diag.SemaNoOverload, span, "cannot bitcast from '%s' to '%s'",
			tc.types.Name(args[0].ty), tc.types.Name(ty))
		return operand{}, false
	}
	ov := overload{method: (*eval.Eval).Bitcast, params: []types.TypeID{from}, result: ty}
	return tc.invoke(ov, args, spans, span)
}

// bitcastWidth returns the width in bits of a type bitcast accepts: i32, u32
// and f32 scalars, and vectors of those or of f16.
func (tc *typeChecker) bitcastWidth(t types.TypeID) (int, bool) {
	n := 1
	elem := t
	if tc.types.Kind(t) == types.KindVector {
		elem, n = tc.types.Elements(t)
	} else if tc.types.Kind(t) == types.KindF16 {
		return 0, false
	}
	switch tc.types.Kind(elem) {
	case types.KindI32, types.KindU32, types.KindF32:
		return 32 * n, true
	case types.KindF16:
		return 16 * n, true
	}
	return 0, false
}
