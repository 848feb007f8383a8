package sema

import (
	"tint/internal/diag"
	"tint/internal/eval"
	"tint/internal/source"
	"tint/internal/types"
)

// construct applies the value constructor of ty. Without arguments it yields
// the zero value.
func (tc *typeChecker) construct(ty types.TypeID, args []operand, spans []source.Span, span source.Span) (operand, bool) {
	if len(args) == 0 {
		return tc.apply((*eval.Eval).Zero, ty, nil, span)
	}
	ov, ok := tc.constructorOverload(ty, typesOf(args))
	if !ok {
		tc.reportNoCall(tc.types.Name(ty), args, span)
		return operand{}, false
	}
	return tc.invoke(ov, args, spans, span)
}

func (tc *typeChecker) constructorOverload(ty types.TypeID, tys []types.TypeID) (overload, bool) {
	switch k := tc.types.Kind(ty); {
	case k.IsScalar():
		// T(e) converts any scalar, bool included
		if len(tys) != 1 || !tc.types.IsScalar(tys[0]) {
			return overload{}, false
		}
		return overload{(*eval.Eval).Conv, tys, ty}, true

	case k == types.KindVector:
		elem, n := tc.types.Elements(ty)
		if len(tys) == 1 {
			a := tys[0]
			switch {
			case tc.types.IsScalar(a) && tc.convertible(a, elem):
				return overload{(*eval.Eval).VecSplat, []types.TypeID{elem}, ty}, true
			case tc.types.Kind(a) == types.KindVector && tc.shapeKey(a) == tc.shapeKey(ty):
				return overload{(*eval.Eval).Conv, tys, ty}, true
			}
			return overload{}, false
		}
		return tc.componentsOverload(ty, elem, n, tys)

	case k == types.KindMatrix:
		cols, rows := tc.matrixDims(ty)
		elem := tc.types.DeepestElement(ty)
		switch {
		case len(tys) == 1 && tc.types.Kind(tys[0]) == types.KindMatrix && tc.shapeKey(tys[0]) == tc.shapeKey(ty):
			return overload{(*eval.Eval).Conv, tys, ty}, true
		case len(tys) == cols*rows:
			return tc.uniformOverload((*eval.Eval).MatInitS, ty, elem, tys)
		case len(tys) == cols:
			return tc.uniformOverload((*eval.Eval).MatInitV, ty, tc.types.Vec(elem, rows), tys)
		}
		return overload{}, false

	case k == types.KindArray:
		elem, n := tc.types.Elements(ty)
		if len(tys) != n {
			return overload{}, false
		}
		return tc.uniformOverload((*eval.Eval).ArrayOrStructInit, ty, elem, tys)

	case k == types.KindStruct:
		members := tc.types.Members(ty)
		if len(tys) != len(members) {
			return overload{}, false
		}
		params := make([]types.TypeID, len(members))
		for i, m := range members {
			if !tc.convertible(tys[i], m.Type) {
				return overload{}, false
			}
			params[i] = m.Type
		}
		return overload{(*eval.Eval).ArrayOrStructInit, params, ty}, true
	}
	return overload{}, false
}

// uniformOverload takes every argument as param.
func (tc *typeChecker) uniformOverload(m eval.Method, ty, param types.TypeID, tys []types.TypeID) (overload, bool) {
	params := make([]types.TypeID, len(tys))
	for i, t := range tys {
		if !tc.convertible(t, param) {
			return overload{}, false
		}
		params[i] = param
	}
	return overload{m, params, ty}, true
}

// componentsOverload builds a vector from scalars and vectors whose
// components add up to its width.
func (tc *typeChecker) componentsOverload(ty, elem types.TypeID, n int, tys []types.TypeID) (overload, bool) {
	params := make([]types.TypeID, len(tys))
	total := 0
	allScalars := true
	for i, t := range tys {
		switch tc.shapeOf(t) {
		case shapeScalar:
			total++
		case shapeVector:
			_, w := tc.types.Elements(t)
			total += w
			allScalars = false
		default:
			return overload{}, false
		}
		params[i] = tc.types.WithScalar(t, elem)
		if !tc.convertible(t, params[i]) {
			return overload{}, false
		}
	}
	if total != n {
		return overload{}, false
	}
	if allScalars {
		return overload{(*eval.Eval).VecInitS, params, ty}, true
	}
	return overload{(*eval.Eval).VecInitM, params, ty}, true
}

// inferConstruct handles vecN(...), matCxR(...) and array(...) without a
// template list. The element type is the common type of the arguments.
func (tc *typeChecker) inferConstruct(name string, info typeNameInfo, args []operand, spans []source.Span, span source.Span) (operand, bool) {
	tys := typesOf(args)
	var (
		ty types.TypeID
		ok bool
	)
	switch info.kind {
	case types.KindVector:
		switch {
		case len(args) == 0:
			return tc.apply((*eval.Eval).Zero, tc.types.Vec(tc.types.Builtins().AbstractInt, info.cols), nil, span)
		case len(args) == 1 && tc.types.Kind(tys[0]) == types.KindVector:
			if _, w := tc.types.Elements(tys[0]); w == info.cols {
				return args[0], true
			}
		default:
			var s types.TypeID
			if s, ok = tc.commonElem(tys, setAny); ok {
				ty = tc.types.Vec(s, info.cols)
			}
		}
	case types.KindMatrix:
		switch {
		case len(args) == 0:
			tc.report(diag.SemaWrongArgCount, span, "'%s' without a template list needs arguments", name)
			return operand{}, false
		case len(args) == 1 && tc.types.Kind(tys[0]) == types.KindMatrix:
			if c, r := tc.matrixDims(tys[0]); c == info.cols && r == info.rows {
				return args[0], true
			}
		default:
			var s types.TypeID
			if s, ok = tc.commonElem(tys, setFloat); ok {
				ty = tc.types.MatOf(s, info.cols, info.rows)
			}
		}
	case types.KindArray:
		if len(args) == 0 {
			tc.report(diag.SemaWrongArgCount, span, "'array' without a template list needs arguments")
			return operand{}, false
		}
		if len(args) > maxArrayCount {
			tc.report(diag.SynBadArraySize, span, "array element count (%d) exceeds the limit of %d", len(args), maxArrayCount)
			return operand{}, false
		}
		var elem types.TypeID
		if elem, ok = tc.arrayElement(tys); ok {
			ty = tc.types.Array(elem, len(args))
		}
	}
	if !ok {
		tc.reportNoCall(name, args, span)
		return operand{}, false
	}
	return tc.construct(ty, args, spans, span)
}

// arrayElement returns the type every element of an inferred array converts
// to.
func (tc *typeChecker) arrayElement(tys []types.TypeID) (types.TypeID, bool) {
	key := tc.shapeKey(tys[0])
	for _, t := range tys[1:] {
		if tc.shapeKey(t) != key {
			return types.NoTypeID, false
		}
	}
	if tc.types.Kind(tc.types.DeepestElement(tys[0])) == types.KindStruct {
		return tys[0], true
	}
	s, ok := tc.commonElem(tys, setAny)
	if !ok {
		return types.NoTypeID, false
	}
	return tc.types.WithScalar(tys[0], s), true
}
