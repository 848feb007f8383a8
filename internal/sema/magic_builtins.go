package sema

import (
	"tint/internal/number"
	"tint/internal/types"
)

// builtinRule resolves the overload of a builtin function from its argument
// types: the parameter types the arguments are materialized to and the
// result type.
type builtinRule struct {
	arity   int
	resolve func(tc *typeChecker, args []types.TypeID) (params []types.TypeID, result types.TypeID, ok bool)
}

func repeat(t types.TypeID, n int) []types.TypeID {
	out := make([]types.TypeID, n)
	for i := range out {
		out[i] = t
	}
	return out
}

// same is T f(T, ..., T).
func same(arity int, set scalarSet, shapes shapeSet) builtinRule {
	return builtinRule{arity, func(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
		t, ok := tc.unifyArgs(args, set, shapes)
		if !ok {
			return nil, types.NoTypeID, false
		}
		return repeat(t, arity), t, true
	}}
}

// reduce is S f(T, ..., T) where S is the element type of T.
func reduce(arity int, set scalarSet, shapes shapeSet) builtinRule {
	return builtinRule{arity, func(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
		t, ok := tc.unifyArgs(args, set, shapes)
		if !ok {
			return nil, types.NoTypeID, false
		}
		return repeat(t, arity), tc.types.DeepestElement(t), true
	}}
}

// fixed is a builtin with a single concrete signature.
func fixed(arity int, sig func(in *types.Interner, b types.Builtins) ([]types.TypeID, types.TypeID)) builtinRule {
	return builtinRule{arity, func(tc *typeChecker, _ []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
		params, result := sig(tc.types, tc.types.Builtins())
		return params, result, true
	}}
}

func packRule(elem number.Kind, width int) builtinRule {
	return fixed(1, func(in *types.Interner, b types.Builtins) ([]types.TypeID, types.TypeID) {
		return []types.TypeID{in.Vec(in.Scalar(elem), width)}, b.U32
	})
}

func unpackRule(elem number.Kind, width int) builtinRule {
	return fixed(1, func(in *types.Interner, b types.Builtins) ([]types.TypeID, types.TypeID) {
		return []types.TypeID{b.U32}, in.Vec(in.Scalar(elem), width)
	})
}

func dotPackedRule(result number.Kind) builtinRule {
	return fixed(2, func(in *types.Interner, b types.Builtins) ([]types.TypeID, types.TypeID) {
		return []types.TypeID{b.U32, b.U32}, in.Scalar(result)
	})
}

var builtinRules = map[string]builtinRule{}

func init() {
	floatUnary := same(1, setFloat, shapeScalarOrVector)
	for _, name := range []string{
		"acos", "acosh", "asin", "asinh", "atan", "atanh", "ceil", "cos", "cosh",
		"degrees", "exp", "exp2", "floor", "fract", "inverseSqrt", "log", "log2",
		"radians", "round", "saturate", "sin", "sinh", "sqrt", "tan", "tanh", "trunc",
	} {
		builtinRules[name] = floatUnary
	}
	bitsUnary := same(1, setConcreteInt, shapeScalarOrVector)
	for _, name := range []string{
		"countLeadingZeros", "countOneBits", "countTrailingZeros",
		"firstLeadingBit", "firstTrailingBit", "reverseBits",
	} {
		builtinRules[name] = bitsUnary
	}

	builtinRules["quantizeToF16"] = same(1, setF32, shapeScalarOrVector)
	builtinRules["normalize"] = same(1, setFloat, shapeVector)
	builtinRules["abs"] = same(1, setNumeric, shapeScalarOrVector)
	builtinRules["sign"] = same(1, setSigned, shapeScalarOrVector)
	builtinRules["atan2"] = same(2, setFloat, shapeScalarOrVector)
	builtinRules["pow"] = same(2, setFloat, shapeScalarOrVector)
	builtinRules["step"] = same(2, setFloat, shapeScalarOrVector)
	builtinRules["max"] = same(2, setNumeric, shapeScalarOrVector)
	builtinRules["min"] = same(2, setNumeric, shapeScalarOrVector)
	builtinRules["reflect"] = same(2, setFloat, shapeVector)
	builtinRules["clamp"] = same(3, setNumeric, shapeScalarOrVector)
	builtinRules["fma"] = same(3, setFloat, shapeScalarOrVector)
	builtinRules["smoothstep"] = same(3, setFloat, shapeScalarOrVector)
	builtinRules["faceForward"] = same(3, setFloat, shapeVector)

	builtinRules["length"] = reduce(1, setFloat, shapeScalarOrVector)
	builtinRules["distance"] = reduce(2, setFloat, shapeScalarOrVector)
	builtinRules["dot"] = reduce(2, setNumeric, shapeVector)

	builtinRules["extractBits"] = builtinRule{3, extractBitsRule}
	builtinRules["insertBits"] = builtinRule{4, insertBitsRule}
	builtinRules["cross"] = builtinRule{2, crossRule}
	builtinRules["determinant"] = builtinRule{1, determinantRule}
	builtinRules["transpose"] = builtinRule{1, transposeRule}
	builtinRules["all"] = builtinRule{1, boolReduceRule}
	builtinRules["any"] = builtinRule{1, boolReduceRule}
	builtinRules["select"] = builtinRule{3, selectRule}
	builtinRules["frexp"] = builtinRule{1, resultStructRule((*types.Interner).FrexpResult)}
	builtinRules["modf"] = builtinRule{1, resultStructRule((*types.Interner).ModfResult)}
	builtinRules["ldexp"] = builtinRule{2, ldexpRule}
	builtinRules["mix"] = builtinRule{3, mixRule}
	builtinRules["refract"] = builtinRule{3, refractRule}

	builtinRules["pack4x8snorm"] = packRule(number.KindF32, 4)
	builtinRules["pack4x8unorm"] = packRule(number.KindF32, 4)
	builtinRules["pack2x16snorm"] = packRule(number.KindF32, 2)
	builtinRules["pack2x16unorm"] = packRule(number.KindF32, 2)
	builtinRules["pack2x16float"] = packRule(number.KindF32, 2)
	builtinRules["pack4xI8"] = packRule(number.KindI32, 4)
	builtinRules["pack4xI8Clamp"] = packRule(number.KindI32, 4)
	builtinRules["pack4xU8"] = packRule(number.KindU32, 4)
	builtinRules["pack4xU8Clamp"] = packRule(number.KindU32, 4)
	builtinRules["unpack4x8snorm"] = unpackRule(number.KindF32, 4)
	builtinRules["unpack4x8unorm"] = unpackRule(number.KindF32, 4)
	builtinRules["unpack2x16snorm"] = unpackRule(number.KindF32, 2)
	builtinRules["unpack2x16unorm"] = unpackRule(number.KindF32, 2)
	builtinRules["unpack2x16float"] = unpackRule(number.KindF32, 2)
	builtinRules["unpack4xI8"] = unpackRule(number.KindI32, 4)
	builtinRules["unpack4xU8"] = unpackRule(number.KindU32, 4)
	builtinRules["dot4I8Packed"] = dotPackedRule(number.KindI32)
	builtinRules["dot4U8Packed"] = dotPackedRule(number.KindU32)
}

func fail() ([]types.TypeID, types.TypeID, bool) { return nil, types.NoTypeID, false }

func extractBitsRule(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	t, ok := tc.unifyArgs(args[:1], setConcreteInt, shapeScalarOrVector)
	if !ok {
		return fail()
	}
	u := tc.types.Builtins().U32
	return []types.TypeID{t, u, u}, t, true
}

func insertBitsRule(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	t, ok := tc.unifyArgs(args[:2], setConcreteInt, shapeScalarOrVector)
	if !ok {
		return fail()
	}
	u := tc.types.Builtins().U32
	return []types.TypeID{t, t, u, u}, t, true
}

func crossRule(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	t, ok := tc.unifyArgs(args, setFloat, shapeVector)
	if !ok {
		return fail()
	}
	if _, n := tc.types.Elements(t); n != 3 {
		return fail()
	}
	return []types.TypeID{t, t}, t, true
}

// matrixArg fits the element of a matrix argument to a float type.
func (tc *typeChecker) matrixArg(t types.TypeID) (elem types.TypeID, cols, rows int, ok bool) {
	if tc.shapeOf(t) != shapeMatrix {
		return types.NoTypeID, 0, 0, false
	}
	elem, ok = tc.fit(tc.types.DeepestElement(t), setFloat)
	cols, rows = tc.matrixDims(t)
	return elem, cols, rows, ok
}

func determinantRule(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	s, cols, rows, ok := tc.matrixArg(args[0])
	if !ok || cols != rows {
		return fail()
	}
	return []types.TypeID{tc.types.MatOf(s, cols, rows)}, s, true
}

func transposeRule(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	s, cols, rows, ok := tc.matrixArg(args[0])
	if !ok {
		return fail()
	}
	return []types.TypeID{tc.types.MatOf(s, cols, rows)}, tc.types.MatOf(s, rows, cols), true
}

func boolReduceRule(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	t := args[0]
	if tc.shapeOf(t)&shapeScalarOrVector == 0 || tc.types.ScalarKind(t) != number.KindBool {
		return fail()
	}
	return []types.TypeID{t}, tc.types.Builtins().Bool, true
}

// selectRule is T select(f: T, t: T, cond: bool) with a per-component
// vecN<bool> condition allowed for vector T.
func selectRule(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	t, ok := tc.unifyArgs(args[:2], setAny, shapeScalarOrVector)
	if !ok {
		return fail()
	}
	cond := args[2]
	switch {
	case cond == tc.types.Builtins().Bool:
	case tc.shapeOf(t) == shapeVector && tc.shapeKey(cond) == tc.shapeKey(t) && tc.types.IsBool(cond):
	default:
		return fail()
	}
	return []types.TypeID{t, t, cond}, t, true
}

func resultStructRule(result func(*types.Interner, types.TypeID) types.TypeID) func(*typeChecker, []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	return func(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
		t, ok := tc.unifyArgs(args, setFloat, shapeScalarOrVector)
		if !ok {
			return fail()
		}
		return []types.TypeID{t}, result(tc.types, t), true
	}
}

// ldexpRule keeps an abstract e1 abstract only while e2 is abstract too;
// a concrete i32 exponent materializes e1 to f32.
func ldexpRule(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	t, ok := tc.unifyArgs(args[:1], setFloat, shapeScalarOrVector)
	if !ok || tc.shapeKey(args[1]) != tc.shapeKey(t) {
		return fail()
	}
	b := tc.types.Builtins()
	switch tc.types.ScalarKind(args[1]) {
	case number.KindAbstractInt:
		if tc.types.IsAbstract(t) {
			return []types.TypeID{t, args[1]}, t, true
		}
	case number.KindI32:
		if tc.types.IsAbstract(t) {
			t = tc.types.WithScalar(t, b.F32)
		}
	default:
		return fail()
	}
	return []types.TypeID{t, tc.types.WithScalar(t, b.I32)}, t, true
}

// mixRule accepts a scalar blend factor with vector operands.
func mixRule(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	if tc.shapeOf(args[0]) != shapeVector || tc.shapeOf(args[2]) != shapeScalar {
		return same(3, setFloat, shapeScalarOrVector).resolve(tc, args)
	}
	return vectorsWithScalar(tc, args)
}

func refractRule(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	if tc.shapeOf(args[0]) != shapeVector || tc.shapeOf(args[2]) != shapeScalar {
		return fail()
	}
	return vectorsWithScalar(tc, args)
}

// vectorsWithScalar is T f(T, T, S) for a float vector T with element S.
func vectorsWithScalar(tc *typeChecker, args []types.TypeID) ([]types.TypeID, types.TypeID, bool) {
	if tc.shapeKey(args[0]) != tc.shapeKey(args[1]) {
		return fail()
	}
	s, ok := tc.commonElem(args, setFloat)
	if !ok {
		return fail()
	}
	t := tc.types.WithScalar(args[0], s)
	return []types.TypeID{t, t, s}, t, true
}
