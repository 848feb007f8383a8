package sema

import (
	"tint/internal/number"
	"tint/internal/source"
	"tint/internal/types"
)

// scalarSet is a set of scalar kinds accepted by an operator or builtin.
type scalarSet uint8

const (
	allowAInt scalarSet = 1 << iota
	allowAFloat
	allowBool
	allowI32
	allowU32
	allowF32
	allowF16
)

const (
	setFloat       = allowAFloat | allowF32 | allowF16
	setSigned      = allowAInt | allowI32 | setFloat
	setNumeric     = setSigned | allowU32
	setAny         = setNumeric | allowBool
	setInt         = allowAInt | allowI32 | allowU32
	setIntBool     = setInt | allowBool
	setConcreteInt = allowI32 | allowU32
	setF32         = allowF32
)

func kindBit(k number.Kind) scalarSet {
	switch k {
	case number.KindAbstractInt:
		return allowAInt
	case number.KindAbstractFloat:
		return allowAFloat
	case number.KindBool:
		return allowBool
	case number.KindI32:
		return allowI32
	case number.KindU32:
		return allowU32
	case number.KindF32:
		return allowF32
	case number.KindF16:
		return allowF16
	}
	return 0
}

func (s scalarSet) has(k number.Kind) bool { return s&kindBit(k) != 0 }

// conversionRank lists the automatic conversions of the abstract kinds from
// the most to the least preferred.
var conversionRank = map[number.Kind][]number.Kind{
	number.KindAbstractInt: {
		number.KindI32, number.KindU32, number.KindAbstractFloat, number.KindF32, number.KindF16,
	},
	number.KindAbstractFloat: {number.KindF32, number.KindF16},
}

// canConvertScalar reports whether from converts to to without an explicit
// conversion.
func canConvertScalar(from, to number.Kind) bool {
	switch {
	case from == to:
		return true
	case from == number.KindAbstractInt:
		return to != number.KindBool && to != number.KindInvalid
	case from == number.KindAbstractFloat:
		return to == number.KindF32 || to == number.KindF16
	}
	return false
}

// shapeSet classifies types by their outer structure.
type shapeSet uint8

const (
	shapeScalar shapeSet = 1 << iota
	shapeVector
	shapeMatrix

	shapeScalarOrVector = shapeScalar | shapeVector
)

func (tc *typeChecker) shapeOf(t types.TypeID) shapeSet {
	switch k := tc.types.Kind(t); {
	case k.IsScalar():
		return shapeScalar
	case k == types.KindVector:
		return shapeVector
	case k == types.KindMatrix:
		return shapeMatrix
	}
	return 0
}

// shapeKey erases the scalar of t so that vec3<f32> and vec3<i32> compare
// equal. Structs are their own key.
func (tc *typeChecker) shapeKey(t types.TypeID) types.TypeID {
	return tc.types.WithScalar(t, tc.types.Builtins().Bool)
}

// unifyScalar returns the scalar both a and b convert to, or NoTypeID.
func (tc *typeChecker) unifyScalar(a, b types.TypeID) types.TypeID {
	ka, kb := tc.types.Kind(a).Number(), tc.types.Kind(b).Number()
	switch {
	case a == b:
		return a
	case canConvertScalar(ka, kb):
		return b
	case canConvertScalar(kb, ka):
		return a
	}
	return types.NoTypeID
}

// fit returns s, or the most preferred conversion of s that set accepts.
func (tc *typeChecker) fit(s types.TypeID, set scalarSet) (types.TypeID, bool) {
	k := tc.types.Kind(s).Number()
	if set.has(k) {
		return s, true
	}
	for _, to := range conversionRank[k] {
		if set.has(to) {
			return tc.types.Scalar(to), true
		}
	}
	return types.NoTypeID, false
}

// commonElem unifies the deepest scalars of tys and fits the result into set.
func (tc *typeChecker) commonElem(tys []types.TypeID, set scalarSet) (types.TypeID, bool) {
	var s types.TypeID
	for i, t := range tys {
		el := tc.types.DeepestElement(t)
		if !tc.types.IsScalar(el) {
			return types.NoTypeID, false
		}
		if i == 0 {
			s = el
			continue
		}
		if s = tc.unifyScalar(s, el); s == types.NoTypeID {
			return types.NoTypeID, false
		}
	}
	if s == types.NoTypeID {
		return types.NoTypeID, false
	}
	return tc.fit(s, set)
}

// unifyArgs finds the single type T all of tys convert to. They must share
// one shape from shapes and a scalar from set.
func (tc *typeChecker) unifyArgs(tys []types.TypeID, set scalarSet, shapes shapeSet) (types.TypeID, bool) {
	if len(tys) == 0 || shapes&tc.shapeOf(tys[0]) == 0 {
		return types.NoTypeID, false
	}
	key := tc.shapeKey(tys[0])
	for _, t := range tys[1:] {
		if tc.shapeKey(t) != key {
			return types.NoTypeID, false
		}
	}
	s, ok := tc.commonElem(tys, set)
	if !ok {
		return types.NoTypeID, false
	}
	return tc.types.WithScalar(tys[0], s), true
}

// convertible reports whether a value of type from may be used where to is
// expected.
func (tc *typeChecker) convertible(from, to types.TypeID) bool {
	if from == to {
		return true
	}
	if tc.types.Kind(from) == types.KindStruct || tc.types.Kind(to) == types.KindStruct {
		return false
	}
	if tc.shapeKey(from) != tc.shapeKey(to) {
		return false
	}
	return canConvertScalar(tc.types.ScalarKind(from), tc.types.ScalarKind(to))
}

// materialize converts op to the type to, which must be convertible.
func (tc *typeChecker) materialize(op operand, to types.TypeID, span source.Span) (operand, bool) {
	if op.ty == to {
		return op, true
	}
	v, err := tc.evaluator().Convert(to, op.val, span)
	if err != nil {
		return operand{}, false
	}
	return operand{ty: to, val: v}, true
}
