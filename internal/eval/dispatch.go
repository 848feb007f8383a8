package eval

import (
	"fmt"

	"tint/internal/constant"
	"tint/internal/number"
)

// kindSet is a set of number kinds accepted by a dispatch family.
type kindSet uint16

func kinds(ks ...number.Kind) kindSet {
	var s kindSet
	for _, k := range ks {
		s |= 1 << k
	}
	return s
}

func (s kindSet) has(k number.Kind) bool { return s&(1<<k) != 0 }

const (
	kAInt   = number.KindAbstractInt
	kAFloat = number.KindAbstractFloat
	kBool   = number.KindBool
	kI32    = number.KindI32
	kU32    = number.KindU32
	kF32    = number.KindF32
	kF16    = number.KindF16
)

var (
	setIU    = kinds(kI32, kU32)
	setAIU   = kinds(kAInt, kI32, kU32)
	setAIUB  = kinds(kAInt, kI32, kU32, kBool)
	setFIA   = kinds(kAInt, kAFloat, kF32, kI32, kF16)
	setFIAU  = kinds(kAInt, kAFloat, kF32, kI32, kU32, kF16)
	setFIAUB = kinds(kAInt, kAFloat, kF32, kI32, kU32, kF16, kBool)
	setFA    = kinds(kAFloat, kF32, kF16)
	setB     = kinds(kBool)
)

// numFn receives the unwrapped numbers of scalar arguments.
type numFn func(args ...number.Number) (constant.Value, error)

func dispatch(family string, set kindSet, f numFn, vs []constant.Value) (constant.Value, error) {
	args := make([]number.Number, len(vs))
	for i, v := range vs {
		n := num(v)
		if !set.has(n.Kind()) {
			panic(fmt.Sprintf("eval: %s dispatch on %s", family, n.Kind()))
		}
		args[i] = n
	}
	return f(args...)
}

// dispatchIU accepts i32 and u32.
func dispatchIU(f numFn, vs ...constant.Value) (constant.Value, error) {
	return dispatch("iu32", setIU, f, vs)
}

// dispatchAIU accepts abstract-int, i32 and u32.
func dispatchAIU(f numFn, vs ...constant.Value) (constant.Value, error) {
	return dispatch("ia_iu32", setAIU, f, vs)
}

// dispatchAIUB accepts abstract-int, i32, u32 and bool.
func dispatchAIUB(f numFn, vs ...constant.Value) (constant.Value, error) {
	return dispatch("ia_iu32_bool", setAIUB, f, vs)
}

// dispatchFIA accepts the abstract kinds, f32, i32 and f16.
func dispatchFIA(f numFn, vs ...constant.Value) (constant.Value, error) {
	return dispatch("fia_fi32_f16", setFIA, f, vs)
}

// dispatchFIAU accepts the abstract kinds, f32, i32, u32 and f16.
func dispatchFIAU(f numFn, vs ...constant.Value) (constant.Value, error) {
	return dispatch("fia_fiu32_f16", setFIAU, f, vs)
}

// dispatchFIAUB is dispatchFIAU plus bool.
func dispatchFIAUB(f numFn, vs ...constant.Value) (constant.Value, error) {
	return dispatch("fia_fiu32_f16_bool", setFIAUB, f, vs)
}

// dispatchFA accepts the float kinds.
func dispatchFA(f numFn, vs ...constant.Value) (constant.Value, error) {
	return dispatch("fa_f32_f16", setFA, f, vs)
}

// dispatchB accepts bool.
func dispatchB(f numFn, vs ...constant.Value) (constant.Value, error) {
	return dispatch("bool", setB, f, vs)
}
