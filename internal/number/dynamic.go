package number

import (
	"fmt"
	"math"
)

// The functions below operate on Number values whose kind is only known at
// run time. Binary operations require both operands to have the same kind.

func call2[T Arith](a, b Number, f func(T, T) (T, error)) (Number, error) {
	r, err := f(a.(T), b.(T))
	if err != nil {
		return nil, err
	}
	return any(r).(Number), nil
}

// Add is CheckedAdd for dynamically typed operands.
func Add(a, b Number) (Number, error) {
	switch a.(type) {
	case AInt:
		return call2(a, b, CheckedAdd[AInt])
	case AFloat:
		return call2(a, b, CheckedAdd[AFloat])
	case I32:
		return call2(a, b, CheckedAdd[I32])
	case U32:
		return call2(a, b, CheckedAdd[U32])
	case F32:
		return call2(a, b, CheckedAdd[F32])
	case F16:
		return call2(a, b, CheckedAdd[F16])
	}
	panic(unsupported("Add", a))
}

// Sub is CheckedSub for dynamically typed operands.
func Sub(a, b Number) (Number, error) {
	switch a.(type) {
	case AInt:
		return call2(a, b, CheckedSub[AInt])
	case AFloat:
		return call2(a, b, CheckedSub[AFloat])
	case I32:
		return call2(a, b, CheckedSub[I32])
	case U32:
		return call2(a, b, CheckedSub[U32])
	case F32:
		return call2(a, b, CheckedSub[F32])
	case F16:
		return call2(a, b, CheckedSub[F16])
	}
	panic(unsupported("Sub", a))
}

// Mul is CheckedMul for dynamically typed operands.
func Mul(a, b Number) (Number, error) {
	switch a.(type) {
	case AInt:
		return call2(a, b, CheckedMul[AInt])
	case AFloat:
		return call2(a, b, CheckedMul[AFloat])
	case I32:
		return call2(a, b, CheckedMul[I32])
	case U32:
		return call2(a, b, CheckedMul[U32])
	case F32:
		return call2(a, b, CheckedMul[F32])
	case F16:
		return call2(a, b, CheckedMul[F16])
	}
	panic(unsupported("Mul", a))
}

// Div is CheckedDiv for dynamically typed operands.
func Div(a, b Number) (Number, error) {
	switch a.(type) {
	case AInt:
		return call2(a, b, CheckedDiv[AInt])
	case AFloat:
		return call2(a, b, CheckedDiv[AFloat])
	case I32:
		return call2(a, b, CheckedDiv[I32])
	case U32:
		return call2(a, b, CheckedDiv[U32])
	case F32:
		return call2(a, b, CheckedDiv[F32])
	case F16:
		return call2(a, b, CheckedDiv[F16])
	}
	panic(unsupported("Div", a))
}

// Mod is CheckedMod for dynamically typed operands.
func Mod(a, b Number) (Number, error) {
	switch a.(type) {
	case AInt:
		return call2(a, b, CheckedMod[AInt])
	case AFloat:
		return call2(a, b, CheckedMod[AFloat])
	case I32:
		return call2(a, b, CheckedMod[I32])
	case U32:
		return call2(a, b, CheckedMod[U32])
	case F32:
		return call2(a, b, CheckedMod[F32])
	case F16:
		return call2(a, b, CheckedMod[F16])
	}
	panic(unsupported("Mod", a))
}

// WrapSub subtracts two I32 or U32 values with two's complement wraparound.
// The arithmetic is done on the unsigned bit patterns so signed overflow
// never happens in Go terms.
func WrapSub(a, b Number) Number {
	return fromBits(a.Kind(), Bits(a)-Bits(b))
}

// Bits returns the 32-bit pattern of an I32 or U32.
func Bits(n Number) uint32 {
	switch v := n.(type) {
	case I32:
		return uint32(v) //nolint:gosec // bit reinterpretation
	case U32:
		return uint32(v)
	}
	panic(unsupported("Bits", n))
}

// FromBits reinterprets a 32-bit pattern as a value of kind k (I32 or U32).
func FromBits(k Kind, bits uint32) Number {
	return fromBits(k, bits)
}

func fromBits(k Kind, bits uint32) Number {
	switch k {
	case KindI32:
		return I32(int32(bits)) //nolint:gosec // bit reinterpretation
	case KindU32:
		return U32(bits)
	}
	panic(fmt.Sprintf("number: FromBits on %s", k))
}

// Float64 widens any arithmetic value to float64.
func Float64(n Number) float64 {
	switch v := n.(type) {
	case AInt:
		return float64(v)
	case AFloat:
		return float64(v)
	case I32:
		return float64(v)
	case U32:
		return float64(v)
	case F32:
		return float64(v)
	case F16:
		return float64(v)
	case Bool:
		if v {
			return 1
		}
		return 0
	}
	panic(unsupported("Float64", n))
}

// Int64 widens an integer value to int64.
func Int64(n Number) int64 {
	switch v := n.(type) {
	case AInt:
		return int64(v)
	case I32:
		return int64(v)
	case U32:
		return int64(v)
	}
	panic(unsupported("Int64", n))
}

// FromFloat rounds f into kind k. Float kinds are rounded to their precision,
// integer kinds truncate.
func FromFloat(k Kind, f float64) Number {
	switch k {
	case KindAbstractFloat:
		return AFloat(f)
	case KindF32:
		return F32(float32(f))
	case KindF16:
		return NewF16(f)
	case KindAbstractInt:
		return AInt(f)
	case KindI32:
		return I32(f)
	case KindU32:
		return U32(f)
	}
	panic(fmt.Sprintf("number: FromFloat on %s", k))
}

// FromInt builds a value of kind k from i.
func FromInt(k Kind, i int64) Number {
	switch k {
	case KindAbstractInt:
		return AInt(i)
	case KindI32:
		return I32(i) //nolint:gosec // caller guarantees range
	case KindU32:
		return U32(i) //nolint:gosec // caller guarantees range
	case KindAbstractFloat, KindF32, KindF16:
		return FromFloat(k, float64(i))
	case KindBool:
		return Bool(i != 0)
	}
	panic(fmt.Sprintf("number: FromInt on %s", k))
}

// Zero returns the zero value of kind k.
func Zero(k Kind) Number {
	if k == KindBool {
		return Bool(false)
	}
	return FromInt(k, 0)
}

// HighestOf is Highest for a run-time kind.
func HighestOf(k Kind) Number {
	switch k {
	case KindAbstractInt:
		return Highest[AInt]()
	case KindAbstractFloat:
		return Highest[AFloat]()
	case KindI32:
		return Highest[I32]()
	case KindU32:
		return Highest[U32]()
	case KindF32:
		return Highest[F32]()
	case KindF16:
		return Highest[F16]()
	}
	panic(fmt.Sprintf("number: HighestOf %s", k))
}

// LowestOf is Lowest for a run-time kind.
func LowestOf(k Kind) Number {
	switch k {
	case KindAbstractInt:
		return Lowest[AInt]()
	case KindAbstractFloat:
		return Lowest[AFloat]()
	case KindI32:
		return Lowest[I32]()
	case KindU32:
		return Lowest[U32]()
	case KindF32:
		return Lowest[F32]()
	case KindF16:
		return Lowest[F16]()
	}
	panic(fmt.Sprintf("number: LowestOf %s", k))
}

// Less reports a < b for two values of the same kind.
func Less(a, b Number) bool {
	switch x := a.(type) {
	case AInt:
		return x < b.(AInt)
	case I32:
		return x < b.(I32)
	case U32:
		return x < b.(U32)
	case Bool:
		return !bool(x) && bool(b.(Bool))
	}
	return Float64(a) < Float64(b)
}

// Equal reports a == b for two values of the same kind. Floats compare by
// value, so 0 == -0 and NaN != NaN.
func Equal(a, b Number) bool {
	switch x := a.(type) {
	case AInt:
		return x == b.(AInt)
	case I32:
		return x == b.(I32)
	case U32:
		return x == b.(U32)
	case Bool:
		return x == b.(Bool)
	}
	return Float64(a) == Float64(b)
}

// Neg negates a signed value. I32 wraps, abstract integers fail on Lowest.
func Neg(n Number) (Number, error) {
	switch v := n.(type) {
	case AInt:
		if v == math.MinInt64 {
			return nil, ErrOverflow
		}
		return -v, nil
	case I32:
		return WrapSub(I32(0), v), nil
	case AFloat:
		return -v, nil
	case F32:
		return -v, nil
	case F16:
		return -v, nil
	}
	panic(unsupported("Neg", n))
}

// Convert is CheckedConvert for a run-time source and target kind. Bool
// sources and targets are handled by the caller.
func Convert(n Number, to Kind) (Number, error) {
	switch v := n.(type) {
	case AInt:
		return convertTo(v, to)
	case AFloat:
		return convertTo(v, to)
	case I32:
		return convertTo(v, to)
	case U32:
		return convertTo(v, to)
	case F32:
		return convertTo(v, to)
	case F16:
		return convertTo(v, to)
	}
	panic(unsupported("Convert", n))
}

func convertTo[From Arith](v From, to Kind) (Number, error) {
	switch to {
	case KindAbstractInt:
		return CheckedConvert[AInt](v)
	case KindAbstractFloat:
		return CheckedConvert[AFloat](v)
	case KindI32:
		return CheckedConvert[I32](v)
	case KindU32:
		return CheckedConvert[U32](v)
	case KindF32:
		return CheckedConvert[F32](v)
	case KindF16:
		return CheckedConvert[F16](v)
	}
	panic(fmt.Sprintf("number: convert to %s", to))
}

func unsupported(op string, n Number) string {
	if n == nil {
		return fmt.Sprintf("number: %s on nil", op)
	}
	return fmt.Sprintf("number: %s on %s", op, n.Kind())
}
