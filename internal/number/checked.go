package number

import (
	"errors"
	"math"

	"fortio.org/safecast"
	"github.com/x448/float16"
)

var (
	// ErrOverflow reports a result outside of the finite range of its type.
	ErrOverflow = errors.New("number: result not representable")
	// ErrDivideByZero reports an integer division or remainder by zero.
	ErrDivideByZero = errors.New("number: division by zero")
	// ErrExceedsPositiveLimit reports a conversion above the target's Highest.
	ErrExceedsPositiveLimit = errors.New("number: value exceeds positive limit")
	// ErrExceedsNegativeLimit reports a conversion below the target's Lowest.
	ErrExceedsNegativeLimit = errors.New("number: value exceeds negative limit")
)

const (
	f16Highest  = 65504.0
	f16Smallest = 6.103515625e-05 // 2^-14
)

// QuantizeF16 rounds f to the nearest binary16 value (ties to even) and
// returns it widened back to float32. Values beyond the f16 range become
// infinities.
func QuantizeF16(f float64) float32 {
	return float16.Fromfloat32(float32(f)).Float32()
}

// NewF16 builds an F16 from f, quantizing it to binary16 precision.
func NewF16(f float64) F16 {
	return F16(QuantizeF16(f))
}

// F16Bits returns the binary16 encoding of v.
func F16Bits(v F16) uint16 {
	return float16.Fromfloat32(float32(v)).Bits()
}

// F16FromBits decodes a binary16 bit pattern.
func F16FromBits(bits uint16) F16 {
	return F16(float16.Frombits(bits).Float32())
}

// Highest returns the largest finite value of T.
func Highest[T Arith]() T {
	var zero T
	switch any(zero).(type) {
	case AInt:
		return any(AInt(math.MaxInt64)).(T)
	case I32:
		return any(I32(math.MaxInt32)).(T)
	case U32:
		return any(U32(math.MaxUint32)).(T)
	case AFloat:
		return any(AFloat(math.MaxFloat64)).(T)
	case F32:
		return any(F32(math.MaxFloat32)).(T)
	case F16:
		return any(F16(f16Highest)).(T)
	}
	panic("number: unreachable")
}

// Lowest returns the most negative finite value of T.
func Lowest[T Arith]() T {
	var zero T
	switch any(zero).(type) {
	case AInt:
		return any(AInt(math.MinInt64)).(T)
	case I32:
		return any(I32(math.MinInt32)).(T)
	case U32:
		return zero
	case AFloat:
		return any(AFloat(-math.MaxFloat64)).(T)
	case F32:
		return any(F32(-math.MaxFloat32)).(T)
	case F16:
		return any(F16(-f16Highest)).(T)
	}
	panic("number: unreachable")
}

// Smallest returns the smallest positive normal value of a float type, or 1
// for integer types.
func Smallest[T Arith]() T {
	var zero T
	switch any(zero).(type) {
	case AFloat:
		return any(AFloat(2.2250738585072014e-308)).(T)
	case F32:
		return any(F32(1.1754943508222875e-38)).(T)
	case F16:
		return any(F16(f16Smallest)).(T)
	}
	return T(1)
}

// IsFloatType reports whether T is a floating-point kind.
func IsFloatType[T Arith]() bool {
	var zero T
	switch any(zero).(type) {
	case AFloat, F32, F16:
		return true
	}
	return false
}

// FromFloat64 converts f to T, rounding to the precision of T. Integer
// targets truncate; callers range-check first.
func FromFloat64[T Arith](f float64) T {
	var zero T
	switch any(zero).(type) {
	case F16:
		return any(NewF16(f)).(T)
	case F32:
		return any(F32(float32(f))).(T)
	}
	return T(f)
}

// checkedFloat rounds f into T and fails when the result is not finite.
func checkedFloat[T Arith](f float64) (T, error) {
	r := FromFloat64[T](f)
	if rf := float64(r); math.IsInf(rf, 0) || math.IsNaN(rf) {
		return 0, ErrOverflow
	}
	return r, nil
}

// checkedRange narrows an exact integer result into T.
func checkedRange[T Arith](r int64) (T, error) {
	if r < int64(Lowest[T]()) || r > int64(Highest[T]()) {
		return 0, ErrOverflow
	}
	return T(r), nil
}

// CheckedAdd returns a+b, or ErrOverflow when the sum is not representable in T.
func CheckedAdd[T Arith](a, b T) (T, error) {
	if IsFloatType[T]() {
		return checkedFloat[T](float64(a) + float64(b))
	}
	if x, ok := any(a).(AInt); ok {
		y := any(b).(AInt)
		r := x + y
		if (y > 0 && r < x) || (y < 0 && r > x) {
			return 0, ErrOverflow
		}
		return any(r).(T), nil
	}
	return checkedRange[T](int64(a) + int64(b))
}

// CheckedSub returns a-b, or ErrOverflow when the difference is not representable in T.
func CheckedSub[T Arith](a, b T) (T, error) {
	if IsFloatType[T]() {
		return checkedFloat[T](float64(a) - float64(b))
	}
	if x, ok := any(a).(AInt); ok {
		y := any(b).(AInt)
		r := x - y
		if (y < 0 && r < x) || (y > 0 && r > x) {
			return 0, ErrOverflow
		}
		return any(r).(T), nil
	}
	return checkedRange[T](int64(a) - int64(b))
}

// CheckedMul returns a*b, or ErrOverflow when the product is not representable in T.
func CheckedMul[T Arith](a, b T) (T, error) {
	if IsFloatType[T]() {
		return checkedFloat[T](float64(a) * float64(b))
	}
	if x, ok := any(a).(AInt); ok {
		y := any(b).(AInt)
		if x == 0 || y == 0 {
			return 0, nil
		}
		if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
			return 0, ErrOverflow
		}
		r := x * y
		if r/y != x {
			return 0, ErrOverflow
		}
		return any(r).(T), nil
	}
	return checkedRange[T](int64(a) * int64(b))
}

// CheckedDiv returns a/b. Integer division truncates toward zero and fails
// on a zero divisor or on Lowest/-1.
func CheckedDiv[T Arith](a, b T) (T, error) {
	if IsFloatType[T]() {
		return checkedFloat[T](float64(a) / float64(b))
	}
	if b == 0 {
		return 0, ErrDivideByZero
	}
	if x, ok := any(a).(AInt); ok {
		y := any(b).(AInt)
		if x == math.MinInt64 && y == -1 {
			return 0, ErrOverflow
		}
		return any(x / y).(T), nil
	}
	return checkedRange[T](int64(a) / int64(b))
}

// CheckedMod returns the truncated remainder of a/b, whose sign follows a.
func CheckedMod[T Arith](a, b T) (T, error) {
	if IsFloatType[T]() {
		return checkedFloat[T](math.Mod(float64(a), float64(b)))
	}
	if b == 0 {
		return 0, ErrDivideByZero
	}
	if x, ok := any(a).(AInt); ok {
		y := any(b).(AInt)
		if x == math.MinInt64 && y == -1 {
			return 0, ErrOverflow
		}
		return any(x % y).(T), nil
	}
	if int64(a) == int64(Lowest[T]()) && int64(b) == -1 && int64(a) != 0 {
		return 0, ErrOverflow
	}
	return checkedRange[T](int64(a) % int64(b))
}

// CheckedMadd returns a*b+c.
func CheckedMadd[T Arith](a, b, c T) (T, error) {
	mul, err := CheckedMul(a, b)
	if err != nil {
		return 0, err
	}
	return CheckedAdd(mul, c)
}

// CheckedConvert converts v to To. Values outside [Lowest, Highest] of To fail
// with ErrExceedsPositiveLimit or ErrExceedsNegativeLimit; float to integer
// conversions truncate toward zero. Comparisons are done in float64 when
// either side is a float and in int64 otherwise.
func CheckedConvert[To, From Arith](v From) (To, error) {
	if IsFloatType[To]() || IsFloatType[From]() {
		f := float64(v)
		switch {
		case math.IsNaN(f):
			if IsFloatType[To]() {
				return FromFloat64[To](f), nil
			}
			return 0, ErrExceedsPositiveLimit
		case f > float64(Highest[To]()):
			return 0, ErrExceedsPositiveLimit
		case !IsFloatType[To]() && f >= 0x1p63:
			// MaxInt64 rounds up to 2^63 in float64.
			return 0, ErrExceedsPositiveLimit
		case f < float64(Lowest[To]()):
			return 0, ErrExceedsNegativeLimit
		}
		return FromFloat64[To](f), nil
	}

	i := int64(v)
	var (
		zero To
		err  error
	)
	switch any(zero).(type) {
	case I32:
		_, err = safecast.Conv[int32](i)
	case U32:
		_, err = safecast.Conv[uint32](i)
	}
	if err != nil {
		if i < 0 {
			return 0, ErrExceedsNegativeLimit
		}
		return 0, ErrExceedsPositiveLimit
	}
	return To(i), nil
}
