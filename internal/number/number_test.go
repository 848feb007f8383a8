package number

import (
	"errors"
	"math"
	"testing"
)

func TestCheckedAddAbstractOverflow(t *testing.T) {
	if _, err := CheckedAdd(AInt(math.MaxInt64), AInt(1)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if _, err := CheckedSub(AInt(math.MinInt64), AInt(1)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	got, err := CheckedAdd(AInt(40), AInt(2))
	if err != nil || got != 42 {
		t.Fatalf("40+2 = %v, %v", got, err)
	}
}

func TestCheckedMulBoundaries(t *testing.T) {
	cases := []struct {
		a, b AInt
		ok   bool
	}{
		{math.MinInt64, -1, false},
		{-1, math.MinInt64, false},
		{math.MaxInt64, 2, false},
		{1 << 31, 1 << 31, true},
		{0, math.MinInt64, true},
	}
	for _, tc := range cases {
		_, err := CheckedMul(tc.a, tc.b)
		if (err == nil) != tc.ok {
			t.Errorf("CheckedMul(%d, %d) err=%v, want ok=%v", tc.a, tc.b, err, tc.ok)
		}
	}
}

func TestCheckedConcreteRange(t *testing.T) {
	if _, err := CheckedAdd(I32(math.MaxInt32), I32(1)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("i32 add should overflow, got %v", err)
	}
	if _, err := CheckedSub(U32(0), U32(1)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("u32 sub should overflow, got %v", err)
	}
	if _, err := CheckedDiv(I32(math.MinInt32), I32(-1)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("i32 MIN/-1 should overflow, got %v", err)
	}
	if _, err := CheckedMod(I32(5), I32(0)); !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("mod by zero should fail, got %v", err)
	}
}

func TestCheckedFloatOverflow(t *testing.T) {
	if _, err := CheckedMul(F32(math.MaxFloat32), F32(2)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("f32 mul should overflow, got %v", err)
	}
	if _, err := CheckedAdd(F16(65504), F16(32)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("f16 add should overflow, got %v", err)
	}
	if _, err := CheckedDiv(AFloat(1), AFloat(0)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("1.0/0.0 should not be representable, got %v", err)
	}
}

func TestQuantizeF16(t *testing.T) {
	if got := NewF16(0.1); float64(got) == 0.1 {
		t.Fatalf("0.1 must be rounded to binary16")
	}
	if got := NewF16(1.5); got != 1.5 {
		t.Fatalf("1.5 is exact in f16, got %v", got)
	}
	if got := F16Bits(NewF16(1)); got != 0x3c00 {
		t.Fatalf("bits of 1.0h = %#x", got)
	}
	if got := F16FromBits(0xc000); got != -2 {
		t.Fatalf("0xc000 = %v, want -2", got)
	}
}

func TestCheckedConvert(t *testing.T) {
	if _, err := CheckedConvert[I32](AInt(1 << 40)); !errors.Is(err, ErrExceedsPositiveLimit) {
		t.Fatalf("expected positive limit, got %v", err)
	}
	if _, err := CheckedConvert[U32](AInt(-1)); !errors.Is(err, ErrExceedsNegativeLimit) {
		t.Fatalf("expected negative limit, got %v", err)
	}
	if _, err := CheckedConvert[F16](AFloat(1e6)); !errors.Is(err, ErrExceedsPositiveLimit) {
		t.Fatalf("expected positive limit for f16, got %v", err)
	}
	if _, err := CheckedConvert[AInt](AFloat(1e19)); !errors.Is(err, ErrExceedsPositiveLimit) {
		t.Fatalf("expected positive limit for abstract int, got %v", err)
	}
	got, err := CheckedConvert[I32](F32(-3.75))
	if err != nil || got != -3 {
		t.Fatalf("i32(-3.75f) = %v, %v", got, err)
	}
}

func TestWrapArithmetic(t *testing.T) {
	if got := WrapSub(U32(0), U32(1)); got != U32(math.MaxUint32) {
		t.Fatalf("wrap sub = %v", got)
	}
	if got := WrapSub(I32(math.MinInt32), I32(1)); got != I32(math.MaxInt32) {
		t.Fatalf("wrap sub = %v", got)
	}
	neg, err := Neg(I32(math.MinInt32))
	if err != nil || neg != I32(math.MinInt32) {
		t.Fatalf("-i32 MIN = %v, %v", neg, err)
	}
	if _, err := Neg(AInt(math.MinInt64)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("negating abstract MIN should overflow")
	}
}

func TestDynamicArithmeticEveryKind(t *testing.T) {
	cases := []struct {
		a, b Number
		sum  Number
		prod Number
	}{
		{AInt(2), AInt(3), AInt(5), AInt(6)},
		{AFloat(2), AFloat(3), AFloat(5), AFloat(6)},
		{I32(2), I32(3), I32(5), I32(6)},
		{U32(2), U32(3), U32(5), U32(6)},
		{F32(2), F32(3), F32(5), F32(6)},
		{F16(2), F16(3), F16(5), F16(6)},
	}
	for _, tc := range cases {
		sum, err := Add(tc.a, tc.b)
		if err != nil || sum != tc.sum {
			t.Errorf("Add(%#v, %#v) = %#v, %v", tc.a, tc.b, sum, err)
		}
		diff, err := Sub(tc.sum, tc.b)
		if err != nil || diff != tc.a {
			t.Errorf("Sub(%#v, %#v) = %#v, %v", tc.sum, tc.b, diff, err)
		}
		prod, err := Mul(tc.a, tc.b)
		if err != nil || prod != tc.prod {
			t.Errorf("Mul(%#v, %#v) = %#v, %v", tc.a, tc.b, prod, err)
		}
		quo, err := Div(tc.prod, tc.b)
		if err != nil || quo != tc.a {
			t.Errorf("Div(%#v, %#v) = %#v, %v", tc.prod, tc.b, quo, err)
		}
		rem, err := Mod(tc.sum, tc.b)
		if err != nil || rem != tc.a {
			t.Errorf("Mod(%#v, %#v) = %#v, %v", tc.sum, tc.b, rem, err)
		}
	}
}

func TestDynamicArithmeticFailure(t *testing.T) {
	r, err := Add(I32(math.MaxInt32), I32(1))
	if r != nil || !errors.Is(err, ErrOverflow) {
		t.Fatalf("i32 overflow = %#v, %v", r, err)
	}
	r, err = Mul(F16(256), F16(256))
	if r != nil || !errors.Is(err, ErrOverflow) {
		t.Fatalf("f16 overflow = %#v, %v", r, err)
	}
	r, err = Div(U32(1), U32(0))
	if r != nil || !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("u32 division by zero = %#v, %v", r, err)
	}
}

func TestDynamicDispatch(t *testing.T) {
	sum, err := Add(F32(1.5), F32(2))
	if err != nil || sum != F32(3.5) {
		t.Fatalf("Add = %v, %v", sum, err)
	}
	conv, err := Convert(AInt(7), KindF16)
	if err != nil || conv != F16(7) {
		t.Fatalf("Convert = %#v, %v", conv, err)
	}
	if !Less(U32(1), U32(2)) || Less(I32(2), I32(-1)) {
		t.Fatalf("Less gave wrong ordering")
	}
	if !Equal(F32(0), F32(float32(math.Copysign(0, -1)))) {
		t.Fatalf("0 and -0 compare equal")
	}
	if HighestOf(KindU32) != U32(math.MaxUint32) || LowestOf(KindF16) != F16(-65504) {
		t.Fatalf("bounds by kind are wrong")
	}
}

func TestLiteral(t *testing.T) {
	cases := []struct {
		n    Number
		want string
	}{
		{AInt(3), "3"},
		{AFloat(3), "3.0"},
		{I32(-1), "-1i"},
		{U32(2), "2u"},
		{F32(1.5), "1.5f"},
		{F16(2), "2.0h"},
		{Bool(true), "true"},
	}
	for _, tc := range cases {
		if got := Literal(tc.n); got != tc.want {
			t.Errorf("Literal(%#v) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
