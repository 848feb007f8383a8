// Package number implements the scalar numeric types of WGSL constant
// expressions together with overflow-checked arithmetic.
//
// Every type is a thin named wrapper over a Go numeric type:
//
//	AInt   int64    abstract integer
//	AFloat float64  abstract float
//	I32    int32
//	U32    uint32
//	F32    float32
//	F16    float32  always holds a value exactly representable in binary16
//	Bool   bool
//
// Generic helpers (CheckedAdd, CheckedConvert, ...) are constrained by
// Integer, Float and Arith. The Number interface lets callers that only know
// the kind at run time (the evaluator's dispatch) handle values uniformly.
package number

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the closed set of scalar kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAbstractInt
	KindAbstractFloat
	KindBool
	KindI32
	KindU32
	KindF32
	KindF16
)

func (k Kind) String() string {
	switch k {
	case KindAbstractInt:
		return "abstract-int"
	case KindAbstractFloat:
		return "abstract-float"
	case KindBool:
		return "bool"
	case KindI32:
		return "i32"
	case KindU32:
		return "u32"
	case KindF32:
		return "f32"
	case KindF16:
		return "f16"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsAbstract reports whether k is AbstractInt or AbstractFloat.
func (k Kind) IsAbstract() bool {
	return k == KindAbstractInt || k == KindAbstractFloat
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool {
	return k == KindAbstractFloat || k == KindF32 || k == KindF16
}

// IsInteger reports whether k is an integer kind.
func (k Kind) IsInteger() bool {
	return k == KindAbstractInt || k == KindI32 || k == KindU32
}

// IsSigned reports whether k can hold negative values.
func (k Kind) IsSigned() bool {
	return k != KindU32 && k != KindBool && k != KindInvalid
}

type (
	AInt   int64
	AFloat float64
	I32    int32
	U32    uint32
	F32    float32
	F16    float32
	Bool   bool
)

// Integer is the set of integer kinds.
type Integer interface {
	AInt | I32 | U32
}

// Float is the set of floating-point kinds.
type Float interface {
	AFloat | F32 | F16
}

// Arith is the set of kinds that support arithmetic.
type Arith interface {
	Integer | Float
}

// Number is implemented by every scalar type of this package.
type Number interface {
	Kind() Kind
	IsZero() bool
	// String renders the value without a type suffix, the way it appears in
	// diagnostics.
	String() string
}

func (AInt) Kind() Kind   { return KindAbstractInt }
func (AFloat) Kind() Kind { return KindAbstractFloat }
func (I32) Kind() Kind    { return KindI32 }
func (U32) Kind() Kind    { return KindU32 }
func (F32) Kind() Kind    { return KindF32 }
func (F16) Kind() Kind    { return KindF16 }
func (Bool) Kind() Kind   { return KindBool }

func (v AInt) IsZero() bool   { return v == 0 }
func (v AFloat) IsZero() bool { return v == 0 }
func (v I32) IsZero() bool    { return v == 0 }
func (v U32) IsZero() bool    { return v == 0 }
func (v F32) IsZero() bool    { return v == 0 }
func (v F16) IsZero() bool    { return v == 0 }
func (v Bool) IsZero() bool   { return !bool(v) }

func (v AInt) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v AFloat) String() string { return formatFloat(float64(v), 64) }
func (v I32) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v U32) String() string    { return strconv.FormatUint(uint64(v), 10) }
func (v F32) String() string    { return formatFloat(float64(v), 32) }
func (v F16) String() string    { return formatFloat(float64(v), 32) }
func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

// Literal renders n as a WGSL literal, including the type suffix
// (1i, 2u, 0.5f, 1.0h, 3, 3.0, true).
func Literal(n Number) string {
	switch v := n.(type) {
	case AInt:
		return v.String()
	case I32:
		return v.String() + "i"
	case U32:
		return v.String() + "u"
	case AFloat:
		return floatLiteral(v.String())
	case F32:
		return floatLiteral(v.String()) + "f"
	case F16:
		return floatLiteral(v.String()) + "h"
	case Bool:
		return v.String()
	}
	return n.String()
}

func floatLiteral(s string) string {
	if strings.ContainsAny(s, ".eni") {
		return s
	}
	return s + ".0"
}
