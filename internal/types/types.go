package types

import (
	"fmt"

	"tint/internal/number"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
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
	KindVector
	KindMatrix
	KindArray
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
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
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsScalar reports whether k is one of the seven scalar kinds.
func (k Kind) IsScalar() bool {
	return k >= KindAbstractInt && k <= KindF16
}

// Number maps a scalar kind onto the numeric kind of its values.
func (k Kind) Number() number.Kind {
	switch k {
	case KindAbstractInt:
		return number.KindAbstractInt
	case KindAbstractFloat:
		return number.KindAbstractFloat
	case KindBool:
		return number.KindBool
	case KindI32:
		return number.KindI32
	case KindU32:
		return number.KindU32
	case KindF32:
		return number.KindF32
	case KindF16:
		return number.KindF16
	default:
		return number.KindInvalid
	}
}

// Type is a compact descriptor for any supported type.
//
//	vector  Elem = scalar, Count = width (2..4)
//	matrix  Elem = column vector, Count = number of columns
//	array   Elem = element, Count = length
//	struct  Payload = index into the struct table
type Type struct {
	Kind    Kind
	Elem    TypeID
	Count   uint32
	Payload uint32
}

// MakeVector builds a vector descriptor.
func MakeVector(elem TypeID, width uint32) Type {
	return Type{Kind: KindVector, Elem: elem, Count: width}
}

// MakeMatrix builds a matrix descriptor from its column vector type.
func MakeMatrix(column TypeID, cols uint32) Type {
	return Type{Kind: KindMatrix, Elem: column, Count: cols}
}

// MakeArray builds a fixed-size array descriptor.
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// Member is a single named struct member.
type Member struct {
	Name string
	Type TypeID
}

// StructInfo stores metadata for a struct type.
type StructInfo struct {
	Name    string
	Members []Member
	// Builtin marks result structures of frexp and modf.
	Builtin bool
}
