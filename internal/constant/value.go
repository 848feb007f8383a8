// Package constant holds the values produced by constant evaluation.
//
// A Value is one of three variants:
//
//	*Scalar     one typed number
//	*Splat      a vector, matrix or array whose elements are all the same value
//	*Composite  an explicit list of element values (vector, matrix columns,
//	            array elements or struct members)
//
// Values are immutable and owned by a Manager, which interns them so that
// equal scalars and equal element lists share one pointer.
package constant

import (
	"tint/internal/number"
	"tint/internal/types"
)

// Value is an evaluated constant.
type Value interface {
	// Type is the WGSL type of the value.
	Type() types.TypeID
	// Index returns the i-th element, or nil for scalars and out of range i.
	Index(i int) Value
	// NumElements is the element count of composites and 1 for scalars.
	NumElements() int
	// AllZero reports whether every leaf is zero. Negative zero is not zero.
	AllZero() bool
	// AnyZero reports whether at least one leaf is zero.
	AnyZero() bool
	// AllEqual reports whether every element holds the same value.
	AllEqual() bool

	id() uint32
}

// Scalar is a single typed number.
type Scalar struct {
	typ   types.TypeID
	val   number.Number
	ident uint32
}

func (s *Scalar) Type() types.TypeID { return s.typ }
func (s *Scalar) Index(int) Value { return nil }
func (s *Scalar) NumElements() int { return 1 }
func (s *Scalar) AllZero() bool { return isPositiveZero(s.val) }
func (s *Scalar) AnyZero() bool { return isPositiveZero(s.val) }
func (s *Scalar) AllEqual() bool { return true }
func (s *Scalar) id() uint32 { return s.ident }
func (s *Scalar) Value() number.Number { return s.val }
func (s *Scalar) Kind() number.Kind { return s.val.Kind() }
func (s *Scalar) String() string { return number.Literal(s.val) }

func isPositiveZero(n number.Number) bool {
	if !n.IsZero() {
		return false
	}
	if n.Kind().IsFloat() {
		return !signbit(number.Float64(n))
	}
	return true
}

// Splat is a composite whose elements are all el.
type Splat struct {
	typ   types.TypeID
	el    Value
	count int
	ident uint32
}

func (s *Splat) Type() types.TypeID { return s.typ }
func (s *Splat) Index(i int) Value {
	if i < 0 || i >= s.count {
		return nil
	}
	return s.el
}
func (s *Splat) NumElements() int { return s.count }
func (s *Splat) AllZero() bool { return s.el.AllZero() }
func (s *Splat) AnyZero() bool { return s.el.AnyZero() }
func (s *Splat) AllEqual() bool { return true }
func (s *Splat) id() uint32 { return s.ident }

// Element returns the repeated value.
func (s *Splat) Element() Value { return s.el }

// Composite is an explicit list of element values.
type Composite struct {
	typ     types.TypeID
	els     []Value
	allZero bool
	anyZero bool
	ident   uint32
}

func (c *Composite) Type() types.TypeID { return c.typ }
func (c *Composite) Index(i int) Value {
	if i < 0 || i >= len(c.els) {
		return nil
	}
	return c.els[i]
}
func (c *Composite) NumElements() int { return len(c.els) }
func (c *Composite) AllZero() bool { return c.allZero }
func (c *Composite) AnyZero() bool { return c.anyZero }
func (c *Composite) id() uint32 { return c.ident }

// AllEqual compares elements structurally.
func (c *Composite) AllEqual() bool {
	for _, el := range c.els[1:] {
		if !Equal(c.els[0], el) {
			return false
		}
	}
	return true
}

// Elements returns the element list. Callers must not modify it.
func (c *Composite) Elements() []Value { return c.els }

// ScalarValue returns the number held by v, which must be a *Scalar.
func ScalarValue(v Value) number.Number {
	s, ok := v.(*Scalar)
	if !ok {
		panic("constant: value is not a scalar")
	}
	return s.val
}
