package constant

import (
	"strings"

	"tint/internal/number"
	"tint/internal/types"
)

// Equal reports whether a and b have the same type and equal leaves. Leaves
// compare by value: 0.0 equals -0.0 and NaN never equals itself.
func Equal(a, b Value) bool {
	if a == b {
		return true
	}
	if a.Type() != b.Type() {
		return false
	}
	sa, aScalar := a.(*Scalar)
	sb, bScalar := b.(*Scalar)
	if aScalar || bScalar {
		return aScalar && bScalar && number.Equal(sa.val, sb.val)
	}
	if a.NumElements() != b.NumElements() {
		return false
	}
	for i := 0; i < a.NumElements(); i++ {
		if !Equal(a.Index(i), b.Index(i)) {
			return false
		}
	}
	return true
}

// Format renders v as a WGSL expression, expanding splats:
// vec3<f32>(1.0f, 1.0f, 1.0f), S(1i, true).
func Format(in *types.Interner, v Value) string {
	var sb strings.Builder
	format(&sb, in, v)
	return sb.String()
}

func format(sb *strings.Builder, in *types.Interner, v Value) {
	if s, ok := v.(*Scalar); ok {
		sb.WriteString(number.Literal(s.val))
		return
	}
	sb.WriteString(in.Name(v.Type()))
	sb.WriteByte('(')
	for i := 0; i < v.NumElements(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		format(sb, in, v.Index(i))
	}
	sb.WriteByte(')')
}

// Leaves returns the scalar leaves of v in element order.
func Leaves(v Value) []*Scalar {
	var out []*Scalar
	var walk func(Value)
	walk = func(v Value) {
		if s, ok := v.(*Scalar); ok {
			out = append(out, s)
			return
		}
		for i := 0; i < v.NumElements(); i++ {
			walk(v.Index(i))
		}
	}
	walk(v)
	return out
}
