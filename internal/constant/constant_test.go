package constant

import (
	"math"
	"testing"

	"tint/internal/number"
	"tint/internal/types"
)

func newManager() (*Manager, types.Builtins) {
	in := types.NewInterner()
	return NewManager(in), in.Builtins()
}

func TestScalarInterning(t *testing.T) {
	m, _ := newManager()
	if m.I32(5) != m.I32(5) {
		t.Fatalf("equal scalars should share a pointer")
	}
	if m.F32(0) == m.F32(float32(math.Copysign(0, -1))) {
		t.Fatalf("0.0 and -0.0 must be distinct values")
	}
	if m.U32(1).Type() == m.I32(1).Type() {
		t.Fatalf("u32 and i32 scalars must keep their types")
	}
}

func TestZeroShapes(t *testing.T) {
	m, b := newManager()
	in := m.Types()
	vec := in.Vec(b.F32, 3)
	if _, ok := m.Zero(vec).(*Splat); !ok {
		t.Fatalf("zero vector should be a splat")
	}
	s := in.Struct("S", []types.Member{{Name: "a", Type: b.I32}, {Name: "b", Type: vec}})
	z := m.Zero(s)
	c, ok := z.(*Composite)
	if !ok {
		t.Fatalf("zero struct should be a composite, got %T", z)
	}
	if !c.AllZero() || c.NumElements() != 2 {
		t.Fatalf("zero struct: allZero=%v n=%d", c.AllZero(), c.NumElements())
	}
	if got := Format(in, z); got != "S(0i, vec3<f32>(0.0f, 0.0f, 0.0f))" {
		t.Fatalf("Format = %q", got)
	}
}

func TestCompositeNeverCollapses(t *testing.T) {
	m, b := newManager()
	vec := m.Types().Vec(b.U32, 4)
	one := m.U32(1)
	v := m.Composite(vec, []Value{one, one, one, one})
	if !v.AllEqual() {
		t.Fatalf("AllEqual should be true")
	}
	if v.NumElements() != 4 || v.Index(3) != one {
		t.Fatalf("composite elements")
	}
	if m.Composite(vec, []Value{one, one, one, one}) != v {
		t.Fatalf("identical composites should be interned")
	}
}

func TestZeroFlags(t *testing.T) {
	m, b := newManager()
	vec := m.Types().Vec(b.F32, 2)
	negZero := m.F32(float32(math.Copysign(0, -1)))
	v := m.Composite(vec, []Value{negZero, m.F32(0)})
	if v.AllZero() {
		t.Fatalf("-0.0 is not zero")
	}
	if !v.AnyZero() {
		t.Fatalf("AnyZero should see the positive zero")
	}
}

func TestEqual(t *testing.T) {
	m, b := newManager()
	vec := m.Types().Vec(b.I32, 2)
	splat := m.Splat(vec, m.I32(7))
	comp := m.Composite(vec, []Value{m.I32(7), m.I32(7)})
	if !Equal(splat, comp) {
		t.Fatalf("splat and composite with the same leaves are equal")
	}
	if Equal(m.I32(1), m.U32(1)) {
		t.Fatalf("different types are not equal")
	}
	nan := m.Number(number.AFloat(math.NaN()))
	if !Equal(nan, nan) {
		t.Fatalf("identical pointers are equal")
	}
	if len(Leaves(splat)) != 2 {
		t.Fatalf("Leaves should expand splats")
	}
}

func TestCompositeArityPanics(t *testing.T) {
	m, b := newManager()
	vec := m.Types().Vec(b.I32, 3)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	m.Composite(vec, []Value{m.I32(1)})
}
