package types

import (
	"testing"

	"tint/internal/number"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.I32 == NoTypeID || b.AbstractFloat == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	if in.Scalar(number.KindF16) != b.F16 {
		t.Fatalf("Scalar(f16) mismatch")
	}
	if in.Kind(b.U32) != KindU32 {
		t.Fatalf("expected u32 kind, got %v", in.Kind(b.U32))
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	f32 := in.Builtins().F32
	if in.Vec(f32, 3) != in.Vec(f32, 3) {
		t.Fatalf("vector types should be deduplicated")
	}
	if in.MatOf(f32, 2, 3) != in.Mat(in.Vec(f32, 3), 2) {
		t.Fatalf("matrix types should be deduplicated")
	}
	if in.Array(f32, 4) == in.Array(f32, 5) {
		t.Fatalf("array length is part of the identity")
	}
}

func TestNames(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	cases := []struct {
		id   TypeID
		want string
	}{
		{b.AbstractInt, "abstract-int"},
		{in.Vec(b.F32, 3), "vec3<f32>"},
		{in.MatOf(b.F16, 2, 3), "mat2x3<f16>"},
		{in.Array(b.I32, 4), "array<i32, 4>"},
		{in.Struct("S", []Member{{Name: "a", Type: b.U32}}), "S"},
	}
	for _, tc := range cases {
		if got := in.Name(tc.id); got != tc.want {
			t.Errorf("Name = %q, want %q", got, tc.want)
		}
	}
}

func TestElements(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	mat := in.MatOf(b.F32, 4, 2)
	elem, n := in.Elements(mat)
	if elem != in.Vec(b.F32, 2) || n != 4 {
		t.Fatalf("Elements(mat4x2) = %v, %d", elem, n)
	}
	if in.DeepestElement(in.Array(mat, 3)) != b.F32 {
		t.Fatalf("DeepestElement should reach f32")
	}
	s := in.Struct("P", []Member{{Name: "x", Type: b.I32}, {Name: "y", Type: b.F32}})
	elem, n = in.Elements(s)
	if elem != NoTypeID || n != 2 {
		t.Fatalf("Elements(struct) = %v, %d", elem, n)
	}
	if in.ElementAt(s, 1) != b.F32 {
		t.Fatalf("ElementAt(struct, 1) should be f32")
	}
	if _, n := in.Elements(b.Bool); n != 0 {
		t.Fatalf("scalars have no elements")
	}
}

func TestWithScalarAndPredicates(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	abs := in.MatOf(b.AbstractFloat, 3, 3)
	if !in.IsAbstract(abs) || !in.IsFloat(abs) {
		t.Fatalf("abstract float matrix predicates")
	}
	conc := in.WithScalar(abs, b.F32)
	if conc != in.MatOf(b.F32, 3, 3) {
		t.Fatalf("WithScalar = %s", in.Name(conc))
	}
	if in.IsSigned(in.Vec(b.U32, 2)) {
		t.Fatalf("u32 is unsigned")
	}
}

func TestBuiltinResultStructs(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	v := in.Vec(b.F32, 3)
	fr := in.FrexpResult(v)
	if fr != in.FrexpResult(v) {
		t.Fatalf("frexp result should be cached")
	}
	if got := in.Member(fr, 1).Type; got != in.Vec(b.I32, 3) {
		t.Fatalf("frexp exp member = %s", in.Name(got))
	}
	if got := in.Member(in.FrexpResult(b.AbstractFloat), 1).Type; got != b.AbstractInt {
		t.Fatalf("abstract frexp exp member = %s", in.Name(got))
	}
	md := in.ModfResult(b.F16)
	if in.Member(md, 0).Name != "fract" || in.Member(md, 1).Type != b.F16 {
		t.Fatalf("modf result layout")
	}
	if info, _ := in.StructInfo(md); !info.Builtin {
		t.Fatalf("modf result should be marked builtin")
	}
}

func TestStructRedeclarationPanics(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	in.Struct("S", []Member{{Name: "a", Type: b.I32}})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	in.Struct("S", []Member{{Name: "a", Type: b.U32}})
}
