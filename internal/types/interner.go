package types

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"tint/internal/number"
)

// Builtins stores TypeIDs for the scalar types.
type Builtins struct {
	Invalid       TypeID
	AbstractInt   TypeID
	AbstractFloat TypeID
	Bool          TypeID
	I32           TypeID
	U32           TypeID
	F32           TypeID
	F16           TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Structs are nominal: each registered name gets its own TypeID.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	structs  []StructInfo
	byName   map[string]TypeID
}

// NewInterner constructs an interner seeded with the scalar types.
func NewInterner() *Interner {
	in := &Interner{
		index:  make(map[Type]TypeID, 64),
		byName: make(map[string]TypeID),
	}
	in.structs = append(in.structs, StructInfo{}) // reserve 0 as invalid sentinel
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.AbstractInt = in.Intern(Type{Kind: KindAbstractInt})
	in.builtins.AbstractFloat = in.Intern(Type{Kind: KindAbstractFloat})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.I32 = in.Intern(Type{Kind: KindI32})
	in.builtins.U32 = in.Intern(Type{Kind: KindU32})
	in.builtins.F32 = in.Intern(Type{Kind: KindF32})
	in.builtins.F16 = in.Intern(Type{Kind: KindF16})
	return in
}

// Builtins returns TypeIDs for the scalar types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind returns the kind of id, or KindInvalid.
func (in *Interner) Kind(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// Scalar returns the scalar type holding values of kind k.
func (in *Interner) Scalar(k number.Kind) TypeID {
	switch k {
	case number.KindAbstractInt:
		return in.builtins.AbstractInt
	case number.KindAbstractFloat:
		return in.builtins.AbstractFloat
	case number.KindBool:
		return in.builtins.Bool
	case number.KindI32:
		return in.builtins.I32
	case number.KindU32:
		return in.builtins.U32
	case number.KindF32:
		return in.builtins.F32
	case number.KindF16:
		return in.builtins.F16
	}
	return NoTypeID
}

// Vec returns vecN<elem>.
func (in *Interner) Vec(elem TypeID, n int) TypeID {
	if n < 2 || n > 4 {
		panic(fmt.Sprintf("types: invalid vector width %d", n))
	}
	return in.Intern(MakeVector(elem, uint32(n))) //nolint:gosec // checked above
}

// Mat returns the matrix with cols columns of type column.
func (in *Interner) Mat(column TypeID, cols int) TypeID {
	if in.Kind(column) != KindVector || cols < 2 || cols > 4 {
		panic("types: invalid matrix shape")
	}
	return in.Intern(MakeMatrix(column, uint32(cols))) //nolint:gosec // checked above
}

// MatOf returns matCxR<elem>.
func (in *Interner) MatOf(elem TypeID, cols, rows int) TypeID {
	return in.Mat(in.Vec(elem, rows), cols)
}

// Array returns array<elem, n>.
func (in *Interner) Array(elem TypeID, n int) TypeID {
	count, err := safecast.Conv[uint32](n)
	if err != nil || count == 0 {
		panic(fmt.Sprintf("types: invalid array length %d", n))
	}
	return in.Intern(MakeArray(elem, count))
}

// Struct registers a struct named name. Registering the same name again
// returns the existing TypeID when the members match and panics otherwise.
func (in *Interner) Struct(name string, members []Member) TypeID {
	if id, ok := in.byName[name]; ok {
		if !slices.Equal(in.structInfo(id).Members, members) {
			panic(fmt.Sprintf("types: struct %s redeclared with different members", name))
		}
		return id
	}
	slot := in.appendStructInfo(StructInfo{Name: name, Members: slices.Clone(members)})
	id := in.internRaw(Type{Kind: KindStruct, Payload: slot})
	in.byName[name] = id
	return id
}

// LookupStruct finds a struct by name.
func (in *Interner) LookupStruct(name string) (TypeID, bool) {
	id, ok := in.byName[name]
	return id, ok
}

// StructInfo returns metadata for the provided struct TypeID.
func (in *Interner) StructInfo(id TypeID) (*StructInfo, bool) {
	info := in.structInfo(id)
	return info, info != nil
}

func (in *Interner) appendStructInfo(info StructInfo) uint32 {
	slot, err := safecast.Conv[uint32](len(in.structs))
	if err != nil {
		panic(fmt.Errorf("struct info overflow: %w", err))
	}
	in.structs = append(in.structs, info)
	return slot
}

func (in *Interner) structInfo(id TypeID) *StructInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindStruct || tt.Payload == 0 || int(tt.Payload) >= len(in.structs) {
		return nil
	}
	return &in.structs[tt.Payload]
}

// Members returns the members of a struct type.
func (in *Interner) Members(id TypeID) []Member {
	info := in.structInfo(id)
	if info == nil {
		return nil
	}
	return info.Members
}

// Member returns the i-th member of a struct type.
func (in *Interner) Member(id TypeID, i int) Member {
	members := in.Members(id)
	if i < 0 || i >= len(members) {
		panic(fmt.Sprintf("types: member %d out of range for %s", i, in.Name(id)))
	}
	return members[i]
}

// Elements returns the element type and element count of a composite.
// Structs report NoTypeID and their member count; scalars report (NoTypeID, 0).
func (in *Interner) Elements(id TypeID) (elem TypeID, count int) {
	tt := in.MustLookup(id)
	switch tt.Kind {
	case KindVector, KindMatrix, KindArray:
		return tt.Elem, int(tt.Count)
	case KindStruct:
		return NoTypeID, len(in.Members(id))
	default:
		return NoTypeID, 0
	}
}

// ElementAt returns the type of the i-th element of a composite.
func (in *Interner) ElementAt(id TypeID, i int) TypeID {
	if in.Kind(id) == KindStruct {
		return in.Member(id, i).Type
	}
	elem, _ := in.Elements(id)
	return elem
}

// DeepestElement strips vectors, matrices and arrays down to the scalar (or
// struct) at the bottom.
func (in *Interner) DeepestElement(id TypeID) TypeID {
	for {
		tt := in.MustLookup(id)
		switch tt.Kind {
		case KindVector, KindMatrix, KindArray:
			id = tt.Elem
		default:
			return id
		}
	}
}

// ScalarKind returns the numeric kind of the deepest element.
func (in *Interner) ScalarKind(id TypeID) number.Kind {
	return in.Kind(in.DeepestElement(id)).Number()
}

// IsScalar reports whether id is a scalar type.
func (in *Interner) IsScalar(id TypeID) bool {
	return in.Kind(id).IsScalar()
}

// IsAbstract reports whether the deepest element of id is abstract.
func (in *Interner) IsAbstract(id TypeID) bool {
	return in.ScalarKind(id).IsAbstract()
}

// IsFloat reports whether the deepest element of id is a float kind.
func (in *Interner) IsFloat(id TypeID) bool {
	return in.ScalarKind(id).IsFloat()
}

// IsInteger reports whether the deepest element of id is an integer kind.
func (in *Interner) IsInteger(id TypeID) bool {
	return in.ScalarKind(id).IsInteger()
}

// IsSigned reports whether the deepest element of id is a signed numeric kind.
func (in *Interner) IsSigned(id TypeID) bool {
	k := in.ScalarKind(id)
	return k.IsSigned() && k != number.KindInvalid
}

// IsBool reports whether the deepest element of id is bool.
func (in *Interner) IsBool(id TypeID) bool {
	return in.ScalarKind(id) == number.KindBool
}

// WithScalar rebuilds id with its deepest scalar replaced by scalar, so
// vec3<abstract-int> becomes vec3<i32>. Structs are returned unchanged.
func (in *Interner) WithScalar(id, scalar TypeID) TypeID {
	tt := in.MustLookup(id)
	switch tt.Kind {
	case KindVector:
		return in.Intern(MakeVector(scalar, tt.Count))
	case KindMatrix:
		return in.Intern(MakeMatrix(in.WithScalar(tt.Elem, scalar), tt.Count))
	case KindArray:
		return in.Intern(MakeArray(in.WithScalar(tt.Elem, scalar), tt.Count))
	case KindStruct:
		return id
	default:
		return scalar
	}
}

// FrexpResult returns the result structure of frexp(t).
func (in *Interner) FrexpResult(t TypeID) TypeID {
	exp := in.builtins.I32
	if in.IsAbstract(t) {
		exp = in.builtins.AbstractInt
	}
	exp = in.WithScalar(t, exp)
	return in.builtinStruct("__frexp_result_"+in.mangle(t), []Member{
		{Name: "fract", Type: t},
		{Name: "exp", Type: exp},
	})
}

// ModfResult returns the result structure of modf(t).
func (in *Interner) ModfResult(t TypeID) TypeID {
	return in.builtinStruct("__modf_result_"+in.mangle(t), []Member{
		{Name: "fract", Type: t},
		{Name: "whole", Type: t},
	})
}

func (in *Interner) builtinStruct(name string, members []Member) TypeID {
	id := in.Struct(name, members)
	in.structInfo(id).Builtin = true
	return id
}

func (in *Interner) mangle(t TypeID) string {
	name := in.Name(t)
	r := strings.NewReplacer("<", "_", ">", "", "-", "_", ", ", "_")
	return r.Replace(name)
}

// Name renders id the way WGSL spells it.
func (in *Interner) Name(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindVector:
		return fmt.Sprintf("vec%d<%s>", tt.Count, in.Name(tt.Elem))
	case KindMatrix:
		col := in.MustLookup(tt.Elem)
		return fmt.Sprintf("mat%dx%d<%s>", tt.Count, col.Count, in.Name(col.Elem))
	case KindArray:
		return fmt.Sprintf("array<%s, %d>", in.Name(tt.Elem), tt.Count)
	case KindStruct:
		if info := in.structInfo(id); info != nil {
			return info.Name
		}
		return "<struct>"
	default:
		return tt.Kind.String()
	}
}
