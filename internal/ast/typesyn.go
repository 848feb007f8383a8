package ast

import (
	"tint/internal/source"
)

// TypeExpr is a possibly templated name: `f32`, `vec3<f32>`, `array<i32, 4>`,
// `bitcast<u32>`. For `array` the element count, when present, is Size.
type TypeExpr struct {
	Name     string
	NameSpan source.Span
	Args     []TypeID
	Size     ExprID
	Span     source.Span
}

// Templated reports whether the name was followed by a template list.
func (t *TypeExpr) Templated() bool {
	return len(t.Args) > 0 || t.Size.IsValid()
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{
		Arena: NewArena[TypeExpr](capHint),
	}
}

func (t *TypeExprs) New(te TypeExpr) TypeID {
	return TypeID(t.Arena.Allocate(te))
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}
