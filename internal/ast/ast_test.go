package ast

import (
	"testing"

	"tint/internal/source"
)

func TestArenaZeroIsAbsent(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be absent")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 {
		t.Fatalf("got id %d", id)
	}
	if a.Get(2) != nil {
		t.Fatalf("out of range index must be absent")
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{Start: 0, End: 1}
	lit := b.Exprs.NewLiteral(sp, ExprLitInt, "1i")
	id := b.Exprs.NewIdent(sp, "x")
	bin := b.Exprs.NewBinary(sp, ExprBinaryAdd, lit, id)

	if _, ok := b.Exprs.Ident(lit); ok {
		t.Fatalf("literal must not read as identifier")
	}
	data, ok := b.Exprs.Binary(bin)
	if !ok || data.Left != lit || data.Right != id || data.Op.String() != "+" {
		t.Fatalf("binary payload mismatch: %+v", data)
	}

	file := b.NewFile(sp)
	item := b.Items.NewConst(ConstItem{Name: "c", Value: bin, Span: sp})
	b.PushItem(file, item)
	if got := b.Files.Get(file).Items; len(got) != 1 || got[0] != item {
		t.Fatalf("items = %v", got)
	}
	if _, ok := b.Items.Struct(item); ok {
		t.Fatalf("const must not read as struct")
	}
	if c, ok := b.Items.Const(item); !ok || c.Name != "c" {
		t.Fatalf("const payload mismatch")
	}
}
