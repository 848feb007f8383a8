package ast

import (
	"tint/internal/source"
)

type ItemKind uint8

const (
	ItemConst ItemKind = iota
	ItemConstAssert
	ItemStruct
	ItemAlias
)

func (k ItemKind) String() string {
	switch k {
	case ItemConst:
		return "const"
	case ItemConstAssert:
		return "const_assert"
	case ItemStruct:
		return "struct"
	case ItemAlias:
		return "alias"
	default:
		return "item"
	}
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// ConstItem is `const name [: type] = value;`.
type ConstItem struct {
	Name     string
	NameSpan source.Span
	Type     TypeID // NoTypeID when inferred
	Value    ExprID
	Span     source.Span
}

// ConstAssertItem is `const_assert cond;`.
type ConstAssertItem struct {
	Cond ExprID
	Span source.Span
}

// StructItem is `struct Name { member: type, ... }`.
type StructItem struct {
	Name     string
	NameSpan source.Span
	Fields   []StructField
	Span     source.Span
}

type StructField struct {
	Name string
	Type TypeID
	Span source.Span
}

// AliasItem is `alias Name = type;`.
type AliasItem struct {
	Name     string
	NameSpan source.Span
	Target   TypeID
	Span     source.Span
}

type Items struct {
	Arena   *Arena[Item]
	Consts  *Arena[ConstItem]
	Asserts *Arena[ConstAssertItem]
	Structs *Arena[StructItem]
	Aliases *Arena[AliasItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Consts:  NewArena[ConstItem](capHint),
		Asserts: NewArena[ConstAssertItem](capHint),
		Structs: NewArena[StructItem](capHint),
		Aliases: NewArena[AliasItem](capHint),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewConst(c ConstItem) ItemID {
	return i.New(ItemConst, c.Span, PayloadID(i.Consts.Allocate(c)))
}

func (i *Items) Const(id ItemID) (*ConstItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemConst {
		return nil, false
	}
	return i.Consts.Get(uint32(item.Payload)), true
}

func (i *Items) NewConstAssert(a ConstAssertItem) ItemID {
	return i.New(ItemConstAssert, a.Span, PayloadID(i.Asserts.Allocate(a)))
}

func (i *Items) ConstAssert(id ItemID) (*ConstAssertItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemConstAssert {
		return nil, false
	}
	return i.Asserts.Get(uint32(item.Payload)), true
}

func (i *Items) NewStruct(s StructItem) ItemID {
	return i.New(ItemStruct, s.Span, PayloadID(i.Structs.Allocate(s)))
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(item.Payload)), true
}

func (i *Items) NewAlias(a AliasItem) ItemID {
	return i.New(ItemAlias, a.Span, PayloadID(i.Aliases.Allocate(a)))
}

func (i *Items) Alias(id ItemID) (*AliasItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemAlias {
		return nil, false
	}
	return i.Aliases.Get(uint32(item.Payload)), true
}
