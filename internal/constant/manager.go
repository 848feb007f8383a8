package constant

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tint/internal/number"
	"tint/internal/types"
)

type scalarKey struct {
	typ  types.TypeID
	bits uint64
}

type splatKey struct {
	typ types.TypeID
	el  uint32
}

type compositeKey struct {
	typ types.TypeID
	els string
}

// Manager creates and interns constant values. It is not safe for concurrent
// use; each compilation owns its own Manager.
type Manager struct {
	types      *types.Interner
	scalars    map[scalarKey]*Scalar
	splats     map[splatKey]*Splat
	composites map[compositeKey]*Composite
	next       uint32
}

// NewManager returns a Manager building values of types owned by in.
func NewManager(in *types.Interner) *Manager {
	return &Manager{
		types:      in,
		scalars:    make(map[scalarKey]*Scalar),
		splats:     make(map[splatKey]*Splat),
		composites: make(map[compositeKey]*Composite),
	}
}

// Types returns the type interner.
func (m *Manager) Types() *types.Interner { return m.types }

func (m *Manager) nextID() uint32 {
	m.next++
	return m.next
}

// Scalar returns the interned scalar of type ty holding n. The kind of n must
// match ty.
func (m *Manager) Scalar(ty types.TypeID, n number.Number) *Scalar {
	if got, want := n.Kind(), m.types.Kind(ty).Number(); got != want {
		panic(fmt.Sprintf("constant: %s value for type %s", got, m.types.Name(ty)))
	}
	key := scalarKey{typ: ty, bits: bitsOf(n)}
	if s, ok := m.scalars[key]; ok {
		return s
	}
	s := &Scalar{typ: ty, val: n, ident: m.nextID()}
	m.scalars[key] = s
	return s
}

// Number returns the scalar holding n, typed by n's kind.
func (m *Manager) Number(n number.Number) *Scalar {
	return m.Scalar(m.types.Scalar(n.Kind()), n)
}

func (m *Manager) Bool(b bool) *Scalar { return m.Number(number.Bool(b)) }
func (m *Manager) AInt(v int64) *Scalar { return m.Number(number.AInt(v)) }
func (m *Manager) AFloat(v float64) *Scalar { return m.Number(number.AFloat(v)) }
func (m *Manager) I32(v int32) *Scalar { return m.Number(number.I32(v)) }
func (m *Manager) U32(v uint32) *Scalar { return m.Number(number.U32(v)) }
func (m *Manager) F32(v float32) *Scalar { return m.Number(number.F32(v)) }
func (m *Manager) F16(v float64) *Scalar { return m.Number(number.NewF16(v)) }

func bitsOf(n number.Number) uint64 {
	switch v := n.(type) {
	case number.Bool:
		if v {
			return 1
		}
		return 0
	case number.AInt, number.I32, number.U32:
		return uint64(number.Int64(v)) //nolint:gosec // bit pattern
	default:
		return math.Float64bits(number.Float64(v))
	}
}

// Splat returns a value of composite type ty whose elements are all el.
func (m *Manager) Splat(ty types.TypeID, el Value) *Splat {
	elem, count := m.types.Elements(ty)
	if m.types.Kind(ty) == types.KindStruct || count == 0 {
		panic(fmt.Sprintf("constant: cannot splat %s", m.types.Name(ty)))
	}
	if el.Type() != elem {
		panic(fmt.Sprintf("constant: splat element %s for %s",
			m.types.Name(el.Type()), m.types.Name(ty)))
	}
	key := splatKey{typ: ty, el: el.id()}
	if s, ok := m.splats[key]; ok {
		return s
	}
	s := &Splat{typ: ty, el: el, count: count, ident: m.nextID()}
	m.splats[key] = s
	return s
}

// Composite returns a value of type ty with the given elements. The result is
// always a *Composite, even when every element is the same.
func (m *Manager) Composite(ty types.TypeID, els []Value) *Composite {
	_, count := m.types.Elements(ty)
	if len(els) != count || count == 0 {
		panic(fmt.Sprintf("constant: %d elements for %s", len(els), m.types.Name(ty)))
	}
	var sb strings.Builder
	allZero, anyZero := true, false
	for i, el := range els {
		if el.Type() != m.types.ElementAt(ty, i) {
			panic(fmt.Sprintf("constant: element %d of %s has type %s",
				i, m.types.Name(ty), m.types.Name(el.Type())))
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(el.id()), 36))
		allZero = allZero && el.AllZero()
		anyZero = anyZero || el.AnyZero()
	}
	key := compositeKey{typ: ty, els: sb.String()}
	if c, ok := m.composites[key]; ok {
		return c
	}
	c := &Composite{
		typ:     ty,
		els:     append([]Value(nil), els...),
		allZero: allZero,
		anyZero: anyZero,
		ident:   m.nextID(),
	}
	m.composites[key] = c
	return c
}

// Zero returns the zero value of ty: a zero scalar, a splat of the zero
// element for vectors, matrices and arrays, and a composite for structs.
func (m *Manager) Zero(ty types.TypeID) Value {
	switch kind := m.types.Kind(ty); {
	case kind.IsScalar():
		return m.Scalar(ty, number.Zero(kind.Number()))
	case kind == types.KindStruct:
		members := m.types.Members(ty)
		els := make([]Value, len(members))
		for i, mem := range members {
			els[i] = m.Zero(mem.Type)
		}
		return m.Composite(ty, els)
	case kind == types.KindVector, kind == types.KindMatrix, kind == types.KindArray:
		elem, _ := m.types.Elements(ty)
		return m.Splat(ty, m.Zero(elem))
	default:
		panic(fmt.Sprintf("constant: no zero value for %s", m.types.Name(ty)))
	}
}

func signbit(f float64) bool { return math.Signbit(f) }
