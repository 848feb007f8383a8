package eval

import (
	"fmt"
	"math"

	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/number"
	"tint/internal/source"
	"tint/internal/types"
)

// Identity returns its single argument.
func (e *Eval) Identity(_ types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return args[0], nil
}

// Zero returns the zero value of ty.
func (e *Eval) Zero(ty types.TypeID, _ []constant.Value, _ source.Span) (constant.Value, error) {
	return e.mgr.Zero(ty), nil
}

// VecSplat builds vecN<T>(s).
func (e *Eval) VecSplat(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	if len(args) != 1 {
		panic("eval: vector splat needs one argument")
	}
	return e.mgr.Splat(ty, args[0]), nil
}

// VecInitS builds a vector from one scalar per component.
func (e *Eval) VecInitS(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.mgr.Composite(ty, args), nil
}

// VecInitM builds a vector from a mix of scalars and vectors, whose
// components are taken in order.
func (e *Eval) VecInitM(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	var els []constant.Value
	for _, arg := range args {
		n := e.arity(arg)
		if n == 0 {
			els = append(els, arg)
			continue
		}
		for i := 0; i < n; i++ {
			els = append(els, arg.Index(i))
		}
	}
	return e.mgr.Composite(ty, els), nil
}

// MatInitS builds a matrix from its scalars in column-major order.
func (e *Eval) MatInitS(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	column, cols := e.types.Elements(ty)
	_, rows := e.types.Elements(column)
	if len(args) != cols*rows {
		panic(fmt.Sprintf("eval: %d scalars for %s", len(args), e.types.Name(ty)))
	}
	columns := make([]constant.Value, cols)
	for c := 0; c < cols; c++ {
		columns[c] = e.mgr.Composite(column, args[c*rows:(c+1)*rows])
	}
	return e.mgr.Composite(ty, columns), nil
}

// MatInitV builds a matrix from its column vectors.
func (e *Eval) MatInitV(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.mgr.Composite(ty, args), nil
}

// ArrayOrStructInit builds an array or struct from its elements, or its zero
// value when there are none.
func (e *Eval) ArrayOrStructInit(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	if len(args) == 0 {
		return e.mgr.Zero(ty), nil
	}
	return e.mgr.Composite(ty, args), nil
}

// Index returns obj[idx]. Out of range indices are reported; runtime mode
// yields the zero value of the element type.
func (e *Eval) Index(obj, idx constant.Value, src source.Span) (constant.Value, error) {
	if obj == nil || idx == nil {
		return nil, nil
	}
	elem, count := e.types.Elements(obj.Type())
	i := number.Int64(num(idx))
	if i < 0 || i >= int64(count) {
		msg := fmt.Sprintf("index %d out of bounds", i)
		if count > 0 {
			msg += fmt.Sprintf(" [0..%d]", count-1)
		}
		return e.failValue(diag.ConstIndexOutOfBounds, src, msg, e.mgr.Zero(elem))
	}
	return obj.Index(int(i)), nil
}

// Swizzle selects vector components. A single index yields a scalar.
func (e *Eval) Swizzle(ty types.TypeID, obj constant.Value, indices []int) (constant.Value, error) {
	if obj == nil {
		return nil, nil
	}
	if len(indices) == 1 {
		return obj.Index(indices[0]), nil
	}
	els := make([]constant.Value, len(indices))
	for i, idx := range indices {
		els[i] = obj.Index(idx)
	}
	return e.mgr.Composite(ty, els), nil
}

// MemberAccess returns the member-th member of a struct value.
func (e *Eval) MemberAccess(obj constant.Value, member int) (constant.Value, error) {
	if obj == nil {
		return nil, nil
	}
	return obj.Index(member), nil
}

// Bitcast reinterprets the bits of its argument. Source and target are
// 32-bit scalars, vectors of them, or vectors of f16 with a matching total
// width.
func (e *Eval) Bitcast(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	arg := args[0]
	if arg.Type() == ty {
		return arg, nil
	}
	var halves []uint16
	for _, leaf := range constant.Leaves(arg) {
		switch n := leaf.Value().(type) {
		case number.F16:
			halves = append(halves, number.F16Bits(n))
		case number.F32:
			bits := math.Float32bits(float32(n))
			halves = append(halves, uint16(bits), uint16(bits>>16)) //nolint:gosec // split into halves
		case number.I32, number.U32:
			bits := number.Bits(n)
			halves = append(halves, uint16(bits), uint16(bits>>16)) //nolint:gosec // split into halves
		default:
			panic(fmt.Sprintf("eval: bitcast from %s", n.Kind()))
		}
	}

	elTy := e.elemType(ty)
	k := e.types.Kind(elTy).Number()
	lane := func(i int) (constant.Value, error) {
		if k == number.KindF16 {
			return e.scalar(elTy, number.F16FromBits(halves[i]), src)
		}
		bits := uint32(halves[2*i]) | uint32(halves[2*i+1])<<16
		switch k {
		case number.KindF32:
			return e.scalar(elTy, number.F32(math.Float32frombits(bits)), src)
		case number.KindI32, number.KindU32:
			return e.mgr.Scalar(elTy, number.FromBits(k, bits)), nil
		}
		panic(fmt.Sprintf("eval: bitcast to %s", k))
	}

	_, n := e.types.Elements(ty)
	if n == 0 {
		return lane(0)
	}
	els := make([]constant.Value, n)
	for i := 0; i < n; i++ {
		el, err := lane(i)
		if err != nil {
			return nil, err
		}
		els[i] = el
	}
	return e.mgr.Composite(ty, els), nil
}
