package eval

import (
	"math"

	"tint/internal/constant"
	"tint/internal/number"
	"tint/internal/source"
	"tint/internal/types"
)

// lanes returns the float64 value of every component of a vector or scalar.
func (e *Eval) lanes(v constant.Value) []float64 {
	leaves := constant.Leaves(v)
	out := make([]float64, len(leaves))
	for i, l := range leaves {
		out[i] = number.Float64(l.Value())
	}
	return out
}

// packLanes places each lane in consecutive width-bit fields, first lane in
// the lowest bits.
func packLanes(width uint, fields []uint32) uint32 {
	var r uint32
	mask := uint32(1)<<width - 1
	for i, f := range fields {
		r |= (f & mask) << (width * uint(i)) //nolint:gosec // at most 4 lanes
	}
	return r
}

func unpackLanes(width uint, n int, x uint32) []uint32 {
	mask := uint32(1)<<width - 1
	out := make([]uint32, n)
	for i := range out {
		out[i] = x >> (width * uint(i)) & mask //nolint:gosec // at most 4 lanes
	}
	return out
}

// normPack quantizes every lane clamped to [lo, 1] as floor(0.5 + scale*x).
func (e *Eval) normPack(ty types.TypeID, arg constant.Value, width uint, lo, scale float64) constant.Value {
	vs := e.lanes(arg)
	fields := make([]uint32, len(vs))
	for i, x := range vs {
		q := math.Floor(0.5 + scale*math.Min(1, math.Max(lo, x)))
		fields[i] = uint32(int32(q)) //nolint:gosec // q fits in width bits
	}
	return e.mgr.Scalar(ty, number.U32(packLanes(width, fields)))
}

// Pack2x16Float implements pack2x16float(e). Components outside the f16 range
// are reported; runtime mode packs them as the nearest f16 limit.
func (e *Eval) Pack2x16Float(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	leaves := constant.Leaves(args[0])
	fields := make([]uint32, len(leaves))
	for i, l := range leaves {
		h, err := e.toF16(l.Value(), src)
		if err != nil {
			return nil, err
		}
		fields[i] = uint32(number.F16Bits(h))
	}
	return e.mgr.Scalar(ty, number.U32(packLanes(16, fields))), nil
}

// Pack2x16Snorm implements pack2x16snorm(e).
func (e *Eval) Pack2x16Snorm(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.normPack(ty, args[0], 16, -1, math.MaxInt16), nil
}

// Pack2x16Unorm implements pack2x16unorm(e).
func (e *Eval) Pack2x16Unorm(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.normPack(ty, args[0], 16, 0, math.MaxUint16), nil
}

// Pack4x8Snorm implements pack4x8snorm(e).
func (e *Eval) Pack4x8Snorm(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.normPack(ty, args[0], 8, -1, math.MaxInt8), nil
}

// Pack4x8Unorm implements pack4x8unorm(e).
func (e *Eval) Pack4x8Unorm(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.normPack(ty, args[0], 8, 0, math.MaxUint8), nil
}

// pack4x8 packs the low 8 bits of every integer lane, optionally clamped to
// [lo, hi] first.
func (e *Eval) pack4x8(ty types.TypeID, arg constant.Value, clamp bool, lo, hi int64) constant.Value {
	leaves := constant.Leaves(arg)
	fields := make([]uint32, len(leaves))
	for i, l := range leaves {
		v := number.Int64(l.Value())
		if clamp {
			v = min(max(v, lo), hi)
		}
		fields[i] = uint32(v) //nolint:gosec // only the low 8 bits are kept
	}
	return e.mgr.Scalar(ty, number.U32(packLanes(8, fields)))
}

// Pack4xI8 implements pack4xI8(e).
func (e *Eval) Pack4xI8(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.pack4x8(ty, args[0], false, 0, 0), nil
}

// Pack4xU8 implements pack4xU8(e).
func (e *Eval) Pack4xU8(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.pack4x8(ty, args[0], false, 0, 0), nil
}

// Pack4xI8Clamp implements pack4xI8Clamp(e).
func (e *Eval) Pack4xI8Clamp(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.pack4x8(ty, args[0], true, math.MinInt8, math.MaxInt8), nil
}

// Pack4xU8Clamp implements pack4xU8Clamp(e).
func (e *Eval) Pack4xU8Clamp(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.pack4x8(ty, args[0], true, 0, math.MaxUint8), nil
}

// unpackFloats builds a float vector of type ty from per-lane values.
func (e *Eval) unpackFloats(ty types.TypeID, vs []float64, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	els := make([]constant.Value, len(vs))
	for i, f := range vs {
		el, err := e.float(elTy, f, src)
		if err != nil {
			return nil, err
		}
		els[i] = el
	}
	return e.mgr.Composite(ty, els), nil
}

// Unpack2x16Float implements unpack2x16float(e).
func (e *Eval) Unpack2x16Float(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	fields := unpackLanes(16, 2, number.Bits(num(args[0])))
	vs := make([]float64, len(fields))
	for i, f := range fields {
		vs[i] = float64(number.F16FromBits(uint16(f))) //nolint:gosec // 16-bit field
	}
	return e.unpackFloats(ty, vs, src)
}

// Unpack2x16Snorm implements unpack2x16snorm(e).
func (e *Eval) Unpack2x16Snorm(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	fields := unpackLanes(16, 2, number.Bits(num(args[0])))
	vs := make([]float64, len(fields))
	for i, f := range fields {
		vs[i] = math.Max(float64(int16(f))/math.MaxInt16, -1) //nolint:gosec // 16-bit field
	}
	return e.unpackFloats(ty, vs, src)
}

// Unpack2x16Unorm implements unpack2x16unorm(e).
func (e *Eval) Unpack2x16Unorm(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	fields := unpackLanes(16, 2, number.Bits(num(args[0])))
	vs := make([]float64, len(fields))
	for i, f := range fields {
		vs[i] = float64(f) / math.MaxUint16
	}
	return e.unpackFloats(ty, vs, src)
}

// Unpack4x8Snorm implements unpack4x8snorm(e).
func (e *Eval) Unpack4x8Snorm(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	fields := unpackLanes(8, 4, number.Bits(num(args[0])))
	vs := make([]float64, len(fields))
	for i, f := range fields {
		vs[i] = math.Max(float64(int8(f))/math.MaxInt8, -1) //nolint:gosec // 8-bit field
	}
	return e.unpackFloats(ty, vs, src)
}

// Unpack4x8Unorm implements unpack4x8unorm(e).
func (e *Eval) Unpack4x8Unorm(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	fields := unpackLanes(8, 4, number.Bits(num(args[0])))
	vs := make([]float64, len(fields))
	for i, f := range fields {
		vs[i] = float64(f) / math.MaxUint8
	}
	return e.unpackFloats(ty, vs, src)
}

// Unpack4xI8 implements unpack4xI8(e), sign extending every byte.
func (e *Eval) Unpack4xI8(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	fields := unpackLanes(8, 4, number.Bits(num(args[0])))
	els := make([]constant.Value, len(fields))
	for i, f := range fields {
		els[i] = e.mgr.Scalar(elTy, number.I32(int8(f))) //nolint:gosec // 8-bit field
	}
	return e.mgr.Composite(ty, els), nil
}

// Unpack4xU8 implements unpack4xU8(e).
func (e *Eval) Unpack4xU8(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	fields := unpackLanes(8, 4, number.Bits(num(args[0])))
	els := make([]constant.Value, len(fields))
	for i, f := range fields {
		els[i] = e.mgr.Scalar(elTy, number.U32(f))
	}
	return e.mgr.Composite(ty, els), nil
}

// Dot4I8Packed implements dot4I8Packed(a, b) over signed bytes.
func (e *Eval) Dot4I8Packed(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	a := unpackLanes(8, 4, number.Bits(num(args[0])))
	b := unpackLanes(8, 4, number.Bits(num(args[1])))
	var r int32
	for i := range a {
		r += int32(int8(a[i])) * int32(int8(b[i])) //nolint:gosec // 8-bit fields
	}
	return e.mgr.Scalar(ty, number.I32(r)), nil
}

// Dot4U8Packed implements dot4U8Packed(a, b) over unsigned bytes.
func (e *Eval) Dot4U8Packed(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	a := unpackLanes(8, 4, number.Bits(num(args[0])))
	b := unpackLanes(8, 4, number.Bits(num(args[1])))
	var r uint32
	for i := range a {
		r += a[i] * b[i]
	}
	return e.mgr.Scalar(ty, number.U32(r)), nil
}
