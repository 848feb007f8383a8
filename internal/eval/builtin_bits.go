package eval

import (
	"math/bits"

	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/number"
	"tint/internal/source"
	"tint/internal/types"
)

const bitWidth = 32

// bitsUnary applies f to the 32 bits of every i32 or u32 leaf of args[0].
func (e *Eval) bitsUnary(ty types.TypeID, args []constant.Value, f func(x uint32, signed bool) uint32) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformUnary(ty, args[0], func(c constant.Value) (constant.Value, error) {
		return dispatchIU(func(n ...number.Number) (constant.Value, error) {
			k := n[0].Kind()
			return e.mgr.Scalar(elTy, number.FromBits(k, f(number.Bits(n[0]), k.IsSigned()))), nil
		}, c)
	})
}

// CountLeadingZeros implements countLeadingZeros(e).
func (e *Eval) CountLeadingZeros(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.bitsUnary(ty, args, func(x uint32, _ bool) uint32 {
		return uint32(bits.LeadingZeros32(x)) //nolint:gosec // at most 32
	})
}

// CountOneBits implements countOneBits(e).
func (e *Eval) CountOneBits(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.bitsUnary(ty, args, func(x uint32, _ bool) uint32 {
		return uint32(bits.OnesCount32(x)) //nolint:gosec // at most 32
	})
}

// CountTrailingZeros implements countTrailingZeros(e).
func (e *Eval) CountTrailingZeros(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.bitsUnary(ty, args, func(x uint32, _ bool) uint32 {
		return uint32(bits.TrailingZeros32(x)) //nolint:gosec // at most 32
	})
}

// ReverseBits implements reverseBits(e).
func (e *Eval) ReverseBits(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.bitsUnary(ty, args, func(x uint32, _ bool) uint32 {
		return bits.Reverse32(x)
	})
}

// FirstLeadingBit implements firstLeadingBit(e). For signed values it finds
// the most significant bit that differs from the sign bit, so 0 and -1 have
// no such bit. A missing bit is reported as all ones.
func (e *Eval) FirstLeadingBit(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.bitsUnary(ty, args, func(x uint32, signed bool) uint32 {
		if signed && x&(1<<31) != 0 {
			x = ^x
		}
		if x == 0 {
			return ^uint32(0)
		}
		return uint32(bits.Len32(x) - 1) //nolint:gosec // at most 31
	})
}

// FirstTrailingBit implements firstTrailingBit(e).
func (e *Eval) FirstTrailingBit(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.bitsUnary(ty, args, func(x uint32, _ bool) uint32 {
		if x == 0 {
			return ^uint32(0)
		}
		return uint32(bits.TrailingZeros32(x)) //nolint:gosec // at most 31
	})
}

// bitRange validates offset and count against the 32 bit width. Runtime mode
// continues with both clamped into range.
func (e *Eval) bitRange(src source.Span, offset, count constant.Value) (o, c uint32, err error) {
	o, c = number.Bits(num(offset)), number.Bits(num(count))
	if o > bitWidth || c > bitWidth || uint64(o)+uint64(c) > bitWidth {
		const msg = "'offset' + 'count' must be less than or equal to the bit width of 'e'"
		if err = e.check(diag.ConstBitRange, src, msg); err != nil {
			return 0, 0, err
		}
		o = min(o, bitWidth)
		c = min(c, bitWidth-o)
	}
	return o, c, nil
}

// ExtractBits implements extractBits(e, offset, count). Signed values are
// sign extended from bit offset+count-1.
func (e *Eval) ExtractBits(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	o, c, err := e.bitRange(src, args[1], args[2])
	if err != nil {
		return nil, err
	}
	return e.bitsUnary(ty, args, func(x uint32, signed bool) uint32 {
		switch {
		case c == 0:
			return 0
		case c == bitWidth:
			return x
		}
		shl := bitWidth - o - c
		shr := bitWidth - c
		if signed {
			return uint32(int32(x<<shl) >> shr) //nolint:gosec // reinterpretation of the bits
		}
		return (x << shl) >> shr
	})
}

// InsertBits implements insertBits(e, newbits, offset, count).
func (e *Eval) InsertBits(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	o, c, err := e.bitRange(src, args[2], args[3])
	if err != nil {
		return nil, err
	}
	elTy := e.elemType(ty)
	mask := uint32((uint64(1)<<c - 1) << o) //nolint:gosec // c+o <= 32
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatchIU(func(n ...number.Number) (constant.Value, error) {
			x, nb := number.Bits(n[0]), number.Bits(n[1])
			r := x&^mask | (nb<<o)&mask
			return e.mgr.Scalar(elTy, number.FromBits(n[0].Kind(), r)), nil
		}, a, b)
	})
}
