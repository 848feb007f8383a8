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

type arithFn func(src source.Span, a, b number.Number) (number.Number, error)

// vectorNumbers returns the scalar numbers of a vector value.
func (e *Eval) vectorNumbers(v constant.Value) []number.Number {
	n := e.arity(v)
	out := make([]number.Number, n)
	for i := 0; i < n; i++ {
		out[i] = num(v.Index(i))
	}
	return out
}

// Complement implements ~e.
func (e *Eval) Complement(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformUnary(ty, args[0], func(c constant.Value) (constant.Value, error) {
		return dispatchAIU(func(n ...number.Number) (constant.Value, error) {
			switch v := n[0].(type) {
			case number.AInt:
				return e.mgr.Scalar(elTy, ^v), nil
			default:
				return e.mgr.Scalar(elTy, number.FromBits(v.Kind(), ^number.Bits(v))), nil
			}
		}, c)
	})
}

// UnaryMinus implements -e. Negating the lowest integer yields itself.
func (e *Eval) UnaryMinus(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformUnary(ty, args[0], func(c constant.Value) (constant.Value, error) {
		return dispatchFIA(func(n ...number.Number) (constant.Value, error) {
			v := n[0]
			if v.Kind() == number.KindAbstractInt && v == number.AInt(math.MinInt64) {
				return e.mgr.Scalar(elTy, v), nil
			}
			r, err := number.Neg(v)
			if err != nil {
				panic(fmt.Sprintf("eval: negation failed: %v", err))
			}
			return e.scalar(elTy, r, src)
		}, c)
	})
}

// Not implements !e.
func (e *Eval) Not(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.transformUnary(ty, args[0], func(c constant.Value) (constant.Value, error) {
		return dispatchB(func(n ...number.Number) (constant.Value, error) {
			return e.mgr.Bool(!bool(n[0].(number.Bool))), nil
		}, c)
	})
}

func (e *Eval) arithmetic(ty types.TypeID, args []constant.Value, src source.Span, op arithFn) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformBinaryDifferingArity(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatchFIAU(func(n ...number.Number) (constant.Value, error) {
			r, err := op(src, n[0], n[1])
			if err != nil {
				return nil, err
			}
			return e.scalar(elTy, r, src)
		}, a, b)
	})
}

// OpPlus implements e1 + e2, including scalar-vector forms.
func (e *Eval) OpPlus(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.arithmetic(ty, args, src, e.add)
}

// OpMinus implements e1 - e2.
func (e *Eval) OpMinus(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.arithmetic(ty, args, src, e.sub)
}

// OpMultiply implements componentwise e1 * e2, including matrix-scalar forms.
func (e *Eval) OpMultiply(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.arithmetic(ty, args, src, e.mul)
}

// OpDivide implements e1 / e2.
func (e *Eval) OpDivide(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.arithmetic(ty, args, src, e.div)
}

// OpModulo implements e1 % e2.
func (e *Eval) OpModulo(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.arithmetic(ty, args, src, e.mod)
}

// OpMultiplyMatVec implements m * v.
func (e *Eval) OpMultiplyMatVec(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	m, v := args[0], args[1]
	elTy := e.elemType(ty)
	cols := e.arity(m)
	rows := e.arity(m.Index(0))
	vec := e.vectorNumbers(v)
	els := make([]constant.Value, rows)
	for r := 0; r < rows; r++ {
		row := make([]number.Number, cols)
		for c := 0; c < cols; c++ {
			row[c] = num(m.Index(c).Index(r))
		}
		d, err := e.dotN(src, row, vec)
		if err != nil {
			return nil, err
		}
		if els[r], err = e.scalar(elTy, d, src); err != nil {
			return nil, err
		}
	}
	return e.mgr.Composite(ty, els), nil
}

// OpMultiplyVecMat implements v * m.
func (e *Eval) OpMultiplyVecMat(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	v, m := args[0], args[1]
	elTy := e.elemType(ty)
	cols := e.arity(m)
	vec := e.vectorNumbers(v)
	els := make([]constant.Value, cols)
	for c := 0; c < cols; c++ {
		d, err := e.dotN(src, vec, e.vectorNumbers(m.Index(c)))
		if err != nil {
			return nil, err
		}
		if els[c], err = e.scalar(elTy, d, src); err != nil {
			return nil, err
		}
	}
	return e.mgr.Composite(ty, els), nil
}

// OpMultiplyMatMat implements m1 * m2.
func (e *Eval) OpMultiplyMatMat(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	m1, m2 := args[0], args[1]
	elTy := e.elemType(ty)
	column, _ := e.types.Elements(ty)
	inner := e.arity(m1)
	rows := e.arity(m1.Index(0))
	cols := e.arity(m2)
	out := make([]constant.Value, cols)
	for c := 0; c < cols; c++ {
		col := e.vectorNumbers(m2.Index(c))
		els := make([]constant.Value, rows)
		for r := 0; r < rows; r++ {
			row := make([]number.Number, inner)
			for k := 0; k < inner; k++ {
				row[k] = num(m1.Index(k).Index(r))
			}
			d, err := e.dotN(src, row, col)
			if err != nil {
				return nil, err
			}
			if els[r], err = e.scalar(elTy, d, src); err != nil {
				return nil, err
			}
		}
		out[c] = e.mgr.Composite(column, els)
	}
	return e.mgr.Composite(ty, out), nil
}

type compareFn func(a, b number.Number) bool

func (e *Eval) compare(ty types.TypeID, args []constant.Value, set kindSet, f compareFn) (constant.Value, error) {
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatch("comparison", set, func(n ...number.Number) (constant.Value, error) {
			return e.mgr.Bool(f(n[0], n[1])), nil
		}, []constant.Value{a, b})
	})
}

// OpEqual implements e1 == e2.
func (e *Eval) OpEqual(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.compare(ty, args, setFIAUB, number.Equal)
}

// OpNotEqual implements e1 != e2.
func (e *Eval) OpNotEqual(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.compare(ty, args, setFIAUB, func(a, b number.Number) bool { return !number.Equal(a, b) })
}

// OpLessThan implements e1 < e2.
func (e *Eval) OpLessThan(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.compare(ty, args, setFIAU, number.Less)
}

// OpGreaterThan implements e1 > e2.
func (e *Eval) OpGreaterThan(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.compare(ty, args, setFIAU, func(a, b number.Number) bool { return number.Less(b, a) })
}

// OpLessThanEqual implements e1 <= e2.
func (e *Eval) OpLessThanEqual(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.compare(ty, args, setFIAU, func(a, b number.Number) bool {
		return number.Less(a, b) || number.Equal(a, b)
	})
}

// OpGreaterThanEqual implements e1 >= e2.
func (e *Eval) OpGreaterThanEqual(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.compare(ty, args, setFIAU, func(a, b number.Number) bool {
		return number.Less(b, a) || number.Equal(a, b)
	})
}

// OpLogicalAnd implements e1 && e2 on evaluated operands.
func (e *Eval) OpLogicalAnd(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.compare(ty, args, setB, func(a, b number.Number) bool {
		return bool(a.(number.Bool)) && bool(b.(number.Bool))
	})
}

// OpLogicalOr implements e1 || e2 on evaluated operands.
func (e *Eval) OpLogicalOr(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.compare(ty, args, setB, func(a, b number.Number) bool {
		return bool(a.(number.Bool)) || bool(b.(number.Bool))
	})
}

func (e *Eval) bitwise(ty types.TypeID, args []constant.Value, boolOp func(a, b bool) bool, intOp func(a, b uint64) uint64) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatchAIUB(func(n ...number.Number) (constant.Value, error) {
			switch x := n[0].(type) {
			case number.Bool:
				return e.mgr.Bool(boolOp(bool(x), bool(n[1].(number.Bool)))), nil
			case number.AInt:
				r := intOp(uint64(x), uint64(n[1].(number.AInt))) //nolint:gosec // bit pattern
				return e.mgr.Scalar(elTy, number.AInt(r)), nil //nolint:gosec // bit pattern
			default:
				r := intOp(uint64(number.Bits(x)), uint64(number.Bits(n[1])))
				return e.mgr.Scalar(elTy, number.FromBits(x.Kind(), uint32(r))), nil //nolint:gosec // 32-bit operands
			}
		}, a, b)
	})
}

// OpAnd implements e1 & e2.
func (e *Eval) OpAnd(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.bitwise(ty, args,
		func(a, b bool) bool { return a && b },
		func(a, b uint64) uint64 { return a & b })
}

// OpOr implements e1 | e2.
func (e *Eval) OpOr(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.bitwise(ty, args,
		func(a, b bool) bool { return a || b },
		func(a, b uint64) uint64 { return a | b })
}

// OpXor implements e1 ^ e2.
func (e *Eval) OpXor(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.bitwise(ty, args,
		func(a, b bool) bool { return a != b },
		func(a, b uint64) uint64 { return a ^ b })
}

// shiftAmount reads the right operand of a shift. Negative abstract amounts
// are treated as too large.
func shiftAmount(n number.Number) uint64 {
	i := number.Int64(n)
	if i < 0 {
		return math.MaxUint64
	}
	return uint64(i)
}

// OpShiftLeft implements e1 << e2.
func (e *Eval) OpShiftLeft(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatchAIU(func(n ...number.Number) (constant.Value, error) {
			r, err := e.shiftLeft(src, n[0], n[1])
			if err != nil {
				return nil, err
			}
			return e.mgr.Scalar(elTy, r), nil
		}, a, b)
	})
}

func (e *Eval) shiftLeft(src source.Span, e1, e2 number.Number) (number.Number, error) {
	amount := shiftAmount(e2)
	if v, ok := e1.(number.AInt); ok {
		const width = 64
		bits := uint64(v) //nolint:gosec // bit pattern
		if amount < width {
			// the amount+1 most significant bits must agree or the sign changes
			mask := ^uint64(0) << (width - (amount + 1))
			if m := bits & mask; m != 0 && m != mask {
				if err := e.check(diag.ConstShift, src, "shift left operation results in sign change"); err != nil {
					return nil, err
				}
			}
			return number.AInt(bits << amount), nil //nolint:gosec // bit pattern
		}
		if v != 0 {
			if err := e.check(diag.ConstOverflow, src, overflowMessage(e1, "<<", e2)); err != nil {
				return nil, err
			}
		}
		return number.AInt(0), nil
	}

	const width = 32
	if amount >= width {
		msg := fmt.Sprintf("shift left value must be less than the bit width of the lhs, which is %d", width)
		if err := e.check(diag.ConstShift, src, msg); err != nil {
			return nil, err
		}
		amount %= width
	}
	bits := number.Bits(e1)
	if e1.Kind().IsSigned() {
		mask := ^uint32(0) << (width - (amount + 1))
		if m := bits & mask; m != 0 && m != mask {
			if err := e.check(diag.ConstShift, src, "shift left operation results in sign change"); err != nil {
				return nil, err
			}
		}
	} else if amount != 0 {
		mask := ^uint32(0) << (width - amount)
		if bits&mask != 0 {
			if err := e.check(diag.ConstOverflow, src, overflowMessage(e1, "<<", e2)); err != nil {
				return nil, err
			}
		}
	}
	return number.FromBits(e1.Kind(), bits<<amount), nil
}

// OpShiftRight implements e1 >> e2: arithmetic for signed operands, logical
// for unsigned ones.
func (e *Eval) OpShiftRight(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatchAIU(func(n ...number.Number) (constant.Value, error) {
			r, err := e.shiftRight(src, n[0], n[1])
			if err != nil {
				return nil, err
			}
			return e.mgr.Scalar(elTy, r), nil
		}, a, b)
	})
}

func (e *Eval) shiftRight(src source.Span, e1, e2 number.Number) (number.Number, error) {
	amount := shiftAmount(e2)
	if v, ok := e1.(number.AInt); ok {
		if amount >= 64 {
			if v < 0 {
				return number.AInt(-1), nil
			}
			return number.AInt(0), nil
		}
		return v >> amount, nil
	}

	const width = 32
	if amount >= width {
		// Same wording as the left shift diagnostic.
		msg := fmt.Sprintf("shift left value must be less than the bit width of the lhs, which is %d", width)
		if err := e.check(diag.ConstShift, src, msg); err != nil {
			return nil, err
		}
		amount %= width
	}
	switch v := e1.(type) {
	case number.I32:
		return v >> amount, nil
	case number.U32:
		return v >> amount, nil
	}
	panic(fmt.Sprintf("eval: shift right of %s", e1.Kind()))
}
