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

type numberFn func(x number.Number) (number.Number, error)

// mathFn lifts a float64 function to a numberFn rounding to the kind of x.
func mathFn(f func(float64) float64) numberFn {
	return func(x number.Number) (number.Number, error) {
		return number.FromFloat(x.Kind(), f(number.Float64(x))), nil
	}
}

// floatUnary applies f to every leaf of args[0], which must be a float kind.
func (e *Eval) floatUnary(ty types.TypeID, args []constant.Value, src source.Span, f numberFn) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformUnary(ty, args[0], func(c constant.Value) (constant.Value, error) {
		return dispatchFA(func(n ...number.Number) (constant.Value, error) {
			r, err := f(n[0])
			if err != nil {
				return nil, err
			}
			return e.scalar(elTy, r, src)
		}, c)
	})
}

// domainCheck fails with msg when bad(x) holds; runtime mode continues with zero.
func (e *Eval) domainCheck(src source.Span, msg string, bad func(float64) bool, f func(float64) float64) numberFn {
	return func(x number.Number) (number.Number, error) {
		if bad(number.Float64(x)) {
			return e.fail(diag.ConstDomain, src, msg, number.Zero(x.Kind()))
		}
		return number.FromFloat(x.Kind(), f(number.Float64(x))), nil
	}
}

// Abs implements abs(e). The lowest signed integer is its own absolute value.
func (e *Eval) Abs(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformUnary(ty, args[0], func(c constant.Value) (constant.Value, error) {
		return dispatchFIAU(func(n ...number.Number) (constant.Value, error) {
			x := n[0]
			switch {
			case x.Kind() == number.KindU32:
				return e.mgr.Scalar(elTy, x), nil
			case x.Kind().IsFloat():
				return e.scalar(elTy, number.FromFloat(x.Kind(), math.Abs(number.Float64(x))), src)
			case number.Less(x, number.Zero(x.Kind())) && !number.Equal(x, number.LowestOf(x.Kind())):
				r, _ := number.Neg(x)
				return e.mgr.Scalar(elTy, r), nil
			}
			return e.mgr.Scalar(elTy, x), nil
		}, c)
	})
}

// Acos implements acos(e).
func (e *Eval) Acos(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, e.domainCheck(src,
		"acos must be called with a value in the range [-1 .. 1] (inclusive)",
		func(x float64) bool { return x < -1 || x > 1 }, math.Acos))
}

// Acosh implements acosh(e).
func (e *Eval) Acosh(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, e.domainCheck(src,
		"acosh must be called with a value >= 1.0",
		func(x float64) bool { return x < 1 }, math.Acosh))
}

// Asin implements asin(e).
func (e *Eval) Asin(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, e.domainCheck(src,
		"asin must be called with a value in the range [-1 .. 1] (inclusive)",
		func(x float64) bool { return x < -1 || x > 1 }, math.Asin))
}

// Asinh implements asinh(e).
func (e *Eval) Asinh(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Asinh))
}

// Atan implements atan(e).
func (e *Eval) Atan(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Atan))
}

// Atanh implements atanh(e).
func (e *Eval) Atanh(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, e.domainCheck(src,
		"atanh must be called with a value in the range (-1 .. 1) (exclusive)",
		func(x float64) bool { return x <= -1 || x >= 1 }, math.Atanh))
}

// Atan2 implements atan2(y, x).
func (e *Eval) Atan2(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatchFA(func(n ...number.Number) (constant.Value, error) {
			return e.float(elTy, math.Atan2(number.Float64(n[0]), number.Float64(n[1])), src)
		}, a, b)
	})
}

// Ceil implements ceil(e).
func (e *Eval) Ceil(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Ceil))
}

// Floor implements floor(e).
func (e *Eval) Floor(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Floor))
}

// Trunc implements trunc(e).
func (e *Eval) Trunc(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Trunc))
}

// Fract implements fract(e) as e - floor(e).
func (e *Eval) Fract(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(func(x float64) float64 { return x - math.Floor(x) }))
}

// Round implements round(e), rounding halfway cases to the even neighbor.
func (e *Eval) Round(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(roundHalfEven))
}

func roundHalfEven(x float64) float64 {
	integral := math.Trunc(x)
	if math.Abs(x-integral) != 0.5 {
		return math.Round(x)
	}
	// k is the lower of the two candidates k and k+1
	k := integral
	if integral < 0 {
		k = integral - 1
	}
	if math.Mod(k, 2) == 0 {
		return k
	}
	return k + 1
}

// Clamp implements clamp(e, low, high).
func (e *Eval) Clamp(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformTernary(ty, args[0], args[1], args[2], func(a, b, c constant.Value) (constant.Value, error) {
		return dispatchFIAU(func(n ...number.Number) (constant.Value, error) {
			r, err := e.clamp(src, n[0], n[1], n[2])
			if err != nil {
				return nil, err
			}
			return e.mgr.Scalar(elTy, r), nil
		}, a, b, c)
	})
}

// Saturate implements saturate(e) as clamp(e, 0, 1).
func (e *Eval) Saturate(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(func(x float64) float64 {
		return math.Min(math.Max(x, 0), 1)
	}))
}

// Cos implements cos(e).
func (e *Eval) Cos(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Cos))
}

// Cosh implements cosh(e).
func (e *Eval) Cosh(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Cosh))
}

// Sin implements sin(e).
func (e *Eval) Sin(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Sin))
}

// Sinh implements sinh(e).
func (e *Eval) Sinh(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Sinh))
}

// Tan implements tan(e).
func (e *Eval) Tan(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Tan))
}

// Tanh implements tanh(e).
func (e *Eval) Tanh(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, mathFn(math.Tanh))
}

// scaleBy returns e * (num / den) computed in the kind of x.
func (e *Eval) scaleBy(src source.Span, x number.Number, num, den float64) (number.Number, error) {
	k := x.Kind()
	scale, err := e.div(src, number.FromFloat(k, num), number.FromFloat(k, den))
	if err != nil {
		return nil, err
	}
	return e.mul(src, x, scale)
}

// Degrees implements degrees(e).
func (e *Eval) Degrees(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, func(x number.Number) (number.Number, error) {
		return e.scaleBy(src, x, 180, math.Pi)
	})
}

// Radians implements radians(e).
func (e *Eval) Radians(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, func(x number.Number) (number.Number, error) {
		return e.scaleBy(src, x, math.Pi, 180)
	})
}

func (e *Eval) expLike(src source.Span, base string, f func(float64) float64) numberFn {
	return func(x number.Number) (number.Number, error) {
		r := number.FromFloat(x.Kind(), f(number.Float64(x)))
		if rf := number.Float64(r); math.IsInf(rf, 0) || math.IsNaN(rf) {
			msg := fmt.Sprintf("'%s^%s' cannot be represented as '%s'", base, x, x.Kind())
			return e.fail(diag.ConstOverflow, src, msg, number.Zero(x.Kind()))
		}
		return r, nil
	}
}

// Exp implements exp(e).
func (e *Eval) Exp(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, e.expLike(src, "e", math.Exp))
}

// Exp2 implements exp2(e).
func (e *Eval) Exp2(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, e.expLike(src, "2", math.Exp2))
}

// Log implements log(e).
func (e *Eval) Log(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, e.domainCheck(src,
		"log must be called with a value > 0",
		func(x float64) bool { return x <= 0 }, math.Log))
}

// Log2 implements log2(e).
func (e *Eval) Log2(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, e.domainCheck(src,
		"log2 must be called with a value > 0",
		func(x float64) bool { return x <= 0 }, math.Log2))
}

// Sqrt implements sqrt(e).
func (e *Eval) Sqrt(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, func(x number.Number) (number.Number, error) {
		return e.sqrt(src, x)
	})
}

// InverseSqrt implements inverseSqrt(e).
func (e *Eval) InverseSqrt(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, e.domainCheck(src,
		"inverseSqrt must be called with a value > 0",
		func(x float64) bool { return x <= 0 },
		func(x float64) float64 { return 1 / math.Sqrt(x) }))
}

// Pow implements pow(e1, e2).
func (e *Eval) Pow(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatchFA(func(n ...number.Number) (constant.Value, error) {
			x, y := n[0], n[1]
			r := number.FromFloat(x.Kind(), math.Pow(number.Float64(x), number.Float64(y)))
			if rf := number.Float64(r); math.IsInf(rf, 0) || math.IsNaN(rf) {
				var err error
				if r, err = e.fail(diag.ConstOverflow, src, overflowMessage(x, "^", y), number.Zero(x.Kind())); err != nil {
					return nil, err
				}
			}
			return e.mgr.Scalar(elTy, r), nil
		}, a, b)
	})
}

// Fma implements fma(a, b, c) as a*b + c with checked steps.
func (e *Eval) Fma(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformTernary(ty, args[0], args[1], args[2], func(a, b, c constant.Value) (constant.Value, error) {
		return dispatchFA(func(n ...number.Number) (constant.Value, error) {
			m, err := e.mul(src, n[0], n[1])
			if err != nil {
				return nil, err
			}
			r, err := e.add(src, m, n[2])
			if err != nil {
				return nil, err
			}
			return e.scalar(elTy, r, src)
		}, a, b, c)
	})
}

// Max implements max(e1, e2).
func (e *Eval) Max(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatchFIAU(func(n ...number.Number) (constant.Value, error) {
			return e.mgr.Scalar(elTy, maxNum(n[0], n[1])), nil
		}, a, b)
	})
}

// Min implements min(e1, e2).
func (e *Eval) Min(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatchFIAU(func(n ...number.Number) (constant.Value, error) {
			return e.mgr.Scalar(elTy, minNum(n[0], n[1])), nil
		}, a, b)
	})
}

// Mix implements mix(e1, e2, e3) as e1*(1-e3) + e2*e3. e3 may be a scalar
// used for every component.
func (e *Eval) Mix(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformIndexed(ty, args[0], func(c constant.Value, i int) (constant.Value, error) {
		c2 := e.elementOrSelf(args[1], i)
		c3 := e.elementOrSelf(args[2], i)
		return dispatchFA(func(n ...number.Number) (constant.Value, error) {
			e1, e2, e3 := n[0], n[1], n[2]
			oneMinus, err := e.sub(src, number.FromInt(e3.Kind(), 1), e3)
			if err != nil {
				return nil, err
			}
			a, err := e.mul(src, e1, oneMinus)
			if err != nil {
				return nil, err
			}
			b, err := e.mul(src, e2, e3)
			if err != nil {
				return nil, err
			}
			r, err := e.add(src, a, b)
			if err != nil {
				return nil, err
			}
			return e.scalar(elTy, r, src)
		}, c, c2, c3)
	})
}

// Sign implements sign(e).
func (e *Eval) Sign(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformUnary(ty, args[0], func(c constant.Value) (constant.Value, error) {
		return dispatchFIA(func(n ...number.Number) (constant.Value, error) {
			x := n[0]
			zero := number.Zero(x.Kind())
			switch {
			case number.Less(zero, x):
				return e.mgr.Scalar(elTy, number.FromInt(x.Kind(), 1)), nil
			case number.Less(x, zero):
				return e.mgr.Scalar(elTy, number.FromInt(x.Kind(), -1)), nil
			}
			return e.mgr.Scalar(elTy, zero), nil
		}, c)
	})
}

// Step implements step(edge, x): 1 when edge <= x, otherwise 0.
func (e *Eval) Step(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		return dispatchFA(func(n ...number.Number) (constant.Value, error) {
			edge, x := n[0], n[1]
			if number.Less(x, edge) {
				return e.mgr.Scalar(elTy, number.Zero(x.Kind())), nil
			}
			return e.mgr.Scalar(elTy, number.FromInt(x.Kind(), 1)), nil
		}, a, b)
	})
}

// Smoothstep implements smoothstep(low, high, x). low == high is reported;
// runtime mode carries on with the formula.
func (e *Eval) Smoothstep(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	return e.transformTernary(ty, args[0], args[1], args[2], func(a, b, c constant.Value) (constant.Value, error) {
		return dispatchFA(func(n ...number.Number) (constant.Value, error) {
			low, high, x := n[0], n[1], n[2]
			k := x.Kind()
			if number.Equal(low, high) {
				msg := fmt.Sprintf("smoothstep called with 'low' (%s) equal to 'high' (%s)", low, high)
				if err := e.check(diag.ConstDomain, src, msg); err != nil {
					return nil, err
				}
			}
			num, err := e.sub(src, x, low)
			if err != nil {
				return nil, err
			}
			den, err := e.sub(src, high, low)
			if err != nil {
				return nil, err
			}
			t, err := e.div(src, num, den)
			if err != nil {
				return nil, err
			}
			t = minNum(maxNum(t, number.Zero(k)), number.FromInt(k, 1))
			twoT, err := e.mul(src, number.FromInt(k, 2), t)
			if err != nil {
				return nil, err
			}
			threeMinus, err := e.sub(src, number.FromInt(k, 3), twoT)
			if err != nil {
				return nil, err
			}
			tt, err := e.mul(src, t, t)
			if err != nil {
				return nil, err
			}
			r, err := e.mul(src, tt, threeMinus)
			if err != nil {
				return nil, err
			}
			return e.scalar(elTy, r, src)
		}, a, b, c)
	})
}

// Select implements select(f, t, cond). A scalar cond picks a whole value.
func (e *Eval) Select(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	f, t, cond := args[0], args[1], args[2]
	if isScalar(cond) {
		if bool(num(cond).(number.Bool)) {
			return t, nil
		}
		return f, nil
	}
	return e.transformTernary(ty, f, t, cond, func(a, b, c constant.Value) (constant.Value, error) {
		if bool(num(c).(number.Bool)) {
			return b, nil
		}
		return a, nil
	})
}

// All implements all(e).
func (e *Eval) All(_ types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.mgr.Bool(!args[0].AnyZero()), nil
}

// Any implements any(e).
func (e *Eval) Any(_ types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	return e.mgr.Bool(!args[0].AllZero()), nil
}

// Frexp implements frexp(e), returning the __frexp_result structure ty.
func (e *Eval) Frexp(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	fractTy := e.types.Member(ty, 0).Type
	expTy := e.types.Member(ty, 1).Type
	expEl := e.elemType(expTy)
	split := func(c constant.Value) (fract, exp constant.Value, err error) {
		x := num(c)
		fr, ex := math.Frexp(number.Float64(x))
		if fract, err = e.float(c.Type(), fr, src); err != nil {
			return nil, nil, err
		}
		return fract, e.mgr.Scalar(expEl, number.FromInt(e.types.Kind(expEl).Number(), int64(ex))), nil
	}
	arg := args[0]
	if isScalar(arg) {
		fract, exp, err := split(arg)
		if err != nil {
			return nil, err
		}
		return e.mgr.Composite(ty, []constant.Value{fract, exp}), nil
	}
	n := e.arity(arg)
	fracts := make([]constant.Value, n)
	exps := make([]constant.Value, n)
	for i := 0; i < n; i++ {
		var err error
		if fracts[i], exps[i], err = split(arg.Index(i)); err != nil {
			return nil, err
		}
	}
	return e.mgr.Composite(ty, []constant.Value{
		e.mgr.Composite(fractTy, fracts),
		e.mgr.Composite(expTy, exps),
	}), nil
}

// Modf implements modf(e), returning the __modf_result structure ty.
func (e *Eval) Modf(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	partTy := e.types.Member(ty, 0).Type
	fract, err := e.floatUnary(partTy, args, src, mathFn(func(x float64) float64 {
		_, f := math.Modf(x)
		return f
	}))
	if err != nil {
		return nil, err
	}
	whole, err := e.floatUnary(partTy, args, src, mathFn(math.Trunc))
	if err != nil {
		return nil, err
	}
	return e.mgr.Composite(ty, []constant.Value{fract, whole}), nil
}

// Ldexp implements ldexp(e1, e2) = e1 * 2^e2.
func (e *Eval) Ldexp(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	elTy := e.elemType(ty)
	var bias int64
	switch e.types.Kind(elTy) {
	case types.KindF16:
		bias = 15
	case types.KindF32:
		bias = 127
	default:
		bias = 1023
	}
	return e.transformIndexed(ty, args[0], func(c constant.Value, i int) (constant.Value, error) {
		x := num(c)
		exp := number.Int64(num(e.elementOrSelf(args[1], i)))
		if exp > bias+1 {
			msg := fmt.Sprintf("e2 must be less than or equal to %d", bias+1)
			r, err := e.fail(diag.ConstDomain, src, msg, number.Zero(x.Kind()))
			if err != nil {
				return nil, err
			}
			return e.mgr.Scalar(elTy, r), nil
		}
		return e.float(elTy, math.Ldexp(number.Float64(x), int(exp)), src)
	})
}

// QuantizeToF16 implements quantizeToF16(e) on f32 values.
func (e *Eval) QuantizeToF16(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	return e.floatUnary(ty, args, src, func(x number.Number) (number.Number, error) {
		h, err := e.toF16(x, src)
		if err != nil {
			return nil, err
		}
		return number.F32(float32(h)), nil
	})
}
