package eval

import (
	"fmt"

	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/number"
	"tint/internal/source"
	"tint/internal/types"
)

// Dot implements dot(e1, e2).
func (e *Eval) Dot(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	r, err := e.dot(src, args[0], args[1])
	if err != nil {
		return nil, err
	}
	return e.scalar(ty, r, src)
}

func (e *Eval) dot(src source.Span, a, b constant.Value) (number.Number, error) {
	return e.dotN(src, e.vectorNumbers(a), e.vectorNumbers(b))
}

// length is |v|: abs for scalars, sqrt(dot(v, v)) for vectors.
func (e *Eval) length(src source.Span, v constant.Value) (number.Number, error) {
	if isScalar(v) {
		x := num(v)
		if number.Less(x, number.Zero(x.Kind())) {
			return number.Neg(x)
		}
		return x, nil
	}
	d, err := e.dot(src, v, v)
	if err != nil {
		return nil, err
	}
	return e.sqrt(src, d)
}

// Length implements length(e).
func (e *Eval) Length(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	r, err := e.length(src, args[0])
	if err != nil {
		return nil, err
	}
	return e.scalar(ty, r, src)
}

// Distance implements distance(e1, e2) as length(e1 - e2).
func (e *Eval) Distance(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	diff, err := e.OpMinus(args[0].Type(), args, src)
	if err != nil {
		return nil, err
	}
	return e.Length(ty, []constant.Value{diff}, src)
}

// Cross implements cross(a, b) for 3-component vectors.
func (e *Eval) Cross(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	a := e.vectorNumbers(args[0])
	b := e.vectorNumbers(args[1])
	elTy := e.elemType(ty)
	// x = a.y*b.z - b.y*a.z, and the same pattern rotated for y and z
	pairs := [3][4]number.Number{
		{a[1], b[1], a[2], b[2]},
		{a[2], b[2], a[0], b[0]},
		{a[0], b[0], a[1], b[1]},
	}
	els := make([]constant.Value, 3)
	for i, p := range pairs {
		r, err := e.det2(src, p[0], p[1], p[2], p[3])
		if err != nil {
			return nil, err
		}
		if els[i], err = e.scalar(elTy, r, src); err != nil {
			return nil, err
		}
	}
	return e.mgr.Composite(ty, els), nil
}

// Determinant implements determinant(m) for square matrices.
func (e *Eval) Determinant(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	m := args[0]
	_, cols := e.types.Elements(m.Type())
	var flat []number.Number
	for c := 0; c < cols; c++ {
		flat = append(flat, e.vectorNumbers(m.Index(c))...)
	}
	var (
		r   number.Number
		err error
	)
	switch cols {
	case 2:
		r, err = e.det2(src, flat[0], flat[1], flat[2], flat[3])
	case 3:
		r, err = e.det3(src, flat[0], flat[1], flat[2], flat[3], flat[4], flat[5], flat[6], flat[7], flat[8])
	case 4:
		r, err = e.det4(src, flat[0], flat[1], flat[2], flat[3], flat[4], flat[5], flat[6], flat[7],
			flat[8], flat[9], flat[10], flat[11], flat[12], flat[13], flat[14], flat[15])
	default:
		panic(fmt.Sprintf("eval: determinant of %s", e.types.Name(m.Type())))
	}
	if err != nil {
		return nil, err
	}
	return e.scalar(ty, r, src)
}

// Normalize implements normalize(v). A zero length vector is reported;
// runtime mode yields the zero vector.
func (e *Eval) Normalize(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	l, err := e.length(src, args[0])
	if err != nil {
		return nil, err
	}
	if l.IsZero() {
		return e.failValue(diag.ConstNormalizeZero, src, "zero length vector cannot be normalized", e.mgr.Zero(ty))
	}
	elTy := e.elemType(ty)
	return e.transformUnary(ty, args[0], func(c constant.Value) (constant.Value, error) {
		r, err := e.div(src, num(c), l)
		if err != nil {
			return nil, err
		}
		return e.scalar(elTy, r, src)
	})
}

// FaceForward implements faceForward(e1, e2, e3): e1 when dot(e2, e3) < 0,
// otherwise -e1.
func (e *Eval) FaceForward(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	d, err := e.dot(src, args[1], args[2])
	if err != nil {
		return nil, err
	}
	if number.Less(d, number.Zero(d.Kind())) {
		return args[0], nil
	}
	return e.UnaryMinus(ty, args[:1], src)
}

// Reflect implements reflect(e1, e2) as e1 - 2*dot(e2, e1)*e2.
func (e *Eval) Reflect(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	d, err := e.dot(src, args[1], args[0])
	if err != nil {
		return nil, err
	}
	twoDot, err := e.mul(src, number.FromInt(d.Kind(), 2), d)
	if err != nil {
		return nil, err
	}
	elTy := e.elemType(ty)
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		scaled, err := e.mul(src, twoDot, num(b))
		if err != nil {
			return nil, err
		}
		r, err := e.sub(src, num(a), scaled)
		if err != nil {
			return nil, err
		}
		return e.scalar(elTy, r, src)
	})
}

// Refract implements refract(e1, e2, eta). Total internal reflection yields
// the zero vector.
func (e *Eval) Refract(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	eta := num(args[2])
	k1 := eta.Kind()
	one := number.FromInt(k1, 1)
	d, err := e.dot(src, args[1], args[0])
	if err != nil {
		return nil, err
	}
	// k = 1 - eta*eta*(1 - dot*dot)
	var dd, oneMinus, etaSq, t, k number.Number
	if dd, err = e.mul(src, d, d); err != nil {
		return nil, err
	}
	if oneMinus, err = e.sub(src, one, dd); err != nil {
		return nil, err
	}
	if etaSq, err = e.mul(src, eta, eta); err != nil {
		return nil, err
	}
	if t, err = e.mul(src, etaSq, oneMinus); err != nil {
		return nil, err
	}
	if k, err = e.sub(src, one, t); err != nil {
		return nil, err
	}
	if number.Less(k, number.Zero(k1)) {
		return e.mgr.Zero(ty), nil
	}
	sqrtK, err := e.sqrt(src, k)
	if err != nil {
		return nil, err
	}
	etaDot, err := e.mul(src, eta, d)
	if err != nil {
		return nil, err
	}
	coef, err := e.add(src, etaDot, sqrtK)
	if err != nil {
		return nil, err
	}
	elTy := e.elemType(ty)
	return e.transformBinary(ty, args[0], args[1], func(a, b constant.Value) (constant.Value, error) {
		l, err := e.mul(src, eta, num(a))
		if err != nil {
			return nil, err
		}
		r, err := e.mul(src, coef, num(b))
		if err != nil {
			return nil, err
		}
		v, err := e.sub(src, l, r)
		if err != nil {
			return nil, err
		}
		return e.scalar(elTy, v, src)
	})
}

// Transpose implements transpose(m).
func (e *Eval) Transpose(ty types.TypeID, args []constant.Value, _ source.Span) (constant.Value, error) {
	m := args[0]
	column, cols := e.types.Elements(ty)
	_, rows := e.types.Elements(column)
	out := make([]constant.Value, cols)
	for c := 0; c < cols; c++ {
		els := make([]constant.Value, rows)
		for r := 0; r < rows; r++ {
			els[r] = m.Index(r).Index(c)
		}
		out[c] = e.mgr.Composite(column, els)
	}
	return e.mgr.Composite(ty, out), nil
}
