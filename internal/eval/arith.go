package eval

import (
	"fmt"
	"math"

	"tint/internal/diag"
	"tint/internal/number"
	"tint/internal/source"
)

// checked reports whether division by k goes through the checked float and
// abstract path rather than the integer zero and overflow checks.
func checked(k number.Kind) bool {
	return k.IsAbstract() || k.IsFloat()
}

// add returns a+b. A result outside the range of the kind is reported for
// every kind, concrete integers included; runtime mode yields zero.
func (e *Eval) add(src source.Span, a, b number.Number) (number.Number, error) {
	r, err := number.Add(a, b)
	if err != nil {
		return e.fail(diag.ConstOverflow, src, overflowMessage(a, "+", b), number.Zero(a.Kind()))
	}
	return r, nil
}

func (e *Eval) sub(src source.Span, a, b number.Number) (number.Number, error) {
	r, err := number.Sub(a, b)
	if err != nil {
		return e.fail(diag.ConstOverflow, src, overflowMessage(a, "-", b), number.Zero(a.Kind()))
	}
	return r, nil
}

func (e *Eval) mul(src source.Span, a, b number.Number) (number.Number, error) {
	r, err := number.Mul(a, b)
	if err != nil {
		return e.fail(diag.ConstOverflow, src, overflowMessage(a, "*", b), number.Zero(a.Kind()))
	}
	return r, nil
}

// div returns a/b. In runtime mode a failed division yields the dividend.
func (e *Eval) div(src source.Span, a, b number.Number) (number.Number, error) {
	k := a.Kind()
	if checked(k) {
		r, err := number.Div(a, b)
		if err != nil {
			return e.fail(diag.ConstOverflow, src, overflowMessage(a, "/", b), a)
		}
		return r, nil
	}
	if b.IsZero() {
		return e.fail(diag.ConstDivByZero, src, "integer division by zero is invalid", a)
	}
	if k.IsSigned() && number.Int64(a) == math.MinInt32 && number.Int64(b) == -1 {
		return e.fail(diag.ConstOverflow, src, "integer division overflow", a)
	}
	r, err := number.Div(a, b)
	if err != nil {
		panic(fmt.Sprintf("eval: unexpected division failure: %v", err))
	}
	return r, nil
}

// mod returns the truncated remainder of a/b. In runtime mode a failed
// remainder yields zero.
func (e *Eval) mod(src source.Span, a, b number.Number) (number.Number, error) {
	k := a.Kind()
	zero := number.Zero(k)
	if checked(k) {
		r, err := number.Mod(a, b)
		if err != nil {
			return e.fail(diag.ConstOverflow, src, overflowMessage(a, "%", b), zero)
		}
		return r, nil
	}
	if b.IsZero() {
		return e.fail(diag.ConstDivByZero, src, "integer division by zero is invalid", zero)
	}
	if k.IsSigned() && number.Int64(a) == math.MinInt32 && number.Int64(b) == -1 {
		return e.fail(diag.ConstOverflow, src, "integer division overflow", zero)
	}
	r, err := number.Mod(a, b)
	if err != nil {
		panic(fmt.Sprintf("eval: unexpected remainder failure: %v", err))
	}
	return r, nil
}

// dot2 returns a1*b1 + a2*b2.
func (e *Eval) dot2(src source.Span, a1, a2, b1, b2 number.Number) (number.Number, error) {
	r1, err := e.mul(src, a1, b1)
	if err != nil {
		return nil, err
	}
	r2, err := e.mul(src, a2, b2)
	if err != nil {
		return nil, err
	}
	return e.add(src, r1, r2)
}

// dot3 returns a1*b1 + a2*b2 + a3*b3, summed left to right.
func (e *Eval) dot3(src source.Span, a1, a2, a3, b1, b2, b3 number.Number) (number.Number, error) {
	r1, err := e.mul(src, a1, b1)
	if err != nil {
		return nil, err
	}
	r2, err := e.mul(src, a2, b2)
	if err != nil {
		return nil, err
	}
	r3, err := e.mul(src, a3, b3)
	if err != nil {
		return nil, err
	}
	r, err := e.add(src, r1, r2)
	if err != nil {
		return nil, err
	}
	return e.add(src, r, r3)
}

// dot4 returns a1*b1 + a2*b2 + a3*b3 + a4*b4, summed left to right.
func (e *Eval) dot4(src source.Span, a1, a2, a3, a4, b1, b2, b3, b4 number.Number) (number.Number, error) {
	r1, err := e.mul(src, a1, b1)
	if err != nil {
		return nil, err
	}
	r2, err := e.mul(src, a2, b2)
	if err != nil {
		return nil, err
	}
	r3, err := e.mul(src, a3, b3)
	if err != nil {
		return nil, err
	}
	r4, err := e.mul(src, a4, b4)
	if err != nil {
		return nil, err
	}
	r, err := e.add(src, r1, r2)
	if err != nil {
		return nil, err
	}
	if r, err = e.add(src, r, r3); err != nil {
		return nil, err
	}
	return e.add(src, r, r4)
}

// dotN picks the unrolled dot product for len(a) in 2..4.
func (e *Eval) dotN(src source.Span, a, b []number.Number) (number.Number, error) {
	switch len(a) {
	case 2:
		return e.dot2(src, a[0], a[1], b[0], b[1])
	case 3:
		return e.dot3(src, a[0], a[1], a[2], b[0], b[1], b[2])
	case 4:
		return e.dot4(src, a[0], a[1], a[2], a[3], b[0], b[1], b[2], b[3])
	}
	panic(fmt.Sprintf("eval: dot product of %d elements", len(a)))
}

// det2 is the determinant of the column-major matrix [a b; c d] with columns
// (a, b) and (c, d): a*d - c*b.
func (e *Eval) det2(src source.Span, a, b, c, d number.Number) (number.Number, error) {
	ad, err := e.mul(src, a, d)
	if err != nil {
		return nil, err
	}
	cb, err := e.mul(src, c, b)
	if err != nil {
		return nil, err
	}
	return e.sub(src, ad, cb)
}

// det3 is the determinant of the matrix with columns (a, b, c), (d, e, f) and
// (g, h, i), expanded along the first row.
func (e *Eval) det3(src source.Span, a, b, c, d, ee, f, g, h, i number.Number) (number.Number, error) {
	det1, err := e.det2(src, ee, f, h, i)
	if err != nil {
		return nil, err
	}
	a1, err := e.mul(src, a, det1)
	if err != nil {
		return nil, err
	}
	det2, err := e.det2(src, b, c, h, i)
	if err != nil {
		return nil, err
	}
	a2, err := e.mul(src, d, det2)
	if err != nil {
		return nil, err
	}
	det3, err := e.det2(src, b, c, ee, f)
	if err != nil {
		return nil, err
	}
	a3, err := e.mul(src, g, det3)
	if err != nil {
		return nil, err
	}
	r, err := e.sub(src, a1, a2)
	if err != nil {
		return nil, err
	}
	return e.add(src, r, a3)
}

// det4 is the determinant of the matrix with columns (a, b, c, d),
// (ee, f, g, h), (i, j, k, l) and (m, n, o, p), expanded along the first row.
func (e *Eval) det4(src source.Span, a, b, c, d, ee, f, g, h, i, j, k, l, m, n, o, p number.Number) (number.Number, error) {
	det1, err := e.det3(src, f, g, h, j, k, l, n, o, p)
	if err != nil {
		return nil, err
	}
	a1, err := e.mul(src, a, det1)
	if err != nil {
		return nil, err
	}
	det2, err := e.det3(src, b, c, d, j, k, l, n, o, p)
	if err != nil {
		return nil, err
	}
	a2, err := e.mul(src, ee, det2)
	if err != nil {
		return nil, err
	}
	det3, err := e.det3(src, b, c, d, f, g, h, n, o, p)
	if err != nil {
		return nil, err
	}
	a3, err := e.mul(src, i, det3)
	if err != nil {
		return nil, err
	}
	det4, err := e.det3(src, b, c, d, f, g, h, j, k, l)
	if err != nil {
		return nil, err
	}
	a4, err := e.mul(src, m, det4)
	if err != nil {
		return nil, err
	}
	r, err := e.sub(src, a1, a2)
	if err != nil {
		return nil, err
	}
	r, err = e.add(src, r, a3)
	if err != nil {
		return nil, err
	}
	return e.sub(src, r, a4)
}

func (e *Eval) sqrt(src source.Span, v number.Number) (number.Number, error) {
	if number.Float64(v) < 0 {
		return e.fail(diag.ConstDomain, src, "sqrt must be called with a value >= 0", number.Zero(v.Kind()))
	}
	return number.FromFloat(v.Kind(), math.Sqrt(number.Float64(v))), nil
}

// clamp returns min(max(v, low), high). low > high is reported; runtime mode
// still computes the expression.
func (e *Eval) clamp(src source.Span, v, low, high number.Number) (number.Number, error) {
	if number.Less(high, low) {
		msg := fmt.Sprintf("clamp called with 'low' (%s) greater than 'high' (%s)", low, high)
		if err := e.check(diag.ConstClampBounds, src, msg); err != nil {
			return nil, err
		}
	}
	return minNum(maxNum(v, low), high), nil
}

func minNum(a, b number.Number) number.Number {
	if number.Less(b, a) {
		return b
	}
	return a
}

func maxNum(a, b number.Number) number.Number {
	if number.Less(a, b) {
		return b
	}
	return a
}
