package eval

import (
	"errors"
	"fmt"

	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/number"
	"tint/internal/source"
	"tint/internal/types"
)

type convertAction uint8

const (
	// actionConvert converts value to ty and pushes the result.
	actionConvert convertAction = iota
	// actionBuildSplat pops one result and pushes a splat of ty.
	actionBuildSplat
	// actionBuildComposite pops count results and pushes a composite of ty.
	actionBuildComposite
)

type pendingConvert struct {
	action convertAction
	ty     types.TypeID
	value  constant.Value
	count  int
}

// Convert converts v to ty, keeping its shape: splats stay splats, composites
// convert element by element. Converting to the type v already has returns v.
// Nested values are processed with an explicit stack rather than recursion.
func (e *Eval) Convert(ty types.TypeID, v constant.Value, src source.Span) (constant.Value, error) {
	if v == nil {
		return nil, nil
	}
	if v.Type() == ty {
		return v, nil
	}
	stack := []pendingConvert{{action: actionConvert, ty: ty, value: v}}
	var results []constant.Value
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch p.action {
		case actionBuildSplat:
			el := results[len(results)-1]
			results[len(results)-1] = e.mgr.Splat(p.ty, el)

		case actionBuildComposite:
			start := len(results) - p.count
			els := append([]constant.Value(nil), results[start:]...)
			results = append(results[:start], e.mgr.Composite(p.ty, els))

		case actionConvert:
			if p.value.Type() == p.ty {
				results = append(results, p.value)
				continue
			}
			switch val := p.value.(type) {
			case *constant.Scalar:
				r, err := e.convertScalar(p.ty, val, src)
				if err != nil {
					return nil, err
				}
				results = append(results, r)
			case *constant.Splat:
				elem, _ := e.types.Elements(p.ty)
				stack = append(stack,
					pendingConvert{action: actionBuildSplat, ty: p.ty},
					pendingConvert{action: actionConvert, ty: elem, value: val.Element()})
			case *constant.Composite:
				n := val.NumElements()
				if _, count := e.types.Elements(p.ty); count != n {
					panic(fmt.Sprintf("eval: cannot convert %d elements to %s", n, e.types.Name(p.ty)))
				}
				stack = append(stack, pendingConvert{action: actionBuildComposite, ty: p.ty, count: n})
				for i := n - 1; i >= 0; i-- {
					stack = append(stack, pendingConvert{
						action: actionConvert,
						ty:     e.elementType(p.ty, i),
						value:  val.Index(i),
					})
				}
			default:
				panic(fmt.Sprintf("eval: unknown value %T", val))
			}
		}
	}
	if len(results) != 1 {
		panic("eval: unbalanced conversion")
	}
	return results[0], nil
}

// convertScalar converts one scalar to scalar type ty.
func (e *Eval) convertScalar(ty types.TypeID, s *constant.Scalar, src source.Span) (constant.Value, error) {
	to := e.types.Kind(ty).Number()
	from := s.Value()
	switch {
	case from.Kind() == to:
		return e.mgr.Scalar(ty, from), nil
	case from.Kind() == number.KindBool:
		if from.IsZero() {
			return e.mgr.Scalar(ty, number.Zero(to)), nil
		}
		return e.mgr.Scalar(ty, number.FromInt(to, 1)), nil
	case to == number.KindBool:
		return e.mgr.Bool(!from.IsZero()), nil
	}

	r, err := number.Convert(from, to)
	if err == nil {
		return e.mgr.Scalar(ty, r), nil
	}
	limit := number.HighestOf(to)
	if errors.Is(err, number.ErrExceedsNegativeLimit) {
		limit = number.LowestOf(to)
	}
	switch {
	case from.Kind().IsAbstract() || to.IsFloat():
		msg := valueOverflowMessage(from, e.types.Name(ty))
		n, err := e.fail(diag.ConstConversion, src, msg, limit)
		if err != nil {
			return nil, err
		}
		return e.mgr.Scalar(ty, n), nil
	case from.Kind().IsFloat():
		// float to integer saturates
		return e.mgr.Scalar(ty, limit), nil
	default:
		// integer to integer keeps the low bits
		return e.mgr.Scalar(ty, truncateInt(to, number.Int64(from))), nil
	}
}

// toF16 converts a scalar number to f16 like convertScalar does. Values
// outside the f16 range are reported and, in runtime mode, become the nearest
// f16 limit.
func (e *Eval) toF16(x number.Number, src source.Span) (number.F16, error) {
	r, err := number.Convert(x, number.KindF16)
	if err == nil {
		return r.(number.F16), nil
	}
	limit := number.HighestOf(number.KindF16)
	if errors.Is(err, number.ErrExceedsNegativeLimit) {
		limit = number.LowestOf(number.KindF16)
	}
	n, err := e.fail(diag.ConstConversion, src, valueOverflowMessage(x, "f16"), limit)
	if err != nil {
		return 0, err
	}
	return n.(number.F16), nil
}

func truncateInt(to number.Kind, i int64) number.Number {
	switch to {
	case number.KindI32:
		return number.I32(int32(i)) //nolint:gosec // truncation is the defined behavior
	case number.KindU32:
		return number.U32(uint32(i)) //nolint:gosec // truncation is the defined behavior
	case number.KindAbstractInt:
		return number.AInt(i)
	}
	panic(fmt.Sprintf("eval: integer truncation to %s", to))
}

// Conv implements the value constructor T(e): a conversion of its single
// argument, or the zero value without arguments.
func (e *Eval) Conv(ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	if len(args) == 0 {
		return e.mgr.Zero(ty), nil
	}
	if args[0] == nil {
		return nil, nil
	}
	return e.Convert(ty, args[0], src)
}
