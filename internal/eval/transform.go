package eval

import (
	"fmt"

	"tint/internal/constant"
	"tint/internal/types"
)

type (
	unaryFn   func(a constant.Value) (constant.Value, error)
	binaryFn  func(a, b constant.Value) (constant.Value, error)
	ternaryFn func(a, b, c constant.Value) (constant.Value, error)
	indexedFn func(a constant.Value, index int) (constant.Value, error)
)

// arity is the element count of v, or 0 for scalars.
func (e *Eval) arity(v constant.Value) int {
	_, n := e.types.Elements(v.Type())
	return n
}

// elementType is the type of the i-th element of composite ty. Struct members
// each have their own type; every other composite has one element type.
func (e *Eval) elementType(ty types.TypeID, i int) types.TypeID {
	if e.types.Kind(ty) == types.KindStruct {
		return e.types.Member(ty, i).Type
	}
	elem, _ := e.types.Elements(ty)
	return elem
}

// transformUnary applies f to every scalar leaf of v and rebuilds a value of
// type ty with the same shape.
func (e *Eval) transformUnary(ty types.TypeID, v constant.Value, f unaryFn) (constant.Value, error) {
	n := e.arity(v)
	if n == 0 {
		return f(v)
	}
	els := make([]constant.Value, n)
	for i := 0; i < n; i++ {
		el, err := e.transformUnary(e.elementType(ty, i), v.Index(i), f)
		if err != nil {
			return nil, err
		}
		els[i] = el
	}
	return e.mgr.Composite(ty, els), nil
}

// transformBinary zips two values of the same shape.
func (e *Eval) transformBinary(ty types.TypeID, a, b constant.Value, f binaryFn) (constant.Value, error) {
	n := e.arity(a)
	if n != e.arity(b) {
		panic(fmt.Sprintf("eval: binary transform of %s and %s",
			e.types.Name(a.Type()), e.types.Name(b.Type())))
	}
	if n == 0 {
		return f(a, b)
	}
	els := make([]constant.Value, n)
	for i := 0; i < n; i++ {
		el, err := e.transformBinary(e.elementType(ty, i), a.Index(i), b.Index(i), f)
		if err != nil {
			return nil, err
		}
		els[i] = el
	}
	return e.mgr.Composite(ty, els), nil
}

// transformBinaryDifferingArity zips a and b where one side may be a scalar,
// which is then paired with every element of the other side.
func (e *Eval) transformBinaryDifferingArity(ty types.TypeID, a, b constant.Value, f binaryFn) (constant.Value, error) {
	na, nb := e.arity(a), e.arity(b)
	n := max(na, nb)
	if n == 0 {
		return f(a, b)
	}
	if na != 0 && nb != 0 && na != nb {
		panic(fmt.Sprintf("eval: mixed arity transform of %s and %s",
			e.types.Name(a.Type()), e.types.Name(b.Type())))
	}
	els := make([]constant.Value, n)
	for i := 0; i < n; i++ {
		ea, eb := a, b
		if na != 0 {
			ea = a.Index(i)
		}
		if nb != 0 {
			eb = b.Index(i)
		}
		el, err := e.transformBinaryDifferingArity(e.elementType(ty, i), ea, eb, f)
		if err != nil {
			return nil, err
		}
		els[i] = el
	}
	return e.mgr.Composite(ty, els), nil
}

// transformTernary zips three values of the same shape.
func (e *Eval) transformTernary(ty types.TypeID, a, b, c constant.Value, f ternaryFn) (constant.Value, error) {
	n := e.arity(a)
	if n != e.arity(b) || n != e.arity(c) {
		panic("eval: ternary transform of mismatched shapes")
	}
	if n == 0 {
		return f(a, b, c)
	}
	els := make([]constant.Value, n)
	for i := 0; i < n; i++ {
		el, err := e.transformTernary(e.elementType(ty, i), a.Index(i), b.Index(i), c.Index(i), f)
		if err != nil {
			return nil, err
		}
		els[i] = el
	}
	return e.mgr.Composite(ty, els), nil
}

// transformIndexed is transformUnary for one level of composite that also
// passes the element index, for builtins whose other arguments are indexed
// alongside v. A scalar v is passed with index 0.
func (e *Eval) transformIndexed(ty types.TypeID, v constant.Value, f indexedFn) (constant.Value, error) {
	n := e.arity(v)
	if n == 0 {
		return f(v, 0)
	}
	els := make([]constant.Value, n)
	for i := 0; i < n; i++ {
		el, err := f(v.Index(i), i)
		if err != nil {
			return nil, err
		}
		els[i] = el
	}
	return e.mgr.Composite(ty, els), nil
}

// elementOrSelf returns v.Index(i) for composites and v for scalars.
func (e *Eval) elementOrSelf(v constant.Value, i int) constant.Value {
	if e.arity(v) == 0 {
		return v
	}
	return v.Index(i)
}
