package sema

import (
	"tint/internal/ast"
	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/number"
	"tint/internal/source"
	"tint/internal/types"
)

// maxArrayCount bounds the element count of array types.
const maxArrayCount = 1 << 16

// namedType resolves the type declared by a struct or alias.
func (tc *typeChecker) namedType(sym *symbol) (types.TypeID, bool) {
	switch sym.state {
	case stateDone:
		return sym.ty, sym.ok
	case stateVisiting:
		tc.reportCycle(sym)
		return types.NoTypeID, false
	}
	sym.state = stateVisiting
	var (
		ty types.TypeID
		ok bool
	)
	switch sym.kind {
	case symStruct:
		ty, ok = tc.declareStruct(sym)
	case symAlias:
		a, _ := tc.builder.Items.Alias(sym.item)
		ty, ok = tc.resolveType(a.Target)
	}
	sym.ty, sym.ok, sym.state = ty, ok, stateDone
	return ty, ok
}

func (tc *typeChecker) declareStruct(sym *symbol) (types.TypeID, bool) {
	s, _ := tc.builder.Items.Struct(sym.item)
	if len(s.Fields) == 0 {
		tc.report(diag.SemaNotConstructible, s.NameSpan, "struct '%s' must have at least one member", s.Name)
		return types.NoTypeID, false
	}
	members := make([]types.Member, 0, len(s.Fields))
	seen := make(map[string]source.Span, len(s.Fields))
	ok := true
	for _, f := range s.Fields {
		if prev, dup := seen[f.Name]; dup {
			diag.ReportError(tc.reporter, diag.SemaDuplicateSymbol, f.Span,
				"redeclaration of member '"+f.Name+"' in struct '"+s.Name+"'").
				WithNote(prev, "previous declaration").
				Emit()
			ok = false
			continue
		}
		seen[f.Name] = f.Span
		ft, fok := tc.resolveType(f.Type)
		if !fok {
			ok = false
			continue
		}
		members = append(members, types.Member{Name: f.Name, Type: ft})
	}
	if !ok {
		return types.NoTypeID, false
	}
	return tc.types.Struct(s.Name, members), true
}

// resolveType maps type syntax onto an interned type.
func (tc *typeChecker) resolveType(id ast.TypeID) (types.TypeID, bool) {
	te := tc.builder.Types.Get(id)
	if te == nil {
		return types.NoTypeID, false
	}
	if sym, ok := tc.symbols[te.Name]; ok {
		if sym.kind == symConst {
			tc.report(diag.SemaUnknownType, te.NameSpan, "'%s' is not a type", te.Name)
			return types.NoTypeID, false
		}
		if te.Templated() {
			tc.report(diag.SemaUnknownType, te.Span, "type '%s' does not take template arguments", te.Name)
			return types.NoTypeID, false
		}
		return tc.namedType(sym)
	}
	if ty, ok := tc.scalarType(te.Name); ok {
		if te.Templated() {
			tc.report(diag.SemaUnknownType, te.Span, "type '%s' does not take template arguments", te.Name)
			return types.NoTypeID, false
		}
		return ty, true
	}
	info, ok := parseTypeName(te.Name)
	if !ok {
		tc.report(diag.SemaUnknownType, te.NameSpan, "unresolved type '%s'", te.Name)
		return types.NoTypeID, false
	}
	if info.elem == number.KindInvalid && !te.Templated() {
		tc.report(diag.SemaUnknownType, te.Span, "'%s' requires template arguments", te.Name)
		return types.NoTypeID, false
	}
	return tc.compositeType(te, info)
}

func (tc *typeChecker) scalarType(name string) (types.TypeID, bool) {
	b := tc.types.Builtins()
	switch name {
	case "bool":
		return b.Bool, true
	case "i32":
		return b.I32, true
	case "u32":
		return b.U32, true
	case "f32":
		return b.F32, true
	case "f16":
		return b.F16, true
	}
	return types.NoTypeID, false
}

// compositeType builds a vector, matrix or array type. The element comes
// from the shorthand suffix or the single template argument.
func (tc *typeChecker) compositeType(te *ast.TypeExpr, info typeNameInfo) (types.TypeID, bool) {
	var elem types.TypeID
	if info.elem != number.KindInvalid {
		if te.Templated() {
			tc.report(diag.SemaUnknownType, te.Span, "type '%s' does not take template arguments", te.Name)
			return types.NoTypeID, false
		}
		elem = tc.types.Scalar(info.elem)
	} else {
		wantSize := info.kind == types.KindArray
		if len(te.Args) != 1 || te.Size.IsValid() != wantSize {
			tc.report(diag.SemaUnknownType, te.Span, "wrong template arguments for '%s'", te.Name)
			return types.NoTypeID, false
		}
		var ok bool
		if elem, ok = tc.resolveType(te.Args[0]); !ok {
			return types.NoTypeID, false
		}
	}
	return tc.buildComposite(te, info, elem)
}

func (tc *typeChecker) buildComposite(te *ast.TypeExpr, info typeNameInfo, elem types.TypeID) (types.TypeID, bool) {
	switch info.kind {
	case types.KindVector:
		if !tc.types.IsScalar(elem) {
			tc.report(diag.SemaTypeMismatch, te.Span, "vector element type must be a scalar, found '%s'", tc.types.Name(elem))
			return types.NoTypeID, false
		}
		return tc.types.Vec(elem, info.cols), true
	case types.KindMatrix:
		if k := tc.types.Kind(elem); k != types.KindF32 && k != types.KindF16 {
			tc.report(diag.SemaTypeMismatch, te.Span, "matrix element type must be 'f32' or 'f16', found '%s'", tc.types.Name(elem))
			return types.NoTypeID, false
		}
		return tc.types.MatOf(elem, info.cols, info.rows), true
	case types.KindArray:
		n, ok := tc.arrayCount(te.Size)
		if !ok {
			return types.NoTypeID, false
		}
		return tc.types.Array(elem, n), true
	}
	return types.NoTypeID, false
}

func (tc *typeChecker) arrayCount(size ast.ExprID) (int, bool) {
	op, ok := tc.expr(size)
	if !ok {
		return 0, false
	}
	span := tc.exprSpan(size)
	if !tc.types.IsScalar(op.ty) || !tc.types.IsInteger(op.ty) {
		tc.report(diag.SynBadArraySize, span, "array element count must be an integer, found '%s'", tc.types.Name(op.ty))
		return 0, false
	}
	n := number.Int64(constant.ScalarValue(op.val))
	switch {
	case n <= 0:
		tc.report(diag.SynBadArraySize, span, "array element count (%d) must be greater than 0", n)
		return 0, false
	case n > maxArrayCount:
		tc.report(diag.SynBadArraySize, span, "array element count (%d) exceeds the limit of %d", n, maxArrayCount)
		return 0, false
	}
	return int(n), true
}

// typeNameInfo describes a predeclared composite type name such as vec3,
// vec3f, mat2x4h or array.
type typeNameInfo struct {
	kind types.Kind
	// cols is the vector width or the matrix column count.
	cols int
	rows int
	// elem is the element of shorthand names, KindInvalid otherwise.
	elem number.Kind
}

func parseTypeName(name string) (typeNameInfo, bool) {
	if name == "array" {
		return typeNameInfo{kind: types.KindArray}, true
	}
	if len(name) < 4 {
		return typeNameInfo{}, false
	}
	dim := func(c byte) (int, bool) {
		if c < '2' || c > '4' {
			return 0, false
		}
		return int(c - '0'), true
	}
	switch name[:3] {
	case "vec":
		n, ok := dim(name[3])
		if !ok {
			return typeNameInfo{}, false
		}
		info := typeNameInfo{kind: types.KindVector, cols: n}
		return withSuffix(info, name[4:], "iufh")
	case "mat":
		if len(name) < 6 || name[4] != 'x' {
			return typeNameInfo{}, false
		}
		c, okC := dim(name[3])
		r, okR := dim(name[5])
		if !okC || !okR {
			return typeNameInfo{}, false
		}
		info := typeNameInfo{kind: types.KindMatrix, cols: c, rows: r}
		return withSuffix(info, name[6:], "fh")
	}
	return typeNameInfo{}, false
}

func withSuffix(info typeNameInfo, suffix, allowed string) (typeNameInfo, bool) {
	if suffix == "" {
		return info, true
	}
	if len(suffix) != 1 {
		return typeNameInfo{}, false
	}
	for i := 0; i < len(allowed); i++ {
		if allowed[i] != suffix[0] {
			continue
		}
		switch suffix[0] {
		case 'i':
			info.elem = number.KindI32
		case 'u':
			info.elem = number.KindU32
		case 'f':
			info.elem = number.KindF32
		case 'h':
			info.elem = number.KindF16
		}
		return info, true
	}
	return typeNameInfo{}, false
}
