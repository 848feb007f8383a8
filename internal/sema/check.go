// Package sema type checks a parsed WGSL file and folds every constant
// declaration to a value.
//
// The checker resolves names lazily, so declarations may refer to each other
// in any order. Expression types follow the WGSL abstract-type rules: abstract
// operands are materialized to the type the surrounding operator or builtin
// requires before the evaluator runs.
package sema

import (
	"tint/internal/ast"
	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/eval"
	"tint/internal/source"
	"tint/internal/trace"
	"tint/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	// Values creates constants; a fresh manager over a new interner is used
	// when nil.
	Values *constant.Manager
	Eval   eval.Options
	Tracer trace.Tracer
	// ParentSpan links the emitted trace events to the caller's span.
	ParentSpan uint64
}

// Decl is a folded const declaration. Value is nil when the initializer
// failed to type check or evaluate.
type Decl struct {
	Name  string
	Span  source.Span
	Type  types.TypeID
	Value constant.Value
}

// Result stores the semantic artefacts of a file.
type Result struct {
	Types  *types.Interner
	Values *constant.Manager
	// Decls lists const declarations in source order.
	Decls []Decl
	// Structs lists the declared struct types in source order.
	Structs []types.TypeID
	// Asserts counts const_assert declarations that held.
	Asserts int
}

// Check walks the declarations of fileID and evaluates them.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	tc := newTypeChecker(builder, opts)
	res := Result{Types: tc.types, Values: tc.values}
	if builder == nil || fileID == ast.NoFileID {
		return res
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return res
	}
	tc.declare(file.Items)
	tc.run(file.Items, &res)
	return res
}

// CheckExpr evaluates a standalone expression. Declarations of the file
// fileID, when valid, are visible to it.
func CheckExpr(builder *ast.Builder, fileID ast.FileID, expr ast.ExprID, opts Options) (Decl, bool) {
	tc := newTypeChecker(builder, opts)
	if fileID != ast.NoFileID {
		if file := builder.Files.Get(fileID); file != nil {
			tc.declare(file.Items)
		}
	}
	node := builder.Exprs.Get(expr)
	if node == nil {
		return Decl{}, false
	}
	op, ok := tc.expr(expr)
	tc.tracePoint("expr", node.Span, op, ok)
	if !ok {
		return Decl{Span: node.Span}, false
	}
	return Decl{Span: node.Span, Type: op.ty, Value: op.val}, true
}
