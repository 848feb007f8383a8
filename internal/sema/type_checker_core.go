package sema

import (
	"fmt"

	"tint/internal/ast"
	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/eval"
	"tint/internal/source"
	"tint/internal/trace"
	"tint/internal/types"
)

type symbolKind uint8

const (
	symConst symbolKind = iota
	symStruct
	symAlias
)

type declState uint8

const (
	stateUnvisited declState = iota
	stateVisiting
	stateDone
)

// symbol is a module-scope declaration. Consts carry their folded operand,
// structs and aliases the type they name.
type symbol struct {
	kind  symbolKind
	name  string
	span  source.Span
	item  ast.ItemID
	state declState
	op    operand
	ty    types.TypeID
	ok    bool
	// cycleReported keeps a cycle from being reported once per member.
	cycleReported bool
}

// operand is a typed constant produced by an expression.
type operand struct {
	ty  types.TypeID
	val constant.Value
}

type typeChecker struct {
	builder  *ast.Builder
	reporter diag.Reporter
	types    *types.Interner
	values   *constant.Manager
	eval     *eval.Eval
	quiet    *eval.Eval
	// skipping is non-zero while the unevaluated side of && or || is checked.
	skipping int
	tracer   trace.Tracer
	parent   uint64
	symbols  map[string]*symbol
	byItem   map[ast.ItemID]*symbol
}

func newTypeChecker(builder *ast.Builder, opts Options) *typeChecker {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	values := opts.Values
	if values == nil {
		values = constant.NewManager(types.NewInterner())
	}
	return &typeChecker{
		builder:  builder,
		reporter: reporter,
		types:    values.Types(),
		values:   values,
		eval:     eval.New(values, reporter, opts.Eval),
		tracer:   opts.Tracer,
		parent:   opts.ParentSpan,
		symbols:  make(map[string]*symbol),
		byItem:   make(map[ast.ItemID]*symbol),
	}
}

// evaluator returns the evaluator for the current context. Values computed
// while skipping are discarded, so their failures stay silent.
func (tc *typeChecker) evaluator() *eval.Eval {
	if tc.skipping == 0 {
		return tc.eval
	}
	if tc.quiet == nil {
		tc.quiet = eval.New(tc.values, diag.NopReporter{}, eval.Options{RuntimeSemantics: true})
	}
	return tc.quiet
}

func (tc *typeChecker) report(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportError(tc.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

// declare registers every named item so that lookups do not depend on
// declaration order.
func (tc *typeChecker) declare(items []ast.ItemID) {
	for _, id := range items {
		item := tc.builder.Items.Get(id)
		if item == nil {
			continue
		}
		sym := &symbol{item: id}
		switch item.Kind {
		case ast.ItemConst:
			c, _ := tc.builder.Items.Const(id)
			sym.kind, sym.name, sym.span = symConst, c.Name, c.NameSpan
		case ast.ItemStruct:
			s, _ := tc.builder.Items.Struct(id)
			sym.kind, sym.name, sym.span = symStruct, s.Name, s.NameSpan
		case ast.ItemAlias:
			a, _ := tc.builder.Items.Alias(id)
			sym.kind, sym.name, sym.span = symAlias, a.Name, a.NameSpan
		default:
			continue
		}
		tc.byItem[id] = sym
		if prev, dup := tc.symbols[sym.name]; dup {
			diag.ReportError(tc.reporter, diag.SemaDuplicateSymbol, sym.span,
				fmt.Sprintf("redeclaration of '%s'", sym.name)).
				WithNote(prev.span, "previous declaration").
				Emit()
			continue
		}
		tc.symbols[sym.name] = sym
	}
}

func (tc *typeChecker) run(items []ast.ItemID, res *Result) {
	for _, id := range items {
		item := tc.builder.Items.Get(id)
		if item == nil {
			continue
		}
		switch item.Kind {
		case ast.ItemConst:
			sym := tc.byItem[id]
			op, ok := tc.constValue(sym)
			decl := Decl{Name: sym.name, Span: sym.span, Type: op.ty}
			if ok {
				decl.Value = op.val
			}
			res.Decls = append(res.Decls, decl)
		case ast.ItemStruct:
			if ty, ok := tc.namedType(tc.byItem[id]); ok {
				res.Structs = append(res.Structs, ty)
			}
		case ast.ItemAlias:
			tc.namedType(tc.byItem[id])
		case ast.ItemConstAssert:
			if tc.constAssert(id) {
				res.Asserts++
			}
		}
	}
}

func (tc *typeChecker) tracePoint(name string, span source.Span, op operand, ok bool) {
	if tc.tracer == nil || !tc.tracer.Enabled() {
		return
	}
	detail := span.String() + " failed"
	if ok && op.val != nil {
		detail = span.String() + " " + tc.types.Name(op.ty) + " = " + constant.Format(tc.types, op.val)
	}
	trace.Point(tc.tracer, trace.ScopeExpr, name, detail, tc.parent)
}

func (tc *typeChecker) reportCycle(sym *symbol) {
	if sym.cycleReported {
		return
	}
	sym.cycleReported = true
	tc.report(diag.SemaDeclCycle, sym.span, "cyclic declaration of '%s'", sym.name)
}
