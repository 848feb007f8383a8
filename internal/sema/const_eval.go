package sema

import (
	"tint/internal/ast"
	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/number"
)

// constValue folds the initializer of a const, converting it to the declared
// type when there is one. Each const is evaluated once.
func (tc *typeChecker) constValue(sym *symbol) (operand, bool) {
	switch sym.state {
	case stateDone:
		return sym.op, sym.ok
	case stateVisiting:
		tc.reportCycle(sym)
		return operand{}, false
	}
	sym.state = stateVisiting
	// the value is cached, so it must not inherit a skipped context
	skipping := tc.skipping
	tc.skipping = 0
	defer func() { tc.skipping = skipping }()

	c, _ := tc.builder.Items.Const(sym.item)
	op, ok := tc.expr(c.Value)
	if ok && c.Type.IsValid() {
		declared, typeOK := tc.resolveType(c.Type)
		switch {
		case !typeOK:
			ok = false
		case !tc.convertible(op.ty, declared):
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(c.Value),
				"cannot initialize const of type '%s' with value of type '%s'",
				tc.types.Name(declared), tc.types.Name(op.ty))
			ok = false
		default:
			op, ok = tc.materialize(op, declared, tc.exprSpan(c.Value))
		}
	}

	sym.op, sym.ok, sym.state = op, ok, stateDone
	tc.tracePoint("const "+sym.name, c.Span, op, ok)
	return op, ok
}

// constAssert reports whether the condition of a const_assert held.
func (tc *typeChecker) constAssert(id ast.ItemID) bool {
	a, ok := tc.builder.Items.ConstAssert(id)
	if !ok {
		return false
	}
	op, ok := tc.expr(a.Cond)
	tc.tracePoint("const_assert", a.Span, op, ok)
	if !ok {
		return false
	}
	if op.ty != tc.types.Builtins().Bool {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(a.Cond),
			"const assertion condition must be 'bool', found '%s'", tc.types.Name(op.ty))
		return false
	}
	if !bool(constant.ScalarValue(op.val).(number.Bool)) {
		diag.ReportError(tc.reporter, diag.ConstAssertFailed, a.Span, "const assertion failed").Emit()
		return false
	}
	return true
}
