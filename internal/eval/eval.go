// Package eval computes WGSL operators and builtin functions over constant
// values.
//
// Every method takes the result type, the already evaluated arguments and the
// source span used for diagnostics. It returns one of
//
//	(v, nil)          the result
//	(nil, nil)        the expression is not a constant expression
//	(nil, ErrFailed)  a diagnostic has been reported; resolution of the
//	                  enclosing expression must stop
//
// Failures that WGSL defines at run time (overflow, domain errors, bad bit
// ranges, out of bounds indices) are errors in strict mode. With
// Options.RuntimeSemantics they become warnings and evaluation continues with
// the value the operation produces at run time.
//
// Argument types are validated by the caller. A kind outside of what an
// operation accepts is a bug and panics.
package eval

import (
	"errors"
	"fmt"
	"math"

	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/number"
	"tint/internal/source"
	"tint/internal/types"
)

// ErrFailed is returned after a diagnostic has been reported.
var ErrFailed = errors.New("eval: constant evaluation failed")

// Options configures an Eval.
type Options struct {
	// RuntimeSemantics reports failures as warnings and substitutes values
	// instead of failing.
	RuntimeSemantics bool
}

// Eval evaluates constant expressions. It is not safe for concurrent use.
type Eval struct {
	mgr      *constant.Manager
	types    *types.Interner
	reporter diag.Reporter
	policy   policy
}

// New returns an evaluator creating values with mgr and reporting to reporter.
func New(mgr *constant.Manager, reporter diag.Reporter, opts Options) *Eval {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Eval{
		mgr:      mgr,
		types:    mgr.Types(),
		reporter: reporter,
		policy:   policyFor(opts),
	}
}

// Manager returns the value manager.
func (e *Eval) Manager() *constant.Manager { return e.mgr }

// RuntimeSemantics reports whether failures are downgraded to warnings.
func (e *Eval) RuntimeSemantics() bool { return e.policy.substitute() }

// Method is the common shape of operators and builtins.
type Method func(e *Eval, ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error)

func (e *Eval) addError(code diag.Code, src source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(e.reporter, code, src, msg)
}

func (e *Eval) addWarning(code diag.Code, src source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportWarning(e.reporter, code, src, msg)
}

// report starts a diagnostic whose severity follows the policy.
func (e *Eval) report(code diag.Code, src source.Span, msg string) *diag.ReportBuilder {
	if e.policy.severity() == diag.SevWarning {
		return e.addWarning(code, src, msg)
	}
	return e.addError(code, src, msg)
}

// fail reports msg and returns fallback in runtime mode, ErrFailed otherwise.
func (e *Eval) fail(code diag.Code, src source.Span, msg string, fallback number.Number) (number.Number, error) {
	e.report(code, src, msg).Emit()
	if e.policy.substitute() {
		return fallback, nil
	}
	return nil, ErrFailed
}

// failValue is fail for whole values.
func (e *Eval) failValue(code diag.Code, src source.Span, msg string, fallback constant.Value) (constant.Value, error) {
	e.report(code, src, msg).Emit()
	if e.policy.substitute() {
		return fallback, nil
	}
	return nil, ErrFailed
}

// check reports a condition that is fatal in strict mode but lets runtime
// mode carry on with the unchanged computation.
func (e *Eval) check(code diag.Code, src source.Span, msg string) error {
	e.report(code, src, msg).Emit()
	if e.policy.substitute() {
		return nil
	}
	return ErrFailed
}

func overflowMessage(a number.Number, op string, b number.Number) string {
	return fmt.Sprintf("'%s %s %s' cannot be represented as '%s'", a, op, b, a.Kind())
}

func valueOverflowMessage(v any, target string) string {
	return fmt.Sprintf("value %v cannot be represented as '%s'", v, target)
}

// scalar creates a scalar of type ty. Non-finite floats are reported as not
// representable and become zero in runtime mode.
func (e *Eval) scalar(ty types.TypeID, n number.Number, src source.Span) (constant.Value, error) {
	if n.Kind().IsFloat() {
		if f := number.Float64(n); math.IsInf(f, 0) || math.IsNaN(f) {
			r, err := e.fail(diag.ConstOverflow, src, valueOverflowMessage(n, e.types.Name(ty)), number.Zero(n.Kind()))
			if err != nil {
				return nil, err
			}
			n = r
		}
	}
	return e.mgr.Scalar(ty, n), nil
}

// float creates a scalar of float type ty from f, rounded to its precision.
func (e *Eval) float(ty types.TypeID, f float64, src source.Span) (constant.Value, error) {
	return e.scalar(ty, number.FromFloat(e.types.Kind(ty).Number(), f), src)
}

// elemType is the scalar type at the bottom of ty.
func (e *Eval) elemType(ty types.TypeID) types.TypeID {
	return e.types.DeepestElement(ty)
}

func num(v constant.Value) number.Number {
	return constant.ScalarValue(v)
}

func isScalar(v constant.Value) bool {
	_, ok := v.(*constant.Scalar)
	return ok
}
