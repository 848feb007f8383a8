package eval

import "tint/internal/diag"

// policy decides how the evaluator reacts to a recoverable failure such as an
// overflow or a domain violation.
type policy interface {
	// severity of the diagnostic reported for the failure.
	severity() diag.Severity
	// substitute reports whether evaluation continues with a fallback value.
	substitute() bool
}

// strictPolicy treats every failure as a compile error.
type strictPolicy struct{}

func (strictPolicy) severity() diag.Severity { return diag.SevError }
func (strictPolicy) substitute() bool { return false }

// runtimePolicy downgrades failures to warnings and continues with the value
// the operation would produce at run time.
type runtimePolicy struct{}

func (runtimePolicy) severity() diag.Severity { return diag.SevWarning }
func (runtimePolicy) substitute() bool { return true }

func policyFor(opts Options) policy {
	if opts.RuntimeSemantics {
		return runtimePolicy{}
	}
	return strictPolicy{}
}
