package diag

// Severity ranks a diagnostic. Evaluation problems are errors under strict
// semantics and warnings under runtime semantics.
type Severity uint8

const (
	// SevInfo carries side information such as phase timings.
	SevInfo Severity = iota
	// SevWarning does not fail a check unless warnings are promoted.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case spelling used by the one-line format.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "info"
}
