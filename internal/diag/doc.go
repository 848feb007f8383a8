// Package diag defines the diagnostic model shared by every stage of the
// constant evaluator: lexer, parser, resolver and the evaluator itself.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code: compact numeric identifier (see codes.go) with stable string form.
//   - Message: human oriented text; keep it short and actionable.
//   - Primary span: the source.Span pointing to the issue.
//   - Notes: optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter, never to storage. ReportError, ReportWarning
// and ReportInfo return a ReportBuilder; callers append message text with
// Append/Appendf, attach notes with WithNote and finish with Emit. The
// evaluator relies on this to queue a diagnostic first and extend it later.
//
// BagReporter collects into a Bag, which supports capacity limits, sorting and
// deduplication. DedupReporter filters repeated diagnostics before they reach
// the next reporter.
//
// Package diag does not render anything; see internal/diagfmt.
package diag
