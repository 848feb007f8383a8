// Package trace records what the evaluator pipeline is doing: which files
// are being processed, how long each pass takes, and which declarations
// were evaluated.
//
// Enable tracing from the command line:
//
//	tint check --trace=- --trace-level=detail shaders/
//
// Tracers:
//
//   - Nop: no-op, used when tracing is off
//   - StreamTracer: writes each event immediately
//   - RingTracer: keeps the last N events in memory for dumps
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes: LevelPhase emits driver and pass events,
// LevelDetail adds per-file events and LevelDebug adds per-expression
// events.
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
