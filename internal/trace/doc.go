// Package trace records what a check run did and how long each part took.
//
// Enable tracing via command-line flags:
//
//	lektor check --trace=- --trace-level=checker pismo.txt
//
// Tracers:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// Scopes, coarse to fine: ScopeRun (one CLI invocation or LSP request),
// ScopeFile (one checked text), ScopeChecker (one checker), ScopeRule (one
// rule table entry or comma pass). Level decides the finest scope emitted.
//
// Tracers travel through the engine via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeChecker, "punctuation")
//	defer span.End("")
package trace
