// Package trace provides a tracing subsystem for the envdiff engine.
//
// Tracing tracks the differ's phases (snapshot load, unchanged filter,
// hypothesis matching, extension correlation, rendering) to help diagnose
// performance on very large snapshots.
//
// Enable tracing via command-line flags:
//
//	envdiff diff --trace=- --trace-level=phase old.envsnap new.envsnap
//
// Verbosity is controlled by levels:
//
//   - LevelOff: no tracing
//   - LevelPhase: driver and phase boundaries
//   - LevelDetail: per-hypothesis and per-extension events
//   - LevelDebug: everything including per-declaration events
//
// Events are categorized by scope (ScopeDriver, ScopePhase, ScopeDecl) and
// the tracer travels through context.Context so the engine stays free of
// global state.
package trace
