// Package engine computes the semantic diff between two snapshots: the
// unchanged filter, the hypothesis-ordered match engine, the diff
// minimizer, the module/import differ and the extension walk. The engine
// is stateless, single-threaded and purely CPU-bound; it never aborts on
// well-formed snapshots.
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"envdiff/internal/diag"
	"envdiff/internal/diff"
	"envdiff/internal/extension"
	"envdiff/internal/snapshot"
	"envdiff/internal/trace"
)

// Options configures one Compare invocation. The zero value diffs
// declarations only, with internal names excluded by the default
// classifier and no extension adapters.
type Options struct {
	// IncludeInternal keeps system-generated declarations in the diff.
	IncludeInternal bool
	// Classifier decides which names are internal; nil means
	// snapshot.DefaultClassifier.
	Classifier snapshot.Classifier
	// Registry lists the extension adapters to run, in order. Nil runs
	// none.
	Registry *extension.Registry
	// Reporter receives non-fatal warnings (collisions, ambiguities).
	Reporter diag.Reporter
	// Progress receives phase events; nil disables progress reporting.
	Progress ProgressSink
}

// Result is the machine-readable outcome of a comparison. Diffs are in
// engine emission order; the summarizer owns the final ordering.
type Result struct {
	Diffs   []diff.Diff
	Renames *diff.RenameMap
}

// Compare diffs two immutable snapshots. It always terminates with a
// (possibly empty) diff list; all failure-like findings go through the
// reporter.
func Compare(ctx context.Context, oldSnap, newSnap *snapshot.Snapshot, opts Options) Result {
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "compare", 0)
	defer root.End("")

	rep := opts.Reporter
	if rep == nil {
		rep = diag.NopReporter{}
	}
	isInternal := opts.Classifier
	if isInternal == nil {
		isInternal = snapshot.DefaultClassifier
	}

	var befores, afters []snapshot.Declaration
	runPhase(tracer, root.ID(), opts.Progress, PhaseFilter, func() {
		befores, afters = changedDecls(oldSnap, newSnap, opts.IncludeInternal, isInternal, rep)
	})

	var declDiffs []diff.Diff
	runPhase(tracer, root.ID(), opts.Progress, PhaseMatch, func() {
		declDiffs = matchChanged(befores, afters, oldSnap, newSnap, rep, tracer, root.ID())
	})

	renames := diff.NewRenameMap(declDiffs)

	var moduleDiffs []diff.Diff
	runPhase(tracer, root.ID(), opts.Progress, PhaseModules, func() {
		moduleDiffs = diffModules(oldSnap, newSnap)
	})

	var extDiffs []diff.Diff
	runPhase(tracer, root.ID(), opts.Progress, PhaseExtensions, func() {
		extDiffs = runExtensions(oldSnap, newSnap, renames, opts, isInternal, rep, tracer, root.ID())
	})

	all := make([]diff.Diff, 0, len(declDiffs)+len(moduleDiffs)+len(extDiffs))
	all = append(all, declDiffs...)
	all = append(all, moduleDiffs...)
	all = append(all, extDiffs...)
	all = minimize(all)

	return Result{Diffs: all, Renames: renames}
}

// runExtensions walks the adapter registry in order and concatenates the
// outputs. Extension states with no registered adapter are reported, not
// diffed.
func runExtensions(oldSnap, newSnap *snapshot.Snapshot, renames *diff.RenameMap, opts Options, isInternal snapshot.Classifier, rep diag.Reporter, tracer trace.Tracer, parent uint64) []diff.Diff {
	if opts.Registry == nil {
		return nil
	}

	include := func(string) bool { return true }
	if !opts.IncludeInternal && isInternal != nil {
		include = func(name string) bool { return !isInternal(name) }
	}
	moduleOf := func(name string) string {
		if d, ok := newSnap.Lookup(name); ok {
			return d.Module
		}
		return ""
	}
	ctx := extension.Context{Renames: renames, Include: include, ModuleOf: moduleOf}

	var out []diff.Diff
	for _, adapter := range opts.Registry.Adapters() {
		span := trace.Begin(tracer, trace.ScopeHypothesis, "extension:"+adapter.Key(), parent)
		ds := adapter.Diff(oldSnap.Extension(adapter.Key()), newSnap.Extension(adapter.Key()), ctx)
		out = append(out, ds...)
		span.WithExtra("diffs", fmt.Sprint(len(ds))).End("")
	}

	for _, key := range unknownExtensionKeys(oldSnap, newSnap, opts.Registry) {
		diag.Warn(rep, diag.ExtUnknownKind, "", "", fmt.Sprintf("extension state %q has no registered adapter", key))
	}
	for _, key := range oneSidedExtensionKeys(oldSnap, newSnap, opts.Registry) {
		rep.Report(diag.ExtOnlyOneSide, diag.SevInfo, "", "",
			fmt.Sprintf("extension state %q present in only one snapshot", key), nil)
	}
	return out
}

// oneSidedExtensionKeys returns registered keys whose state exists in
// exactly one of the snapshots, in registration order. Adapters treat the
// missing side as empty; the asymmetry is surfaced as an informational
// notice.
func oneSidedExtensionKeys(oldSnap, newSnap *snapshot.Snapshot, reg *extension.Registry) []string {
	var keys []string
	for _, adapter := range reg.Adapters() {
		key := adapter.Key()
		_, inOld := oldSnap.Extensions[key]
		_, inNew := newSnap.Extensions[key]
		if inOld != inNew {
			keys = append(keys, key)
		}
	}
	return keys
}

func unknownExtensionKeys(oldSnap, newSnap *snapshot.Snapshot, reg *extension.Registry) []string {
	seen := make(map[string]struct{})
	var keys []string
	collect := func(s *snapshot.Snapshot) {
		for key := range s.Extensions {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, ok := reg.Lookup(key); !ok {
				keys = append(keys, key)
			}
		}
	}
	collect(oldSnap)
	collect(newSnap)
	sort.Strings(keys)
	return keys
}

// runPhase wraps one engine phase with tracing and progress events.
func runPhase(tracer trace.Tracer, parent uint64, sink ProgressSink, phase Phase, fn func()) {
	emit(sink, Event{Phase: phase, Status: StatusWorking})
	span := trace.Begin(tracer, trace.ScopePhase, string(phase), parent)
	start := time.Now()
	fn()
	span.End("")
	emit(sink, Event{Phase: phase, Status: StatusDone, Elapsed: time.Since(start)})
}
