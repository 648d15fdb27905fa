// Package extension diffs per-declaration metadata stores (doc strings,
// attribute sets, reducibility markers). Each metadata kind is handled by
// an Adapter; the engine walks an explicit registry and concatenates the
// adapters' outputs. Adding a metadata kind means registering an adapter,
// not branching inside the match engine.
package extension

import (
	"envdiff/internal/diff"
	"envdiff/internal/snapshot"
)

// Context carries the cross-snapshot correlation helpers adapters need.
type Context struct {
	// Renames translates symbol names across detected renames; nil acts
	// as identity.
	Renames *diff.RenameMap
	// Include filters symbols; internal names are excluded here when the
	// caller asked to ignore them.
	Include func(name string) bool
	// ModuleOf resolves a new-snapshot symbol to its owning module, or ""
	// when the symbol has no declaration (extension-only entries).
	ModuleOf func(name string) string
}

func (c Context) include(name string) bool {
	if c.Include == nil {
		return true
	}
	return c.Include(name)
}

func (c Context) moduleOf(name string) string {
	if c.ModuleOf == nil {
		return ""
	}
	return c.ModuleOf(name)
}

// Adapter diffs one metadata kind between two snapshots.
type Adapter interface {
	// Key identifies the extension state this adapter consumes.
	Key() string
	// Diff compares the old and new states. A symbol absent from the old
	// state has no previous value (reported as added), never an error.
	Diff(old, new snapshot.ExtensionState, ctx Context) []diff.Diff
}
