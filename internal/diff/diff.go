// Package diff defines the closed set of semantic change cases the differ
// can report, together with the total priority and owning-module functions
// used for deterministic ordering. Adding a case requires extending the
// exhaustive switches in Priority, ModuleOf and Render; the compiler and
// the totality test keep the three in step.
package diff

import "envdiff/internal/snapshot"

// Diff is one semantic change between two snapshots. The set of
// implementations is closed over the cases below.
type Diff interface {
	isDiff()
}

// Added reports a declaration present only in the new snapshot.
type Added struct {
	Name   string
	Module string
}

// Removed reports a declaration present only in the old snapshot.
type Removed struct {
	Name   string
	Module string
}

// Renamed reports a declaration whose name changed while everything else
// matched. NamespaceOnly is set when the final name component survived and
// only the enclosing namespace moved.
type Renamed struct {
	From          string
	To            string
	NamespaceOnly bool
	Module        string
}

// MovedToModule reports a declaration that kept its identity but now lives
// in a different module.
type MovedToModule struct {
	Name       string
	FromModule string
	ToModule   string
}

// MovedWithinModule reports a declaration repositioned inside its module.
// The match engine never produces it (snapshots carry no positions); it is
// reserved for extension adapters with positional metadata.
type MovedWithinModule struct {
	Name   string
	Module string
}

// ProofChanged reports a changed value expression. ProofRelevant is false
// for theorems, whose values are proofs and do not affect evaluation.
type ProofChanged struct {
	Name          string
	Module        string
	ProofRelevant bool
}

// TypeChanged reports a changed type expression.
type TypeChanged struct {
	Name   string
	Module string
}

// SpeciesChanged reports a declaration whose kind changed, e.g. a theorem
// that became a definition.
type SpeciesChanged struct {
	Name   string
	Module string
	From   snapshot.Kind
	To     snapshot.Kind
}

// ModuleAdded reports a module present only in the new snapshot.
type ModuleAdded struct {
	Module string
}

// ModuleRemoved reports a module present only in the old snapshot.
type ModuleRemoved struct {
	Module string
}

// ModuleRenamed reports a module rename detected by a higher-level
// correlation (not produced by the core set difference).
type ModuleRenamed struct {
	From string
	To   string
}

// DocAdded reports documentation attached to a previously undocumented
// declaration.
type DocAdded struct {
	Name   string
	Module string
}

// DocChanged reports modified documentation text.
type DocChanged struct {
	Name   string
	Module string
}

// DocRemoved reports documentation stripped from a declaration.
type DocRemoved struct {
	Name   string
	Module string
}

// AttributeAdded reports an attribute newly applied to a declaration.
type AttributeAdded struct {
	Attr   string
	Name   string
	Module string
}

// AttributeRemoved reports an attribute no longer applied.
type AttributeRemoved struct {
	Attr   string
	Name   string
	Module string
}

// AttributeChanged reports an attribute whose payload changed.
type AttributeChanged struct {
	Attr   string
	Name   string
	Module string
}

// DirectImportAdded reports a new direct import edge.
type DirectImportAdded struct {
	Module string
	Import string
}

// DirectImportRemoved reports a dropped direct import edge.
type DirectImportRemoved struct {
	Module string
	Import string
}

// TransitiveImportAdded reports a new transitively reachable import.
// Emitted only by the (future) transitive differ, never by the core.
type TransitiveImportAdded struct {
	Module string
	Import string
}

// TransitiveImportRemoved reports a transitively reachable import that
// disappeared.
type TransitiveImportRemoved struct {
	Module string
	Import string
}

func (Added) isDiff()                   {}
func (Removed) isDiff()                 {}
func (Renamed) isDiff()                 {}
func (MovedToModule) isDiff()           {}
func (MovedWithinModule) isDiff()       {}
func (ProofChanged) isDiff()            {}
func (TypeChanged) isDiff()             {}
func (SpeciesChanged) isDiff()          {}
func (ModuleAdded) isDiff()             {}
func (ModuleRemoved) isDiff()           {}
func (ModuleRenamed) isDiff()           {}
func (DocAdded) isDiff()                {}
func (DocChanged) isDiff()              {}
func (DocRemoved) isDiff()              {}
func (AttributeAdded) isDiff()          {}
func (AttributeRemoved) isDiff()        {}
func (AttributeChanged) isDiff()        {}
func (DirectImportAdded) isDiff()       {}
func (DirectImportRemoved) isDiff()     {}
func (TransitiveImportAdded) isDiff()   {}
func (TransitiveImportRemoved) isDiff() {}
