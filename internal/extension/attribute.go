package extension

import (
	"envdiff/internal/diff"
	"envdiff/internal/snapshot"
)

// AttributeAdapter diffs one attribute store (protected, simp, instance,
// ...). The payload is the attribute's argument form; membership changes
// map to Added/Removed, payload changes to Changed.
type AttributeAdapter struct {
	// StateKey names the extension state in the snapshot container.
	StateKey string
	// Attr is the attribute name used in rendered diffs. Usually equal to
	// StateKey.
	Attr string
}

func (a AttributeAdapter) Key() string { return a.StateKey }

func (a AttributeAdapter) Diff(old, new snapshot.ExtensionState, ctx Context) []diff.Diff {
	var out []diff.Diff
	for _, name := range sortedKeys(new) {
		if !ctx.include(name) {
			continue
		}
		oldName := ctx.Renames.OldName(name)
		prev, ok := old[oldName]
		switch {
		case !ok:
			out = append(out, diff.AttributeAdded{Attr: a.Attr, Name: name, Module: ctx.moduleOf(name)})
		case prev != new[name]:
			out = append(out, diff.AttributeChanged{Attr: a.Attr, Name: name, Module: ctx.moduleOf(name)})
		}
	}
	for _, name := range sortedKeys(old) {
		if !ctx.include(name) {
			continue
		}
		newName := ctx.Renames.NewName(name)
		if _, ok := new[newName]; !ok {
			out = append(out, diff.AttributeRemoved{Attr: a.Attr, Name: newName, Module: ctx.moduleOf(newName)})
		}
	}
	return out
}
