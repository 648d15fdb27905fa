package extension

import (
	"sort"

	"envdiff/internal/diff"
	"envdiff/internal/snapshot"
)

// DocAdapter diffs the documentation-string store.
type DocAdapter struct{}

func (DocAdapter) Key() string { return "doc" }

func (DocAdapter) Diff(old, new snapshot.ExtensionState, ctx Context) []diff.Diff {
	var out []diff.Diff
	for _, name := range sortedKeys(new) {
		if !ctx.include(name) {
			continue
		}
		oldName := ctx.Renames.OldName(name)
		prev, ok := old[oldName]
		switch {
		case !ok:
			out = append(out, diff.DocAdded{Name: name, Module: ctx.moduleOf(name)})
		case prev != new[name]:
			out = append(out, diff.DocChanged{Name: name, Module: ctx.moduleOf(name)})
		}
	}
	for _, name := range sortedKeys(old) {
		if !ctx.include(name) {
			continue
		}
		newName := ctx.Renames.NewName(name)
		if _, ok := new[newName]; !ok {
			out = append(out, diff.DocRemoved{Name: newName, Module: ctx.moduleOf(newName)})
		}
	}
	return out
}

func sortedKeys(state snapshot.ExtensionState) []string {
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
