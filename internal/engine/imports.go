package engine

import (
	"sort"

	"envdiff/internal/diff"
	"envdiff/internal/snapshot"
)

// diffModules set-differences the module lists and, for modules present in
// both snapshots, each module's direct-import adjacency. Transitive-import
// diffing would reuse the same set difference over transitively closed
// adjacency; the core does not compute closures.
func diffModules(oldSnap, newSnap *snapshot.Snapshot) []diff.Diff {
	var out []diff.Diff

	oldMods := make(map[string]struct{}, len(oldSnap.Modules))
	for _, m := range oldSnap.Modules {
		oldMods[m] = struct{}{}
	}
	newMods := make(map[string]struct{}, len(newSnap.Modules))
	for _, m := range newSnap.Modules {
		newMods[m] = struct{}{}
	}

	for _, m := range oldSnap.Modules {
		if _, kept := newMods[m]; !kept {
			out = append(out, diff.ModuleRemoved{Module: m})
		}
	}
	for _, m := range newSnap.Modules {
		if _, existed := oldMods[m]; !existed {
			out = append(out, diff.ModuleAdded{Module: m})
		}
	}

	for _, m := range newSnap.Modules {
		if _, existed := oldMods[m]; !existed {
			continue
		}
		before := importSet(oldSnap.Imports[m])
		after := importSet(newSnap.Imports[m])
		for _, imp := range sortedSet(after) {
			if _, had := before[imp]; !had {
				out = append(out, diff.DirectImportAdded{Module: m, Import: imp})
			}
		}
		for _, imp := range sortedSet(before) {
			if _, has := after[imp]; !has {
				out = append(out, diff.DirectImportRemoved{Module: m, Import: imp})
			}
		}
	}
	return out
}

func importSet(imports []string) map[string]struct{} {
	set := make(map[string]struct{}, len(imports))
	for _, imp := range imports {
		set[imp] = struct{}{}
	}
	return set
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
