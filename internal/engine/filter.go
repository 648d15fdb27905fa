package engine

import (
	"fmt"

	"envdiff/internal/diag"
	"envdiff/internal/fingerprint"
	"envdiff/internal/snapshot"
)

// eligible reports whether a declaration participates in matching: it must
// carry a value, and internal names are skipped unless requested.
func eligible(d snapshot.Declaration, includeInternal bool, isInternal snapshot.Classifier) bool {
	if !d.HasValue {
		return false
	}
	if includeInternal {
		return true
	}
	return isInternal == nil || !isInternal(d.Name)
}

// fullPrint computes the all-traits fingerprint. A package variable so
// tests can substitute colliding values; real 64-bit digests cannot be made
// to collide on demand.
var fullPrint = func(d snapshot.Declaration, snap *snapshot.Snapshot) uint64 {
	return fingerprint.Fingerprint(d, snap, 0)
}

// fullIndex maps full fingerprints (no excluded traits) to declaration
// names. collided collects every declaration that shares a full fingerprint
// with another one: statistically negligible, but never silently merged.
// Colliding fingerprints are withdrawn from byPrint entirely, since neither
// binding is trustworthy.
type fullIndex struct {
	byPrint  map[uint64]string
	collided []string
}

func buildFullIndex(snap *snapshot.Snapshot, includeInternal bool, isInternal snapshot.Classifier, rep diag.Reporter) fullIndex {
	idx := fullIndex{byPrint: make(map[uint64]string, len(snap.Decls))}
	dupPrints := make(map[uint64]struct{})
	for _, name := range snap.SortedNames() {
		d := snap.Decls[name]
		if !eligible(d, includeInternal, isInternal) {
			continue
		}
		fp := fullPrint(d, snap)
		if prev, dup := idx.byPrint[fp]; dup {
			diag.Warn(rep, diag.MatchFingerprintCollision, name, d.Module,
				fmt.Sprintf("full fingerprint collides with %s", prev))
			if _, seen := dupPrints[fp]; !seen {
				dupPrints[fp] = struct{}{}
				idx.collided = append(idx.collided, prev)
			}
			idx.collided = append(idx.collided, name)
			continue
		}
		idx.byPrint[fp] = name
	}
	for fp := range dupPrints {
		delete(idx.byPrint, fp)
	}
	return idx
}

// changedDecls partitions both snapshots by full fingerprint and returns
// the declarations present on only one side, in name order. Fingerprints
// present on both sides denote semantically identical declarations and are
// dropped; this is the step that shrinks the problem from the whole symbol
// database to the changed subset.
func changedDecls(oldSnap, newSnap *snapshot.Snapshot, includeInternal bool, isInternal snapshot.Classifier, rep diag.Reporter) (befores, afters []snapshot.Declaration) {
	oldIdx := buildFullIndex(oldSnap, includeInternal, isInternal, rep)
	newIdx := buildFullIndex(newSnap, includeInternal, isInternal, rep)

	carryOld := make(map[string]struct{})
	carryNew := make(map[string]struct{})
	for fp, name := range oldIdx.byPrint {
		if _, same := newIdx.byPrint[fp]; !same {
			carryOld[name] = struct{}{}
		}
	}
	for fp, name := range newIdx.byPrint {
		if _, same := oldIdx.byPrint[fp]; !same {
			carryNew[name] = struct{}{}
		}
	}
	// Colliding declarations fall through to hypothesis matching as if
	// changed.
	for _, name := range oldIdx.collided {
		carryOld[name] = struct{}{}
	}
	for _, name := range newIdx.collided {
		carryNew[name] = struct{}{}
	}

	for _, name := range oldSnap.SortedNames() {
		if _, ok := carryOld[name]; ok {
			befores = append(befores, oldSnap.Decls[name])
		}
	}
	for _, name := range newSnap.SortedNames() {
		if _, ok := carryNew[name]; ok {
			afters = append(afters, newSnap.Decls[name])
		}
	}
	return befores, afters
}
