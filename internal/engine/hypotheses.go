package engine

import (
	"envdiff/internal/diff"
	"envdiff/internal/fingerprint"
	"envdiff/internal/snapshot"
)

// hypotheses lists the trait-exclusion sets the match engine tries, in
// increasing size of the excluded set. Smaller, more specific exclusions
// run first so the most precise diagnosis wins whenever a pair is
// explainable multiple ways. The list is fixed: these are the only change
// shapes the engine diagnoses.
var hypotheses = []fingerprint.Set{
	fingerprint.NewSet(fingerprint.TraitName),
	fingerprint.NewSet(fingerprint.TraitValue),
	fingerprint.NewSet(fingerprint.TraitType),
	fingerprint.NewSet(fingerprint.TraitModule),
	fingerprint.NewSet(fingerprint.TraitKind),
	fingerprint.NewSet(fingerprint.TraitName, fingerprint.TraitValue),
	fingerprint.NewSet(fingerprint.TraitType, fingerprint.TraitValue),
	fingerprint.NewSet(fingerprint.TraitName, fingerprint.TraitModule),
	fingerprint.NewSet(fingerprint.TraitValue, fingerprint.TraitModule),
	fingerprint.NewSet(fingerprint.TraitType, fingerprint.TraitModule),
	fingerprint.NewSet(fingerprint.TraitName, fingerprint.TraitValue, fingerprint.TraitModule),
	fingerprint.NewSet(fingerprint.TraitType, fingerprint.TraitValue, fingerprint.TraitModule),
}

// diffsFor translates a matched (before, after) pair under an exclusion
// set into the semantic diffs the exclusion implies. Each excluded trait
// that actually differs contributes its own diff; exclusion permits a
// difference, it does not require one (full-fingerprint colliders reach
// matching with every trait equal). The combination cases of the
// hypothesis table fall out of the per-trait union.
func diffsFor(excluded fingerprint.Set, before, after snapshot.Declaration) []diff.Diff {
	out := make([]diff.Diff, 0, 3)
	if excluded.Has(fingerprint.TraitName) && before.Name != after.Name {
		out = append(out, diff.Renamed{
			From:          before.Name,
			To:            after.Name,
			NamespaceOnly: snapshot.BaseName(before.Name) == snapshot.BaseName(after.Name),
			Module:        after.Module,
		})
	}
	if excluded.Has(fingerprint.TraitType) && before.Type != after.Type {
		out = append(out, diff.TypeChanged{Name: after.Name, Module: after.Module})
	}
	if excluded.Has(fingerprint.TraitValue) && before.Value != after.Value {
		out = append(out, diff.ProofChanged{
			Name:          after.Name,
			Module:        after.Module,
			ProofRelevant: after.Kind.ProofRelevant(),
		})
	}
	if excluded.Has(fingerprint.TraitKind) && before.Kind != after.Kind {
		out = append(out, diff.SpeciesChanged{
			Name:   after.Name,
			Module: after.Module,
			From:   before.Kind,
			To:     after.Kind,
		})
	}
	if excluded.Has(fingerprint.TraitModule) && before.Module != after.Module {
		out = append(out, diff.MovedToModule{
			Name:       after.Name,
			FromModule: before.Module,
			ToModule:   after.Module,
		})
	}
	return out
}
