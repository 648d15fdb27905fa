package engine

import (
	"fmt"

	"envdiff/internal/diag"
	"envdiff/internal/diff"
	"envdiff/internal/fingerprint"
	"envdiff/internal/snapshot"
	"envdiff/internal/trace"
)

// matchChanged correlates the changed declarations of both snapshots into
// semantic diffs. It is a greedy, priority-ordered approximate bipartite
// match using partial-fingerprint equality as the similarity oracle:
// near-linear over the changed subset, deterministic, first binding wins.
// Declarations no hypothesis explains become plain Added/Removed.
func matchChanged(befores, afters []snapshot.Declaration, oldSnap, newSnap *snapshot.Snapshot, rep diag.Reporter, tracer trace.Tracer, parent uint64) []diff.Diff {
	var out []diff.Diff
	explainedB := make(map[string]struct{}, len(befores))
	explainedA := make(map[string]struct{}, len(afters))
	// One warning per indistinguishable pair, not one per hypothesis pass.
	warned := make(map[[2]string]struct{})

	for _, excluded := range hypotheses {
		if len(explainedB) == len(befores) || len(explainedA) == len(afters) {
			break
		}
		hspan := trace.Begin(tracer, trace.ScopeHypothesis, "hypothesis:"+excluded.String(), parent)

		// Partial fingerprint -> before name. On collision the first
		// registered binding wins; the ambiguity is reported, never
		// silently resolved.
		index := make(map[uint64]string, len(befores))
		for _, b := range befores {
			if _, done := explainedB[b.Name]; done {
				continue
			}
			fp := fingerprint.Fingerprint(b, oldSnap, excluded)
			if prev, dup := index[fp]; dup {
				key := [2]string{b.Name, prev}
				if _, done := warned[key]; !done {
					warned[key] = struct{}{}
					diag.Warn(rep, diag.MatchAmbiguous, b.Name, b.Module,
						fmt.Sprintf("matches %s ambiguously under exclusion %s", prev, excluded))
				}
				continue
			}
			index[fp] = b.Name
		}

		matched := 0
		for _, a := range afters {
			if _, done := explainedA[a.Name]; done {
				continue
			}
			fp := fingerprint.Fingerprint(a, newSnap, excluded)
			bn, ok := index[fp]
			if !ok {
				continue
			}
			if _, done := explainedB[bn]; done {
				continue
			}
			out = append(out, diffsFor(excluded, oldSnap.Decls[bn], a)...)
			explainedB[bn] = struct{}{}
			explainedA[a.Name] = struct{}{}
			matched++
		}
		hspan.WithExtra("matched", fmt.Sprint(matched)).End("")
	}

	for _, a := range afters {
		if _, done := explainedA[a.Name]; !done {
			out = append(out, diff.Added{Name: a.Name, Module: a.Module})
		}
	}
	for _, b := range befores {
		if _, done := explainedB[b.Name]; !done {
			out = append(out, diff.Removed{Name: b.Name, Module: b.Module})
		}
	}
	return out
}
