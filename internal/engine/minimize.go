package engine

import "envdiff/internal/diff"

// minimize drops diffs already implied by a coarser one: metadata removals
// on a declaration whose removal is itself reported. Module-removal
// implying contained-declaration diffs and suppression of metadata "added"
// diffs on new declarations are deliberate non-rules for now; extending
// this pass is the place to add them.
func minimize(diffs []diff.Diff) []diff.Diff {
	removed := make(map[string]struct{})
	for _, d := range diffs {
		if r, ok := d.(diff.Removed); ok {
			removed[r.Name] = struct{}{}
		}
	}
	if len(removed) == 0 {
		return diffs
	}

	out := diffs[:0]
	for _, d := range diffs {
		switch d := d.(type) {
		case diff.DocRemoved:
			if _, gone := removed[d.Name]; gone {
				continue
			}
		case diff.AttributeRemoved:
			if _, gone := removed[d.Name]; gone {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}
