// Package fingerprint reduces declarations to 64-bit digests over a chosen
// subset of their traits. Two declarations whose included traits are equal
// always produce the same fingerprint; the match engine uses this as its
// similarity oracle.
package fingerprint

import "envdiff/internal/snapshot"

// seed is the non-zero starting accumulator. Non-zero so that the empty
// trait set still maps to a stable, recognizable value.
const seed uint64 = 0x9e3779b97f4a7c15

// Set is a bitmask of excluded traits.
type Set uint8

// NewSet builds a Set from individual traits.
func NewSet(traits ...Trait) Set {
	var s Set
	for _, t := range traits {
		s |= 1 << t
	}
	return s
}

// Has reports whether t is in the set.
func (s Set) Has(t Trait) bool { return s&(1<<t) != 0 }

// Len returns the number of traits in the set.
func (s Set) Len() int {
	n := 0
	for _, t := range Registry {
		if s.Has(t) {
			n++
		}
	}
	return n
}

func (s Set) String() string {
	if s == 0 {
		return "{}"
	}
	out := "{"
	first := true
	for _, t := range Registry {
		if !s.Has(t) {
			continue
		}
		if !first {
			out += ","
		}
		out += t.String()
		first = false
	}
	return out + "}"
}

// mix folds one trait hash into the accumulator. Multiply-xor with odd
// constants; order-preserving, so the registry iteration order is part of
// the digest.
func mix(h, acc uint64) uint64 {
	acc ^= h
	acc *= 0xff51afd7ed558ccd
	acc ^= acc >> 33
	return acc
}

// Fingerprint digests every registry trait of d not in excluded, in
// registry order, starting from the fixed seed. Deterministic and total.
func Fingerprint(d snapshot.Declaration, snap *snapshot.Snapshot, excluded Set) uint64 {
	acc := seed
	for _, t := range Registry {
		if excluded.Has(t) {
			continue
		}
		acc = mix(hashValue(t, d, snap), acc)
	}
	return acc
}
