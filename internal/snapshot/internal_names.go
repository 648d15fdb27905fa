package snapshot

import "strings"

// Classifier decides whether a declaration name is system-generated
// ("internal") rather than authored. Internal declarations are optionally
// excluded from matching and metadata diffing.
type Classifier func(name string) bool

// generatedSuffixes are name components the elaborator synthesizes for
// authored declarations. A name whose last component equals one of these
// is internal.
var generatedSuffixes = []string{
	"rec", "brecOn", "binductionOn", "casesOn", "recOn", "below", "ibelow",
	"noConfusion", "noConfusionType", "injEq", "sizeOf_spec", "eq_def",
}

// DefaultClassifier classifies names produced by the compiler itself:
// any component starting with '_', a "match_"/"proof_"/"eq_" discriminated
// component, or a well-known generated suffix.
func DefaultClassifier(name string) bool {
	last := ""
	for _, comp := range strings.Split(name, ".") {
		if comp == "" {
			continue
		}
		if comp[0] == '_' {
			return true
		}
		if hasDiscriminator(comp, "match_") || hasDiscriminator(comp, "proof_") || hasDiscriminator(comp, "eq_") {
			return true
		}
		last = comp
	}
	for _, suf := range generatedSuffixes {
		if last == suf {
			return true
		}
	}
	return false
}

// PrefixClassifier extends base: any name under one of the given dotted
// prefixes is also internal.
func PrefixClassifier(base Classifier, prefixes []string) Classifier {
	return func(name string) bool {
		if base != nil && base(name) {
			return true
		}
		for _, p := range prefixes {
			if p == "" {
				continue
			}
			if name == p || strings.HasPrefix(name, p+".") {
				return true
			}
		}
		return false
	}
}

// hasDiscriminator reports whether comp is prefix followed by digits only,
// e.g. "match_3".
func hasDiscriminator(comp, prefix string) bool {
	if !strings.HasPrefix(comp, prefix) {
		return false
	}
	rest := comp[len(prefix):]
	if rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}
