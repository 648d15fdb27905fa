package snapshot

import "fmt"

// Kind classifies the syntactic species of a declaration.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAxiom
	KindDefinition
	KindTheorem
	KindOpaque
	KindQuotientOp
	KindInductive
	KindConstructor
	KindRecursor
)

func (k Kind) String() string {
	switch k {
	case KindAxiom:
		return "axiom"
	case KindDefinition:
		return "definition"
	case KindTheorem:
		return "theorem"
	case KindOpaque:
		return "opaque"
	case KindQuotientOp:
		return "quotient operation"
	case KindInductive:
		return "inductive"
	case KindConstructor:
		return "constructor"
	case KindRecursor:
		return "recursor"
	default:
		return "invalid"
	}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "axiom":
		return KindAxiom, nil
	case "definition":
		return KindDefinition, nil
	case "theorem":
		return KindTheorem, nil
	case "opaque":
		return KindOpaque, nil
	case "quotient":
		return KindQuotientOp, nil
	case "inductive":
		return KindInductive, nil
	case "constructor":
		return KindConstructor, nil
	case "recursor":
		return KindRecursor, nil
	default:
		return KindInvalid, fmt.Errorf("invalid declaration kind: %q", s)
	}
}

// HasValue reports whether declarations of this kind carry a value
// expression. Axioms, inductives, constructors, recursors and quotient
// operations are value-free.
func (k Kind) HasValue() bool {
	switch k {
	case KindDefinition, KindTheorem, KindOpaque:
		return true
	default:
		return false
	}
}

// ProofRelevant reports whether a value change for this kind changes the
// meaning of downstream code. Theorem values are proofs and therefore
// irrelevant to evaluation.
func (k Kind) ProofRelevant() bool {
	return k != KindTheorem
}
