package fingerprint

import (
	"github.com/cespare/xxhash/v2"

	"envdiff/internal/snapshot"
)

// Trait identifies one fingerprintable attribute of a declaration.
// The registry is closed: the match engine enumerates exclusion sets over
// exactly these five traits.
type Trait uint8

const (
	TraitName Trait = iota
	TraitType
	TraitValue
	TraitKind
	TraitModule
	traitCount
)

func (t Trait) String() string {
	switch t {
	case TraitName:
		return "name"
	case TraitType:
		return "type"
	case TraitValue:
		return "value"
	case TraitKind:
		return "kind"
	case TraitModule:
		return "module"
	default:
		return "invalid"
	}
}

// Registry lists all traits in combination order. Fingerprints fold trait
// hashes in this order regardless of which traits are excluded.
var Registry = [traitCount]Trait{TraitName, TraitType, TraitValue, TraitKind, TraitModule}

// hashValue hashes one trait's value for a declaration. Each trait owns a
// canonical byte form; the snapshot argument exists for traits that might
// need surrounding context (none of the current five do beyond the
// declaration itself, but the contract allows it).
func hashValue(t Trait, d snapshot.Declaration, _ *snapshot.Snapshot) uint64 {
	switch t {
	case TraitName:
		return xxhash.Sum64String(d.Name)
	case TraitType:
		return xxhash.Sum64(d.Type[:])
	case TraitValue:
		if !d.HasValue {
			return 0
		}
		return xxhash.Sum64(d.Value[:])
	case TraitKind:
		return uint64(d.Kind) + 1
	case TraitModule:
		return xxhash.Sum64String(d.Module)
	default:
		return 0
	}
}
