package snapshot

import (
	"crypto/sha256"
	"sort"
	"strings"
)

// Digest is a fixed 256-bit content hash standing in for an opaque
// expression value. Snapshots carry digests instead of expression trees;
// equality of digests is the only comparison the differ needs.
type Digest [32]byte

// DigestOf hashes an arbitrary byte form into a Digest. Used by fixture
// builders; production snapshots carry digests computed upstream.
func DigestOf(data []byte) Digest {
	return sha256.Sum256(data)
}

// Declaration is a single named entity in a snapshot. Immutable; owned by
// its snapshot.
type Declaration struct {
	Name     string
	Kind     Kind
	Type     Digest
	Value    Digest
	HasValue bool
	Module   string
}

// ExtensionState is one named metadata store: symbol name to payload.
// Payload semantics are private to the extension (doc text, attribute
// marker, reducibility status).
type ExtensionState map[string]string

// Snapshot is an immutable view of a symbol database at one point in time:
// every named declaration, the module list with direct-import adjacency,
// and the extension metadata stores.
type Snapshot struct {
	// Decls maps unique declaration names to declarations.
	Decls map[string]Declaration
	// Modules lists module names in snapshot order.
	Modules []string
	// Imports holds per-module direct imports.
	Imports map[string][]string
	// Extensions maps metadata-kind keys to their state.
	Extensions map[string]ExtensionState
}

// Lookup returns the declaration for name, if present.
func (s *Snapshot) Lookup(name string) (Declaration, bool) {
	d, ok := s.Decls[name]
	return d, ok
}

// Extension returns the named extension state, or nil if absent.
// A nil state behaves as "no symbol has prior state".
func (s *Snapshot) Extension(key string) ExtensionState {
	return s.Extensions[key]
}

// SortedNames returns declaration names in lexicographic order.
// The differ itself is order-insensitive; deterministic iteration is only
// needed where output order leaks (collision reporting, rendering).
func (s *Snapshot) SortedNames() []string {
	names := make([]string, 0, len(s.Decls))
	for name := range s.Decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BaseName returns the final dot-separated component of a declaration name.
func BaseName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
