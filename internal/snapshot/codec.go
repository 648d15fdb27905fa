package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/unicode/norm"
)

// Current schema version - increment when filePayload format changes.
const snapshotSchemaVersion uint16 = 1

// ErrSchema marks a snapshot whose container schema does not match this
// tool's version.
var ErrSchema = errors.New("unsupported snapshot schema")

// LoadError wraps any failure to load a snapshot container. Fatal to the
// invocation; never retried.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load snapshot %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// declRecord is the on-disk form of one declaration.
type declRecord struct {
	Name     string
	Kind     uint8
	Type     Digest
	Value    Digest
	HasValue bool
	Module   string
}

// moduleRecord is the on-disk form of one module with its direct imports.
type moduleRecord struct {
	Name    string
	Imports []string
}

// filePayload is the msgpack container for a snapshot.
type filePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Tool version that produced the file (informational)
	Producer string

	DeclCount  uint32
	Decls      []declRecord
	Modules    []moduleRecord
	Extensions map[string]map[string]string
}

// Load reads a snapshot container from path. Names are NFC-normalized so
// that byte-level encoding differences between producers never surface as
// spurious renames.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	var payload filePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if payload.Schema != snapshotSchemaVersion {
		return nil, &LoadError{
			Path: path,
			Err:  fmt.Errorf("%w: got %d, want %d", ErrSchema, payload.Schema, snapshotSchemaVersion),
		}
	}
	if int(payload.DeclCount) != len(payload.Decls) {
		return nil, &LoadError{
			Path: path,
			Err:  fmt.Errorf("declaration count mismatch: header %d, body %d", payload.DeclCount, len(payload.Decls)),
		}
	}

	snap := &Snapshot{
		Decls:      make(map[string]Declaration, len(payload.Decls)),
		Modules:    make([]string, 0, len(payload.Modules)),
		Imports:    make(map[string][]string, len(payload.Modules)),
		Extensions: make(map[string]ExtensionState, len(payload.Extensions)),
	}
	for _, rec := range payload.Decls {
		name := norm.NFC.String(rec.Name)
		if _, dup := snap.Decls[name]; dup {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("duplicate declaration %q", name)}
		}
		snap.Decls[name] = Declaration{
			Name:     name,
			Kind:     Kind(rec.Kind),
			Type:     rec.Type,
			Value:    rec.Value,
			HasValue: rec.HasValue,
			Module:   norm.NFC.String(rec.Module),
		}
	}
	for _, m := range payload.Modules {
		name := norm.NFC.String(m.Name)
		snap.Modules = append(snap.Modules, name)
		imports := make([]string, 0, len(m.Imports))
		for _, imp := range m.Imports {
			imports = append(imports, norm.NFC.String(imp))
		}
		snap.Imports[name] = imports
	}
	for key, state := range payload.Extensions {
		es := make(ExtensionState, len(state))
		for name, v := range state {
			es[norm.NFC.String(name)] = v
		}
		snap.Extensions[key] = es
	}
	return snap, nil
}

// Save serializes a snapshot container to path via temp-file rename.
func Save(path string, snap *Snapshot, producer string) error {
	declCount, err := safecast.Conv[uint32](len(snap.Decls))
	if err != nil {
		return fmt.Errorf("declaration count overflow: %w", err)
	}
	payload := filePayload{
		Schema:     snapshotSchemaVersion,
		Producer:   producer,
		DeclCount:  declCount,
		Decls:      make([]declRecord, 0, len(snap.Decls)),
		Modules:    make([]moduleRecord, 0, len(snap.Modules)),
		Extensions: make(map[string]map[string]string, len(snap.Extensions)),
	}
	for _, name := range snap.SortedNames() {
		d := snap.Decls[name]
		payload.Decls = append(payload.Decls, declRecord{
			Name:     d.Name,
			Kind:     uint8(d.Kind),
			Type:     d.Type,
			Value:    d.Value,
			HasValue: d.HasValue,
			Module:   d.Module,
		})
	}
	for _, m := range snap.Modules {
		payload.Modules = append(payload.Modules, moduleRecord{Name: m, Imports: snap.Imports[m]})
	}
	for key, state := range snap.Extensions {
		payload.Extensions[key] = state
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, path)
}
