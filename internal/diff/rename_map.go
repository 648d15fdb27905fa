package diff

// RenameMap correlates symbol names across a rename. Absence means the
// name did not change; both directions default to identity.
type RenameMap struct {
	forward map[string]string // old -> new
	reverse map[string]string // new -> old
}

// NewRenameMap scans diffs for Renamed cases and builds the bidirectional
// translation.
func NewRenameMap(diffs []Diff) *RenameMap {
	m := &RenameMap{
		forward: make(map[string]string),
		reverse: make(map[string]string),
	}
	for _, d := range diffs {
		if r, ok := d.(Renamed); ok {
			m.forward[r.From] = r.To
			m.reverse[r.To] = r.From
		}
	}
	return m
}

// NewName translates an old-snapshot name into the new snapshot.
func (m *RenameMap) NewName(old string) string {
	if m == nil {
		return old
	}
	if n, ok := m.forward[old]; ok {
		return n
	}
	return old
}

// OldName translates a new-snapshot name into the old snapshot.
func (m *RenameMap) OldName(new string) string {
	if m == nil {
		return new
	}
	if o, ok := m.reverse[new]; ok {
		return o
	}
	return new
}

// Len returns the number of recorded renames.
func (m *RenameMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.forward)
}
