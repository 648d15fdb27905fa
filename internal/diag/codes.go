package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Snapshot container problems
	SnapSchemaMismatch Code = 1000
	SnapDuplicateName  Code = 1001
	SnapCountMismatch  Code = 1002

	// Match engine
	MatchFingerprintCollision Code = 2000
	MatchAmbiguous            Code = 2001

	// Extension correlation
	ExtUnknownKind Code = 3000
	ExtOnlyOneSide Code = 3001
)

var codeDescription = map[Code]string{
	UnknownCode:               "unknown",
	SnapSchemaMismatch:        "snapshot schema mismatch",
	SnapDuplicateName:         "duplicate declaration name in snapshot",
	SnapCountMismatch:         "declaration count mismatch in snapshot header",
	MatchFingerprintCollision: "distinct declarations share a full fingerprint",
	MatchAmbiguous:            "multiple candidates match under one hypothesis",
	ExtUnknownKind:            "extension state has no registered adapter",
	ExtOnlyOneSide:            "extension state present in only one snapshot",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SNAP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MATCH%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EXT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
