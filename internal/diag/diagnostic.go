// Package diag carries non-fatal findings out of the diff engine: hash
// collisions, ambiguous matches, correlation oddities. The engine never
// aborts on a warning; callers decide whether and where to print the bag.
package diag

import "fmt"

// Note attaches secondary context to a diagnostic (e.g. the competing
// candidate in an ambiguous match).
type Note struct {
	Symbol string
	Msg    string
}

// Diagnostic is one finding. Symbol and Module locate it in the snapshot;
// either may be empty for snapshot-level findings.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Symbol   string
	Module   string
	Notes    []Note
}

func (d Diagnostic) String() string {
	loc := d.Symbol
	if loc == "" {
		loc = d.Module
	}
	if loc == "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code.ID(), d.Message)
	}
	return fmt.Sprintf("%s %s: %s: %s", d.Severity, d.Code.ID(), loc, d.Message)
}
