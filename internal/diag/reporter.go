package diag

// Reporter is the minimal contract the engine phases report through.
// Implementations: BagReporter (collects into a Bag), NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, symbol, module, msg string, notes []Note)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, symbol, module, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Symbol: symbol, Module: module, Notes: notes,
	})
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, string, string, string, []Note) {}

// Warn is a shortcut for SevWarning reports without notes.
func Warn(r Reporter, code Code, symbol, module, msg string) {
	if r == nil {
		return
	}
	r.Report(code, SevWarning, symbol, module, msg, nil)
}
