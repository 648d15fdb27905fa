package engine

import (
	"context"
	"testing"

	"envdiff/internal/diag"
	"envdiff/internal/diff"
	"envdiff/internal/extension"
	"envdiff/internal/snapshot"
)

func decl(name, typ, val, module string, kind snapshot.Kind) snapshot.Declaration {
	d := snapshot.Declaration{
		Name:   name,
		Kind:   kind,
		Type:   snapshot.DigestOf([]byte(typ)),
		Module: module,
	}
	if val != "" {
		d.Value = snapshot.DigestOf([]byte(val))
		d.HasValue = true
	}
	return d
}

func snapOf(modules []string, imports map[string][]string, decls ...snapshot.Declaration) *snapshot.Snapshot {
	s := &snapshot.Snapshot{
		Decls:      make(map[string]snapshot.Declaration, len(decls)),
		Modules:    modules,
		Imports:    make(map[string][]string, len(modules)),
		Extensions: make(map[string]snapshot.ExtensionState),
	}
	for _, m := range modules {
		s.Imports[m] = imports[m]
	}
	for _, d := range decls {
		s.Decls[d.Name] = d
	}
	return s
}

func compare(t *testing.T, oldSnap, newSnap *snapshot.Snapshot, opts Options) (Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	opts.Reporter = diag.BagReporter{Bag: bag}
	res := Compare(context.Background(), oldSnap, newSnap, opts)
	return res, bag
}

func TestReflexivity(t *testing.T) {
	snap := snapOf([]string{"M"}, nil,
		decl("M.foo", "Nat", "1", "M", snapshot.KindDefinition),
		decl("M.bar", "Int", "2", "M", snapshot.KindTheorem),
	)
	snap.Extensions["doc"] = snapshot.ExtensionState{"M.foo": "docs"}

	res, bag := compare(t, snap, snap, Options{Registry: extension.DefaultRegistry(nil)})
	if len(res.Diffs) != 0 {
		t.Fatalf("diff(E, E) = %v, want empty", res.Diffs)
	}
	if bag.HasWarnings() {
		t.Fatalf("unexpected warnings: %v", bag.Items())
	}
}

func TestScenarioRename(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil, decl("foo", "Nat", "1", "M", snapshot.KindDefinition))
	newSnap := snapOf([]string{"M"}, nil, decl("bar", "Nat", "1", "M", snapshot.KindDefinition))

	res, _ := compare(t, oldSnap, newSnap, Options{})
	if len(res.Diffs) != 1 {
		t.Fatalf("diffs = %v, want exactly one", res.Diffs)
	}
	want := diff.Renamed{From: "foo", To: "bar", NamespaceOnly: false, Module: "M"}
	if res.Diffs[0] != want {
		t.Fatalf("diff = %+v, want %+v", res.Diffs[0], want)
	}
	if res.Renames.NewName("foo") != "bar" || res.Renames.OldName("bar") != "foo" {
		t.Fatalf("rename map not populated")
	}
}

func TestNamespaceOnlyRename(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil, decl("A.pi", "Real", "3", "M", snapshot.KindDefinition))
	newSnap := snapOf([]string{"M"}, nil, decl("B.pi", "Real", "3", "M", snapshot.KindDefinition))

	res, _ := compare(t, oldSnap, newSnap, Options{})
	want := diff.Renamed{From: "A.pi", To: "B.pi", NamespaceOnly: true, Module: "M"}
	if len(res.Diffs) != 1 || res.Diffs[0] != want {
		t.Fatalf("diffs = %v, want [%+v]", res.Diffs, want)
	}
}

func TestScenarioValueChanged(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil, decl("f", "Nat", "1", "M", snapshot.KindDefinition))
	newSnap := snapOf([]string{"M"}, nil, decl("f", "Nat", "2", "M", snapshot.KindDefinition))

	res, _ := compare(t, oldSnap, newSnap, Options{})
	want := diff.ProofChanged{Name: "f", Module: "M", ProofRelevant: true}
	if len(res.Diffs) != 1 || res.Diffs[0] != want {
		t.Fatalf("diffs = %v, want [%+v]", res.Diffs, want)
	}
}

func TestProofChangeOfTheoremIsIrrelevant(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil, decl("thm", "P", "proof1", "M", snapshot.KindTheorem))
	newSnap := snapOf([]string{"M"}, nil, decl("thm", "P", "proof2", "M", snapshot.KindTheorem))

	res, _ := compare(t, oldSnap, newSnap, Options{})
	want := diff.ProofChanged{Name: "thm", Module: "M", ProofRelevant: false}
	if len(res.Diffs) != 1 || res.Diffs[0] != want {
		t.Fatalf("diffs = %v, want [%+v]", res.Diffs, want)
	}
}

func TestScenarioMovedToModule(t *testing.T) {
	oldSnap := snapOf([]string{"M1", "M2"}, nil, decl("g", "Nat", "1", "M1", snapshot.KindDefinition))
	newSnap := snapOf([]string{"M1", "M2"}, nil, decl("g", "Nat", "1", "M2", snapshot.KindDefinition))

	res, _ := compare(t, oldSnap, newSnap, Options{})
	want := diff.MovedToModule{Name: "g", FromModule: "M1", ToModule: "M2"}
	if len(res.Diffs) != 1 || res.Diffs[0] != want {
		t.Fatalf("diffs = %v, want [%+v]", res.Diffs, want)
	}
}

func TestScenarioAddedRemoved(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil, decl("h", "Nat", "1", "M", snapshot.KindDefinition))
	newSnap := snapOf([]string{"M"}, nil)

	res, _ := compare(t, oldSnap, newSnap, Options{})
	if len(res.Diffs) != 1 || res.Diffs[0] != (diff.Removed{Name: "h", Module: "M"}) {
		t.Fatalf("diffs = %v, want [Removed h]", res.Diffs)
	}

	res, _ = compare(t, newSnap, oldSnap, Options{})
	if len(res.Diffs) != 1 || res.Diffs[0] != (diff.Added{Name: "h", Module: "M"}) {
		t.Fatalf("diffs = %v, want [Added h]", res.Diffs)
	}
}

func TestMirrorProperty(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil,
		decl("keep", "Nat", "1", "M", snapshot.KindDefinition),
		decl("gone", "GoneT", "x", "M", snapshot.KindDefinition),
	)
	newSnap := snapOf([]string{"M"}, nil,
		decl("keep", "Nat", "1", "M", snapshot.KindDefinition),
		decl("new", "NewT", "y", "M", snapshot.KindDefinition),
	)

	fwd, _ := compare(t, oldSnap, newSnap, Options{})
	rev, _ := compare(t, newSnap, oldSnap, Options{})

	fwdAdded := names(fwd.Diffs, func(d diff.Diff) (string, bool) {
		a, ok := d.(diff.Added)
		return a.Name, ok
	})
	revRemoved := names(rev.Diffs, func(d diff.Diff) (string, bool) {
		r, ok := d.(diff.Removed)
		return r.Name, ok
	})
	if len(fwdAdded) != 1 || len(revRemoved) != 1 || fwdAdded[0] != revRemoved[0] {
		t.Fatalf("mirror violated: added %v vs removed %v", fwdAdded, revRemoved)
	}
}

func names(diffs []diff.Diff, pick func(diff.Diff) (string, bool)) []string {
	var out []string
	for _, d := range diffs {
		if name, ok := pick(d); ok {
			out = append(out, name)
		}
	}
	return out
}

func TestRenameWithValueChange(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil, decl("foo", "Nat", "1", "M", snapshot.KindDefinition))
	newSnap := snapOf([]string{"M"}, nil, decl("bar", "Nat", "2", "M", snapshot.KindDefinition))

	res, _ := compare(t, oldSnap, newSnap, Options{})
	if len(res.Diffs) != 2 {
		t.Fatalf("diffs = %v, want rename + value change", res.Diffs)
	}
	if res.Diffs[0] != (diff.Renamed{From: "foo", To: "bar", Module: "M"}) {
		t.Fatalf("first diff = %+v", res.Diffs[0])
	}
	if res.Diffs[1] != (diff.ProofChanged{Name: "bar", Module: "M", ProofRelevant: true}) {
		t.Fatalf("second diff = %+v", res.Diffs[1])
	}
}

func TestSpeciesChanged(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil, decl("s", "P", "v", "M", snapshot.KindTheorem))
	newSnap := snapOf([]string{"M"}, nil, decl("s", "P", "v", "M", snapshot.KindDefinition))

	res, _ := compare(t, oldSnap, newSnap, Options{})
	want := diff.SpeciesChanged{Name: "s", Module: "M", From: snapshot.KindTheorem, To: snapshot.KindDefinition}
	if len(res.Diffs) != 1 || res.Diffs[0] != want {
		t.Fatalf("diffs = %v, want [%+v]", res.Diffs, want)
	}
}

func TestAmbiguousMatchWarning(t *testing.T) {
	// Two old declarations identical up to name; one new declaration
	// matches both under the name exclusion. First binding wins, the
	// ambiguity is reported.
	oldSnap := snapOf([]string{"M"}, nil,
		decl("a1", "Nat", "1", "M", snapshot.KindDefinition),
		decl("a2", "Nat", "1", "M", snapshot.KindDefinition),
	)
	newSnap := snapOf([]string{"M"}, nil, decl("c", "Nat", "1", "M", snapshot.KindDefinition))

	res, bag := compare(t, oldSnap, newSnap, Options{})

	foundWarning := false
	for _, d := range bag.Items() {
		if d.Code == diag.MatchAmbiguous {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Fatalf("expected ambiguous-match warning, got %v", bag.Items())
	}

	wantRename := diff.Renamed{From: "a1", To: "c", Module: "M"}
	wantRemoved := diff.Removed{Name: "a2", Module: "M"}
	if len(res.Diffs) != 2 || res.Diffs[0] != wantRename || res.Diffs[1] != wantRemoved {
		t.Fatalf("diffs = %v, want [%+v %+v]", res.Diffs, wantRename, wantRemoved)
	}
}

func TestIgnoreInternalDeclarations(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil)
	newSnap := snapOf([]string{"M"}, nil, decl("Foo.match_1", "Nat", "1", "M", snapshot.KindDefinition))

	res, _ := compare(t, oldSnap, newSnap, Options{})
	if len(res.Diffs) != 0 {
		t.Fatalf("internal declaration leaked into diff: %v", res.Diffs)
	}

	res, _ = compare(t, oldSnap, newSnap, Options{IncludeInternal: true})
	if len(res.Diffs) != 1 {
		t.Fatalf("internal declaration missing with IncludeInternal: %v", res.Diffs)
	}
}

func TestValueFreeDeclarationsAreSkipped(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil, decl("ax", "P", "", "M", snapshot.KindAxiom))
	newSnap := snapOf([]string{"M"}, nil, decl("ax", "Q", "", "M", snapshot.KindAxiom))

	res, _ := compare(t, oldSnap, newSnap, Options{})
	if len(res.Diffs) != 0 {
		t.Fatalf("value-free declarations should not be matched: %v", res.Diffs)
	}
}

func TestMinimizationDropsImpliedMetadataRemovals(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil, decl("h", "Nat", "1", "M", snapshot.KindDefinition))
	oldSnap.Extensions["doc"] = snapshot.ExtensionState{"h": "docs"}
	oldSnap.Extensions["simp"] = snapshot.ExtensionState{"h": ""}
	newSnap := snapOf([]string{"M"}, nil)

	res, _ := compare(t, oldSnap, newSnap, Options{Registry: extension.DefaultRegistry(nil)})
	if len(res.Diffs) != 1 {
		t.Fatalf("diffs = %v, want only the removal", res.Diffs)
	}
	if res.Diffs[0] != (diff.Removed{Name: "h", Module: "M"}) {
		t.Fatalf("diff = %+v, want Removed h", res.Diffs[0])
	}
}

func TestRenameAwareDocCorrelation(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil, decl("foo", "Nat", "1", "M", snapshot.KindDefinition))
	oldSnap.Extensions["doc"] = snapshot.ExtensionState{"foo": "adds one"}
	newSnap := snapOf([]string{"M"}, nil, decl("bar", "Nat", "1", "M", snapshot.KindDefinition))
	newSnap.Extensions["doc"] = snapshot.ExtensionState{"bar": "adds one"}

	res, _ := compare(t, oldSnap, newSnap, Options{Registry: extension.DefaultRegistry(nil)})
	for _, d := range res.Diffs {
		switch d.(type) {
		case diff.DocAdded, diff.DocRemoved, diff.DocChanged:
			t.Fatalf("doc followed the rename, no doc diff expected: %v", res.Diffs)
		}
	}
}

func TestAmbiguousWarningNotRepeated(t *testing.T) {
	// a1 and a2 are indistinguishable under every name-excluding
	// hypothesis; the unmatched z keeps the pass loop running through all
	// of them. The ambiguity is still reported once.
	oldSnap := snapOf([]string{"M", "N"}, nil,
		decl("a1", "Nat", "1", "M", snapshot.KindDefinition),
		decl("a2", "Nat", "1", "M", snapshot.KindDefinition),
	)
	newSnap := snapOf([]string{"M", "N"}, nil,
		decl("z", "TZ", "vz", "N", snapshot.KindDefinition),
	)

	_, bag := compare(t, oldSnap, newSnap, Options{})
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.MatchAmbiguous {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("ambiguous warning reported %d times, want once", count)
	}
}

func TestOneSidedExtensionReported(t *testing.T) {
	oldSnap := snapOf([]string{"M"}, nil)
	oldSnap.Extensions["doc"] = snapshot.ExtensionState{"M.x": "docs"}
	newSnap := snapOf([]string{"M"}, nil)

	_, bag := compare(t, oldSnap, newSnap, Options{Registry: extension.DefaultRegistry(nil)})
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ExtOnlyOneSide {
			found = true
			if d.Severity != diag.SevInfo {
				t.Fatalf("severity = %v, want %v", d.Severity, diag.SevInfo)
			}
		}
	}
	if !found {
		t.Fatalf("expected one-sided extension notice, got %v", bag.Items())
	}
}

func TestUnknownExtensionWarning(t *testing.T) {
	snapA := snapOf([]string{"M"}, nil)
	snapA.Extensions["mystery"] = snapshot.ExtensionState{"x": "y"}
	snapB := snapOf([]string{"M"}, nil)

	_, bag := compare(t, snapA, snapB, Options{Registry: extension.DefaultRegistry(nil)})
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ExtUnknownKind {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unknown-extension warning, got %v", bag.Items())
	}
}
