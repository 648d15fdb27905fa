package diff

import "fmt"

// Priority returns the fixed report priority of a diff; lower values are
// reported first. Total over all cases.
func Priority(d Diff) int {
	switch d.(type) {
	case ModuleRemoved:
		return 0
	case ModuleAdded:
		return 1
	case ModuleRenamed:
		return 2
	case Removed:
		return 3
	case Added:
		return 4
	case Renamed:
		return 5
	case MovedToModule:
		return 6
	case MovedWithinModule:
		return 7
	case SpeciesChanged:
		return 8
	case TypeChanged:
		return 9
	case ProofChanged:
		return 10
	case DocAdded:
		return 11
	case DocChanged:
		return 12
	case DocRemoved:
		return 13
	case AttributeAdded:
		return 14
	case AttributeRemoved:
		return 15
	case AttributeChanged:
		return 16
	case DirectImportAdded:
		return 17
	case DirectImportRemoved:
		return 18
	case TransitiveImportAdded:
		return 19
	case TransitiveImportRemoved:
		return 20
	default:
		panic(fmt.Sprintf("diff: unknown case %T", d))
	}
}

// ModuleOf returns the module a diff is grouped under, or "" for diffs
// with no associated module. Total over all cases.
func ModuleOf(d Diff) string {
	switch d := d.(type) {
	case Added:
		return d.Module
	case Removed:
		return d.Module
	case Renamed:
		return d.Module
	case MovedToModule:
		return d.ToModule
	case MovedWithinModule:
		return d.Module
	case ProofChanged:
		return d.Module
	case TypeChanged:
		return d.Module
	case SpeciesChanged:
		return d.Module
	case ModuleAdded:
		return d.Module
	case ModuleRemoved:
		return d.Module
	case ModuleRenamed:
		return d.To
	case DocAdded:
		return d.Module
	case DocChanged:
		return d.Module
	case DocRemoved:
		return d.Module
	case AttributeAdded:
		return d.Module
	case AttributeRemoved:
		return d.Module
	case AttributeChanged:
		return d.Module
	case DirectImportAdded:
		return d.Module
	case DirectImportRemoved:
		return d.Module
	case TransitiveImportAdded:
		return d.Module
	case TransitiveImportRemoved:
		return d.Module
	default:
		panic(fmt.Sprintf("diff: unknown case %T", d))
	}
}

// Render returns the fixed one-line human form of a diff. Total over all
// cases; contains no module header (the summarizer adds grouping).
func Render(d Diff) string {
	switch d := d.(type) {
	case Added:
		return fmt.Sprintf("added %s", d.Name)
	case Removed:
		return fmt.Sprintf("removed %s", d.Name)
	case Renamed:
		if d.NamespaceOnly {
			return fmt.Sprintf("renamed %s -> %s (namespace only)", d.From, d.To)
		}
		return fmt.Sprintf("renamed %s -> %s", d.From, d.To)
	case MovedToModule:
		return fmt.Sprintf("moved %s from %s to %s", d.Name, d.FromModule, d.ToModule)
	case MovedWithinModule:
		return fmt.Sprintf("moved %s within %s", d.Name, d.Module)
	case ProofChanged:
		if d.ProofRelevant {
			return fmt.Sprintf("value changed for %s", d.Name)
		}
		return fmt.Sprintf("proof changed for %s", d.Name)
	case TypeChanged:
		return fmt.Sprintf("type changed for %s", d.Name)
	case SpeciesChanged:
		return fmt.Sprintf("%s changed from %s to %s", d.Name, d.From, d.To)
	case ModuleAdded:
		return fmt.Sprintf("added module %s", d.Module)
	case ModuleRemoved:
		return fmt.Sprintf("removed module %s", d.Module)
	case ModuleRenamed:
		return fmt.Sprintf("renamed module %s -> %s", d.From, d.To)
	case DocAdded:
		return fmt.Sprintf("doc added to %s", d.Name)
	case DocChanged:
		return fmt.Sprintf("doc modified for %s", d.Name)
	case DocRemoved:
		return fmt.Sprintf("doc removed from %s", d.Name)
	case AttributeAdded:
		return fmt.Sprintf("attribute %s added to %s", d.Attr, d.Name)
	case AttributeRemoved:
		return fmt.Sprintf("attribute %s removed from %s", d.Attr, d.Name)
	case AttributeChanged:
		return fmt.Sprintf("attribute %s changed for %s", d.Attr, d.Name)
	case DirectImportAdded:
		return fmt.Sprintf("direct import %s added to %s", d.Import, d.Module)
	case DirectImportRemoved:
		return fmt.Sprintf("direct import %s removed from %s", d.Import, d.Module)
	case TransitiveImportAdded:
		return fmt.Sprintf("transitive import %s added to %s", d.Import, d.Module)
	case TransitiveImportRemoved:
		return fmt.Sprintf("transitive import %s removed from %s", d.Import, d.Module)
	default:
		panic(fmt.Sprintf("diff: unknown case %T", d))
	}
}
