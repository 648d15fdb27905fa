// Package summary renders a diff list as deterministic grouped text.
// Entries sort by (priority, module, rendered line); consecutive entries of
// one module share a header. Identical diff sets always produce identical
// output, regardless of engine emission order.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"envdiff/internal/diff"
)

// Options controls rendering.
type Options struct {
	// Color enables ANSI color on module headers and the total line.
	Color bool
}

type entry struct {
	priority int
	module   string
	text     string
}

// sortEntries produces the fixed report order.
func sortEntries(diffs []diff.Diff) []entry {
	entries := make([]entry, 0, len(diffs))
	for _, d := range diffs {
		entries = append(entries, entry{
			priority: diff.Priority(d),
			module:   diff.ModuleOf(d),
			text:     diff.Render(d),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority < entries[j].priority
		}
		if entries[i].module != entries[j].module {
			return entries[i].module < entries[j].module
		}
		return entries[i].text < entries[j].text
	})
	return entries
}

// Render returns the grouped human-readable report ending with the total
// diff count.
func Render(diffs []diff.Diff, opts Options) string {
	header := func(s string) string { return s }
	total := header
	if opts.Color {
		headerColor := color.New(color.FgCyan, color.Bold)
		header = func(s string) string { return headerColor.Sprint(s) }
		totalColor := color.New(color.Bold)
		total = func(s string) string { return totalColor.Sprint(s) }
	}

	var sb strings.Builder
	lastModule := ""
	haveHeader := false
	for _, e := range sortEntries(diffs) {
		if !haveHeader || e.module != lastModule {
			if haveHeader {
				sb.WriteString("\n")
			}
			sb.WriteString(header(moduleHeader(e.module)))
			sb.WriteString("\n")
			lastModule = e.module
			haveHeader = true
		}
		sb.WriteString("  ")
		sb.WriteString(e.text)
		sb.WriteString("\n")
	}

	if haveHeader {
		sb.WriteString("\n")
	}
	sb.WriteString(total(fmt.Sprintf("total: %d %s", len(diffs), plural(len(diffs)))))
	sb.WriteString("\n")
	return sb.String()
}

func moduleHeader(module string) string {
	if module == "" {
		return "(no module):"
	}
	return module + ":"
}

func plural(n int) string {
	if n == 1 {
		return "diff"
	}
	return "diffs"
}
