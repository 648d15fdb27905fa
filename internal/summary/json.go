package summary

import (
	"encoding/json"

	"envdiff/internal/diff"
)

// jsonEntry is the machine-readable form of one diff line.
type jsonEntry struct {
	Priority int    `json:"priority"`
	Module   string `json:"module,omitempty"`
	Text     string `json:"text"`
}

type jsonReport struct {
	Diffs []jsonEntry `json:"diffs"`
	Total int         `json:"total"`
}

// RenderJSON returns the report as JSON with the same ordering as Render.
func RenderJSON(diffs []diff.Diff) ([]byte, error) {
	report := jsonReport{Diffs: make([]jsonEntry, 0, len(diffs)), Total: len(diffs)}
	for _, e := range sortEntries(diffs) {
		report.Diffs = append(report.Diffs, jsonEntry{Priority: e.priority, Module: e.module, Text: e.text})
	}
	return json.MarshalIndent(report, "", "  ")
}
