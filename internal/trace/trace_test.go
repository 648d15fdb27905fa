package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"off", LevelOff, true},
		{"phase", LevelPhase, true},
		{"detail", LevelDetail, true},
		{"debug", LevelDebug, true},
		{"DEBUG", LevelDebug, true},
		{"verbose", LevelOff, false},
		{"", LevelOff, false},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseLevel(%q): %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseLevel(%q) accepted", tc.in)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLevelGating(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeHypothesis, false},
		{LevelDetail, ScopeHypothesis, true},
		{LevelDetail, ScopeDecl, false},
		{LevelDebug, ScopeDecl, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%v.ShouldEmit(%v) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	tr.Emit(Event{Kind: KindSpanBegin, Scope: ScopePhase, Name: "match"})
	tr.Emit(Event{Kind: KindSpanBegin, Scope: ScopeHypothesis, Name: "hypothesis:{name}"})
	tr.Emit(Event{Kind: KindSpanEnd, Scope: ScopePhase, Name: "match"})

	out := buf.String()
	if !strings.Contains(out, "match") {
		t.Fatalf("phase event missing: %q", out)
	}
	if strings.Contains(out, "hypothesis") {
		t.Fatalf("hypothesis event leaked at phase level: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Fatalf("line count = %d, want 2", got)
	}
}

func TestFormatTextExtrasSorted(t *testing.T) {
	ev := Event{
		Seq:   7,
		Kind:  KindSpanEnd,
		Scope: ScopeHypothesis,
		Name:  "hypothesis:{name}",
		Extra: map[string]string{"zeta": "1", "alpha": "2", "mid": "3"},
	}
	line := string(FormatEvent(ev, FormatText))
	if !strings.Contains(line, "{alpha=2, mid=3, zeta=1}") {
		t.Fatalf("extras not in sorted order: %q", line)
	}
}

func TestFormatNDJSON(t *testing.T) {
	ev := Event{
		Seq:    3,
		Kind:   KindPoint,
		Scope:  ScopeDriver,
		SpanID: 9,
		Name:   "compare",
		Detail: "two snapshots",
	}
	data := FormatEvent(ev, FormatNDJSON)
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Fatalf("NDJSON line not newline-terminated")
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["kind"] != "point" || decoded["scope"] != "driver" || decoded["name"] != "compare" {
		t.Fatalf("decoded = %v", decoded)
	}
}

func TestNewOffReturnsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer reports enabled")
	}
	tr.Emit(Event{Kind: KindPoint, Scope: ScopeDriver, Name: "noop"})
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNewAutoFormatFromPath(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Output: &buf, OutputPath: "trace.ndjson"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	tr.Emit(Event{Kind: KindPoint, Scope: ScopeDriver, Name: "compare"})

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("auto format did not pick NDJSON: %q", buf.String())
	}
}

func TestSpanParentLink(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)

	root := Begin(tr, ScopeDriver, "compare", 0)
	child := Begin(tr, ScopePhase, "match", root.ID())
	child.End("")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("event count = %d, want 4", len(lines))
	}
	var childBegin struct {
		ParentID uint64 `json:"parent_id"`
		Name     string `json:"name"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &childBegin); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if childBegin.Name != "match" || childBegin.ParentID != root.ID() {
		t.Fatalf("child begin = %+v, want parent %d", childBegin, root.ID())
	}
}
