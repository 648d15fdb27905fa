package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	timer.Record("load", 40*time.Millisecond, "old.envsnap")
	timer.Record("match", 10*time.Millisecond, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "load" || report.Phases[0].DurationMS != 40 {
		t.Fatalf("first phase = %+v", report.Phases[0])
	}
	if report.TotalMS != 50 {
		t.Fatalf("total = %v, want 50", report.TotalMS)
	}
}

func TestTimerSummary(t *testing.T) {
	timer := NewTimer()
	timer.Record("match", 5*time.Millisecond, "")

	s := timer.Summary()
	if !strings.HasPrefix(s, "timings:\n") {
		t.Fatalf("summary = %q", s)
	}
	if !strings.Contains(s, "match") || !strings.Contains(s, "total") {
		t.Fatalf("summary = %q", s)
	}
}

func TestEmptyTimerReport(t *testing.T) {
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("empty report = %+v", r)
	}
}
