// Package observ aggregates coarse per-phase wall times of one diff
// invocation. Tracing covers fine-grained spans; this is the cheap
// always-on summary behind --timings.
package observ

import (
	"fmt"
	"time"
)

// PhaseTime is one completed phase.
type PhaseTime struct {
	Name   string
	Dur    time.Duration
	Detail string
}

// Timer collects phase durations in completion order.
type Timer struct {
	phases []PhaseTime
}

// NewTimer creates an empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]PhaseTime, 0, 8)} }

// Record appends one completed phase.
func (t *Timer) Record(name string, dur time.Duration, detail string) {
	t.phases = append(t.phases, PhaseTime{Name: name, Dur: dur, Detail: detail})
}

// Summary returns the human-readable timing block.
func (t *Timer) Summary() string {
	report := t.Report()
	out := "timings:\n"
	for _, p := range report.Phases {
		out += fmt.Sprintf("  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Detail != "" {
			out += "  // " + p.Detail
		}
		out += "\n"
	}
	out += fmt.Sprintf("  %-12s %7.2f ms\n", "total", report.TotalMS)
	return out
}

// PhaseReport is the serialized form of one phase timing.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Detail     string  `json:"detail,omitempty"`
}

// Report aggregates the collected timings in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report converts the collected phases for serialization.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Detail:     phase.Detail,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
