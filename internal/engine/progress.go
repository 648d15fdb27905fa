package engine

import "time"

// Phase describes a high-level differ phase.
type Phase string

const (
	// PhaseLoad covers reading a snapshot container from disk.
	PhaseLoad Phase = "load"
	// PhaseFilter is the unchanged-declaration filter.
	PhaseFilter Phase = "filter"
	// PhaseMatch is the hypothesis-ordered match engine.
	PhaseMatch Phase = "match"
	// PhaseModules is the module/import differ.
	PhaseModules Phase = "modules"
	// PhaseExtensions covers all extension adapters.
	PhaseExtensions Phase = "extensions"
	// PhaseRender is the summarizer.
	PhaseRender Phase = "render"
)

// Status captures progress state within a phase.
type Status string

const (
	// StatusQueued indicates the phase is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the phase is running.
	StatusWorking Status = "working"
	// StatusDone indicates the phase finished.
	StatusDone Status = "done"
	// StatusError indicates the phase failed.
	StatusError Status = "error"
)

// Event reports progress for one phase. Detail names the snapshot or
// adapter being worked on, when there is one.
type Event struct {
	Phase   Phase
	Status  Status
	Detail  string
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// emit forwards an event to a possibly-nil sink.
func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
