package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"envdiff/internal/engine"
	"envdiff/internal/ui"
)

type diffOutcome struct {
	result engine.Result
	err    error
}

// displayPhases fixes the order the UI lists the differ phases in.
var displayPhases = []engine.Phase{
	engine.PhaseLoad,
	engine.PhaseFilter,
	engine.PhaseMatch,
	engine.PhaseModules,
	engine.PhaseExtensions,
}

// runDiffWithUI executes run in the background while a Bubble Tea program
// renders its progress events.
func runDiffWithUI(title string, run func(engine.ProgressSink) (engine.Result, error)) (engine.Result, error) {
	events := make(chan engine.Event, 256)
	outcomeCh := make(chan diffOutcome, 1)

	go func() {
		res, err := run(engine.ChannelSink{Ch: events})
		outcomeCh <- diffOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, displayPhases, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
