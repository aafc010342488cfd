package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"solvent/internal/driver"
	"solvent/internal/ui"
)

type checkOutcome struct {
	outcomes []driver.Outcome
	err      error
}

// runCheckWithUI runs the batch in the background while a Bubble Tea model
// renders its progress events.
func runCheckWithUI(cmd *cobra.Command, paths []string, opts driver.Options) ([]driver.Outcome, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink{Ch: events}
		outcomes, err := driver.Run(cmd.Context(), paths, optsCopy)
		outcomeCh <- checkOutcome{outcomes: outcomes, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking fixtures", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.outcomes, uiErr
	}
	return outcome.outcomes, outcome.err
}
