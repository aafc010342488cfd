package driver

import "time"

// Stage describes a phase of one fixture's run.
type Stage string

const (
	// StageLoad covers fixture parsing and system construction.
	StageLoad Stage = "load"
	// StageSolve covers the solver invocation.
	StageSolve Stage = "solve"
	// StageCheck covers expect-block verification.
	StageCheck Stage = "check"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the fixture is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the fixture is currently being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the fixture finished cleanly.
	StatusDone Status = "done"
	// StatusError indicates the fixture failed.
	StatusError Status = "error"
)

// Event reports progress for one fixture.
type Event struct {
	Fixture string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must tolerate
// concurrent calls; the batch runner emits from its worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}
