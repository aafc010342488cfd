package trace

import "errors"

// MultiTracer fans a single event feed out to several tracers, so a run can
// stream to a file while keeping a ring of recent events for dumps.
type MultiTracer struct {
	sinks []Tracer
	level Level
}

// NewMultiTracer wraps the given tracers behind one Tracer at the given level.
func NewMultiTracer(level Level, sinks ...Tracer) *MultiTracer {
	return &MultiTracer{sinks: sinks, level: level}
}

func (m *MultiTracer) Emit(ev Event) {
	for _, s := range m.sinks {
		s.Emit(ev)
	}
}

// Flush flushes every sink and reports the combined error.
func (m *MultiTracer) Flush() error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}

// Close closes every sink, even when an earlier one fails.
func (m *MultiTracer) Close() error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level { return m.level }

func (m *MultiTracer) Enabled() bool { return m.level > LevelOff }
