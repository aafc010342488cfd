package trace

import (
	"io"
	"sync"
)

// RingTracer retains the newest events in a fixed-size circular buffer. It
// never blocks on I/O, which makes it the mode of choice when a trace is only
// wanted after something went wrong.
type RingTracer struct {
	mu    sync.RWMutex
	buf   []Event
	head  int // next slot to overwrite
	count int // stored events, saturates at len(buf)
	level Level
}

// NewRingTracer returns a ring holding up to capacity events.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()

	t.mu.Lock()
	t.buf[t.head] = ev
	t.head = (t.head + 1) % len(t.buf)
	if t.count < len(t.buf) {
		t.count++
	}
	t.mu.Unlock()
}

// Snapshot copies the retained events out in emission order, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Event, 0, t.count)
	if t.count < len(t.buf) {
		return append(out, t.buf[:t.count]...)
	}
	out = append(out, t.buf[t.head:]...)
	return append(out, t.buf[:t.head]...)
}

// Dump renders the retained events to w in the given format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op: the ring lives entirely in memory.
func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
