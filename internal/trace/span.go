package trace

import (
	"sync/atomic"
	"time"
)

// Sequence numbers and span IDs are process-global so events from parallel
// fixture runs interleave without colliding.
var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span identifier.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span pairs a begin event with its eventual end. A span returned for a
// disabled tracer is inert, so callers never branch on whether tracing is on.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	depth   int
	scope   Scope
	name    string
	started time.Time
}

// Begin opens a span and emits its begin event. parent is the enclosing span
// ID, zero for a root; depth is the current search depth.
func Begin(t Tracer, scope Scope, name, detail string, parent uint64, depth int) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		depth:   depth,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Depth:    depth,
		Name:     name,
		Detail:   detail,
	})
	return s
}

// End emits the matching end event and reports how long the span ran.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	elapsed := time.Since(s.started)
	s.tracer.Emit(Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Depth:    s.depth,
		Name:     s.name,
		Detail:   detail,
	})
	return elapsed
}

// ID returns the span identifier, zero for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits a standalone instant event.
func Point(t Tracer, scope Scope, name, detail string, depth int) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Depth:  depth,
		Name:   name,
		Detail: detail,
	})
}
