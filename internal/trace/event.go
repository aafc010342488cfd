package trace

import "time"

// Kind distinguishes paired span events from instant points.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Scope ranks events by granularity, coarsest first. Levels filter on it:
// phase admits solve events, detail adds steps, debug adds attempts.
type Scope uint8

const (
	ScopeSolve   Scope = iota + 1 // a whole solver invocation
	ScopeStep                     // one step: split, component, merge
	ScopeAttempt                  // one binding or disjunction choice
)

func (s Scope) String() string {
	switch s {
	case ScopeSolve:
		return "solve"
	case ScopeStep:
		return "step"
	case ScopeAttempt:
		return "attempt"
	}
	return "unknown"
}

// Event is one record in a trace. Name identifies the operation ("split",
// "component:1", "binding"); Detail carries free-form context.
type Event struct {
	Time     time.Time
	Seq      uint64 // global monotonic sequence
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // zero for root spans
	Depth    int    // search depth at emission
	Name     string
	Detail   string
}
