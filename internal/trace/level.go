package trace

import (
	"fmt"
	"strings"
)

// Level selects how deep into the search the tracer looks. Each level admits
// the scopes of the levels below it.
type Level uint8

const (
	LevelOff    Level = iota // tracing disabled
	LevelPhase               // solve boundaries only
	LevelDetail              // plus step events: splits, components, merges
	LevelDebug               // plus per-attempt events
)

var levelNames = map[Level]string{
	LevelOff:    "off",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLevel maps a flag value to a Level, case-insensitively.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(s)
	for l, name := range levelNames {
		if name == want {
			return l, nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|phase|detail|debug)", s)
}

// ShouldEmit reports whether events at the given scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopeSolve
	case LevelDetail:
		return scope <= ScopeStep
	case LevelDebug:
		return true
	}
	return false
}
