package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeSolve, false},
		{LevelPhase, ScopeSolve, true},
		{LevelPhase, ScopeStep, false},
		{LevelDetail, ScopeStep, true},
		{LevelDetail, ScopeAttempt, false},
		{LevelDebug, ScopeAttempt, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("level %v scope %v: got %v want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for i := 0; i < 3; i++ {
		tr.Emit(Event{Scope: ScopeAttempt, Kind: KindPoint, Name: string(rune('a' + i))})
	}
	events := tr.Snapshot()
	if len(events) != 2 {
		t.Fatalf("ring should hold 2 events, got %d", len(events))
	}
	if events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("ring order wrong: %v %v", events[0].Name, events[1].Name)
	}
}

func TestStreamTracerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	sp := Begin(tr, ScopeAttempt, "binding", "T1 := int", 0, 1)
	sp.End("")
	out := buf.String()
	if !strings.Contains(out, "  (binding T1 := int") {
		t.Fatalf("begin line not indented as expected: %q", out)
	}
	if !strings.HasSuffix(out, "  )\n") {
		t.Fatalf("end line missing closing paren: %q", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeStep, "split", "components=2", 0)
	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "{") || !strings.Contains(line, `"name":"split"`) {
		t.Fatalf("ndjson line malformed: %q", line)
	}
}

func TestSpanOnDisabledTracerIsNop(t *testing.T) {
	sp := Begin(Nop, ScopeSolve, "solve", "", 0, 0)
	if sp.ID() != 0 {
		t.Fatalf("nop span should not allocate IDs")
	}
	sp.End("done")
}

func TestParseHelpers(t *testing.T) {
	if lvl, err := ParseLevel("debug"); err != nil || lvl != LevelDebug {
		t.Fatalf("ParseLevel: %v %v", lvl, err)
	}
	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatalf("ParseLevel must reject unknown levels")
	}
	if m, err := ParseMode("ring"); err != nil || m != ModeRing {
		t.Fatalf("ParseMode: %v %v", m, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
}
