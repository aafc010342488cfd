package solver

import (
	"fmt"

	"solvent/internal/constraint"
	"solvent/internal/score"
	"solvent/internal/trace"
)

// DisjunctionStep explores the ordered choices of one disjunctive constraint
// (an overload set or a set of conversion paths), with skip and
// short-circuit heuristics pruning dominated alternatives.
type DisjunctionStep struct {
	st          *state
	disjunction *constraint.Constraint
	target      *[]*constraint.Solution

	index int

	lastSolvedChoice    *constraint.Constraint
	lastSolvedScore     score.Score
	bestNonGenericScore *score.Score

	activeScope  *constraint.Scope
	activeChoice *constraint.Constraint
	span         *trace.Span
}

// NewDisjunctionStep builds the step for one active disjunction.
func NewDisjunctionStep(st *state, dj *constraint.Constraint, target *[]*constraint.Solution) *DisjunctionStep {
	if dj == nil || dj.Kind != constraint.Disjunction {
		panic("solvent: internal error: disjunction step without a disjunction")
	}
	return &DisjunctionStep{st: st, disjunction: dj, target: target}
}

func (s *DisjunctionStep) Setup() {
	s.span = trace.Begin(s.st.cfg.Tracer, trace.ScopeAttempt, "disjunction",
		fmt.Sprintf("choices=%d", len(s.disjunction.Choices)), 0, s.st.depth)
}

func (s *DisjunctionStep) Take(prevFailed bool) StepResult {
	sys := s.st.sys
	for s.index < len(s.disjunction.Choices) {
		choice := s.disjunction.Choices[s.index]
		s.index++

		if s.shouldSkipChoice(choice) {
			continue
		}
		if s.shouldShortCircuitAt(choice) {
			break
		}
		s.st.stats.ChoicesAttempted++

		trace.Point(s.st.cfg.Tracer, trace.ScopeAttempt, "assuming", choice.String(), s.st.depth)

		scope := sys.NewScope()
		// Attempting a choice simplifies the system by binding some of the
		// type variables, so the rest of the work is another split.
		if !sys.AttemptChoice(s.disjunction, choice) {
			scope.Release()
			continue
		}
		s.activeScope = scope
		s.activeChoice = choice
		return Suspend(NewSplitterStep(s.st, s.target))
	}

	return s.done(s.lastSolvedChoice != nil)
}

func (s *DisjunctionStep) Resume(prevFailed bool) StepResult {
	if s.activeScope == nil {
		panic("solvent: internal error: disjunction step resumed without an active choice")
	}

	// A failed choice is fine; the final decision needs the other choices
	// attempted regardless, so only successes are recorded.
	if !prevFailed {
		if best := bestScore(*s.target, s.st.cfg.Weights); best != nil {
			choice := s.activeChoice
			if !choice.IsGenericOperator() && choice.IsSymmetricOperator() {
				if s.bestNonGenericScore == nil || best.LessBy(*s.bestNonGenericScore, s.st.cfg.Weights) {
					s.bestNonGenericScore = best
				}
			}
			// Remember the last solved choice for short-circuiting once the
			// disjunction is exhausted.
			s.lastSolvedChoice = choice
			s.lastSolvedScore = *best
		}
	}

	// Rewind the choice's effects and try the next one.
	s.activeScope.Release()
	s.activeScope = nil
	s.activeChoice = nil

	return s.Take(prevFailed)
}

// shouldSkipChoice filters choices that cannot or should not be attempted:
// disabled always, unavailable outside diagnostic mode, and generic
// operators once a clean non-generic solution exists.
func (s *DisjunctionStep) shouldSkipChoice(choice *constraint.Constraint) bool {
	if choice.Disabled() {
		trace.Point(s.st.cfg.Tracer, trace.ScopeAttempt, "skipping", choice.String(), s.st.depth)
		return true
	}

	// Unavailable overloads only participate when the solver is seeking
	// fixes for diagnostics.
	if !s.st.cfg.DiagnosticMode && choice.IsUnavailable() {
		return true
	}

	if s.st.cfg.DisablePerformanceHacks {
		return false
	}

	// Skip generic operators once a non-generic solution exists whose score
	// shows no forced unwraps, no unavailable overloads, no fixes, and no
	// non-trivial function conversions.
	if s.bestNonGenericScore != nil && choice.IsGenericOperator() {
		data := s.bestNonGenericScore.Data
		if data[score.ForceUnchecked] == 0 && data[score.Unavailable] == 0 &&
			data[score.Fix] == 0 && data[score.FunctionConversion] == 0 {
			return true
		}
	}

	return false
}

// shouldShortCircuitAt reports whether exploration can stop before the given
// choice because an earlier solved choice dominates it.
func (s *DisjunctionStep) shouldShortCircuitAt(choice *constraint.Constraint) bool {
	if s.lastSolvedChoice == nil {
		return false
	}

	// Only short-circuit when reaching the solved choice required no
	// unavailable overloads and no fixes.
	delta := s.lastSolvedScore.Sub(s.st.sys.CurrentScore())
	if delta.Data[score.Unavailable] > 0 || delta.Data[score.Fix] > 0 {
		return false
	}

	return shortCircuitDisjunctionAt(choice, s.lastSolvedChoice, s.st.cfg.DisablePerformanceHacks)
}

func (s *DisjunctionStep) done(success bool) StepResult {
	if s.span != nil {
		s.span.End(fmt.Sprintf("solved=%t", success))
		s.span = nil
	}
	return Done(success)
}
