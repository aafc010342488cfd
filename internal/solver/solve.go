package solver

import (
	"fmt"

	"solvent/internal/constraint"
	"solvent/internal/trace"
)

// Solve runs the search over the given system and returns the discovered
// solutions: the minimal-score subset (ties kept), or every recorded
// solution in diagnostic mode. The system itself is restored to its
// pre-solve state before returning; ownership of the solutions passes to
// the caller.
//
// Solve handles exactly one top-level inference problem per invocation and
// is strictly single-threaded: one step runs at a time, driven by an
// explicit stack.
func Solve(sys *constraint.System, cfg Config) ([]*constraint.Solution, Stats) {
	if sys == nil {
		panic("solvent: internal error: solving a nil system")
	}
	st := newState(sys, cfg)

	span := trace.Begin(st.cfg.Tracer, trace.ScopeSolve, "solve",
		fmt.Sprintf("vars=%d constraints=%d", len(sys.TypeVariables()), len(sys.Constraints())), 0, 0)

	// The whole invocation runs under one scope so the caller's system
	// comes back untouched regardless of the outcome.
	outer := sys.NewScope()

	// Discharge whatever is already concrete; an inconsistency here means
	// the problem is unsatisfiable before any search.
	if sys.Simplify() {
		st.run(NewSplitterStep(st, &st.solutions))
	}
	outer.Release()

	solutions := st.solutions
	if !st.cfg.DiagnosticMode {
		solutions = filterSolutions(solutions, st.cfg.Weights)
	}

	span.End(fmt.Sprintf("solutions=%d combinations=%d", len(solutions), st.stats.CombinationsMerged))
	return solutions, st.stats
}
