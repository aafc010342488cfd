package solver

import (
	"fmt"
	"slices"

	"solvent/internal/constraint"
	"solvent/internal/trace"
)

// SplitterStep decomposes the current constraint graph into independent
// connected components, runs one ComponentStep per component, and merges
// their partial solutions into complete ones.
type SplitterStep struct {
	st        *state
	solutions *[]*constraint.Solution

	numComponents int
	partial       [][]*constraint.Solution
	orphaned      []*constraint.Constraint
}

// NewSplitterStep builds a splitter writing merged solutions into target.
func NewSplitterStep(st *state, target *[]*constraint.Solution) *SplitterStep {
	if target == nil {
		panic("solvent: internal error: splitter without a solution target")
	}
	return &SplitterStep{st: st, solutions: target}
}

func (s *SplitterStep) Setup() {}

func (s *SplitterStep) Take(prevFailed bool) StepResult {
	components := s.computeFollowupSteps()
	// Wait until all of the component steps are done.
	return Suspend(components...)
}

func (s *SplitterStep) Resume(prevFailed bool) StepResult {
	// Re-introduce the orphaned constraints so the system's active set is
	// exactly what the parent scope expects to roll back.
	for _, c := range s.orphaned {
		s.st.sys.Add(c)
	}
	s.orphaned = nil

	// If one of the components failed the whole split is unsolvable.
	if prevFailed {
		return Done(false)
	}
	return Done(s.mergePartialSolutions())
}

// computeFollowupSteps contracts the graph, computes connected components
// over the tracked variables, and spawns one ComponentStep per component
// plus one synthetic component per orphaned constraint.
func (s *SplitterStep) computeFollowupSteps() []Step {
	sys := s.st.sys

	g := constraint.NewGraph(sys)
	g.Optimize()

	vars := slices.Clone(sys.TypeVariables())
	varComponents, assignment := g.ConnectedComponents(vars)

	orphans := g.Orphaned()
	s.numComponents = varComponents + len(orphans)
	s.partial = make([][]*constraint.Solution, s.numComponents)

	single := s.numComponents == 1
	steps := make([]*ComponentStep, 0, s.numComponents)
	for i := 0; i < varComponents; i++ {
		steps = append(steps, NewComponentStep(s.st, i, single, &s.partial[i]))
	}

	// Map variables and their adjacent constraints into their components.
	for i, tv := range vars {
		step := steps[assignment[i]]
		step.record(tv)
		for _, c := range g.ConstraintsFor(tv) {
			step.recordConstraint(c)
		}
	}

	// Each orphaned constraint becomes its own trivial component.
	for i, c := range orphans {
		step := NewComponentStep(s.st, varComponents+i, single, &s.partial[varComponents+i])
		step.recordConstraint(c)
		steps = append(steps, step)
	}
	// A lone component keeps its orphan in place: there is no sibling to
	// isolate it from, and no component scope to re-introduce it.
	if s.numComponents > 1 {
		s.orphaned = g.TakeOrphaned()
	}

	trace.Point(s.st.cfg.Tracer, trace.ScopeStep, "split",
		fmt.Sprintf("components=%d orphaned=%d", s.numComponents, len(s.orphaned)), s.st.depth)

	out := make([]Step, len(steps))
	for i, step := range steps {
		out[i] = step
	}
	return out
}

// mergePartialSolutions produces every combination of the components'
// partial solutions (mixed-radix, last component fastest), applies each
// combination under a fresh scope, prunes combinations already worse than
// the best known complete solution, and records the survivors.
func (s *SplitterStep) mergePartialSolutions() bool {
	sys := s.st.sys
	indices := make([]int, s.numComponents)
	anySolutions := false

	for {
		sc := sys.NewScope()
		for i := 0; i < s.numComponents; i++ {
			sys.ApplySolution(s.partial[i][indices[i]])
		}
		s.st.stats.CombinationsMerged++

		// This combination might already be worse than the best complete
		// solution found anywhere so far; if so, skip it.
		if !s.st.worseThanBest() {
			sol := sys.Finalize()
			trace.Point(s.st.cfg.Tracer, trace.ScopeStep, "composed solution",
				sol.Score.String(), s.st.depth)
			s.record(sol)
			anySolutions = true
		}
		sc.Release()

		if !advance(indices, s.partial) {
			return anySolutions
		}
	}
}

// record appends a merged solution, tightening the global pruning bound when
// this splitter is the top of the search.
func (s *SplitterStep) record(sol *constraint.Solution) {
	if s.solutions == &s.st.solutions {
		s.st.recordComplete(sol)
		return
	}
	*s.solutions = append(*s.solutions, sol)
}

// advance increments the mixed-radix combination counter: the last
// component's index moves fastest, carrying leftward. Returns false once all
// combinations have been visited (including the n==0 single empty one).
func advance(indices []int, partial [][]*constraint.Solution) bool {
	for n := len(indices); n > 0; n-- {
		indices[n-1]++
		if indices[n-1] < len(partial[n-1]) {
			return true
		}
		indices[n-1] = 0
	}
	return false
}
