package solver

import (
	"fmt"

	"solvent/internal/constraint"
	"solvent/internal/score"
	"solvent/internal/trace"
)

// ComponentStep owns the search for one connected component: it either
// produces a TypeVariableStep or DisjunctionStep for the next piece of work,
// or finalizes a trivial/free-variable solution directly.
type ComponentStep struct {
	st     *state
	index  int
	single bool

	vars        []*constraint.TypeVariable
	constraints []*constraint.Constraint
	seen        map[*constraint.Constraint]bool

	// target receives this component's partial solutions; it is one slot of
	// the parent splitter's per-component array.
	target *[]*constraint.Solution

	scope    *constraint.Scope
	baseline score.Score
	span     *trace.Span
}

// NewComponentStep builds the step for component index. single marks the
// only component of a split, which skips scope isolation.
func NewComponentStep(st *state, index int, single bool, target *[]*constraint.Solution) *ComponentStep {
	return &ComponentStep{
		st:     st,
		index:  index,
		single: single,
		seen:   make(map[*constraint.Constraint]bool),
		target: target,
	}
}

// record assigns a type variable to this component.
func (c *ComponentStep) record(tv *constraint.TypeVariable) {
	c.vars = append(c.vars, tv)
}

// recordConstraint assigns a constraint, deduplicating shared edges.
func (c *ComponentStep) recordConstraint(con *constraint.Constraint) {
	if c.seen[con] {
		return
	}
	c.seen[con] = true
	c.constraints = append(c.constraints, con)
}

// Setup isolates this component's variables and constraints from its
// siblings. A lone component has nothing to be isolated from.
func (c *ComponentStep) Setup() {
	c.baseline = c.st.sys.CurrentScore()
	if !c.single {
		c.scope = c.st.sys.NewScope()
		c.st.sys.ReplaceActive(c.vars, c.constraints)
	}
}

func (c *ComponentStep) Take(prevFailed bool) StepResult {
	// A prior sibling or child failure makes this component unsolvable.
	if prevFailed {
		return c.done(false)
	}

	sys := c.st.sys
	c.span = trace.Begin(c.st.cfg.Tracer, trace.ScopeStep,
		fmt.Sprintf("component:%d", c.index), fmt.Sprintf("vars=%d", len(c.vars)),
		0, c.st.depth)

	// Activating the component's constraints may already discharge the
	// concrete ones; an inconsistency here fails the whole component.
	if !sys.Simplify() {
		return c.done(false)
	}

	disjunction := sys.SelectDisjunction()
	best := sys.DetermineBestBindings()

	if best != nil && (disjunction == nil || best.FullyDetermined()) {
		return Suspend(NewTypeVariableStep(c.st, best, c.target))
	}
	if disjunction != nil {
		return Suspend(NewDisjunctionStep(c.st, disjunction, c.target))
	}

	// Nothing left to bind. A fully discharged component records the
	// current state as its (trivial) solution.
	if !sys.HasFreeTypeVariables() && len(sys.Constraints()) == 0 {
		if c.st.worseThanBest() {
			return c.done(false)
		}
		return c.finalize()
	}

	// Only free type variables remain; the driver must allow them.
	if !c.st.cfg.AllowFreeTypeVariables || !sys.HasFreeTypeVariables() {
		return c.done(false)
	}
	if c.st.worseThanBest() {
		return c.done(false)
	}

	// With free variables allowed, only relational and member constraints
	// are safely ignorable.
	for _, con := range sys.Constraints() {
		switch con.Kind.Classification() {
		case constraint.ClassRelational, constraint.ClassMember:
			continue
		default:
			return c.done(false)
		}
	}
	return c.finalize()
}

func (c *ComponentStep) finalize() StepResult {
	sol := c.st.sys.Finalize()
	trace.Point(c.st.cfg.Tracer, trace.ScopeStep, "found solution", sol.Score.String(), c.st.depth)
	// Normalize directly: leaf solutions never pass through Resume.
	sol.Score = sol.Score.Sub(c.baseline)
	*c.target = append(*c.target, sol)
	return c.done(true)
}

func (c *ComponentStep) Resume(prevFailed bool) StepResult {
	if prevFailed {
		return c.done(false)
	}

	// Each partial solution carries the whole branch's score; subtract this
	// component's baseline so merged combinations don't double-count shared
	// ancestor cost.
	for _, sol := range *c.target {
		sol.Score = sol.Score.Sub(c.baseline)
	}

	// Rank the partial solutions and keep only the minimal subset to bound
	// how many combinations the merge has to produce. Diagnostic mode keeps
	// every solution, penalized ones included.
	if !c.st.cfg.DiagnosticMode {
		*c.target = filterSolutions(*c.target, c.st.cfg.Weights)
	}
	return c.done(true)
}

// done releases the component scope on every completion path, exactly once.
func (c *ComponentStep) done(success bool) StepResult {
	if c.scope != nil {
		c.scope.Release()
		c.scope = nil
	}
	if c.span != nil {
		c.span.End(fmt.Sprintf("success=%t", success))
		c.span = nil
	}
	return Done(success)
}
