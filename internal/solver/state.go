// Package solver implements the backtracking search over a constraint
// system: splitting into independent components, enumerating type-variable
// bindings and disjunction choices under reversible scopes, and ranking the
// discovered solutions by score. What is conceptually recursive backtracking
// runs as an iterative loop over an explicit step stack.
package solver

import (
	"solvent/internal/constraint"
	"solvent/internal/score"
	"solvent/internal/trace"
)

// Config is the option bundle handed in by the driver collaborator.
type Config struct {
	// AllowFreeTypeVariables permits a component with unbound variables to
	// still yield a solution.
	AllowFreeTypeVariables bool

	// DisablePerformanceHacks turns off the disjunction skip and
	// short-circuit heuristics.
	DisablePerformanceHacks bool

	// DiagnosticMode makes unavailable overload choices eligible and keeps
	// the full solution set for diagnosis instead of the best subset.
	DiagnosticMode bool

	// Weights is the score comparison policy; zero value means defaults.
	Weights score.Weights

	// Tracer receives step-by-step search events. Nil disables tracing.
	Tracer trace.Tracer
}

func (cfg *Config) normalize() {
	if cfg.Tracer == nil {
		cfg.Tracer = trace.Nop
	}
	var zero score.Weights
	if cfg.Weights == zero {
		cfg.Weights = score.DefaultWeights
	}
}

// Stats counts search work for tracing and tests.
type Stats struct {
	TypeVariablesBound uint64
	BindingsAttempted  uint64
	ChoicesAttempted   uint64
	CombinationsMerged uint64
	SolutionsRecorded  uint64
}

// state threads the per-invocation search context through every step: the
// system under mutation, the best-known complete score for pruning, and the
// final solution list. Its lifetime is tied to one Solve call, never shared.
type state struct {
	sys *constraint.System
	cfg Config

	best      *score.Score
	solutions []*constraint.Solution
	depth     int
	stats     Stats
}

func newState(sys *constraint.System, cfg Config) *state {
	cfg.normalize()
	return &state{sys: sys, cfg: cfg}
}

// worseThanBest reports whether the running score is already strictly worse
// than the best complete solution found so far.
func (st *state) worseThanBest() bool {
	// Diagnostic mode wants the losing branches too.
	if st.best == nil || st.cfg.DiagnosticMode {
		return false
	}
	return st.best.LessBy(st.sys.CurrentScore(), st.cfg.Weights)
}

// recordComplete registers a finished top-level solution and tightens the
// pruning bound.
func (st *state) recordComplete(sol *constraint.Solution) {
	st.solutions = append(st.solutions, sol)
	st.stats.SolutionsRecorded++
	if st.best == nil || sol.Score.LessBy(*st.best, st.cfg.Weights) {
		s := sol.Score
		st.best = &s
	}
}

// bestScore returns the minimal score among the given solutions, or nil.
func bestScore(sols []*constraint.Solution, w score.Weights) *score.Score {
	var best *score.Score
	for _, sol := range sols {
		if best == nil || sol.Score.LessBy(*best, w) {
			s := sol.Score
			best = &s
		}
	}
	return best
}

// filterSolutions keeps the minimal-score subset, ties included, preserving
// discovery order.
func filterSolutions(sols []*constraint.Solution, w score.Weights) []*constraint.Solution {
	min := bestScore(sols, w)
	if min == nil {
		return sols
	}
	kept := sols[:0:0]
	for _, sol := range sols {
		if !min.LessBy(sol.Score, w) {
			kept = append(kept, sol)
		}
	}
	return kept
}
