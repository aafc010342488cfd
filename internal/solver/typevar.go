package solver

import (
	"fmt"

	"solvent/internal/constraint"
	"solvent/internal/trace"
)

// TypeVariableStep explores the ordered candidate bindings for one type
// variable, solving the simplified system under a fresh scope per binding.
type TypeVariableStep struct {
	st       *state
	producer *constraint.BindingProducer
	target   *[]*constraint.Solution

	anySolved                 bool
	sawFirstLiteralConstraint bool

	activeScope *constraint.Scope
	span        *trace.Span
}

// NewTypeVariableStep builds the step for the given candidate set.
func NewTypeVariableStep(st *state, bindings *constraint.PotentialBindings, target *[]*constraint.Solution) *TypeVariableStep {
	return &TypeVariableStep{
		st:       st,
		producer: constraint.NewBindingProducer(bindings),
		target:   target,
	}
}

func (s *TypeVariableStep) Setup() {
	s.st.stats.TypeVariablesBound++
	s.span = trace.Begin(s.st.cfg.Tracer, trace.ScopeAttempt,
		fmt.Sprintf("binding %v", s.producer.TypeVar()), "", 0, s.st.depth)
}

func (s *TypeVariableStep) Take(prevFailed bool) StepResult {
	sys := s.st.sys
	for {
		binding, ok := s.producer.Next()
		if !ok {
			break
		}
		s.st.stats.BindingsAttempted++

		if s.anySolved {
			// Defaults are last-resort: once any solution exists, don't
			// explore defaultable candidates at all.
			if binding.Defaultable {
				continue
			}
			// If we solved without consulting default literals, everything
			// past this point is only less precise.
			if binding.HasDefaultedProtocol() && !s.sawFirstLiteralConstraint {
				break
			}
		}
		if binding.HasDefaultedProtocol() {
			s.sawFirstLiteralConstraint = true
		}

		trace.Point(s.st.cfg.Tracer, trace.ScopeAttempt, "trying",
			fmt.Sprintf("%v := %v", s.producer.TypeVar(), binding), s.st.depth)

		scope := sys.NewScope()
		if sys.Bind(s.producer.TypeVar(), binding.Type) {
			// The binding held; solve whatever the simplification left.
			s.activeScope = scope
			return Suspend(NewSplitterStep(s.st, s.target))
		}
		scope.Release()
	}

	// Producer exhausted or short-circuited.
	return s.done(s.anySolved)
}

func (s *TypeVariableStep) Resume(prevFailed bool) StepResult {
	if s.activeScope == nil {
		panic("solvent: internal error: type variable step resumed without an active binding")
	}

	// Rewind everything the binding attempt changed.
	s.activeScope.Release()
	s.activeScope = nil

	s.anySolved = s.anySolved || !prevFailed

	// Once a solution exists and the current batch of candidates is done,
	// stop: each following batch is strictly less precise.
	if s.anySolved && s.producer.NeedsToComputeNext() {
		return s.done(true)
	}

	return s.Take(prevFailed)
}

func (s *TypeVariableStep) done(success bool) StepResult {
	if s.span != nil {
		s.span.End(fmt.Sprintf("solved=%t", success))
		s.span = nil
	}
	return Done(success)
}
