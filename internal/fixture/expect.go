package fixture

import (
	"fmt"

	"fortio.org/safecast"

	"solvent/internal/constraint"
	"solvent/internal/types"
)

// Check verifies the expect block against the solver's output. vars is the
// name mapping returned by Build; in is the system's interner.
func (e *Expect) Check(in *types.Interner, vars map[string]*constraint.TypeVariable, sols []*constraint.Solution) error {
	if e == nil {
		return nil
	}
	if e.Solvable != (len(sols) > 0) {
		return fmt.Errorf("expected solvable=%t, got %d solutions", e.Solvable, len(sols))
	}
	if e.Solutions > 0 {
		want, err := safecast.Conv[int](e.Solutions)
		if err != nil {
			return fmt.Errorf("invalid expected solution count: %w", err)
		}
		if len(sols) != want {
			return fmt.Errorf("expected %d solutions, got %d", want, len(sols))
		}
	}
	if len(sols) == 0 {
		return nil
	}

	// Bindings and score are asserted against the first (best-ranked)
	// solution.
	best := sols[0]
	for name, typeExpr := range e.Bindings {
		tv, ok := vars[name]
		if !ok {
			return fmt.Errorf("expect references undeclared variable %q", name)
		}
		want, err := ParseType(in, typeExpr)
		if err != nil {
			return fmt.Errorf("expect binding for %q: %w", name, err)
		}
		got, bound := best.TypeOf(tv)
		if !bound {
			return fmt.Errorf("expected %s = %s, variable is unbound", name, typeExpr)
		}
		if got != want {
			return fmt.Errorf("expected %s = %s, got %s", name, typeExpr, in.String(got))
		}
	}
	if e.Score != "" && best.Score.String() != e.Score {
		return fmt.Errorf("expected score %s, got %s", e.Score, best.Score.String())
	}
	return nil
}
