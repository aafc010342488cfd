package solver

import (
	"testing"

	"solvent/internal/constraint"
	"solvent/internal/score"
	"solvent/internal/types"
)

func mustBinding(t *testing.T, sol *constraint.Solution, tv *constraint.TypeVariable, want types.TypeID) {
	t.Helper()
	got, ok := sol.TypeOf(tv)
	if !ok {
		t.Fatalf("%v unbound in %v", tv, sol)
	}
	if got != want {
		t.Fatalf("%v bound to #%d, want #%d", tv, got, want)
	}
}

func TestSolveSingleBinding(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	tv := sys.NewTypeVariable("T")
	sys.Add(constraint.NewEqual(constraint.VarTerm(tv), constraint.TypeTerm(b.Int)))

	sols, stats := Solve(sys, Config{})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1", len(sols))
	}
	mustBinding(t, sols[0], tv, b.Int)
	if !sols[0].Score.IsZero() {
		t.Fatalf("exact binding must not be penalized: %v", sols[0].Score)
	}
	if stats.SolutionsRecorded != 1 {
		t.Fatalf("recorded %d solutions, want 1", stats.SolutionsRecorded)
	}
}

func TestSolveRestoresSystem(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	tv := sys.NewTypeVariable("T")
	sys.Add(constraint.NewSubtype(constraint.TypeTerm(b.Int), constraint.VarTerm(tv)))

	sols, _ := Solve(sys, Config{})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1", len(sols))
	}

	// The system must come back exactly as handed in.
	if len(sys.TypeVariables()) != 1 || sys.TypeVariables()[0] != tv {
		t.Fatalf("type variables not restored")
	}
	if len(sys.Constraints()) != 1 {
		t.Fatalf("constraints not restored: %d active", len(sys.Constraints()))
	}
	if _, ok := sys.Binding(tv); ok {
		t.Fatalf("binding leaked out of the solve")
	}
	if !sys.CurrentScore().IsZero() {
		t.Fatalf("score leaked out of the solve: %v", sys.CurrentScore())
	}
}

func TestSolveUnsatisfiable(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	tv := sys.NewTypeVariable("T")
	sys.Add(constraint.NewEqual(constraint.VarTerm(tv), constraint.TypeTerm(b.Int)))
	sys.Add(constraint.NewEqual(constraint.VarTerm(tv), constraint.TypeTerm(b.String)))

	sols, _ := Solve(sys, Config{})
	if len(sols) != 0 {
		t.Fatalf("inconsistent system produced %d solutions", len(sols))
	}
}

// Two variables with no constraint path between them must be solved as
// independent components, and the merge must visit the full cross product of
// their partial solutions.
func TestSolveIndependentComponentsMergeCompleteness(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")
	t2 := sys.NewTypeVariable("T2")
	sys.Add(constraint.NewDisjunction([]*constraint.Constraint{
		constraint.NewBind(constraint.VarTerm(t1), constraint.TypeTerm(b.Int)),
		constraint.NewBind(constraint.VarTerm(t1), constraint.TypeTerm(b.Bool)),
	}))
	sys.Add(constraint.NewDisjunction([]*constraint.Constraint{
		constraint.NewBind(constraint.VarTerm(t2), constraint.TypeTerm(b.String)),
		constraint.NewBind(constraint.VarTerm(t2), constraint.TypeTerm(b.Double)),
	}))

	sols, stats := Solve(sys, Config{})
	if len(sols) != 4 {
		t.Fatalf("got %d solutions, want the 2x2 cross product", len(sols))
	}
	seen := make(map[[2]types.TypeID]bool)
	for _, sol := range sols {
		ty1, ok1 := sol.TypeOf(t1)
		ty2, ok2 := sol.TypeOf(t2)
		if !ok1 || !ok2 {
			t.Fatalf("merged solution missing a component binding: %v", sol)
		}
		seen[[2]types.TypeID{ty1, ty2}] = true
	}
	if len(seen) != 4 {
		t.Fatalf("merged combinations not distinct: %v", sols)
	}
	// Each choice runs its own trivial merge (4), and the top split merges
	// the 2x2 cross product (4).
	if stats.CombinationsMerged != 8 {
		t.Fatalf("merged %d combinations, want 8", stats.CombinationsMerged)
	}
}

// A conversion constraint shared with the disjunction variable makes the two
// choices score differently; only the exact one may survive ranking.
func TestSolveRanksByScore(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	tv := sys.NewTypeVariable("T")
	sys.Add(constraint.NewDisjunction([]*constraint.Constraint{
		constraint.NewBind(constraint.VarTerm(tv), constraint.TypeTerm(b.Double)),
		constraint.NewBind(constraint.VarTerm(tv), constraint.TypeTerm(b.Int)),
	}))
	sys.Add(constraint.NewConversion(constraint.TypeTerm(b.Int), constraint.VarTerm(tv), constraint.RestrictionNone))

	sols, _ := Solve(sys, Config{})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want only the exact match", len(sols))
	}
	mustBinding(t, sols[0], tv, b.Int)
	if !sols[0].Score.IsZero() {
		t.Fatalf("best solution carries a penalty: %v", sols[0].Score)
	}
}

func TestSolveFavoredChoiceShortCircuits(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	tv := sys.NewTypeVariable("T")
	favored := constraint.NewBind(constraint.VarTerm(tv), constraint.TypeTerm(b.Double))
	favored.Favored = true
	sys.Add(constraint.NewDisjunction([]*constraint.Constraint{
		favored,
		constraint.NewBind(constraint.VarTerm(tv), constraint.TypeTerm(b.Int)),
	}))

	sols, stats := Solve(sys, Config{})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1", len(sols))
	}
	mustBinding(t, sols[0], tv, b.Double)
	if stats.ChoicesAttempted != 1 {
		t.Fatalf("attempted %d choices, want the unfavored one short-circuited", stats.ChoicesAttempted)
	}
}

func TestSolveFavoredShortCircuitDisabled(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	tv := sys.NewTypeVariable("T")
	favored := constraint.NewBind(constraint.VarTerm(tv), constraint.TypeTerm(b.Double))
	favored.Favored = true
	sys.Add(constraint.NewDisjunction([]*constraint.Constraint{
		favored,
		constraint.NewBind(constraint.VarTerm(tv), constraint.TypeTerm(b.Int)),
	}))

	sols, stats := Solve(sys, Config{DisablePerformanceHacks: true})
	if stats.ChoicesAttempted != 2 {
		t.Fatalf("attempted %d choices, want both with hacks disabled", stats.ChoicesAttempted)
	}
	if len(sols) != 2 {
		t.Fatalf("got %d solutions, want both zero-score choices kept", len(sols))
	}
}

func TestSolveFreeTypeVariables(t *testing.T) {
	build := func() (*constraint.System, *constraint.TypeVariable, *constraint.TypeVariable) {
		sys := constraint.NewSystem(nil)
		t1 := sys.NewTypeVariable("T1")
		t2 := sys.NewTypeVariable("T2")
		sys.Add(constraint.NewSubtype(constraint.VarTerm(t1), constraint.VarTerm(t2)))
		return sys, t1, t2
	}

	sys, _, _ := build()
	if sols, _ := Solve(sys, Config{}); len(sols) != 0 {
		t.Fatalf("free variables must fail by default, got %d solutions", len(sols))
	}

	sys, t1, t2 := build()
	sols, _ := Solve(sys, Config{AllowFreeTypeVariables: true})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1 with free variables allowed", len(sols))
	}
	if _, ok := sols[0].TypeOf(t1); ok {
		t.Fatalf("%v must stay unbound", t1)
	}
	if _, ok := sols[0].TypeOf(t2); ok {
		t.Fatalf("%v must stay unbound", t2)
	}
}

// Only relational and member constraints are safely ignorable at a
// free-variable leaf; a pending conformance is not.
func TestSolveFreeTypeVariablesRejectNonRelational(t *testing.T) {
	sys := constraint.NewSystem(nil)
	t1 := sys.NewTypeVariable("T1")
	t2 := sys.NewTypeVariable("T2")
	sys.Add(constraint.NewSubtype(constraint.VarTerm(t1), constraint.VarTerm(t2)))
	sys.Add(constraint.NewConformsTo(constraint.VarTerm(t1), types.ProtocolEquatable))

	sols, _ := Solve(sys, Config{AllowFreeTypeVariables: true})
	if len(sols) != 0 {
		t.Fatalf("pending conformance must block the free-variable leaf, got %d solutions", len(sols))
	}
}

func TestSolveLiteralDefault(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	tv := sys.NewTypeVariable("T")
	sys.Add(constraint.NewConformsTo(constraint.VarTerm(tv), types.ProtocolIntegerLiteral))

	sols, _ := Solve(sys, Config{})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want the literal default", len(sols))
	}
	mustBinding(t, sols[0], tv, b.Int)
}

// Once a precise candidate solves, the defaultable batch must not be
// explored at all.
func TestSolvePreciseBindingStopsBeforeDefaults(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	tv := sys.NewTypeVariable("T")
	sys.Add(constraint.NewSubtype(constraint.TypeTerm(b.Int), constraint.VarTerm(tv)))
	sys.Add(constraint.NewDefaultable(tv, b.Double))

	sols, stats := Solve(sys, Config{})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1", len(sols))
	}
	mustBinding(t, sols[0], tv, b.Int)
	if stats.BindingsAttempted != 1 {
		t.Fatalf("attempted %d bindings, want the default batch skipped", stats.BindingsAttempted)
	}
}

func TestSolveDefaultableFallback(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	tv := sys.NewTypeVariable("T")
	sys.Add(constraint.NewDefaultable(tv, b.Double))

	sols, _ := Solve(sys, Config{})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want the defaultable fallback", len(sols))
	}
	mustBinding(t, sols[0], tv, b.Double)
}

func TestSolveUnavailableOverload(t *testing.T) {
	build := func() (*constraint.System, *constraint.TypeVariable) {
		sys := constraint.NewSystem(nil)
		b := sys.Interner.Builtins()
		tv := sys.NewTypeVariable("T")
		sys.Add(constraint.NewDisjunction([]*constraint.Constraint{
			constraint.NewBindOverload(tv, &constraint.Overload{Name: "f", Type: b.Int}),
			constraint.NewBindOverload(tv, &constraint.Overload{Name: "f", Type: b.Double, Unavailable: true}),
		}))
		return sys, tv
	}

	sys, tv := build()
	sols, stats := Solve(sys, Config{})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want the available overload only", len(sols))
	}
	mustBinding(t, sols[0], tv, sys.Interner.Builtins().Int)
	if stats.ChoicesAttempted != 1 {
		t.Fatalf("attempted %d choices, unavailable must be skipped", stats.ChoicesAttempted)
	}

	// Diagnostic mode attempts the unavailable overload and keeps every
	// recorded solution, penalty included.
	sys, _ = build()
	sols, stats = Solve(sys, Config{DiagnosticMode: true})
	if stats.ChoicesAttempted != 2 {
		t.Fatalf("attempted %d choices, want both in diagnostic mode", stats.ChoicesAttempted)
	}
	if len(sols) != 2 {
		t.Fatalf("got %d solutions, want both kept in diagnostic mode", len(sols))
	}
	penalized := 0
	for _, sol := range sols {
		if sol.Score.Data[score.Unavailable] == 1 {
			penalized++
		}
	}
	if penalized != 1 {
		t.Fatalf("want exactly one unavailable-penalized solution, got %d", penalized)
	}
}

// A clean solution through a non-generic symmetric operator suppresses the
// remaining generic operator candidates.
func TestSolveGenericOperatorSkip(t *testing.T) {
	build := func() *constraint.System {
		sys := constraint.NewSystem(nil)
		b := sys.Interner.Builtins()
		tv := sys.NewTypeVariable("T")
		sys.Add(constraint.NewDisjunction([]*constraint.Constraint{
			constraint.NewBindOverload(tv, &constraint.Overload{Name: "+", Type: b.Int, Symmetric: true}),
			constraint.NewBindOverload(tv, &constraint.Overload{Name: "+", Type: b.Double, Symmetric: true, Generic: true}),
		}))
		return sys
	}

	_, stats := Solve(build(), Config{})
	if stats.ChoicesAttempted != 1 {
		t.Fatalf("attempted %d choices, want the generic operator skipped", stats.ChoicesAttempted)
	}

	_, stats = Solve(build(), Config{DisablePerformanceHacks: true})
	if stats.ChoicesAttempted != 2 {
		t.Fatalf("attempted %d choices, want both with hacks disabled", stats.ChoicesAttempted)
	}
}

// A disjunction mentioning no type variables forms its own component next to
// a variable component, and its cost must flow into the merged solutions.
func TestSolveOrphanedDisjunctionComponent(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	tv := sys.NewTypeVariable("T")
	sys.Add(constraint.NewEqual(constraint.VarTerm(tv), constraint.TypeTerm(b.Bool)))
	sys.Add(constraint.NewDisjunction([]*constraint.Constraint{
		constraint.NewConversion(constraint.TypeTerm(b.Int), constraint.TypeTerm(b.Double), constraint.RestrictionNone),
		constraint.NewConversion(constraint.TypeTerm(b.Int), constraint.TypeTerm(b.Int), constraint.RestrictionNone),
	}))

	sols, _ := Solve(sys, Config{})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1", len(sols))
	}
	mustBinding(t, sols[0], tv, b.Bool)
	// The identity conversion choice wins the orphan component, so the
	// merged score stays clean.
	if !sols[0].Score.IsZero() {
		t.Fatalf("orphan component cost mishandled: %v", sols[0].Score)
	}
}

// Merged scores must equal the sum of the component scores, not double-count
// cost accumulated before the split.
func TestSolveMergedScoreNormalization(t *testing.T) {
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")
	t2 := sys.NewTypeVariable("T2")
	// Each component pays exactly one widening.
	sys.Add(constraint.NewSubtype(constraint.TypeTerm(b.Int), constraint.VarTerm(t1)))
	sys.Add(constraint.NewSubtype(constraint.TypeTerm(b.Double), constraint.VarTerm(t1)))
	sys.Add(constraint.NewSubtype(constraint.TypeTerm(b.Int), constraint.VarTerm(t2)))
	sys.Add(constraint.NewSubtype(constraint.TypeTerm(b.Double), constraint.VarTerm(t2)))

	sols, _ := Solve(sys, Config{})
	if len(sols) == 0 {
		t.Fatalf("no solutions")
	}
	for _, sol := range sols {
		mustBinding(t, sol, t1, b.Double)
		mustBinding(t, sol, t2, b.Double)
		want := score.Zero.BumpValue(2)
		if sol.Score != want {
			t.Fatalf("merged score %v, want %v", sol.Score, want)
		}
	}
}

func TestSolveChainedComponents(t *testing.T) {
	// T1 = (T2) -> T3 shape: binding T2 and T3 settles T1 transitively
	// through one connected component.
	sys := constraint.NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")
	t2 := sys.NewTypeVariable("T2")
	sys.Add(constraint.NewEqual(constraint.VarTerm(t1), constraint.VarTerm(t2)))
	sys.Add(constraint.NewSubtype(constraint.TypeTerm(b.Int), constraint.VarTerm(t2)))

	sols, _ := Solve(sys, Config{})
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1", len(sols))
	}
	mustBinding(t, sols[0], t1, b.Int)
	mustBinding(t, sols[0], t2, b.Int)
}
