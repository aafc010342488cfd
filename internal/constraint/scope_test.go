package constraint

import (
	"testing"

	"solvent/internal/score"
)

func TestScopeRollbackIsExact(t *testing.T) {
	sys := NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")
	t2 := sys.NewTypeVariable("T2")
	sys.Add(NewEqual(VarTerm(t1), VarTerm(t2)))
	sys.Add(NewConformsTo(VarTerm(t2), 0))

	wantVars := append([]*TypeVariable(nil), sys.TypeVariables()...)
	wantCons := append([]*Constraint(nil), sys.Constraints()...)
	wantScore := sys.CurrentScore()

	sc := sys.NewScope()
	if !sys.Bind(t1, b.Int) {
		t.Fatalf("binding should succeed")
	}
	if len(sys.TypeVariables()) == len(wantVars) {
		t.Fatalf("binding must untrack variables")
	}
	sc.Release()

	gotVars := sys.TypeVariables()
	if len(gotVars) != len(wantVars) {
		t.Fatalf("tracked variables not restored: %d vs %d", len(gotVars), len(wantVars))
	}
	for i := range wantVars {
		if gotVars[i] != wantVars[i] {
			t.Fatalf("variable %d differs after rollback", i)
		}
	}
	gotCons := sys.Constraints()
	if len(gotCons) != len(wantCons) {
		t.Fatalf("constraints not restored: %d vs %d", len(gotCons), len(wantCons))
	}
	for i := range wantCons {
		if gotCons[i] != wantCons[i] {
			t.Fatalf("constraint %d differs after rollback", i)
		}
	}
	if _, bound := sys.Binding(t1); bound {
		t.Fatalf("binding survived rollback")
	}
	if sys.CurrentScore() != wantScore {
		t.Fatalf("score not restored: %v", sys.CurrentScore())
	}
}

func TestScopesNestStrictly(t *testing.T) {
	sys := NewSystem(nil)
	outer := sys.NewScope()
	inner := sys.NewScope()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("releasing a parent before its child must panic")
			}
		}()
		outer.Release()
	}()

	inner.Release()
	outer.Release()

	defer func() {
		if recover() == nil {
			t.Fatalf("double release must panic")
		}
	}()
	outer.Release()
}

func TestScopeRestoresDisabledFlags(t *testing.T) {
	sys := NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")
	c := NewBind(VarTerm(t1), TypeTerm(b.Int))
	sys.Add(c)

	sc := sys.NewScope()
	sc.Disable(c)
	if !c.Disabled() {
		t.Fatalf("constraint should be disabled inside scope")
	}
	sc.Release()
	if c.Disabled() {
		t.Fatalf("disabled flag survived rollback")
	}
}

func TestScoreRollsBackWithScope(t *testing.T) {
	sys := NewSystem(nil)
	sc := sys.NewScope()
	sys.AddScore(score.Zero.Bump(score.Fix))
	if sys.CurrentScore().IsZero() {
		t.Fatalf("score should reflect the bump")
	}
	sc.Release()
	if !sys.CurrentScore().IsZero() {
		t.Fatalf("score not rolled back")
	}
}
