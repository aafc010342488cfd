package constraint

import "testing"

func TestConnectedComponentsPartition(t *testing.T) {
	sys := NewSystem(nil)
	b := sys.Interner.Builtins()

	t1 := sys.NewTypeVariable("T1")
	t2 := sys.NewTypeVariable("T2")
	t3 := sys.NewTypeVariable("T3")
	t4 := sys.NewTypeVariable("T4")

	// {T1,T2} linked by a shared constraint, {T3} alone, {T4} alone.
	sys.Add(NewEqual(VarTerm(t1), VarTerm(t2)))
	sys.Add(NewBind(VarTerm(t3), TypeTerm(b.Int)))
	sys.Add(NewConformsTo(VarTerm(t4), 0))

	g := NewGraph(sys)
	g.Optimize()
	count, assignment := g.ConnectedComponents(sys.TypeVariables())
	if count != 3 {
		t.Fatalf("expected 3 components, got %d", count)
	}
	if len(assignment) != 4 {
		t.Fatalf("assignment covers %d vars, want 4", len(assignment))
	}
	if assignment[0] != assignment[1] {
		t.Fatalf("T1 and T2 must share a component: %v", assignment)
	}
	if assignment[2] == assignment[0] || assignment[3] == assignment[0] || assignment[2] == assignment[3] {
		t.Fatalf("T3 and T4 must be isolated: %v", assignment)
	}
	// Partition covers each input variable exactly once.
	seen := make(map[int]int)
	for _, id := range assignment {
		seen[id]++
	}
	if len(seen) != count {
		t.Fatalf("component indices not dense: %v", assignment)
	}
}

func TestConnectedComponentsTransitive(t *testing.T) {
	sys := NewSystem(nil)
	t1 := sys.NewTypeVariable("T1")
	t2 := sys.NewTypeVariable("T2")
	t3 := sys.NewTypeVariable("T3")

	sys.Add(NewConversion(VarTerm(t1), VarTerm(t2), RestrictionNone))
	sys.Add(NewConversion(VarTerm(t2), VarTerm(t3), RestrictionNone))

	g := NewGraph(sys)
	count, assignment := g.ConnectedComponents(sys.TypeVariables())
	if count != 1 {
		t.Fatalf("transitively linked vars must form one component, got %d (%v)", count, assignment)
	}
}

func TestDisjunctionChoicesLinkVariables(t *testing.T) {
	sys := NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")
	t2 := sys.NewTypeVariable("T2")

	dj := NewDisjunction([]*Constraint{
		NewBind(VarTerm(t1), TypeTerm(b.Int)),
		NewBind(VarTerm(t2), TypeTerm(b.Double)),
	})
	sys.Add(dj)

	g := NewGraph(sys)
	count, _ := g.ConnectedComponents(sys.TypeVariables())
	if count != 1 {
		t.Fatalf("variables inside one disjunction must be connected, got %d", count)
	}
}

func TestOrphanedConstraints(t *testing.T) {
	sys := NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")
	sys.Add(NewBind(VarTerm(t1), TypeTerm(b.Int)))
	orphan := NewConversion(TypeTerm(b.Int), TypeTerm(b.Double), RestrictionNone)
	sys.Add(orphan)

	g := NewGraph(sys)
	if len(g.Orphaned()) != 1 || g.Orphaned()[0] != orphan {
		t.Fatalf("expected exactly the concrete conversion to be orphaned")
	}

	taken := g.TakeOrphaned()
	if len(taken) != 1 {
		t.Fatalf("TakeOrphaned returned %d constraints", len(taken))
	}
	for _, c := range sys.Constraints() {
		if c == orphan {
			t.Fatalf("orphan still active after TakeOrphaned")
		}
	}
	if g.Orphaned() != nil {
		t.Fatalf("orphan list must be drained")
	}
}

func TestOptimizeContractsEquivalences(t *testing.T) {
	sys := NewSystem(nil)
	t1 := sys.NewTypeVariable("T1")
	t2 := sys.NewTypeVariable("T2")
	sys.Add(NewEqual(VarTerm(t1), VarTerm(t2)))

	g := NewGraph(sys)
	g.Optimize()
	if g.find(t1) != g.find(t2) {
		t.Fatalf("optimize must contract the equality edge")
	}
	count, _ := g.ConnectedComponents(sys.TypeVariables())
	if count != 1 {
		t.Fatalf("contraction must not change the component count")
	}
}
