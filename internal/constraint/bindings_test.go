package constraint

import (
	"testing"

	"solvent/internal/types"
)

func TestPotentialBindingsOrderAndBatches(t *testing.T) {
	sys := NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")

	plain := NewEqual(VarTerm(t1), TypeTerm(b.String))
	fav := NewEqual(VarTerm(t1), TypeTerm(b.Double))
	fav.Favored = true
	sys.Add(plain)
	sys.Add(fav)
	sys.Add(NewConformsTo(VarTerm(t1), types.ProtocolIntegerLiteral))
	sys.Add(NewDefaultable(t1, b.Unit))

	pb := sys.PotentialBindingsFor(t1)
	if len(pb.Bindings) != 2 || len(pb.Defaults) != 2 {
		t.Fatalf("unexpected batches: %d precise, %d defaults", len(pb.Bindings), len(pb.Defaults))
	}
	if pb.Bindings[0].Type != b.Double {
		t.Fatalf("favored candidate must come first: %v", pb.Bindings)
	}
	if !pb.Defaults[0].HasDefaultedProtocol() || pb.Defaults[0].Type != b.Int {
		t.Fatalf("integer-literal default missing: %v", pb.Defaults)
	}
	if !pb.Defaults[1].Defaultable {
		t.Fatalf("defaultable candidate missing: %v", pb.Defaults)
	}
}

func TestBindingProducerBatchBoundary(t *testing.T) {
	sys := NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")
	sys.Add(NewEqual(VarTerm(t1), TypeTerm(b.Int)))
	sys.Add(NewDefaultable(t1, b.Double))

	p := NewBindingProducer(sys.PotentialBindingsFor(t1))
	if p.NeedsToComputeNext() {
		t.Fatalf("boundary reported before the precise batch was consumed")
	}
	first, ok := p.Next()
	if !ok || first.Type != b.Int {
		t.Fatalf("expected precise candidate first, got %v", first)
	}
	if !p.NeedsToComputeNext() {
		t.Fatalf("boundary to default batch not reported")
	}
	second, ok := p.Next()
	if !ok || !second.Defaultable {
		t.Fatalf("expected defaultable candidate, got %v", second)
	}
	if _, ok := p.Next(); ok {
		t.Fatalf("producer must be exhausted")
	}
}

func TestDetermineBestBindingsPrefersDetermined(t *testing.T) {
	sys := NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")
	t2 := sys.NewTypeVariable("T2")
	t3 := sys.NewTypeVariable("T3")

	// T1 is entangled with T3; T2 stands alone with one concrete candidate.
	sys.Add(NewEqual(VarTerm(t1), VarTerm(t3)))
	sys.Add(NewEqual(VarTerm(t1), TypeTerm(b.Int)))
	sys.Add(NewEqual(VarTerm(t2), TypeTerm(b.Int)))

	best := sys.DetermineBestBindings()
	if best == nil {
		t.Fatalf("expected candidates")
	}
	if best.TypeVar != t2 || best.InvolvesTypeVariables {
		t.Fatalf("selection should prefer the untangled variable, got %v", best.TypeVar)
	}
}

func TestSelectDisjunctionPrefersFewestChoices(t *testing.T) {
	sys := NewSystem(nil)
	b := sys.Interner.Builtins()
	t1 := sys.NewTypeVariable("T1")

	wide := NewDisjunction([]*Constraint{
		NewBind(VarTerm(t1), TypeTerm(b.Int)),
		NewBind(VarTerm(t1), TypeTerm(b.Double)),
		NewBind(VarTerm(t1), TypeTerm(b.String)),
	})
	narrow := NewDisjunction([]*Constraint{
		NewBind(VarTerm(t1), TypeTerm(b.Int)),
		NewBind(VarTerm(t1), TypeTerm(b.Uint)),
	})
	sys.Add(wide)
	sys.Add(narrow)

	if got := sys.SelectDisjunction(); got != narrow {
		t.Fatalf("expected the narrower disjunction to be selected")
	}
}
