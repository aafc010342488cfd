package constraint

import (
	"fmt"

	"solvent/internal/types"
)

// Binding is one candidate assignment for a type variable. The tags drive
// exploration-order heuristics, not correctness.
type Binding struct {
	Type types.TypeID

	// Defaultable marks a last-resort candidate from a Defaultable
	// constraint.
	Defaultable bool

	// DefaultedProtocol names the literal protocol that supplied the
	// candidate, if any.
	DefaultedProtocol types.Protocol
}

// HasDefaultedProtocol reports whether the candidate came from a literal
// protocol default.
func (b Binding) HasDefaultedProtocol() bool {
	return b.DefaultedProtocol != types.ProtocolNone
}

func (b Binding) String() string {
	s := fmt.Sprintf("#%d", b.Type)
	if b.Defaultable {
		s += " (defaultable)"
	}
	if b.HasDefaultedProtocol() {
		s += fmt.Sprintf(" (via %v)", b.DefaultedProtocol)
	}
	return s
}

// PotentialBindings is the ordered candidate set for one variable, split
// into a precise batch and a last-resort default batch.
type PotentialBindings struct {
	TypeVar  *TypeVariable
	Bindings []Binding // precise candidates, favored first
	Defaults []Binding // defaultable and literal-default candidates

	// InvolvesTypeVariables is set when a candidate-producing constraint
	// also references another unbound variable.
	InvolvesTypeVariables bool

	// RequiresDisjunction is set when the variable appears inside an active
	// disjunction, so binding it early would pre-empt overload choice.
	RequiresDisjunction bool
}

// Empty reports whether no candidate exists in either batch.
func (pb *PotentialBindings) Empty() bool {
	return len(pb.Bindings) == 0 && len(pb.Defaults) == 0
}

// FullyDetermined reports whether the precise batch can be explored without
// consulting disjunctions or other variables.
func (pb *PotentialBindings) FullyDetermined() bool {
	return len(pb.Bindings) > 0 && !pb.InvolvesTypeVariables && !pb.RequiresDisjunction
}

// PotentialBindingsFor collects candidates for tv from the active
// constraints, in activation order.
func (sys *System) PotentialBindingsFor(tv *TypeVariable) *PotentialBindings {
	pb := &PotentialBindings{TypeVar: tv}
	seen := make(map[types.TypeID]bool)

	addPrecise := func(ty types.TypeID, favored bool) {
		if ty == types.NoTypeID || seen[ty] {
			return
		}
		seen[ty] = true
		b := Binding{Type: ty}
		if favored {
			// Favored candidates go to the front, preserving relative order.
			pb.Bindings = append([]Binding{b}, pb.Bindings...)
			return
		}
		pb.Bindings = append(pb.Bindings, b)
	}

	for _, c := range sys.constraints {
		if c.Disabled() {
			continue
		}
		if c.Kind == Disjunction {
			if c.References(tv) {
				pb.RequiresDisjunction = true
			}
			continue
		}
		if !c.References(tv) {
			continue
		}
		other := c.Second
		if c.Second.Var == tv {
			other = c.First
		}
		if other.IsVar() {
			if _, bound := sys.bindings[other.Var]; !bound && other.Var != tv {
				pb.InvolvesTypeVariables = true
			}
		}

		switch c.Kind {
		case Bind, Equal, Subtype, Conversion:
			if ty, ok := sys.resolveTerm(other); ok {
				addPrecise(ty, c.Favored)
			}
		case Defaultable:
			if ty, ok := sys.resolveTerm(c.Second); ok {
				pb.Defaults = append(pb.Defaults, Binding{Type: ty, Defaultable: true})
			}
		case ConformsTo:
			if def := c.Protocol.DefaultType(sys.Interner.Builtins()); def != types.NoTypeID {
				pb.Defaults = append(pb.Defaults, Binding{
					Type:              def,
					DefaultedProtocol: c.Protocol,
				})
			}
		}
	}
	return pb
}

// DetermineBestBindings picks the most promising variable to bind next:
// fully determined sets first, then smaller candidate sets, then creation
// order. Returns nil when no tracked variable has candidates.
func (sys *System) DetermineBestBindings() *PotentialBindings {
	var best *PotentialBindings
	for _, tv := range sys.typeVars {
		pb := sys.PotentialBindingsFor(tv)
		if pb.Empty() {
			continue
		}
		if best == nil || betterBindings(pb, best) {
			best = pb
		}
	}
	return best
}

func betterBindings(a, b *PotentialBindings) bool {
	if a.FullyDetermined() != b.FullyDetermined() {
		return a.FullyDetermined()
	}
	return len(a.Bindings)+len(a.Defaults) < len(b.Bindings)+len(b.Defaults)
}

// SelectDisjunction picks the active disjunction with the fewest enabled
// choices, ties broken by activation order. Returns nil when none is active.
func (sys *System) SelectDisjunction() *Constraint {
	var best *Constraint
	bestCount := 0
	for _, c := range sys.constraints {
		if c.Disabled() || c.Kind != Disjunction {
			continue
		}
		count := 0
		for _, choice := range c.Choices {
			if !choice.Disabled() {
				count++
			}
		}
		if best == nil || count < bestCount {
			best = c
			bestCount = count
		}
	}
	return best
}

// BindingProducer walks a PotentialBindings set in order: the precise batch
// first, then the strictly less precise default batch. Restart only by
// constructing a fresh producer.
type BindingProducer struct {
	pb    *PotentialBindings
	index int
}

// NewBindingProducer starts enumeration over pb.
func NewBindingProducer(pb *PotentialBindings) *BindingProducer {
	if pb == nil {
		panic("solvent: internal error: binding producer without bindings")
	}
	return &BindingProducer{pb: pb}
}

// TypeVar returns the variable being enumerated.
func (p *BindingProducer) TypeVar() *TypeVariable { return p.pb.TypeVar }

// Next yields the next candidate, in producer order.
func (p *BindingProducer) Next() (Binding, bool) {
	precise := len(p.pb.Bindings)
	if p.index < precise {
		b := p.pb.Bindings[p.index]
		p.index++
		return b, true
	}
	if p.index < precise+len(p.pb.Defaults) {
		b := p.pb.Defaults[p.index-precise]
		p.index++
		return b, true
	}
	return Binding{}, false
}

// NeedsToComputeNext reports that the producer is positioned at the boundary
// to a strictly less precise batch of candidates.
func (p *BindingProducer) NeedsToComputeNext() bool {
	return p.index == len(p.pb.Bindings) && len(p.pb.Defaults) > 0
}
