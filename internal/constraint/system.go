package constraint

import (
	"maps"
	"slices"

	"solvent/internal/score"
	"solvent/internal/types"
)

// System owns the mutable state of one solver invocation: the tracked
// (still-unbound) type variables, the active constraint set, the current
// variable bindings, and the running score. All mutation during search goes
// through strictly nested Scopes.
type System struct {
	Interner *types.Interner

	nextVarID   uint32
	typeVars    []*TypeVariable
	constraints []*Constraint
	bindings    map[*TypeVariable]types.TypeID
	score       score.Score

	scopeDepth int
}

// NewSystem constructs an empty system over the given type interner.
func NewSystem(in *types.Interner) *System {
	if in == nil {
		in = types.NewInterner()
	}
	return &System{
		Interner: in,
		bindings: make(map[*TypeVariable]types.TypeID),
	}
}

// NewTypeVariable creates and tracks a fresh type variable.
func (sys *System) NewTypeVariable(name string) *TypeVariable {
	tv := &TypeVariable{ID: sys.nextVarID, Name: name}
	sys.nextVarID++
	sys.typeVars = append(sys.typeVars, tv)
	return tv
}

// Add activates a constraint.
func (sys *System) Add(c *Constraint) {
	if c == nil {
		panic("solvent: internal error: nil constraint")
	}
	sys.constraints = append(sys.constraints, c)
}

// TypeVariables returns the tracked (unbound) variables in creation order.
// The slice is owned by the system; callers must not mutate it.
func (sys *System) TypeVariables() []*TypeVariable {
	return sys.typeVars
}

// Constraints returns the active constraints. The slice is owned by the
// system; callers must not mutate it.
func (sys *System) Constraints() []*Constraint {
	return sys.constraints
}

// Binding reports the bound type for tv, if any.
func (sys *System) Binding(tv *TypeVariable) (types.TypeID, bool) {
	ty, ok := sys.bindings[tv]
	return ty, ok
}

// CurrentScore returns the running score of the in-flight branch.
func (sys *System) CurrentScore() score.Score {
	return sys.score
}

// AddScore folds a delta into the running score.
func (sys *System) AddScore(delta score.Score) {
	sys.score = sys.score.Add(delta)
}

// HasFreeTypeVariables reports whether any tracked variable remains unbound.
func (sys *System) HasFreeTypeVariables() bool {
	return len(sys.typeVars) > 0
}

// ReplaceActive swaps in a component's variable and constraint subsets.
// Callers must hold a Scope so the previous sets are restored on release.
func (sys *System) ReplaceActive(vars []*TypeVariable, cons []*Constraint) {
	if sys.scopeDepth == 0 {
		panic("solvent: internal error: ReplaceActive outside a scope")
	}
	sys.typeVars = slices.Clone(vars)
	sys.constraints = slices.Clone(cons)
}

// RemoveConstraint drops one active constraint, preserving order.
func (sys *System) RemoveConstraint(c *Constraint) {
	for i, have := range sys.constraints {
		if have == c {
			sys.constraints = slices.Delete(slices.Clone(sys.constraints), i, i+1)
			return
		}
	}
}

// untrack removes tv from the tracked set, preserving order.
func (sys *System) untrack(tv *TypeVariable) {
	for i, have := range sys.typeVars {
		if have == tv {
			sys.typeVars = slices.Delete(slices.Clone(sys.typeVars), i, i+1)
			return
		}
	}
}

// Finalize produces an immutable Solution from the current bindings and
// score. Callers are responsible for ensuring the system is at a leaf.
func (sys *System) Finalize() *Solution {
	return &Solution{
		Bindings: maps.Clone(sys.bindings),
		Score:    sys.score,
	}
}

// ApplySolution re-applies a previously discovered partial solution:
// bindings are installed without re-scoring and the partial score is folded
// in once. Conflicting bindings indicate a collaborator bug.
func (sys *System) ApplySolution(sol *Solution) {
	for tv, ty := range sol.Bindings {
		if have, ok := sys.bindings[tv]; ok {
			if have != ty {
				panic("solvent: internal error: conflicting bindings during solution merge")
			}
			continue
		}
		sys.bindings[tv] = ty
		sys.untrack(tv)
	}
	sys.discharge()
	sys.score = sys.score.Add(sol.Score)
}

// discharge silently drops active constraints that became fully concrete
// while merging partial solutions; their cost is already carried by the
// partial scores.
func (sys *System) discharge() {
	kept := sys.constraints[:0:0]
	for _, c := range sys.constraints {
		if c.Kind != Disjunction && sys.fullyResolved(c) {
			continue
		}
		kept = append(kept, c)
	}
	sys.constraints = kept
}

func (sys *System) fullyResolved(c *Constraint) bool {
	if c.First.IsVar() {
		if _, ok := sys.bindings[c.First.Var]; !ok {
			return false
		}
	}
	if !c.Second.IsZero() && c.Second.IsVar() {
		if _, ok := sys.bindings[c.Second.Var]; !ok {
			return false
		}
	}
	return true
}
