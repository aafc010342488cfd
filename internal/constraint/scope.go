package constraint

import (
	"maps"
	"slices"

	"solvent/internal/score"
	"solvent/internal/types"
)

// Scope is a reversible checkpoint of the system's mutable state. Scopes
// nest strictly: the last-opened scope must be released first, and each
// scope is released exactly once. Misuse is a programmer error and panics.
type Scope struct {
	sys *System

	typeVars    []*TypeVariable
	constraints []*Constraint
	bindings    map[*TypeVariable]types.TypeID
	score       score.Score
	disabled    []*Constraint

	depth    int
	released bool
}

// NewScope snapshots the current state. The system keeps working on clones
// so the snapshot stays untouched until Release swaps it back in.
func (sys *System) NewScope() *Scope {
	sc := &Scope{
		sys:         sys,
		typeVars:    sys.typeVars,
		constraints: sys.constraints,
		bindings:    sys.bindings,
		score:       sys.score,
		depth:       sys.scopeDepth,
	}
	sys.typeVars = slices.Clone(sys.typeVars)
	sys.constraints = slices.Clone(sys.constraints)
	sys.bindings = maps.Clone(sys.bindings)
	sys.scopeDepth++
	return sc
}

// Disable excludes a constraint for the lifetime of this scope.
func (sc *Scope) Disable(c *Constraint) {
	if c.Disabled() {
		return
	}
	c.SetDisabled(true)
	sc.disabled = append(sc.disabled, c)
}

// Release restores the snapshot taken at creation. Panics when released out
// of order or twice.
func (sc *Scope) Release() {
	if sc.released {
		panic("solvent: internal error: scope released twice")
	}
	if sc.sys.scopeDepth != sc.depth+1 {
		panic("solvent: internal error: scopes released out of order")
	}
	for _, c := range sc.disabled {
		c.SetDisabled(false)
	}
	sc.sys.typeVars = sc.typeVars
	sc.sys.constraints = sc.constraints
	sc.sys.bindings = sc.bindings
	sc.sys.score = sc.score
	sc.sys.scopeDepth--
	sc.released = true
}
