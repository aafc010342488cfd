package constraint

// Graph is the adjacency view of the active constraint set: each tracked
// type variable maps to the constraints touching it, and constraints that
// touch no tracked variable are held aside as orphans. A Graph is built for
// one splitting pass and discarded; reversibility comes from the system's
// scopes, not from the graph.
type Graph struct {
	sys       *System
	tracked   map[*TypeVariable]bool
	adjacency map[*TypeVariable][]*Constraint
	orphaned  []*Constraint
	parent    map[*TypeVariable]*TypeVariable
}

// NewGraph indexes the system's current tracked variables and active
// constraints.
func NewGraph(sys *System) *Graph {
	g := &Graph{
		sys:       sys,
		tracked:   make(map[*TypeVariable]bool),
		adjacency: make(map[*TypeVariable][]*Constraint),
		parent:    make(map[*TypeVariable]*TypeVariable),
	}
	for _, tv := range sys.TypeVariables() {
		g.tracked[tv] = true
		g.parent[tv] = tv
	}
	var scratch []*TypeVariable
	for _, c := range sys.Constraints() {
		if c.Disabled() {
			continue
		}
		scratch = c.TypeVars(scratch[:0])
		live := false
		for _, tv := range scratch {
			if g.tracked[tv] {
				g.adjacency[tv] = append(g.adjacency[tv], c)
				live = true
			}
		}
		if !live {
			g.orphaned = append(g.orphaned, c)
		}
	}
	return g
}

// ConstraintsFor returns the constraints adjacent to tv, in activation order.
func (g *Graph) ConstraintsFor(tv *TypeVariable) []*Constraint {
	return g.adjacency[tv]
}

// Orphaned returns the constraints that reference no tracked variable.
func (g *Graph) Orphaned() []*Constraint {
	return g.orphaned
}

// TakeOrphaned removes the orphaned constraints from the system's active set
// and returns them; each will be re-introduced by its own synthetic
// component so no constraint is silently dropped.
func (g *Graph) TakeOrphaned() []*Constraint {
	taken := g.orphaned
	for _, c := range taken {
		g.sys.RemoveConstraint(c)
	}
	g.orphaned = nil
	return taken
}

// find is union-find lookup with path compression.
func (g *Graph) find(tv *TypeVariable) *TypeVariable {
	root := tv
	for g.parent[root] != root {
		root = g.parent[root]
	}
	for g.parent[tv] != root {
		g.parent[tv], tv = root, g.parent[tv]
	}
	return root
}

func (g *Graph) union(a, b *TypeVariable) {
	ra, rb := g.find(a), g.find(b)
	if ra != rb {
		g.parent[rb] = ra
	}
}

// Optimize contracts edges implied by equivalence constraints between two
// tracked variables, shrinking the node set the component walk has to
// visit. Side effect only; solvability is untouched.
func (g *Graph) Optimize() {
	for _, c := range g.sys.Constraints() {
		if c.Disabled() {
			continue
		}
		switch c.Kind {
		case Bind, Equal:
			if c.First.IsVar() && c.Second.IsVar() &&
				g.tracked[c.First.Var] && g.tracked[c.Second.Var] {
				g.union(c.First.Var, c.Second.Var)
			}
		}
	}
}

// ConnectedComponents partitions the given variables: two variables share a
// component iff some active constraint references both, directly or
// transitively. It returns the component count and, per input variable, its
// component index. Indices are assigned by first appearance in the input
// order, so the result is deterministic for a deterministic input.
func (g *Graph) ConnectedComponents(vars []*TypeVariable) (int, []int) {
	for _, tv := range vars {
		if _, ok := g.parent[tv]; !ok {
			g.parent[tv] = tv
		}
	}

	var scratch []*TypeVariable
	for _, c := range g.sys.Constraints() {
		if c.Disabled() {
			continue
		}
		scratch = c.TypeVars(scratch[:0])
		var first *TypeVariable
		for _, tv := range scratch {
			if !g.tracked[tv] {
				continue
			}
			if first == nil {
				first = tv
				continue
			}
			g.union(first, tv)
		}
	}

	assignment := make([]int, len(vars))
	index := make(map[*TypeVariable]int, len(vars))
	count := 0
	for i, tv := range vars {
		root := g.find(tv)
		id, ok := index[root]
		if !ok {
			id = count
			index[root] = id
			count++
		}
		assignment[i] = id
	}
	return count, assignment
}
