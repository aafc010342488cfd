package constraint

import (
	"fmt"
	"sort"
	"strings"

	"solvent/internal/score"
	"solvent/internal/types"
)

// Solution is an immutable record of variable bindings plus the score
// accumulated to reach them. Solutions are produced only at leaves of the
// search and never mutated afterwards; the Score field is adjusted once by
// the component step that normalizes partial solutions against its baseline.
type Solution struct {
	Bindings map[*TypeVariable]types.TypeID
	Score    score.Score
}

// TypeOf reports the bound type for tv.
func (s *Solution) TypeOf(tv *TypeVariable) (types.TypeID, bool) {
	ty, ok := s.Bindings[tv]
	return ty, ok
}

// String renders bindings in variable-ID order for stable output.
func (s *Solution) String() string {
	vars := make([]*TypeVariable, 0, len(s.Bindings))
	for tv := range s.Bindings {
		vars = append(vars, tv)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].ID < vars[j].ID })
	parts := make([]string, 0, len(vars))
	for _, tv := range vars {
		parts = append(parts, fmt.Sprintf("%v=#%d", tv, s.Bindings[tv]))
	}
	return "{" + strings.Join(parts, " ") + "} " + s.Score.String()
}
