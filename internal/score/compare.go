package score

// Weights is a pluggable comparison policy: the order in which score
// dimensions are consulted. Earlier entries dominate later ones; the base
// cost always breaks the final tie.
type Weights [NumKinds]Kind

// DefaultWeights compares dimensions in declaration order, which mirrors the
// severity ranking the surrounding type checker expects.
var DefaultWeights = Weights{
	Unavailable,
	Fix,
	ForceUnchecked,
	FunctionConversion,
	ValueToOptional,
}

// LessBy compares two scores under the given weight order.
func (s Score) LessBy(o Score, w Weights) bool {
	for _, k := range w {
		if s.Data[k] != o.Data[k] {
			return s.Data[k] < o.Data[k]
		}
	}
	return s.Value < o.Value
}

// Less compares two scores under DefaultWeights.
func (s Score) Less(o Score) bool {
	return s.LessBy(o, DefaultWeights)
}
