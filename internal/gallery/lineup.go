package gallery

// Lineup is an immutable ordered sequence of resolved models.
type Lineup struct {
	models []ResolvedModel
}

// NewLineup copies models into a new lineup.
func NewLineup(models []ResolvedModel) Lineup {
	return Lineup{models: append([]ResolvedModel(nil), models...)}
}

// Len returns the number of models.
func (l Lineup) Len() int {
	return len(l.models)
}

// At returns the model at index i.
func (l Lineup) At(i int) ResolvedModel {
	return l.models[i]
}

// Models returns a copy of the underlying sequence.
func (l Lineup) Models() []ResolvedModel {
	return append([]ResolvedModel(nil), l.models...)
}

// Pairs calls fn for every adjacent (previous, current) pair in order,
// stopping early if fn returns false. Lineups shorter than two never call fn.
func (l Lineup) Pairs(fn func(prev, cur ResolvedModel) bool) {
	for i := 1; i < len(l.models); i++ {
		if !fn(l.models[i-1], l.models[i]) {
			return
		}
	}
}
