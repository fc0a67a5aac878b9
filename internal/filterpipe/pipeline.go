package filterpipe

// Pipeline applies an ordered chain of FilterKinds to a candidate word.
// Length bounds are deliberately not part of the pipeline: per spec §4.2,
// min/max word length are applied by the caller, after the pipeline, on
// the word's final form.
type Pipeline struct {
	kinds []FilterKind
}

func NewPipeline(kinds []FilterKind) Pipeline {
	return Pipeline{kinds: kinds}
}

// Apply runs the pipeline against word, returning the transformed word and
// whether it survives. A rejector short-circuits the remaining filters.
func (p Pipeline) Apply(word string) (string, bool) {
	current := word
	for _, k := range p.kinds {
		if k == None {
			continue
		}
		if k.isTransform() {
			current = applyTransform(k, current)
			continue
		}
		if reject(k, current) {
			return "", false
		}
	}
	return current, true
}
