package registry

import (
	"github.com/agext/levenshtein"
)

// maxSuggestDistance bounds how far a suggestion may be from the input.
const maxSuggestDistance = 3

// Suggest returns the registered tag closest to tag, or "" when none is
// within a small edit distance.
func (r *Registry) Suggest(tag string) string {
	folded := foldTag(tag)
	best, bestDist := "", maxSuggestDistance+1
	for _, t := range r.Types() {
		d := levenshtein.Distance(folded, foldTag(t), nil)
		if d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}
