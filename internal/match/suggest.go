package match

import (
	"cmp"
	"slices"
)

// DefaultThreshold is the minimum similarity for a name to be suggested.
const DefaultThreshold = 0.5

// Suggestion is a known name ranked against an unknown one.
type Suggestion struct {
	Name     string
	Score    float64
	Distance int
}

// Rank scores every candidate against name and returns those reaching
// threshold, best first. Ties keep candidate order.
func Rank(name string, candidates []string, threshold float64) []Suggestion {
	var out []Suggestion

	for _, c := range candidates {
		score := Similarity(name, c)
		if score < threshold {
			continue
		}

		out = append(out, Suggestion{Name: c, Score: score, Distance: Distance(name, c)})
	}

	slices.SortStableFunc(out, func(a, b Suggestion) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}

		return cmp.Compare(a.Distance, b.Distance)
	})

	return out
}

// Closest returns the best candidate for name, if any is similar enough.
func Closest(name string, candidates []string) (string, bool) {
	ranked := Rank(name, candidates, DefaultThreshold)
	if len(ranked) == 0 {
		return "", false
	}

	return ranked[0].Name, true
}
