package matcher

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/agentstation/pedigreecheck/pkg/normalize"
	"github.com/agentstation/pedigreecheck/pkg/registry"
)

type nearMatcher struct {
	threshold int
}

// Similarity returns a 0-100 ratio of a and b based on their edit distance
// over the combined length.
func Similarity(a, b string) int {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (total - dist) * 100 / total
}

// closest returns the reference person whose normalized "surname first-name"
// is most similar to full, when that similarity reaches the threshold.
// Ties keep the earliest row.
func (n *nearMatcher) closest(full string, rows []personRow) (registry.Person, int, bool) {
	if full == "" {
		return registry.Person{}, 0, false
	}
	bestScore := -1
	var best registry.Person
	for _, r := range rows {
		candidate := normalize.Name(string(r.surname), string(r.firstName))
		if candidate == "" {
			continue
		}
		if score := Similarity(full, candidate); score > bestScore {
			bestScore = score
			best = r.person
		}
	}
	if bestScore < n.threshold {
		return registry.Person{}, 0, false
	}
	return best, bestScore, true
}
