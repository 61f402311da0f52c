package munitions

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a real name before
// we stop guessing.
const maxSuggestDistance = 4

// SuggestMunition returns the closest known munition name to a misspelled one,
// or "" if nothing is close enough.
func (c *Catalog) SuggestMunition(name string) string {
	var candidates []string
	for _, f := range Families() {
		candidates = append(candidates, f.Munitions()...)
	}
	return closest(name, candidates)
}

// SuggestAmmo returns the closest catalogue ammo name, or "".
func (c *Catalog) SuggestAmmo(name string) string {
	candidates := make([]string, 0, len(c.types))
	for _, at := range c.types {
		candidates = append(candidates, at.Name)
	}
	return closest(name, candidates)
}

func closest(name string, candidates []string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, cand := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(cand))
		if d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}
