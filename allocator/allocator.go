// Package allocator loads a unit's ammo bins from the imperative tree.
package allocator

import (
	"log/slog"
	"maps"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/nstehr/quartermaster/imperative"
	"github.com/nstehr/quartermaster/model"
	"github.com/nstehr/quartermaster/munitions"
)

// Options carries the per-request switches allocation reads.
type Options struct {
	Legality     munitions.LegalityContext
	NukesBanned  bool
	TrueRandom   bool    // Random may draw utility munitions
	RandomizeAll bool    // bins with no imperative get a Random draw
	FillRatio    float64 // share of each bin to load; <= 0 or >= 1 leaves bins full
}

// Summary counts what one Allocate call did.
type Summary struct {
	Assigned  int // bins filled from a priority entry
	Defaulted int // bins filled with the group's default type
	Untouched int // bins left as they were
}

// Allocator resolves imperative entries to concrete ammo types and writes
// them into bins. It holds the request's random source and must not be
// shared across goroutines.
type Allocator struct {
	catalog  *munitions.Catalog
	legality munitions.Legality
	rng      *rand.Rand
}

// New returns an Allocator drawing "Random" substitutions from rng.
func New(cat *munitions.Catalog, legality munitions.Legality, rng *rand.Rand) *Allocator {
	return &Allocator{catalog: cat, legality: legality, rng: rng}
}

// group is every bin on a unit sharing tech base and launcher.
type group struct {
	key      string
	launcher *munitions.AmmoType // type the first bin held before allocation
	bins     []*model.AmmoBin
}

func groupBins(u *model.Unit) []*group {
	var groups []*group
	byKey := make(map[string]*group)
	for _, b := range u.Bins {
		if b.Type == nil {
			continue
		}
		key := b.Type.Tech.Prefix() + " " + b.BinName()
		g, ok := byKey[key]
		if !ok {
			g = &group{key: key, launcher: b.Type}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.bins = append(g.bins, b)
	}
	return groups
}

// Allocate fills u's bins from tree and applies the fill ratio. Unresolvable
// entries are skipped; nothing here fails.
func (a *Allocator) Allocate(u *model.Unit, tree *imperative.Tree, opts Options) Summary {
	var sum Summary
	node := tree.Retrieve(u.ImperativeKeys()...)
	legal := opts.Legality
	legal.Clan = u.Clan

	for _, g := range groupBins(u) {
		var priorities []string
		var counts map[string]int
		if node != nil {
			priorities = node.PriorityListFor(g.launcher.BinName)
			counts = maps.Clone(node.CountsFor(g.launcher.BinName))
		}
		if len(priorities) == 0 {
			if !opts.RandomizeAll {
				sum.Untouched += len(g.bins)
				continue
			}
			priorities = slices.Repeat([]string{munitions.Random}, len(g.bins))
			counts = map[string]int{munitions.Random: len(g.bins)}
		}
		a.fillGroup(u, g, priorities, counts, legal, opts, &sum)
	}

	clampShots(u, opts.FillRatio)
	return sum
}

func (a *Allocator) fillGroup(u *model.Unit, g *group, priorities []string, counts map[string]int, legal munitions.LegalityContext, opts Options, sum *Summary) {
	pending := g.bins
	var fallback *munitions.AmmoType

	for _, entry := range priorities {
		if len(pending) == 0 {
			break
		}
		name := entry
		random := strings.EqualFold(entry, munitions.Random)
		if random {
			// Random repeats again in the list for each further bin it wants,
			// and every occurrence draws afresh.
			name = a.randomMunition(g, legal, opts)
			if name == "" {
				slog.Debug("no random munition available", "unit", u.DisplayName(), "bin", g.key)
				continue
			}
		}

		at := a.resolve(g, name, legal, opts)
		if at == nil {
			slog.Debug("munition not available", "unit", u.DisplayName(), "bin", g.key, "munition", name)
			continue
		}
		if fallback == nil {
			fallback = at
		}

		for counts[entry] > 0 && len(pending) > 0 {
			bin := pending[0]
			if !munitions.Compatible(bin.Type, at) {
				slog.Warn("ammo not compatible with mount", "unit", u.DisplayName(), "bin", bin.ID, "current", bin.Type.Name, "wanted", at.Name)
				break
			}
			bin.Assign(at)
			counts[entry]--
			pending = pending[1:]
			sum.Assigned++
			if random {
				break
			}
		}
	}

	for _, bin := range pending {
		if fallback == nil || !munitions.Compatible(bin.Type, fallback) {
			sum.Untouched++
			continue
		}
		bin.Assign(fallback)
		sum.Defaulted++
	}
}

// resolve finds the concrete ammo type for a munition name on g's launcher.
// Standard rounds are looked up by constructed name; everything else is
// filtered from the launcher's valid munitions and checked for legality.
func (a *Allocator) resolve(g *group, name string, legal munitions.LegalityContext, opts Options) *munitions.AmmoType {
	tech := g.launcher.Tech
	if strings.EqualFold(name, munitions.Standard) {
		return a.catalog.Standard(tech, g.launcher.BinName)
	}
	prefix := tech.Prefix() + " "
	for _, cand := range a.catalog.ValidMunitions(g.launcher) {
		if !strings.HasPrefix(cand.Name, prefix) {
			continue
		}
		if !strings.Contains(cand.Name, g.launcher.BinName) {
			continue
		}
		if !strings.EqualFold(cand.Munition, name) {
			continue
		}
		if a.allowed(cand, legal, opts) {
			return cand
		}
	}
	return nil
}

func (a *Allocator) allowed(at *munitions.AmmoType, legal munitions.LegalityContext, opts Options) bool {
	if at.Nuclear && opts.NukesBanned {
		return false
	}
	return a.legality.IsLegal(at, legal)
}

// randomMunition draws a legal munition name for g's launcher. Utility
// munitions are only eligible with TrueRandom.
func (a *Allocator) randomMunition(g *group, legal munitions.LegalityContext, opts Options) string {
	prefix := g.launcher.Tech.Prefix() + " "
	var names []string
	seen := make(map[string]bool)
	for _, cand := range a.catalog.ValidMunitions(g.launcher) {
		if !strings.HasPrefix(cand.Name, prefix) || seen[cand.Munition] {
			continue
		}
		if !opts.TrueRandom && munitions.GroupUtility.Contains(cand.Munition) {
			continue
		}
		if !cand.IsStandard() && !a.allowed(cand, legal, opts) {
			continue
		}
		seen[cand.Munition] = true
		names = append(names, cand.Munition)
	}
	if len(names) == 0 {
		return ""
	}
	return names[a.rng.IntN(len(names))]
}

// clampShots loads every bin to ceil(ratio*max) when ratio is below 1.
func clampShots(u *model.Unit, ratio float64) {
	if ratio <= 0 || ratio >= 1 {
		return
	}
	for _, b := range u.Bins {
		b.Shots = min(b.MaxShots, int(math.Ceil(ratio*float64(b.MaxShots))))
	}
}
