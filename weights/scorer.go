// Package weights ranks munitions per weapon family. Rules vote munitions
// up or down; the ranking feeds the imperative tree.
package weights

import (
	"log/slog"
	"maps"
	"sort"

	"github.com/nstehr/quartermaster/config"
	"github.com/nstehr/quartermaster/munitions"
)

// Scorer holds one weight table per family. It is owned by a single
// reconfiguration request and is not safe for concurrent use.
type Scorer struct {
	cfg    *config.Tuning
	tables map[munitions.Family]map[string]float64
}

// NewScorer seeds every family table from cfg.
func NewScorer(cfg *config.Tuning) *Scorer {
	s := &Scorer{cfg: cfg, tables: make(map[munitions.Family]map[string]float64)}
	for _, f := range munitions.Families() {
		s.tables[f] = seed(cfg, f)
	}
	return s
}

func seed(cfg *config.Tuning, f munitions.Family) map[string]float64 {
	scope := f.Key()
	def := cfg.Get(config.DefaultWeight, scope)
	table := make(map[string]float64)
	for _, name := range f.Munitions() {
		w := def
		switch name {
		case munitions.Standard:
			if f == munitions.FamilyATM {
				w = cfg.Get(config.ATMStandardWeight, scope)
			} else {
				w = cfg.Get(config.StandardWeight, scope)
			}
		case munitions.DeadFire:
			w = cfg.Get(config.DeadFireWeight, scope) * def
		case munitions.ArtemisCapable, munitions.ArtemisVCapable:
			w = cfg.Get(config.ArtemisWeight, scope)
		}
		table[name] = w
	}
	return table
}

// Adjust sets weight = weight*factor + increment for every name present in
// the family's table. Names the family does not carry are skipped.
func (s *Scorer) Adjust(f munitions.Family, names []string, factor, increment float64) {
	table := s.tables[f]
	for _, n := range names {
		if w, ok := table[n]; ok {
			table[n] = w*factor + increment
		}
	}
}

// Increase up-votes names in every family that carries them.
func (s *Scorer) Increase(names ...string) {
	for _, f := range munitions.Families() {
		scope := f.Key()
		s.Adjust(f, names, s.cfg.Get(config.IncreaseFactor, scope), s.cfg.Get(config.IncreaseIncrement, scope))
	}
}

// IncreaseBy applies Increase n times.
func (s *Scorer) IncreaseBy(n int, names ...string) {
	for range n {
		s.Increase(names...)
	}
}

// Decrease down-votes names in every family that carries them.
func (s *Scorer) Decrease(names ...string) {
	for _, f := range munitions.Families() {
		scope := f.Key()
		s.Adjust(f, names, s.cfg.Get(config.DecreaseFactor, scope), s.cfg.Get(config.DecreaseIncrement, scope))
	}
}

// Zero sets names to exactly 0 in every family that carries them.
func (s *Scorer) Zero(names ...string) {
	for _, f := range munitions.Families() {
		s.Adjust(f, names, 0, 0)
	}
}

// IncreaseGroup, DecreaseGroup and ZeroGroup vote a whole munition group.
func (s *Scorer) IncreaseGroup(g munitions.Group) { s.Increase(g.Members()...) }
func (s *Scorer) DecreaseGroup(g munitions.Group) { s.Decrease(g.Members()...) }
func (s *Scorer) ZeroGroup(g munitions.Group)     { s.Zero(g.Members()...) }

// Weight returns a munition's weight within a family.
func (s *Scorer) Weight(f munitions.Family, name string) (float64, bool) {
	w, ok := s.tables[f][name]
	return w, ok
}

// Family returns a copy of a family's table.
func (s *Scorer) Family(f munitions.Family) map[string]float64 {
	return maps.Clone(s.tables[f])
}

type entry struct {
	name   string
	weight float64
}

// TopN returns up to n munition names ordered by weight, highest first;
// equal weights order by name. Afterwards a single rescan promotes the first
// "Standard" found to the front if its weight equals the first element's.
// Ties between "Standard" and anything but the leading entry are not detected.
func (s *Scorer) TopN(f munitions.Family, n int) []string {
	table := s.tables[f]
	ordered := make([]entry, 0, len(table))
	for name, w := range table {
		ordered = append(ordered, entry{name, w})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].weight != ordered[j].weight {
			return ordered[i].weight > ordered[j].weight
		}
		return ordered[i].name < ordered[j].name
	})

	for i := 1; i < len(ordered); i++ {
		if ordered[i].name == munitions.Standard && ordered[i].weight == ordered[0].weight {
			std := ordered[i]
			copy(ordered[1:i+1], ordered[:i])
			ordered[0] = std
			break
		}
	}

	if n > len(ordered) {
		n = len(ordered)
	}
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	for i := range out {
		out[i] = ordered[i].name
	}
	return out
}

// AllTopN applies TopN to every family.
func (s *Scorer) AllTopN(n int) map[munitions.Family][]string {
	out := make(map[munitions.Family][]string, len(s.tables))
	for _, f := range munitions.Families() {
		out[f] = s.TopN(f, n)
	}
	return out
}

// Clone returns an independent copy sharing the tuning source.
func (s *Scorer) Clone() *Scorer {
	c := &Scorer{cfg: s.cfg, tables: make(map[munitions.Family]map[string]float64, len(s.tables))}
	for f, t := range s.tables {
		c.tables[f] = maps.Clone(t)
	}
	return c
}

// LogState dumps every family's leading munitions at debug level.
func (s *Scorer) LogState(n int) {
	for _, f := range munitions.Families() {
		slog.Debug("munition weights", "family", f.String(), "top", s.TopN(f, n))
	}
}
