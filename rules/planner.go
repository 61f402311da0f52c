package rules

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/nstehr/quartermaster/config"
	"github.com/nstehr/quartermaster/imperative"
	"github.com/nstehr/quartermaster/model"
	"github.com/nstehr/quartermaster/munitions"
	"github.com/nstehr/quartermaster/weights"
)

var wildcardKeys = []string{imperative.Wildcard, imperative.Wildcard, imperative.Wildcard}

// caselessCalibers pairs each autocannon bin type with the bins-per-barrel
// ratio at or below which caseless rounds are requested.
var caselessCalibers = []struct {
	bin string
	key config.Key
}{
	{"AC/2", config.CaselessAC2},
	{"AC/5", config.CaselessAC5},
	{"AC/10", config.CaselessAC10},
	{"AC/20", config.CaselessAC20},
}

// Planner turns battlefield Params into imperatives: it runs the rule
// sequence over a Scorer, materializes the ranking, then layers per-unit
// special cases on top.
type Planner struct {
	cfg    *config.Tuning
	engine *Engine
}

// NewPlanner compiles the rule sequence for cfg.
func NewPlanner(cfg *config.Tuning) (*Planner, error) {
	engine, err := NewEngine(CompileRules(cfg))
	if err != nil {
		return nil, err
	}
	return &Planner{cfg: cfg, engine: engine}, nil
}

// Engine exposes the compiled rule sequence.
func (pl *Planner) Engine() *Engine { return pl.engine }

// Plan runs every planning step and returns the names of the rules that fired.
func (pl *Planner) Plan(p Params, s *weights.Scorer, tree *imperative.Tree, units []*model.Unit) []string {
	fired := pl.engine.Apply(p, s)
	pl.Materialize(s, tree)
	pl.ApplyUnitOverrides(tree, units)
	return fired
}

// Materialize writes each family's top-ranked munitions as wildcard
// imperatives under every bin type the family owns. Munitions with a
// non-positive weight are left out; a family with none is not written.
func (pl *Planner) Materialize(s *weights.Scorer, tree *imperative.Tree) {
	n := pl.cfg.Int(config.TopN)
	payload := make(map[string]string)
	for f, ranked := range s.AllTopN(n) {
		var keep []string
		for _, name := range ranked {
			if w, _ := s.Weight(f, name); w > 0 {
				keep = append(keep, name)
			}
		}
		if len(keep) == 0 {
			slog.Debug("family has no positive weights", "family", f.String())
			continue
		}
		imp := imperative.Join(keep)
		for _, bin := range f.BinTypes() {
			payload[bin] = imp
		}
	}
	tree.Insert(wildcardKeys, payload)
}

// ApplyUnitOverrides adds caseless and Artemis imperatives for units that
// qualify. A unit's node receives the wildcard payload first so its other
// bins keep resolving.
func (pl *Planner) ApplyUnitOverrides(tree *imperative.Tree, units []*model.Unit) {
	for _, u := range units {
		overrides := pl.unitOverrides(tree, u)
		if len(overrides) == 0 {
			continue
		}
		payload := make(map[string]string)
		if wild := tree.Retrieve(wildcardKeys...); wild != nil {
			maps.Copy(payload, wild.Imperatives())
		}
		if own := tree.Retrieve(u.ImperativeKeys()...); own != nil {
			maps.Copy(payload, own.Imperatives())
		}
		maps.Copy(payload, overrides)
		tree.Insert(u.ImperativeKeys(), payload)
		slog.Debug("unit imperatives overridden", "unit", u.DisplayName(), "overrides", overrides)
	}
}

func (pl *Planner) unitOverrides(tree *imperative.Tree, u *model.Unit) map[string]string {
	node := tree.Retrieve(u.ImperativeKeys()...)
	current := func(bin string) []string {
		if node == nil {
			return nil
		}
		return node.PriorityListFor(bin)
	}

	out := make(map[string]string)
	for _, c := range caselessCalibers {
		barrels := u.WeaponCount(c.bin)
		bins := u.BinCount(c.bin)
		if barrels == 0 || bins == 0 {
			continue
		}
		if float64(bins)/float64(barrels) <= pl.cfg.Get(c.key) {
			out[c.bin] = imperative.Join(prepend(current(c.bin), munitions.Caseless))
		}
	}

	artemis := ""
	switch {
	case u.HasEquipment(model.EquipArtemisV):
		artemis = munitions.ArtemisVCapable
	case u.HasEquipment(model.EquipArtemisIV):
		artemis = munitions.ArtemisCapable
	}
	if artemis != "" {
		for _, b := range u.Bins {
			if b.Type == nil || !artemisKind(b.Type.Kind) {
				continue
			}
			key := b.BinName()
			if _, done := out[key]; done {
				continue
			}
			out[key] = imperative.Join(substituteStandard(current(key), artemis))
		}
	}
	return out
}

func artemisKind(kind string) bool {
	switch strings.ToUpper(kind) {
	case "LRM", "SRM", "MML":
		return true
	}
	return false
}

// prepend puts name first unless it already leads the list.
func prepend(list []string, name string) []string {
	if len(list) > 0 && list[0] == name {
		return slices.Clone(list)
	}
	return append([]string{name}, list...)
}

// substituteStandard replaces "Standard" with name, or puts name first when
// the list has no "Standard".
func substituteStandard(list []string, name string) []string {
	if i := slices.Index(list, munitions.Standard); i >= 0 {
		out := slices.Clone(list)
		out[i] = name
		return out
	}
	return prepend(list, name)
}
