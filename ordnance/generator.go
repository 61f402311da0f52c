// Package ordnance picks external bomb loadouts for bomb-capable units.
package ordnance

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/nstehr/quartermaster/config"
	"github.com/nstehr/quartermaster/model"
	"github.com/nstehr/quartermaster/munitions"
)

// Bias optionally reweights ordnance by the Bomb family's munition weights.
// A zero weight removes that ordnance from the draw.
type Bias interface {
	Weight(f munitions.Family, name string) (float64, bool)
}

// Request describes one generation pass.
type Request struct {
	Units    []*model.Unit // candidates; units that are not bombers are ignored
	Year     int
	AirToAir bool
	Quality  int // 0 (worst) .. 5 (best)
	Pirate   bool
	Bias     Bias
}

// Assignment is what one bomber received.
type Assignment struct {
	Unit    *model.Unit
	Table   string // loadout profile drawn, "" when the unit was left empty
	Budget  int    // bomb units available after reserves
	Loadout munitions.BombLoadout
}

// Generator draws loadouts from a request-scoped random source.
type Generator struct {
	cfg *config.Tuning
	rng *rand.Rand
}

// New returns a Generator.
func New(cfg *config.Tuning, rng *rand.Rand) *Generator {
	return &Generator{cfg: cfg, rng: rng}
}

// Generate writes a loadout into every bomber in req and returns the
// assignments in equip order. Units that cannot carry anything get an empty
// loadout.
func (g *Generator) Generate(req Request) []Assignment {
	var bombers []*model.Unit
	for _, u := range req.Units {
		if u.Bomber {
			bombers = append(bombers, u)
		}
	}
	if len(bombers) == 0 {
		return nil
	}
	// Unarmed bombers have no other job, so they load first.
	sort.SliceStable(bombers, func(i, j int) bool {
		return !bombers[i].Armed() && bombers[j].Armed()
	})

	minShare := g.cfg.Get(config.BomberSubsetMin)
	share := minShare + g.rng.Float64()*(1-minShare)
	equip := min(len(bombers), max(1, int(math.Ceil(share*float64(len(bombers))))))

	out := make([]Assignment, 0, len(bombers))
	for i, u := range bombers {
		a := Assignment{Unit: u}
		if i < equip {
			a.Budget = g.budget(u, req.AirToAir)
			if a.Budget > 0 {
				a.Table, a.Loadout = g.draw(req, a.Budget)
				g.downgrade(&a.Loadout, req)
			}
		}
		out = append(out, a)
	}

	g.addTargetingPods(out, req.Year)

	for _, a := range out {
		a.Unit.Bombs = a.Loadout
		slog.Debug("bomb loadout",
			"unit", a.Unit.DisplayName(),
			"table", a.Table,
			"budget", a.Budget,
			"units", a.Loadout.Units(),
			"bombs", a.Loadout.Named(),
		)
	}
	return out
}

// budget is the bomb units a unit can carry while keeping a thrust reserve.
func (g *Generator) budget(u *model.Unit, airToAir bool) int {
	reserve := g.cfg.Int(config.ArmedReserve)
	if !u.Armed() {
		reserve = g.cfg.Int(config.UnarmedReserve)
	}
	if airToAir {
		reserve--
	}
	reserve = max(1, reserve)

	byWeight := int(u.Weight / g.cfg.Get(config.TonsPerBombUnit))
	byThrust := (u.SafeThrust - reserve) * g.cfg.Int(config.BombUnitsPerMP)
	b := max(0, min(byWeight, byThrust))
	if u.Armed() && b > 0 {
		lo := g.cfg.Get(config.ArmedBudgetMin)
		b = int(float64(b) * (lo + g.rng.Float64()*(1-lo)))
	}
	return b
}

func (g *Generator) draw(req Request, budget int) (string, munitions.BombLoadout) {
	var l munitions.BombLoadout
	tables := tablesFor(req.Pirate, req.AirToAir)
	t := tables[g.pickTable(tables)]
	slots := workingSlots(t, req.Year, req.Bias)

	remaining := budget
	for attempts := g.cfg.Int(config.OrdnanceAttempts); attempts > 0 && remaining > 0 && len(slots) > 0; {
		b := g.pickSlot(slots)
		if cost := b.Cost(); cost <= remaining {
			l[b]++
			remaining -= cost
			continue
		}
		attempts--
	}

	if l.Empty() {
		fb := fallback(req.Year)
		l[fb] = budget / fb.Cost()
	}
	return t.name, l
}

// workingSlots copies a table's slots, moving the weight of ordnance that
// does not exist yet onto the rocket-or-HE fallback.
func workingSlots(t table, year int, bias Bias) []slot {
	weights := make(map[munitions.BombType]float64)
	var order []munitions.BombType
	add := func(b munitions.BombType, w float64) {
		if _, ok := weights[b]; !ok {
			order = append(order, b)
		}
		weights[b] += w
	}
	for _, s := range t.slots {
		b := s.bomb
		if !b.AvailableIn(year) {
			b = fallback(year)
		}
		w := s.weight
		if bias != nil {
			if bw, ok := bias.Weight(munitions.FamilyBomb, b.String()); ok {
				w *= bw
			}
		}
		add(b, w)
	}
	out := make([]slot, 0, len(order))
	for _, b := range order {
		if weights[b] > 0 {
			out = append(out, slot{b, weights[b]})
		}
	}
	return out
}

func fallback(year int) munitions.BombType {
	if munitions.BombRocket.AvailableIn(year) {
		return munitions.BombRocket
	}
	return munitions.BombHE
}

func (g *Generator) pickTable(tables []table) int {
	total := 0.0
	for _, t := range tables {
		total += t.weight
	}
	r := g.rng.Float64() * total
	for i, t := range tables {
		if r < t.weight {
			return i
		}
		r -= t.weight
	}
	return len(tables) - 1
}

func (g *Generator) pickSlot(slots []slot) munitions.BombType {
	total := 0.0
	for _, s := range slots {
		total += s.weight
	}
	r := g.rng.Float64() * total
	for _, s := range slots {
		if r < s.weight {
			return s.bomb
		}
		r -= s.weight
	}
	return slots[len(slots)-1].bomb
}

// downgrade swaps advanced ordnance, one bomb at a time, for the basic
// fallback. Poorer forces downgrade more often.
func (g *Generator) downgrade(l *munitions.BombLoadout, req Request) {
	q := min(max(req.Quality, 0), len(config.DowngradeChance)-1)
	chance := g.cfg.Get(config.DowngradeChance[q])
	fb := fallback(req.Year)
	for b := munitions.BombType(0); b < munitions.BombTypeCount; b++ {
		if !b.Advanced() {
			continue
		}
		for n := l[b]; n > 0; n-- {
			if g.rng.Float64() < chance {
				l[b]--
				l[fb]++
			}
		}
	}
}

// addTargetingPods gives some unguided bombers a TAG pod when anyone carries
// guided ordnance. At capacity a basic bomb is traded for the pod.
func (g *Generator) addTargetingPods(out []Assignment, year int) {
	if !munitions.BombTAG.AvailableIn(year) {
		return
	}
	guided := 0
	for _, a := range out {
		if a.Loadout.HasGuided() {
			guided++
		}
	}
	if guided == 0 {
		return
	}
	pods := 0
	limit := max(1, guided/2)
	for i := range out {
		if pods >= limit {
			return
		}
		a := &out[i]
		if a.Budget == 0 || a.Loadout.HasGuided() || a.Loadout[munitions.BombTAG] > 0 {
			continue
		}
		if a.Loadout.Units()+munitions.BombTAG.Cost() > a.Budget {
			traded := false
			for _, b := range basicBombs {
				if a.Loadout[b] > 0 {
					a.Loadout[b]--
					traded = true
					break
				}
			}
			if !traded {
				continue
			}
		}
		a.Loadout[munitions.BombTAG]++
		pods++
	}
}
