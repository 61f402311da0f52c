package ordnance

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/quartermaster/config"
	"github.com/nstehr/quartermaster/model"
	"github.com/nstehr/quartermaster/munitions"
)

func fighter(name string, weight float64, thrust int, armed bool) *model.Unit {
	u := &model.Unit{Chassis: name, Model: "A", Kind: model.KindAerospace, Bomber: true, Weight: weight, SafeThrust: thrust}
	if armed {
		u.Weapons = []model.Weapon{{Name: "Medium Laser"}}
	}
	return u
}

func cost(l munitions.BombLoadout) int { return l.Units() }

func TestGenerate_BudgetRespected(t *testing.T) {
	for seed := range uint64(200) {
		g := New(config.New(), rand.New(rand.NewPCG(seed, seed^0x9e3779b9)))
		units := []*model.Unit{
			fighter("Shilone", 65, 6, true),
			fighter("Lucifer", 65, 5, false),
			fighter("Sparrowhawk", 30, 7, true),
			fighter("Stuka", 100, 4, true),
		}
		out := g.Generate(Request{Units: units, Year: 3075, Quality: int(seed % 6)})
		for _, a := range out {
			require.LessOrEqual(t, cost(a.Loadout), a.Budget, "seed %d unit %s loadout %v", seed, a.Unit.Chassis, a.Loadout.Named())
			assert.Equal(t, a.Loadout, a.Unit.Bombs)
		}
	}
}

func TestGenerate_ZeroBudget(t *testing.T) {
	g := New(config.New(), rand.New(rand.NewPCG(1, 1)))
	// Safe thrust at or below the reserve leaves nothing to carry.
	u := fighter("Seydlitz", 20, 2, true)
	out := g.Generate(Request{Units: []*model.Unit{u}, Year: 3060, Quality: 3})
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Budget)
	assert.True(t, out[0].Loadout.Empty())
	assert.True(t, u.Bombs.Empty())
}

func TestGenerate_IgnoresNonBombers(t *testing.T) {
	g := New(config.New(), rand.New(rand.NewPCG(1, 1)))
	mek := &model.Unit{Chassis: "Atlas", Kind: model.KindMek}
	assert.Nil(t, g.Generate(Request{Units: []*model.Unit{mek}, Year: 3060}))
}

func TestGenerate_UnarmedFirst(t *testing.T) {
	g := New(config.New(), rand.New(rand.NewPCG(3, 4)))
	armed := fighter("Slayer", 80, 6, true)
	unarmed := fighter("Cargo", 80, 6, false)
	out := g.Generate(Request{Units: []*model.Unit{armed, unarmed}, Year: 3060})
	require.Len(t, out, 2)
	assert.Same(t, unarmed, out[0].Unit)
	assert.Greater(t, out[0].Budget, 0, "the first-equipped unit always gets a budget")
}

func TestBudget(t *testing.T) {
	g := New(config.New(), rand.New(rand.NewPCG(1, 1)))
	tests := []struct {
		name     string
		u        *model.Unit
		airToAir bool
		want     int
	}{
		{"unarmed limited by weight", fighter("A", 30, 10, false), false, 6},
		{"unarmed limited by thrust", fighter("B", 100, 4, false), false, 10},
		{"air-to-air lowers reserve", fighter("C", 100, 4, false), true, 15},
		{"below reserve", fighter("D", 100, 2, false), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.budget(tt.u, tt.airToAir))
		})
	}

	armed := fighter("E", 100, 7, true)
	for range 20 {
		b := g.budget(armed, false)
		assert.GreaterOrEqual(t, b, 10)
		assert.LessOrEqual(t, b, 20)
	}
}

func TestWorkingSlotsYearFallback(t *testing.T) {
	// Before rocket launcher pods exist, missing ordnance falls back to HE.
	slots := workingSlots(groundTables[0], 2700, nil)
	weights := map[munitions.BombType]float64{}
	for _, s := range slots {
		weights[s.bomb] = s.weight
	}
	_, hasRL := weights[munitions.BombRocket]
	assert.False(t, hasRL)
	assert.Equal(t, 9.0, weights[munitions.BombHE], "HE 5 plus the RL 4 it replaces")

	slots = workingSlots(groundTables[0], 3070, nil)
	for _, s := range slots {
		if s.bomb == munitions.BombRocket {
			assert.Equal(t, 4.0, s.weight)
		}
	}
}

type fixedBias map[string]float64

func (b fixedBias) Weight(_ munitions.Family, name string) (float64, bool) {
	w, ok := b[name]
	return w, ok
}

func TestWorkingSlotsBias(t *testing.T) {
	slots := workingSlots(groundTables[0], 3070, fixedBias{"Inferno": 0, "HE": 2})
	for _, s := range slots {
		assert.NotEqual(t, munitions.BombInferno, s.bomb, "zero bias drops the slot")
		if s.bomb == munitions.BombHE {
			assert.Equal(t, 10.0, s.weight)
		}
	}
}

func TestDowngrade(t *testing.T) {
	cfg := config.FromMap(map[string]any{"downgradeChanceQ0": 1.0, "downgradeChanceQ5": 0.0})
	g := New(cfg, rand.New(rand.NewPCG(5, 6)))

	var l munitions.BombLoadout
	l[munitions.BombLaserGuided] = 3
	l[munitions.BombHE] = 1
	g.downgrade(&l, Request{Year: 3070, Quality: 0})
	assert.Equal(t, 0, l[munitions.BombLaserGuided])
	assert.Equal(t, 3, l[munitions.BombRocket])
	assert.Equal(t, 1, l[munitions.BombHE])

	l = munitions.BombLoadout{}
	l[munitions.BombArrowIV] = 2
	g.downgrade(&l, Request{Year: 3070, Quality: 5})
	assert.Equal(t, 2, l[munitions.BombArrowIV])
}

func TestTargetingPods(t *testing.T) {
	g := New(config.New(), rand.New(rand.NewPCG(1, 1)))
	var guided, full, roomy munitions.BombLoadout
	guided[munitions.BombLaserGuided] = 2
	full[munitions.BombHE] = 4
	roomy[munitions.BombHE] = 1

	out := []Assignment{
		{Budget: 4, Loadout: guided},
		{Budget: 4, Loadout: full},
		{Budget: 4, Loadout: roomy},
	}
	g.addTargetingPods(out, 3060)

	assert.Equal(t, 0, out[0].Loadout[munitions.BombTAG], "guided carriers need no pod")
	assert.Equal(t, 1, out[1].Loadout[munitions.BombTAG])
	assert.Equal(t, 3, out[1].Loadout[munitions.BombHE], "full load trades a basic bomb")
	assert.Equal(t, 0, out[2].Loadout[munitions.BombTAG], "only max(1, guided/2) pods")
	for _, a := range out {
		assert.LessOrEqual(t, a.Loadout.Units(), a.Budget)
	}
}

func TestPickTableDistribution(t *testing.T) {
	g := New(config.New(), rand.New(rand.NewPCG(7, 8)))
	counts := map[string]int{}
	for range 4000 {
		counts[groundTables[g.pickTable(groundTables)].name]++
	}
	// 40% expected for Normal; allow generous slack.
	assert.InDelta(t, 1600, counts["Normal"], 200)
	assert.Len(t, counts, 4)
}

func TestDrawFallsBackToFullLoad(t *testing.T) {
	// Zeroing every ordnance type leaves no slot to draw from.
	nothing := fixedBias{}
	for b := munitions.BombType(0); b < munitions.BombTypeCount; b++ {
		nothing[b.String()] = 0
	}
	tests := []struct {
		name string
		year int
		want munitions.BombType
	}{
		{"before rocket pods", 3050, munitions.BombHE},
		{"after rocket pods", 3070, munitions.BombRocket},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(config.New(), rand.New(rand.NewPCG(2, 3)))
			_, l := g.draw(Request{Year: tt.year, Bias: nothing}, 6)
			assert.Equal(t, tt.want, fallback(tt.year))
			assert.Equal(t, 6, l[tt.want])
			assert.Equal(t, 6, l.Units())
		})
	}
}

// countingSource counts the words drawn from the wrapped source.
type countingSource struct {
	rand.Source
	n int
}

func (c *countingSource) Uint64() uint64 {
	c.n++
	return c.Source.Uint64()
}

func TestDrawStopsWhenNothingIsAffordable(t *testing.T) {
	// In the air tables only rockets cost one unit; without them every
	// draw overshoots a one-unit budget.
	src := &countingSource{Source: rand.NewPCG(4, 5)}
	cfg := config.FromMap(map[string]any{"ordnanceAttempts": 7})
	g := New(cfg, rand.New(src))

	table, l := g.draw(Request{Year: 3075, AirToAir: true, Bias: fixedBias{"RL": 0}}, 1)

	assert.Contains(t, []string{"Anti-Air", "Anti-Ship"}, table)
	assert.Equal(t, 1+7, src.n, "one table draw, then one slot draw per attempt")
	assert.Equal(t, 1, l[munitions.BombRocket], "empty draw forces the fallback")
	assert.Equal(t, 1, l.Units())
}
