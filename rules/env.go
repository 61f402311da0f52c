package rules

import (
	"slices"
	"strings"

	"github.com/nstehr/quartermaster/model"
)

// SideCounts tallies one side's composition and capabilities.
type SideCounts struct {
	Total           int
	Fliers          int
	Bombers         int
	Infantry        int
	BattleArmor     int
	Vehicles        int
	Meks            int
	EnergyBoats     int
	MissileBoats    int
	TAGs            int
	NARCs           int
	AdvancedArmor   int
	ReflectiveArmor int
	FireproofArmor  int
	FastMovers      int
	OffBoard        int
	ECMs            int
	TSMs            int
}

// Fraction is n as a share of the side's total, 0 for an empty side.
func (c SideCounts) Fraction(n int) float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(n) / float64(c.Total)
}

// Params is the battlefield summary every planner rule reads. Methods on
// Params are callable from rule conditions.
type Params struct {
	Friendly       SideCounts
	Enemy          SideCounts
	Faction        string
	EnemyFactions  []string
	Year           int
	Dark           bool
	EnemiesVisible bool
	GroundMap      bool
	NukesBanned    bool
	TrueRandom     bool
	Pirate         bool
	Quality        int
	FillRatio      float64
}

// EnemyFraction is n over the enemy total.
func (p Params) EnemyFraction(n int) float64 { return p.Enemy.Fraction(n) }

// FriendlyFraction is n over the friendly total.
func (p Params) FriendlyFraction(n int) float64 { return p.Friendly.Fraction(n) }

// Ratio is friendly:enemy unit count, 0 when no enemies are known.
func (p Params) Ratio() float64 {
	if p.Enemy.Total == 0 {
		return 0
	}
	return float64(p.Friendly.Total) / float64(p.Enemy.Total)
}

// EnemyFaction reports whether any enemy team belongs to faction f.
func (p Params) EnemyFaction(f string) bool {
	return slices.ContainsFunc(p.EnemyFactions, func(e string) bool {
		return strings.EqualFold(e, f)
	})
}

// IsFaction reports whether the reconfigured side belongs to faction f.
func (p Params) IsFaction(f string) bool { return strings.EqualFold(p.Faction, f) }

// YearBetween reports whether the game year lies in [from, to].
func (p Params) YearBetween(from, to int) bool { return p.Year >= from && p.Year <= to }

// Input is what Analyze projects into Params.
type Input struct {
	Own           []*model.Unit
	Enemy         []*model.Unit
	Environment   model.Environment
	Options       model.Options
	Faction       string
	EnemyFactions []string
	Quality       int
	Pirate        bool
	FastWalkMP    int // walk MP above which a unit counts as a fast mover
}

// Analyze is a read-only projection of the battlefield. With blind drop
// active, enemy counts and factions are withheld and EnemiesVisible is false.
func Analyze(in Input) Params {
	p := Params{
		Friendly:       Count(in.Own, in.FastWalkMP),
		Faction:        in.Faction,
		Year:           in.Environment.Year,
		Dark:           in.Environment.Dark,
		GroundMap:      in.Environment.GroundMap,
		NukesBanned:    in.Options.NukesBanned,
		TrueRandom:     in.Options.TrueRandom,
		Pirate:         in.Pirate,
		Quality:        in.Quality,
		FillRatio:      1,
		EnemiesVisible: !in.Options.BlindDrop,
	}
	if p.EnemiesVisible {
		p.Enemy = Count(in.Enemy, in.FastWalkMP)
		p.EnemyFactions = slices.Clone(in.EnemyFactions)
	}
	return p
}

// Count tallies a unit list in a single pass.
func Count(units []*model.Unit, fastWalkMP int) SideCounts {
	var c SideCounts
	for _, u := range units {
		c.Total++
		if u.Kind.Flier() {
			c.Fliers++
		}
		if u.Bomber {
			c.Bombers++
		}
		switch u.Kind {
		case model.KindInfantry:
			c.Infantry++
		case model.KindBattleArmor:
			c.BattleArmor++
		case model.KindMek:
			c.Meks++
		}
		if u.Kind.Vehicle() {
			c.Vehicles++
		}
		if u.TracksHeat && u.Armed() && len(u.Bins) == 0 {
			c.EnergyBoats++
		}
		if u.HasRole(model.RoleMissileBoat) || u.MissileFraction() >= 0.5 {
			c.MissileBoats++
		}
		if u.HasEquipment(model.EquipTAG) {
			c.TAGs++
		}
		if u.HasEquipment(model.EquipNarc) {
			c.NARCs++
		}
		if u.HasArmor(model.ArmorHardened, model.ArmorFerroLamellor, model.ArmorReactive) {
			c.AdvancedArmor++
		}
		if u.HasArmor(model.ArmorReflective) {
			c.ReflectiveArmor++
		}
		if u.HasArmor(model.ArmorFireResistant, model.ArmorBARFireRes) {
			c.FireproofArmor++
		}
		if u.WalkMP > fastWalkMP {
			c.FastMovers++
		}
		if u.OffBoard {
			c.OffBoard++
		}
		if u.HasEquipment(model.EquipECM) {
			c.ECMs++
		}
		if u.HasEquipment(model.EquipTSM) {
			c.TSMs++
		}
	}
	return c
}
