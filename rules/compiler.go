package rules

import (
	"fmt"

	"github.com/nstehr/quartermaster/config"
	"github.com/nstehr/quartermaster/munitions"
)

// CompileRules generates the planner's fixed rule sequence. Thresholds come
// from cfg and are interpolated via fmt.Sprintf, so the compiler never
// generates invalid expr.
func CompileRules(cfg *config.Tuning) []*Rule {
	var rules []*Rule

	// --- Illumination ---

	rules = append(rules, &Rule{
		Name:         "illumination-dark",
		Priority:     1000,
		ConditionSrc: `Dark`,
		Action:       increaseGroups(munitions.GroupIllumination),
	})

	rules = append(rules, &Rule{
		Name:         "illumination-lit",
		Priority:     1000,
		ConditionSrc: `!Dark`,
		Action:       decreaseGroups(munitions.GroupIllumination),
	})

	// --- Enemy composition ---
	// Every rule here is gated on EnemiesVisible; blind drops skip them all.

	rules = append(rules, &Rule{
		Name:         "ammo-reducing-outnumbered",
		Priority:     960,
		ConditionSrc: fmt.Sprintf(`EnemiesVisible && Enemy.Total > 0 && Ratio() <= %g`, cfg.Get(config.AmmoReducingLowRatio)),
		Action:       decreaseGroups(munitions.GroupAmmoReducing),
	})

	rules = append(rules, &Rule{
		Name:         "ammo-reducing-outnumbering",
		Priority:     960,
		ConditionSrc: fmt.Sprintf(`EnemiesVisible && Enemy.Total > 0 && Ratio() >= %g`, cfg.Get(config.AmmoReducingHighRatio)),
		Action:       increaseGroups(munitions.GroupAmmoReducing),
	})

	rules = append(rules, &Rule{
		Name:         "flak-vs-fliers",
		Priority:     950,
		ConditionSrc: `EnemiesVisible && Enemy.Fliers > 0`,
		Action:       increaseGroups(munitions.GroupFlak),
	})

	rules = append(rules, &Rule{
		Name:         "flak-vs-bombers",
		Priority:     950,
		ConditionSrc: `EnemiesVisible && Enemy.Bombers > 0`,
		Action:       increaseGroups(munitions.GroupFlak),
	})

	rules = append(rules, &Rule{
		Name:         "accuracy-vs-fast-movers",
		Priority:     940,
		ConditionSrc: fmt.Sprintf(`EnemiesVisible && EnemyFraction(Enemy.FastMovers) >= %g`, cfg.Get(config.FastMoverFraction)),
		Action:       increaseGroups(munitions.GroupAccurate),
	})

	armor := cfg.Get(config.ArmorFraction)

	rules = append(rules, &Rule{
		Name:         "high-power-vs-advanced-armor",
		Priority:     930,
		ConditionSrc: fmt.Sprintf(`EnemiesVisible && EnemyFraction(Enemy.AdvancedArmor) >= %g`, armor),
		Action:       ActionAgainstAdvancedArmor,
	})

	rules = append(rules, &Rule{
		Name:         "armor-piercing-vs-reflective",
		Priority:     930,
		ConditionSrc: fmt.Sprintf(`EnemiesVisible && EnemyFraction(Enemy.ReflectiveArmor) >= %g`, armor),
		Action:       increaseGroups(munitions.GroupArmorPiercing),
	})

	rules = append(rules, &Rule{
		Name:         "anti-infantry",
		Priority:     920,
		ConditionSrc: fmt.Sprintf(`EnemiesVisible && EnemyFraction(Enemy.Infantry) >= %g`, cfg.Get(config.InfantryFraction)),
		Action:       increaseGroups(munitions.GroupAntiInfantry),
	})

	rules = append(rules, &Rule{
		Name:         "anti-battle-armor",
		Priority:     920,
		ConditionSrc: fmt.Sprintf(`EnemiesVisible && EnemyFraction(Enemy.BattleArmor) >= %g`, cfg.Get(config.BattleArmorFraction)),
		Action:       increaseGroups(munitions.GroupAntiBattleArmor),
	})

	rules = append(rules, &Rule{
		Name:     "heat-vs-vehicles",
		Priority: 920,
		ConditionSrc: fmt.Sprintf(`EnemiesVisible && EnemyFraction(Enemy.Vehicles) >= %g && EnemyFraction(Enemy.FireproofArmor) < %g`,
			cfg.Get(config.VehicleFraction), armor),
		Action: increaseGroups(munitions.GroupHeat),
	})

	rules = append(rules, &Rule{
		Name:         "heat-vs-fireproof",
		Priority:     915,
		ConditionSrc: fmt.Sprintf(`EnemiesVisible && EnemyFraction(Enemy.FireproofArmor) >= %g`, armor),
		Action:       decreaseGroups(munitions.GroupHeat),
	})

	rules = append(rules, &Rule{
		Name:         "heat-vs-energy-boats",
		Priority:     910,
		ConditionSrc: fmt.Sprintf(`EnemiesVisible && EnemyFraction(Enemy.EnergyBoats) >= %g`, cfg.Get(config.EnergyBoatFraction)),
		Action:       ActionAntiEnergyBoat,
	})

	rules = append(rules, &Rule{
		Name:         "seeking-vs-ecm",
		Priority:     905,
		ConditionSrc: `EnemiesVisible && Enemy.ECMs > 0`,
		Action:       ActionSwapGuidedForSeeking,
	})

	rules = append(rules, &Rule{
		Name:         "anti-tsm",
		Priority:     905,
		ConditionSrc: `EnemiesVisible && Enemy.TSMs > 0`,
		Action:       ActionAntiTSM,
	})

	// --- Guided munitions ---

	rules = append(rules, &Rule{
		Name:         "guided-without-spotters",
		Priority:     850,
		ConditionSrc: `Friendly.TAGs == 0 && Friendly.NARCs == 0`,
		Action:       zeroGroups(munitions.GroupGuided),
	})

	rules = append(rules, &Rule{
		Name:         "guided-tag-spotters",
		Priority:     840,
		ConditionSrc: `Friendly.TAGs > 0`,
		Action:       increaseScaled(munitions.GroupTAGGuided, func(p Params) int { return p.Friendly.TAGs }),
	})

	rules = append(rules, &Rule{
		Name:         "guided-narc-spotters",
		Priority:     840,
		ConditionSrc: `Friendly.NARCs > 0`,
		Action:       increaseScaled(munitions.GroupNarcGuided, func(p Params) int { return p.Friendly.NARCs }),
	})

	rules = append(rules, &Rule{
		Name:         "guided-missile-boats",
		Priority:     830,
		ConditionSrc: `(Friendly.TAGs > 0 || Friendly.NARCs > 0) && Friendly.MissileBoats > 0`,
		Action:       increaseScaled(munitions.GroupGuided, func(p Params) int { return p.Friendly.MissileBoats }),
	})

	rules = append(rules, &Rule{
		Name:         "tag-guided-without-tag",
		Priority:     810,
		ConditionSrc: `Friendly.TAGs == 0`,
		Action:       zeroGroups(munitions.GroupTAGGuided),
	})

	rules = append(rules, &Rule{
		Name:         "narc-guided-without-narc",
		Priority:     810,
		ConditionSrc: `Friendly.NARCs == 0`,
		Action:       zeroGroups(munitions.GroupNarcGuided),
	})

	// --- Utility munitions ---

	rules = append(rules, &Rule{
		Name:         "utility-no-off-board",
		Priority:     700,
		ConditionSrc: `Friendly.OffBoard == 0 && Enemy.OffBoard == 0`,
		Action:       zeroGroups(munitions.GroupUtility),
	})

	rules = append(rules, &Rule{
		Name:         "utility-friendly-off-board",
		Priority:     690,
		ConditionSrc: `Friendly.OffBoard > Enemy.OffBoard`,
		Action:       increaseGroups(munitions.GroupUtility),
	})

	rules = append(rules, &Rule{
		Name:         "utility-enemy-off-board",
		Priority:     690,
		ConditionSrc: `Enemy.OffBoard > Friendly.OffBoard`,
		Action:       decreaseGroups(munitions.GroupUtility),
	})

	// --- Historical exceptions ---
	// Literal faction/year conditions; these do not generalize.

	rules = append(rules, &Rule{
		Name:         "wob-jihad-minefields",
		Priority:     600,
		ConditionSrc: `IsFaction("WOB") && YearBetween(3068, 3081)`,
		Action:       increaseNames("Thunder-Vibrabomb", "Thunder Vibrabomb-IV", "FASCAM"),
	})

	rules = append(rules, &Rule{
		Name:         "capellan-infernos-vs-davion",
		Priority:     600,
		ConditionSrc: `IsFaction("CC") && EnemyFaction("FS") && YearBetween(3062, 3067)`,
		Action:       increaseNames("Inferno", "Inferno-IV"),
	})

	rules = append(rules, &Rule{
		Name:         "bulldog-tandem-charge",
		Priority:     600,
		ConditionSrc: `IsFaction("DC") && EnemyFaction("CSJ") && YearBetween(3059, 3060)`,
		Action:       increaseNames("Tandem-Charge", "Armor-Piercing"),
	})

	// --- Map and era gating ---

	rules = append(rules, &Rule{
		Name:         "space-ground-only",
		Priority:     550,
		ConditionSrc: `!GroundMap`,
		Action:       zeroGroups(munitions.GroupGroundOnly),
	})

	rules = append(rules, &Rule{
		Name:         "nukes-banned",
		Priority:     500,
		ConditionSrc: `NukesBanned`,
		Action:       zeroGroups(munitions.GroupNuke),
	})

	rules = append(rules, &Rule{
		Name:         "obsolete-munitions",
		Priority:     500,
		ConditionSrc: `YearBetween(3065, 3150)`,
		Action:       zeroGroups(munitions.GroupObsolete),
	})

	return rules
}
