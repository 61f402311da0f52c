package config

// Key names a tunable value and the default used when it is absent.
type Key struct {
	Name    string
	Default float64
}

// Weight seeds.
var (
	DefaultWeight     = Key{"defaultWeight", 1.0}
	StandardWeight    = Key{"standardWeight", 2.0}
	ATMStandardWeight = Key{"atmStandardWeight", 1.0}
	DeadFireWeight    = Key{"deadFireWeight", 0.5}
	ArtemisWeight     = Key{"artemisWeight", 0.0}
)

// Vote factors. A vote sets weight = weight*factor + increment.
var (
	IncreaseFactor    = Key{"increaseFactor", 2.0}
	IncreaseIncrement = Key{"increaseIncrement", 1.0}
	DecreaseFactor    = Key{"decreaseFactor", 0.5}
	DecreaseIncrement = Key{"decreaseIncrement", 0.0}
)

// Planner thresholds.
var (
	TopN                  = Key{"topN", 3}
	AmmoReducingLowRatio  = Key{"ammoReducingLowRatio", 0.75}
	AmmoReducingHighRatio = Key{"ammoReducingHighRatio", 1.5}
	FastMoverFraction     = Key{"fastMoverFraction", 0.4}
	ArmorFraction         = Key{"armorFraction", 0.25}
	InfantryFraction      = Key{"infantryFraction", 0.25}
	BattleArmorFraction   = Key{"battleArmorFraction", 0.25}
	VehicleFraction       = Key{"vehicleFraction", 0.4}
	EnergyBoatFraction    = Key{"energyBoatFraction", 0.25}
	FastMoverWalkMP       = Key{"fastMoverWalkMP", 5}

	CaselessAC2  = Key{"caselessAC2", 0.25}
	CaselessAC5  = Key{"caselessAC5", 0.5}
	CaselessAC10 = Key{"caselessAC10", 1.0}
	CaselessAC20 = Key{"caselessAC20", 1.0}
)

// Pipeline values.
var (
	FillRatio             = Key{"fillRatio", 1.0}
	PirateFillMin         = Key{"pirateFillMin", 0.35}
	PirateFillRange       = Key{"pirateFillRange", 0.5}
	AirToAirFlierFraction = Key{"airToAirFlierFraction", 0.5}
)

// Ordnance generation.
var (
	BomberSubsetMin  = Key{"bomberSubsetMin", 0.4}
	ArmedReserve     = Key{"armedThrustReserve", 3}
	UnarmedReserve   = Key{"unarmedThrustReserve", 2}
	ArmedBudgetMin   = Key{"armedBudgetMin", 0.5}
	TonsPerBombUnit  = Key{"tonsPerBombUnit", 5}
	BombUnitsPerMP   = Key{"bombUnitsPerThrust", 5}
	OrdnanceAttempts = Key{"ordnanceAttempts", 50}
)

// DowngradeChance is the per-bomb chance of replacing advanced ordnance, by
// force quality 0 (worst) through 5 (best).
var DowngradeChance = [6]Key{
	{"downgradeChanceQ0", 0.80},
	{"downgradeChanceQ1", 0.60},
	{"downgradeChanceQ2", 0.40},
	{"downgradeChanceQ3", 0.25},
	{"downgradeChanceQ4", 0.15},
	{"downgradeChanceQ5", 0.05},
}
