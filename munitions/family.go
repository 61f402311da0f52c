package munitions

import "strings"

// Family is a weapon family that shares one munition weight table.
type Family int

const (
	FamilyLRM Family = iota
	FamilySRM
	FamilyAC
	FamilyATM
	FamilyArrowIV
	FamilyArtillery
	FamilyArtilleryCannon
	FamilyMekMortar
	FamilyNarc
	FamilyBomb
	familyCount
)

var familyNames = [familyCount]string{
	FamilyLRM:             "LRM",
	FamilySRM:             "SRM",
	FamilyAC:              "AC",
	FamilyATM:             "ATM",
	FamilyArrowIV:         "Arrow IV",
	FamilyArtillery:       "Artillery",
	FamilyArtilleryCannon: "Artillery Cannon",
	FamilyMekMortar:       "Mek Mortar",
	FamilyNarc:            "Narc",
	FamilyBomb:            "Bomb",
}

func (f Family) String() string {
	if f < 0 || f >= familyCount {
		return "Unknown"
	}
	return familyNames[f]
}

// Key is the lower-case, space-free form used to scope tuning values
// (e.g. "arrowiv.increaseFactor").
func (f Family) Key() string {
	return strings.ToLower(strings.ReplaceAll(f.String(), " ", ""))
}

// Families returns every registered family in declaration order.
func Families() []Family {
	out := make([]Family, 0, familyCount)
	for f := Family(0); f < familyCount; f++ {
		out = append(out, f)
	}
	return out
}

// ParseFamily resolves a family by its display name (case-insensitive).
func ParseFamily(name string) (Family, bool) {
	for f := Family(0); f < familyCount; f++ {
		if strings.EqualFold(familyNames[f], name) {
			return f, true
		}
	}
	return 0, false
}

// Munitions returns the munition names seeded into the family's weight table.
func (f Family) Munitions() []string {
	if f < 0 || f >= familyCount {
		return nil
	}
	return append([]string(nil), familyMunitions[f]...)
}

// BinTypes returns the imperative bin-type keys a family's ranking is written
// under. Caliber-specific bins resolve to these through size stripping.
func (f Family) BinTypes() []string {
	if f < 0 || f >= familyCount {
		return nil
	}
	return append([]string(nil), familyBinTypes[f]...)
}

var familyMunitions = [familyCount][]string{
	FamilyLRM: {
		Standard, ArtemisCapable, ArtemisVCapable, NarcCapable, DeadFire,
		"Follow The Leader", "Fragmentation", "Heat-Seeking", "Listen-Kill",
		"Semi-Guided", "Swarm", "Swarm-I", "Thunder", "Thunder-Active",
		"Thunder-Augmented", "Thunder-Inferno", "Thunder-Vibrabomb", "Smoke",
		"Anti-TSM", "Mine Clearance",
	},
	FamilySRM: {
		Standard, ArtemisCapable, ArtemisVCapable, NarcCapable, DeadFire,
		"Inferno", "Fragmentation", "Heat-Seeking", "Listen-Kill", "Tandem-Charge",
		"Acid", "Harpoon", "Anti-TSM", "Mine Clearance", "Smoke",
	},
	FamilyAC: {
		Standard, "Armor-Piercing", Caseless, "Flak", "Flechette", "Incendiary",
		"Precision", "Tracer",
	},
	FamilyATM: {Standard, "ER", "HE"},
	FamilyArrowIV: {
		Standard, "ADA", "Cluster", "Homing", "Illumination", "Inferno-IV",
		"Laser Inhibiting", "Smoke", "Thunder-IV", "Thunder Vibrabomb-IV",
		"Davy Crockett-M", "Fuel-Air",
	},
	FamilyArtillery: {
		Standard, "Cluster", "Copperhead", "FASCAM", "Flechette", "Illumination",
		"Smoke", "Fuel-Air", "Davy Crockett-M",
	},
	FamilyArtilleryCannon: {Standard, "Flak"},
	FamilyMekMortar:       {Standard, "Airburst", "Anti-personnel", "Flare", "Semi-Guided", "Smoke"},
	FamilyNarc:            {Standard, "Narc Explosive"},
	FamilyBomb: {
		"HE", "Cluster", "Laser-Guided", "RL", "TAG", "AAA", "AS", "ASEW",
		"Arrow IV", "Homing", "Inferno", "LAA", "Thunder", "Torpedo", "ALAMO",
		"FAE Small", "FAE Large", "RL-P",
	},
}

var familyBinTypes = [familyCount][]string{
	FamilyLRM:             {"LRM", "MML"},
	FamilySRM:             {"SRM"},
	FamilyAC:              {"AC"},
	FamilyATM:             {"ATM"},
	FamilyArrowIV:         {"Arrow IV"},
	FamilyArtillery:       {"Long Tom", "Sniper", "Thumper"},
	FamilyArtilleryCannon: {"Long Tom Cannon", "Sniper Cannon", "Thumper Cannon"},
	FamilyMekMortar:       {"Mek Mortar"},
	FamilyNarc:            {"Narc"},
	FamilyBomb:            {"Bomb"},
}

// Well-known munition names referenced outside the tables.
const (
	Standard        = "Standard"
	Random          = "Random"
	Caseless        = "Caseless"
	DeadFire        = "Dead-Fire"
	ArtemisCapable  = "Artemis-capable"
	ArtemisVCapable = "Artemis V-capable"
	NarcCapable     = "Narc-capable"
)
