package munitions

// Group is a named set of munitions that weight rules adjust together.
// A munition may belong to several groups and several families.
type Group int

const (
	GroupAntiInfantry Group = iota
	GroupAntiBattleArmor
	GroupHeat
	GroupIllumination
	GroupUtility
	GroupGuided
	GroupTAGGuided
	GroupNarcGuided
	GroupSeeking
	GroupAmmoReducing
	GroupFlak
	GroupAccurate
	GroupArmorPiercing
	GroupHighPower
	GroupNuke
	GroupObsolete
	GroupGroundOnly
	groupCount
)

var groupNames = [groupCount]string{
	GroupAntiInfantry:    "Anti-Infantry",
	GroupAntiBattleArmor: "Anti-Battle Armor",
	GroupHeat:            "Heat",
	GroupIllumination:    "Illumination",
	GroupUtility:         "Utility",
	GroupGuided:          "Guided",
	GroupTAGGuided:       "TAG-Guided",
	GroupNarcGuided:      "Narc-Guided",
	GroupSeeking:         "Seeking",
	GroupAmmoReducing:    "Ammo-Reducing",
	GroupFlak:            "Flak",
	GroupAccurate:        "Accurate",
	GroupArmorPiercing:   "Armor-Piercing",
	GroupHighPower:       "High-Power",
	GroupNuke:            "Nuke",
	GroupObsolete:        "Obsolete",
	GroupGroundOnly:      "Ground-Only",
}

func (g Group) String() string {
	if g < 0 || g >= groupCount {
		return "Unknown"
	}
	return groupNames[g]
}

// Members returns a copy of the group's munition names.
func (g Group) Members() []string {
	if g < 0 || g >= groupCount {
		return nil
	}
	return append([]string(nil), groupMembers[g]...)
}

// Contains reports whether name is a member of g.
func (g Group) Contains(name string) bool {
	for _, m := range groupMembers[g] {
		if m == name {
			return true
		}
	}
	return false
}

var (
	antiInfantry = []string{
		"Inferno", "Fragmentation", "Flechette", "Fuel-Air", "Anti-personnel",
		"Airburst", "Acid", "Thunder-Inferno", "Inferno-IV", "Cluster",
	}
	illumination = []string{
		"Incendiary", "Tracer", "Inferno", "Inferno-IV", "Flare", "Illumination",
	}
	utility = []string{
		"Illumination", "Smoke", "Mine Clearance", "Anti-TSM", "Laser Inhibiting",
		"Thunder", "Thunder-Active", "Thunder-Augmented", "Thunder-Vibrabomb",
		"Thunder-IV", "Thunder Vibrabomb-IV", "FASCAM", "Flare",
	}
	tagGuided  = []string{"Semi-Guided", "Homing", "Copperhead"}
	narcGuided = []string{NarcCapable}
)

var groupMembers = [groupCount][]string{
	GroupAntiInfantry: antiInfantry,
	GroupAntiBattleArmor: {
		"Inferno", "Acid", "Tandem-Charge", "Fuel-Air", "Thunder-Inferno",
		"Inferno-IV", "Airburst",
	},
	GroupHeat:         {"Inferno", "Incendiary", "Fuel-Air", "Inferno-IV", "Thunder-Inferno"},
	GroupIllumination: illumination,
	GroupUtility:      utility,
	GroupGuided:       append(append([]string(nil), tagGuided...), narcGuided...),
	GroupTAGGuided:    tagGuided,
	GroupNarcGuided:   narcGuided,
	GroupSeeking:      {"Heat-Seeking", "Listen-Kill", "Swarm", "Swarm-I"},
	GroupAmmoReducing: {
		"Acid", "Armor-Piercing", DeadFire, "Follow The Leader", "Heat-Seeking",
		"Laser Inhibiting", "Precision", "Tandem-Charge", "Thunder-Active",
		"Thunder-Augmented", "Thunder-Inferno", "Thunder-Vibrabomb",
	},
	GroupFlak:          {"ADA", "Cluster", "Flak", "AAA", "LAA", "Airburst"},
	GroupAccurate:      {"Precision", "Tracer", "Cluster", "Follow The Leader"},
	GroupArmorPiercing: {"Armor-Piercing", "Tandem-Charge"},
	GroupHighPower:     {DeadFire, "Tandem-Charge", "HE", "Fuel-Air"},
	GroupNuke:          {"Davy Crockett-M", "ALAMO"},
	GroupObsolete:      {"Thunder", "Swarm"},
	GroupGroundOnly: dedupe(antiInfantry, illumination, []string{
		"Smoke", "Mine Clearance", "FASCAM", "Anti-TSM", "Thunder", "Thunder-Active",
		"Thunder-Augmented", "Thunder-Vibrabomb", "Thunder-IV", "Thunder Vibrabomb-IV",
	}),
}

func dedupe(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
