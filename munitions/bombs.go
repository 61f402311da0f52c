package munitions

import "strings"

// BombType enumerates external ordnance an aerospace unit can carry.
type BombType int

const (
	BombHE BombType = iota
	BombCluster
	BombLaserGuided
	BombRocket
	BombTAG
	BombAAA
	BombAS
	BombASEW
	BombArrowIV
	BombHoming
	BombInferno
	BombLAA
	BombThunder
	BombTorpedo
	BombAlamo
	BombFAESmall
	BombFAELarge
	BombRocketPrototype
	BombTypeCount // sentinel for array sizing
)

type bombInfo struct {
	name     string
	cost     int
	intro    int
	guided   bool // needs a designator to be useful
	advanced bool // subject to quality downgrades
}

var bombTable = [BombTypeCount]bombInfo{
	BombHE:              {name: "HE", cost: 1, intro: 1950},
	BombCluster:         {name: "Cluster", cost: 1, intro: 2600},
	BombLaserGuided:     {name: "Laser-Guided", cost: 1, intro: 2600, guided: true, advanced: true},
	BombRocket:          {name: "RL", cost: 1, intro: 3064},
	BombTAG:             {name: "TAG", cost: 1, intro: 2600},
	BombAAA:             {name: "AAA", cost: 5, intro: 3072, advanced: true},
	BombAS:              {name: "AS", cost: 6, intro: 3071, advanced: true},
	BombASEW:            {name: "ASEW", cost: 6, intro: 3067, advanced: true},
	BombArrowIV:         {name: "Arrow IV", cost: 5, intro: 2600, advanced: true},
	BombHoming:          {name: "Homing", cost: 5, intro: 2600, guided: true, advanced: true},
	BombInferno:         {name: "Inferno", cost: 1, intro: 2380},
	BombLAA:             {name: "LAA", cost: 2, intro: 3072, advanced: true},
	BombThunder:         {name: "Thunder", cost: 1, intro: 3052, advanced: true},
	BombTorpedo:         {name: "Torpedo", cost: 1, intro: 2400},
	BombAlamo:           {name: "ALAMO", cost: 10, intro: 3071, advanced: true},
	BombFAESmall:        {name: "FAE Small", cost: 1, intro: 3055, advanced: true},
	BombFAELarge:        {name: "FAE Large", cost: 2, intro: 3055, advanced: true},
	BombRocketPrototype: {name: "RL-P", cost: 1, intro: 3055},
}

func (b BombType) String() string {
	if b < 0 || b >= BombTypeCount {
		return "Unknown"
	}
	return bombTable[b].name
}

// Cost is the number of bomb units the ordnance consumes.
func (b BombType) Cost() int { return bombTable[b].cost }

// Guided reports whether the ordnance depends on a designator (laser or TAG).
func (b BombType) Guided() bool { return bombTable[b].guided }

// Advanced reports whether poorly supplied forces may be downgraded off it.
func (b BombType) Advanced() bool { return bombTable[b].advanced }

// AvailableIn reports whether the ordnance exists in the given year.
func (b BombType) AvailableIn(year int) bool { return year >= bombTable[b].intro }

// ParseBombType resolves a bomb by its short name (case-insensitive).
func ParseBombType(name string) (BombType, bool) {
	for b := BombType(0); b < BombTypeCount; b++ {
		if strings.EqualFold(bombTable[b].name, name) {
			return b, true
		}
	}
	return 0, false
}

// BombLoadout counts ordnance per bomb type.
type BombLoadout [BombTypeCount]int

// Units is the bomb-unit cost of the whole loadout.
func (l BombLoadout) Units() int {
	n := 0
	for b, c := range l {
		n += BombType(b).Cost() * c
	}
	return n
}

// Empty reports whether no ordnance is loaded.
func (l BombLoadout) Empty() bool {
	for _, c := range l {
		if c != 0 {
			return false
		}
	}
	return true
}

// HasGuided reports whether any designator-dependent ordnance is loaded.
func (l BombLoadout) HasGuided() bool {
	for b, c := range l {
		if c > 0 && BombType(b).Guided() {
			return true
		}
	}
	return false
}

// Named returns the non-zero entries keyed by bomb name.
func (l BombLoadout) Named() map[string]int {
	out := make(map[string]int)
	for b, c := range l {
		if c > 0 {
			out[BombType(b).String()] = c
		}
	}
	return out
}
