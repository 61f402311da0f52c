package ordnance

import "github.com/nstehr/quartermaster/munitions"

type slot struct {
	bomb   munitions.BombType
	weight float64
}

// table is a named loadout profile. weight is its share in the profile draw;
// slots weight the individual ordnance draws once the profile is chosen.
type table struct {
	name   string
	weight float64
	slots  []slot
}

var groundTables = []table{
	{name: "Normal", weight: 40, slots: []slot{
		{munitions.BombHE, 5}, {munitions.BombCluster, 3}, {munitions.BombRocket, 4},
		{munitions.BombInferno, 1}, {munitions.BombLaserGuided, 1},
	}},
	{name: "Anti-Mek", weight: 25, slots: []slot{
		{munitions.BombLaserGuided, 4}, {munitions.BombHE, 3}, {munitions.BombArrowIV, 2},
		{munitions.BombThunder, 1}, {munitions.BombCluster, 1},
	}},
	{name: "Standoff", weight: 15, slots: []slot{
		{munitions.BombArrowIV, 3}, {munitions.BombHoming, 2}, {munitions.BombLaserGuided, 3},
		{munitions.BombRocket, 2},
	}},
	{name: "Strike", weight: 20, slots: []slot{
		{munitions.BombLaserGuided, 4}, {munitions.BombHE, 3}, {munitions.BombFAESmall, 1},
		{munitions.BombFAELarge, 1}, {munitions.BombCluster, 2},
	}},
}

var airTables = []table{
	{name: "Anti-Air", weight: 75, slots: []slot{
		{munitions.BombLAA, 3}, {munitions.BombAAA, 2}, {munitions.BombRocket, 4},
	}},
	{name: "Anti-Ship", weight: 25, slots: []slot{
		{munitions.BombAS, 3}, {munitions.BombASEW, 2}, {munitions.BombRocket, 2},
	}},
}

var pirateGroundTables = []table{
	{name: "Pirate", weight: 60, slots: []slot{
		{munitions.BombHE, 4}, {munitions.BombRocket, 5}, {munitions.BombInferno, 2},
		{munitions.BombRocketPrototype, 2},
	}},
	{name: "Firebomb", weight: 40, slots: []slot{
		{munitions.BombInferno, 5}, {munitions.BombFAESmall, 2}, {munitions.BombHE, 2},
	}},
}

var pirateAirTables = []table{
	{name: "Pirate Air", weight: 100, slots: []slot{
		{munitions.BombRocket, 6}, {munitions.BombRocketPrototype, 3}, {munitions.BombLAA, 1},
	}},
}

func tablesFor(pirate, airToAir bool) []table {
	switch {
	case pirate && airToAir:
		return pirateAirTables
	case pirate:
		return pirateGroundTables
	case airToAir:
		return airTables
	default:
		return groundTables
	}
}

// basicBombs are one-unit bombs a targeting pod may replace, in trade order.
var basicBombs = []munitions.BombType{
	munitions.BombHE, munitions.BombRocket, munitions.BombRocketPrototype,
	munitions.BombCluster, munitions.BombInferno,
}
