package rules

import (
	"testing"

	"github.com/nstehr/quartermaster/model"
)

func TestCountTallies(t *testing.T) {
	units := []*model.Unit{
		{Kind: model.KindMek, WalkMP: 6, Equipment: []string{model.EquipTAG, model.EquipECM}},
		{Kind: model.KindMek, WalkMP: 4, Roles: []string{model.RoleMissileBoat}, Armor: []string{model.ArmorReflective}},
		{Kind: model.KindAerospace, Bomber: true, WalkMP: 0},
		{Kind: model.KindVTOL, OffBoard: true},
		{Kind: model.KindInfantry, Armor: []string{model.ArmorHardened}},
		{Kind: model.KindBattleArmor, Armor: []string{model.ArmorBARFireRes}, Equipment: []string{model.EquipNarc}},
		{Kind: model.KindMek, TracksHeat: true, Weapons: []model.Weapon{{Name: "ER Large Laser"}}, Equipment: []string{model.EquipTSM}},
	}
	c := Count(units, 5)

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"Total", c.Total, 7},
		{"Meks", c.Meks, 3},
		{"Fliers", c.Fliers, 2},
		{"Bombers", c.Bombers, 1},
		{"Vehicles", c.Vehicles, 1},
		{"Infantry", c.Infantry, 1},
		{"BattleArmor", c.BattleArmor, 1},
		{"FastMovers", c.FastMovers, 1},
		{"MissileBoats", c.MissileBoats, 1},
		{"EnergyBoats", c.EnergyBoats, 1},
		{"TAGs", c.TAGs, 1},
		{"NARCs", c.NARCs, 1},
		{"ECMs", c.ECMs, 1},
		{"TSMs", c.TSMs, 1},
		{"OffBoard", c.OffBoard, 1},
		{"AdvancedArmor", c.AdvancedArmor, 1},
		{"ReflectiveArmor", c.ReflectiveArmor, 1},
		{"FireproofArmor", c.FireproofArmor, 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestAnalyzeBlindDrop(t *testing.T) {
	in := Input{
		Own:           []*model.Unit{{Kind: model.KindMek}},
		Enemy:         []*model.Unit{{Kind: model.KindMek}, {Kind: model.KindInfantry}},
		EnemyFactions: []string{"FS"},
		Environment:   model.Environment{Year: 3060, GroundMap: true},
		FastWalkMP:    5,
	}

	p := Analyze(in)
	if !p.EnemiesVisible || p.Enemy.Total != 2 || !p.EnemyFaction("fs") {
		t.Fatalf("visible analysis = %+v", p)
	}
	if got := p.Ratio(); got != 0.5 {
		t.Errorf("Ratio = %v, want 0.5", got)
	}

	in.Options.BlindDrop = true
	p = Analyze(in)
	if p.EnemiesVisible {
		t.Error("blind drop should clear EnemiesVisible")
	}
	if p.Enemy != (SideCounts{}) || len(p.EnemyFactions) != 0 {
		t.Errorf("blind drop leaked enemy data: %+v %v", p.Enemy, p.EnemyFactions)
	}
	if p.Friendly.Total != 1 {
		t.Errorf("friendly counts should survive blind drop: %+v", p.Friendly)
	}
}

func TestParamsHelpers(t *testing.T) {
	p := Params{Year: 3067, Faction: "CC"}
	if !p.YearBetween(3062, 3067) || p.YearBetween(3068, 3081) {
		t.Error("YearBetween bounds are inclusive")
	}
	if !p.IsFaction("cc") {
		t.Error("IsFaction should be case-insensitive")
	}
	if p.Ratio() != 0 || p.EnemyFraction(1) != 0 {
		t.Error("empty enemy side should yield zero ratios")
	}
}
