package rules

import (
	"testing"

	"github.com/nstehr/quartermaster/config"
	"github.com/nstehr/quartermaster/imperative"
	"github.com/nstehr/quartermaster/model"
	"github.com/nstehr/quartermaster/munitions"
	"github.com/nstehr/quartermaster/weights"
)

func autocannonUnit(barrels, bins int) *model.Unit {
	c := munitions.DefaultCatalog()
	u := &model.Unit{Chassis: "Rifleman", Model: "RFL-3N", Kind: model.KindMek}
	for range barrels {
		u.Weapons = append(u.Weapons, model.Weapon{Name: "AC/2", Ammo: "AC/2"})
	}
	for i := range bins {
		u.Bins = append(u.Bins, model.NewAmmoBin(i, "RT", c.ByName("IS Ammo AC/2")))
	}
	return u
}

func planTree(t *testing.T, units ...*model.Unit) *imperative.Tree {
	t.Helper()
	pl, err := NewPlanner(config.New())
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	tree := imperative.New()
	pl.Materialize(weights.NewScorer(config.New()), tree)
	pl.ApplyUnitOverrides(tree, units)
	return tree
}

func TestCaselessSubstitution(t *testing.T) {
	tests := []struct {
		name         string
		barrels      int
		bins         int
		wantCaseless bool
	}{
		{"one bin for four barrels", 4, 1, true},
		{"two bins for four barrels", 4, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := autocannonUnit(tt.barrels, tt.bins)
			tree := planTree(t, u)
			list := tree.Retrieve(u.ImperativeKeys()...).PriorityListFor("AC/2")
			if len(list) == 0 {
				t.Fatal("no imperative for AC/2")
			}
			if got := list[0] == munitions.Caseless; got != tt.wantCaseless {
				t.Errorf("caseless first = %v, want %v (list %v)", got, tt.wantCaseless, list)
			}
		})
	}
}

func TestArtemisSubstitution(t *testing.T) {
	c := munitions.DefaultCatalog()
	u := &model.Unit{
		Chassis:   "Catapult",
		Model:     "CPLT-C1",
		Equipment: []string{model.EquipArtemisIV},
		Weapons:   []model.Weapon{{Name: "LRM-15", Ammo: "LRM-15", Missile: true}},
		Bins:      []*model.AmmoBin{model.NewAmmoBin(1, "LT", c.ByName("IS Ammo LRM-15"))},
	}
	tree := planTree(t, u)
	node := tree.Retrieve(u.ImperativeKeys()...)

	list := node.PriorityListFor("LRM-15")
	if len(list) == 0 || list[0] != munitions.ArtemisCapable {
		t.Errorf("LRM-15 list = %v, want Artemis-capable first", list)
	}
	for _, m := range list {
		if m == munitions.Standard {
			t.Errorf("Standard should be replaced, got %v", list)
		}
	}
	// Other bin types on the unit's own node still resolve.
	if got := node.PriorityListFor("SRM-6"); len(got) == 0 {
		t.Error("SRM imperative lost after unit override")
	}
	// Units without Artemis keep the wildcard ranking.
	if got := tree.Retrieve("Archer", "ARC-2R", "any").PriorityListFor("LRM-20"); got[0] != munitions.Standard {
		t.Errorf("wildcard LRM list = %v", got)
	}
}

func TestOverrideLeavesChassisSiblingsOnWildcard(t *testing.T) {
	c := munitions.DefaultCatalog()
	archer := func(variant string, equipment ...string) *model.Unit {
		return &model.Unit{
			Chassis:   "Archer",
			Model:     variant,
			Equipment: equipment,
			Weapons:   []model.Weapon{{Name: "LRM-15", Ammo: "LRM-15", Missile: true}},
			Bins:      []*model.AmmoBin{model.NewAmmoBin(1, "LT", c.ByName("IS Ammo LRM-15"))},
		}
	}
	artemis := archer("ARC-2R", model.EquipArtemisIV)
	plain := archer("ARC-2K")
	piloted := archer("ARC-2R", model.EquipArtemisIV)
	piloted.Pilot = "Kell"
	tree := planTree(t, artemis, plain)

	if got := tree.Retrieve(artemis.ImperativeKeys()...).PriorityListFor("LRM-15"); len(got) == 0 || got[0] != munitions.ArtemisCapable {
		t.Errorf("Artemis unit LRM-15 list = %v", got)
	}
	for _, u := range []*model.Unit{plain, piloted} {
		node := tree.Retrieve(u.ImperativeKeys()...)
		if node == nil {
			t.Fatalf("%s (pilot %q) lost its imperatives", u.DisplayName(), u.Pilot)
		}
		if got := node.PriorityListFor("LRM-15"); len(got) == 0 || got[0] != munitions.Standard {
			t.Errorf("%s LRM-15 list = %v, want the wildcard ranking", u.DisplayName(), got)
		}
	}
}

func TestArtemisVPreferred(t *testing.T) {
	c := munitions.DefaultCatalog()
	u := &model.Unit{
		Chassis:   "Fire Moth",
		Model:     "A",
		Clan:      true,
		Equipment: []string{model.EquipArtemisV},
		Bins:      []*model.AmmoBin{model.NewAmmoBin(1, "CT", c.ByName("Clan Ammo SRM-6"))},
	}
	tree := planTree(t, u)
	list := tree.Retrieve(u.ImperativeKeys()...).PriorityListFor("SRM-6")
	if len(list) == 0 || list[0] != munitions.ArtemisVCapable {
		t.Errorf("SRM-6 list = %v, want Artemis V-capable first", list)
	}
}

func TestMaterializeSkipsNonPositive(t *testing.T) {
	pl, err := NewPlanner(config.New())
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	s := weights.NewScorer(config.New())
	s.Zero(munitions.FamilyNarc.Munitions()...)
	tree := imperative.New()
	pl.Materialize(s, tree)

	root := tree.Retrieve("x", "y", "z")
	if got := root.PriorityListFor("Narc"); got != nil {
		t.Errorf("all-zero family should not be written, got %v", got)
	}
	if got := root.PriorityListFor("Long Tom"); len(got) == 0 {
		t.Error("artillery imperative missing")
	}
	for _, m := range root.PriorityListFor("LRM-10") {
		if w, _ := s.Weight(munitions.FamilyLRM, m); w <= 0 {
			t.Errorf("non-positive munition %s materialized", m)
		}
	}
}

func TestPlanRunsEverything(t *testing.T) {
	pl, err := NewPlanner(config.New())
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	u := autocannonUnit(4, 1)
	tree := imperative.New()
	fired := pl.Plan(Params{GroundMap: true, Year: 3060}, weights.NewScorer(config.New()), tree, []*model.Unit{u})
	if len(fired) == 0 {
		t.Error("expected some rules to fire")
	}
	if got := tree.Retrieve(u.ImperativeKeys()...).PriorityListFor("AC/2"); got[0] != munitions.Caseless {
		t.Errorf("AC/2 list = %v", got)
	}
}
