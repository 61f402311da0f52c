package munitions

import "testing"

func TestStandardLookup(t *testing.T) {
	c := DefaultCatalog()
	tests := []struct {
		tech TechBase
		bin  string
		want string
	}{
		{TechIS, "LRM-15", "IS Ammo LRM-15"},
		{TechClan, "SRM-6", "Clan Ammo SRM-6"},
		{TechIS, "AC/20", "IS Ammo AC/20"},
		{TechIS, "Arrow IV", "IS Arrow IV Ammo"}, // inverted spelling
		{TechClan, "Long Tom", "Clan Long Tom Ammo"},
		{TechIS, "Mek Mortar 4", "IS Mek Mortar 4 Ammo"},
	}
	for _, tc := range tests {
		got := c.Standard(tc.tech, tc.bin)
		if got == nil {
			t.Errorf("Standard(%v, %q) = nil, want %q", tc.tech, tc.bin, tc.want)
			continue
		}
		if got.Name != tc.want {
			t.Errorf("Standard(%v, %q) = %q, want %q", tc.tech, tc.bin, got.Name, tc.want)
		}
		if !got.IsStandard() {
			t.Errorf("Standard(%v, %q) returned non-standard munition %q", tc.tech, tc.bin, got.Munition)
		}
	}

	if got := c.Standard(TechClan, "AC/20"); got != nil {
		t.Errorf("Clan AC/20 should not exist, got %q", got.Name)
	}
}

func TestValidMunitionsShareLauncher(t *testing.T) {
	c := DefaultCatalog()
	lrm := c.ByName("IS Ammo LRM-15")
	if lrm == nil {
		t.Fatal("missing IS Ammo LRM-15")
	}
	valid := c.ValidMunitions(lrm)
	if len(valid) == 0 {
		t.Fatal("no valid munitions for LRM-15")
	}
	sawThunder := false
	for _, at := range valid {
		if at.Rack != 15 || at.Kind != "LRM" {
			t.Errorf("unexpected munition %q for LRM-15 bin", at.Name)
		}
		if at.Munition == "Thunder" && at.Tech == TechIS {
			sawThunder = true
		}
	}
	if !sawThunder {
		t.Error("expected IS LRM-15 Thunder among valid munitions")
	}
}

func TestAmmoReducingShots(t *testing.T) {
	c := DefaultCatalog()
	std := c.ByName("IS Ammo AC/10")
	ap := c.ByName("IS Ammo AC/10 Armor-Piercing")
	caseless := c.ByName("IS Ammo AC/10 Caseless")
	if std == nil || ap == nil || caseless == nil {
		t.Fatal("missing AC/10 ammo entries")
	}
	if ap.Shots != std.Shots/2 {
		t.Errorf("AP shots = %d, want %d", ap.Shots, std.Shots/2)
	}
	if caseless.Shots != std.Shots*2 {
		t.Errorf("Caseless shots = %d, want %d", caseless.Shots, std.Shots*2)
	}
}

func TestCompatible(t *testing.T) {
	c := DefaultCatalog()
	lrm15 := c.ByName("IS Ammo LRM-15")
	clanLRM15 := c.ByName("Clan Ammo LRM-15")
	lrm20 := c.ByName("IS Ammo LRM-20")
	lac5 := c.ByName("IS Ammo L-AC/5")
	ac5 := c.ByName("IS Ammo AC/5")

	if !Compatible(lrm15, clanLRM15) {
		t.Error("IS and Clan LRM-15 ammo should be mount compatible")
	}
	if Compatible(lrm15, lrm20) {
		t.Error("LRM-15 and LRM-20 ammo should not be compatible")
	}
	if Compatible(ac5, lac5) {
		t.Error("AC/5 and L-AC/5 ammo should not be compatible")
	}
	if Compatible(nil, ac5) {
		t.Error("nil is never compatible")
	}
}

func TestNuclearFlag(t *testing.T) {
	at := DefaultCatalog().ByName("IS Arrow IV Ammo Davy Crockett-M")
	if at == nil {
		t.Fatal("missing Davy Crockett-M Arrow IV ammo")
	}
	if !at.Nuclear {
		t.Error("Davy Crockett-M should be nuclear")
	}
}

func TestEraTable(t *testing.T) {
	c := DefaultCatalog()
	thunder := c.ByName("IS Ammo LRM-15 Thunder")
	ftl := c.ByName("IS Ammo LRM-15 Follow The Leader")
	clanStd := c.ByName("Clan Ammo LRM-15")
	e := EraTable{Restricted: map[string][]string{"CC": {"Thunder"}}}

	base := LegalityContext{Faction: "FS", Year: 3060, TechLevel: LevelAdvanced}

	if !e.IsLegal(thunder, base) {
		t.Error("Thunder should be legal for FS in 3060")
	}
	early := base
	early.Year = 3040
	if e.IsLegal(thunder, early) {
		t.Error("Thunder should not exist in 3040")
	}
	std := base
	std.TechLevel = LevelStandard
	if e.IsLegal(thunder, std) {
		t.Error("Thunder is advanced tech and should be illegal at standard level")
	}
	cc := base
	cc.Faction = "CC"
	if e.IsLegal(thunder, cc) {
		t.Error("restricted faction should not field Thunder")
	}
	if e.IsLegal(clanStd, base) {
		t.Error("Clan ammo should be illegal for an IS unit without mixed tech")
	}
	mixed := base
	mixed.MixedTech = true
	if !e.IsLegal(clanStd, mixed) {
		t.Error("Clan ammo should be legal with mixed tech")
	}

	exp := base
	exp.TechLevel = LevelExperimental
	exp.Year = 3060
	if e.IsLegal(ftl, exp) {
		t.Error("Follow The Leader is extinct in 3060")
	}
	exp.ShowExtinct = true
	if !e.IsLegal(ftl, exp) {
		t.Error("extinct munitions should be legal when showExtinct is set")
	}
}

func TestSuggestMunition(t *testing.T) {
	c := DefaultCatalog()
	if got := c.SuggestMunition("Thundr"); got != "Thunder" {
		t.Errorf("SuggestMunition(Thundr) = %q, want Thunder", got)
	}
	if got := c.SuggestMunition("completely unrelated words"); got != "" {
		t.Errorf("expected no suggestion, got %q", got)
	}
	if !c.KnownMunition("random") {
		t.Error("Random should be a known munition token")
	}
}

func TestFamilyLookups(t *testing.T) {
	if FamilyArrowIV.Key() != "arrowiv" {
		t.Errorf("FamilyArrowIV.Key() = %q", FamilyArrowIV.Key())
	}
	f, ok := ParseFamily("mek mortar")
	if !ok || f != FamilyMekMortar {
		t.Errorf("ParseFamily(mek mortar) = %v, %v", f, ok)
	}
	if len(Families()) != 10 {
		t.Errorf("expected 10 families, got %d", len(Families()))
	}
	if !GroupGuided.Contains(NarcCapable) || !GroupGuided.Contains("Homing") {
		t.Error("guided group should contain Narc-capable and Homing")
	}
}
