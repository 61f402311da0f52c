package munitions

//go:generate mockgen -source=legality.go -destination=mock_munitions/mock_legality.go

// LegalityContext carries the side and rules settings a legality check runs under.
type LegalityContext struct {
	Faction     string
	Year        int
	TechLevel   TechLevel
	Clan        bool
	MixedTech   bool
	ShowExtinct bool
}

// Legality is the tech-advancement oracle the allocator consults. Host games
// with their own availability tables implement it; EraTable is the built-in one.
type Legality interface {
	IsLegal(at *AmmoType, c LegalityContext) bool
	IsAvailableIn(at *AmmoType, year int, clan, showExtinct bool) bool
}

// EraTable decides legality from the catalogue's intro/extinct years and tech levels.
// Factions listed in Restricted may not field the given munitions at all.
type EraTable struct {
	Restricted map[string][]string
}

func (e EraTable) IsAvailableIn(at *AmmoType, year int, clan, showExtinct bool) bool {
	if at == nil {
		return false
	}
	if year < at.Intro {
		return false
	}
	if at.Extinct > 0 && year >= at.Extinct && !showExtinct {
		return false
	}
	return true
}

func (e EraTable) IsLegal(at *AmmoType, c LegalityContext) bool {
	if at == nil {
		return false
	}
	if !c.MixedTech && (at.Tech == TechClan) != c.Clan {
		return false
	}
	if at.Level > c.TechLevel {
		return false
	}
	for _, m := range e.Restricted[c.Faction] {
		if m == at.Munition {
			return false
		}
	}
	return e.IsAvailableIn(at, c.Year, c.Clan, c.ShowExtinct)
}

// Permissive ignores era and faction: only tech base and rules level are
// enforced. It is used when era-based tech is switched off.
type Permissive struct{}

func (Permissive) IsAvailableIn(at *AmmoType, _ int, _, _ bool) bool { return at != nil }

func (Permissive) IsLegal(at *AmmoType, c LegalityContext) bool {
	if at == nil {
		return false
	}
	if !c.MixedTech && (at.Tech == TechClan) != c.Clan {
		return false
	}
	return at.Level <= c.TechLevel
}
